package monitor

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/grandcat/zeroconf"
)

// MessageType identifies a monitor feed message
type MessageType string

const (
	TypeStatsUpdate  MessageType = "stats_update"
	TypeNotification MessageType = "notification"
	TypeHeartbeat    MessageType = "heartbeat"
	TypeHello        MessageType = "hello"
)

// Message is one frame on the monitor feed
type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// Client is one connected phone or browser on the LAN
type Client struct {
	ID          string
	Connection  *websocket.Conn
	Send        chan []byte
	Server      *Server
	ConnectedAt time.Time
	RemoteAddr  string
}

// StatsFunc produces the current farm snapshot for broadcast and the REST
// endpoint.
type StatsFunc func() (interface{}, error)

// Server pushes live farm statistics to devices on the local network over
// WebSocket, announcing itself via mDNS so the companion app can find the
// farm computer without configuration.
type Server struct {
	clients      map[string]*Client
	broadcast    chan []byte
	register     chan *Client
	unregister   chan *Client
	upgrader     websocket.Upgrader
	mu           sync.RWMutex
	port         int
	stats        StatsFunc
	mdnsServer   *zeroconf.Server
	mdnsShutdown chan bool
}

// NewServer creates a monitor server on the given port
func NewServer(port int, stats StatsFunc) *Server {
	return &Server{
		clients:      make(map[string]*Client),
		broadcast:    make(chan []byte),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		port:         port,
		stats:        stats,
		mdnsShutdown: make(chan bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// LAN-only service, no origin restriction
				return true
			},
		},
	}
}

// Start runs the hub and HTTP server. Blocks; call from a goroutine.
func (s *Server) Start() error {
	go s.run()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/stats", s.handleStats)

	go s.startMDNS()

	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Monitor server starting on port %d", s.port)
	return http.ListenAndServe(addr, mux)
}

// startMDNS announces the monitor service so mobile clients can discover it
func (s *Server) startMDNS() {
	server, err := zeroconf.Register(
		"Poultry Farm Monitor",
		"_poultryfarm._tcp",
		"local.",
		s.port,
		[]string{"version=1.0"},
		nil,
	)
	if err != nil {
		log.Printf("mDNS: Failed to register service: %v", err)
		return
	}

	s.mdnsServer = server
	log.Println("mDNS: Monitor announced on _poultryfarm._tcp.local")

	<-s.mdnsShutdown
	server.Shutdown()
	log.Println("mDNS: Service announcement stopped")
}

// Stop shuts down mDNS and disconnects all clients
func (s *Server) Stop() {
	select {
	case s.mdnsShutdown <- true:
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, client := range s.clients {
		close(client.Send)
		client.Connection.Close()
	}
	s.clients = make(map[string]*Client)
}

// run is the hub loop: registrations, broadcasts and the periodic stats push
func (s *Server) run() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case client := <-s.register:
			s.mu.Lock()
			s.clients[client.ID] = client
			s.mu.Unlock()
			log.Printf("Monitor client connected: %s (%s)", client.ID, client.RemoteAddr)
			s.sendHello(client)
			s.pushStatsTo(client)

		case client := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.clients[client.ID]; ok {
				delete(s.clients, client.ID)
				s.mu.Unlock()
				safeClose(client)
				log.Printf("Monitor client disconnected: %s", client.ID)
			} else {
				s.mu.Unlock()
			}

		case message := <-s.broadcast:
			s.mu.Lock()
			for id, client := range s.clients {
				select {
				case client.Send <- message:
				default:
					delete(s.clients, id)
					safeClose(client)
				}
			}
			s.mu.Unlock()

		case <-ticker.C:
			s.PushStats()
		}
	}
}

func safeClose(c *Client) {
	go func() {
		defer func() {
			recover() // channel may already be closed
		}()
		close(c.Send)
	}()
}

// handleWebSocket upgrades a connection and starts its pumps
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		ID:          fmt.Sprintf("%d-%d", time.Now().Unix(), time.Now().Nanosecond()),
		Connection:  conn,
		Send:        make(chan []byte, 256),
		Server:      s,
		ConnectedAt: time.Now(),
		RemoteAddr:  r.RemoteAddr,
	}

	s.register <- client

	go client.writePump()
	go client.readPump()
}

// handleHealth reports hub status for the companion app's connection check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	clientCount := len(s.clients)
	s.mu.RUnlock()

	response := map[string]interface{}{
		"status":  "healthy",
		"clients": clientCount,
		"time":    time.Now(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleStats serves the current snapshot over plain HTTP
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		http.Error(w, "stats unavailable", http.StatusServiceUnavailable)
		return
	}
	stats, err := s.stats()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// readPump reads client frames; monitors only send heartbeats
func (c *Client) readPump() {
	defer func() {
		c.Server.unregister <- c
		c.Connection.Close()
	}()

	c.Connection.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Connection.SetPongHandler(func(string) error {
		c.Connection.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, messageBytes, err := c.Connection.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var message Message
		if err := json.Unmarshal(messageBytes, &message); err != nil {
			log.Printf("Error parsing message: %v", err)
			continue
		}

		if message.Type == TypeHeartbeat {
			c.sendMessage(Message{
				Type:      TypeHeartbeat,
				Timestamp: time.Now(),
				Data:      json.RawMessage(`{"status":"alive"}`),
			})
		}
	}
}

// writePump writes queued frames and keeps the connection pinged
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.Connection.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Connection.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			c.Connection.WriteMessage(websocket.TextMessage, message)

		case <-ticker.C:
			c.Connection.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) sendMessage(message Message) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}
	select {
	case c.Send <- data:
		return nil
	default:
		return fmt.Errorf("client send channel is full")
	}
}

func (s *Server) sendHello(client *Client) {
	data, _ := json.Marshal(map[string]interface{}{
		"client_id": client.ID,
		"message":   "Connected to farm monitor",
	})
	client.sendMessage(Message{
		Type:      TypeHello,
		Timestamp: time.Now(),
		Data:      data,
	})
}

// PushStats broadcasts the current snapshot to every connected client
func (s *Server) PushStats() {
	if s.stats == nil {
		return
	}
	stats, err := s.stats()
	if err != nil {
		log.Printf("Monitor: failed to collect stats: %v", err)
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	message := Message{
		Type:      TypeStatsUpdate,
		Timestamp: time.Now(),
		Data:      data,
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, client := range s.clients {
		select {
		case client.Send <- payload:
		default:
			log.Printf("Monitor: client %s buffer full, skipping", client.ID)
		}
	}
}

func (s *Server) pushStatsTo(client *Client) {
	if s.stats == nil {
		return
	}
	stats, err := s.stats()
	if err != nil {
		return
	}
	data, _ := json.Marshal(stats)
	client.sendMessage(Message{
		Type:      TypeStatsUpdate,
		Timestamp: time.Now(),
		Data:      data,
	})
}

// SendNotification pushes an alert (low production, overdue vaccination) to
// all connected devices.
func (s *Server) SendNotification(title, body string) {
	data, _ := json.Marshal(map[string]string{
		"title": title,
		"body":  body,
	})
	message := Message{
		Type:      TypeNotification,
		Timestamp: time.Now(),
		Data:      data,
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return
	}
	s.broadcast <- payload
}

// GetStatus returns hub status for the settings screen
func (s *Server) GetStatus() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"running":       true,
		"port":          s.port,
		"total_clients": len(s.clients),
	}
}
