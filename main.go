package main

import (
	"PoultryApp/app/config"
	"PoultryApp/app/database"
	"PoultryApp/app/monitor"
	"PoultryApp/app/services"
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/windows"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

//go:embed all:frontend/dist
var assets embed.FS

// App struct
type App struct {
	ctx                    context.Context
	LoggerService          *services.LoggerService
	ConfigManagerService   *services.ConfigManagerService
	CycleService           *services.CycleService
	CageService            *services.CageService
	ProductionService      *services.ProductionService
	FeedService            *services.FeedService
	SalesService           *services.SalesService
	ExpenseService         *services.ExpenseService
	VaccinationService     *services.VaccinationService
	DashboardService       *services.DashboardService
	DataService            *services.DataService
	BackupService          *services.BackupService
	SettingsService        *services.SettingsService
	GoogleSheetsService    *services.GoogleSheetsService
	ReportSchedulerService *services.ReportSchedulerService
	MonitorServer          *monitor.Server
	isFirstRun             bool
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{}
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	runtime.WindowMaximise(a.ctx)

	if !a.isFirstRun {
		a.startBackgroundServices()
	}
}

// startBackgroundServices launches the LAN monitor and report scheduler.
// Called once the database is available.
func (a *App) startBackgroundServices() {
	monitorPort := 8090
	if cfg, err := config.LoadConfig(); err == nil && cfg.System.MonitorPort != 0 {
		monitorPort = cfg.System.MonitorPort
	}
	if monitorPort > 0 {
		a.LoggerService.LogInfo("Starting farm monitor server", fmt.Sprintf("Port: %d", monitorPort))
		a.MonitorServer = monitor.NewServer(monitorPort, func() (interface{}, error) {
			return a.DashboardService.GetStats()
		})
		go func() {
			defer a.LoggerService.RecoverPanic()
			if err := a.MonitorServer.Start(); err != nil {
				a.LoggerService.LogError("Monitor server error", err)
			}
		}()
	}

	if a.ReportSchedulerService != nil {
		a.LoggerService.LogInfo("Starting spreadsheet report scheduler")
		go func() {
			defer a.LoggerService.RecoverPanic()
			if err := a.ReportSchedulerService.Start(); err != nil {
				a.LoggerService.LogWarning("Report scheduler start error", err.Error())
			}
		}()
	}
}

// domReady is called after front-end resources have been loaded
func (a *App) domReady(ctx context.Context) {
}

// beforeClose is called when the application is about to quit,
// either by clicking the window close button or calling runtime.Quit.
func (a *App) beforeClose(ctx context.Context) (prevent bool) {
	a.LoggerService.LogInfo("Application closing")

	if a.ReportSchedulerService != nil {
		a.LoggerService.LogInfo("Stopping report scheduler")
		a.ReportSchedulerService.Stop()
	}

	if a.MonitorServer != nil {
		a.LoggerService.LogInfo("Stopping monitor server")
		a.MonitorServer.Stop()
	}

	if err := database.Close(); err != nil {
		a.LoggerService.LogError("Error closing database", err)
	} else {
		a.LoggerService.LogInfo("Database connection closed successfully")
	}

	a.LoggerService.LogInfo("Application shutdown complete")
	return false
}

// shutdown is called at application termination
func (a *App) shutdown(ctx context.Context) {
}

// initializeServices (re)creates the domain services. Run once before
// binding so Wails can generate bindings, and again after the database
// connection is established.
func (a *App) initializeServices() {
	a.CycleService = services.NewCycleService()
	a.CageService = services.NewCageService()
	a.ProductionService = services.NewProductionService()
	a.FeedService = services.NewFeedService()
	a.SalesService = services.NewSalesService()
	a.ExpenseService = services.NewExpenseService()
	a.VaccinationService = services.NewVaccinationService()
	a.DashboardService = services.NewDashboardService()
	a.DataService = services.NewDataService()
	a.BackupService = services.NewBackupService()
	a.SettingsService = services.NewSettingsService()
	a.GoogleSheetsService = services.NewGoogleSheetsService()
	a.ReportSchedulerService = services.NewReportSchedulerService(a.GoogleSheetsService)
}

// CompleteSetup finishes the first-run wizard and brings the app fully up
func (a *App) CompleteSetup(cfg *config.AppConfig) error {
	if err := a.ConfigManagerService.CompleteSetup(cfg); err != nil {
		return err
	}

	a.LoggerService.LogInfo("Setup complete, initializing services")
	a.initializeServices()
	a.isFirstRun = false
	a.startBackgroundServices()
	return nil
}

func main() {
	// Initialize logger first to catch all errors
	loggerService := services.NewLoggerService()
	if loggerService == nil {
		fmt.Println("CRITICAL: Logger service failed to initialize")
		os.Exit(1)
	}
	defer loggerService.Close()

	defer func() {
		if r := recover(); r != nil {
			loggerService.LogPanic(r)
			os.Exit(1)
		}
	}()

	loggerService.LogInfo("Application starting", "Poultry Farm Manager")

	// .env is a development convenience; config.json is the real source
	if err := godotenv.Load(".env"); err != nil {
		loggerService.LogWarning(".env file not found, will use config.json if available")
	}

	app := NewApp()
	app.LoggerService = loggerService
	app.ConfigManagerService = services.NewConfigManagerService()

	isFirstRun, err := app.ConfigManagerService.IsFirstRun()
	if err != nil {
		loggerService.LogWarning("Could not check first run status", err.Error())
		isFirstRun = true
	}
	app.isFirstRun = isFirstRun

	// Always construct services so Wails can generate bindings
	loggerService.LogInfo("Initializing services")
	app.initializeServices()

	if !isFirstRun {
		loggerService.LogInfo("Loading configuration from config.json")
		cfg, err := app.ConfigManagerService.GetConfig()
		if err != nil {
			loggerService.LogError("Error loading config, will show setup wizard", err)
			app.isFirstRun = true
			isFirstRun = true
		} else {
			loggerService.LogInfo("Initializing database")
			if err := database.Initialize(cfg); err != nil {
				loggerService.LogError("Failed to initialize database", err)
				app.isFirstRun = true
				isFirstRun = true
			}
		}

		if !isFirstRun {
			loggerService.LogInfo("Reinitializing services with database connection")
			app.initializeServices()
		}
	}

	if isFirstRun {
		loggerService.LogInfo("First run detected - setup wizard will be shown")
	}

	bindList := []interface{}{
		app,
		app.LoggerService,
		app.ConfigManagerService,
		app.CycleService,
		app.CageService,
		app.ProductionService,
		app.FeedService,
		app.SalesService,
		app.ExpenseService,
		app.VaccinationService,
		app.DashboardService,
		app.DataService,
		app.BackupService,
		app.SettingsService,
		app.GoogleSheetsService,
		app.ReportSchedulerService,
	}

	err = wails.Run(&options.App{
		Title:  "Poultry Farm Manager",
		Width:  1400,
		Height: 900,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 27, G: 38, B: 54, A: 1},
		OnStartup:        app.startup,
		OnDomReady:       app.domReady,
		OnBeforeClose:    app.beforeClose,
		OnShutdown:       app.shutdown,
		Bind:             bindList,
		Windows: &windows.Options{
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
			DisableWindowIcon:    false,
		},
		Menu: nil,
	})

	if err != nil {
		loggerService.LogError("Wails application error", err)
		println("Error:", err.Error())
	}
}
