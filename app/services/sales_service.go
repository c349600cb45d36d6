package services

import (
	"encoding/base64"
	"fmt"
	"time"

	"PoultryApp/app/models"

	"github.com/skip2/go-qrcode"
)

// SalesService manages egg and bird sales
type SalesService struct {
	*BaseService
}

// NewSalesService creates a new sales service
func NewSalesService() *SalesService {
	return &SalesService{BaseService: NewBaseService()}
}

// GetSales returns sales for a cycle (0 = all), newest first
func (s *SalesService) GetSales(cycleID uint) ([]models.Sale, error) {
	if err := s.EnsureDB(); err != nil {
		return nil, err
	}
	var sales []models.Sale
	query := s.GetDB().Order("date DESC")
	if cycleID != 0 {
		query = query.Where("cycle_id = ?", cycleID)
	}
	err := query.Find(&sales).Error
	return sales, err
}

// CreateSale records a sale. When the amount is omitted it is derived from
// quantity and unit price for the sale type.
func (s *SalesService) CreateSale(sale *models.Sale) error {
	if sale.CycleID == 0 {
		return fmt.Errorf("sale must belong to a cycle")
	}
	if sale.Date == "" {
		sale.Date = time.Now().Format("2006-01-02")
	}
	if sale.SaleType == "" {
		sale.SaleType = "eggs"
	}
	if sale.PaymentMethod == "" {
		sale.PaymentMethod = "cash"
	}
	if sale.Amount == 0 {
		switch sale.SaleType {
		case "birds":
			sale.Amount = float64(sale.BirdQuantity) * sale.PricePerBird
		default:
			sale.Amount = sale.Crates * sale.PricePerCrate
		}
	}
	return s.Create(sale)
}

// UpdateSale saves changes to a sale
func (s *SalesService) UpdateSale(sale *models.Sale) error {
	if sale.ID == 0 {
		return fmt.Errorf("sale id is required")
	}
	return s.Save(sale)
}

// DeleteSale removes a sale
func (s *SalesService) DeleteSale(id uint) error {
	return s.Delete(&models.Sale{}, id)
}

// SalesSummary holds revenue aggregates for a cycle
type SalesSummary struct {
	TotalRevenue float64 `json:"total_revenue"`
	EggRevenue   float64 `json:"egg_revenue"`
	BirdRevenue  float64 `json:"bird_revenue"`
	CratesSold   float64 `json:"crates_sold"`
	BirdsSold    int     `json:"birds_sold"`
	SaleCount    int     `json:"sale_count"`
}

// GetSalesSummary aggregates a cycle's sales by type
func (s *SalesService) GetSalesSummary(cycleID uint) (*SalesSummary, error) {
	sales, err := s.GetSales(cycleID)
	if err != nil {
		return nil, err
	}

	summary := &SalesSummary{SaleCount: len(sales)}
	for _, sale := range sales {
		summary.TotalRevenue += sale.Amount
		if sale.SaleType == "birds" {
			summary.BirdRevenue += sale.Amount
			summary.BirdsSold += sale.BirdQuantity
		} else {
			summary.EggRevenue += sale.Amount
			summary.CratesSold += sale.Crates
		}
	}
	return summary, nil
}

// GenerateReceiptQR builds a QR code for a sale receipt and returns it as a
// base64 PNG for the UI to display or print.
func (s *SalesService) GenerateReceiptQR(saleID uint) (string, error) {
	var sale models.Sale
	if err := s.First(&sale, saleID); err != nil {
		return "", fmt.Errorf("sale %d not found: %w", saleID, err)
	}

	payload := fmt.Sprintf("SALE#%d|%s|%s|%.2f|%s",
		sale.ID, sale.Date, sale.SaleType, sale.Amount, sale.Customer)

	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("could not generate QR code: %w", err)
	}
	return base64.StdEncoding.EncodeToString(png), nil
}
