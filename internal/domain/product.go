package domain

import "time"

type Product struct {
	ID                int64     `json:"id"`
	OrganisationID    int64     `json:"organisation_id"`
	CategoryID        *int64    `json:"category_id,omitempty"`
	SubCategoryID     *int64    `json:"subcategory_id,omitempty"`
	Name              string    `json:"name"`
	SKU               string    `json:"sku"`
	PriceCents        int64     `json:"price_cents"`
	Quantity          int       `json:"quantity"`
	MinimumStockLevel int       `json:"minimum_stock_level"`
	CreatedOn         time.Time `json:"created_on"`
	UpdatedOn         time.Time `json:"updated_on"`
}

// BelowMinimum reports whether current stock has crossed the alert threshold.
func (p *Product) BelowMinimum() bool {
	return p.Quantity <= p.MinimumStockLevel
}

type ProductCategory struct {
	ID             int64  `json:"id"`
	OrganisationID int64  `json:"organisation_id"`
	Name           string `json:"name"`
}

type ProductSubCategory struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
}

type StockAlertType string

const (
	StockAlertLowStock   StockAlertType = "low_stock"
	StockAlertOutOfStock StockAlertType = "out_of_stock"
)

type StockAlertSeverity string

const (
	StockAlertWarning  StockAlertSeverity = "warning"
	StockAlertCritical StockAlertSeverity = "critical"
)

// StockAlert is a first-class record created when stock crosses its
// threshold. Unrelated product saves never create one.
type StockAlert struct {
	ID         int64              `json:"id"`
	ProductID  int64              `json:"product_id"`
	AlertType  StockAlertType     `json:"alert_type"`
	Severity   StockAlertSeverity `json:"severity"`
	Message    string             `json:"message"`
	IsResolved bool               `json:"is_resolved"`
	CreatedOn  time.Time          `json:"created_on"`
}
