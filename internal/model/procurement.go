package model

import (
	"math"
	"time"
)

// Company codes used to segment purchase orders.
const (
	CompanyICL = "ICL"
	CompanyISL = "ISL"
	CompanyMBS = "MBS"
)

// Supplier is a vendor we buy components from.
type Supplier struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Country      string    `json:"country,omitempty"`
	Currency     string    `json:"currency,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Component is a purchasable part identified by SKU.
type Component struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku"`
	Description string    `json:"description"`
	Brand       string    `json:"brand,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Quote is a supplier's priced offer for one or more components.
type Quote struct {
	ID          string          `json:"id"`
	SupplierID  string          `json:"supplier_id"`
	QuoteNumber string          `json:"quote_number"`
	QuoteDate   time.Time       `json:"quote_date"`
	Currency    string          `json:"currency"`
	TotalValue  float64         `json:"total_value"`
	Items       []QuoteLineItem `json:"items"`
}

// QuoteLineItem is a single priced line on a quote.
type QuoteLineItem struct {
	ComponentID string  `json:"component_id,omitempty"`
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	Brand       string  `json:"brand,omitempty"`
	Qty         float64 `json:"qty"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// LineTotal returns the stated total, or qty × unit price when absent.
func (li QuoteLineItem) LineTotal() float64 {
	if li.Total != 0 {
		return li.Total
	}
	return li.Qty * li.UnitPrice
}

// ProformaInvoice is the supplier's pre-payment invoice tied to a quote.
type ProformaInvoice struct {
	ID            string    `json:"id"`
	QuoteID       string    `json:"quote_id"`
	SupplierID    string    `json:"supplier_id"`
	InvoiceNumber string    `json:"invoice_number"`
	InvoiceDate   time.Time `json:"invoice_date"`
	Currency      string    `json:"currency"`
	TotalValue    float64   `json:"total_value"`
}

// QuoteRecord is everything the formal insert path writes for one document:
// supplier, components, quote, line items and an optional proforma invoice.
type QuoteRecord struct {
	Supplier Supplier
	Quote    Quote
	Proforma *ProformaInvoice
}

// SaveResult reports the identifiers created by a formal insert.
type SaveResult struct {
	SupplierID   string   `json:"supplier_id"`
	QuoteID      string   `json:"quote_id"`
	ComponentIDs []string `json:"component_ids"`
	ProformaID   string   `json:"proforma_id,omitempty"`
	LineItems    int64    `json:"line_items"`
}

// PurchaseOrder is a single-line purchase order entry.
type PurchaseOrder struct {
	ID           string    `json:"id"`
	PONumber     string    `json:"po_number"`
	PODate       time.Time `json:"po_date"`
	SupplierName string    `json:"supplier_name"`
	SKU          string    `json:"sku"`
	Description  string    `json:"description"`
	Brand        string    `json:"brand,omitempty"`
	Qty          float64   `json:"qty"`
	UnitPrice    float64   `json:"unit_price"`
	Currency     string    `json:"currency"`
	Company      string    `json:"company"`

	// Delivery dates feed supplier lead-time and on-time statistics.
	ExpectedDate *time.Time `json:"expected_date,omitempty"`
	ReceivedDate *time.Time `json:"received_date,omitempty"`
}

// Payment statuses.
const (
	PaymentPending = "pending"
	PaymentPartial = "partial"
	PaymentPaid    = "paid"
)

// Payment is a scheduled supplier payment against a purchase order.
type Payment struct {
	ID         string    `json:"id"`
	PONumber   string    `json:"po_number"`
	DueDate    time.Time `json:"due_date"`
	Amount     float64   `json:"amount"`
	PaidAmount float64   `json:"paid_amount"`
	Currency   string    `json:"currency"`
}

// Status derives the payment status from the paid amount.
func (p Payment) Status() string {
	switch {
	case p.PaidAmount <= 0:
		return PaymentPending
	case p.PaidAmount < p.Amount:
		return PaymentPartial
	default:
		return PaymentPaid
	}
}

// LandedCost records the all-in costs incurred to land a PO line.
type LandedCost struct {
	ID           string    `json:"id"`
	PONumber     string    `json:"po_number"`
	SKU          string    `json:"sku"`
	CostDate     time.Time `json:"cost_date"`
	Freight      float64   `json:"freight"`
	Duty         float64   `json:"duty"`
	Tax          float64   `json:"tax"`
	Other        float64   `json:"other"`
	FXRate       float64   `json:"fx_rate"`
	TrueUnitCost float64   `json:"true_unit_cost"`
}

// ComputeTrueUnitCost returns the landed unit cost in local currency:
// (unit price × qty × fx rate + freight + duty + tax + other) / qty.
// A zero fx rate is treated as 1. Returns 0 when qty is not positive.
func (c LandedCost) ComputeTrueUnitCost(unitPrice, qty float64) float64 {
	if qty <= 0 {
		return 0
	}
	fx := c.FXRate
	if fx == 0 {
		fx = 1
	}
	total := unitPrice*qty*fx + c.Freight + c.Duty + c.Tax + c.Other
	return math.Round(total/qty*100) / 100
}

// PriceHistoryEntry is a flat quick-entry price observation.
type PriceHistoryEntry struct {
	ID           string    `json:"id"`
	EntryDate    time.Time `json:"entry_date"`
	SupplierName string    `json:"supplier_name"`
	SKU          string    `json:"sku"`
	Description  string    `json:"description"`
	Qty          float64   `json:"qty"`
	UnitPrice    float64   `json:"unit_price"`
	Currency     string    `json:"currency"`
	Source       string    `json:"source"`
}
