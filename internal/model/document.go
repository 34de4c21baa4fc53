package model

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// DocumentType classifies an extracted supplier document.
type DocumentType string

// Document types recognised by extraction.
const (
	DocQuote           DocumentType = "quote"
	DocProformaInvoice DocumentType = "proforma_invoice"
	DocPurchaseOrder   DocumentType = "purchase_order"
	DocInvoice         DocumentType = "invoice"
)

// ExtractedDocument is the structured record returned by document extraction.
type ExtractedDocument struct {
	DocumentType     DocumentType    `json:"document_type"`
	SupplierName     string          `json:"supplier_name"`
	DocumentNumber   string          `json:"document_number"`
	DocumentDate     string          `json:"document_date"`
	ReferenceNumbers []string        `json:"reference_numbers"`
	Currency         string          `json:"currency"`
	TotalValue       float64         `json:"total_value"`
	LineItems        []ExtractedItem `json:"line_items"`
}

// ExtractedItem is one line item from an extracted document.
type ExtractedItem struct {
	SKU         string  `json:"sku"`
	Description string  `json:"description"`
	Qty         float64 `json:"qty"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

var documentDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2 Jan 2006",
	"January 2, 2006",
	"2006/01/02",
}

// Date parses DocumentDate. An empty date yields the zero time.
func (d *ExtractedDocument) Date() (time.Time, error) {
	s := strings.TrimSpace(d.DocumentDate)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range documentDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, eris.Errorf("model: unrecognised document date %q", d.DocumentDate)
}
