package ingest

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/procure-cli/internal/model"
)

// ErrUnsupportedDocument is returned when a document type cannot be stored
// as a quote record.
var ErrUnsupportedDocument = eris.New("ingest: unsupported document type")

// ToQuoteRecord maps a quote or proforma invoice onto the formal insert
// record. A proforma invoice is stored against the quote it references, or
// against a quote numbered like the invoice when it references none.
func ToQuoteRecord(doc *model.ExtractedDocument) (*model.QuoteRecord, error) {
	date, err := doc.Date()
	if err != nil {
		return nil, err
	}
	if len(doc.LineItems) == 0 {
		return nil, eris.New("ingest: document has no line items")
	}

	items := make([]model.QuoteLineItem, 0, len(doc.LineItems))
	for i, li := range doc.LineItems {
		sku := strings.TrimSpace(li.SKU)
		if sku == "" {
			return nil, eris.Errorf("ingest: line %d (%s) has no sku", i+1, li.Description)
		}
		items = append(items, model.QuoteLineItem{
			SKU:         sku,
			Description: strings.TrimSpace(li.Description),
			Qty:         li.Qty,
			UnitPrice:   li.UnitPrice,
			Total:       li.Total,
		})
	}

	rec := &model.QuoteRecord{
		Supplier: model.Supplier{Name: doc.SupplierName, Currency: doc.Currency},
		Quote: model.Quote{
			QuoteNumber: doc.DocumentNumber,
			QuoteDate:   date,
			Currency:    doc.Currency,
			TotalValue:  doc.TotalValue,
			Items:       items,
		},
	}

	switch doc.DocumentType {
	case model.DocQuote:
	case model.DocProformaInvoice:
		if ref := firstNonEmpty(doc.ReferenceNumbers); ref != "" {
			rec.Quote.QuoteNumber = ref
		}
		rec.Proforma = &model.ProformaInvoice{
			InvoiceNumber: doc.DocumentNumber,
			InvoiceDate:   date,
			Currency:      doc.Currency,
			TotalValue:    doc.TotalValue,
		}
	default:
		return nil, eris.Wrapf(ErrUnsupportedDocument, "%q in formal mode", doc.DocumentType)
	}
	return rec, nil
}

// ToPriceHistory flattens every line item into a price observation.
func ToPriceHistory(doc *model.ExtractedDocument, source string) ([]model.PriceHistoryEntry, error) {
	date, err := doc.Date()
	if err != nil {
		return nil, err
	}
	entries := make([]model.PriceHistoryEntry, 0, len(doc.LineItems))
	for _, li := range doc.LineItems {
		entries = append(entries, model.PriceHistoryEntry{
			EntryDate:    date,
			SupplierName: doc.SupplierName,
			SKU:          strings.TrimSpace(li.SKU),
			Description:  strings.TrimSpace(li.Description),
			Qty:          li.Qty,
			UnitPrice:    li.UnitPrice,
			Currency:     doc.Currency,
			Source:       source,
		})
	}
	if len(entries) == 0 {
		return nil, eris.New("ingest: document has no line items")
	}
	return entries, nil
}

func firstNonEmpty(ss []string) string {
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return ""
}
