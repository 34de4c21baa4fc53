package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/procure-cli/internal/model"
)

const quoteJSON = `{
  "document_type": "quote",
  "supplier_name": " Schneider Electric ",
  "document_number": "Q-2025-014",
  "document_date": "2025-02-01",
  "reference_numbers": ["RFQ-88"],
  "currency": "usd",
  "total_value": 250,
  "line_items": [
    {"sku": "LC1D09M7", "description": "Contactor 9A", "qty": 10, "unit_price": 12, "total": 120},
    {"sku": null, "description": "Motor breaker", "qty": 5, "unit_price": 26, "total": null}
  ]
}`

func TestParse_Plain(t *testing.T) {
	doc, err := Parse(quoteJSON)
	require.NoError(t, err)
	assert.Equal(t, model.DocQuote, doc.DocumentType)
	assert.Equal(t, "Schneider Electric", doc.SupplierName)
	assert.Equal(t, "USD", doc.Currency)
	assert.Equal(t, []string{"RFQ-88"}, doc.ReferenceNumbers)
	require.Len(t, doc.LineItems, 2)
	assert.Equal(t, "", doc.LineItems[1].SKU)
	assert.Equal(t, 26.0, doc.LineItems[1].UnitPrice)
}

func TestParse_NullHeaderFields(t *testing.T) {
	doc, err := Parse(`{
  "document_type": "proforma_invoice",
  "supplier_name": "ABB Sakti",
  "document_number": null,
  "document_date": null,
  "currency": null,
  "line_items": [{"sku": "AF09", "description": "Contactor", "qty": 2, "unit_price": 40}]
}`)
	require.NoError(t, err)
	assert.Empty(t, doc.DocumentNumber)
	assert.Empty(t, doc.DocumentDate)
	assert.Empty(t, doc.Currency)
	require.Len(t, doc.LineItems, 1)
}

func TestParse_Fenced(t *testing.T) {
	for _, in := range []string{
		"```json\n" + quoteJSON + "\n```",
		"```\n" + quoteJSON + "\n```",
		"Here is the record:\n" + quoteJSON + "\nDone.",
	} {
		doc, err := Parse(in)
		require.NoError(t, err)
		assert.Equal(t, "Q-2025-014", doc.DocumentNumber)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		msg  string
	}{
		{"empty", "   ", "empty model response"},
		{"not json", "{not json}", "not valid JSON"},
		{"unknown type", `{"document_type":"receipt","supplier_name":"A","line_items":[]}`, "failed validation"},
		{"missing supplier", `{"document_type":"quote","line_items":[]}`, "supplier_name"},
		{"negative qty", `{"document_type":"quote","supplier_name":"A","line_items":[{"description":"x","qty":-1,"unit_price":1}]}`, "failed validation"},
		{"string price", `{"document_type":"quote","supplier_name":"A","line_items":[{"description":"x","qty":1,"unit_price":"1,200"}]}`, "failed validation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestCleanJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, cleanJSON("  {\"a\":1}  "))
	assert.Equal(t, "no braces", cleanJSON("no braces"))
}
