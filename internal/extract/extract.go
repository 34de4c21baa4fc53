// Package extract turns supplier PDFs (quotes, proforma invoices, POs) into
// structured records using an LLM.
package extract

import (
	"bytes"
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/procure-cli/internal/config"
	"github.com/sells-group/procure-cli/internal/model"
	"github.com/sells-group/procure-cli/internal/ocr"
	"github.com/sells-group/procure-cli/pkg/anthropic"
	"github.com/sells-group/procure-cli/pkg/gemini"
)

// Document is an uploaded file to extract.
type Document struct {
	Name     string
	Data     []byte
	MIMEType string
}

// Extractor returns the structured record for one document.
type Extractor interface {
	Extract(ctx context.Context, doc Document) (*model.ExtractedDocument, error)
}

// Instruction is sent with every document.
const Instruction = `Extract the procurement document into a single JSON object with exactly these keys:
document_type (one of "quote", "proforma_invoice", "purchase_order", "invoice"),
supplier_name, document_number, document_date (YYYY-MM-DD),
reference_numbers (array of strings: related quote, PI or PO numbers),
currency (ISO 4217 code), total_value (number),
line_items (array of objects with sku, description, qty, unit_price, total).
Use numbers without thousands separators or currency symbols. Use "" for unknown
text and 0 for unknown numbers. Return only the JSON object.`

// New builds the Extractor selected by cfg.Extract.Provider.
func New(ctx context.Context, cfg *config.Config) (Extractor, error) {
	switch cfg.Extract.Provider {
	case "gemini", "":
		client, err := gemini.NewClient(ctx, cfg.Gemini.Key)
		if err != nil {
			return nil, err
		}
		return NewGemini(client, cfg.Gemini.Model), nil
	case "mistral", "local":
		text, err := ocr.NewExtractor(cfg.Extract, cfg.Mistral)
		if err != nil {
			return nil, err
		}
		return NewText(text, anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.ExtractModel), nil
	default:
		return nil, eris.Errorf("extract: unknown provider %q", cfg.Extract.Provider)
	}
}

// ErrInvalidDocument is returned for uploads that are empty or not a PDF.
var ErrInvalidDocument = eris.New("extract: invalid document")

func checkPDF(doc Document) error {
	if len(doc.Data) == 0 {
		return eris.Wrapf(ErrInvalidDocument, "%s is empty", doc.Name)
	}
	if !bytes.HasPrefix(doc.Data, []byte("%PDF-")) {
		return eris.Wrapf(ErrInvalidDocument, "%s is not a PDF", doc.Name)
	}
	return nil
}
