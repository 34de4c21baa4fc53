// Package ocr turns supplier PDFs into plain text for text-only extraction.
package ocr

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/procure-cli/internal/config"
)

// Extractor extracts text content from a PDF held in memory.
type Extractor interface {
	ExtractText(ctx context.Context, pdf []byte) (string, error)
}

// NewExtractor creates an Extractor for the configured extraction provider.
// "mistral" uses Mistral OCR; "local" shells out to pdftotext.
func NewExtractor(cfg config.ExtractConfig, mistral config.MistralConfig) (Extractor, error) {
	switch cfg.Provider {
	case "local":
		return NewPdfToText(cfg.PdfToTextPath), nil
	case "mistral":
		if mistral.Key == "" {
			return nil, eris.New("ocr: mistral provider requires mistral.key")
		}
		return NewMistralOCR(mistral.Key, mistral.OCRModel), nil
	default:
		return nil, eris.Errorf("ocr: unknown provider %q", cfg.Provider)
	}
}
