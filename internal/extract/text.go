package extract

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/procure-cli/internal/metrics"
	"github.com/sells-group/procure-cli/internal/model"
	"github.com/sells-group/procure-cli/internal/ocr"
	"github.com/sells-group/procure-cli/pkg/anthropic"
)

const maxExtractTokens = 4096

// TextExtractor converts the PDF to text first and has Claude structure it.
type TextExtractor struct {
	ocr    ocr.Extractor
	client anthropic.Client
	model  string
}

// NewText creates a TextExtractor.
func NewText(text ocr.Extractor, client anthropic.Client, model string) *TextExtractor {
	return &TextExtractor{ocr: text, client: client, model: model}
}

func (e *TextExtractor) Extract(ctx context.Context, doc Document) (*model.ExtractedDocument, error) {
	if err := checkPDF(doc); err != nil {
		return nil, err
	}

	text, err := e.ocr.ExtractText(ctx, doc.Data)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: text from %s", doc.Name)
	}
	if strings.TrimSpace(text) == "" {
		return nil, eris.Errorf("extract: no text found in %s", doc.Name)
	}

	var temp float64
	resp, err := e.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       e.model,
		MaxTokens:   maxExtractTokens,
		System:      []anthropic.SystemBlock{{Text: Instruction, CacheControl: &anthropic.CacheControl{TTL: "5m"}}},
		Messages:    []anthropic.Message{{Role: "user", Content: "DOCUMENT TEXT:\n\n" + text}},
		Temperature: &temp,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "extract: anthropic %s", doc.Name)
	}
	resp.Usage.LogCost(resp.Model, "extract")
	metrics.LLMTokens.WithLabelValues("anthropic", "input").Add(float64(resp.Usage.InputTokens))
	metrics.LLMTokens.WithLabelValues("anthropic", "output").Add(float64(resp.Usage.OutputTokens))

	out, err := Parse(resp.Text())
	if err != nil {
		return nil, eris.Wrapf(err, "extract: %s", doc.Name)
	}
	zap.L().Info("document extracted",
		zap.String("file", doc.Name),
		zap.String("provider", "text"),
		zap.Int("text_len", len(text)),
		zap.String("type", string(out.DocumentType)),
		zap.Int("line_items", len(out.LineItems)),
	)
	return out, nil
}
