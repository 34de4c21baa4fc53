package extract

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/procure-cli/internal/metrics"
	"github.com/sells-group/procure-cli/internal/model"
	"github.com/sells-group/procure-cli/pkg/gemini"
)

// GeminiExtractor sends the PDF inline to Gemini and asks for JSON.
type GeminiExtractor struct {
	client gemini.Client
	model  string
}

// NewGemini creates a GeminiExtractor.
func NewGemini(client gemini.Client, model string) *GeminiExtractor {
	return &GeminiExtractor{client: client, model: model}
}

func (e *GeminiExtractor) Extract(ctx context.Context, doc Document) (*model.ExtractedDocument, error) {
	if err := checkPDF(doc); err != nil {
		return nil, err
	}

	var temp float32
	resp, err := e.client.Generate(ctx, gemini.GenerateRequest{
		Model:       e.model,
		Prompt:      Instruction,
		Attachments: []gemini.Attachment{{Data: doc.Data, MIMEType: "application/pdf"}},
		Temperature: &temp,
		JSON:        true,
	})
	if err != nil {
		return nil, eris.Wrapf(err, "extract: gemini %s", doc.Name)
	}
	metrics.LLMTokens.WithLabelValues("gemini", "input").Add(float64(resp.InputTokens))
	metrics.LLMTokens.WithLabelValues("gemini", "output").Add(float64(resp.OutputTokens))

	out, err := Parse(resp.Text)
	if err != nil {
		return nil, eris.Wrapf(err, "extract: %s", doc.Name)
	}
	zap.L().Info("document extracted",
		zap.String("file", doc.Name),
		zap.String("provider", "gemini"),
		zap.String("type", string(out.DocumentType)),
		zap.Int("line_items", len(out.LineItems)),
	)
	return out, nil
}
