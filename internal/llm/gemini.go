package llm

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/procure-cli/internal/ask"
	"github.com/sells-group/procure-cli/pkg/gemini"
)

// GeminiCompleter answers with the Gemini generateContent API.
type GeminiCompleter struct {
	client gemini.Client
	model  string
}

// NewGemini creates a GeminiCompleter for model.
func NewGemini(client gemini.Client, model string) *GeminiCompleter {
	return &GeminiCompleter{client: client, model: model}
}

func (c *GeminiCompleter) Complete(ctx context.Context, req ask.CompletionRequest) (*ask.Completion, error) {
	temp := float32(req.Temperature)
	resp, err := c.client.Generate(ctx, gemini.GenerateRequest{
		Model:           c.model,
		System:          req.System,
		Prompt:          req.User,
		Temperature:     &temp,
		MaxOutputTokens: int32(req.MaxTokens),
	})
	if err != nil {
		return nil, err
	}

	recordTokens(ProviderGemini, resp.InputTokens, resp.OutputTokens)

	if strings.TrimSpace(resp.Text) == "" {
		return nil, eris.Wrap(ErrEmptyResponse, "gemini")
	}
	return &ask.Completion{
		Text:         resp.Text,
		Model:        resp.Model,
		InputTokens:  resp.InputTokens,
		OutputTokens: resp.OutputTokens,
	}, nil
}
