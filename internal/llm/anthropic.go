package llm

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/procure-cli/internal/ask"
	"github.com/sells-group/procure-cli/pkg/anthropic"
)

// AnthropicCompleter answers with the Anthropic Messages API.
type AnthropicCompleter struct {
	client anthropic.Client
	model  string
}

// NewAnthropic creates an AnthropicCompleter for model.
func NewAnthropic(client anthropic.Client, model string) *AnthropicCompleter {
	return &AnthropicCompleter{client: client, model: model}
}

func (c *AnthropicCompleter) Complete(ctx context.Context, req ask.CompletionRequest) (*ask.Completion, error) {
	temp := req.Temperature
	resp, err := c.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       c.model,
		MaxTokens:   req.MaxTokens,
		System:      []anthropic.SystemBlock{{Text: req.System}},
		Messages:    []anthropic.Message{{Role: "user", Content: req.User}},
		Temperature: &temp,
	})
	if err != nil {
		return nil, err
	}

	resp.Usage.LogCost(resp.Model, "ask")
	recordTokens(ProviderAnthropic, resp.Usage.InputTokens, resp.Usage.OutputTokens)

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, eris.Wrapf(ErrEmptyResponse, "anthropic stop reason %q", resp.StopReason)
	}
	return &ask.Completion{
		Text:         text,
		Model:        resp.Model,
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
	}, nil
}
