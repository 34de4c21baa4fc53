// Package llm adapts the provider SDK wrappers to the ask pipeline's
// Completer interface.
package llm

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/procure-cli/internal/ask"
	"github.com/sells-group/procure-cli/internal/config"
	"github.com/sells-group/procure-cli/internal/metrics"
	"github.com/sells-group/procure-cli/pkg/anthropic"
	"github.com/sells-group/procure-cli/pkg/gemini"
)

// Provider names.
const (
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// ErrEmptyResponse is returned when the model produced no text.
var ErrEmptyResponse = eris.New("llm: empty response")

// New builds the Completer selected by cfg.LLM.Provider.
func New(ctx context.Context, cfg *config.Config) (ask.Completer, error) {
	switch cfg.LLM.Provider {
	case ProviderAnthropic, "":
		return NewAnthropic(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic.Model), nil
	case ProviderGemini:
		client, err := gemini.NewClient(ctx, cfg.Gemini.Key)
		if err != nil {
			return nil, err
		}
		return NewGemini(client, cfg.Gemini.Model), nil
	default:
		return nil, eris.Errorf("llm: unknown provider %q", cfg.LLM.Provider)
	}
}

func recordTokens(provider string, in, out int64) {
	if in > 0 {
		metrics.LLMTokens.WithLabelValues(provider, "input").Add(float64(in))
	}
	if out > 0 {
		metrics.LLMTokens.WithLabelValues(provider, "output").Add(float64(out))
	}
}
