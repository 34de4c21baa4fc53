// Package ask answers supply-chain questions: it extracts search keywords,
// pulls matching rows from several read views concurrently, formats them
// into a prompt and returns the model's cleaned-up answer.
package ask

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/procure-cli/internal/metrics"
)

// ErrUnknownProfile is returned when a request names no configured profile.
var ErrUnknownProfile = eris.New("ask: unknown profile")

// CompletionRequest is a single non-streaming completion call.
type CompletionRequest struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int64
}

// Completion is the text answer from a completion call.
type Completion struct {
	Text         string
	Model        string
	InputTokens  int64
	OutputTokens int64
}

// Completer calls an external LLM completion service once, without retries.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}

// Prepared is the assembled input for one question.
type Prepared struct {
	Profile  Profile
	Keywords []string
	Sections []Section
	Prompt   string
}

// Answer is the result of one question.
type Answer struct {
	Text     string   `json:"answer"`
	Keywords []string `json:"keywords"`
	Model    string   `json:"model,omitempty"`
}

// Service runs the ask pipeline with injected data and model clients.
type Service struct {
	querier   Querier
	completer Completer
	profiles  Profiles
}

// New creates a Service. profiles must contain DefaultProfile.
func New(querier Querier, completer Completer, profiles Profiles) *Service {
	return &Service{
		querier:   querier,
		completer: completer,
		profiles:  profiles,
	}
}

// Profiles returns the configured profiles.
func (s *Service) Profiles() Profiles {
	return s.profiles
}

// Prepare runs keyword extraction, the source fan-out and prompt assembly
// without calling the model.
func (s *Service) Prepare(ctx context.Context, profileName, question string) (*Prepared, error) {
	profile, ok := s.profiles[profileName]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownProfile, "profile %q", profileName)
	}
	sources, err := profile.ResolveSources()
	if err != nil {
		return nil, err
	}

	keywords := ExtractKeywords(question)
	rows, err := FetchContext(ctx, s.querier, keywords, sources)
	if err != nil {
		return nil, err
	}

	sections := make([]Section, len(sources))
	for i, src := range sources {
		sections[i] = Section{Source: src, Block: FormatSource(src, rows[src.Name])}
	}

	return &Prepared{
		Profile:  profile,
		Keywords: keywords,
		Sections: sections,
		Prompt:   BuildPrompt(question, sections),
	}, nil
}

// Ask answers question using the named profile.
func (s *Service) Ask(ctx context.Context, profileName, question string) (*Answer, error) {
	start := time.Now()
	log := zap.L().With(zap.String("profile", profileName))

	ans, err := s.ask(ctx, profileName, question)
	metrics.AskDuration.WithLabelValues(profileName).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AskRequests.WithLabelValues(profileName, "error").Inc()
		log.Error("ask failed", zap.Error(err))
		return nil, err
	}

	metrics.AskRequests.WithLabelValues(profileName, "ok").Inc()
	log.Info("ask answered",
		zap.Strings("keywords", ans.Keywords),
		zap.Int("answer_len", len(ans.Text)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return ans, nil
}

func (s *Service) ask(ctx context.Context, profileName, question string) (*Answer, error) {
	prep, err := s.Prepare(ctx, profileName, question)
	if err != nil {
		return nil, err
	}

	resp, err := s.completer.Complete(ctx, CompletionRequest{
		System:      prep.Prompt,
		User:        question,
		Temperature: prep.Profile.Temperature,
		MaxTokens:   prep.Profile.MaxTokens,
	})
	if err != nil {
		return nil, eris.Wrap(err, "ask: completion")
	}

	return &Answer{
		Text:     Sanitize(resp.Text),
		Keywords: prep.Keywords,
		Model:    resp.Model,
	}, nil
}
