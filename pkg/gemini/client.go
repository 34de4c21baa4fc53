// Package gemini wraps the Google GenAI SDK for single-shot text and
// document generation.
package gemini

import (
	"context"

	"github.com/rotisserie/eris"
	"google.golang.org/genai"
)

// Client defines the Gemini operations used for answering and extraction.
type Client interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// GenerateRequest is our own request type for Generate.
type GenerateRequest struct {
	Model           string
	System          string
	Prompt          string
	Attachments     []Attachment
	Temperature     *float32
	MaxOutputTokens int32
	// JSON requests an application/json response body.
	JSON bool
}

// Attachment is an inline file sent alongside the prompt.
type Attachment struct {
	Data     []byte
	MIMEType string
}

// GenerateResponse is our own response type from Generate.
type GenerateResponse struct {
	Text         string
	Model        string
	InputTokens  int64
	OutputTokens int64
}

// Option customizes the SDK client configuration.
type Option func(*genai.ClientConfig)

// WithBaseURL points the client at a different API host.
func WithBaseURL(url string) Option {
	return func(cfg *genai.ClientConfig) {
		cfg.HTTPOptions.BaseURL = url
	}
}

// sdkClient implements Client using google.golang.org/genai.
type sdkClient struct {
	client *genai.Client
}

// NewClient creates a Gemini API client.
func NewClient(ctx context.Context, apiKey string, opts ...Option) (Client, error) {
	if apiKey == "" {
		return nil, eris.New("gemini: api key is required")
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	for _, o := range opts {
		o(cfg)
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}
	return &sdkClient{client: client}, nil
}

func (c *sdkClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if req.Model == "" {
		return nil, eris.New("gemini: model is required")
	}

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, toContents(req), toConfig(req))
	if err != nil {
		return nil, eris.Wrapf(err, "gemini: generate content (%s)", req.Model)
	}
	return fromResponse(resp, req.Model), nil
}

func toContents(req GenerateRequest) []*genai.Content {
	parts := make([]*genai.Part, 0, len(req.Attachments)+1)
	for _, a := range req.Attachments {
		parts = append(parts, genai.NewPartFromBytes(a.Data, a.MIMEType))
	}
	if req.Prompt != "" {
		parts = append(parts, genai.NewPartFromText(req.Prompt))
	}
	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
}

func toConfig(req GenerateRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     req.Temperature,
		MaxOutputTokens: req.MaxOutputTokens,
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}
	return cfg
}

func fromResponse(resp *genai.GenerateContentResponse, model string) *GenerateResponse {
	out := &GenerateResponse{
		Text:  resp.Text(),
		Model: model,
	}
	if resp.ModelVersion != "" {
		out.Model = resp.ModelVersion
	}
	if u := resp.UsageMetadata; u != nil {
		out.InputTokens = int64(u.PromptTokenCount)
		out.OutputTokens = int64(u.CandidatesTokenCount)
	}
	return out
}
