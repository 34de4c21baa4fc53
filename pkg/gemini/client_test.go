package gemini

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newTestClient(t *testing.T, baseURL string) Client {
	t.Helper()
	c, err := NewClient(context.Background(), "test-key", WithBaseURL(baseURL))
	require.NoError(t, err)
	return c
}

func writeCandidate(w http.ResponseWriter, text string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": text}},
			},
			"finishReason": "STOP",
		}},
		"usageMetadata": map[string]any{
			"promptTokenCount":     120,
			"candidatesTokenCount": 30,
		},
		"modelVersion": "gemini-2.5-flash",
	})
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key is required")
}

func TestSDKClient_Generate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-2.5-flash:generateContent")

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Contains(t, string(body), "Which supplier is cheapest?")
		assert.Contains(t, string(body), "You answer procurement questions")

		writeCandidate(w, "ABB is cheapest.")
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	resp, err := c.Generate(context.Background(), GenerateRequest{
		Model:           "gemini-2.5-flash",
		System:          "You answer procurement questions",
		Prompt:          "Which supplier is cheapest?",
		Temperature:     genai.Ptr[float32](0),
		MaxOutputTokens: 512,
	})
	require.NoError(t, err)
	assert.Equal(t, "ABB is cheapest.", resp.Text)
	assert.Equal(t, "gemini-2.5-flash", resp.Model)
	assert.Equal(t, int64(120), resp.InputTokens)
	assert.Equal(t, int64(30), resp.OutputTokens)
}

func TestSDKClient_Generate_InlineDocumentJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Contains(t, string(body), "application/pdf")
		assert.Contains(t, string(body), "application/json")

		writeCandidate(w, `{"document_type":"quote"}`)
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	resp, err := c.Generate(context.Background(), GenerateRequest{
		Model:       "gemini-2.5-flash",
		Prompt:      "Extract the document.",
		Attachments: []Attachment{{Data: []byte("%PDF-1.4 test"), MIMEType: "application/pdf"}},
		JSON:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"document_type":"quote"}`, resp.Text)
}

func TestSDKClient_Generate_Error(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"error": map[string]any{
				"code":    400,
				"message": "API key not valid",
				"status":  "INVALID_ARGUMENT",
			},
		})
	}))
	defer ts.Close()

	c := newTestClient(t, ts.URL)
	_, err := c.Generate(context.Background(), GenerateRequest{Model: "gemini-2.5-flash", Prompt: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini: generate content")
}

func TestSDKClient_Generate_RequiresModel(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	_, err := c.Generate(context.Background(), GenerateRequest{Prompt: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model is required")
}

func TestToContents_OrdersAttachmentsBeforePrompt(t *testing.T) {
	contents := toContents(GenerateRequest{
		Prompt:      "extract",
		Attachments: []Attachment{{Data: []byte("x"), MIMEType: "application/pdf"}},
	})
	require.Len(t, contents, 1)
	require.Len(t, contents[0].Parts, 2)
	require.NotNil(t, contents[0].Parts[0].InlineData)
	assert.Equal(t, "application/pdf", contents[0].Parts[0].InlineData.MIMEType)
	assert.Equal(t, "extract", contents[0].Parts[1].Text)
}

func TestToConfig(t *testing.T) {
	cfg := toConfig(GenerateRequest{System: "sys", JSON: true, MaxOutputTokens: 100})
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
	assert.Equal(t, int32(100), cfg.MaxOutputTokens)
	require.NotNil(t, cfg.SystemInstruction)
	assert.Equal(t, "sys", cfg.SystemInstruction.Parts[0].Text)

	plain := toConfig(GenerateRequest{})
	assert.Empty(t, plain.ResponseMIMEType)
	assert.Nil(t, plain.SystemInstruction)
}
