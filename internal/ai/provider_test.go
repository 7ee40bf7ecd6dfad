package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonHandler(t *testing.T, status int, body any, inspect func(r *http.Request, payload map[string]any)) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		if inspect != nil {
			inspect(r, payload)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

func TestUsableKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"your_gemini_api_key_here", false},
		{"YOUR_OPENAI_KEY", false},
		{"AIzaSyExample", true},
		{"sk-test", true},
	}
	for _, tt := range tests {
		if got := usableKey(tt.key); got != tt.want {
			t.Errorf("usableKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestGemini_Generate(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, http.StatusOK, map[string]any{
		"candidates": []any{map[string]any{
			"content": map[string]any{"parts": []any{
				map[string]any{"text": "Hello "},
				map[string]any{"text": "world"},
			}},
		}},
	}, func(r *http.Request, payload map[string]any) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "g-key", r.Header.Get("x-goog-api-key"))

		cfg := payload["generationConfig"].(map[string]any)
		assert.Equal(t, 0.3, cfg["temperature"])
		assert.Equal(t, float64(120), cfg["maxOutputTokens"])
		assert.NotNil(t, payload["systemInstruction"])

		contents := payload["contents"].([]any)
		parts := contents[0].(map[string]any)["parts"].([]any)
		assert.Equal(t, "prompt", parts[0].(map[string]any)["text"])
	}))
	defer srv.Close()

	g := NewGemini(ClientConfig{APIKey: "g-key", Model: "gemini-test", BaseURL: srv.URL})
	require.True(t, g.Configured())

	text, err := g.Generate(context.Background(), "prompt", Options{System: "be brief", Temperature: 0.3, MaxTokens: 120})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", text)
}

func TestGemini_Errors(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, http.StatusForbidden,
		map[string]any{"error": map[string]any{"message": "API key not valid"}}, nil))
	defer srv.Close()

	g := NewGemini(ClientConfig{APIKey: "bad", BaseURL: srv.URL})
	_, err := g.Generate(context.Background(), "prompt", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "API key not valid")

	empty := httptest.NewServer(jsonHandler(t, http.StatusOK, map[string]any{"candidates": []any{}}, nil))
	defer empty.Close()
	_, err = NewGemini(ClientConfig{APIKey: "k", BaseURL: empty.URL}).Generate(context.Background(), "p", Options{})
	assert.ErrorContains(t, err, "no candidates")

	_, err = NewGemini(ClientConfig{APIKey: "your_gemini_api_key_here"}).Generate(context.Background(), "p", Options{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestOpenAI_Generate(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, http.StatusOK, map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": "Answer"}}},
	}, func(r *http.Request, payload map[string]any) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "gpt-test", payload["model"])
		assert.Equal(t, float64(300), payload["max_tokens"])

		msgs := payload["messages"].([]any)
		require.Len(t, msgs, 2)
		assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
		assert.Equal(t, "user", msgs[1].(map[string]any)["role"])
		assert.Equal(t, "question", msgs[1].(map[string]any)["content"])
	}))
	defer srv.Close()

	o := NewOpenAI(ClientConfig{APIKey: "sk-test", Model: "gpt-test", BaseURL: srv.URL + "/"})
	text, err := o.Generate(context.Background(), "question", Options{System: "sys", MaxTokens: 300, Temperature: 0.7})
	require.NoError(t, err)
	assert.Equal(t, "Answer", text)
}

func TestOpenAI_StatusError(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, http.StatusTooManyRequests,
		map[string]any{"error": map[string]any{"message": "quota exceeded"}}, nil))
	defer srv.Close()

	_, err := NewOpenAI(ClientConfig{APIKey: "sk", BaseURL: srv.URL}).Generate(context.Background(), "q", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai: status 429: quota exceeded")
}

func TestDefaults(t *testing.T) {
	g := NewGemini(ClientConfig{})
	assert.Equal(t, DefaultGeminiModel, g.model)
	assert.False(t, g.Configured())

	o := NewOpenAI(ClientConfig{})
	assert.Equal(t, DefaultOpenAIModel, o.model)
	assert.False(t, o.Configured())
}

func TestArrange(t *testing.T) {
	g := NewGemini(ClientConfig{})
	o := NewOpenAI(ClientConfig{})

	got := Arrange([]string{"OpenAI", "gemini"}, g, o)
	assert.Equal(t, []Provider{o, g}, got)

	got = Arrange([]string{"openai"}, g, o)
	assert.Equal(t, []Provider{o, g}, got)

	got = Arrange(nil, g, o)
	assert.Equal(t, []Provider{g, o}, got)
}
