package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMProvider(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestNewLLMProvider_DefaultModel(t *testing.T) {
	p, err := NewLLMProvider(Config{APIKey: "key"})
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, p.ModelName())
}

func TestComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "hi there"}},
			},
		})
	}))
	defer server.Close()

	p, err := NewLLMProvider(Config{APIKey: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	answer, err := p.Complete(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", answer)
}

func TestComplete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	p, err := NewLLMProvider(Config{APIKey: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no response choices")
}
