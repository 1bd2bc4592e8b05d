package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"helpdesk-agent/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildSupportPrompt(t *testing.T) {
	prompt := buildSupportPrompt("La impresora no responde", map[string]string{
		"tipo_problema": ProblemOther,
		"categoria":     CategoryPrinter,
	})

	assert.Contains(t, prompt, "Problema reportado: La impresora no responde\n\n")
	assert.Contains(t, prompt, "Información adicional:\n- categoria: printer\n- tipo_problema: other\n\n")
	assert.Contains(t, prompt, "Por favor, proporciona una solución paso a paso.")
}

func TestBuildSupportPrompt_NoDetails(t *testing.T) {
	prompt := buildSupportPrompt("Sin red", nil)
	assert.NotContains(t, prompt, "Información adicional")
}

func newCompletionServer(t *testing.T, content string, captured *map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "deepseek-chat",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]string{"role": "assistant", "content": content},
				},
			},
		})
	}))
}

func TestOpenAIResolver_Resolve(t *testing.T) {
	var body map[string]interface{}
	server := newCompletionServer(t, "1. Reinicia el router.", &body)
	defer server.Close()

	resolver := NewOpenAIResolver(&config.AIConfig{
		Provider:    "deepseek",
		APIKey:      "test",
		BaseURL:     server.URL + "/",
		Model:       "deepseek-chat",
		MaxTokens:   1000,
		Temperature: 0.3,
		Timeout:     5 * time.Second,
	}, zap.NewNop())

	answer, err := resolver.Resolve(context.Background(), "No tengo internet", map[string]string{"categoria": CategoryNetwork})
	require.NoError(t, err)
	assert.Equal(t, "1. Reinicia el router.", answer)
	assert.Equal(t, "deepseek", resolver.Name())

	assert.Equal(t, "deepseek-chat", body["model"])
	assert.EqualValues(t, 1000, body["max_tokens"])
	messages, ok := body["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
	assert.Equal(t, supportSystemPrompt, messages[0].(map[string]interface{})["content"])
}

func TestOpenAIResolver_EmptyAnswer(t *testing.T) {
	server := newCompletionServer(t, "   ", nil)
	defer server.Close()

	resolver := NewOpenAIResolver(&config.AIConfig{Provider: "openai", BaseURL: server.URL, Model: "gpt-4o-mini"}, zap.NewNop())

	_, err := resolver.Resolve(context.Background(), "problema", nil)
	assert.ErrorIs(t, err, ErrEmptyAnswer)
}

func TestOpenAIResolver_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	resolver := NewOpenAIResolver(&config.AIConfig{Provider: "deepseek", BaseURL: server.URL, Model: "deepseek-chat"}, zap.NewNop())

	_, err := resolver.Resolve(context.Background(), "problema", nil)
	assert.Error(t, err)
}

func TestNewResolver_UnknownProvider(t *testing.T) {
	_, err := NewResolver(context.Background(), &config.Config{AI: config.AIConfig{Provider: "unknown"}}, zap.NewNop())
	assert.Error(t, err)
}
