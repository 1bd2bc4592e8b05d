package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("AI_BASE_URL", "")
	t.Setenv("AI_MODEL", "")
	t.Setenv("AI_TIMEOUT_SECONDS", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("CHAT_HISTORY_LIMIT", "")
	t.Setenv("CHAT_KNOWLEDGE_LIMIT", "")
	t.Setenv("SERVICE_NAME", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "deepseek", cfg.AI.Provider)
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.AI.BaseURL)
	assert.Equal(t, "deepseek-chat", cfg.AI.Model)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Empty(t, cfg.Redis.Host)
	assert.Equal(t, 10, cfg.Chat.HistoryLimit)
	assert.Equal(t, 3, cfg.Chat.KnowledgeLimit)
	assert.Equal(t, "helpdesk-agent", cfg.Logger.Service)
}

func TestLoad_GigaChatProvider(t *testing.T) {
	t.Setenv("AI_PROVIDER", "gigachat")
	t.Setenv("AI_MODEL", "")
	t.Setenv("AI_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gigachat", cfg.AI.Provider)
	assert.Equal(t, "GigaChat", cfg.AI.Model)
	assert.Empty(t, cfg.AI.BaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AI_TIMEOUT_SECONDS", "5")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("CHAT_WORKERS", "8")
	t.Setenv("SERVICE_NAME", "helpdesk-agent-staging")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "redis", cfg.Redis.Host)
	assert.Equal(t, 6380, cfg.Redis.Port)
	assert.Equal(t, 8, cfg.Chat.Workers)
	assert.Equal(t, "helpdesk-agent-staging", cfg.Logger.Service)
}
