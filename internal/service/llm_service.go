package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"helpdesk-agent/pkg/config"

	"github.com/Role1776/gigago"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const supportSystemPrompt = "Eres un asistente especializado en soporte informático. " +
	"Proporciona soluciones claras, paso a paso, para problemas comunes de computadoras, impresoras, software y hardware. " +
	"Si no puedes resolver el problema, indica claramente que requiere intervención técnica especializada."

const gigaChatTemperature = 0.3

// buildSupportPrompt renders the user prompt. Detail keys are sorted so the
// same input always produces the same prompt.
func buildSupportPrompt(problem string, details map[string]string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Problema reportado: %s\n\n", problem))

	if len(details) > 0 {
		keys := make([]string, 0, len(details))
		for k := range details {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("Información adicional:\n")
		for _, k := range keys {
			b.WriteString(fmt.Sprintf("- %s: %s\n", k, details[k]))
		}
		b.WriteString("\n")
	}

	b.WriteString("Por favor, proporciona una solución paso a paso. " +
		"Si el problema requiere intervención física o conocimientos especializados avanzados, indícalo claramente.")
	return b.String()
}

// OpenAIResolver talks to any OpenAI-compatible chat completion API.
// DeepSeek is the default provider.
type OpenAIResolver struct {
	client      *openai.Client
	name        string
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
	logger      *zap.Logger
}

func NewOpenAIResolver(cfg *config.AIConfig, logger *zap.Logger) *OpenAIResolver {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}

	return &OpenAIResolver{
		client:      openai.NewClientWithConfig(clientConfig),
		name:        cfg.Provider,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
		logger:      logger.Named("ai"),
	}
}

func (r *OpenAIResolver) Name() string {
	return r.name
}

func (r *OpenAIResolver) Resolve(ctx context.Context, problem string, details map[string]string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: supportSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildSupportPrompt(problem, details)},
		},
		MaxTokens:   r.maxTokens,
		Temperature: r.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to call %s: %w", r.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyAnswer
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", ErrEmptyAnswer
	}

	r.logger.Info("AI answer received",
		zap.String("provider", r.name),
		zap.Int("length", len(answer)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return sanitizeUTF8(answer), nil
}

// GigaChatResolver uses the GigaChat API through gigago.
type GigaChatResolver struct {
	client  *gigago.Client
	model   *gigago.GenerativeModel
	timeout time.Duration
	logger  *zap.Logger
}

func NewGigaChatResolver(ctx context.Context, aiCfg *config.AIConfig, cfg *config.GigaChatConfig, logger *zap.Logger) (*GigaChatResolver, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel(aiCfg.Model)
	model.SystemInstruction = supportSystemPrompt
	model.Temperature = gigaChatTemperature

	return &GigaChatResolver{
		client:  client,
		model:   model,
		timeout: aiCfg.Timeout,
		logger:  logger.Named("ai"),
	}, nil
}

func (r *GigaChatResolver) Name() string {
	return "gigachat"
}

func (r *GigaChatResolver) Resolve(ctx context.Context, problem string, details map[string]string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: buildSupportPrompt(problem, details)},
	}

	resp, err := r.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to call gigachat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyAnswer
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", ErrEmptyAnswer
	}

	r.logger.Info("AI answer received", zap.String("provider", "gigachat"), zap.Int("length", len(answer)))
	return sanitizeUTF8(answer), nil
}

func (r *GigaChatResolver) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}

// NewResolver builds the resolver selected by cfg.AI.Provider.
func NewResolver(ctx context.Context, cfg *config.Config, logger *zap.Logger) (AIResolver, error) {
	switch cfg.AI.Provider {
	case "gigachat":
		return NewGigaChatResolver(ctx, &cfg.AI, &cfg.GigaChat, logger)
	case "deepseek", "openai":
		return NewOpenAIResolver(&cfg.AI, logger), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AI.Provider)
	}
}
