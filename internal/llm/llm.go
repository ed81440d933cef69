package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretesun/hey-there/internal/config"
	"github.com/aretesun/hey-there/internal/domain"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
)

// Client talks to the configured model provider.
type Client struct {
	llm      llms.Model
	preset   config.ModelPreset
	planner  config.Planner
	logger   *slog.Logger
	planJSON string
	packJSON string
}

type Option func(*Client)

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithModel replaces the provider model, for instance with a local fake.
func WithModel(m llms.Model) Option {
	return func(c *Client) {
		c.llm = m
	}
}

// NewClient creates a client for the active preset of cfg.
func NewClient(ctx context.Context, cfg *config.ConfigSchema, opts ...Option) (*Client, error) {
	preset, ok := cfg.ActivePreset()
	if !ok {
		return nil, fmt.Errorf("model preset %q not found", cfg.ActiveModel)
	}

	c := &Client{
		preset:  preset,
		planner: cfg.Planner,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.llm == nil {
		model, err := createLLMClient(ctx, preset, cfg.APIKeys)
		if err != nil {
			return nil, err
		}
		c.llm = model
	}

	var err error
	if c.planJSON, err = schemaJSON(&domain.Plan{}); err != nil {
		return nil, err
	}
	if c.packJSON, err = schemaJSON(&domain.PackingList{}); err != nil {
		return nil, err
	}
	c.logger = c.logger.With("provider", preset.Provider, "model", preset.Name)
	return c, nil
}

func createLLMClient(ctx context.Context, preset config.ModelPreset, keys config.APIKeys) (llms.Model, error) {
	var llm llms.Model
	var err error

	switch preset.Provider {
	case "openai":
		opts := []openai.Option{openai.WithModel(preset.Name)}
		if keys.OpenAI != "" {
			opts = append(opts, openai.WithToken(keys.OpenAI))
		}
		llm, err = openai.New(opts...)
	case "anthropic":
		opts := []anthropic.Option{anthropic.WithModel(preset.Name)}
		if keys.Anthropic != "" {
			opts = append(opts, anthropic.WithToken(keys.Anthropic))
		}
		llm, err = anthropic.New(opts...)
	case "googleai":
		llm, err = googleai.New(
			ctx,
			googleai.WithDefaultModel(preset.Name),
			googleai.WithAPIKey(keys.Gemini),
		)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", preset.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", preset.Provider, err)
	}

	return llm, nil
}

func (c *Client) callOptions(extra ...llms.CallOption) []llms.CallOption {
	opts := []llms.CallOption{
		llms.WithTemperature(c.preset.Temperature),
	}
	if c.preset.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(c.preset.MaxTokens))
	}
	return append(opts, extra...)
}

func buildMessageHistory(turns []domain.Turn) []llms.MessageContent {
	history := make([]llms.MessageContent, 0, len(turns))
	for _, t := range turns {
		role := llms.ChatMessageTypeHuman
		if t.Role == domain.RoleModel {
			role = llms.ChatMessageTypeAI
		}
		history = append(history, llms.TextParts(role, t.Text))
	}
	return history
}

func firstChoice(resp *llms.ContentResponse) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}
	return resp.Choices[0].Content, nil
}
