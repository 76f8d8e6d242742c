// Package sealion talks to the SEA-LION chat completions API, an
// OpenAI-compatible endpoint tuned for Southeast Asian languages.
package sealion

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/meditalks/backend/internal/core/domain"
	"github.com/meditalks/backend/internal/core/ports"
	"github.com/meditalks/backend/internal/infrastructure/resilience"
)

const (
	ProviderName = "SEA-Lion"

	defaultBaseURL = "https://api.sealion.ai/v1"
	defaultModel   = "sealion-7b-instruct"

	// placeholderKey is what the sample env file ships with; treating it as
	// absent avoids a guaranteed-failing probe on fresh installs.
	placeholderKey = "your_sealion_api_key_here"

	requestTimeout  = 30 * time.Second
	probeMaxTokens  = 10
	adaptMaxTokens  = 800
	temperatureUsed = 0.7
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	executor   *resilience.Executor
	logger     *slog.Logger

	available bool
}

func New(logger *slog.Logger, executor *resilience.Executor, cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: requestTimeout},
		executor:   executor,
		logger:     logger,
	}
}

func (c *Client) Name() string { return ProviderName }

// Available reflects the startup probe and never changes afterwards.
func (c *Client) Available() bool { return c.available }

// Probe issues a tiny completion to decide availability for the process
// lifetime. Called once from bootstrap, before the client is shared.
func (c *Client) Probe(ctx context.Context) {
	if c.apiKey == "" || c.apiKey == placeholderKey {
		c.logger.WarnContext(ctx, "sealion api key not configured, provider disabled")
		c.available = false
		return
	}

	_, err := c.complete(ctx, "sealion.probe", "Test connection", "en", probeMaxTokens)
	if err != nil {
		c.logger.WarnContext(ctx, "sealion probe failed, provider disabled",
			slog.String("error", err.Error()))
		c.available = false
		return
	}

	c.logger.InfoContext(ctx, "sealion provider available", slog.String("model", c.model))
	c.available = true
}

func (c *Client) Generate(ctx context.Context, prompt string, opts ports.GenerateOptions) (string, error) {
	language := opts.Language
	if language == "" {
		language = "en"
	}
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = adaptMaxTokens
	}

	text, err := c.complete(ctx, "sealion.generate", prompt, language, maxTokens)
	if err != nil {
		return "", domain.WrapError(domain.ErrUpstream, "sealion generate", err)
	}
	return text, nil
}

// AdaptationPrompt renders the cultural adaptation prompt for a known
// context; ok is false when the context has no template here.
func (c *Client) AdaptationPrompt(message, contextID string) (string, ports.GenerateOptions, bool) {
	tmpl, ok := contextTemplates[contextID]
	if !ok {
		return "", ports.GenerateOptions{}, false
	}
	opts := ports.GenerateOptions{
		Language:  tmpl.languageCode,
		MaxTokens: adaptMaxTokens,
	}
	return buildAdaptationPrompt(message, tmpl), opts, true
}

func (c *Client) complete(ctx context.Context, operation, prompt, language string, maxTokens int) (string, error) {
	var text string
	err := c.executor.Execute(ctx, operation, func(ctx context.Context) error {
		out, err := c.chatCompletion(ctx, prompt, language, maxTokens)
		if err != nil {
			return err
		}
		text = out
		return nil
	}, classifyError)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
