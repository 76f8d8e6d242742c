// Package gemini adapts Google Gemini to the provider ports through the
// official generative-ai-go SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/meditalks/backend/internal/core/domain"
	"github.com/meditalks/backend/internal/core/ports"
	"github.com/meditalks/backend/internal/infrastructure/resilience"
)

const ProviderName = "Gemini"

// Model names tried in order during the startup probe; the first one that
// answers is used for the process lifetime.
var candidateModels = []string{"gemini-1.5-flash", "gemini-1.5-pro", "gemini-pro"}

type Config struct {
	APIKey string
	// Model pins a single model name, skipping the candidate list.
	Model string
}

// textModel is the slice of *genai.GenerativeModel the client needs; tests
// substitute a fake.
type textModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type Client struct {
	logger   *slog.Logger
	executor *resilience.Executor

	newModel   func(name string) textModel
	candidates []string

	model     textModel
	modelName string
	available bool
	closeFn   func() error
}

// New builds the SDK client. Construction never fails; a missing key or SDK
// error just leaves the provider permanently unavailable.
func New(ctx context.Context, logger *slog.Logger, executor *resilience.Executor, cfg Config) *Client {
	c := &Client{
		logger:     logger,
		executor:   executor,
		candidates: candidateModels,
	}
	if cfg.Model != "" {
		c.candidates = []string{cfg.Model}
	}

	if cfg.APIKey == "" {
		logger.WarnContext(ctx, "gemini api key not configured, provider disabled")
		return c
	}

	sdk, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		logger.WarnContext(ctx, "gemini client init failed, provider disabled",
			slog.String("error", err.Error()))
		return c
	}
	c.newModel = func(name string) textModel { return sdk.GenerativeModel(name) }
	c.closeFn = sdk.Close
	return c
}

// Close releases the underlying SDK connection.
func (c *Client) Close() error {
	if c.closeFn == nil {
		return nil
	}
	return c.closeFn()
}

func (c *Client) Name() string { return ProviderName }

// Available reflects the startup probe and never changes afterwards.
func (c *Client) Available() bool { return c.available }

// Probe walks the candidate models until one answers a test prompt. Called
// once from bootstrap, before the client is shared.
func (c *Client) Probe(ctx context.Context) {
	if c.newModel == nil {
		return
	}

	for _, name := range c.candidates {
		model := c.newModel(name)
		resp, err := model.GenerateContent(ctx, genai.Text("Test connection"))
		if err != nil || firstText(resp) == "" {
			c.logger.WarnContext(ctx, "gemini model probe failed",
				slog.String("model", name),
				slog.Any("error", err))
			continue
		}

		c.model = model
		c.modelName = name
		c.available = true
		c.logger.InfoContext(ctx, "gemini provider available", slog.String("model", name))
		return
	}
	c.logger.WarnContext(ctx, "no gemini model answered the probe, provider disabled")
}

func (c *Client) Generate(ctx context.Context, prompt string, _ ports.GenerateOptions) (string, error) {
	if c.model == nil {
		return "", domain.WrapError(domain.ErrUpstream, "gemini generate", errUnavailable)
	}

	var text string
	err := c.executor.Execute(ctx, "gemini.generate", func(ctx context.Context) error {
		resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return err
		}
		text = firstText(resp)
		return nil
	}, classifyError)
	if err != nil {
		return "", domain.WrapError(domain.ErrUpstream, "gemini generate", err)
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
	return buildAdaptationPrompt(message, tmpl), ports.GenerateOptions{Language: tmpl.languageCode}, true
}

var errUnavailable = fmt.Errorf("provider not initialized")

func classifyError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				return string(text)
			}
		}
	}
	return ""
}
