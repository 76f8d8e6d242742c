package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/meditalks/backend/internal/core/domain"
	"github.com/meditalks/backend/internal/core/ports"
	"github.com/meditalks/backend/internal/culture"
)

// SourceFallback marks results produced by the static templates instead of
// a text generation provider.
const SourceFallback = "fallback"

// AdaptMessageUseCase rewrites a medical message for a cultural context.
//
// Providers are consulted in the order given; only the first one that
// reports itself available is asked. Any failure on that provider (unknown
// context, transport error, empty completion) degrades to the static
// per-context template rather than moving on to the next provider.
type AdaptMessageUseCase struct {
	providers []ports.AdaptationProvider
	logger    *slog.Logger
}

func NewAdaptMessageUseCase(logger *slog.Logger, providers ...ports.AdaptationProvider) *AdaptMessageUseCase {
	return &AdaptMessageUseCase{providers: providers, logger: logger}
}

// Adapt always produces a usable message; it never returns an error.
func (uc *AdaptMessageUseCase) Adapt(ctx context.Context, message, contextID string) domain.AdaptationResult {
	result := domain.AdaptationResult{
		OriginalMessage: message,
		ContextID:       contextID,
		Timestamp:       time.Now().UTC(),
	}

	for _, provider := range uc.providers {
		if !provider.Available() {
			continue
		}

		prompt, opts, ok := provider.AdaptationPrompt(message, contextID)
		if !ok {
			uc.logger.WarnContext(ctx, "no adaptation prompt for context",
				slog.String("provider", provider.Name()),
				slog.String("context_id", contextID))
			break
		}

		adapted, err := provider.Generate(ctx, prompt, opts)
		if err != nil {
			uc.logger.ErrorContext(ctx, "adaptation generation failed",
				slog.String("provider", provider.Name()),
				slog.String("context_id", contextID),
				slog.String("error", err.Error()))
			break
		}

		adapted = strings.TrimSpace(adapted)
		if adapted == "" {
			uc.logger.WarnContext(ctx, "empty adaptation from provider",
				slog.String("provider", provider.Name()),
				slog.String("context_id", contextID))
			break
		}

		result.AdaptedMessage = adapted
		result.Source = provider.Name()
		return result
	}

	result.AdaptedMessage = culture.FallbackAdaptation(contextID, message)
	result.Source = SourceFallback
	return result
}
