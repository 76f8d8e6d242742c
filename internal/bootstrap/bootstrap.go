package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	httpadapter "github.com/meditalks/backend/internal/adapters/http"
	"github.com/meditalks/backend/internal/config"
	"github.com/meditalks/backend/internal/core/usecase"
	"github.com/meditalks/backend/internal/culture"
	"github.com/meditalks/backend/internal/infrastructure/extractor/mupdf"
	"github.com/meditalks/backend/internal/infrastructure/extractor/pdftext"
	"github.com/meditalks/backend/internal/infrastructure/langid"
	"github.com/meditalks/backend/internal/infrastructure/llm/gemini"
	"github.com/meditalks/backend/internal/infrastructure/llm/sealion"
	"github.com/meditalks/backend/internal/infrastructure/resilience"
	"github.com/meditalks/backend/internal/observability/logging"
	"github.com/meditalks/backend/internal/observability/metrics"
)

const serviceName = "meditalks-backend"

type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Handler http.Handler

	closeFn func()
}

// New wires the full application graph. Provider probes run here, once;
// availability never changes afterwards.
func New(ctx context.Context, cfg config.Config, logOut io.Writer) (*App, error) {
	logger := logging.New(logOut, serviceName, cfg.LogLevel)

	catalog, err := culture.Load()
	if err != nil {
		return nil, fmt.Errorf("load cultural context catalog: %w", err)
	}

	executor := resilience.NewExecutor(logger, resilience.ProviderConfig())

	sealionClient := sealion.New(logger, executor, sealion.Config{
		APIKey:  cfg.SEALionAPIKey,
		BaseURL: cfg.SEALionAPIURL,
		Model:   cfg.SEALionModel,
	})
	sealionClient.Probe(ctx)

	geminiClient := gemini.New(ctx, logger, executor, gemini.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	})
	geminiClient.Probe(ctx)

	if !sealionClient.Available() && !geminiClient.Available() {
		logger.WarnContext(ctx, "no AI provider available, serving static templates only")
	}

	validator := usecase.NewValidator(catalog, cfg.MaxUploadMB)
	adapter := usecase.NewAdaptMessageUseCase(logger, sealionClient, geminiClient)
	extractor := usecase.NewExtractDocumentUseCase(logger, langid.New(), catalog, cfg.ExtractMaxPages,
		mupdf.New(logger), pdftext.New(logger))
	analyzer := usecase.NewSummarizeUseCase(logger, sealionClient, geminiClient)

	router := httpadapter.NewRouter(httpadapter.Deps{
		Logger:         logger,
		Metrics:        metrics.NewHTTPServerMetrics(serviceName),
		Validator:      validator,
		Adapter:        adapter,
		Extractor:      extractor,
		Analyzer:       analyzer,
		Catalog:        catalog,
		SEALion:        sealionClient,
		Gemini:         geminiClient,
		AllowedOrigins: splitOrigins(cfg.AllowedOrigins),
		MaxUploadBytes: int64(cfg.MaxUploadMB) * 1024 * 1024,
	})

	return &App{
		Config:  cfg,
		Logger:  logger,
		Handler: router.Handler(),
		closeFn: func() {
			if err := geminiClient.Close(); err != nil {
				logger.Warn("closing gemini client", slog.String("error", err.Error()))
			}
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
