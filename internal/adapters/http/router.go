package httpadapter

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/meditalks/backend/internal/core/ports"
	"github.com/meditalks/backend/internal/culture"
	"github.com/meditalks/backend/internal/observability/metrics"
)

const (
	serviceName    = "MediTalks Backend"
	serviceVersion = "1.0.0"
)

// Deps carries everything the router serves from. Provider references are
// only consulted for the availability flags in /api/health.
type Deps struct {
	Logger    *slog.Logger
	Metrics   *metrics.HTTPServerMetrics
	Validator ports.InputValidator
	Adapter   ports.MessageAdapter
	Extractor ports.DocumentExtractor
	Analyzer  ports.DocumentAnalyzer
	Catalog   *culture.Catalog
	SEALion   ports.TextGenerator
	Gemini    ports.TextGenerator

	AllowedOrigins []string
	MaxUploadBytes int64
}

type Router struct {
	deps Deps
}

func NewRouter(deps Deps) *Router {
	return &Router{deps: deps}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", rt.root)
	mux.HandleFunc("/api/health", rt.health)
	mux.HandleFunc("/api/cultural-adaptation/generate", rt.generateAdaptation)
	mux.HandleFunc("/api/cultural-adaptation/contexts", rt.listContexts)
	mux.HandleFunc("/api/extract-pdf", rt.extractPDF)
	mux.Handle("/metrics", rt.deps.Metrics.Handler())

	var handler http.Handler = mux
	handler = recoveryMiddleware(rt.deps.Logger, handler)
	handler = rt.deps.Metrics.Middleware(serviceName, handler)
	handler = accessLogMiddleware(rt.deps.Logger, handler)
	handler = corsMiddleware(rt.deps.AllowedOrigins, handler)
	handler = requestIDMiddleware(handler)
	return handler
}

// root serves the API banner, and the JSON 404 for every unmatched path.
func (rt *Router) root(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		respondErrorCode(w, http.StatusNotFound, "Endpoint not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "MediTalks Backend API",
		"status":  "running",
		"version": serviceVersion,
		"endpoints": []string{
			"/api/health",
			"/api/cultural-adaptation/generate",
			"/api/cultural-adaptation/contexts",
			"/api/extract-pdf",
			"/metrics",
		},
	})
}

func (rt *Router) health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	sealionUp := rt.deps.SEALion.Available()
	primary := "Gemini"
	if sealionUp {
		primary = "SEA-Lion"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   serviceName,
		"version":   serviceVersion,
		"ai_services": map[string]any{
			"sealion_available": sealionUp,
			"gemini_available":  rt.deps.Gemini.Available(),
			"primary_service":   primary,
		},
	})
}

func (rt *Router) listContexts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"contexts": rt.deps.Catalog.Contexts(),
	})
}
