package ports

import "context"

// GenerateOptions bounds a single provider call.
type GenerateOptions struct {
	// Language is an ISO 639-1 hint for providers that accept one.
	Language string
	// MaxTokens caps the generated output when the provider supports it.
	MaxTokens int
}

// TextGenerator is the minimal provider surface the fallback chain iterates
// over. Available reflects the one-time startup probe and never changes for
// the process lifetime; per-call failures surface through Generate.
type TextGenerator interface {
	Name() string
	Available() bool
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// AdaptationProvider couples a generator with its own copy of the cultural
// context descriptions, tuned to that provider's prompt style. ok is false
// for an unknown context id, which sends the caller straight to the static
// template fallback.
type AdaptationProvider interface {
	TextGenerator
	AdaptationPrompt(message, contextID string) (prompt string, opts GenerateOptions, ok bool)
}

// PageExtractor pulls per-page text out of a PDF, reading at most maxPages
// pages. Implementations tolerate individual broken pages and only error
// when the document itself cannot be opened.
type PageExtractor interface {
	Name() string
	ExtractPages(ctx context.Context, data []byte, maxPages int) ([]string, error)
}

// LanguageDetector identifies the dominant language of a text sample and
// returns its ISO 639-1 code. Detection must be deterministic for identical
// input.
type LanguageDetector interface {
	Detect(sample string) (string, error)
}
