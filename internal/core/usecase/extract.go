package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/meditalks/backend/internal/core/domain"
	"github.com/meditalks/backend/internal/core/ports"
)

const (
	// minExtractedChars is the threshold below which an extraction attempt
	// counts as having produced nothing useful.
	minExtractedChars = 10
	// detectionSampleRunes bounds the slice handed to the language detector.
	detectionSampleRunes = 1000

	languageUnknown = "unknown"
)

// Cleanup normalization, applied in order to the joined page text.
var (
	collapseWhitespace = regexp.MustCompile(`\s+`)
	collapseLineBreaks = regexp.MustCompile(`\n{3,}`)
	// Go's \w is ASCII-only, so letters and digits are matched explicitly to
	// keep Thai, Khmer and Vietnamese text intact.
	dropOddChars = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?;:\-()\[\]{}"'/\\\n]`)
)

// LanguageNamer maps an ISO 639-1 code to a display name.
type LanguageNamer interface {
	LanguageName(code string) string
}

// ExtractDocumentUseCase turns an uploaded PDF into cleaned plain text plus
// a detected source language. Extractors are tried in order; the first one
// that yields enough text wins.
type ExtractDocumentUseCase struct {
	extractors []ports.PageExtractor
	detector   ports.LanguageDetector
	names      LanguageNamer
	maxPages   int
	logger     *slog.Logger
}

func NewExtractDocumentUseCase(logger *slog.Logger, detector ports.LanguageDetector, names LanguageNamer, maxPages int, extractors ...ports.PageExtractor) *ExtractDocumentUseCase {
	return &ExtractDocumentUseCase{
		extractors: extractors,
		detector:   detector,
		names:      names,
		maxPages:   maxPages,
		logger:     logger,
	}
}

// Extract never returns an error value; failures are reported through the
// result's Success and Err fields so the caller can shape an API response.
func (uc *ExtractDocumentUseCase) Extract(ctx context.Context, data []byte) domain.ExtractionResult {
	for _, extractor := range uc.extractors {
		text, err := uc.tryExtractor(ctx, extractor, data)
		if err != nil {
			uc.logger.WarnContext(ctx, "extraction method failed",
				slog.String("method", extractor.Name()),
				slog.String("error", err.Error()))
			continue
		}

		if len(strings.TrimSpace(text)) < minExtractedChars {
			uc.logger.WarnContext(ctx, "extraction method produced too little text",
				slog.String("method", extractor.Name()),
				slog.Int("chars", len(text)))
			continue
		}

		// Detection runs on the raw extraction; cleanup can strip the
		// script-specific characters the detector relies on.
		language := uc.detectLanguage(ctx, text)
		cleaned := CleanExtractedText(text)
		uc.logger.InfoContext(ctx, "pdf text extracted",
			slog.String("method", extractor.Name()),
			slog.String("language", language),
			slog.Int("chars", len(cleaned)))

		return domain.ExtractionResult{
			Success:          true,
			Text:             cleaned,
			DetectedLanguage: language,
			WordCount:        len(strings.Fields(cleaned)),
			CharCount:        len([]rune(cleaned)),
			Method:           extractor.Name(),
		}
	}

	return domain.ExtractionResult{
		Success:          false,
		DetectedLanguage: languageUnknown,
		Err:              "Could not extract text from PDF",
	}
}

// tryExtractor isolates a single extraction attempt so that a panic in a
// cgo-backed parser downgrades to a per-method error.
func (uc *ExtractDocumentUseCase) tryExtractor(ctx context.Context, extractor ports.PageExtractor, data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extractor panicked: %v", r)
		}
	}()

	pages, err := extractor.ExtractPages(ctx, data, uc.maxPages)
	if err != nil {
		return "", err
	}
	return strings.Join(pages, "\n"), nil
}

func (uc *ExtractDocumentUseCase) detectLanguage(ctx context.Context, text string) string {
	sample := []rune(text)
	if len(sample) < minExtractedChars {
		return languageUnknown
	}
	if len(sample) > detectionSampleRunes {
		sample = sample[:detectionSampleRunes]
	}

	code, err := uc.detector.Detect(string(sample))
	if err != nil {
		uc.logger.WarnContext(ctx, "language detection failed", slog.String("error", err.Error()))
		return languageUnknown
	}
	return uc.names.LanguageName(code)
}

// CleanExtractedText normalizes raw page text. The steps run in a fixed
// order: whitespace runs collapse to a single space, leftover triple line
// breaks collapse to two, unexpected symbols become spaces, then the ends
// are trimmed.
func CleanExtractedText(text string) string {
	text = collapseWhitespace.ReplaceAllString(text, " ")
	text = collapseLineBreaks.ReplaceAllString(text, "\n\n")
	text = dropOddChars.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
