// Package mupdf extracts page text with go-fitz (MuPDF). It handles layout
// and embedded fonts better than the pure-Go reader and is tried first.
package mupdf

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gen2brain/go-fitz"
)

type Extractor struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

func (e *Extractor) Name() string { return "mupdf" }

// ExtractPages reads up to maxPages pages of text. Pages that fail to render
// are skipped; only a document that cannot be opened errors out.
func (e *Extractor) ExtractPages(ctx context.Context, data []byte, maxPages int) ([]string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	if maxPages > 0 && numPages > maxPages {
		numPages = maxPages
	}

	pages := make([]string, 0, numPages)
	for i := 0; i < numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := doc.Text(i)
		if err != nil {
			e.logger.WarnContext(ctx, "page text extraction failed",
				slog.Int("page", i+1),
				slog.String("error", err.Error()))
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}
