// Package pdftext is the pure-Go fallback PDF reader, used when MuPDF cannot
// open a document.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/ledongthuc/pdf"
)

type Extractor struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

func (e *Extractor) Name() string { return "pdftext" }

// ExtractPages reads up to maxPages pages of plain text. Individual broken
// pages are skipped. The underlying reader panics on some malformed files,
// so the whole call is guarded.
func (e *Extractor) ExtractPages(ctx context.Context, data []byte, maxPages int) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("parse pdf: %v", r)
		}
	}()

	if len(data) < 4 || !bytes.HasPrefix(data, []byte("%PDF")) {
		return nil, fmt.Errorf("not a pdf document")
	}

	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	numPages := doc.NumPage()
	if maxPages > 0 && numPages > maxPages {
		numPages = maxPages
	}

	pages = make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page := doc.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.WarnContext(ctx, "page text extraction failed",
				slog.Int("page", i),
				slog.String("error", err.Error()))
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}
