package ports

import (
	"context"

	"github.com/meditalks/backend/internal/core/domain"
)

// InputValidator is the inbound contract for request validation.
type InputValidator interface {
	ValidateMessage(message string) domain.Validation
	ValidateCulturalContext(contextID string) domain.Validation
	ValidateFileUpload(filename string, size int64) domain.Validation
}

// MessageAdapter is the inbound contract for message adaptation. Adapt never
// fails: provider errors degrade through the fallback chain.
type MessageAdapter interface {
	Adapt(ctx context.Context, message, contextID string) domain.AdaptationResult
}

// DocumentExtractor is the inbound contract for PDF text extraction and
// source language detection.
type DocumentExtractor interface {
	Extract(ctx context.Context, data []byte) domain.ExtractionResult
}

// DocumentAnalyzer is the inbound contract for summarization.
type DocumentAnalyzer interface {
	AnalyzeDocument(ctx context.Context, text, contextID, targetLanguage string) domain.AnalysisResult
	AnalyzeAndSummarize(ctx context.Context, text, targetLanguage, summaryLength string) domain.AnalysisResult
}
