package domain

import "time"

// Validation is the outcome of a single validator check. Message is safe to
// show to the end user.
type Validation struct {
	Valid   bool
	Message string
	Cleaned string
}

// ExtractionResult is produced once per uploaded document and discarded with
// the response.
type ExtractionResult struct {
	Success          bool
	Text             string
	DetectedLanguage string
	WordCount        int
	CharCount        int
	// Method names the extraction method that produced Text.
	Method string
	Err    string
}

// AdaptationResult is the pure output value of the message adaptation path.
// Source names the provider that produced AdaptedMessage, or "fallback".
type AdaptationResult struct {
	AdaptedMessage  string
	OriginalMessage string
	ContextID       string
	Source          string
	Timestamp       time.Time
}

// AnalysisResult carries a document summary and the optional structured
// fields extracted alongside it. Source names the provider that produced the
// summary, or "fallback" when the deterministic path was used.
type AnalysisResult struct {
	Success      bool
	Summary      string
	KeyPoints    []string
	KeyTerms     []string
	Concepts     []string
	Instructions []string
	ActionItems  []string
	Source       string
	ContextID    string
	Language     string
	WordCount    int
	CharCount    int
	Err          string
}
