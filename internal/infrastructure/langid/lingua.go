// Package langid detects the source language of extracted document text
// with lingua-go. Detection is deterministic for identical input.
package langid

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Languages the detector distinguishes between. Khmer is not supported by
// lingua, so Khmer documents come back undetected and flow through the
// raw-code path instead.
var detectorLanguages = []lingua.Language{
	lingua.English,
	lingua.Thai,
	lingua.Vietnamese,
	lingua.Malay,
	lingua.Tagalog,
	lingua.Indonesian,
	lingua.Chinese,
	lingua.Tamil,
	lingua.Hindi,
	lingua.Bengali,
}

type Detector struct {
	detector lingua.LanguageDetector
}

func New() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectorLanguages...).
			Build(),
	}
}

// Detect returns the ISO 639-1 code of the dominant language in sample.
func (d *Detector) Detect(sample string) (string, error) {
	language, ok := d.detector.DetectLanguageOf(sample)
	if !ok {
		return "", fmt.Errorf("no language detected")
	}
	return strings.ToLower(language.IsoCode639_1().String()), nil
}
