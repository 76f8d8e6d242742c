package usecase

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/meditalks/backend/internal/core/domain"
	"github.com/meditalks/backend/internal/culture"
)

const (
	minMessageLength = 10
	maxMessageLength = 5000
	maxUploadMBLimit = 10
)

var forbiddenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script.*?>.*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
}

var medicalKeywords = []string{
	"medicine", "medication", "doctor", "hospital", "clinic", "treatment",
	"diagnosis", "symptoms", "patient", "health", "medical", "prescription",
	"dose", "dosage", "therapy", "surgery", "examination", "consultation",
	"healthcare", "illness", "disease", "condition", "recovery", "healing",
	"pain", "fever", "infection", "vaccine", "immunization", "checkup",
}

// Validator checks user-supplied messages, context ids and uploads. All
// methods return user-safe messages; nothing here touches the network.
type Validator struct {
	catalog     Catalog
	maxUploadMB int64
}

// Catalog is the subset of the culture catalog the validator needs.
type Catalog interface {
	KnownContext(id string) bool
	ContextIDs() []string
}

var _ Catalog = (*culture.Catalog)(nil)

func NewValidator(catalog Catalog, maxUploadMB int) *Validator {
	if maxUploadMB <= 0 {
		maxUploadMB = maxUploadMBLimit
	}
	return &Validator{catalog: catalog, maxUploadMB: int64(maxUploadMB)}
}

func (v *Validator) ValidateMessage(message string) domain.Validation {
	message = strings.TrimSpace(message)
	if message == "" {
		return domain.Validation{Valid: false, Message: "Message must be a non-empty string"}
	}
	if utf8.RuneCountInString(message) < minMessageLength {
		return domain.Validation{
			Valid:   false,
			Message: fmt.Sprintf("Message must be at least %d characters long", minMessageLength),
		}
	}
	if utf8.RuneCountInString(message) > maxMessageLength {
		return domain.Validation{
			Valid:   false,
			Message: fmt.Sprintf("Message must not exceed %d characters", maxMessageLength),
		}
	}
	for _, pattern := range forbiddenPatterns {
		if pattern.MatchString(message) {
			return domain.Validation{Valid: false, Message: "Message contains potentially harmful content"}
		}
	}

	if !containsMedicalContent(message) {
		slog.Warn("message_without_medical_keywords", "preview", preview(message, 100))
	}

	return domain.Validation{Valid: true, Message: "Message is valid", Cleaned: message}
}

func (v *Validator) ValidateCulturalContext(contextID string) domain.Validation {
	if contextID == "" || !v.catalog.KnownContext(contextID) {
		return domain.Validation{
			Valid:   false,
			Message: "Invalid cultural context. Must be one of: " + strings.Join(v.catalog.ContextIDs(), ", "),
		}
	}
	return domain.Validation{Valid: true, Message: "Cultural context is valid"}
}

// ValidateFileUpload checks extension and declared size. The size check is
// skipped when the transport did not advertise one (size <= 0); nothing
// estimates size from content.
func (v *Validator) ValidateFileUpload(filename string, size int64) domain.Validation {
	if filename == "" {
		return domain.Validation{Valid: false, Message: "No file provided"}
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return domain.Validation{Valid: false, Message: "Invalid file type. Allowed extensions: .pdf"}
	}
	if size > 0 && size > v.maxUploadMB*1024*1024 {
		return domain.Validation{
			Valid:   false,
			Message: fmt.Sprintf("File size exceeds %dMB limit", v.maxUploadMB),
		}
	}
	return domain.Validation{Valid: true, Message: "File is valid"}
}

// Sanitize strips forbidden patterns and collapses whitespace.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	for _, pattern := range forbiddenPatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	return strings.Join(strings.Fields(text), " ")
}

func containsMedicalContent(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range medicalKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func preview(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
