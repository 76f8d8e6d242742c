package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/meditalks/backend/internal/core/domain"
	"github.com/meditalks/backend/internal/core/ports"
	"github.com/meditalks/backend/internal/culture"
)

const (
	// Prompt truncation limits, in runes. Summary and key-point prompts get
	// a shorter slice than the structured extraction prompts.
	summaryPromptRunes  = 2000
	analysisPromptRunes = 2500

	maxKeyPoints   = 5
	maxActionItems = 7

	summaryMaxTokens = 1000
)

var lengthInstructions = map[string]string{
	"short":  "1-2 sentences",
	"medium": "3-4 sentences",
	"long":   "5-6 sentences",
}

// promptLanguageNames covers the languages the summary prompts may be asked
// for; anything else prompts in English.
var promptLanguageNames = map[string]string{
	"en": "English",
	"th": "Thai",
	"vi": "Vietnamese",
	"ms": "Malay",
	"km": "Khmer",
	"tl": "Tagalog",
	"hi": "Hindi",
	"te": "Telugu",
	"ta": "Tamil",
	"kn": "Kannada",
	"bn": "Bengali",
}

// summaryAudiences describes each context for the document summary prompt.
var summaryAudiences = map[string]string{
	"tagalog-rural":      "rural Filipino communities with traditional family values and respect for elders",
	"thai-low-literacy":  "Thai communities with limited literacy, Buddhist influences, and traditional medicine awareness",
	"khmer-indigenous":   "indigenous Khmer communities with strong Buddhist beliefs and traditional healing practices",
	"vietnamese-elderly": "elderly Vietnamese population with Confucian values and family-centered healthcare",
	"malay-traditional":  "traditional Malay communities with Islamic influences and family-centered care",
}

// actionAudiences describes each context for the action items prompt.
var actionAudiences = map[string]string{
	"tagalog-rural":      "rural Filipino families who value community input and respect traditional practices",
	"thai-low-literacy":  "Thai communities with limited literacy who prefer simple, visual explanations",
	"khmer-indigenous":   "indigenous Khmer communities who respect traditional healing alongside modern medicine",
	"vietnamese-elderly": "elderly Vietnamese patients who prefer family involvement in healthcare decisions",
	"malay-traditional":  "traditional Malay families who consider Islamic principles in healthcare",
}

const generalAudience = "general healthcare context"

// Section headers the structured extraction prompt asks for.
var analysisHeaders = []string{"KEY TERMS", "MEDICAL CONCEPTS", "INSTRUCTIONS"}

// Keywords that mark a sentence as worth keeping in the naive key point
// fallback.
var keyPointKeywords = []string{
	"medication", "dose", "treatment", "doctor", "hospital",
	"symptoms", "diagnosis", "prescription", "important", "warning",
}

// SummarizeUseCase analyzes document text through the provider chain,
// falling back to deterministic summaries when no provider can answer.
type SummarizeUseCase struct {
	providers []ports.TextGenerator
	logger    *slog.Logger
}

func NewSummarizeUseCase(logger *slog.Logger, providers ...ports.TextGenerator) *SummarizeUseCase {
	return &SummarizeUseCase{providers: providers, logger: logger}
}

// AnalyzeAndSummarize produces a plain summary plus key points in the target
// language. Inputs shorter than ten characters fail without touching any
// provider.
func (uc *SummarizeUseCase) AnalyzeAndSummarize(ctx context.Context, text, targetLanguage, summaryLength string) domain.AnalysisResult {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minExtractedChars {
		return domain.AnalysisResult{
			Success:  false,
			Err:      "Text too short for analysis",
			Language: targetLanguage,
		}
	}

	result := domain.AnalysisResult{
		Success:   true,
		Language:  targetLanguage,
		WordCount: len(strings.Fields(text)),
		CharCount: utf8.RuneCountInString(text),
		Source:    SourceFallback,
	}

	provider := uc.firstAvailable()
	if provider == nil {
		result.Summary = fallbackSummary(text)
		result.KeyPoints = fallbackKeyPoints(text)
		return result
	}

	opts := ports.GenerateOptions{Language: targetLanguage, MaxTokens: summaryMaxTokens}

	if summary, ok := uc.generate(ctx, provider, summaryPrompt(text, targetLanguage, summaryLength), opts); ok {
		result.Summary = summary
		result.Source = provider.Name()
	} else {
		result.Summary = fallbackSummary(text)
	}

	if points, ok := uc.generate(ctx, provider, keyPointsPrompt(text, targetLanguage), opts); ok {
		result.KeyPoints = parseListItems(points, maxKeyPoints)
	} else {
		result.KeyPoints = fallbackKeyPoints(text)
	}

	return result
}

// AnalyzeDocument is the full PDF analysis path: a culturally framed summary
// plus structured medical concepts and action items.
func (uc *SummarizeUseCase) AnalyzeDocument(ctx context.Context, text, contextID, targetLanguage string) domain.AnalysisResult {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minExtractedChars {
		return domain.AnalysisResult{
			Success:   false,
			Err:       "Text too short for analysis",
			ContextID: contextID,
			Language:  targetLanguage,
		}
	}

	result := domain.AnalysisResult{
		Success:   true,
		ContextID: contextID,
		Language:  targetLanguage,
		WordCount: len(strings.Fields(text)),
		CharCount: utf8.RuneCountInString(text),
		Source:    SourceFallback,
	}

	provider := uc.firstAvailable()
	if provider == nil {
		result.Summary = fallbackSummary(text)
		result.KeyTerms, result.Concepts, result.Instructions = culture.FallbackConcepts(targetLanguage)
		result.ActionItems = culture.FallbackActionItems(contextID)
		return result
	}

	opts := ports.GenerateOptions{Language: targetLanguage, MaxTokens: summaryMaxTokens}

	if summary, ok := uc.generate(ctx, provider, documentSummaryPrompt(text, contextID, targetLanguage), opts); ok {
		result.Summary = summary
		result.Source = provider.Name()
	} else {
		result.Summary = fallbackSummary(text)
	}

	if analysis, ok := uc.generate(ctx, provider, conceptsPrompt(text, targetLanguage), opts); ok {
		sections := parseSections(analysis, analysisHeaders)
		result.KeyTerms = sections["KEY TERMS"]
		result.Concepts = sections["MEDICAL CONCEPTS"]
		result.Instructions = sections["INSTRUCTIONS"]
	} else {
		result.KeyTerms, result.Concepts, result.Instructions = culture.FallbackConcepts(targetLanguage)
	}

	if items, ok := uc.generate(ctx, provider, actionItemsPrompt(text, contextID, targetLanguage), opts); ok {
		result.ActionItems = parseListItems(items, maxActionItems)
	} else {
		result.ActionItems = culture.FallbackActionItems(contextID)
	}

	return result
}

func (uc *SummarizeUseCase) firstAvailable() ports.TextGenerator {
	for _, provider := range uc.providers {
		if provider.Available() {
			return provider
		}
	}
	return nil
}

// generate runs one provider call; ok is false on error or blank output.
func (uc *SummarizeUseCase) generate(ctx context.Context, provider ports.TextGenerator, prompt string, opts ports.GenerateOptions) (string, bool) {
	out, err := provider.Generate(ctx, prompt, opts)
	if err != nil {
		uc.logger.WarnContext(ctx, "summarization generation failed",
			slog.String("provider", provider.Name()),
			slog.String("error", err.Error()))
		return "", false
	}
	out = strings.TrimSpace(out)
	return out, out != ""
}

func promptLanguage(code string) string {
	if name, ok := promptLanguageNames[code]; ok {
		return name
	}
	return "English"
}

func audienceFor(table map[string]string, contextID string) string {
	if desc, ok := table[contextID]; ok {
		return desc
	}
	return generalAudience
}

// truncateRunes cuts text to at most n runes without splitting a character.
func truncateRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

func summaryPrompt(text, targetLanguage, summaryLength string) string {
	instruction, ok := lengthInstructions[summaryLength]
	if !ok {
		instruction = lengthInstructions["medium"]
	}
	language := promptLanguage(targetLanguage)
	return fmt.Sprintf(`Summarize the following text in %[1]s ONLY. Do not use English in your response.
The summary should be %[2]s long and focus on the most important medical information.
If this is medical content, prioritize key medical information, instructions, and important health details.

Write everything in %[1]s only.

Text to summarize:
%[3]s`, language, instruction, truncateRunes(text, summaryPromptRunes))
}

func keyPointsPrompt(text, targetLanguage string) string {
	language := promptLanguage(targetLanguage)
	return fmt.Sprintf(`Extract 3-5 key points from the following text in %[1]s ONLY. Do not use English.
Format as a bullet-point list. Focus on the most important information.
If this is medical content, prioritize medical instructions, warnings, and key health information.

Write everything in %[1]s only.

Text:
%[2]s`, language, truncateRunes(text, summaryPromptRunes))
}

func documentSummaryPrompt(text, contextID, targetLanguage string) string {
	language := promptLanguage(targetLanguage)
	return fmt.Sprintf(`You are a medical communication expert. Analyze the following medical document and provide a comprehensive summary ONLY in %[1]s. Do not use English in your response.

The target audience is: %[2]s

Medical Document Text:
%[3]s

Provide a complete summary in %[1]s that includes:
1. What this medical document is about
2. Key medical information in simple terms
3. Important instructions for the patient/family
4. Any warnings or precautions
5. Cultural considerations for this community

Write everything in %[1]s only. Make it culturally appropriate and easy to understand.`,
		language, audienceFor(summaryAudiences, contextID), truncateRunes(text, summaryPromptRunes))
}

func conceptsPrompt(text, targetLanguage string) string {
	language := promptLanguage(targetLanguage)
	return fmt.Sprintf(`Analyze this medical document and extract key information in %[1]s ONLY. Do not use English.

Medical Document:
%[2]s

Provide in %[1]s:
1. Key Medical Terms (5-8 important medical words/phrases)
2. Medical Concepts (3-5 main medical ideas or conditions)
3. Important Instructions (3-5 specific things the patient must do)

Format your response as:
KEY TERMS:
- term 1 in %[1]s
- term 2 in %[1]s

MEDICAL CONCEPTS:
- concept 1 in %[1]s
- concept 2 in %[1]s

INSTRUCTIONS:
- instruction 1 in %[1]s
- instruction 2 in %[1]s

Write everything in %[1]s only.`, language, truncateRunes(text, analysisPromptRunes))
}

func actionItemsPrompt(text, contextID, targetLanguage string) string {
	language := promptLanguage(targetLanguage)
	return fmt.Sprintf(`Based on this medical document, provide ONLY actionable solutions in %[1]s for: %[2]s

Medical Document:
%[3]s

Provide 5-7 specific solutions in %[1]s that are:
1. Culturally appropriate and respectful
2. Practical and actionable
3. Consider family/community involvement
4. Respect traditional practices while emphasizing medical compliance
5. Include specific steps to take

Write ONLY in %[1]s. Format as a numbered list of clear action items.`,
		language, audienceFor(actionAudiences, contextID), truncateRunes(text, analysisPromptRunes))
}

// fallbackSummary takes the first three sentence-terminated spans of the
// text, capped at 300 runes.
func fallbackSummary(text string) string {
	if text == "" {
		return "No content to summarize."
	}

	var sentences []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			sentences = append(sentences, strings.TrimSpace(current.String()))
			current.Reset()
			if len(sentences) >= 3 {
				break
			}
		}
	}

	summary := strings.TrimSpace(strings.Join(sentences, " "))
	if utf8.RuneCountInString(summary) > 300 {
		summary = truncateRunes(summary, 300) + "..."
	}
	if summary == "" {
		return "Content processed successfully."
	}
	return summary
}

// fallbackKeyPoints scans the first sentences for medical keywords, keeping
// at most three. When nothing matches it settles for the first substantial
// sentences instead.
func fallbackKeyPoints(text string) []string {
	if text == "" {
		return nil
	}

	sentences := strings.Split(text, ".")

	var points []string
	for _, sentence := range firstN(sentences, 10) {
		sentence = strings.TrimSpace(sentence)
		if !containsKeyword(sentence) {
			continue
		}
		if n := utf8.RuneCountInString(sentence); n > 10 && n < 200 {
			points = append(points, sentence)
			if len(points) >= 3 {
				break
			}
		}
	}
	if len(points) > 0 {
		return points
	}

	for _, sentence := range firstN(sentences, 5) {
		sentence = strings.TrimSpace(sentence)
		if utf8.RuneCountInString(sentence) > 20 {
			points = append(points, sentence)
			if len(points) >= 3 {
				break
			}
		}
	}
	return points
}

func containsKeyword(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, keyword := range keyPointKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
