package gemini

import "fmt"

type contextTemplate struct {
	language           string
	languageCode       string
	culturalNotes      string
	communicationStyle string
}

var contextTemplates = map[string]contextTemplate{
	"tagalog-rural": {
		language:           "Tagalog/Filipino",
		languageCode:       "tl",
		culturalNotes:      "Rural Philippines, traditional family values, respect for elders, community-oriented healthcare",
		communicationStyle: "Respectful, family-inclusive, uses local terms and metaphors",
	},
	"thai-low-literacy": {
		language:           "Thai",
		languageCode:       "th",
		culturalNotes:      "Low literacy population, Buddhist influences, traditional medicine awareness",
		communicationStyle: "Simple language, visual metaphors, respectful tone",
	},
	"khmer-indigenous": {
		language:           "Khmer/Cambodian",
		languageCode:       "km",
		culturalNotes:      "Indigenous communities, traditional healing practices, Buddhist beliefs",
		communicationStyle: "Community-centered, respectful of traditional practices",
	},
	"vietnamese-elderly": {
		language:           "Vietnamese",
		languageCode:       "vi",
		culturalNotes:      "Elderly population, Confucian values, family hierarchy, traditional medicine",
		communicationStyle: "Highly respectful, family-oriented, acknowledges traditional practices",
	},
	"malay-traditional": {
		language:           "Malay/Bahasa Melayu",
		languageCode:       "ms",
		culturalNotes:      "Traditional Malay communities, Islamic influences, family-centered care",
		communicationStyle: "Respectful, Islamic-appropriate, family-inclusive",
	},
}

func buildAdaptationPrompt(message string, tmpl contextTemplate) string {
	return fmt.Sprintf(`You are a medical communication expert specializing in culturally sensitive healthcare messaging.

Task: Adapt the following medical message for a specific cultural context. Respond ONLY in %[1]s.

Original Message: "%[2]s"

Target Culture Information:
- Language: %[1]s
- Cultural Context: %[3]s
- Communication Style: %[4]s

Instructions:
1. Translate and adapt the message to be culturally appropriate
2. Use respectful, clear language appropriate for the target audience
3. Consider cultural beliefs and healthcare practices
4. Maintain the essential medical information while making it culturally sensitive
5. If applicable, acknowledge traditional practices respectfully
6. Use appropriate honorifics and respectful tone

Provide ONLY the adapted message in %[1]s. Do not use English or provide explanations.`,
		tmpl.language, message, tmpl.culturalNotes, tmpl.communicationStyle)
}
