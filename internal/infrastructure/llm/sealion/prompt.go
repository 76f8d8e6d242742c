package sealion

import "fmt"

// contextTemplate carries the cultural framing the adaptation prompt is
// built from. SEA-LION responds best when the audience and communication
// style are spelled out explicitly.
type contextTemplate struct {
	language              string
	languageCode          string
	culturalNotes         string
	communicationStyle    string
	medicalConsiderations string
}

var contextTemplates = map[string]contextTemplate{
	"tagalog-rural": {
		language:              "Filipino/Tagalog",
		languageCode:          "tl",
		culturalNotes:         "Rural Filipino community with strong family values, Catholic influences, and traditional healing practices",
		communicationStyle:    `Respectful, family-oriented, uses "po" and "opo" for respect`,
		medicalConsiderations: "Family involvement in decisions, traditional and modern medicine integration",
	},
	"thai-low-literacy": {
		language:              "Thai",
		languageCode:          "th",
		culturalNotes:         "Buddhist Thai community with low literacy, prefers simple language and visual communication",
		communicationStyle:    "Simple, respectful, uses appropriate Buddhist terminology",
		medicalConsiderations: "Simple explanations, traditional medicine awareness, hierarchical respect",
	},
	"khmer-indigenous": {
		language:              "Khmer/Cambodian",
		languageCode:          "km",
		culturalNotes:         "Indigenous Khmer community with strong Buddhist beliefs and traditional practices",
		communicationStyle:    "Community-oriented, oral tradition, respectful of traditional healers",
		medicalConsiderations: "Traditional healing integration, community consensus in decisions",
	},
	"vietnamese-elderly": {
		language:              "Vietnamese",
		languageCode:          "vi",
		culturalNotes:         "Elderly Vietnamese with Confucian values and family-centered healthcare",
		communicationStyle:    "Formal, hierarchical respect, family involvement",
		medicalConsiderations: "Intergenerational healthcare decisions, traditional medicine integration",
	},
	"malay-traditional": {
		language:              "Malay/Bahasa Melayu",
		languageCode:          "ms",
		culturalNotes:         "Traditional Malay community with Islamic influences and family involvement",
		communicationStyle:    "Islamic considerations, gender-appropriate, family-oriented",
		medicalConsiderations: "Halal considerations, Islamic medical ethics, family involvement",
	},
}

func buildAdaptationPrompt(message string, tmpl contextTemplate) string {
	return fmt.Sprintf(`As a medical communication expert specializing in Southeast Asian cultures, please adapt the following medical message for the specified cultural context.

Target Language: %[1]s
Cultural Context: %[2]s
Communication Style: %[3]s
Medical Considerations: %[4]s

Original Medical Message:
"%[5]s"

Instructions:
1. Translate and adapt the message to %[1]s if not already in that language
2. Use culturally appropriate communication style and terminology
3. Consider the specific cultural and medical considerations mentioned
4. Ensure the medical information remains accurate while being culturally sensitive
5. Include any necessary cultural context or explanations
6. Use respectful and appropriate language for the target community

Please provide the culturally adapted message in %[1]s:`,
		tmpl.language, tmpl.culturalNotes, tmpl.communicationStyle, tmpl.medicalConsiderations, message)
}
