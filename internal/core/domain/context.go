package domain

// CulturalContext describes one target audience profile. The catalog of
// contexts is fixed at process start and never mutated afterwards.
type CulturalContext struct {
	ID              string   `yaml:"id" json:"value"`
	Label           string   `yaml:"label" json:"label"`
	Language        string   `yaml:"language" json:"language"`
	LanguageCode    string   `yaml:"language_code" json:"languageCode"`
	Region          string   `yaml:"region" json:"region"`
	Description     string   `yaml:"description" json:"description"`
	Characteristics []string `yaml:"characteristics" json:"characteristics"`
}

// Language is one entry of the supported-language table.
type Language struct {
	Code       string `yaml:"code" json:"code"`
	Name       string `yaml:"name" json:"name"`
	NativeName string `yaml:"native_name" json:"nativeName"`
}

// ContextGeneral is the sentinel id accepted wherever a cultural context is
// optional. It is valid input but is not part of the published catalog.
const ContextGeneral = "general"
