// Package culture holds the fixed catalog of cultural contexts, the
// supported-language table and the static fallback templates. Everything in
// it is immutable after Load.
package culture

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/meditalks/backend/internal/core/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Catalog struct {
	contexts  []domain.CulturalContext
	languages []domain.Language

	byID     map[string]domain.CulturalContext
	langByID map[string]domain.Language
}

// Load parses the embedded catalog. Called once in bootstrap; the returned
// value is shared read-only across requests.
func Load() (*Catalog, error) {
	var raw struct {
		Contexts  []domain.CulturalContext `yaml:"contexts"`
		Languages []domain.Language        `yaml:"languages"`
	}
	if err := yaml.Unmarshal(catalogYAML, &raw); err != nil {
		return nil, fmt.Errorf("parse cultural context catalog: %w", err)
	}
	if len(raw.Contexts) == 0 {
		return nil, fmt.Errorf("cultural context catalog is empty")
	}

	c := &Catalog{
		contexts:  raw.Contexts,
		languages: raw.Languages,
		byID:      make(map[string]domain.CulturalContext, len(raw.Contexts)),
		langByID:  make(map[string]domain.Language, len(raw.Languages)),
	}
	for _, cc := range raw.Contexts {
		c.byID[cc.ID] = cc
	}
	for _, lang := range raw.Languages {
		c.langByID[lang.Code] = lang
	}
	return c, nil
}

// Contexts returns the published catalog in declaration order.
func (c *Catalog) Contexts() []domain.CulturalContext {
	out := make([]domain.CulturalContext, len(c.contexts))
	copy(out, c.contexts)
	return out
}

func (c *Catalog) Context(id string) (domain.CulturalContext, bool) {
	cc, ok := c.byID[id]
	return cc, ok
}

// KnownContext reports whether id is valid input, including the "general"
// sentinel that is accepted everywhere but never listed.
func (c *Catalog) KnownContext(id string) bool {
	if id == domain.ContextGeneral {
		return true
	}
	_, ok := c.byID[id]
	return ok
}

// ContextIDs returns the valid context ids including the general sentinel.
func (c *Catalog) ContextIDs() []string {
	ids := make([]string, 0, len(c.contexts)+1)
	for _, cc := range c.contexts {
		ids = append(ids, cc.ID)
	}
	return append(ids, domain.ContextGeneral)
}

// LanguageName maps an ISO code to its display name, falling back to the raw
// code when the table has no entry.
func (c *Catalog) LanguageName(code string) string {
	if lang, ok := c.langByID[code]; ok {
		return lang.Name
	}
	if code == "fil" {
		return "Filipino"
	}
	return code
}
