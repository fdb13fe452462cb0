package i18n

import (
	"encoding/json"
	"fmt"
	"os"

	"gvcargo/internal/models"
)

// Catalog maps translation keys to per-language display strings.
// Missing entries resolve to a visible placeholder instead of an
// error: a hole in the catalog is a data bug, not a crash.
type Catalog struct {
	entries map[string]map[string]string
}

// Load reads a JSON catalog of the form
// {"key": {"ru": "...", "en": "...", "uz": "..."}, ...}.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read translations: %w", err)
	}

	var entries map[string]map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse translations: %w", err)
	}

	return &Catalog{entries: entries}, nil
}

// NewCatalog builds a catalog from an in-memory map. Used in tests.
func NewCatalog(entries map[string]map[string]string) *Catalog {
	return &Catalog{entries: entries}
}

// Get returns the display string for key in lang. Unset or
// untranslated languages fall back to Russian, matching the
// pre-selection prompts.
func (c *Catalog) Get(key, lang string) string {
	if lang == "" {
		lang = models.LangRU
	}

	if langs, ok := c.entries[key]; ok {
		if text, ok := langs[lang]; ok {
			return text
		}
		if text, ok := langs[models.LangRU]; ok {
			return text
		}
	}

	return "NO_TRANSLATION_FOR_" + key
}

// Getf formats the entry for key with fmt verbs.
func (c *Catalog) Getf(key, lang string, args ...interface{}) string {
	return fmt.Sprintf(c.Get(key, lang), args...)
}
