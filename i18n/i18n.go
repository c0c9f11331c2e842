// Package i18n holds the bilingual (en/ja) message catalog for user-facing
// output. The language is selected from the LANG environment variable.
package i18n

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed messages.yaml
var catalogYAML []byte

var (
	once    sync.Once
	catalog map[string]map[string]string
)

// langOverride forces a language for testing ("" means use LANG).
var langOverride string

func load() {
	once.Do(func() {
		catalog = make(map[string]map[string]string)
		// The embedded catalog is validated by tests; a parse failure here
		// leaves the catalog empty and T falls back to the key.
		_ = yaml.Unmarshal(catalogYAML, &catalog)
	})
}

// Lang returns the active message language: "ja" when LANG indicates
// Japanese, "en" otherwise.
func Lang() string {
	if langOverride != "" {
		return langOverride
	}
	if strings.Contains(strings.ToLower(os.Getenv("LANG")), "ja") {
		return "ja"
	}
	return "en"
}

// SetLang overrides the detected language. Pass "" to restore detection.
// Intended for tests.
func SetLang(lang string) {
	langOverride = lang
}

// T returns the message for key in the active language, formatted with args.
// Unknown keys are returned as-is so a missing entry is visible, not fatal.
func T(key string, args ...any) string {
	load()

	langs, ok := catalog[key]
	if !ok {
		return key
	}
	msg, ok := langs[Lang()]
	if !ok {
		msg = langs["en"]
	}
	if msg == "" {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
