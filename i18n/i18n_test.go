package i18n

import (
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestT_English(t *testing.T) {
	SetLang("en")
	t.Cleanup(func() { SetLang("") })

	got := T("cloning", "https://example.com/repo.git", "repo/_base")
	if got != "Cloning: https://example.com/repo.git -> repo/_base" {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestT_Japanese(t *testing.T) {
	SetLang("ja")
	t.Cleanup(func() { SetLang("") })

	got := T("completed_remove", "feature-x")
	if !strings.Contains(got, "feature-x") || !strings.Contains(got, "削除") {
		t.Errorf("unexpected message: %q", got)
	}
}

func TestT_UnknownKeyReturnsKey(t *testing.T) {
	SetLang("en")
	t.Cleanup(func() { SetLang("") })

	if got := T("no_such_key"); got != "no_such_key" {
		t.Errorf("expected key passthrough, got %q", got)
	}
}

func TestLang_FromEnv(t *testing.T) {
	SetLang("")
	t.Setenv("LANG", "ja_JP.UTF-8")
	if Lang() != "ja" {
		t.Errorf("expected ja, got %s", Lang())
	}

	t.Setenv("LANG", "en_US.UTF-8")
	if Lang() != "en" {
		t.Errorf("expected en, got %s", Lang())
	}
}

// Every catalog entry must have both languages so nothing silently renders
// in the wrong one.
func TestCatalog_Complete(t *testing.T) {
	var cat map[string]map[string]string
	if err := yaml.Unmarshal(catalogYAML, &cat); err != nil {
		t.Fatalf("catalog does not parse: %v", err)
	}
	if len(cat) == 0 {
		t.Fatal("catalog is empty")
	}
	for key, langs := range cat {
		for _, lang := range []string{"en", "ja"} {
			if langs[lang] == "" {
				t.Errorf("key %s missing %s translation", key, lang)
			}
		}
	}
}
