package i18n_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-news/internal/i18n"
)

func TestNewLanguageSetValidatesBase(t *testing.T) {
	if _, err := i18n.NewLanguageSet([]string{"en", "de"}, "fr"); !errors.Is(err, i18n.ErrBaseUnsupported) {
		t.Fatalf("expected ErrBaseUnsupported got %v", err)
	}
}

func TestNewLanguageSetRejectsDuplicates(t *testing.T) {
	if _, err := i18n.NewLanguageSet([]string{"en", "EN"}, "en"); !errors.Is(err, i18n.ErrDuplicateCode) {
		t.Fatalf("expected ErrDuplicateCode got %v", err)
	}
}

func TestNewLanguageSetRequiresCodes(t *testing.T) {
	if _, err := i18n.NewLanguageSet(nil, "en"); !errors.Is(err, i18n.ErrNoLanguages) {
		t.Fatalf("expected ErrNoLanguages got %v", err)
	}
}

func TestDefaultSet(t *testing.T) {
	set := i18n.Default()

	if got := set.Base(); got != "en" {
		t.Fatalf("expected base en got %q", got)
	}
	if got := len(set.Codes()); got != 8 {
		t.Fatalf("expected 8 codes got %d", got)
	}
	for _, code := range []string{"en", "de", "es", "fr", "it", "ru", "ar", "tr"} {
		if !set.IsSupported(code) {
			t.Fatalf("expected %q to be supported", code)
		}
	}
	if set.IsSupported("xx") {
		t.Fatal("expected xx to be unsupported")
	}
}

func TestResolveFallsBackToBase(t *testing.T) {
	set := i18n.Default()

	if got := set.Resolve("de"); got != "de" {
		t.Fatalf("expected de got %q", got)
	}
	if got := set.Resolve(" FR "); got != "fr" {
		t.Fatalf("expected fr got %q", got)
	}
	if got := set.Resolve("xx"); got != "en" {
		t.Fatalf("expected en got %q", got)
	}
	if got := set.Resolve(""); got != "en" {
		t.Fatalf("expected en got %q", got)
	}
}
