package article_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-news/internal/article"
	"github.com/goliatone/go-news/internal/i18n"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"
)

func TestResolveFallsBackPerField(t *testing.T) {
	record := &article.Article{
		ID:           uuid.New(),
		Title:        article.LangMap{"en": "Hello", "fr": "Bonjour"},
		Content:      article.LangMap{"en": "Body"},
		OriginalLang: "en",
	}

	resolver := article.NewResolver(i18n.Default())
	view := resolver.Resolve(record, "fr")

	if view.Title != "Bonjour" {
		t.Fatalf("expected fr title got %q", view.Title)
	}
	if view.Content != "Body" {
		t.Fatalf("expected base content fallback got %q", view.Content)
	}
	if view.Meta.ResolvedTitleLang != "fr" || view.Meta.ResolvedContentLang != "en" {
		t.Fatalf("unexpected meta %+v", view.Meta)
	}
	if !view.Meta.FallbackUsed {
		t.Fatal("expected fallback flag")
	}
}

func TestResolveMissingLanguageFallsBackToBase(t *testing.T) {
	record := &article.Article{
		ID:           uuid.New(),
		Title:        article.LangMap{"en": "Hello"},
		Content:      article.LangMap{"en": "Body"},
		OriginalLang: "en",
	}

	resolver := article.NewResolver(i18n.Default())

	if view := resolver.Resolve(record, "fr"); view.Title != "Hello" {
		t.Fatalf("expected base fallback got %q", view.Title)
	}
}

func TestResolveUnsupportedLanguageSubstitutesBase(t *testing.T) {
	record := &article.Article{
		ID:           uuid.New(),
		Title:        article.LangMap{"en": "Hello"},
		Content:      article.LangMap{"en": "Body"},
		OriginalLang: "en",
	}

	resolver := article.NewResolver(i18n.Default())
	view := resolver.Resolve(record, "xx")

	if view.Title != "Hello" {
		t.Fatalf("expected base substitution got %q", view.Title)
	}
	if view.Meta.ResolvedLang != "en" {
		t.Fatalf("expected resolved lang en got %q", view.Meta.ResolvedLang)
	}
}

func TestResolveEmptyEntryFallsBack(t *testing.T) {
	record := &article.Article{
		ID:           uuid.New(),
		Title:        article.LangMap{"en": "Hello", "ru": ""},
		Content:      article.LangMap{"en": "Body", "ru": "Тело"},
		OriginalLang: "en",
	}

	resolver := article.NewResolver(i18n.Default())
	view := resolver.Resolve(record, "ru")

	if view.Title != "Hello" {
		t.Fatalf("expected fallback for attempted-but-unavailable title got %q", view.Title)
	}
	if view.Content != "Тело" {
		t.Fatalf("expected ru content got %q", view.Content)
	}
}

func TestResolveNoFallbackFlagWhenDirectHit(t *testing.T) {
	record := &article.Article{
		ID:           uuid.New(),
		Title:        article.LangMap{"en": "Hello"},
		Content:      article.LangMap{"en": "Body"},
		OriginalLang: "en",
	}

	view := article.NewResolver(i18n.Default()).Resolve(record, "en")

	if view.Meta.FallbackUsed {
		t.Fatalf("unexpected fallback flag: %+v", view.Meta)
	}
}

func TestResolveRendersMarkdownWhenConfigured(t *testing.T) {
	record := &article.Article{
		ID:           uuid.New(),
		Title:        article.LangMap{"en": "Hello"},
		Content:      article.LangMap{"en": "**bold** body"},
		OriginalLang: "en",
	}

	resolver := article.NewResolver(i18n.Default(), article.WithMarkdown(goldmark.New()))
	view := resolver.Resolve(record, "en")

	if !strings.Contains(view.ContentHTML, "<strong>bold</strong>") {
		t.Fatalf("expected rendered markdown got %q", view.ContentHTML)
	}
}
