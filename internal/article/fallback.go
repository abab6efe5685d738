package article

import (
	"bytes"

	"github.com/goliatone/go-news/internal/i18n"
	"github.com/yuin/goldmark"
)

// Resolver projects an article onto a single requested language, applying
// the two-level fallback: unsupported requested language substitutes the
// base language, and a present-but-empty field falls back to the base entry.
// The fallback is applied per field since title and content can have
// independently missing translations.
type Resolver struct {
	langs    *i18n.LanguageSet
	markdown goldmark.Markdown
}

// ResolverOption customises resolver behaviour.
type ResolverOption func(*Resolver)

// WithMarkdown enables HTML rendering of the resolved content via goldmark.
func WithMarkdown(md goldmark.Markdown) ResolverOption {
	return func(r *Resolver) {
		r.markdown = md
	}
}

// NewResolver constructs a resolver bound to a language set.
func NewResolver(langs *i18n.LanguageSet, opts ...ResolverOption) *Resolver {
	r := &Resolver{langs: langs}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve builds the display view for the requested language.
func (r *Resolver) Resolve(record *Article, requested string) *DisplayView {
	if record == nil {
		return nil
	}

	lang := r.langs.Resolve(requested)
	base := r.langs.Base()

	title, titleLang := pickField(record.Title, lang, base)
	content, contentLang := pickField(record.Content, lang, base)

	view := &DisplayView{
		ID:         record.ID,
		Slug:       record.Slug,
		Title:      title,
		Content:    content,
		CoverImage: record.CoverImage,
		Views:      record.Views,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
		Meta: ResolutionMeta{
			RequestedLang:       requested,
			ResolvedLang:        lang,
			ResolvedTitleLang:   titleLang,
			ResolvedContentLang: contentLang,
			FallbackUsed:        titleLang != lang || contentLang != lang || lang != requested,
		},
	}

	if r.markdown != nil && content != "" {
		var buf bytes.Buffer
		if err := r.markdown.Convert([]byte(content), &buf); err == nil {
			view.ContentHTML = buf.String()
		}
	}

	return view
}

func pickField(values LangMap, lang, base string) (string, string) {
	if value := values[lang]; value != "" {
		return value, lang
	}
	return values[base], base
}
