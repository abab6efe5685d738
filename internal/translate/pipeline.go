package translate

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goliatone/go-news/internal/i18n"
	"github.com/goliatone/go-news/internal/logging"
	"github.com/goliatone/go-news/pkg/interfaces"
)

// ErrTranslationFailed marks a single per-language translation attempt that
// could not be completed. It is recovered locally by the pipeline and never
// aborts article creation.
var ErrTranslationFailed = errors.New("translate: translation failed")

// Error carries the context of a failed translation attempt.
type Error struct {
	Field  string
	Source string
	Target string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s %s->%s: %v", ErrTranslationFailed.Error(), e.Field, e.Source, e.Target, e.Err)
}

func (e *Error) Unwrap() error {
	return ErrTranslationFailed
}

// Result holds the per-language maps produced by a pipeline run.
type Result struct {
	Title   map[string]string
	Content map[string]string
}

// Pipeline derives missing-language entries from the original-language seed
// values via an external translation capability. It has no shared state: it
// is a pure function of its inputs plus the provider, and fans calls out
// concurrently per target language.
type Pipeline struct {
	provider interfaces.TranslationProvider
	langs    *i18n.LanguageSet
	logger   interfaces.Logger
}

// Option configures the pipeline at construction time.
type Option func(*Pipeline)

// WithLogger overrides the logger used to record per-language failures.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline constructs a pipeline bound to a provider and language set.
func NewPipeline(provider interfaces.TranslationProvider, langs *i18n.LanguageSet, opts ...Option) *Pipeline {
	p := &Pipeline{
		provider: provider,
		langs:    langs,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Populate fills the title and content maps for every language in the set.
// The original-language entries are taken verbatim from the seeds and never
// machine translated. Every other language gets exactly one attempt per
// field, with no retries; a failed attempt records an explicit empty entry
// ("attempted, unavailable") and does not affect other languages. Populate
// returns only after all attempts settle.
func (p *Pipeline) Populate(ctx context.Context, originalLang, titleSeed, contentSeed string) Result {
	source := p.langs.Resolve(originalLang)

	result := Result{
		Title:   map[string]string{source: titleSeed},
		Content: map[string]string{source: contentSeed},
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, target := range p.langs.Codes() {
		if target == source {
			continue
		}

		wg.Add(1)
		go func(target string) {
			defer wg.Done()

			title := p.attempt(ctx, "title", titleSeed, source, target)
			content := p.attempt(ctx, "content", contentSeed, source, target)

			mu.Lock()
			result.Title[target] = title
			result.Content[target] = content
			mu.Unlock()
		}(target)
	}

	wg.Wait()
	return result
}

// attempt performs a single translation call, collapsing failures into the
// explicit empty entry.
func (p *Pipeline) attempt(ctx context.Context, field, text, source, target string) string {
	translated, err := p.provider.Translate(ctx, text, source, target)
	if err != nil {
		attemptErr := &Error{Field: field, Source: source, Target: target, Err: err}
		p.logger.Warn("translation attempt failed",
			"field", field,
			"source", source,
			"target", target,
			"error", attemptErr.Error(),
		)
		return ""
	}
	return translated
}
