package interfaces

import "context"

// TranslationProvider is the external machine-translation capability used to
// derive missing language entries from an article's original-language text.
// Implementations must surface failures as errors rather than panicking;
// callers treat a failed call as "translation unavailable" for that target
// language and continue.
type TranslationProvider interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// TranslationProviderFunc adapts a plain function to TranslationProvider.
type TranslationProviderFunc func(ctx context.Context, text, source, target string) (string, error)

// Translate implements TranslationProvider.
func (f TranslationProviderFunc) Translate(ctx context.Context, text, source, target string) (string, error) {
	return f(ctx, text, source, target)
}
