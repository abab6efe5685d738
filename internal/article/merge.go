package article

import (
	"github.com/goliatone/go-news/internal/i18n"
)

// MergeLangMap computes the per-language map resulting from a partial update.
// The result starts from existing; every supported key in partial with a
// non-empty value overwrites the corresponding entry. Keys absent from
// partial stay untouched, and empty or unsupported keys are ignored so a
// partial payload can never erase an existing translation.
//
// Both inputs are treated as immutable; the returned map is a fresh copy.
func MergeLangMap(existing, partial LangMap, langs *i18n.LanguageSet) LangMap {
	merged := existing.Clone()
	if merged == nil {
		merged = LangMap{}
	}

	for code, value := range partial {
		if value == "" {
			continue
		}
		if !langs.IsSupported(code) {
			continue
		}
		merged[langs.Resolve(code)] = value
	}

	return merged
}
