package i18n

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoLanguages     = errors.New("i18n: at least one language is required")
	ErrBaseUnsupported = errors.New("i18n: base language is not part of the set")
	ErrDuplicateCode   = errors.New("i18n: duplicate language code")
)

// DefaultCodes is the closed set of languages the service ships with. The
// order is significant: it is the order translation attempts and map
// normalization iterate in.
var DefaultCodes = []string{"en", "de", "es", "fr", "it", "ru", "ar", "tr"}

// DefaultBase is the designated fallback language.
const DefaultBase = "en"

// LanguageSet is an ordered, closed set of language codes plus a designated
// base code. All language-keyed maps in the module are keyed only by codes in
// this set.
type LanguageSet struct {
	codes []string
	base  string
	index map[string]struct{}
}

// NewLanguageSet validates and builds a language set. Codes are lowercased
// and trimmed; the base code must be a member of the set.
func NewLanguageSet(codes []string, base string) (*LanguageSet, error) {
	if len(codes) == 0 {
		return nil, ErrNoLanguages
	}

	set := &LanguageSet{
		codes: make([]string, 0, len(codes)),
		index: make(map[string]struct{}, len(codes)),
	}

	for _, raw := range codes {
		code := normalizeCode(raw)
		if code == "" {
			continue
		}
		if _, ok := set.index[code]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, code)
		}
		set.codes = append(set.codes, code)
		set.index[code] = struct{}{}
	}

	if len(set.codes) == 0 {
		return nil, ErrNoLanguages
	}

	set.base = normalizeCode(base)
	if _, ok := set.index[set.base]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrBaseUnsupported, base)
	}

	return set, nil
}

// Default returns the built-in language set.
func Default() *LanguageSet {
	set, err := NewLanguageSet(DefaultCodes, DefaultBase)
	if err != nil {
		panic(err)
	}
	return set
}

// IsSupported reports whether code belongs to the set.
func (s *LanguageSet) IsSupported(code string) bool {
	_, ok := s.index[normalizeCode(code)]
	return ok
}

// Base returns the designated fallback language code.
func (s *LanguageSet) Base() string {
	return s.base
}

// Codes returns the ordered member codes. Callers must not mutate the
// returned slice.
func (s *LanguageSet) Codes() []string {
	return s.codes
}

// Resolve substitutes the base language for unsupported or absent codes.
// Used on read paths; write paths that require an explicit target language
// must validate with IsSupported instead.
func (s *LanguageSet) Resolve(code string) string {
	normalized := normalizeCode(code)
	if _, ok := s.index[normalized]; ok {
		return normalized
	}
	return s.base
}

func normalizeCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
