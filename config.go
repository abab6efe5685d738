package news

import (
	"github.com/goliatone/go-news/internal/translate"
)

// I18NConfig describes the closed language universe for a module instance.
type I18NConfig struct {
	// Languages lists every supported code. Content maps never grow keys
	// outside this list.
	Languages []string `json:"languages" yaml:"languages"`
	// DefaultLanguage is the fallback target for resolution; it must be one
	// of Languages.
	DefaultLanguage string `json:"default_language" yaml:"default_language"`
}

// TranslatorConfig points the module at a LibreTranslate-compatible endpoint.
type TranslatorConfig struct {
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	APIKey   string `json:"api_key" yaml:"api_key"`
}

// MarkdownConfig toggles HTML rendering of resolved article content.
type MarkdownConfig struct {
	Enabled   bool `json:"enabled" yaml:"enabled"`
	HardWraps bool `json:"hard_wraps" yaml:"hard_wraps"`
}

// LoggingConfig mirrors the go-logger adapter options.
type LoggingConfig struct {
	Level     string   `json:"level" yaml:"level"`
	Format    string   `json:"format" yaml:"format"`
	AddSource bool     `json:"add_source" yaml:"add_source"`
	Focus     []string `json:"focus" yaml:"focus"`
}

// HTTPConfig controls the optional HTTP adapter.
type HTTPConfig struct {
	// BasePath is the mount prefix for the routes (default "news").
	BasePath string `json:"base_path" yaml:"base_path"`
}

// Config is the top level module configuration.
type Config struct {
	I18N       I18NConfig       `json:"i18n" yaml:"i18n"`
	Translator TranslatorConfig `json:"translator" yaml:"translator"`
	Markdown   MarkdownConfig   `json:"markdown" yaml:"markdown"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging"`
	HTTP       HTTPConfig       `json:"http" yaml:"http"`
}

// DefaultConfig returns the stock configuration: the eight stock languages
// with English as base, a local LibreTranslate endpoint, and console logging.
func DefaultConfig() Config {
	return Config{
		I18N: I18NConfig{
			Languages:       []string{"en", "de", "es", "fr", "it", "ru", "ar", "tr"},
			DefaultLanguage: "en",
		},
		Translator: TranslatorConfig{
			Endpoint: translate.DefaultEndpoint,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		HTTP: HTTPConfig{
			BasePath: "news",
		},
	}
}
