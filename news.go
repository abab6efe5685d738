package news

import (
	"net/http"
	"time"

	"github.com/goliatone/go-news/internal/analytics"
	"github.com/goliatone/go-news/internal/article"
	"github.com/goliatone/go-news/internal/httpapi"
	"github.com/goliatone/go-news/internal/i18n"
	"github.com/goliatone/go-news/internal/logging"
	"github.com/goliatone/go-news/internal/logging/gologger"
	"github.com/goliatone/go-news/internal/translate"
	"github.com/goliatone/go-news/pkg/interfaces"
	"github.com/uptrace/bun"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// ArticleService exports the article service contract for consumers of the
// news package.
type ArticleService = article.Service

// AnalyticsService exports the analytics service contract.
type AnalyticsService = analytics.Service

// Article exports the stored record type.
type Article = article.Article

// LangMap exports the per-language value map.
type LangMap = article.LangMap

// DisplayView exports the resolved single-language projection.
type DisplayView = article.DisplayView

// ArticleList exports the paginated listing envelope.
type ArticleList = article.ArticleList

// Summary exports the analytics snapshot.
type Summary = analytics.Summary

// Request DTOs re-exported for host applications.
type (
	CreateArticleRequest     = article.CreateArticleRequest
	UpdateArticleRequest     = article.UpdateArticleRequest
	UpdateTranslationRequest = article.UpdateTranslationRequest
	ListArticlesRequest      = article.ListArticlesRequest
)

// Module is the top level news runtime facade. Construct it with New and
// reach the services through the accessor methods.
type Module struct {
	langs     *i18n.LanguageSet
	articles  article.Service
	analytics analytics.Service
	api       *httpapi.API
}

type moduleDeps struct {
	db          *bun.DB
	repo        article.Repository
	translator  interfaces.TranslationProvider
	logProvider interfaces.LoggerProvider
	auth        interfaces.AuthProvider
	assets      interfaces.AssetStorage
	clock       func() time.Time
	idGen       article.IDGenerator
}

// Option overrides a module dependency at construction time.
type Option func(*moduleDeps)

// WithDB persists articles through bun instead of the in-memory repository.
func WithDB(db *bun.DB) Option {
	return func(d *moduleDeps) {
		d.db = db
	}
}

// WithRepository injects a custom article repository. Takes precedence over
// WithDB.
func WithRepository(repo article.Repository) Option {
	return func(d *moduleDeps) {
		d.repo = repo
	}
}

// WithTranslationProvider replaces the LibreTranslate client, e.g. with a
// stub in tests or another machine translation backend.
func WithTranslationProvider(provider interfaces.TranslationProvider) Option {
	return func(d *moduleDeps) {
		d.translator = provider
	}
}

// WithLoggerProvider supplies the host application's logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(d *moduleDeps) {
		d.logProvider = provider
	}
}

// WithAuthProvider gates HTTP mutations behind the supplied decision.
func WithAuthProvider(auth interfaces.AuthProvider) Option {
	return func(d *moduleDeps) {
		d.auth = auth
	}
}

// WithAssetStorage enables cover image lifecycle management.
func WithAssetStorage(assets interfaces.AssetStorage) Option {
	return func(d *moduleDeps) {
		d.assets = assets
	}
}

// WithClock overrides the module clock.
func WithClock(clock func() time.Time) Option {
	return func(d *moduleDeps) {
		d.clock = clock
	}
}

// WithIDGenerator overrides article ID generation.
func WithIDGenerator(gen article.IDGenerator) Option {
	return func(d *moduleDeps) {
		d.idGen = gen
	}
}

// New wires the news module from the provided configuration and optional
// dependency overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	deps := &moduleDeps{}
	for _, opt := range opts {
		opt(deps)
	}

	langs, err := i18n.NewLanguageSet(cfg.I18N.Languages, cfg.I18N.DefaultLanguage)
	if err != nil {
		return nil, err
	}

	logProvider := deps.logProvider
	if logProvider == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		logProvider = provider
	}

	translator := deps.translator
	if translator == nil {
		clientOpts := []translate.ClientOption{}
		if cfg.Translator.APIKey != "" {
			clientOpts = append(clientOpts, translate.WithAPIKey(cfg.Translator.APIKey))
		}
		translator = translate.NewClient(cfg.Translator.Endpoint, clientOpts...)
	}

	repo := deps.repo
	if repo == nil {
		if deps.db != nil {
			repo = article.NewBunRepository(deps.db)
		} else {
			repo = article.NewMemoryRepository()
		}
	}

	pipeline := translate.NewPipeline(translator, langs,
		translate.WithLogger(logging.TranslateLogger(logProvider)))

	resolverOpts := []article.ResolverOption{}
	if cfg.Markdown.Enabled {
		resolverOpts = append(resolverOpts, article.WithMarkdown(newMarkdown(cfg.Markdown)))
	}
	resolver := article.NewResolver(langs, resolverOpts...)

	serviceOpts := []article.ServiceOption{
		article.WithLogger(logging.ArticleLogger(logProvider)),
		article.WithResolver(resolver),
	}
	if deps.assets != nil {
		serviceOpts = append(serviceOpts, article.WithAssetStorage(deps.assets))
	}
	if deps.clock != nil {
		serviceOpts = append(serviceOpts, article.WithClock(deps.clock))
	}
	if deps.idGen != nil {
		serviceOpts = append(serviceOpts, article.WithIDGenerator(deps.idGen))
	}
	articles := article.NewService(repo, langs, pipeline, serviceOpts...)

	stats := analytics.NewService(repo, langs,
		analytics.WithLogger(logging.AnalyticsLogger(logProvider)))

	apiOpts := []httpapi.Option{
		httpapi.WithLogger(logging.HTTPLogger(logProvider)),
	}
	if cfg.HTTP.BasePath != "" {
		apiOpts = append(apiOpts, httpapi.WithBasePath(cfg.HTTP.BasePath))
	}
	if deps.auth != nil {
		apiOpts = append(apiOpts, httpapi.WithAuthProvider(deps.auth))
	}
	if deps.clock != nil {
		apiOpts = append(apiOpts, httpapi.WithClock(deps.clock))
	}
	api := httpapi.NewAPI(articles, stats, apiOpts...)

	return &Module{
		langs:     langs,
		articles:  articles,
		analytics: stats,
		api:       api,
	}, nil
}

// Articles returns the configured article service.
func (m *Module) Articles() ArticleService {
	return m.articles
}

// Analytics returns the configured analytics service.
func (m *Module) Analytics() AnalyticsService {
	return m.analytics
}

// Languages returns the supported language codes in configuration order.
func (m *Module) Languages() []string {
	return m.langs.Codes()
}

// DefaultLanguage returns the configured base language code.
func (m *Module) DefaultLanguage() string {
	return m.langs.Base()
}

// API returns the HTTP adapter for custom mounting.
func (m *Module) API() *httpapi.API {
	return m.api
}

// Handler returns a ready-to-serve handler with every route mounted.
func (m *Module) Handler() http.Handler {
	return m.api.Handler()
}

func newMarkdown(cfg MarkdownConfig) goldmark.Markdown {
	rendererOptions := []renderer.Option{html.WithUnsafe()}
	if cfg.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}
