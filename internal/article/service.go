package article

import (
	"context"
	"fmt"
	"math"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-news/internal/i18n"
	"github.com/goliatone/go-news/internal/logging"
	"github.com/goliatone/go-news/internal/translate"
	"github.com/goliatone/go-news/pkg/interfaces"
	"github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// DefaultPageSize bounds list pagination when the caller does not specify one.
const DefaultPageSize = 20

// MaxPageSize is the hard ceiling for a single list page.
const MaxPageSize = 100

// Service exposes the article management use-cases.
type Service interface {
	Create(ctx context.Context, req CreateArticleRequest) (*Article, error)
	Update(ctx context.Context, req UpdateArticleRequest) (*Article, error)
	UpdateTranslation(ctx context.Context, req UpdateTranslationRequest) (*Article, error)
	Get(ctx context.Context, id uuid.UUID) (*Article, error)
	Display(ctx context.Context, id uuid.UUID, lang string) (*DisplayView, error)
	List(ctx context.Context, req ListArticlesRequest) (*ArticleList, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CreateArticleRequest captures the seed values for a new article. The
// translation pipeline derives every other language entry from the seeds.
type CreateArticleRequest struct {
	OriginalLang string
	Title        string
	Content      string
	CoverImage   *string
}

// Validate rejects requests missing the original-language seeds.
func (r CreateArticleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.OriginalLang, validation.Required),
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Content, validation.Required),
	)
}

// UpdateArticleRequest carries a partial per-language payload. Only supplied
// non-empty entries overwrite the stored maps; a supplied OriginalLang is
// ignored since the original language is immutable after creation.
type UpdateArticleRequest struct {
	ID         uuid.UUID
	Title      LangMap
	Content    LangMap
	CoverImage *string
}

// UpdateTranslationRequest sets exactly one language's entries directly. It
// is the backfill path used after a pipeline attempt failed.
type UpdateTranslationRequest struct {
	ID      uuid.UUID
	Lang    string
	Title   *string
	Content *string
}

// ListArticlesRequest describes a page of the newest-first article listing.
type ListArticlesRequest struct {
	Page     int
	PageSize int
	Lang     string
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// IDGenerator produces identifiers for new records.
type IDGenerator func() uuid.UUID

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAssetStorage wires the external store that releases replaced or
// orphaned cover images.
func WithAssetStorage(assets interfaces.AssetStorage) ServiceOption {
	return func(s *service) {
		s.assets = assets
	}
}

// WithResolver overrides the display resolver.
func WithResolver(resolver *Resolver) ServiceOption {
	return func(s *service) {
		if resolver != nil {
			s.resolver = resolver
		}
	}
}

type service struct {
	repo     Repository
	langs    *i18n.LanguageSet
	pipeline *translate.Pipeline
	resolver *Resolver
	assets   interfaces.AssetStorage
	logger   interfaces.Logger
	now      func() time.Time
	id       IDGenerator
}

// NewService constructs an article service with the required dependencies.
func NewService(repo Repository, langs *i18n.LanguageSet, pipeline *translate.Pipeline, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		langs:    langs,
		pipeline: pipeline,
		resolver: NewResolver(langs),
		logger:   logging.NoOp(),
		now:      time.Now,
		id:       uuid.New,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create validates the seeds, runs the translation pipeline for every other
// language, and persists the record. The article only becomes visible after
// all translation attempts settle.
func (s *service) Create(ctx context.Context, req CreateArticleRequest) (*Article, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !s.langs.IsSupported(req.OriginalLang) {
		return nil, fmt.Errorf("%w: %q", ErrOriginalLangInvalid, req.OriginalLang)
	}

	original := s.langs.Resolve(req.OriginalLang)
	result := s.pipeline.Populate(ctx, original, req.Title, req.Content)

	id := s.id()
	normalized, err := slug.Normalize(req.Title)
	if err != nil || normalized == "" {
		normalized = id.String()
	}

	now := s.now()
	record := &Article{
		ID:           id,
		Slug:         normalized,
		Title:        LangMap(result.Title),
		Content:      LangMap(result.Content),
		OriginalLang: original,
		CoverImage:   req.CoverImage,
		Views:        0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("article created",
		"article_id", created.ID.String(),
		"original_lang", original,
	)
	return created, nil
}

// Update merges the partial payload onto the stored record. Untouched
// languages keep their entries, the original language is re-asserted, and a
// supplied cover image replaces the old one wholesale.
func (s *service) Update(ctx context.Context, req UpdateArticleRequest) (*Article, error) {
	if req.ID == uuid.Nil {
		return nil, ErrArticleIDRequired
	}

	record, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	record.Title = MergeLangMap(record.Title, req.Title, s.langs)
	record.Content = MergeLangMap(record.Content, req.Content, s.langs)

	if req.CoverImage != nil {
		previous := record.CoverImage
		record.CoverImage = req.CoverImage
		if previous != nil && *previous != *req.CoverImage {
			s.releaseAsset(ctx, *previous)
		}
	}

	record.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateTranslation sets one language's title and/or content directly.
func (s *service) UpdateTranslation(ctx context.Context, req UpdateTranslationRequest) (*Article, error) {
	if req.ID == uuid.Nil {
		return nil, ErrArticleIDRequired
	}
	if !s.langs.IsSupported(req.Lang) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, req.Lang)
	}

	record, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	lang := s.langs.Resolve(req.Lang)
	if req.Title != nil {
		if record.Title == nil {
			record.Title = LangMap{}
		}
		record.Title[lang] = *req.Title
	}
	if req.Content != nil {
		if record.Content == nil {
			record.Content = LangMap{}
		}
		record.Content[lang] = *req.Content
	}

	record.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Get fetches an article without touching the view counter.
func (s *service) Get(ctx context.Context, id uuid.UUID) (*Article, error) {
	if id == uuid.Nil {
		return nil, ErrArticleIDRequired
	}
	return s.repo.GetByID(ctx, id)
}

// Display atomically increments the view counter and projects the record to
// the requested language.
func (s *service) Display(ctx context.Context, id uuid.UUID, lang string) (*DisplayView, error) {
	if id == uuid.Nil {
		return nil, ErrArticleIDRequired
	}

	record, err := s.repo.IncrementViews(ctx, id, s.now())
	if err != nil {
		return nil, err
	}

	return s.resolver.Resolve(record, lang), nil
}

// List returns a page of display views ordered newest first. Listing does
// not count as a view.
func (s *service) List(ctx context.Context, req ListArticlesRequest) (*ArticleList, error) {
	page := req.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, ErrPageInvalid
	}

	pageSize := req.PageSize
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, fmt.Errorf("%w: %d", ErrPageSizeInvalid, req.PageSize)
	}

	records, total, err := s.repo.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]*DisplayView, 0, len(records))
	for _, record := range records {
		items = append(items, s.resolver.Resolve(record, req.Lang))
	}

	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(pageSize)))
	}

	return &ArticleList{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// Delete removes the article and releases its cover image asset.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrArticleIDRequired
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if record.CoverImage != nil {
		s.releaseAsset(ctx, *record.CoverImage)
	}

	s.logger.Info("article deleted", "article_id", id.String())
	return nil
}

// releaseAsset asks the external store to drop an orphaned cover image.
// Release failures are logged and swallowed: the record mutation already
// succeeded and the asset store owns its own cleanup.
func (s *service) releaseAsset(ctx context.Context, path string) {
	if s.assets == nil || path == "" {
		return
	}
	if err := s.assets.Release(ctx, path); err != nil {
		s.logger.Warn("cover image release failed",
			"path", path,
			"error", err.Error(),
		)
	}
}
