package httpapi

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/goliatone/go-news/internal/analytics"
	"github.com/goliatone/go-news/internal/article"
	"github.com/goliatone/go-news/internal/logging"
	"github.com/goliatone/go-news/pkg/interfaces"
)

type createPayload struct {
	OriginalLang string  `json:"original_lang"`
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	CoverImage   *string `json:"cover_image,omitempty"`
}

// updatePayload accepts a partial per-language body. An original_lang field
// is tolerated and ignored: the stored original language is immutable.
type updatePayload struct {
	Title        article.LangMap `json:"title,omitempty"`
	Content      article.LangMap `json:"content,omitempty"`
	CoverImage   *string         `json:"cover_image,omitempty"`
	OriginalLang string          `json:"original_lang,omitempty"`
}

type translationPayload struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// API bundles the news handlers for mounting on a host mux or router.
type API struct {
	articles  article.Service
	analytics analytics.Service
	auth      interfaces.AuthProvider
	logger    interfaces.Logger
	now       func() time.Time
	base      string
}

// Option configures the API at construction time.
type Option func(*API)

// WithAuthProvider gates mutations behind the supplied decision.
func WithAuthProvider(auth interfaces.AuthProvider) Option {
	return func(a *API) {
		a.auth = auth
	}
}

// WithLogger overrides the API logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(a *API) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithClock overrides the clock used for analytics requests.
func WithClock(clock func() time.Time) Option {
	return func(a *API) {
		if clock != nil {
			a.now = clock
		}
	}
}

// WithBasePath changes the mount prefix (default "news").
func WithBasePath(base string) Option {
	return func(a *API) {
		a.base = base
	}
}

// NewAPI constructs the handler set.
func NewAPI(articles article.Service, analyticsService analytics.Service, opts ...Option) *API {
	a := &API{
		articles:  articles,
		analytics: analyticsService,
		logger:    logging.NoOp(),
		now:       time.Now,
		base:      "news",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handler returns a self-contained http.Handler with every route mounted.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	a.Register(mux)
	return mux
}

// Register mounts the routes on the supplied mux.
func (a *API) Register(mux *http.ServeMux) {
	if a == nil || mux == nil {
		return
	}
	root := joinPath(a.base, "")
	mux.HandleFunc("GET "+root, a.handleList)
	mux.HandleFunc("POST "+root, a.handleCreate)
	mux.HandleFunc("GET "+root+"/analytics", a.handleAnalytics)
	mux.HandleFunc("GET "+root+"/{id}", a.handleDisplay)
	mux.HandleFunc("PUT "+root+"/{id}", a.handleUpdate)
	mux.HandleFunc("PUT "+root+"/{id}/translations/{lang}", a.handleUpdateTranslation)
	mux.HandleFunc("DELETE "+root+"/{id}", a.handleDelete)
}

// authorize consults the injected mutation decision. With no provider
// configured the host application is assumed to gate writes itself.
func (a *API) authorize(w http.ResponseWriter, r *http.Request) bool {
	if a.auth == nil {
		return true
	}
	allowed, err := a.auth.CanMutate(r.Context())
	if err != nil {
		a.logger.Error("authorization check failed", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal_error"})
		return false
	}
	if !allowed {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return false
	}
	return true
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 0)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid page"})
		return
	}
	pageSize, err := queryInt(r, "page_size", 0)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid page_size"})
		return
	}

	list, err := a.articles.List(r.Context(), article.ListArticlesRequest{
		Page:     page,
		PageSize: pageSize,
		Lang:     r.URL.Query().Get("lang"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (a *API) handleCreate(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r) {
		return
	}

	var payload createPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	record, err := a.articles.Create(r.Context(), article.CreateArticleRequest{
		OriginalLang: payload.OriginalLang,
		Title:        payload.Title,
		Content:      payload.Content,
		CoverImage:   payload.CoverImage,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

func (a *API) handleDisplay(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}

	view, err := a.articles.Display(r.Context(), id, r.URL.Query().Get("lang"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (a *API) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r) {
		return
	}

	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}

	var payload updatePayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	record, err := a.articles.Update(r.Context(), article.UpdateArticleRequest{
		ID:         id,
		Title:      payload.Title,
		Content:    payload.Content,
		CoverImage: payload.CoverImage,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (a *API) handleUpdateTranslation(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r) {
		return
	}

	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}

	var payload translationPayload
	if err := decodeJSON(r, &payload); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}

	record, err := a.articles.UpdateTranslation(r.Context(), article.UpdateTranslationRequest{
		ID:      id,
		Lang:    r.PathValue("lang"),
		Title:   payload.Title,
		Content: payload.Content,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (a *API) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !a.authorize(w, r) {
		return
	}

	id, err := parseUUID(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid id"})
		return
	}

	if err := a.articles.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "article deleted"})
}

func (a *API) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	summary, err := a.analytics.Summary(r.Context(), a.now())
	if err != nil {
		a.logger.Error("analytics aggregation failed", "error", err.Error())
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
