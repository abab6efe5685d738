package article

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LangMap holds per-language variants of a single text field, keyed by
// language code. An empty entry means a translation was attempted and is
// unavailable; an absent entry means it was never attempted.
type LangMap map[string]string

// Clone returns an independent copy of the map.
func (m LangMap) Clone() LangMap {
	if m == nil {
		return nil
	}
	out := make(LangMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Article is the canonical record for a multilingual news entry.
type Article struct {
	bun.BaseModel `bun:"table:articles,alias:a"`

	ID           uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Slug         string    `bun:"slug,notnull" json:"slug"`
	Title        LangMap   `bun:"title,type:jsonb,notnull" json:"title"`
	Content      LangMap   `bun:"content,type:jsonb,notnull" json:"content"`
	OriginalLang string    `bun:"original_lang,notnull" json:"original_lang"`
	CoverImage   *string   `bun:"cover_image,nullzero" json:"cover_image,omitempty"`
	Views        int64     `bun:"views,notnull,default:0" json:"views"`
	CreatedAt    time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Clone returns a deep copy of the article.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	copied := *a
	copied.Title = a.Title.Clone()
	copied.Content = a.Content.Clone()
	if a.CoverImage != nil {
		cover := *a.CoverImage
		copied.CoverImage = &cover
	}
	return &copied
}

// ResolutionMeta describes how the requested language was resolved for each
// display field.
type ResolutionMeta struct {
	RequestedLang       string `json:"requested_lang"`
	ResolvedLang        string `json:"resolved_lang"`
	ResolvedTitleLang   string `json:"resolved_title_lang"`
	ResolvedContentLang string `json:"resolved_content_lang"`
	FallbackUsed        bool   `json:"fallback_used"`
}

// DisplayView is the single-language projection served to readers.
type DisplayView struct {
	ID          uuid.UUID      `json:"id"`
	Slug        string         `json:"slug"`
	Title       string         `json:"title"`
	Content     string         `json:"content"`
	ContentHTML string         `json:"content_html,omitempty"`
	CoverImage  *string        `json:"cover_image,omitempty"`
	Views       int64          `json:"views"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Meta        ResolutionMeta `json:"meta"`
}

// ArticleList is a paginated projection of articles.
type ArticleList struct {
	Items      []*DisplayView `json:"items"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}
