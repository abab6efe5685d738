package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/goliatone/go-news/internal/article"
	"github.com/goliatone/go-news/internal/i18n"
	"github.com/goliatone/go-news/internal/logging"
	"github.com/goliatone/go-news/pkg/interfaces"
	"github.com/google/uuid"
)

// TopEntries is how many articles the ranking keeps.
const TopEntries = 5

// TrailingDays is the width of the daily view histogram.
const TrailingDays = 7

const dateLabelLayout = "2006-01-02"

// TopArticle is a ranked entry projected to the base language.
type TopArticle struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Views int64     `json:"views"`
}

// DailyBucket is one day of the trailing histogram.
type DailyBucket struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
}

// Summary aggregates view analytics over the full article set.
//
// Time bucketing keys off UpdatedAt, which moves on both content edits and
// view increments; the histogram therefore reports "current total views of
// articles last touched on that day", not a per-day view delta.
type Summary struct {
	Total            int           `json:"total"`
	TotalViews       int64         `json:"total_views"`
	AvgViews         int64         `json:"avg_views"`
	Top              []TopArticle  `json:"top"`
	TotalViewsToday  int64         `json:"total_views_today"`
	NewArticlesToday int           `json:"new_articles_today"`
	DailyViews       []DailyBucket `json:"daily_views"`
}

// Source supplies the records the aggregator scans. The scan is unbounded
// and uncached; that is an accepted scalability ceiling.
type Source interface {
	ListAll(ctx context.Context) ([]*article.Article, error)
}

// Service exposes the analytics use-case.
type Service interface {
	Summary(ctx context.Context, now time.Time) (*Summary, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type service struct {
	source Source
	langs  *i18n.LanguageSet
	logger interfaces.Logger
}

// NewService constructs an analytics service over the given source.
func NewService(source Source, langs *i18n.LanguageSet, opts ...ServiceOption) Service {
	s := &service{
		source: source,
		langs:  langs,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summary scans every article and aggregates the view statistics.
func (s *service) Summary(ctx context.Context, now time.Time) (*Summary, error) {
	records, err := s.source.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	summary := Aggregate(records, now, s.langs)
	s.logger.Debug("analytics aggregated",
		"total", summary.Total,
		"total_views", summary.TotalViews,
	)
	return summary, nil
}

// Aggregate computes the summary for the given records. All derived values
// come from a small number of O(n) passes; ties in the top ranking preserve
// the original relative order of records.
func Aggregate(records []*article.Article, now time.Time, langs *i18n.LanguageSet) *Summary {
	summary := &Summary{
		Top:        make([]TopArticle, 0, TopEntries),
		DailyViews: make([]DailyBucket, TrailingDays),
	}

	today := startOfDay(now)
	windowStart := today.AddDate(0, 0, -(TrailingDays - 1))
	for i := 0; i < TrailingDays; i++ {
		summary.DailyViews[i] = DailyBucket{
			Date: windowStart.AddDate(0, 0, i).Format(dateLabelLayout),
		}
	}

	base := langs.Base()

	for _, record := range records {
		if record == nil {
			continue
		}

		summary.Total++
		summary.TotalViews += record.Views

		if sameDay(record.CreatedAt, today) {
			summary.NewArticlesToday++
		}
		if sameDay(record.UpdatedAt, today) {
			summary.TotalViewsToday += record.Views
		}

		updatedDay := startOfDay(record.UpdatedAt.In(now.Location()))
		if !updatedDay.Before(windowStart) && !updatedDay.After(today) {
			offset := int(updatedDay.Sub(windowStart).Hours() / 24)
			if offset >= 0 && offset < TrailingDays {
				summary.DailyViews[offset].Views += record.Views
			}
		}
	}

	if summary.Total > 0 {
		summary.AvgViews = int64(math.Round(float64(summary.TotalViews) / float64(summary.Total)))
	}

	ranked := make([]*article.Article, 0, len(records))
	for _, record := range records {
		if record != nil {
			ranked = append(ranked, record)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Views > ranked[j].Views
	})
	if len(ranked) > TopEntries {
		ranked = ranked[:TopEntries]
	}
	for _, record := range ranked {
		summary.Top = append(summary.Top, TopArticle{
			ID:    record.ID,
			Title: record.Title[base],
			Views: record.Views,
		})
	}

	return summary
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func sameDay(t, day time.Time) bool {
	local := t.In(day.Location())
	return startOfDay(local).Equal(day)
}
