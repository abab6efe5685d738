package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-news/internal/analytics"
	"github.com/goliatone/go-news/internal/article"
	"github.com/goliatone/go-news/internal/i18n"
	"github.com/google/uuid"
)

func newRecord(title string, views int64, createdAt, updatedAt time.Time) *article.Article {
	return &article.Article{
		ID:           uuid.New(),
		Title:        article.LangMap{"en": title},
		Content:      article.LangMap{"en": "body"},
		OriginalLang: "en",
		Views:        views,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

func TestAggregateBasicTotals(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	records := []*article.Article{
		newRecord("first", 5, now, now),
		newRecord("second", 10, now, now),
		newRecord("third", 15, now, now),
	}

	summary := analytics.Aggregate(records, now, i18n.Default())

	if summary.Total != 3 {
		t.Fatalf("expected total 3 got %d", summary.Total)
	}
	if summary.TotalViews != 30 {
		t.Fatalf("expected 30 views got %d", summary.TotalViews)
	}
	if summary.AvgViews != 10 {
		t.Fatalf("expected avg 10 got %d", summary.AvgViews)
	}
	if summary.NewArticlesToday != 3 {
		t.Fatalf("expected 3 new today got %d", summary.NewArticlesToday)
	}
	if summary.TotalViewsToday != 30 {
		t.Fatalf("expected 30 views today got %d", summary.TotalViewsToday)
	}
}

func TestAggregateEmptySetGuardsDivision(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)

	summary := analytics.Aggregate(nil, now, i18n.Default())

	if summary.Total != 0 || summary.TotalViews != 0 || summary.AvgViews != 0 {
		t.Fatalf("expected zeroed summary got %+v", summary)
	}
	if len(summary.DailyViews) != analytics.TrailingDays {
		t.Fatalf("expected %d buckets got %d", analytics.TrailingDays, len(summary.DailyViews))
	}
}

func TestAggregateDailyHistogram(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	records := []*article.Article{
		newRecord("first", 5, now, now),
		newRecord("second", 10, now, now),
		newRecord("third", 15, now, now),
	}

	summary := analytics.Aggregate(records, now, i18n.Default())

	if len(summary.DailyViews) != 7 {
		t.Fatalf("expected 7 buckets got %d", len(summary.DailyViews))
	}
	if summary.DailyViews[0].Date != "2026-08-22" {
		t.Fatalf("expected oldest bucket 2026-08-22 got %s", summary.DailyViews[0].Date)
	}
	if summary.DailyViews[6].Date != "2026-08-28" {
		t.Fatalf("expected today bucket 2026-08-28 got %s", summary.DailyViews[6].Date)
	}
	if summary.DailyViews[6].Views != 30 {
		t.Fatalf("expected 30 views in today bucket got %d", summary.DailyViews[6].Views)
	}
	var rest int64
	for _, bucket := range summary.DailyViews[:6] {
		rest += bucket.Views
	}
	if rest != 0 {
		t.Fatalf("expected 0 views outside today got %d", rest)
	}
}

func TestAggregateBinsByUpdatedAt(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	threeDaysAgo := now.AddDate(0, 0, -3)
	lastMonth := now.AddDate(0, -1, 0)

	records := []*article.Article{
		newRecord("recent", 7, lastMonth, threeDaysAgo),
		newRecord("stale", 9, lastMonth, lastMonth),
	}

	summary := analytics.Aggregate(records, now, i18n.Default())

	if summary.NewArticlesToday != 0 {
		t.Fatalf("expected no new articles today got %d", summary.NewArticlesToday)
	}
	if summary.TotalViewsToday != 0 {
		t.Fatalf("expected no views today got %d", summary.TotalViewsToday)
	}
	if got := summary.DailyViews[3].Views; got != 7 {
		t.Fatalf("expected 7 views three days ago got %d", got)
	}
	// A record last touched outside the window contributes to no bucket.
	var total int64
	for _, bucket := range summary.DailyViews {
		total += bucket.Views
	}
	if total != 7 {
		t.Fatalf("expected window total 7 got %d", total)
	}
}

func TestAggregateTopRankingStableOnTies(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	views := []int64{10, 10, 5, 5, 5, 1}
	records := make([]*article.Article, 0, len(views))
	for i, v := range views {
		records = append(records, newRecord(string(rune('a'+i)), v, now, now))
	}

	summary := analytics.Aggregate(records, now, i18n.Default())

	if len(summary.Top) != 5 {
		t.Fatalf("expected top 5 got %d", len(summary.Top))
	}
	expected := []string{"a", "b", "c", "d", "e"}
	for i, want := range expected {
		if summary.Top[i].Title != want {
			t.Fatalf("position %d: expected %q got %q", i, want, summary.Top[i].Title)
		}
	}
}

func TestAggregateTopProjectsBaseTitle(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	record := newRecord("Hello", 3, now, now)
	record.Title["de"] = "Hallo"

	summary := analytics.Aggregate([]*article.Article{record}, now, i18n.Default())

	if summary.Top[0].Title != "Hello" {
		t.Fatalf("expected base-language title got %q", summary.Top[0].Title)
	}
}

type stubSource struct {
	records []*article.Article
}

func (s *stubSource) ListAll(context.Context) ([]*article.Article, error) {
	return s.records, nil
}

func TestServiceSummary(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	svc := analytics.NewService(&stubSource{records: []*article.Article{
		newRecord("only", 4, now, now),
	}}, i18n.Default())

	summary, err := svc.Summary(context.Background(), now)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Total != 1 || summary.TotalViews != 4 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}
