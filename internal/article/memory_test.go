package article_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-news/internal/article"
	"github.com/google/uuid"
)

func seedArticle(t *testing.T, repo *article.MemoryRepository, title string, createdAt time.Time) *article.Article {
	t.Helper()
	created, err := repo.Create(context.Background(), &article.Article{
		ID:           uuid.New(),
		Slug:         title,
		Title:        article.LangMap{"en": title},
		Content:      article.LangMap{"en": "body"},
		OriginalLang: "en",
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return created
}

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	repo := article.NewMemoryRepository()
	now := time.Now()

	created := seedArticle(t, repo, "first", now)

	fetched, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Title["en"] != "first" {
		t.Fatalf("unexpected record %+v", fetched)
	}
}

func TestMemoryRepositoryNotFound(t *testing.T) {
	repo := article.NewMemoryRepository()

	if _, err := repo.GetByID(context.Background(), uuid.New()); !article.IsNotFound(err) {
		t.Fatalf("expected NotFoundError got %v", err)
	}
	if err := repo.Delete(context.Background(), uuid.New()); !article.IsNotFound(err) {
		t.Fatalf("expected NotFoundError got %v", err)
	}
	if _, err := repo.IncrementViews(context.Background(), uuid.New(), time.Now()); !article.IsNotFound(err) {
		t.Fatalf("expected NotFoundError got %v", err)
	}
}

func TestMemoryRepositoryClonesRecords(t *testing.T) {
	repo := article.NewMemoryRepository()
	created := seedArticle(t, repo, "first", time.Now())

	created.Title["en"] = "mutated"

	fetched, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Title["en"] != "first" {
		t.Fatal("repository must not share map references with callers")
	}
}

func TestMemoryRepositoryListNewestFirst(t *testing.T) {
	repo := article.NewMemoryRepository()
	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	seedArticle(t, repo, "oldest", base.Add(-2*time.Hour))
	seedArticle(t, repo, "middle", base.Add(-time.Hour))
	seedArticle(t, repo, "newest", base)

	records, total, err := repo.List(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3 got %d", total)
	}
	if records[0].Title["en"] != "newest" || records[2].Title["en"] != "oldest" {
		t.Fatalf("unexpected order: %q, %q, %q",
			records[0].Title["en"], records[1].Title["en"], records[2].Title["en"])
	}
}

func TestMemoryRepositoryListPagination(t *testing.T) {
	repo := article.NewMemoryRepository()
	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedArticle(t, repo, string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
	}

	page, total, err := repo.List(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 5 || len(page) != 2 {
		t.Fatalf("expected total 5, page of 2; got total %d, page %d", total, len(page))
	}

	tail, _, err := repo.List(context.Background(), 4, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tail) != 1 {
		t.Fatalf("expected final page of 1 got %d", len(tail))
	}

	empty, _, err := repo.List(context.Background(), 10, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page got %d", len(empty))
	}
}

func TestMemoryRepositoryAtomicIncrement(t *testing.T) {
	repo := article.NewMemoryRepository()
	created := seedArticle(t, repo, "counted", time.Now())

	const concurrent = 10
	var wg sync.WaitGroup
	for i := 0; i < concurrent; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.IncrementViews(context.Background(), created.ID, time.Now()); err != nil {
				t.Errorf("increment: %v", err)
			}
		}()
	}
	wg.Wait()

	fetched, err := repo.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.Views != concurrent {
		t.Fatalf("expected %d views got %d (lost updates)", concurrent, fetched.Views)
	}
}

func TestMemoryRepositoryIncrementStampsUpdatedAt(t *testing.T) {
	repo := article.NewMemoryRepository()
	created := seedArticle(t, repo, "counted", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	stamp := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	updated, err := repo.IncrementViews(context.Background(), created.ID, stamp)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if !updated.UpdatedAt.Equal(stamp) {
		t.Fatalf("expected updated_at %v got %v", stamp, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("created_at must not move on view increment")
	}
}

func TestMemoryRepositoryDelete(t *testing.T) {
	repo := article.NewMemoryRepository()
	created := seedArticle(t, repo, "gone", time.Now())

	if err := repo.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), created.ID); !article.IsNotFound(err) {
		t.Fatalf("expected NotFoundError got %v", err)
	}

	all, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty repository got %d", len(all))
	}
}
