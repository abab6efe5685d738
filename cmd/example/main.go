package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	news "github.com/goliatone/go-news"
	"github.com/goliatone/go-news/pkg/interfaces"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

// Runs the module end to end against an in-memory sqlite database with a
// stub translator, so the demo works without a LibreTranslate instance.
func main() {
	ctx := context.Background()

	sqlDB, err := sql.Open("sqlite3", "file::memory:?cache=shared")
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	defer sqlDB.Close()

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	if err := news.ApplyMigrations(ctx, bunDB); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	cfg := news.DefaultConfig()
	cfg.Markdown.Enabled = true

	translator := interfaces.TranslationProviderFunc(func(_ context.Context, text, _, target string) (string, error) {
		return fmt.Sprintf("[%s] %s", target, text), nil
	})

	module, err := news.New(cfg,
		news.WithDB(bunDB),
		news.WithTranslationProvider(translator),
	)
	if err != nil {
		log.Fatalf("new module: %v", err)
	}

	articles := module.Articles()

	first, err := articles.Create(ctx, news.CreateArticleRequest{
		OriginalLang: "en",
		Title:        "Welcome to the Newsroom",
		Content:      "Our **first** article is live.",
	})
	if err != nil {
		log.Fatalf("create article: %v", err)
	}
	log.Printf("created article %s slug=%s languages=%d", first.ID, first.Slug, len(first.Title))

	second, err := articles.Create(ctx, news.CreateArticleRequest{
		OriginalLang: "de",
		Title:        "Zweiter Artikel",
		Content:      "Der zweite Artikel ist da.",
	})
	if err != nil {
		log.Fatalf("create article: %v", err)
	}

	// Fix up one machine translation by hand.
	if _, err := articles.UpdateTranslation(ctx, news.UpdateTranslationRequest{
		ID:    first.ID,
		Lang:  "fr",
		Title: ptr("Bienvenue dans la salle de presse"),
	}); err != nil {
		log.Fatalf("update translation: %v", err)
	}

	for _, lang := range []string{"en", "fr", "ru"} {
		view, err := articles.Display(ctx, first.ID, lang)
		if err != nil {
			log.Fatalf("display %s: %v", lang, err)
		}
		log.Printf("display lang=%s resolved=%s title=%q views=%d",
			lang, view.Meta.ResolvedTitleLang, view.Title, view.Views)
	}

	if _, err := articles.Display(ctx, second.ID, "de"); err != nil {
		log.Fatalf("display: %v", err)
	}

	list, err := articles.List(ctx, news.ListArticlesRequest{Page: 1, PageSize: 10, Lang: "en"})
	if err != nil {
		log.Fatalf("list: %v", err)
	}
	log.Printf("listing page=%d total=%d", list.Page, list.Total)

	summary, err := module.Analytics().Summary(ctx, time.Now())
	if err != nil {
		log.Fatalf("analytics: %v", err)
	}
	pretty, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Printf("analytics summary:\n%s\n", pretty)
}

func ptr(s string) *string {
	return &s
}
