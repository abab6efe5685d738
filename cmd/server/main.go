package main

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	news "github.com/goliatone/go-news"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"

	_ "github.com/mattn/go-sqlite3"
)

type Config struct {
	Addr     string `env:"NEWS_HTTP_ADDR" env-default:":8080"`
	BasePath string `env:"NEWS_BASE_PATH" env-default:"news"`

	// Driver selects the storage backend: memory, sqlite, or postgres.
	Driver string `env:"NEWS_DB_DRIVER" env-default:"memory"`
	SQLite string `env:"NEWS_SQLITE_PATH" env-default:"news.db"`
	DB     DbConfig

	Translator TranslatorConfig
	Logging    LoggingConfig

	// APIToken, when set, is required as a bearer token on mutating routes.
	APIToken string `env:"NEWS_API_TOKEN" env-default:""`
}

type DbConfig struct {
	Host     string `env:"NEWS_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"NEWS_PG_PORT" env-default:"5432"`
	Name     string `env:"NEWS_PG_NAME" env-default:"news"`
	User     string `env:"NEWS_PG_USER" env-default:"news"`
	Password string `env:"NEWS_PG_PASSWORD" env-default:"pwd"`
	Insecure bool   `env:"NEWS_PG_INSECURE" env-default:"true"`
}

type TranslatorConfig struct {
	Endpoint string `env:"NEWS_TRANSLATE_ENDPOINT" env-default:"http://localhost:5000/translate"`
	APIKey   string `env:"NEWS_TRANSLATE_API_KEY" env-default:""`
}

type LoggingConfig struct {
	Level  string `env:"NEWS_LOG_LEVEL" env-default:"info"`
	Format string `env:"NEWS_LOG_FORMAT" env-default:"console"`
}

func (c DbConfig) toDatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}
	if c.Insecure {
		u.RawQuery = "sslmode=disable"
	}
	return u.String()
}

func main() {
	ctx := context.Background()

	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		log.Fatalf("read env: %v", err)
	}

	cfg := news.DefaultConfig()
	cfg.HTTP.BasePath = config.BasePath
	cfg.Translator.Endpoint = config.Translator.Endpoint
	cfg.Translator.APIKey = config.Translator.APIKey
	cfg.Logging.Level = config.Logging.Level
	cfg.Logging.Format = config.Logging.Format
	cfg.Markdown.Enabled = true

	opts := []news.Option{}

	switch strings.ToLower(config.Driver) {
	case "", "memory":
	case "sqlite":
		bunDB, err := openSQLite(ctx, config.SQLite)
		if err != nil {
			log.Fatalf("open sqlite: %v", err)
		}
		defer bunDB.Close()
		opts = append(opts, news.WithDB(bunDB))
	case "postgres":
		bunDB, err := openPostgres(ctx, config.DB)
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		defer bunDB.Close()
		opts = append(opts, news.WithDB(bunDB))
	default:
		log.Fatalf("unknown db driver %q", config.Driver)
	}

	if config.APIToken != "" {
		opts = append(opts, news.WithAuthProvider(newTokenAuth(config.APIToken)))
	}

	module, err := news.New(cfg, opts...)
	if err != nil {
		log.Fatalf("new module: %v", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(bearerToContext)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Mount("/", module.Handler())

	log.Printf("news server listening on %s (driver=%s)", config.Addr, config.Driver)
	if err := http.ListenAndServe(config.Addr, r); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

func openSQLite(ctx context.Context, path string) (*bun.DB, error) {
	sqlDB, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)
	if err := news.ApplyMigrations(ctx, bunDB); err != nil {
		bunDB.Close()
		return nil, err
	}
	return bunDB, nil
}

func openPostgres(ctx context.Context, cfg DbConfig) (*bun.DB, error) {
	sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.toDatabaseURL())))
	bunDB := bun.NewDB(sqlDB, pgdialect.New())
	if err := bunDB.PingContext(ctx); err != nil {
		bunDB.Close()
		return nil, err
	}
	if err := news.ApplyMigrations(ctx, bunDB); err != nil {
		bunDB.Close()
		return nil, err
	}
	return bunDB, nil
}

type ctxKey string

const bearerKey ctxKey = "bearer"

// bearerToContext copies the Authorization bearer token into the request
// context so the auth provider can reach it without touching the request.
func bearerToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			r = r.WithContext(context.WithValue(r.Context(), bearerKey, token))
		}
		next.ServeHTTP(w, r)
	})
}

type tokenAuth struct {
	digest [32]byte
}

func newTokenAuth(token string) *tokenAuth {
	return &tokenAuth{digest: sha256.Sum256([]byte(token))}
}

func (t *tokenAuth) CanMutate(ctx context.Context) (bool, error) {
	token, _ := ctx.Value(bearerKey).(string)
	if token == "" {
		return false, nil
	}
	digest := sha256.Sum256([]byte(token))
	return subtle.ConstantTimeCompare(digest[:], t.digest[:]) == 1, nil
}
