package article

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository abstracts storage operations for articles. Implementations own
// record identity and persistence; services never cache records.
type Repository interface {
	Create(ctx context.Context, record *Article) (*Article, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Article, error)
	Update(ctx context.Context, record *Article) (*Article, error)
	// List returns a page of articles ordered by creation time, newest
	// first, along with the total number of stored articles.
	List(ctx context.Context, offset, limit int) ([]*Article, int, error)
	// ListAll returns every article; used by the analytics full scan.
	ListAll(ctx context.Context) ([]*Article, error)
	// IncrementViews atomically bumps the view counter and returns the
	// updated record. Concurrent calls must never lose an increment.
	IncrementViews(ctx context.Context, id uuid.UUID, now time.Time) (*Article, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
