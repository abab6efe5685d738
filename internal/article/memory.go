package article

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory implementation for scaffolding and tests.
type MemoryRepository struct {
	mu       sync.RWMutex
	articles map[uuid.UUID]*Article
	order    []uuid.UUID
}

// NewMemoryRepository creates an empty in-memory article repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		articles: make(map[uuid.UUID]*Article),
	}
}

// Create inserts the supplied article.
func (m *MemoryRepository) Create(_ context.Context, record *Article) (*Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := record.Clone()
	m.articles[copied.ID] = copied
	m.order = append(m.order, copied.ID)
	return copied.Clone(), nil
}

// GetByID retrieves an article by identifier.
func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.articles[id]
	if !ok {
		return nil, &NotFoundError{Resource: "article", Key: id.String()}
	}
	return rec.Clone(), nil
}

// Update replaces the stored article.
func (m *MemoryRepository) Update(_ context.Context, record *Article) (*Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.articles[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "article", Key: record.ID.String()}
	}
	copied := record.Clone()
	m.articles[copied.ID] = copied
	return copied.Clone(), nil
}

// List returns a page of articles ordered newest first.
func (m *MemoryRepository) List(_ context.Context, offset, limit int) ([]*Article, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.snapshot()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	if offset >= total {
		return []*Article{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// ListAll returns every article in insertion order.
func (m *MemoryRepository) ListAll(_ context.Context) ([]*Article, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot(), nil
}

// IncrementViews bumps the view counter under the write lock so concurrent
// display requests never lose an increment.
func (m *MemoryRepository) IncrementViews(_ context.Context, id uuid.UUID, now time.Time) (*Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.articles[id]
	if !ok {
		return nil, &NotFoundError{Resource: "article", Key: id.String()}
	}
	rec.Views++
	rec.UpdatedAt = now
	return rec.Clone(), nil
}

// Delete removes the article.
func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.articles[id]; !ok {
		return &NotFoundError{Resource: "article", Key: id.String()}
	}
	delete(m.articles, id)
	for i, stored := range m.order {
		if stored == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryRepository) snapshot() []*Article {
	out := make([]*Article, 0, len(m.order))
	for _, id := range m.order {
		if rec, ok := m.articles[id]; ok {
			out = append(out, rec.Clone())
		}
	}
	return out
}
