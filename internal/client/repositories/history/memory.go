package history

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gamedeals/internal/client/models"
)

// MemoryRepository is an in-process Repository for tests and fakes.
type MemoryRepository struct {
	mu        sync.Mutex
	entries   []models.HistoryEntry
	AppendErr error
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Append(ctx context.Context, entry models.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.AppendErr != nil {
		return r.AppendErr
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *MemoryRepository) QueryByUser(ctx context.Context, email string) ([]models.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []models.HistoryEntry{}
	for _, e := range r.entries {
		if e.Email == email {
			result = append(result, e)
		}
	}
	return result, nil
}
