package credentials

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gamedeals/internal/client/models"
	"github.com/dmitrijs2005/gamedeals/internal/common"
)

// MemoryStore is an in-process Store. It keeps a private copy of the last
// saved table. SaveErr, when set, makes Save fail without changing the
// stored copy.
type MemoryStore struct {
	mu      sync.Mutex
	table   models.CredentialTable
	saves   int
	SaveErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (models.CredentialTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table == nil {
		return models.CredentialTable{}, nil
	}
	return s.table.Clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, table models.CredentialTable) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	if err := checkTable(table); err != nil {
		return common.StorageError("validate users", err)
	}
	s.table = table.Clone()
	s.saves++
	return nil
}

// Saves returns how many times Save succeeded.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
