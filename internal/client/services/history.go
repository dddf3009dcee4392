package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gamedeals/internal/client/models"
	"github.com/dmitrijs2005/gamedeals/internal/client/repositories/history"
	"github.com/dmitrijs2005/gamedeals/internal/logging"
)

// HistoryService records and lists a user's search activity.
type HistoryService interface {
	LogSearch(ctx context.Context, email, term string) error
	LogSelection(ctx context.Context, email, game string) error
	History(ctx context.Context, email string) ([]models.HistoryEntry, error)
}

type historyService struct {
	repo history.Repository
	now  func() time.Time
	log  logging.Logger
}

// NewHistoryService returns a HistoryService over repo. A nil now uses
// time.Now.
func NewHistoryService(repo history.Repository, now func() time.Time, log logging.Logger) HistoryService {
	if now == nil {
		now = time.Now
	}
	return &historyService{repo: repo, now: now, log: log}
}

func (s *historyService) append(ctx context.Context, e models.HistoryEntry) error {
	e.Timestamp = s.now()
	if err := s.repo.Append(ctx, e); err != nil {
		s.log.Warn(ctx, "history append failed", "email", e.Email, "error", err)
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// LogSearch records that email searched for term.
func (s *historyService) LogSearch(ctx context.Context, email, term string) error {
	return s.append(ctx, models.HistoryEntry{Email: email, SearchTerm: term})
}

// LogSelection records that email picked game from search results.
func (s *historyService) LogSelection(ctx context.Context, email, game string) error {
	return s.append(ctx, models.HistoryEntry{Email: email, SelectedGame: game})
}

// History returns the entries of email, oldest first.
func (s *historyService) History(ctx context.Context, email string) ([]models.HistoryEntry, error) {
	entries, err := s.repo.QueryByUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	return entries, nil
}
