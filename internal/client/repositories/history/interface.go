// Package history persists the append-only activity log of search and
// selection actions. Reads always rescan the persisted log.
package history

import (
	"context"

	"github.com/dmitrijs2005/gamedeals/internal/client/models"
)

// Repository appends and queries activity-log entries.
//
// QueryByUser returns the entries owned by email in insertion order, oldest
// first. No matching entries, or a log that was never written, yields an
// empty slice and no error.
type Repository interface {
	Append(ctx context.Context, entry models.HistoryEntry) error
	QueryByUser(ctx context.Context, email string) ([]models.HistoryEntry, error)
}
