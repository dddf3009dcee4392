package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/gamedeals/internal/client/models"
	"github.com/dmitrijs2005/gamedeals/internal/common"
	"github.com/dmitrijs2005/gamedeals/internal/dbx"
)

// SQLiteRepository keeps the log in the search_history table. Insertion
// order is the autoincrement id.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Append(ctx context.Context, entry models.HistoryEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO search_history (timestamp, email, search_term, selected_game)
		VALUES (?, ?, ?, ?)`,
		entry.Timestamp.Format(time.RFC3339Nano), entry.Email, entry.SearchTerm, entry.SelectedGame)
	if err != nil {
		return common.StorageError("insert history", err)
	}
	return nil
}

func (r *SQLiteRepository) QueryByUser(ctx context.Context, email string) ([]models.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT timestamp, email, search_term, selected_game
		FROM search_history
		WHERE email = ?
		ORDER BY id`, email)
	if err != nil {
		return nil, common.StorageError("query history", err)
	}
	defer rows.Close()

	result := []models.HistoryEntry{}
	for rows.Next() {
		var (
			ts string
			e  models.HistoryEntry
		)
		if err := rows.Scan(&ts, &e.Email, &e.SearchTerm, &e.SelectedGame); err != nil {
			return nil, common.StorageError("scan history row", err)
		}
		e.Timestamp = parseTimestamp(ts)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, common.StorageError("iterate history rows", err)
	}
	return result, nil
}
