package credentials

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/gamedeals/internal/client/models"
	"github.com/dmitrijs2005/gamedeals/internal/common"
	"github.com/dmitrijs2005/gamedeals/internal/dbx"
)

// SQLiteStore keeps the credential table in the users table of a migrated
// SQLite database (see client.InitDatabase).
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) (models.CredentialTable, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT email, password_hash, security_question, security_answer FROM users`)
	if err != nil {
		return nil, common.StorageError("query users", err)
	}
	defer rows.Close()

	table := models.CredentialTable{}
	for rows.Next() {
		var rec models.UserRecord
		if err := rows.Scan(&rec.Email, &rec.PasswordHash, &rec.SecurityQuestion, &rec.SecurityAnswer); err != nil {
			return nil, common.StorageError("scan user row", err)
		}
		if len(rec.PasswordHash) == 0 {
			return nil, common.StorageError("load users",
				fmt.Errorf("%w: empty password hash for %q", ErrInvalidRecord, rec.Email))
		}
		table[rec.Email] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, common.StorageError("iterate user rows", err)
	}
	return table, nil
}

// Save rewrites the users table inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, table models.CredentialTable) error {
	if err := checkTable(table); err != nil {
		return common.StorageError("validate users", err)
	}

	emails := make([]string, 0, len(table))
	for email := range table {
		emails = append(emails, email)
	}
	slices.Sort(emails)

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
			return fmt.Errorf("clear users: %w", err)
		}
		for _, email := range emails {
			rec := table[email]
			_, err := tx.ExecContext(ctx, `
				INSERT INTO users (email, password_hash, security_question, security_answer)
				VALUES (?, ?, ?, ?)`,
				email, rec.PasswordHash, rec.SecurityQuestion, rec.SecurityAnswer)
			if err != nil {
				return fmt.Errorf("insert user %s: %w", email, err)
			}
		}
		return nil
	})
	if err != nil {
		return common.StorageError("save users", err)
	}
	return nil
}
