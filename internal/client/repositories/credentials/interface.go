// Package credentials persists the credential table: the mapping from email
// to account record. Every backend loads the table wholesale and rewrites it
// wholesale on Save; there are no partial updates.
package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gamedeals/internal/client/models"
)

// Store loads and saves the whole credential table.
//
// Load on a store that has never been saved returns an empty table and no
// error. Save replaces the persisted table with exactly the given contents;
// a subsequent Load returns an equal table.
//
// Save rejects, before writing anything, a table holding a record with an
// empty password hash or a text field containing a carriage return. Such a
// table fails with ErrInvalidRecord wrapped in common.ErrStorage.
type Store interface {
	Load(ctx context.Context) (models.CredentialTable, error)
	Save(ctx context.Context, table models.CredentialTable) error
}

// ErrInvalidRecord marks a credential record that cannot be stored.
var ErrInvalidRecord = errors.New("invalid credential record")

func checkRecord(email string, rec models.UserRecord) error {
	if len(rec.PasswordHash) == 0 {
		return fmt.Errorf("%w: empty password hash for %q", ErrInvalidRecord, email)
	}
	fields := [][2]string{
		{colEmail, email},
		{colSecurityQuestion, rec.SecurityQuestion},
		{colSecurityAnswer, rec.SecurityAnswer},
	}
	for _, f := range fields {
		if strings.ContainsRune(f[1], '\r') {
			return fmt.Errorf("%w: carriage return in %s of %q", ErrInvalidRecord, f[0], email)
		}
	}
	return nil
}

func checkTable(table models.CredentialTable) error {
	for email, rec := range table {
		if err := checkRecord(email, rec); err != nil {
			return err
		}
	}
	return nil
}
