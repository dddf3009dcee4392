package credentials

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/dmitrijs2005/gamedeals/internal/client/models"
	"github.com/dmitrijs2005/gamedeals/internal/common"
	"github.com/dmitrijs2005/gamedeals/internal/filex"
)

const (
	colEmail            = "email"
	colPasswordHash     = "password_hash"
	colSecurityQuestion = "security_question"
	colSecurityAnswer   = "security_answer"
)

var header = []string{colEmail, colPasswordHash, colSecurityQuestion, colSecurityAnswer}

// CSVStore keeps the credential table in a CSV file with the header
// email,password_hash,security_question,security_answer.
type CSVStore struct {
	path string
}

// NewCSVStore returns a store backed by the CSV file at path. The file is
// created on the first Save.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Load reads the whole table. A missing file yields an empty table.
func (s *CSVStore) Load(ctx context.Context) (models.CredentialTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.CredentialTable{}, nil
	}
	if err != nil {
		return nil, common.StorageError("open users file", err)
	}
	defer f.Close()

	table, err := decodeTable(f)
	if err != nil {
		return nil, common.StorageError("read users file "+s.path, err)
	}
	return table, nil
}

// Save atomically replaces the file with table. Rows are sorted by email.
func (s *CSVStore) Save(ctx context.Context, table models.CredentialTable) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := checkTable(table); err != nil {
		return common.StorageError("validate users", err)
	}
	data, err := encodeTable(table)
	if err != nil {
		return common.StorageError("encode users", err)
	}
	if err := filex.EnsureDir(s.path); err != nil {
		return common.StorageError("prepare users dir", err)
	}
	if err := filex.WriteFileAtomic(s.path, data, 0o600); err != nil {
		return common.StorageError("write users file", err)
	}
	return nil
}

func encodeTable(table models.CredentialTable) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return nil, err
	}

	emails := make([]string, 0, len(table))
	for email := range table {
		emails = append(emails, email)
	}
	slices.Sort(emails)

	for _, email := range emails {
		rec := table[email]
		row := []string{email, string(rec.PasswordHash), rec.SecurityQuestion, rec.SecurityAnswer}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeTable(r io.Reader) (models.CredentialTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	table := models.CredentialTable{}

	head, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return table, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(head))
	for i, name := range head {
		idx[name] = i
	}
	for _, name := range header {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	cell := func(row []string, name string) string {
		if i := idx[name]; i < len(row) {
			return row[i]
		}
		return ""
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		email := cell(row, colEmail)
		hash := cell(row, colPasswordHash)
		if hash == "" {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: empty password hash for %q", line, email)
		}

		table[email] = models.UserRecord{
			Email:            email,
			PasswordHash:     []byte(hash),
			SecurityQuestion: cell(row, colSecurityQuestion),
			SecurityAnswer:   cell(row, colSecurityAnswer),
		}
	}
	return table, nil
}
