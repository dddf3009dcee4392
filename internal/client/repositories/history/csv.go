package history

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gamedeals/internal/client/models"
	"github.com/dmitrijs2005/gamedeals/internal/common"
	"github.com/dmitrijs2005/gamedeals/internal/filex"
)

var header = []string{"timestamp", "email", "search_term", "selected_game"}

// legacyTimeLayout is how older log files rendered timestamps.
const legacyTimeLayout = "2006-01-02 15:04:05.999999999"

// CSVRepository keeps the log in a CSV file with the header
// timestamp,email,search_term,selected_game. Appends from one process are
// serialized.
type CSVRepository struct {
	path string
	mu   sync.Mutex
}

func NewCSVRepository(path string) *CSVRepository {
	return &CSVRepository{path: path}
}

// Append writes one row, creating the file with its header if needed.
func (r *CSVRepository) Append(ctx context.Context, entry models.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := filex.EnsureDir(r.path); err != nil {
		return common.StorageError("prepare history dir", err)
	}

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return common.StorageError("open history file", err)
	}

	if err := appendRow(f, entry); err != nil {
		_ = f.Close()
		return common.StorageError("append history", err)
	}
	if err := f.Close(); err != nil {
		return common.StorageError("close history file", err)
	}
	return nil
}

func appendRow(f *os.File, entry models.HistoryEntry) error {
	fi, err := f.Stat()
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if fi.Size() == 0 {
		if err := w.Write(header); err != nil {
			return err
		}
	}

	row := []string{
		entry.Timestamp.Format(time.RFC3339Nano),
		entry.Email,
		entry.SearchTerm,
		entry.SelectedGame,
	}
	if err := w.Write(row); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// QueryByUser scans the whole file. Rows with fewer than four fields are
// skipped; a timestamp that cannot be parsed is reported as the zero time.
func (r *CSVRepository) QueryByUser(ctx context.Context, email string) ([]models.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, common.StorageError("open history file", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1

	result := []models.HistoryEntry{}
	first := true
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, common.StorageError("read history file", err)
		}
		if first {
			first = false
			if len(row) > 0 && row[0] == header[0] {
				continue
			}
		}
		if len(row) < len(header) || row[1] != email {
			continue
		}
		result = append(result, models.HistoryEntry{
			Timestamp:    parseTimestamp(row[0]),
			Email:        row[1],
			SearchTerm:   row[2],
			SelectedGame: row[3],
		})
	}
	return result, nil
}

func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, legacyTimeLayout} {
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return ts
		}
	}
	return time.Time{}
}
