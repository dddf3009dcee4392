package models

import "time"

// HistoryEntry is one immutable line of the activity log. By convention
// exactly one of SearchTerm and SelectedGame is set; empty means absent.
type HistoryEntry struct {
	Timestamp    time.Time
	Email        string
	SearchTerm   string
	SelectedGame string
}

// IsSearch reports whether the entry records a search action.
func (e HistoryEntry) IsSearch() bool { return e.SearchTerm != "" }

// IsSelection reports whether the entry records a game selection.
func (e HistoryEntry) IsSelection() bool { return e.SelectedGame != "" }
