package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdidvp/qcresult/internal/domain"
)

const (
	historyFile = ".qcresult/history/summaries.json"

	// MaxEntries caps the history; the oldest entries are dropped first.
	MaxEntries = 200
)

// FileHistory implements domain.SummaryHistory using JSON file storage.
type FileHistory struct{}

func New() *FileHistory {
	return &FileHistory{}
}

// Save records entry. A summary of the same result file at the same revision
// replaces the earlier one in place, so re-running a report on an unchanged
// commit does not grow the history.
func (h *FileHistory) Save(projectPath string, entry domain.SummaryEntry) error {
	entries, err := h.Load(projectPath)
	if err != nil {
		return err
	}

	entries = upsert(entries, entry)
	if len(entries) > MaxEntries {
		entries = entries[len(entries)-MaxEntries:]
	}

	fp := filepath.Join(projectPath, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

// Load returns the recorded entries, oldest first. A missing file is an empty
// history.
func (h *FileHistory) Load(projectPath string) ([]domain.SummaryEntry, error) {
	fp := filepath.Join(projectPath, historyFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.SummaryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", historyFile, err)
	}

	return entries, nil
}

// upsert replaces the entry with the same file and revision, or appends.
// Entries without a revision cannot be told apart and are always appended.
func upsert(entries []domain.SummaryEntry, entry domain.SummaryEntry) []domain.SummaryEntry {
	if entry.Revision != "" {
		for i, e := range entries {
			if e.File == entry.File && e.Revision == entry.Revision {
				entries[i] = entry
				return entries
			}
		}
	}
	return append(entries, entry)
}
