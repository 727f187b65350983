// Package storage persists category and archive item lists as delimited
// UTF-8 text files, one file per list, no header row.
package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/idanc/machsan/internal/model"
)

// ArchiveName is the list name used for the archive file.
const ArchiveName = "archive"

// Store reads and writes item lists under one data directory. Each list
// has its own file, so writing one category can never corrupt another.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Path returns the file path backing the named list.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".csv")
}

// Save writes the full item list for name, replacing the previous file.
// The rows go to a temporary file first and are renamed into place, so a
// crash mid-write leaves the old contents intact.
func (s *Store) Save(name string, items []model.Item) error {
	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	for _, it := range items {
		if err := w.Write(it.Record()); err != nil {
			tmp.Close()
			return fmt.Errorf("writing %s row: %w", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file for %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), s.Path(name)); err != nil {
		return fmt.Errorf("replacing %s: %w", name, err)
	}
	return nil
}

// Load reads the item list for name. A missing file is not an error and
// yields an empty list. Rows with an unexpected column count are skipped
// with a warning rather than failing the whole load.
func (s *Store) Load(name string) ([]model.Item, error) {
	f, err := os.Open(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	var items []model.Item
	for n, row := range rows {
		item, err := model.FromRecord(row)
		if err != nil {
			slog.Warn("skipping malformed row", "list", name, "line", n+1, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
