// Package persistence writes and reads the ledger's document form on a
// filesystem. The filesystem is abstracted behind afero so the store works
// identically against the OS and an in-memory fs in tests.
package persistence

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/afero"

	apperrors "github.com/agbru/deccalc/internal/errors"
	"github.com/agbru/deccalc/internal/history"
)

// Store persists history documents as key-ordered JSON files.
type Store struct {
	fs afero.Fs
}

// NewStore creates a store on the given filesystem.
func NewStore(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// NewOsStore creates a store backed by the operating system filesystem.
func NewOsStore() *Store {
	return &Store{fs: afero.NewOsFs()}
}

// Write serializes doc to path. The parent directory is created when
// missing, and the document is written to a temporary file first and then
// renamed, so a crash mid-write never leaves a truncated history file.
func (s *Store) Write(doc history.Document, path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return apperrors.WrapError(err, "creating history directory %s", dir)
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return apperrors.WrapError(err, "marshaling history document")
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return apperrors.WrapError(err, "writing history file %s", tmp)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		return apperrors.WrapError(err, "replacing history file %s", path)
	}
	return nil
}

// Read loads and decodes the document stored at path. A malformed document
// fails with CorruptHistoryError; a missing file surfaces the underlying
// fs error so callers can distinguish "no history yet" from corruption.
func (s *Store) Read(path string) (history.Document, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return history.Document{}, apperrors.WrapError(err, "reading history file %s", path)
	}

	var doc history.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return history.Document{}, apperrors.NewCorruptHistoryError(path, err)
	}
	return doc, nil
}

// Exists reports whether a history file is present at path.
func (s *Store) Exists(path string) bool {
	ok, err := afero.Exists(s.fs, path)
	return err == nil && ok
}
