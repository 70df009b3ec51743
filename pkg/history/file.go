package history

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// schemaVersion identifies the history file layout.
const schemaVersion = "1.0.0"

// file is the on-disk representation of a persisted history. The encoding
// preserves operation order, kind, and every parameter exactly, including the
// free-text note, so a round trip reproduces the history byte-for-byte.
type file struct {
	SchemaVersion string      `json:"schema_version"`
	SavedAt       time.Time   `json:"saved_at"`
	Operations    []Operation `json:"operations"`
}

// Store persists a history to a JSON file so a cleaning session can be
// resumed later by replaying it onto the original documents.
type Store struct {
	path string
}

// NewStore creates a store for the given path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file path this store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Load reads a persisted history. A missing file yields an empty history, so
// a fresh session and a resumed session share one code path.
func (s *Store) Load(ctx context.Context) (*History, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", s.path).Msg("loading history")

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, errors.Errorf("reading history file: %w", err)
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errors.Errorf("parsing history file: %w", err)
	}
	if f.SchemaVersion != schemaVersion {
		return nil, errors.Errorf("unsupported history schema version %q", f.SchemaVersion)
	}

	return FromOperations(f.Operations), nil
}

// Save writes the history. A sibling lock file guards against two processes
// writing the same path at once; saving fails if the lock is already held.
func (s *Store) Save(ctx context.Context, h *History) error {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", s.path).Int("operations", h.Len()).Msg("saving history")

	lockPath := s.path + ".lock"
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return errors.Errorf("creating lock file: %w", err)
	}
	defer func() {
		_ = lockFile.Close()
		_ = os.Remove(lockPath)
	}()

	f := file{
		SchemaVersion: schemaVersion,
		SavedAt:       time.Now().UTC(),
		Operations:    h.Operations(),
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return errors.Errorf("encoding history: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Errorf("writing history file: %w", err)
	}
	return nil
}
