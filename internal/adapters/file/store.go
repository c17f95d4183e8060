package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/switchyard/internal/logging"
	"github.com/aretw0/switchyard/pkg/domain"
)

// DefaultDir is where session records live when no explicit file is configured.
var DefaultDir = filepath.Join(".switchyard", "sessions")

// record is the on-disk shape of a session: {"path": ["build", "clean"]}.
type record struct {
	Path []string `json:"path"`
}

// Store implements ports.SessionStore as a single JSON file.
type Store struct {
	file   string
	logger *slog.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithLogger configures a logger for swallowed read failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a Store backed by the given file.
func New(file string, opts ...Option) *Store {
	s := &Store{
		file:   file,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ForTree returns the default session file for a named command tree,
// e.g. ".switchyard/sessions/deploy.json" under baseDir.
func ForTree(baseDir, treeName string, opts ...Option) *Store {
	return New(filepath.Join(baseDir, DefaultDir, treeName+".json"), opts...)
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.file
}

// Load reads the session record.
// A missing, unreadable or malformed record is reported as absent.
func (s *Store) Load(ctx context.Context) (domain.Path, bool, error) {
	data, err := os.ReadFile(s.file)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("ignoring unreadable session", "file", s.file, "err", err)
		}
		return nil, false, nil
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.logger.Debug("ignoring malformed session", "file", s.file, "err", err)
		return nil, false, nil
	}
	if len(rec.Path) == 0 {
		return nil, false, nil
	}

	return domain.Path(rec.Path), true, nil
}

// Save persists the path atomically.
// It writes to a temporary file first, syncs via fsync, and then renames it to the destination.
func (s *Store) Save(ctx context.Context, path domain.Path) error {
	if s.file == "" {
		return fmt.Errorf("%w: session file is not configured", domain.ErrSessionWrite)
	}

	dir := filepath.Dir(s.file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to ensure session directory: %w", domain.ErrSessionWrite, err)
	}

	data, err := json.Marshal(record{Path: path})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal session: %w", domain.ErrSessionWrite, err)
	}

	// Same directory keeps the rename on one filesystem.
	tmpFile, err := os.CreateTemp(dir, "tmp-"+filepath.Base(s.file)+"-*")
	if err != nil {
		return fmt.Errorf("%w: failed to create temp file: %w", domain.ErrSessionWrite, err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("%w: failed to write temp file: %w", domain.ErrSessionWrite, err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("%w: failed to fsync temp file: %w", domain.ErrSessionWrite, err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("%w: failed to close temp file: %w", domain.ErrSessionWrite, err)
	}

	// On Windows, os.Rename fails if dest exists.
	if _, err := os.Stat(s.file); err == nil {
		if err := os.Remove(s.file); err != nil {
			return fmt.Errorf("%w: failed to replace session file: %w", domain.ErrSessionWrite, err)
		}
	}

	if err := os.Rename(tmpPath, s.file); err != nil {
		return fmt.Errorf("%w: failed to rename temp file: %w", domain.ErrSessionWrite, err)
	}

	return nil
}

// Delete removes the session record. A missing record is not an error.
func (s *Store) Delete(ctx context.Context) error {
	if err := os.Remove(s.file); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
