// Package store persists users, file records, and the chat log as JSON
// documents in the data directory (users.json, files.json,
// chat_messages.json). Persistence is best-effort: in-memory state is the
// source of truth and a failed save never rolls anything back.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/partage-labs/partage/internal/domain"
)

const (
	usersFile    = "users.json"
	filesFile    = "files.json"
	messagesFile = "chat_messages.json"
)

// Store holds the record state and its JSON persistence.
type Store struct {
	mu    sync.RWMutex
	users []domain.User
	files []domain.File

	fs     afero.Fs
	dir    string
	logger *slog.Logger
}

// New creates a store rooted at dir on the given filesystem. Call Load before
// serving requests.
func New(fs afero.Fs, dir string) *Store {
	return &Store{
		fs:     fs,
		dir:    dir,
		logger: slog.Default().With("service", "store"),
	}
}

// Load reads all record files from the data directory. Missing files mean a
// fresh install and load as empty; malformed files are an error.
func (s *Store) Load() ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	if err := s.readJSON(usersFile, &s.users); err != nil {
		return nil, err
	}
	if err := s.readJSON(filesFile, &s.files); err != nil {
		return nil, err
	}

	var messages []domain.Message
	if err := s.readJSON(messagesFile, &messages); err != nil {
		return nil, err
	}

	s.logger.Info("Loaded records",
		"users", len(s.users),
		"files", len(s.files),
		"messages", len(messages))
	return messages, nil
}

// Save writes all three record files. The chat log snapshot is passed in
// because the log owns message state.
func (s *Store) Save(messages []domain.Message) error {
	s.mu.RLock()
	users := make([]domain.User, len(s.users))
	copy(users, s.users)
	files := make([]domain.File, len(s.files))
	copy(files, s.files)
	s.mu.RUnlock()

	if err := s.writeJSON(usersFile, users); err != nil {
		return err
	}
	if err := s.writeJSON(filesFile, files); err != nil {
		return err
	}
	return s.writeJSON(messagesFile, messages)
}

// SaveRecords writes the user and file records only; used after record
// mutations where no chat state changed.
func (s *Store) SaveRecords() error {
	s.mu.RLock()
	users := make([]domain.User, len(s.users))
	copy(users, s.users)
	files := make([]domain.File, len(s.files))
	copy(files, s.files)
	s.mu.RUnlock()

	if err := s.writeJSON(usersFile, users); err != nil {
		return err
	}
	return s.writeJSON(filesFile, files)
}

// saveRecordsBestEffort logs instead of returning; record mutations must
// succeed in memory even when the disk write fails.
func (s *Store) saveRecordsBestEffort() {
	if err := s.SaveRecords(); err != nil {
		s.logger.Error("Failed to persist records", "error", err)
	}
}

func (s *Store) readJSON(name string, v any) error {
	path := filepath.Join(s.dir, name)
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (s *Store) writeJSON(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Dir returns the data directory the store persists into.
func (s *Store) Dir() string {
	return s.dir
}
