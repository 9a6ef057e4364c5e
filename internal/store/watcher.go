package store

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ReloadRecords re-reads the user and file records from disk, replacing the
// in-memory sets. Chat messages are not reloaded; the chat log owns them once
// the process is up.
func (s *Store) ReloadRecords() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.users
	files := s.files
	s.users = nil
	s.files = nil
	if err := s.readJSON(usersFile, &s.users); err != nil {
		s.users = users
		return err
	}
	if err := s.readJSON(filesFile, &s.files); err != nil {
		s.users = users
		s.files = files
		return err
	}

	s.logger.Info("Reloaded records from disk", "users", len(s.users), "files", len(s.files))
	return nil
}

// Watch reloads the record files when they change on disk, so records edited
// out-of-band (an operator fixing users.json) take effect without a restart.
// It blocks until the context is canceled and only makes sense on a real
// filesystem.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(s.dir); err != nil {
		return err
	}
	slog.Info("Watching data directory", "dir", s.dir)

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			name := filepath.Base(ev.Name)
			if name != usersFile && name != filesFile {
				continue
			}
			if err := s.ReloadRecords(); err != nil {
				s.logger.Error("Failed to reload records", "file", name, "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("Data directory watcher error", "error", err)
		}
	}
}
