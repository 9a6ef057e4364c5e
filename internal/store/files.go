package store

import "github.com/partage-labs/partage/internal/domain"

// CreateFile validates and inserts a file record, persisting before return.
func (s *Store) CreateFile(file domain.File) (domain.File, error) {
	if err := file.Validate(); err != nil {
		return domain.File{}, err
	}

	s.mu.Lock()
	s.files = append(s.files, file)
	s.mu.Unlock()

	s.saveRecordsBestEffort()
	return file, nil
}

// FindFileByID returns the record with the given id or domain.ErrNotFound.
func (s *Store) FindFileByID(id string) (domain.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.files {
		if f.ID == id {
			return f, nil
		}
	}
	return domain.File{}, domain.ErrNotFound
}

// ListByOwner returns all file records owned by ownerID.
func (s *Store) ListByOwner(ownerID string) []domain.File {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.File, 0)
	for _, f := range s.files {
		if f.OwnerID == ownerID {
			out = append(out, f)
		}
	}
	return out
}

// ListShared returns all shared file records except those owned by
// excludingOwnerID.
func (s *Store) ListShared(excludingOwnerID string) []domain.File {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.File, 0)
	for _, f := range s.files {
		if f.Shared && f.OwnerID != excludingOwnerID {
			out = append(out, f)
		}
	}
	return out
}

// SetShared updates the shared flag on a record.
func (s *Store) SetShared(id string, shared bool) (domain.File, error) {
	s.mu.Lock()
	var updated domain.File
	found := false
	for i := range s.files {
		if s.files[i].ID == id {
			s.files[i].Shared = shared
			updated = s.files[i]
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return domain.File{}, domain.ErrNotFound
	}
	s.saveRecordsBestEffort()
	return updated, nil
}

// DeleteFile removes a record and returns the deleted value so the caller can
// also remove the blob it referenced.
func (s *Store) DeleteFile(id string) (domain.File, error) {
	s.mu.Lock()
	var deleted domain.File
	found := false
	for i := range s.files {
		if s.files[i].ID == id {
			deleted = s.files[i]
			s.files = append(s.files[:i], s.files[i+1:]...)
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return domain.File{}, domain.ErrNotFound
	}
	s.saveRecordsBestEffort()
	return deleted, nil
}
