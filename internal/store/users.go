package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/partage-labs/partage/internal/domain"
)

// Register creates a new account. Email addresses are unique; a duplicate
// registration fails with domain.ErrUserAlreadyExists. The new record is
// persisted before returning.
func (s *Store) Register(name, email, password string) (domain.User, error) {
	s.mu.Lock()
	for _, u := range s.users {
		if u.Email == email {
			s.mu.Unlock()
			return domain.User{}, domain.ErrUserAlreadyExists
		}
	}

	user := domain.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
	s.users = append(s.users, user)
	s.mu.Unlock()

	s.saveRecordsBestEffort()
	return user, nil
}

// FindByCredentials implements domain.UserDirectory. Passwords are opaque
// strings compared verbatim.
func (s *Store) FindByCredentials(email, password string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrInvalidCredentials
}

// FindByID implements domain.UserDirectory.
func (s *Store) FindByID(id string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUnknownUser
}

// UsersByID resolves a set of user identifiers to full records, skipping ids
// the store no longer knows. Used to build roster snapshots.
func (s *Store) UsersByID(ids []string) []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := make(map[string]domain.User, len(s.users))
	for _, u := range s.users {
		byID[u.ID] = u
	}

	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out
}
