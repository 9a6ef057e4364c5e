package domain

import "time"

// User represents a registered account. Password is an opaque string compared
// verbatim on login; it is persisted to disk but must never appear in an API
// response or a broadcast event. Use Public to strip it.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"password,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns a copy of the user safe for serialization to clients.
func (u User) Public() User {
	u.Password = ""
	return u
}

// UserDirectory is the lookup contract the session layer depends on.
// It lives in the domain because it is a requirement OF the domain, not
// of the storage implementation behind it.
type UserDirectory interface {
	// FindByCredentials returns the user matching email and password, or
	// ErrInvalidCredentials.
	FindByCredentials(email, password string) (User, error)

	// FindByID returns the user with the given identifier, or ErrUnknownUser.
	FindByID(id string) (User, error)
}
