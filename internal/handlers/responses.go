package handlers

import "github.com/partage-labs/partage/internal/domain"

// ErrorResponse is the standard format for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UserResponse pairs a status message with a sanitized user record.
type UserResponse struct {
	Message string      `json:"message"`
	User    domain.User `json:"user"`
}

// FileListResponse wraps a list of file records.
type FileListResponse struct {
	Files []domain.File `json:"files"`
}

// MessageListResponse wraps the visible chat history window.
type MessageListResponse struct {
	Messages []domain.Message `json:"messages"`
}

// OnlineUsersResponse wraps the current roster snapshot.
type OnlineUsersResponse struct {
	Users []domain.User `json:"users"`
}

// StatusResponse reports service availability and the configured window.
type StatusResponse struct {
	ServiceAvailable bool         `json:"service_available"`
	CurrentTime      string       `json:"current_time"`
	ServiceHours     ServiceHours `json:"service_hours"`
}

// ServiceHours is the configured open/close window, in hours of day.
type ServiceHours struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func publicUsers(users []domain.User) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}
