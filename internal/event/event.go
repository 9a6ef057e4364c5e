// Package event defines the tagged notification payloads delivered on the
// live-update feed. Events are immutable value objects: every constructor
// copies the relevant entity so that later mutation of the presence registry
// or the chat log can never change an already-dispatched event.
package event

import "github.com/partage-labs/partage/internal/domain"

// Type discriminates the event payload.
type Type string

const (
	TypeMessage    Type = "message"
	TypeUserJoined Type = "user_joined"
	TypeUserLeft   Type = "user_left"
	TypeUserList   Type = "user_list"
)

// Event is a discriminated union over the four live-update payloads. Exactly
// one of Message, User, or Users is set, matching Type.
type Event struct {
	Type    Type            `json:"type"`
	Message *domain.Message `json:"message,omitempty"`
	User    *domain.User    `json:"user,omitempty"`
	Users   []domain.User   `json:"users,omitempty"`
}

// NewMessage builds a "message" event carrying a snapshot of the stored
// chat message.
func NewMessage(msg domain.Message) Event {
	m := msg
	return Event{Type: TypeMessage, Message: &m}
}

// NewUserJoined builds a "user_joined" event. The user is sanitized before
// embedding; a broadcast must never carry a password.
func NewUserJoined(user domain.User) Event {
	u := user.Public()
	return Event{Type: TypeUserJoined, User: &u}
}

// NewUserLeft builds a "user_left" event.
func NewUserLeft(user domain.User) Event {
	u := user.Public()
	return Event{Type: TypeUserLeft, User: &u}
}

// NewUserList builds a "user_list" roster snapshot event.
func NewUserList(users []domain.User) Event {
	snapshot := make([]domain.User, 0, len(users))
	for _, u := range users {
		snapshot = append(snapshot, u.Public())
	}
	return Event{Type: TypeUserList, Users: snapshot}
}
