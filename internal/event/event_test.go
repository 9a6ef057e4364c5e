package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partage-labs/partage/internal/domain"
)

func TestNewMessage_JSONShape(t *testing.T) {
	ev := NewMessage(domain.Message{
		ID:        "m1",
		Author:    "Alice",
		AuthorID:  "u1",
		Body:      "hello",
		SentAt:    time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
		Direction: domain.DirectionOutgoing,
	})

	data, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	// The event discriminant and the message's direction live on separate
	// keys; one can never clobber the other.
	assert.Equal(t, "message", decoded["type"])
	msg := decoded["message"].(map[string]any)
	assert.Equal(t, "outgoing", msg["direction"])
	assert.Equal(t, "hello", msg["message"])
	assert.Equal(t, "Alice", msg["user"])

	assert.NotContains(t, decoded, "user")
	assert.NotContains(t, decoded, "users")
}

func TestPresenceEvents_StripPasswords(t *testing.T) {
	user := domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Password: "secret"}

	joined := NewUserJoined(user)
	left := NewUserLeft(user)

	assert.Equal(t, TypeUserJoined, joined.Type)
	assert.Equal(t, TypeUserLeft, left.Type)
	require.NotNil(t, joined.User)
	require.NotNil(t, left.User)
	assert.Empty(t, joined.User.Password)
	assert.Empty(t, left.User.Password)

	data, err := json.Marshal(joined)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
}

func TestNewUserList(t *testing.T) {
	users := []domain.User{
		{ID: "u1", Name: "Alice", Password: "secret"},
		{ID: "u2", Name: "Bob", Password: "hunter2"},
	}

	ev := NewUserList(users)

	assert.Equal(t, TypeUserList, ev.Type)
	require.Len(t, ev.Users, 2)
	for _, u := range ev.Users {
		assert.Empty(t, u.Password)
	}

	// The event owns its slice; mutating the input after the fact must not
	// leak through.
	users[0].Name = "Mallory"
	assert.Equal(t, "Alice", ev.Users[0].Name)
}

func TestTopics_CoverAllEventSources(t *testing.T) {
	topics := Topics()
	assert.ElementsMatch(t, []string{
		TopicMessageCreated,
		TopicUserOnline,
		TopicUserOffline,
	}, topics)
}

func TestEventRoundTrip(t *testing.T) {
	original := NewUserList([]domain.User{{ID: "u1", Name: "Alice"}})

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, TypeUserList, decoded.Type)
	require.Len(t, decoded.Users, 1)
	assert.Nil(t, decoded.Message)
	assert.Nil(t, decoded.User)
}
