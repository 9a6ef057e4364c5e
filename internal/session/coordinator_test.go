package session

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partage-labs/partage/internal/chatlog"
	"github.com/partage-labs/partage/internal/domain"
	"github.com/partage-labs/partage/internal/event"
	"github.com/partage-labs/partage/internal/presence"
	"github.com/partage-labs/partage/internal/pubsub"
)

// mockPublisher implements pubsub.Publisher for testing.
type mockPublisher struct {
	mu       sync.Mutex
	messages []pubsub.Message
	err      error
}

func (m *mockPublisher) Publish(ctx context.Context, msg pubsub.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

func (m *mockPublisher) getMessages() []pubsub.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]pubsub.Message, len(m.messages))
	copy(result, m.messages)
	return result
}

// fakeDirectory implements domain.UserDirectory over a fixed user set.
type fakeDirectory struct {
	users []domain.User
}

func (d *fakeDirectory) FindByCredentials(email, password string) (domain.User, error) {
	for _, u := range d.users {
		if u.Email == email && u.Password == password {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrInvalidCredentials
}

func (d *fakeDirectory) FindByID(id string) (domain.User, error) {
	for _, u := range d.users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUnknownUser
}

func newTestCoordinator(users ...domain.User) (*Coordinator, *presence.Registry, *chatlog.Log, *mockPublisher) {
	registry := presence.NewRegistry()
	log := chatlog.New()
	publisher := &mockPublisher{}
	c := NewCoordinator(&fakeDirectory{users: users}, registry, log, publisher)
	return c, registry, log, publisher
}

func decodeEvent(t *testing.T, msg pubsub.Message) event.Event {
	t.Helper()
	var ev event.Event
	require.NoError(t, json.Unmarshal(msg.Payload, &ev))
	return ev
}

var alice = domain.User{ID: "u1", Name: "Alice", Email: "alice@example.com", Password: "secret"}

func TestCoordinator_LoginSuccess(t *testing.T) {
	c, registry, _, publisher := newTestCoordinator(alice)

	user, err := c.Login(context.Background(), "alice@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Empty(t, user.Password, "returned user must be sanitized")
	assert.True(t, registry.IsOnline("u1"))

	msgs := publisher.getMessages()
	require.Len(t, msgs, 1)
	assert.Equal(t, event.TopicUserOnline, msgs[0].Topic)

	ev := decodeEvent(t, msgs[0])
	assert.Equal(t, event.TypeUserJoined, ev.Type)
	require.NotNil(t, ev.User)
	assert.Equal(t, "u1", ev.User.ID)
	assert.Empty(t, ev.User.Password)
}

func TestCoordinator_LoginInvalidCredentials(t *testing.T) {
	c, registry, _, publisher := newTestCoordinator(alice)

	_, err := c.Login(context.Background(), "alice@example.com", "wrong")

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.False(t, registry.IsOnline("u1"))
	assert.Empty(t, publisher.getMessages())
}

// A repeat login leaves a single presence entry but still announces the join.
func TestCoordinator_RepeatLoginPublishesEachTime(t *testing.T) {
	c, registry, _, publisher := newTestCoordinator(alice)

	_, err := c.Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)
	_, err = c.Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)

	assert.Len(t, registry.OnlineUserIDs(), 1)
	assert.Len(t, publisher.getMessages(), 2)
}

func TestCoordinator_Logout(t *testing.T) {
	c, registry, _, publisher := newTestCoordinator(alice)
	_, err := c.Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)

	c.Logout(context.Background(), "u1")

	assert.False(t, registry.IsOnline("u1"))

	msgs := publisher.getMessages()
	require.Len(t, msgs, 2)
	assert.Equal(t, event.TopicUserOffline, msgs[1].Topic)
	ev := decodeEvent(t, msgs[1])
	assert.Equal(t, event.TypeUserLeft, ev.Type)
}

func TestCoordinator_LogoutWhenNotOnlineIsSilent(t *testing.T) {
	c, _, _, publisher := newTestCoordinator(alice)

	c.Logout(context.Background(), "u1")
	c.Logout(context.Background(), "never-seen")

	assert.Empty(t, publisher.getMessages())
}

func TestCoordinator_SendMessage(t *testing.T) {
	c, _, log, publisher := newTestCoordinator(alice)

	msg, err := c.SendMessage(context.Background(), "u1", "hi")

	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "Alice", msg.Author)
	assert.Equal(t, "u1", msg.AuthorID)
	assert.Equal(t, "hi", msg.Body)
	assert.Equal(t, domain.DirectionOutgoing, msg.Direction)
	assert.Equal(t, 1, log.Len())

	msgs := publisher.getMessages()
	require.Len(t, msgs, 1)
	assert.Equal(t, event.TopicMessageCreated, msgs[0].Topic)
	ev := decodeEvent(t, msgs[0])
	assert.Equal(t, event.TypeMessage, ev.Type)
	require.NotNil(t, ev.Message)
	assert.Equal(t, "hi", ev.Message.Body)
	assert.Equal(t, msg.ID, ev.Message.ID)
}

func TestCoordinator_SendMessageEmptyBody(t *testing.T) {
	c, _, log, publisher := newTestCoordinator(alice)

	_, err := c.SendMessage(context.Background(), "u1", "")

	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	assert.Equal(t, 0, log.Len(), "failed send must not append")
	assert.Empty(t, publisher.getMessages())
}

func TestCoordinator_SendMessageUnknownUser(t *testing.T) {
	c, _, log, publisher := newTestCoordinator(alice)

	_, err := c.SendMessage(context.Background(), "nobody", "hi")

	assert.ErrorIs(t, err, domain.ErrUnknownUser)
	assert.Equal(t, 0, log.Len())
	assert.Empty(t, publisher.getMessages())
}

// Bus failures are swallowed: the state change stands and the caller sees
// success.
func TestCoordinator_PublishFailureIsContained(t *testing.T) {
	registry := presence.NewRegistry()
	log := chatlog.New()
	publisher := &mockPublisher{err: assert.AnError}
	c := NewCoordinator(&fakeDirectory{users: []domain.User{alice}}, registry, log, publisher)

	user, err := c.Login(context.Background(), "alice@example.com", "secret")
	require.NoError(t, err)
	assert.True(t, registry.IsOnline(user.ID))

	msg, err := c.SendMessage(context.Background(), "u1", "hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", msg.Body)
	assert.Equal(t, 1, log.Len())
}

func TestCoordinator_ConcurrentSends(t *testing.T) {
	bob := domain.User{ID: "u2", Name: "Bob", Email: "bob@example.com", Password: "pw"}
	c, _, log, _ := newTestCoordinator(alice, bob)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := c.SendMessage(context.Background(), "u1", "from alice")
		assert.NoError(t, err)
	}()
	go func() {
		defer wg.Done()
		_, err := c.SendMessage(context.Background(), "u2", "from bob")
		assert.NoError(t, err)
	}()
	wg.Wait()

	all := log.Snapshot()
	require.Len(t, all, 2)
	assert.NotEqual(t, all[0].ID, all[1].ID)
}
