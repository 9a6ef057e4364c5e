// Package session composes the presence registry, the chat log, and the
// event bus behind the operations the request layer calls. Each operation is
// a single coherent unit: state mutates first, then the matching event is
// published best-effort.
package session

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/partage-labs/partage/internal/chatlog"
	"github.com/partage-labs/partage/internal/domain"
	"github.com/partage-labs/partage/internal/event"
	"github.com/partage-labs/partage/internal/presence"
	"github.com/partage-labs/partage/internal/pubsub"
)

// Coordinator is the façade used by the HTTP handlers for login, logout, and
// chat sends.
type Coordinator struct {
	directory domain.UserDirectory
	registry  *presence.Registry
	log       *chatlog.Log
	publisher pubsub.Publisher
	logger    *slog.Logger
}

// NewCoordinator wires the coordinator's collaborators.
func NewCoordinator(directory domain.UserDirectory, registry *presence.Registry, log *chatlog.Log, publisher pubsub.Publisher) *Coordinator {
	return &Coordinator{
		directory: directory,
		registry:  registry,
		log:       log,
		publisher: publisher,
		logger:    slog.Default().With("service", "session"),
	}
}

// Login validates credentials against the user directory, marks the user
// online, and announces the join. Marking online is idempotent, but every
// successful login publishes a fresh user_joined event.
func (c *Coordinator) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := c.directory.FindByCredentials(email, password)
	if err != nil {
		return domain.User{}, err
	}

	c.registry.MarkOnline(user.ID)
	c.publish(ctx, event.TopicUserOnline, event.NewUserJoined(user))

	return user.Public(), nil
}

// Logout marks the user offline and announces the departure. Logging out a
// user that was never online is a silent no-op: no event, no error.
func (c *Coordinator) Logout(ctx context.Context, userID string) {
	if !c.registry.IsOnline(userID) {
		return
	}
	c.registry.MarkOffline(userID)

	user, err := c.directory.FindByID(userID)
	if err != nil {
		// Registry held an id the directory no longer knows; nothing to announce.
		c.logger.Warn("Logout for unknown user", "user_id", userID)
		return
	}
	c.publish(ctx, event.TopicUserOffline, event.NewUserLeft(user))
}

// SendMessage appends a chat message authored by userID and announces it.
// Nothing is appended when validation fails.
func (c *Coordinator) SendMessage(ctx context.Context, userID, body string) (domain.Message, error) {
	if body == "" {
		return domain.Message{}, domain.ErrEmptyMessage
	}

	user, err := c.directory.FindByID(userID)
	if err != nil {
		return domain.Message{}, err
	}

	stored := c.log.Append(domain.Message{
		Author:   user.Name,
		AuthorID: user.ID,
		Body:     body,
	})
	c.publish(ctx, event.TopicMessageCreated, event.NewMessage(stored))

	return stored, nil
}

// publish serializes the event onto the bus. Best-effort: a bus failure is
// logged and swallowed, it never surfaces to the caller that triggered the
// event.
func (c *Coordinator) publish(ctx context.Context, topic string, ev event.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		c.logger.Error("Failed to marshal event", "topic", topic, "error", err)
		return
	}
	if err := c.publisher.Publish(ctx, pubsub.Message{Topic: topic, Payload: payload}); err != nil {
		c.logger.Error("Failed to publish event", "topic", topic, "error", err)
	}
}
