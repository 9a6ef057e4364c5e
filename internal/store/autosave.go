package store

import (
	"context"
	"log/slog"

	"github.com/partage-labs/partage/internal/chatlog"
	"github.com/partage-labs/partage/internal/event"
	"github.com/partage-labs/partage/internal/pubsub"
)

// Autosave snapshots all records to disk whenever a domain event fires. It is
// the persistence trigger for chat and presence changes, which mutate state
// outside the store. Best-effort by design: a failed write is logged and the
// in-memory state stands.
type Autosave struct {
	store      *Store
	log        *chatlog.Log
	subscriber pubsub.Subscriber
	logger     *slog.Logger
}

// NewAutosave wires the autosave subscriber.
func NewAutosave(store *Store, log *chatlog.Log, sub pubsub.Subscriber) *Autosave {
	return &Autosave{
		store:      store,
		log:        log,
		subscriber: sub,
		logger:     slog.Default().With("service", "autosave"),
	}
}

// Start subscribes to every domain topic. Subscriptions live until the
// context is canceled.
func (a *Autosave) Start(ctx context.Context) error {
	for _, topic := range event.Topics() {
		if err := a.subscriber.Subscribe(ctx, topic, a.handle); err != nil {
			return err
		}
	}
	return nil
}

func (a *Autosave) handle(ctx context.Context, msg pubsub.Message) error {
	if err := a.store.Save(a.log.Snapshot()); err != nil {
		a.logger.Error("Failed to persist after event", "topic", msg.Topic, "error", err)
	}
	// Always ack: persistence is best-effort, redelivery would not help.
	return nil
}
