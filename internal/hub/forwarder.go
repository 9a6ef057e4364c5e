package hub

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/partage-labs/partage/internal/event"
	"github.com/partage-labs/partage/internal/pubsub"
)

// Forwarder relays domain events from the internal bus to the Hub, so every
// live-update connection sees them regardless of which component published.
type Forwarder struct {
	subscriber pubsub.Subscriber
	hub        *Hub
}

// NewForwarder creates a forwarder between the bus and the hub.
func NewForwarder(sub pubsub.Subscriber, h *Hub) *Forwarder {
	return &Forwarder{subscriber: sub, hub: h}
}

// Start subscribes to every domain topic. Subscriptions live until the
// context is canceled.
func (f *Forwarder) Start(ctx context.Context) error {
	for _, topic := range event.Topics() {
		if err := f.subscriber.Subscribe(ctx, topic, f.handle); err != nil {
			return err
		}
	}
	slog.Info("Hub forwarder subscribed", "topics", event.Topics())
	return nil
}

// handle decodes the payload and pushes it into the hub. Malformed payloads
// are logged and dropped; they must not wedge the subscription.
func (f *Forwarder) handle(ctx context.Context, msg pubsub.Message) error {
	var ev event.Event
	if err := json.Unmarshal(msg.Payload, &ev); err != nil {
		slog.Error("Failed to unmarshal bus event", "topic", msg.Topic, "error", err)
		return nil
	}
	f.hub.Publish(ev)
	return nil
}
