// Package hub fans live-update events out to every open connection. It
// decouples "something happened" from "who needs to know": publishers never
// learn whether delivery succeeded, and one dead or slow subscriber cannot
// delay the others.
package hub

import (
	"context"
	"log/slog"

	"github.com/partage-labs/partage/internal/event"
)

// sendBuffer is the per-subscriber queue depth. A subscriber whose buffer is
// full when an event arrives is treated as failed and removed.
const sendBuffer = 32

// Subscriber represents a single live-update connection registered with the
// Hub.
type Subscriber struct {
	// Send is a buffered channel of outbound events. The Hub sends events to
	// this channel; the connection's write loop drains it. The Hub closes it
	// when the subscriber is removed.
	Send chan event.Event
}

// Hub maintains the set of active subscribers and broadcasts events to them.
// The subscriber set is owned exclusively by the Run goroutine; all access
// goes through channels, so a publish always works against a consistent
// snapshot of the set.
type Hub struct {
	subscribers map[*Subscriber]bool

	register   chan *Subscriber
	unregister chan *Subscriber
	broadcast  chan event.Event
	count      chan chan int

	// done is closed when Run exits so that late callers do not block on a
	// loop that is no longer draining the channels.
	done chan struct{}
}

// New creates a Hub. Call Run in a goroutine before using it.
func New() *Hub {
	return &Hub{
		subscribers: make(map[*Subscriber]bool),
		register:    make(chan *Subscriber),
		unregister:  make(chan *Subscriber),
		broadcast:   make(chan event.Event),
		count:       make(chan chan int),
		done:        make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is canceled, then
// closes every remaining subscriber channel.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for sub := range h.subscribers {
				delete(h.subscribers, sub)
				close(sub.Send)
			}
			slog.Info("Broadcast hub stopped")
			return

		case sub := <-h.register:
			h.subscribers[sub] = true
			slog.Info("Subscriber registered", "total_subscribers", len(h.subscribers))

		case sub := <-h.unregister:
			if _, ok := h.subscribers[sub]; ok {
				delete(h.subscribers, sub)
				close(sub.Send)
				slog.Info("Subscriber unregistered", "total_subscribers", len(h.subscribers))
			}

		case ev := <-h.broadcast:
			for sub := range h.subscribers {
				// Non-blocking send: a full buffer means the connection is
				// lagging or dead, so it moves straight to removed.
				select {
				case sub.Send <- ev:
				default:
					delete(h.subscribers, sub)
					close(sub.Send)
					slog.Warn("Removing failed subscriber",
						"event_type", ev.Type,
						"total_subscribers", len(h.subscribers))
				}
			}

		case reply := <-h.count:
			reply <- len(h.subscribers)
		}
	}
}

// Subscribe registers a new subscriber and returns it. The subscriber is
// eligible for every event published after registration completes. On a
// stopped hub the returned subscriber's channel is already closed.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{Send: make(chan event.Event, sendBuffer)}
	select {
	case h.register <- sub:
	case <-h.done:
		close(sub.Send)
	}
	return sub
}

// Unsubscribe removes the subscriber and closes its Send channel. Idempotent:
// unsubscribing a subscriber that already failed is a no-op.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	select {
	case h.unregister <- sub:
	case <-h.done:
	}
}

// Publish delivers ev to every currently-registered subscriber. Delivery is
// best-effort and fire-and-forget; Publish returns once the event is queued
// for the run loop, and drops the event if the hub has stopped.
func (h *Hub) Publish(ev event.Event) {
	select {
	case h.broadcast <- ev:
	case <-h.done:
	}
}

// Count reports the current number of registered subscribers. It round-trips
// through the run loop, so it observes all previously queued operations.
func (h *Hub) Count() int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}
