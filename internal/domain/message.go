package domain

import "time"

// DirectionOutgoing is the fixed direction tag stamped on every stored chat
// message. Clients use it to pick a rendering side for their own messages.
const DirectionOutgoing = "outgoing"

// Message is a single chat log entry. Messages are immutable once appended;
// the log assigns ID and SentAt if the caller left them zero.
type Message struct {
	ID        string    `json:"id"`
	Author    string    `json:"user"`
	AuthorID  string    `json:"userId"`
	Body      string    `json:"message"`
	SentAt    time.Time `json:"time"`
	Direction string    `json:"direction"`
}
