package event

// Bus topics for the domain events the session layer publishes. The hub
// forwarder relays all of them to live-update subscribers; the autosave
// subscriber uses them as persistence triggers.
const (
	// TopicMessageCreated carries a "message" event for each chat message
	// appended to the log.
	TopicMessageCreated = "chat.message.created"

	// TopicUserOnline carries a "user_joined" event for each successful login.
	TopicUserOnline = "presence.user.online"

	// TopicUserOffline carries a "user_left" event when an online user logs out.
	TopicUserOffline = "presence.user.offline"
)

// Topics lists every domain topic, in the order forwarders subscribe to them.
func Topics() []string {
	return []string{TopicMessageCreated, TopicUserOnline, TopicUserOffline}
}
