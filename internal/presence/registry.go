// Package presence tracks which users are currently logged in.
//
// A user enters the registry on successful login and leaves it on explicit
// logout only. A closed tab does not evict its user: the service
// intentionally has no heartbeat, so presence reflects the last login/logout
// call rather than transport liveness.
package presence

import "sync"

// Registry is the set of currently-online user identifiers. It is the sole
// owner of that state; callers only see snapshots.
type Registry struct {
	mu     sync.RWMutex
	online map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{online: make(map[string]struct{})}
}

// MarkOnline records the user as online. Idempotent.
func (r *Registry) MarkOnline(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.online[userID] = struct{}{}
}

// MarkOffline removes the user from the registry. Idempotent; marking an
// absent user offline is not an error.
func (r *Registry) MarkOffline(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.online, userID)
}

// IsOnline reports whether the user is currently tracked as online.
func (r *Registry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.online[userID]
	return ok
}

// OnlineUserIDs returns a snapshot of the online set at call time. The slice
// is a copy; it does not stay in sync with later mark calls.
func (r *Registry) OnlineUserIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.online))
	for id := range r.online {
		ids = append(ids, id)
	}
	return ids
}
