// Package registry holds the in-memory community→destination mapping.
// It is the single authority for live routing decisions: the config store
// is only the durable backing copy, read once at startup and written on
// every mutation. The registry performs no validation; callers decide
// what may be stored.
package registry

import (
	"sync"

	"github.com/confessly/confession-relay/internal/domain"
)

// Registry is a goroutine-safe community→destination map. Platform events
// are dispatched concurrently, so reads and writes arrive from multiple
// goroutines; concurrent writes to the same community are last-write-wins.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]string
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]string)}
}

// Get returns the destination configured for a community, if any.
func (r *Registry) Get(communityID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dest, ok := r.entries[communityID]
	return dest, ok
}

// Set maps a community to a destination, overwriting any previous mapping.
func (r *Registry) Set(communityID, destinationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[communityID] = destinationID
}

// Remove clears the mapping for a community. Removing an absent community
// is a no-op.
func (r *Registry) Remove(communityID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, communityID)
}

// Len returns the number of configured communities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// All returns a snapshot of every configured mapping. Order is unspecified.
func (r *Registry) All() []domain.RoutingEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.RoutingEntry, 0, len(r.entries))
	for community, dest := range r.entries {
		out = append(out, domain.RoutingEntry{CommunityID: community, DestinationID: dest})
	}
	return out
}

// Sole returns the destination of the single configured community. The
// second return is false when zero or more than one community is
// configured — callers must treat that as "no / ambiguous destination",
// never guess.
func (r *Registry) Sole() (domain.RoutingEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.entries) != 1 {
		return domain.RoutingEntry{}, false
	}
	for community, dest := range r.entries {
		return domain.RoutingEntry{CommunityID: community, DestinationID: dest}, true
	}
	return domain.RoutingEntry{}, false
}
