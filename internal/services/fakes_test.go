package services

import (
	"context"
	"sync"

	"github.com/confessly/confession-relay/internal/domain"
	"github.com/confessly/confession-relay/internal/platform"
)

// fakeGateway records sends and serves canned destination lookups.
type fakeGateway struct {
	mu           sync.Mutex
	sentTexts    []string
	sentArtifact []platform.Artifact
	sentDest     []string
	artifactCh   chan struct{}

	destinations map[string]platform.Destination
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		artifactCh:   make(chan struct{}, 16),
		destinations: map[string]platform.Destination{},
	}
}

func (g *fakeGateway) SendMessage(destinationID, text string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sentDest = append(g.sentDest, destinationID)
	g.sentTexts = append(g.sentTexts, text)
}

func (g *fakeGateway) SendArtifact(destinationID string, a platform.Artifact) {
	g.mu.Lock()
	g.sentDest = append(g.sentDest, destinationID)
	g.sentArtifact = append(g.sentArtifact, a)
	g.mu.Unlock()
	g.artifactCh <- struct{}{}
}

func (g *fakeGateway) ResolveDestination(id string) (platform.Destination, bool) {
	d, ok := g.destinations[id]
	return d, ok
}

func (g *fakeGateway) artifacts() ([]string, []platform.Artifact) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.sentDest...), append([]platform.Artifact(nil), g.sentArtifact...)
}

// fakeSink collects audit entries synchronously.
type fakeSink struct {
	mu      sync.Mutex
	entries []domain.LogEntry
}

func (s *fakeSink) Record(entry domain.LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

func (s *fakeSink) recorded() []domain.LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.LogEntry(nil), s.entries...)
}

// fakeStore implements store.Store and signals every write on done so
// tests can wait for the fire-and-forget goroutines.
type fakeStore struct {
	mu        sync.Mutex
	upserts   []domain.RoutingEntry
	deletes   []string
	logs      []domain.LogEntry
	fetched   []domain.RoutingEntry
	fetchErr  error
	upsertErr error
	deleteErr error

	done chan string
}

func newFakeStore() *fakeStore {
	return &fakeStore{done: make(chan string, 16)}
}

func (f *fakeStore) FetchAll(context.Context) ([]domain.RoutingEntry, error) {
	return f.fetched, f.fetchErr
}

func (f *fakeStore) FetchLatest(context.Context) (domain.RoutingEntry, error) {
	if len(f.fetched) == 0 {
		return domain.RoutingEntry{}, f.fetchErr
	}
	return f.fetched[len(f.fetched)-1], f.fetchErr
}

func (f *fakeStore) Upsert(_ context.Context, entry domain.RoutingEntry) error {
	f.mu.Lock()
	err := f.upsertErr
	if err == nil {
		f.upserts = append(f.upserts, entry)
	}
	f.mu.Unlock()
	f.done <- "upsert"
	return err
}

func (f *fakeStore) Delete(_ context.Context, communityID string) error {
	f.mu.Lock()
	err := f.deleteErr
	if err == nil {
		f.deletes = append(f.deletes, communityID)
	}
	f.mu.Unlock()
	f.done <- "delete"
	return err
}

func (f *fakeStore) AppendLog(_ context.Context, entry domain.LogEntry) error {
	f.mu.Lock()
	f.logs = append(f.logs, entry)
	f.mu.Unlock()
	f.done <- "append_log"
	return nil
}

func (f *fakeStore) upserted() []domain.RoutingEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.RoutingEntry(nil), f.upserts...)
}

func (f *fakeStore) deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deletes...)
}
