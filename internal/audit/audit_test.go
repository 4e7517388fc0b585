package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/confessly/confession-relay/internal/domain"
)

// fakeStore implements store.Store, recording appends.
type fakeStore struct {
	mu        sync.Mutex
	appended  []domain.LogEntry
	appendErr error
	done      chan struct{}
}

func newFakeStore(capacity int) *fakeStore {
	return &fakeStore{done: make(chan struct{}, capacity)}
}

func (f *fakeStore) FetchAll(context.Context) ([]domain.RoutingEntry, error) { return nil, nil }
func (f *fakeStore) FetchLatest(context.Context) (domain.RoutingEntry, error) {
	return domain.RoutingEntry{}, nil
}
func (f *fakeStore) Upsert(context.Context, domain.RoutingEntry) error { return nil }
func (f *fakeStore) Delete(context.Context, string) error              { return nil }

func (f *fakeStore) AppendLog(_ context.Context, entry domain.LogEntry) error {
	f.mu.Lock()
	err := f.appendErr
	if err == nil {
		f.appended = append(f.appended, entry)
	}
	f.mu.Unlock()
	f.done <- struct{}{}
	return err
}

func (f *fakeStore) entries() []domain.LogEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.LogEntry(nil), f.appended...)
}

func waitFor(t *testing.T, ch chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for store call")
	}
}

func TestRecorder_PersistsEntries(t *testing.T) {
	st := newFakeStore(4)
	r := NewRecorder(st, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	r.Record(domain.LogEntry{Message: "u1: first", Level: domain.LogLevelInfo})
	r.Record(domain.LogEntry{Message: "u2: second", Level: domain.LogLevelInfo})
	waitFor(t, st.done)
	waitFor(t, st.done)

	got := st.entries()
	if len(got) != 2 {
		t.Fatalf("persisted %d entries; want 2", len(got))
	}
	if got[0].Message != "u1: first" || got[1].Message != "u2: second" {
		t.Errorf("entries = %+v; want insertion order preserved", got)
	}
}

func TestRecorder_FailureIsSwallowed(t *testing.T) {
	st := newFakeStore(4)
	st.appendErr = errors.New("store down")
	r := NewRecorder(st, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	// Record must not block or panic even when every append fails.
	r.Record(domain.LogEntry{Message: "u: fails"})
	waitFor(t, st.done)

	if got := st.entries(); len(got) != 0 {
		t.Errorf("entries = %+v; want none", got)
	}
}

func TestRecorder_FullQueueDropsWithoutBlocking(t *testing.T) {
	st := newFakeStore(1)
	r := NewRecorder(st, zerolog.Nop())
	// No worker running: the queue fills and further records must drop.

	done := make(chan struct{})
	go func() {
		for i := 0; i < defaultQueueSize+10; i++ {
			r.Record(domain.LogEntry{Message: "overflow"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Record blocked on a full queue")
	}
}
