// Package audit provides the fire-and-forget sink for append-only log
// entries. Entries are queued on a buffered channel and persisted by a
// single background worker; enqueue never blocks the event path. There is
// no retry and no dead-letter queue — a failed append is logged and
// dropped, which is the intended durability contract for this log.
package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/confessly/confession-relay/internal/domain"
	"github.com/confessly/confession-relay/internal/metrics"
	"github.com/confessly/confession-relay/internal/store"
)

// defaultQueueSize bounds the number of entries waiting for persistence.
const defaultQueueSize = 256

// appendTimeout caps a single store append so a hung backend cannot wedge
// the worker forever.
const appendTimeout = 15 * time.Second

// Recorder queues audit entries for background persistence.
type Recorder struct {
	store store.Store
	log   zerolog.Logger
	queue chan domain.LogEntry
}

// NewRecorder builds a Recorder writing to st. Run must be started for
// entries to drain.
func NewRecorder(st store.Store, log zerolog.Logger) *Recorder {
	return &Recorder{
		store: st,
		log:   log.With().Str("component", "audit").Logger(),
		queue: make(chan domain.LogEntry, defaultQueueSize),
	}
}

// Record enqueues an entry without blocking. When the queue is full the
// entry is dropped and counted; the submitting user-facing action is never
// affected.
func (r *Recorder) Record(entry domain.LogEntry) {
	select {
	case r.queue <- entry:
	default:
		metrics.AuditDropped.Inc()
		r.log.Warn().Str("message", entry.Message).Msg("audit queue full, entry dropped")
	}
}

// Run drains the queue until ctx is canceled. Persistence failures are
// logged and not retried.
func (r *Recorder) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry := <-r.queue:
			r.persist(ctx, entry)
		}
	}
}

func (r *Recorder) persist(ctx context.Context, entry domain.LogEntry) {
	ctx, cancel := context.WithTimeout(ctx, appendTimeout)
	defer cancel()

	if err := r.store.AppendLog(ctx, entry); err != nil {
		metrics.PersistenceFailures.WithLabelValues("append_log").Inc()
		r.log.Error().Err(err).Str("message", entry.Message).Msg("failed to record log")
		return
	}
	metrics.AuditRecorded.Inc()
}
