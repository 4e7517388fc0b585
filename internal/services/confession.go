// Package services – ConfessionService
//
// The confession pipeline: validate the body, resolve the destination
// through the registry, post the anonymized artifact, and queue an audit
// record. Delivery and audit are independent fire-and-forget side effects;
// once validation and resolution pass, the submission is reported as sent.
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/confessly/confession-relay/internal/domain"
	"github.com/confessly/confession-relay/internal/metrics"
	"github.com/confessly/confession-relay/internal/platform"
	"github.com/confessly/confession-relay/internal/registry"
)

// Embed styling for posted confessions.
const (
	confessionTitle = "Anonymous Confession"
	confessionColor = 0xFF5733
)

// AuditSink receives audit entries for background persistence.
type AuditSink interface {
	Record(entry domain.LogEntry)
}

// ConfessionService validates and routes confessions.
type ConfessionService struct {
	registry *registry.Registry
	gateway  platform.Gateway
	audit    AuditSink
	log      zerolog.Logger

	// now is a seam for tests.
	now func() time.Time
}

// NewConfessionService wires the pipeline.
func NewConfessionService(reg *registry.Registry, gw platform.Gateway, sink AuditSink, log zerolog.Logger) *ConfessionService {
	return &ConfessionService{
		registry: reg,
		gateway:  gw,
		audit:    sink,
		log:      log.With().Str("component", "confession").Logger(),
		now:      time.Now,
	}
}

// Submit routes one confession. communityID may be empty for DM
// submissions; in that case the destination is unambiguous only when
// exactly one community is configured. The confession's AuthorID is used
// solely for the audit record and never reaches the destination channel;
// a zero SubmittedAt is stamped with the current time.
//
// A nil return means the confession was accepted: the anonymized embed and
// the audit record are queued asynchronously and their later failure does
// not retract the acceptance.
func (s *ConfessionService) Submit(communityID string, conf domain.Confession) error {
	body := strings.TrimSpace(conf.Body)
	if body == "" {
		metrics.ConfessionsRejected.WithLabelValues("empty_body").Inc()
		return ErrEmptyConfession
	}

	destinationID, err := s.resolve(communityID)
	if err != nil {
		metrics.ConfessionsRejected.WithLabelValues("no_destination").Inc()
		return err
	}

	artifact := platform.Artifact{
		Title: confessionTitle,
		Body:  body,
		Color: confessionColor,
	}
	go s.gateway.SendArtifact(destinationID, artifact)

	if conf.SubmittedAt.IsZero() {
		conf.SubmittedAt = s.now()
	}
	entry := domain.NewLogEntry(
		fmt.Sprintf("%s: %s", conf.AuthorID, body),
		domain.LogLevelInfo,
		conf.SubmittedAt,
	)
	s.audit.Record(entry)

	metrics.ConfessionsDelivered.Inc()
	s.log.Info().Str("destination", destinationID).Msg("confession routed")
	return nil
}

// resolve picks the destination channel. A named community must be
// configured; an unnamed submission requires exactly one configured
// community.
func (s *ConfessionService) resolve(communityID string) (string, error) {
	if communityID != "" {
		dest, ok := s.registry.Get(communityID)
		if !ok {
			return "", ErrCommunityNotConfigured
		}
		return dest, nil
	}

	if entry, ok := s.registry.Sole(); ok {
		return entry.DestinationID, nil
	}
	if s.registry.Len() == 0 {
		return "", ErrNoDestination
	}
	return "", ErrAmbiguousDestination
}
