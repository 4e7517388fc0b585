// Package services – Reconciler
//
// Startup reconciliation rebuilds the in-memory registry from persisted
// configuration before any traffic is accepted. A record whose destination
// no longer resolves on the platform is skipped with a warning; an
// unreachable store leaves the registry empty rather than refusing to
// start. Availability wins over strict consistency here.
package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/confessly/confession-relay/internal/platform"
	"github.com/confessly/confession-relay/internal/registry"
	"github.com/confessly/confession-relay/internal/store"
)

// Reconciler restores routing state at boot.
type Reconciler struct {
	registry *registry.Registry
	store    store.Store
	gateway  platform.Gateway
	log      zerolog.Logger
}

// NewReconciler wires the startup reconciler.
func NewReconciler(reg *registry.Registry, st store.Store, gw platform.Gateway, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		registry: reg,
		store:    st,
		gateway:  gw,
		log:      log.With().Str("component", "reconcile").Logger(),
	}
}

// Reconcile pulls all persisted routing records and registers every entry
// whose destination still resolves. It returns the number of restored
// entries and never fails the boot.
func (r *Reconciler) Reconcile(ctx context.Context) int {
	entries, err := r.store.FetchAll(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("could not fetch persisted configuration, starting with empty routing state")
		return 0
	}
	r.log.Info().Int("count", len(entries)).Msg("retrieved configured communities from store")

	restored := 0
	for _, entry := range entries {
		dest, ok := r.gateway.ResolveDestination(entry.DestinationID)
		if !ok {
			r.log.Warn().
				Str("community", entry.CommunityID).
				Str("destination", entry.DestinationID).
				Msg("destination no longer resolves, skipping")
			continue
		}
		r.registry.Set(entry.CommunityID, entry.DestinationID)
		restored++
		r.log.Info().
			Str("community", entry.CommunityID).
			Str("destination", entry.DestinationID).
			Str("channel", dest.Name).
			Msg("registered destination")
	}

	r.log.Info().Int("restored", restored).Msg("routing state reconciled")
	return restored
}
