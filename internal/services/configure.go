// Package services – ConfigService
//
// Configuration commands mutate the registry synchronously and persist
// through the config store asynchronously. The in-memory registry is the
// authority for live traffic: a failed store write is logged and counted
// but never rolls the mutation back, and the user-facing command still
// acknowledges.
package services

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/confessly/confession-relay/internal/domain"
	"github.com/confessly/confession-relay/internal/metrics"
	"github.com/confessly/confession-relay/internal/platform"
	"github.com/confessly/confession-relay/internal/registry"
	"github.com/confessly/confession-relay/internal/store"
)

// persistTimeout bounds each background store write.
const persistTimeout = 15 * time.Second

// ConfigService applies routing configuration changes.
type ConfigService struct {
	registry *registry.Registry
	store    store.Store
	gateway  platform.Gateway
	log      zerolog.Logger
}

// NewConfigService wires the configuration commands.
func NewConfigService(reg *registry.Registry, st store.Store, gw platform.Gateway, log zerolog.Logger) *ConfigService {
	return &ConfigService{
		registry: reg,
		store:    st,
		gateway:  gw,
		log:      log.With().Str("component", "config").Logger(),
	}
}

// Configure maps communityID to destinationID. The registry is updated
// before the store write is even issued, so confessions arriving while
// persistence is in flight already route to the new destination. An empty
// communityID means the command came from outside a community.
func (s *ConfigService) Configure(communityID, destinationID string) error {
	if communityID == "" {
		return ErrNotInCommunity
	}

	s.registry.Set(communityID, destinationID)
	s.persist("upsert", func(ctx context.Context) error {
		return s.store.Upsert(ctx, domain.RoutingEntry{
			CommunityID:   communityID,
			DestinationID: destinationID,
		})
	})

	s.log.Info().Str("community", communityID).Str("destination", destinationID).Msg("destination configured")
	return nil
}

// Remove clears the destination for a community. It acknowledges
// unconditionally — removing an unconfigured community is not an error —
// and also removes the persisted record, best-effort.
func (s *ConfigService) Remove(communityID string) {
	s.registry.Remove(communityID)
	s.persist("delete", func(ctx context.Context) error {
		return s.store.Delete(ctx, communityID)
	})
	s.log.Info().Str("community", communityID).Msg("destination removed")
}

// SetByID configures a destination from a raw channel identifier sent over
// DM. The id must parse as a numeric channel id and resolve to a visible
// channel; the owning community comes from the resolved channel.
func (s *ConfigService) SetByID(rawID string) (platform.Destination, error) {
	if _, err := strconv.ParseUint(rawID, 10, 64); err != nil {
		return platform.Destination{}, ErrInvalidDestination
	}
	dest, ok := s.gateway.ResolveDestination(rawID)
	if !ok || dest.CommunityID == "" {
		return platform.Destination{}, ErrInvalidDestination
	}

	if err := s.Configure(dest.CommunityID, dest.ID); err != nil {
		return platform.Destination{}, err
	}
	return dest, nil
}

// persist runs one store write in the background. Completion is observed
// only through logs and metrics; nothing waits on it.
func (s *ConfigService) persist(op string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			metrics.PersistenceFailures.WithLabelValues(op).Inc()
			s.log.Error().Err(err).Str("op", op).Msg("config store write failed")
			return
		}
		s.log.Debug().Str("op", op).Msg("config store write complete")
	}()
}
