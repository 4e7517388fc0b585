// Package httpapi serves the internal ops listener: liveness and readiness
// probes, Prometheus metrics, and a read-only view of the live routing
// table. It is not a public API — no CORS, no rate limiting, no auth; the
// listener is expected to stay behind the deployment boundary.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/confessly/confession-relay/internal/http/middleware"
	"github.com/confessly/confession-relay/internal/registry"
	"github.com/confessly/confession-relay/internal/store"
)

// probeTimeout bounds the store connectivity check behind /readyz.
const probeTimeout = 5 * time.Second

// Ops is the ops endpoint surface.
type Ops struct {
	registry *registry.Registry
	store    store.Store
	ready    atomic.Bool
}

// NewOps builds the ops surface. MarkReady must be called once startup
// reconciliation finished and the gateway is connected.
func NewOps(reg *registry.Registry, st store.Store) *Ops {
	return &Ops{registry: reg, store: st}
}

// MarkReady flips the readiness probe to passing.
func (o *Ops) MarkReady() { o.ready.Store(true) }

// Router builds the Gin engine with the ops middleware stack and routes.
func (o *Ops) Router() *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())

	r.GET("/healthz", o.healthz)
	r.GET("/readyz", o.readyz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/api/v1/routing", o.routing)

	return r
}

// healthz reports process liveness.
func (o *Ops) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// readyz reports whether startup completed and the config store answers.
// The store probe uses the cheap "latest record" read; an empty store is
// still ready.
func (o *Ops) readyz(c *gin.Context) {
	if !o.ready.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "starting"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()
	if _, err := o.store.FetchLatest(ctx); err != nil && !errors.Is(err, store.ErrNotFound) {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("store probe failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "store unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// routingEntry is the wire shape of one live routing record.
type routingEntry struct {
	CommunityID   string `json:"community_id"`
	DestinationID string `json:"destination_id"`
}

// routing returns the in-memory routing table. This is the live state, not
// the persisted copy; the two can diverge briefly after a failed write.
func (o *Ops) routing(c *gin.Context) {
	entries := o.registry.All()
	out := make([]routingEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, routingEntry{
			CommunityID:   e.CommunityID,
			DestinationID: e.DestinationID,
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "entries": out})
}
