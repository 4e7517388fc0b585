// Command bot runs the anonymous confession relay: it connects to the
// chat platform, rebuilds routing state from the config store, registers
// slash commands, and serves the internal ops listener until terminated.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/confessly/confession-relay/internal/audit"
	"github.com/confessly/confession-relay/internal/bot"
	"github.com/confessly/confession-relay/internal/config"
	httpapi "github.com/confessly/confession-relay/internal/http"
	"github.com/confessly/confession-relay/internal/observability"
	"github.com/confessly/confession-relay/internal/platform/discord"
	"github.com/confessly/confession-relay/internal/registry"
	"github.com/confessly/confession-relay/internal/services"
	"github.com/confessly/confession-relay/internal/store"
	"github.com/confessly/confession-relay/internal/store/local"
	"github.com/confessly/confession-relay/internal/store/rest"
	"github.com/confessly/confession-relay/internal/sysutil"
)

// version is stamped by the build; "dev" otherwise.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start the bot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := sysutil.NewLogger(cfg.LogPretty)
	sysutil.SetLogLevel(cfg.LogLevel)
	zlog.Logger = logger

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		return fmt.Errorf("setup tracing: %w", err)
	}
	defer func() {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := otelShutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("tracing shutdown failed")
		}
	}()

	st, err := openStore(cfg.Store)
	if err != nil {
		return fmt.Errorf("open config store: %w", err)
	}

	reg := registry.New()

	recorder := audit.NewRecorder(st, logger)
	go recorder.Run(ctx)

	gateway, err := discord.New(cfg.BotToken, logger)
	if err != nil {
		return err
	}

	confessions := services.NewConfessionService(reg, gateway, recorder, logger)
	configuration := services.NewConfigService(reg, st, gateway, logger)
	gateway.Bind(bot.NewHandler(confessions, configuration, logger))

	if err := gateway.Open(); err != nil {
		return err
	}
	defer func() {
		if err := gateway.Close(); err != nil {
			logger.Warn().Err(err).Msg("gateway close failed")
		}
	}()
	logger.Info().Str("version", version).Msg("bot is running")

	// Routing state must exist before traffic is meaningful; unresolvable
	// or unreachable records are reported inside, never fatal.
	services.NewReconciler(reg, st, gateway, logger).Reconcile(ctx)

	if err := gateway.RegisterCommands(); err != nil {
		logger.Warn().Err(err).Msg("slash command registration failed, text commands remain available")
	}

	var ops *httpapi.Ops
	var opsSrv *http.Server
	if cfg.Ops.Enabled {
		gin.SetMode(gin.ReleaseMode)
		ops = httpapi.NewOps(reg, st)
		opsSrv = &http.Server{
			Addr:              ":" + cfg.Ops.Port,
			Handler:           ops.Router(),
			ReadTimeout:       cfg.Ops.ReadTimeout,
			ReadHeaderTimeout: cfg.Ops.ReadHeaderTimeout,
			WriteTimeout:      cfg.Ops.WriteTimeout,
			IdleTimeout:       cfg.Ops.IdleTimeout,
		}
		go func() {
			logger.Info().Str("addr", opsSrv.Addr).Msg("ops listener started")
			if err := opsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("ops listener failed")
			}
		}()
		ops.MarkReady()
	}

	waitForSignal(logger)

	if opsSrv != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		if err := opsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("ops shutdown failed")
		}
	}
	return nil
}

// openStore picks the configured store driver.
func openStore(cfg config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.StoreDriverSQLite:
		return local.Open(cfg.SQLitePath)
	default:
		return rest.New(cfg.URL, cfg.APIKey, rest.WithRoutingTable(cfg.RoutingTable)), nil
	}
}

func waitForSignal(logger zerolog.Logger) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	logger.Info().Str("signal", s.String()).Msg("shutting down")
}
