package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"shareit/config"
	"shareit/shared/constant"
	"shareit/transport/http/response"
	"shareit/transport/http/router"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

const (
	healthPath = "/health"
	healthOK   = "OK"
)

type HTTP struct {
	Config *config.Config
	Router router.Router

	state     atomic.Int32
	mux       *chi.Mux
	server    *http.Server
	setupOnce sync.Once
}

func New(cfg *config.Config, r router.Router) *HTTP {
	return &HTTP{
		Config: cfg,
		Router: r,
	}
}

func (h *HTTP) Serve() {
	h.setup()
	h.setupGracefulShutdown()

	log.Info().Str("port", h.Config.Server.Port).Msg("Starting up HTTP server.")

	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

// ServeHTTP lets the application run behind another server, such as a serverless entrypoint.
func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.setup()
	h.mux.ServeHTTP(w, r)
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

func (h *HTTP) setup() {
	h.setupOnce.Do(func() {
		h.mux = chi.NewRouter()
		h.Router.SetupRoutes(h.mux)
		h.mux.Get(healthPath, h.health)

		h.server = &http.Server{
			Addr:              net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
			Handler:           h.mux,
			ReadHeaderTimeout: 10 * time.Second,
		}

		h.state.Store(int32(ServerStateReady))
	})
}

// health reports 503 once shutdown starts so load balancers stop routing here.
func (h *HTTP) health(w http.ResponseWriter, _ *http.Request) {
	switch h.State() {
	case ServerStateReady:
		response.WithMessage(w, http.StatusOK, healthOK)
	case ServerStateInGracePeriod, ServerStateInCleanupPeriod:
		response.WithPreparingShutdown(w)
	default:
		response.WithUnhealthy(w)
	}
}

func (h *HTTP) setupGracefulShutdown() {
	serverStateCh := make(chan os.Signal, 1)

	signal.Notify(serverStateCh, os.Interrupt, syscall.SIGTERM)

	go h.respondToSigterm(serverStateCh)
}

func (h *HTTP) respondToSigterm(done chan os.Signal) {
	<-done

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")

		_ = h.server.Close()

		return
	}

	shutdownConfig := h.Config.Server.Shutdown

	log.Info().Msg("Received SIGTERM.")
	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.state.Store(int32(ServerStateInGracePeriod))

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.state.Store(int32(ServerStateInCleanupPeriod))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	if err := h.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to drain connections")
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")
}
