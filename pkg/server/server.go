package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	dashboardhandlers "github.com/tawsil-ops/ops-atlas/pkg/handlers/dashboard"
	treasuryhandlers "github.com/tawsil-ops/ops-atlas/pkg/handlers/treasury"
	opsatlasmiddleware "github.com/tawsil-ops/ops-atlas/pkg/server/middleware"
	"github.com/tawsil-ops/ops-atlas/pkg/services/analytics"
	"github.com/tawsil-ops/ops-atlas/pkg/services/transfer"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Engine   *analytics.Engine
	Composer *transfer.Composer
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config.Dependencies)

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func ConfigureRouter(logger zerolog.Logger, deps Dependencies) *chi.Mux {
	dashboardHandler := dashboardhandlers.NewHandler(deps.Engine)
	treasuryHandler := treasuryhandlers.NewHandler(deps.Engine, deps.Composer)

	router := chi.NewRouter()

	router.Use(opsatlasmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard/summary", dashboardHandler.GetSummary)
		r.Get("/dashboard/revenue-evolution", dashboardHandler.GetRevenueEvolution)
		r.Get("/treasury/evolution", treasuryHandler.GetEvolution)
		r.Post("/treasury/transfers/preview", treasuryHandler.PreviewTransfer)
		r.Post("/treasury/transfers", treasuryHandler.SubmitTransfer)
	})

	return router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
