package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	aggregatehandlers "github.com/de-tools/impact-atlas/pkg/handlers/aggregate"
	analyticshandlers "github.com/de-tools/impact-atlas/pkg/handlers/analytics"
	orghandlers "github.com/de-tools/impact-atlas/pkg/handlers/org"
	reporthandlers "github.com/de-tools/impact-atlas/pkg/handlers/report"
	atlasmiddleware "github.com/de-tools/impact-atlas/pkg/server/middleware"
	"github.com/de-tools/impact-atlas/pkg/services/analytics"
	"github.com/de-tools/impact-atlas/pkg/services/ingest"
	"github.com/de-tools/impact-atlas/pkg/services/org"
	"github.com/de-tools/impact-atlas/pkg/services/report"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Dependencies struct {
	Aggregator *analytics.Aggregator
	Engine     *report.Engine
	Scheduler  *report.Scheduler
	Explorer   *org.Explorer
	Ingest     *ingest.Service
	Logger     zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	deps := config.Dependencies
	analyticsHandler := analyticshandlers.NewHandler(deps.Aggregator)
	reportHandler := reporthandlers.NewHandler(deps.Engine, deps.Scheduler)
	orgHandler := orghandlers.NewHandler(deps.Explorer)
	aggregateHandler := aggregatehandlers.NewHandler(deps.Aggregator, deps.Ingest)

	router := chi.NewRouter()

	router.Use(atlasmiddleware.Logger(&deps.Logger))
	router.Use(atlasmiddleware.Identity())
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/analytics/indicators/{indicator}/trends", analyticsHandler.IndicatorTrends)
		r.Get("/analytics/trends", analyticsHandler.BulkTrends)

		r.Post("/reports/{report}/generate", reportHandler.Generate)
		r.Get("/reports/{report}/download", reportHandler.Download)

		r.Post("/scheduled-reports", reportHandler.CreateScheduled)
		r.Get("/scheduled-reports", reportHandler.ListScheduled)

		r.Get("/aggregates/summary", aggregateHandler.Summary)
		r.Post("/aggregates/bulk", aggregateHandler.BulkCreate)

		r.Get("/organizations", orgHandler.List)
		r.Get("/organizations/{organization}/descendants", orgHandler.Descendants)
	})

	return router
}

type WebAPI struct {
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

func NewWebAPI(config Config) *WebAPI {
	logger := config.Dependencies.Logger
	timeout := config.ShutdownTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &WebAPI{
		logger:          &logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: ConfigureRouter(config),
		},
	}
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
