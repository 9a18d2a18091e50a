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

	handlers "github.com/de-tools/report-atlas/pkg/handlers/blocks"
	atlasmiddleware "github.com/de-tools/report-atlas/pkg/server/middleware"
	"github.com/de-tools/report-atlas/pkg/store/artifact"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

type Dependencies struct {
	ServiceFactory handlers.ServiceFactory
	OutputDir      string
	Publisher      artifact.Store
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	blockHandler := handlers.NewHandler(
		config.Dependencies.ServiceFactory,
		config.Dependencies.OutputDir,
		config.Dependencies.Publisher,
	)

	router := chi.NewRouter()

	router.Use(atlasmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1/blocks", func(r chi.Router) {
		r.Post("/cached-report", blockHandler.GetCachedReport)
		r.Get("/cached-periods", blockHandler.GetCachedPeriods)
		r.Get("/predefined-questions", blockHandler.GetPredefinedQuestions)
		r.Post("/report-summary", blockHandler.GenerateReportSummary)
		r.Post("/render/markdown", blockHandler.RenderMarkdown)
		r.Post("/render/periods-markdown", blockHandler.RenderPeriodsMarkdown)
		r.Post("/render/pdf", blockHandler.RenderPdf)
	})

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
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

		// Give in-flight block invocations a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
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
