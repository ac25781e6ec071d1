// @title           Clientes API
// @version         1.0
// @description     Customer records keyed by DNI: create, search, update, soft delete, reactivate.
// @host            localhost:5002
// @BasePath        /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Clientes/internal/app"
	"Clientes/internal/config"
	"Clientes/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	_ "Clientes/docs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	l := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	l.Info().Str("driver", cfg.Store.Driver).Msg("config loaded, connecting to store...")

	application, err := app.New(cfg, l)
	if err != nil {
		l.Fatal().Err(err).Msg("app init")
	}
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	go func() {
		l.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	l.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("HTTP shutdown")
	}

	if err := application.Close(ctx); err != nil {
		l.Error().Err(err).Msg("store close")
	}
}
