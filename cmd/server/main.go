package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yehuda888/aicreatedapp/internal/adapter/driven/gateway/ws"
	handler "github.com/yehuda888/aicreatedapp/internal/adapter/driving/http"
	"github.com/yehuda888/aicreatedapp/internal/config"
	"github.com/yehuda888/aicreatedapp/internal/core/service"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	w := zerolog.ConsoleWriter{Out: os.Stdout}
	l := zerolog.New(w).With().Timestamp().Caller().Logger()
	log.Logger = l

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadWithDefaults(*configPath)
		if err != nil {
			l.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load config")
		}
		cfg = loaded
	}

	hub := ws.NewHub()

	callService := service.NewCallService(hub)
	relayService := service.NewRelayService(hub)
	h := handler.NewHandler(relayService, callService, hub, cfg)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: h.NewRouter(),
	}

	go func() {
		l.Info().Str("addr", cfg.Server.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	l.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		l.Error().Err(err).Msg("Server forced to shutdown")
	}

	hub.Stop()
	l.Info().Msg("Server exited")
}
