package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/dkeye/VoiceClient/internal/adapters/http"
	signalsvc "github.com/dkeye/VoiceClient/internal/adapters/signal"
	"github.com/dkeye/VoiceClient/internal/app"
	"github.com/dkeye/VoiceClient/internal/app/orch"
	"github.com/dkeye/VoiceClient/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, keeping info")
	}

	configs := app.NewConfigStore(cfg.Session, app.DefaultHistoryLimit)
	svc := signalsvc.NewService(signalsvc.Options{
		URL:        cfg.ServerURL,
		ICEServers: cfg.ICEServers,
		PingPeriod: cfg.PingPeriod,
		ReadLimit:  cfg.ReadLimit,
	})
	session := orch.NewSessionController(svc, configs, app.NewNotifier(), orch.Options{
		AutoPublish:    cfg.AutoPublish,
		Screen:         cfg.ScreenShare,
		ReleaseTimeout: cfg.RequestTimeout,
	})

	r := router.SetupRouter(ctx, cfg, session, configs)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Str("server", cfg.ServerURL).Msg("Voice client started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := session.Leave(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("leave on shutdown")
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Client exited gracefully")
}
