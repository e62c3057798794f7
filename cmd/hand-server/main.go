package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"hand-forge/internal/app/session"
	"hand-forge/internal/config"
	"hand-forge/internal/logging"
	"hand-forge/internal/parse"
	"hand-forge/internal/store"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	st, err := store.New(cfg.Server.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := st.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}
	if err := st.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	sessions := session.NewService(time.Duration(cfg.Server.SessionIdleMins) * time.Minute)
	sessions.StartJanitor(ctx, time.Duration(cfg.Server.SessionSweepSecs)*time.Second)

	parser := parse.NewClient(cfg.Parser)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           newRouter(st, sessions, parser, cfg.Server),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		<-ctx.Done()
		grace := time.Duration(cfg.Server.ShutdownGraceSecs) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server stopped")
	}
	st.Close()
}
