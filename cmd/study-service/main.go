package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"study-backend/internal/api"
	"study-backend/internal/config"
	"study-backend/internal/platform/logger"
	"study-backend/internal/store"
)

func main() {
	dataDir := flag.String("data-dir", "", "Override STUDY_BACKEND_DATA_DIR")
	flag.Parse()

	log := logger.New("study-service")

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	log.Info().
		Str("data_dir", cfg.DataDir).
		Int("http_port", cfg.HTTPPort).
		Msg("Study service starting…")

	// -------- Document store ---------------
	fileStore, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Document store unavailable")
	}

	// -------- Router & Server --------------
	router := api.NewRouter(fileStore)
	server := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server…")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}
