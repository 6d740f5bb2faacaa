package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/coreybb/glucolog/api"
	"github.com/coreybb/glucolog/chart"
	"github.com/coreybb/glucolog/config"
	"github.com/coreybb/glucolog/datastore"
	rh "github.com/coreybb/glucolog/route-handlers"
	"github.com/coreybb/glucolog/web"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := loadConfig()

	readingRepo := datastore.NewReadingRepository(cfg.History.Path)
	trendRenderer := chart.NewTrendRenderer()

	readingHandler := rh.NewReadingHandler(readingRepo, cfg.History.PreviewLimit)
	pageHandler, err := web.NewPageHandler(readingRepo, trendRenderer, cfg.History.ChartWindow, cfg.History.PreviewLimit)
	if err != nil {
		log.Fatalf("Dashboard setup failed: %v", err)
	}

	router := api.SetupRoutes(readingHandler, pageHandler)

	log.Printf("History file: %s", readingRepo.Path())
	startServer(cfg.Server.Port, router)
}

// loadConfig reads the optional YAML config, then applies env overrides:
// GLUCOLOG_CONFIG selects the config file, PORT and HISTORY_FILE override
// individual settings.
func loadConfig() *config.Config {
	path := os.Getenv("GLUCOLOG_CONFIG")
	if path == "" {
		log.Println("GLUCOLOG_CONFIG not set, using default configuration")
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		parsed, err := strconv.Atoi(port)
		if err != nil {
			log.Fatalf("Invalid PORT value %q: %v", port, err)
		}
		cfg.Server.Port = parsed
	}
	if historyFile := os.Getenv("HISTORY_FILE"); historyFile != "" {
		cfg.History.Path = historyFile
	}

	return cfg
}

func startServer(port int, router http.Handler) {
	server := &http.Server{
		Addr:    ":" + strconv.Itoa(port),
		Handler: router,
	}

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %d", port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownSignal // Block until signal received
	log.Println("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Graceful shutdown failed: %v", err)
	}

	log.Println("Server gracefully stopped")
}
