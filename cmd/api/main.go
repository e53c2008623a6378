package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ewilliams-labs/seekwave/internal/adapters/preview"
	"github.com/ewilliams-labs/seekwave/internal/adapters/rest"
	"github.com/ewilliams-labs/seekwave/internal/adapters/spotify"
	"github.com/ewilliams-labs/seekwave/internal/adapters/sqlite"
	"github.com/ewilliams-labs/seekwave/internal/config"
	"github.com/ewilliams-labs/seekwave/internal/core/domain"
	"github.com/ewilliams-labs/seekwave/internal/core/services"
	"github.com/ewilliams-labs/seekwave/internal/worker"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}
	if cfg.Spotify.ClientID == "" || cfg.Spotify.ClientSecret == "" {
		log.Fatal("FATAL: SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Driven adapters
	store, err := sqlite.NewAdapter(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	defer store.Close()

	spotifyClient := spotify.NewClient(ctx, spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		BaseURL:      cfg.Spotify.APIURL,
		TokenURL:     cfg.Spotify.TokenURL,
		MaxRetries:   cfg.Spotify.MaxRetries,
		RetryBackoff: cfg.Spotify.RetryBackoff(),
	}, store)

	previewAnalyzer := preview.NewAnalyzer(nil, cfg.Preview.Window())

	// 3. Core
	svc := services.NewOrchestrator(spotifyClient, store, previewAnalyzer, domain.RenderParameters{
		Width:  cfg.Waveform.Width,
		Height: cfg.Waveform.Height,
		Color:  cfg.Waveform.Color,
	})

	pool := worker.NewPool(svc, cfg.Prefetch.Workers, cfg.Prefetch.Queue)
	pool.Start()
	defer pool.Stop()

	// 4. Driving adapter
	handler := rest.NewHandler(svc, pool)

	log.Println("------------------------------------------------")
	log.Printf("🌊 Seekwave API is running on http://localhost%s", cfg.Addr())
	log.Println("------------------------------------------------")

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Printf("server error: %v", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}
}
