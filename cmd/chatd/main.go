package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/notarialabs/intake/internal/audit"
	"github.com/notarialabs/intake/internal/catalog"
	"github.com/notarialabs/intake/internal/config"
	"github.com/notarialabs/intake/internal/conversation"
	"github.com/notarialabs/intake/internal/extract"
	"github.com/notarialabs/intake/internal/generate"
	"github.com/notarialabs/intake/internal/geo"
	"github.com/notarialabs/intake/internal/server"
	"github.com/notarialabs/intake/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Contract catalog
	cat, err := catalog.Load(cfg.Intake.Catalogo.Path)
	if err != nil {
		log.Fatalf("Failed to load contract catalog: %v", err)
	}

	// Persistence
	st, err := store.Open(cfg.Intake.Store.Path)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	// Address lookup is optional; extraction falls back to the textual
	// address when it is disabled or unreachable.
	var geocoder extract.Geocoder
	if cfg.Intake.Geo.Enabled {
		geocoder = geo.NewClient(cfg.Intake.Geo.Endpoint, cfg.GeoTimeout())
	}

	registry := extract.NewRegistry(geocoder)
	formalizer := generate.NewService(registry, cat, st)
	if cfg.Intake.Store.AuditPath != "" {
		auditor := audit.New(cfg.Intake.Store.AuditPath)
		defer auditor.Close()
		formalizer.Audit = auditor
	}
	engine := conversation.NewEngine(cat, formalizer)

	srv := server.New(cfg, st, engine, registry, cat).HTTPServer()

	go func() {
		log.Printf("Starting chat intake service on %s", cfg.Intake.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
