package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sheetledger/internal/api/handlers"
	"sheetledger/internal/api/middleware"
	"sheetledger/internal/config"
	"sheetledger/internal/ledger"
	"sheetledger/internal/logger"
	"sheetledger/internal/store/sheets"
)

func main() {
	cfg := config.Load()

	// Parse command-line flags
	var (
		addr = flag.String("addr", cfg.HTTPAddress, "HTTP listen address")
	)
	flag.Parse()

	// Initialize logger
	log := logger.New()

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if cfg.SpreadsheetID == "" {
		log.Warn().Msg("No SPREADSHEET_ID configured - record writes will fail until it is set")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("Failed to load timezone")
	}

	ctx := context.Background()

	client, err := sheets.NewClient(ctx, sheets.Options{
		SpreadsheetID:   cfg.SpreadsheetID,
		CredentialsJSON: cfg.CredentialsJSON,
		CredentialsFile: cfg.CredentialsFile,
		OAuthClientFile: cfg.OAuthClientFile,
		OAuthTokenFile:  cfg.OAuthTokenFile,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create sheets client")
	}

	norm := ledger.NewNormalizer(time.Now, loc)
	svc := ledger.NewService(client, cfg.SheetName, norm, logger.WithComponent(log, "ledger"))

	// Initialize handlers
	recordsHandler := handlers.NewRecordsHandler(svc, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/records", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			recordsHandler.SubmitRecord(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/sheet/init", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			recordsHandler.InitSheet(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", *addr).Str("sheet", cfg.SheetName).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
