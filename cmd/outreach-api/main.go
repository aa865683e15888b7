// main is the entry point of the Outreach API — the combined donation
// intake, scholarship application, and signup/login service.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Connect to (and set up) the SQLite database
//  4. Prepare the upload content directory
//  5. Register all HTTP routes
//  6. Start the HTTP server in a separate goroutine
//  7. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  8. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/outreach-api --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/outreach-api
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/karuna-foundation/outreach-api/internal/config"
	"github.com/karuna-foundation/outreach-api/internal/http/handlers/auth"
	"github.com/karuna-foundation/outreach-api/internal/http/handlers/donation"
	"github.com/karuna-foundation/outreach-api/internal/http/handlers/health"
	"github.com/karuna-foundation/outreach-api/internal/http/handlers/scholarship"
	"github.com/karuna-foundation/outreach-api/internal/storage/sqlite"
	"github.com/karuna-foundation/outreach-api/internal/upload"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	// MustLoad reads the YAML config and fatals if anything is wrong.
	// If this returns, the config is guaranteed valid.
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)

	log.Info("starting outreach-api",
		slog.String("env", cfg.Env),
		slog.String("version", "1.0.0"),
	)

	// ── 3. Initialise Storage (Database) ──────────────────────────────────
	// The handlers only ever see the storage.Storage interface; the
	// concrete SQLite gateway is constructed here and injected below.
	storage, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised",
		slog.String("path", cfg.StoragePath))

	// ── 4. Prepare Upload Store ───────────────────────────────────────────
	// Creates the content directory if it does not exist and owns the
	// attachment type/size rules. Injected into the scholarship handler.
	uploads, err := upload.New(cfg.UploadDir)
	if err != nil {
		log.Error("failed to initialise upload store",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	uploads.MaxSize = cfg.MaxUploadSize

	log.Info("upload store initialised",
		slog.String("dir", cfg.UploadDir))

	// ── 5. Register HTTP Routes ───────────────────────────────────────────
	// The handler packages export factories: called ONCE here with their
	// dependencies, they return the func the router invokes per request.
	//
	// Route table:
	//   POST /api/donate          → record a donation
	//   GET  /api/donations       → list donations
	//   POST /submit_application  → scholarship form + 5 attachments
	//   GET  /api/applications    → list applications
	//   POST /signup              → register a user
	//   POST /login               → verify credentials
	//   GET  /health              → liveness probe
	router := http.NewServeMux()

	router.HandleFunc("POST /api/donate", donation.New(storage))
	router.HandleFunc("GET /api/donations", donation.GetList(storage))
	router.HandleFunc("POST /submit_application", scholarship.New(storage, uploads))
	router.HandleFunc("GET /api/applications", scholarship.GetList(storage))
	router.HandleFunc("POST /signup", auth.Signup(storage))
	router.HandleFunc("POST /login", auth.Login(storage))
	router.HandleFunc("GET /health", health.New())

	// ── 6. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router,

		// Timeouts guard against slow-client attacks.
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 7. Start Server in a Goroutine ────────────────────────────────────
	// ListenAndServe blocks; running it here would keep the graceful-
	// shutdown code below from ever executing.
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ErrServerClosed is what Shutdown() makes ListenAndServe
		// return — expected, not an error.
		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 8. Wait for Shutdown Signal ───────────────────────────────────────
	// Buffered so the signal is not missed if main is briefly busy.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	// Give in-flight requests five seconds to finish.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
