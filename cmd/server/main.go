// Command server starts the scoreboard-sim HTTP service: the mock game
// simulation engine (spec §1-§5) exposed over the REST surface in spec
// §6, wrapped in the ambient stack described in SPEC_FULL.md.
package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgrantpete/scoreboard-sim/audit"
	"github.com/dgrantpete/scoreboard-sim/config"
	"github.com/dgrantpete/scoreboard-sim/handlers"
	"github.com/dgrantpete/scoreboard-sim/logging"
	"github.com/dgrantpete/scoreboard-sim/metrics"
	mw "github.com/dgrantpete/scoreboard-sim/middleware"
	"github.com/dgrantpete/scoreboard-sim/openapi"
	"github.com/dgrantpete/scoreboard-sim/simulation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("failed to load configuration: %v", err)
	}

	logging.Configure(logging.Config{
		Level:       cfg.Logging.Level,
		Output:      os.Stdout,
		EnableColor: cfg.Logging.EnableColor,
	})
	cfg.LogConfiguration()

	repo := simulation.NewGameRepository()

	if cfg.Audit.Enabled {
		auditLogger, err := audit.Open(cfg.Audit.SQLitePath)
		if err != nil {
			logging.Warnf("audit trail disabled: %v", err)
		} else {
			defer auditLogger.Close()
			repo.WithAuditSink(auditLogger)
		}
	}

	authMiddleware, err := mw.NewAuthMiddleware(cfg.Auth.SharedSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logging.Fatalf("failed to initialize auth middleware: %v", err)
	}

	m := metrics.New()
	repo.WithMetricsSink(m)

	doc, err := openapi.Load()
	if err != nil {
		logging.Fatalf("failed to load openapi document: %v", err)
	}

	router := handlers.NewRouter(cfg, repo, authMiddleware, m, doc)

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logging.Infof("server starting on %s", cfg.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logging.Info("shutting down")
}
