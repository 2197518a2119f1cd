// Package main provides the entry point for the conditional access
// simulation server
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ca-engine/go-core/internal/api/rest"
	"github.com/ca-engine/go-core/internal/audit"
	"github.com/ca-engine/go-core/internal/engine"
	"github.com/ca-engine/go-core/internal/gaps"
	"github.com/ca-engine/go-core/internal/metrics"
	"github.com/ca-engine/go-core/internal/policy"
)

var (
	// Version information (set at build time)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	var (
		httpPort        = flag.Int("http-port", 8080, "HTTP server port")
		policyDir       = flag.String("policy-dir", "", "Directory to load policies from")
		watchPolicies   = flag.Bool("watch", false, "Reload policies when the directory changes")
		sweepWorkers    = flag.Int("sweep-workers", 4, "Parallel workers for gap sweeps")
		traceEnabled    = flag.Bool("trace", true, "Include execution traces in evaluation results")
		auditFile       = flag.String("audit-file", "", "Audit log file (disabled when empty)")
		logLevel        = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		logFormat       = flag.String("log-format", "json", "Log format (json, console)")
		showVersion     = flag.Bool("version", false, "Show version information")
		gracefulTimeout = flag.Duration("shutdown-timeout", 30*time.Second, "Graceful shutdown timeout")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("ca-server %s\n", Version)
		fmt.Printf("  Build Time: %s\n", BuildTime)
		fmt.Printf("  Git Commit: %s\n", GitCommit)
		os.Exit(0)
	}

	logger, err := initLogger(*logLevel, *logFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting conditional access simulation server",
		zap.String("version", Version),
		zap.Int("http_port", *httpPort),
	)

	store := policy.NewMemoryStore()
	loader := policy.NewLoader(logger)

	if *policyDir != "" {
		count, err := loader.LoadIntoStore(*policyDir, store)
		if err != nil {
			logger.Fatal("Failed to load policies", zap.Error(err))
		}
		logger.Info("Policies loaded",
			zap.String("dir", *policyDir),
			zap.Int("count", count),
		)
	}

	m := metrics.New("ca_engine")

	engConfig := engine.DefaultConfig()
	engConfig.TraceEnabled = *traceEnabled
	engConfig.Metrics = m
	eng := engine.New(engConfig, logger)

	analyzer := gaps.NewAnalyzer(eng, logger, m)

	var auditLog audit.Writer = audit.NewNopWriter()
	if *auditFile != "" {
		auditLog, err = audit.NewFileWriter(*auditFile, 50, 30, 5)
		if err != nil {
			logger.Fatal("Failed to open audit log", zap.Error(err))
		}
	}
	defer auditLog.Close()

	srvConfig := rest.DefaultConfig()
	srvConfig.Port = *httpPort
	srvConfig.Metrics = m
	srvConfig.AuditLog = auditLog
	srvConfig.SweepWorkers = *sweepWorkers
	srvConfig.Version = Version

	srv, err := rest.New(srvConfig, eng, analyzer, store, logger)
	if err != nil {
		logger.Fatal("Failed to create REST server", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *watchPolicies && *policyDir != "" {
		watcher, err := policy.NewFileWatcher(*policyDir, store, loader, logger)
		if err != nil {
			logger.Fatal("Failed to create policy watcher", zap.Error(err))
		}
		if err := watcher.Watch(ctx); err != nil {
			logger.Fatal("Failed to start policy watcher", zap.Error(err))
		}
	}

	errChan := make(chan error, 1)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != http.ErrServerClosed {
			logger.Fatal("Server error", zap.Error(err))
		}
	case sig := <-sigChan:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), *gracefulTimeout)
		defer shutdownCancel()

		cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Shutdown error", zap.Error(err))
		}
	}

	logger.Info("Server stopped")
}

// initLogger initializes the zap logger
func initLogger(level, format string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	var config zap.Config
	if format == "console" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	return config.Build()
}
