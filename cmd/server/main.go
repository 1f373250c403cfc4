package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/api"
	"github.com/yourusername/pin-extract-go/api/handlers"
	"github.com/yourusername/pin-extract-go/internal/app"
	"github.com/yourusername/pin-extract-go/pkg/logger"
)

var configPath = flag.String("config", "", "Config file (default ./configs/config.yaml or ~/.pin-extract/config.yaml)")

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := app.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Sync()

	// Categorized event logs (download, error)
	multiLog, err := logger.NewMultiLogger(logger.MultiLoggerConfig{
		Level:   config.Logging.Level,
		LogsDir: config.Logging.LogsDir,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize event logs: %w", err)
	}
	defer multiLog.Close()

	log.Info("Starting pin-extract server",
		zap.String("version", handlers.Version),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.String("engine", config.Browser.Engine),
		zap.String("downloads_dir", config.Download.Dir))

	rt, err := app.NewRuntime(config, multiLog, log)
	if err != nil {
		multiLog.LogAppError("Failed to start runtime", zap.Error(err))
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			log.Error("Failed to release resources", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := rt.Sweeper.Start(ctx); err != nil {
		return fmt.Errorf("failed to start sweeper: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := api.SetupRouter(api.RouterDeps{
		Service:      rt.Service,
		Repo:         rt.Repo,
		Sweeper:      rt.Sweeper,
		DownloadsDir: config.Download.Dir,
		LogsDir:      config.Logging.LogsDir,
		Logger:       log,
		Events:       multiLog,
	})

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("Received shutdown signal")
	case err := <-serveErr:
		log.Error("HTTP server failed", zap.Error(err))
		multiLog.LogAppError("HTTP server failed", zap.Error(err))
	}

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := rt.Sweeper.Stop(); err != nil {
		log.Error("Error stopping sweeper", zap.Error(err))
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}
