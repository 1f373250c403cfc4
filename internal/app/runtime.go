package app

import (
	"fmt"
	"net/http"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/internal/domain"
	"github.com/yourusername/pin-extract-go/internal/extractor"
	"github.com/yourusername/pin-extract-go/internal/infrastructure"
	"github.com/yourusername/pin-extract-go/pkg/logger"
)

// Runtime holds the components shared by the CLI and the server
type Runtime struct {
	Config  *domain.Config
	Service *PinService
	Repo    domain.DownloadRepository // nil when history is disabled
	Sweeper *Sweeper

	renderer infrastructure.ClosableRenderer
	history  *infrastructure.SQLiteDownloadRepository
}

// NewRuntime wires the renderer, downloader, history and service from config.
// multiLogger is optional.
func NewRuntime(config *domain.Config, multiLogger *logger.MultiLogger, log *zap.Logger) (*Runtime, error) {
	client := &http.Client{}

	fetcher, err := infrastructure.NewMediaDownloader(
		config.Download.Dir,
		config.Download.Timeout,
		config.Browser.UserAgent,
		client,
		log,
	)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{Config: config}

	if config.History.Enabled {
		rt.history, err = infrastructure.NewSQLiteDownloadRepository(config.History.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open download history: %w", err)
		}
		rt.Repo = rt.history
	}

	rt.renderer, err = infrastructure.NewRenderer(config, client, log)
	if err != nil {
		rt.Close()
		return nil, err
	}

	notifier := infrastructure.NewNotificationService(&config.Notification, log)
	videos := extractor.NewVideoChain(config, client, log)

	rt.Service = NewPinService(rt.renderer, videos, fetcher, rt.Repo, notifier, multiLogger, log)
	rt.Sweeper = NewSweeper(&config.Download, rt.Repo, log)

	log.Debug("Runtime ready",
		zap.String("engine", config.Browser.Engine),
		zap.Strings("strategies", videos.Strategies()),
		zap.Bool("history", rt.history != nil))

	return rt, nil
}

// Close releases the renderer and the history database
func (rt *Runtime) Close() error {
	var result *multierror.Error
	if rt.renderer != nil {
		if err := rt.renderer.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to close renderer: %w", err))
		}
	}
	if rt.history != nil {
		if err := rt.history.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to close history: %w", err))
		}
	}
	return result.ErrorOrNil()
}
