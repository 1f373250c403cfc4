package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/internal/domain"
	"github.com/yourusername/pin-extract-go/internal/infrastructure"
)

// SweepReport summarizes one retention pass
type SweepReport struct {
	Removed []string `json:"removed"`
	Kept    int      `json:"kept"`
}

// Sweeper deletes downloaded files older than the retention period
type Sweeper struct {
	dir       string
	retention time.Duration
	interval  time.Duration
	repo      domain.DownloadRepository
	logger    *zap.Logger
	now       func() time.Time

	mu       sync.RWMutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewSweeper creates a sweeper for the downloads directory; repo is optional
func NewSweeper(config *domain.DownloadConfig, repo domain.DownloadRepository, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		dir:       config.Dir,
		retention: config.Retention,
		interval:  config.SweepInterval,
		repo:      repo,
		logger:    logger,
		now:       time.Now,
	}
}

// RunOnce removes expired files. A file that cannot be removed does not stop
// the pass; all failures are returned together.
func (s *Sweeper) RunOnce(ctx context.Context) (*SweepReport, error) {
	files, err := infrastructure.ListMediaFiles(s.dir)
	if err != nil {
		return nil, err
	}

	report := &SweepReport{Removed: []string{}}
	cutoff := s.now().Add(-s.retention)
	var result *multierror.Error

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			result = multierror.Append(result, err)
			break
		}

		if !file.Created.Before(cutoff) {
			report.Kept++
			continue
		}

		if err := os.Remove(file.Filepath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			result = multierror.Append(result, fmt.Errorf("failed to remove %s: %w", file.Filename, err))
			continue
		}
		report.Removed = append(report.Removed, file.Filename)
		s.logger.Info("Removed expired file",
			zap.String("filename", file.Filename),
			zap.Time("created", file.Created))

		if s.repo != nil {
			if _, err := s.repo.DeleteByFilePath(file.Filepath); err != nil {
				result = multierror.Append(result, fmt.Errorf("failed to delete history for %s: %w", file.Filename, err))
			}
		}
	}

	return report, result.ErrorOrNil()
}

// Start runs a pass immediately and then on every interval
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("sweeper already running")
	}
	if s.interval <= 0 {
		return fmt.Errorf("invalid sweep interval: %s", s.interval)
	}
	s.running = true
	s.stopChan = make(chan struct{})

	s.wg.Add(1)
	go s.loop(ctx, s.stopChan)

	s.logger.Info("Sweeper started",
		zap.String("dir", s.dir),
		zap.Duration("retention", s.retention),
		zap.Duration("interval", s.interval))
	return nil
}

// Stop stops the periodic sweep and waits for a pass in progress
func (s *Sweeper) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return fmt.Errorf("sweeper not running")
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Sweeper stopped")
	return nil
}

// IsRunning returns whether the periodic sweep is active
func (s *Sweeper) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Sweeper) loop(ctx context.Context, stop <-chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.sweep(ctx)

		select {
		case <-ctx.Done():
			s.mu.Lock()
			if s.stopChan == stop {
				s.running = false
			}
			s.mu.Unlock()
			s.logger.Info("Sweeper stopped", zap.Error(ctx.Err()))
			return
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	report, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("Sweep failed", zap.Error(err))
	}
	if report != nil && len(report.Removed) > 0 {
		s.logger.Info("Sweep completed",
			zap.Int("removed", len(report.Removed)),
			zap.Int("kept", report.Kept))
	}
}
