package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/internal/domain"
	"github.com/yourusername/pin-extract-go/internal/extractor"
	"github.com/yourusername/pin-extract-go/internal/infrastructure"
	"github.com/yourusername/pin-extract-go/pkg/logger"
)

// PinService resolves a pin to its media and downloads it
type PinService struct {
	renderer    domain.Renderer
	videos      *extractor.Chain
	images      extractor.Strategy
	fetcher     domain.MediaFetcher
	repo        domain.DownloadRepository
	notifier    *infrastructure.NotificationService
	multiLogger *logger.MultiLogger
	logger      *zap.Logger
	now         func() time.Time
}

// NewPinService creates a new pin service. repo, notifier and multiLogger are optional.
func NewPinService(
	renderer domain.Renderer,
	videos *extractor.Chain,
	fetcher domain.MediaFetcher,
	repo domain.DownloadRepository,
	notifier *infrastructure.NotificationService,
	multiLogger *logger.MultiLogger,
	logger *zap.Logger,
) *PinService {
	return &PinService{
		renderer:    renderer,
		videos:      videos,
		images:      extractor.NewImageStrategy(),
		fetcher:     fetcher,
		repo:        repo,
		notifier:    notifier,
		multiLogger: multiLogger,
		logger:      logger,
		now:         time.Now,
	}
}

// Download runs one extraction and download. It never returns nil and never panics.
func (s *PinService) Download(ctx context.Context, pinURL string, onProgress domain.ProgressFunc) (result *domain.DownloadResult) {
	start := s.now()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Recovered from panic",
				zap.String("pin_url", pinURL),
				zap.Any("panic", r),
				zap.Stack("stack"))
			if s.multiLogger != nil {
				s.multiLogger.LogAppError("Panic during download",
					zap.String("pin_url", pinURL),
					zap.Any("panic", r))
			}
			result = domain.NewFailureResult(fmt.Errorf("panic: %v", r))
		}
		s.record(pinURL, result, s.now().Sub(start))
	}()

	if !domain.IsValidPinURL(pinURL) {
		s.logger.Warn("Rejected URL", zap.String("pin_url", pinURL))
		return domain.NewFailureResult(domain.ErrInvalidURL)
	}

	s.logger.Info("Processing pin", zap.String("pin_url", pinURL))

	candidate, err := s.resolve(ctx, pinURL)
	if err != nil {
		return s.fail(pinURL, err)
	}

	filename := candidate.Filename
	if filename == "" {
		filename = domain.GenerateFilename(candidate.Kind, s.now())
	}

	file, err := s.fetcher.Download(ctx, candidate.URL, filename, onProgress)
	if err != nil {
		return s.fail(pinURL, err)
	}

	return domain.NewSuccessResult(candidate, file)
}

// resolve finds the video, or the image when there is none. The page is
// released before returning.
func (s *PinService) resolve(ctx context.Context, pinURL string) (*domain.MediaCandidate, error) {
	page, err := s.renderer.Open(ctx, pinURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			s.logger.Warn("Failed to close page", zap.Error(err))
		}
	}()

	candidate, err := s.videos.Extract(ctx, page, pinURL)
	if err != nil {
		return nil, err
	}
	if candidate != nil {
		return candidate, nil
	}

	s.logger.Info("No video found, looking for an image", zap.String("pin_url", pinURL))

	candidate, err = s.images.Extract(ctx, page, pinURL)
	if err != nil {
		return nil, fmt.Errorf("%s strategy failed: %w", s.images.Name(), err)
	}
	if candidate == nil || domain.IsEphemeralURL(candidate.URL) {
		return nil, domain.ErrNoMedia
	}
	return candidate, nil
}

func (s *PinService) fail(pinURL string, err error) *domain.DownloadResult {
	result := domain.NewFailureResult(err)
	if result.Error == domain.KindNoMedia {
		s.logger.Info("No media on pin", zap.String("pin_url", pinURL))
	} else {
		s.logger.Error("Download failed",
			zap.String("pin_url", pinURL),
			zap.String("kind", result.Error),
			zap.Error(err))
	}
	return result
}

// record stores history and emits events; failures here never change the result
func (s *PinService) record(pinURL string, result *domain.DownloadResult, elapsed time.Duration) {
	if s.repo != nil {
		if err := s.repo.Create(domain.NewDownloadRecord(pinURL, result)); err != nil {
			s.logger.Warn("Failed to save download history", zap.Error(err))
		}
	}

	if s.multiLogger != nil {
		fields := []zap.Field{
			zap.String("pin_url", pinURL),
			zap.Duration("elapsed", elapsed),
		}
		if result.Success {
			s.multiLogger.LogDownloadEvent("download_completed", append(fields,
				zap.String("type", string(result.Type)),
				zap.String("file_path", result.Filepath),
				zap.String("media_url", result.MediaURL))...)
		} else {
			s.multiLogger.LogDownloadEvent("download_failed", append(fields,
				zap.String("error", result.Error),
				zap.String("message", result.Message))...)
		}
	}

	if s.notifier != nil {
		s.notifier.NotifyResult(pinURL, result)
	}
}
