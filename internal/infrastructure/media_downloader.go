package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

const partialSuffix = ".part"

// MediaDownloader streams media URLs into the downloads directory
type MediaDownloader struct {
	dir       string
	timeout   time.Duration
	userAgent string
	client    *http.Client
	logger    *zap.Logger
}

// NewMediaDownloader creates a downloader writing into dir, creating it when missing
func NewMediaDownloader(dir string, timeout time.Duration, userAgent string, client *http.Client, logger *zap.Logger) (*MediaDownloader, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create downloads directory: %w", err)
	}
	if client == nil {
		client = &http.Client{}
	}
	return &MediaDownloader{
		dir:       dir,
		timeout:   timeout,
		userAgent: userAgent,
		client:    client,
		logger:    logger,
	}, nil
}

// Dir returns the downloads directory
func (d *MediaDownloader) Dir() string {
	return d.dir
}

// Download fetches mediaURL into filename. The file only appears under its
// final name once fully written; on any failure nothing is left behind.
func (d *MediaDownloader) Download(ctx context.Context, mediaURL, filename string, onProgress domain.ProgressFunc) (*domain.DownloadedFile, error) {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid media URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedScheme, u.Scheme)
	}

	filename = filepath.Base(filename)
	if filename == "." || filename == string(filepath.Separator) {
		return nil, fmt.Errorf("invalid filename %q", filename)
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	d.logger.Info("Downloading media",
		zap.String("url", mediaURL),
		zap.String("filename", filename))

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, d.transferError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewHTTPStatusError(resp.StatusCode)
	}

	finalPath := filepath.Join(d.dir, filename)
	partPath := finalPath + partialSuffix

	file, err := os.Create(partPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	counter := &progressCounter{
		total:      resp.ContentLength,
		onProgress: onProgress,
		logger:     d.logger,
		lastLogged: -1,
	}
	written, copyErr := io.Copy(io.MultiWriter(file, counter), resp.Body)
	closeErr := file.Close()

	if err := firstError(copyErr, closeErr); err != nil {
		os.Remove(partPath)
		if copyErr != nil {
			return nil, d.transferError(ctx, copyErr)
		}
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	if resp.ContentLength >= 0 && written != resp.ContentLength {
		os.Remove(partPath)
		return nil, fmt.Errorf("incomplete download: got %d of %d bytes", written, resp.ContentLength)
	}

	if err := os.Rename(partPath, finalPath); err != nil {
		os.Remove(partPath)
		return nil, fmt.Errorf("failed to finalize file: %w", err)
	}

	d.logger.Info("Download completed",
		zap.String("filename", filename),
		zap.Int64("bytes", written))

	return &domain.DownloadedFile{
		Filename: filename,
		Filepath: finalPath,
		Size:     written,
	}, nil
}

func (d *MediaDownloader) transferError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.NewTimeoutError(err)
	}
	return fmt.Errorf("download failed: %w", err)
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// progressCounter reports every chunk and logs whole-percent steps
type progressCounter struct {
	received   int64
	total      int64
	onProgress domain.ProgressFunc
	logger     *zap.Logger
	lastLogged int
}

func (c *progressCounter) Write(p []byte) (int, error) {
	c.received += int64(len(p))
	progress := domain.DownloadProgress{BytesReceived: c.received, TotalBytes: c.total}

	if c.onProgress != nil {
		c.onProgress(progress)
	}
	if pct := progress.Percent(); pct >= 0 && int(pct) != c.lastLogged {
		c.lastLogged = int(pct)
		c.logger.Debug("Downloading", zap.String("percent", fmt.Sprintf("%.2f%%", pct)))
	}
	return len(p), nil
}
