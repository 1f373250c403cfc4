package extractor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

const (
	htmlAccept   = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	maxHTMLBytes = 16 << 20
)

// Tried in order against the raw page source.
var rawVideoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"video_url":"([^"]+)"`),
	regexp.MustCompile(`"url":"([^"]+\.mp4[^"]*)"`),
	regexp.MustCompile(`<meta property="og:video" content="([^"]+)"`),
}

// RawHTMLStrategy fetches the pin page again without a browser and scans its source
type RawHTMLStrategy struct {
	client         *http.Client
	userAgent      string
	acceptLanguage string
	timeout        time.Duration
	logger         *zap.Logger
}

// NewRawHTMLStrategy creates a raw HTML strategy
func NewRawHTMLStrategy(client *http.Client, userAgent string, config domain.FallbackConfig, logger *zap.Logger) *RawHTMLStrategy {
	if client == nil {
		client = http.DefaultClient
	}
	return &RawHTMLStrategy{
		client:         client,
		userAgent:      userAgent,
		acceptLanguage: config.AcceptLanguage,
		timeout:        config.Timeout,
		logger:         logger,
	}
}

// Name returns the strategy name
func (s *RawHTMLStrategy) Name() string {
	return "raw-html"
}

// Extract never fails; fetch errors are logged and reported as nothing found
func (s *RawHTMLStrategy) Extract(ctx context.Context, _ domain.Page, pinURL string) (*domain.MediaCandidate, error) {
	body, err := s.fetch(ctx, pinURL)
	if err != nil {
		s.logger.Warn("Fallback extraction failed", zap.String("url", pinURL), zap.Error(err))
		return nil, nil
	}

	if url := MatchVideoURL(body); url != "" {
		return &domain.MediaCandidate{URL: url, Kind: domain.MediaVideo}, nil
	}
	return nil, nil
}

func (s *RawHTMLStrategy) fetch(ctx context.Context, pinURL string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pinURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", htmlAccept)
	if s.acceptLanguage != "" {
		req.Header.Set("Accept-Language", s.acceptLanguage)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxHTMLBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(body), nil
}

// MatchVideoURL returns the first pattern match in html, normalised
func MatchVideoURL(html string) string {
	for _, re := range rawVideoPatterns {
		if m := re.FindStringSubmatch(html); m != nil && m[1] != "" {
			return NormalizeEscapedURL(m[1])
		}
	}
	return ""
}

// NormalizeEscapedURL undoes JSON escaping of slashes
func NormalizeEscapedURL(u string) string {
	u = strings.ReplaceAll(u, `\u002F`, "/")
	return strings.ReplaceAll(u, `\`, "")
}
