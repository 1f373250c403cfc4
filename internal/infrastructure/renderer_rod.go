package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

const (
	propertiesJS = `(selector, name) => Array.from(document.querySelectorAll(selector)).map(e => {
		const v = e[name];
		return typeof v === 'string' ? v : (e.getAttribute(name) || '');
	})`

	textContentsJS = `(selector) => Array.from(document.querySelectorAll(selector)).map(e => e.textContent || '')`
)

// RodRenderer renders pages in a headless Chromium controlled over CDP.
// One browser serves every page; pages may be opened concurrently.
type RodRenderer struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	config   domain.BrowserConfig
	logger   *zap.Logger
}

// NewRodRenderer launches the browser
func NewRodRenderer(config domain.BrowserConfig, logger *zap.Logger) (*RodRenderer, error) {
	l := launcher.New().
		Headless(config.Headless).
		NoSandbox(config.NoSandbox).
		Set("disable-gpu").
		Set("disable-dev-shm-usage")
	if config.BinPath != "" {
		l = l.Bin(config.BinPath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}

	logger.Info("Browser started",
		zap.Bool("headless", config.Headless),
		zap.String("bin", config.BinPath))

	return &RodRenderer{
		browser:  browser,
		launcher: l,
		config:   config,
		logger:   logger,
	}, nil
}

// Open creates a tab, navigates to pageURL and waits for the page to settle
func (r *RodRenderer) Open(ctx context.Context, pageURL string) (domain.Page, error) {
	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	if err := r.prepare(ctx, page, pageURL); err != nil {
		page.Close()
		return nil, err
	}
	return &rodPage{page: page}, nil
}

func (r *RodRenderer) prepare(ctx context.Context, page *rod.Page, pageURL string) error {
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: r.config.UserAgent}); err != nil {
		return fmt.Errorf("failed to set user agent: %w", err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             r.config.ViewportWidth,
		Height:            r.config.ViewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return fmt.Errorf("failed to set viewport: %w", err)
	}

	navCtx := ctx
	if r.config.NavigationTimeout > 0 {
		var cancel context.CancelFunc
		navCtx, cancel = context.WithTimeout(ctx, r.config.NavigationTimeout)
		defer cancel()
	}

	r.logger.Debug("Navigating", zap.String("url", pageURL))

	nav := page.Context(navCtx)
	if err := nav.Navigate(pageURL); err != nil {
		return fmt.Errorf("failed to navigate: %w", err)
	}
	if err := nav.WaitLoad(); err != nil {
		return fmt.Errorf("failed to wait for page load: %w", err)
	}

	if r.config.SettleDelay > 0 {
		timer := time.NewTimer(r.config.SettleDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// Close shuts the browser down
func (r *RodRenderer) Close() error {
	err := r.browser.Close()
	r.launcher.Cleanup()
	return err
}

type rodPage struct {
	page *rod.Page
}

func (p *rodPage) Properties(ctx context.Context, selector, name string) ([]string, error) {
	return p.evalStrings(ctx, propertiesJS, selector, name)
}

func (p *rodPage) TextContents(ctx context.Context, selector string) ([]string, error) {
	return p.evalStrings(ctx, textContentsJS, selector)
}

func (p *rodPage) evalStrings(ctx context.Context, js string, args ...interface{}) ([]string, error) {
	obj, err := p.page.Context(ctx).Eval(js, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query page: %w", err)
	}

	items := obj.Value.Arr()
	values := make([]string, 0, len(items))
	for _, item := range items {
		values = append(values, item.Str())
	}
	return values, nil
}

func (p *rodPage) Close() error {
	return p.page.Close()
}
