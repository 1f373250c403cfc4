package infrastructure

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

// StaticRenderer loads pages over plain HTTP without running scripts
type StaticRenderer struct {
	client         *http.Client
	userAgent      string
	acceptLanguage string
	config         domain.BrowserConfig
	logger         *zap.Logger
}

// NewStaticRenderer creates a static renderer
func NewStaticRenderer(config *domain.Config, client *http.Client, logger *zap.Logger) *StaticRenderer {
	if client == nil {
		client = &http.Client{}
	}
	return &StaticRenderer{
		client:         client,
		userAgent:      config.Browser.UserAgent,
		acceptLanguage: config.Fallback.AcceptLanguage,
		config:         config.Browser,
		logger:         logger,
	}
}

// Open fetches pageURL and parses it
func (r *StaticRenderer) Open(ctx context.Context, pageURL string) (domain.Page, error) {
	if r.config.NavigationTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.NavigationTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if r.acceptLanguage != "" {
		req.Header.Set("Accept-Language", r.acceptLanguage)
	}

	r.logger.Debug("Loading page", zap.String("url", pageURL))

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to load page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to load page: HTTP %d", resp.StatusCode)
	}

	return NewStaticPage(resp.Body, resp.Request.URL.String())
}

// Close is a no-op
func (r *StaticRenderer) Close() error {
	return nil
}

// StaticPage is a parsed HTML document
type StaticPage struct {
	doc  *goquery.Document
	base *url.URL
}

// NewStaticPage parses html; relative src and href values resolve against baseURL
func NewStaticPage(html io.Reader, baseURL string) (*StaticPage, error) {
	doc, err := goquery.NewDocumentFromReader(html)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}
	return &StaticPage{doc: doc, base: base}, nil
}

// Properties returns attribute values; currentSrc falls back to the first source child
func (p *StaticPage) Properties(ctx context.Context, selector, name string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	values := []string{}
	p.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		values = append(values, p.property(s, name))
	})
	return values, nil
}

func (p *StaticPage) property(s *goquery.Selection, name string) string {
	switch name {
	case "currentSrc":
		if v := p.resolve(s.AttrOr("src", "")); v != "" {
			return v
		}
		return p.resolve(s.Find("source").First().AttrOr("src", ""))
	case "src", "href":
		return p.resolve(s.AttrOr(name, ""))
	}
	return s.AttrOr(name, "")
}

func (p *StaticPage) resolve(ref string) string {
	if ref == "" || p.base == nil {
		return ref
	}
	u, err := p.base.Parse(ref)
	if err != nil {
		return ref
	}
	return u.String()
}

// TextContents returns the text of every matching element
func (p *StaticPage) TextContents(ctx context.Context, selector string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	texts := []string{}
	p.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, s.Text())
	})
	return texts, nil
}

// Close is a no-op
func (p *StaticPage) Close() error {
	return nil
}
