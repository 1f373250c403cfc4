package app

import (
	"context"
	"net/http"
	"net/url"

	"github.com/stretchr/testify/mock"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Open(ctx context.Context, pageURL string) (domain.Page, error) {
	args := m.Called(ctx, pageURL)
	page, _ := args.Get(0).(domain.Page)
	return page, args.Error(1)
}

type mockPage struct {
	mock.Mock
}

func (m *mockPage) Properties(ctx context.Context, selector, name string) ([]string, error) {
	args := m.Called(ctx, selector, name)
	values, _ := args.Get(0).([]string)
	return values, args.Error(1)
}

func (m *mockPage) TextContents(ctx context.Context, selector string) ([]string, error) {
	args := m.Called(ctx, selector)
	values, _ := args.Get(0).([]string)
	return values, args.Error(1)
}

func (m *mockPage) Close() error {
	return m.Called().Error(0)
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) Download(ctx context.Context, mediaURL, filename string, onProgress domain.ProgressFunc) (*domain.DownloadedFile, error) {
	args := m.Called(ctx, mediaURL, filename, onProgress)
	file, _ := args.Get(0).(*domain.DownloadedFile)
	return file, args.Error(1)
}

func (m *mockFetcher) Dir() string {
	return "/downloads"
}

// redirectTransport sends every request to a test server, keeping the path
type redirectTransport struct {
	target *url.URL
	base   http.RoundTripper
}

func (t *redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.URL.Scheme = t.target.Scheme
	clone.URL.Host = t.target.Host
	clone.Host = t.target.Host
	return t.base.RoundTrip(clone)
}
