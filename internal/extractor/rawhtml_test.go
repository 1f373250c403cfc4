package extractor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

func TestMatchVideoURL(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"video_url first", `{"url":"https://v/a.mp4"},{"video_url":"https://v/b.mp4"}`, "https://v/b.mp4"},
		{"mp4 url", `{"url":"https://www.pinterest.com/"},{"url":"https://v/a.mp4?x=1"}`, "https://v/a.mp4?x=1"},
		{"og video", `<meta property="og:video" content="https://v/og.mp4">`, "https://v/og.mp4"},
		{"escaped slashes", `"video_url":"https:\/\/v.pinimg.com\/a.mp4"`, "https://v.pinimg.com/a.mp4"},
		{"nothing", `<html><body>nothing</body></html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchVideoURL(tt.html))
		})
	}
}

func TestNormalizeEscapedURL(t *testing.T) {
	assert.Equal(t, "https://v.pinimg.com/a.mp4", NormalizeEscapedURL(`https:\u002F\u002Fv.pinimg.com\u002Fa.mp4`))
	assert.Equal(t, "https://v.pinimg.com/a.mp4", NormalizeEscapedURL(`https:\/\/v.pinimg.com\/a.mp4`))
}

func TestRawHTMLStrategy_SendsBrowserHeaders(t *testing.T) {
	headers := make(chan http.Header, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		w.Write([]byte(`"video_url":"https://v/a.mp4"`))
	}))
	defer server.Close()

	config := domain.DefaultConfig()
	s := NewRawHTMLStrategy(server.Client(), config.Browser.UserAgent, config.Fallback, zap.NewNop())

	candidate, err := s.Extract(context.Background(), nil, server.URL)
	require.NoError(t, err)
	require.NotNil(t, candidate)
	assert.Equal(t, "https://v/a.mp4", candidate.URL)

	got := <-headers
	assert.Equal(t, domain.DefaultUserAgent, got.Get("User-Agent"))
	assert.Equal(t, htmlAccept, got.Get("Accept"))
	assert.Equal(t, "es-ES,es;q=0.9,en;q=0.8", got.Get("Accept-Language"))
}

func TestRawHTMLStrategy_FailuresAreNotFound(t *testing.T) {
	notFound := httptest.NewServer(http.NotFoundHandler())
	defer notFound.Close()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer slow.Close()

	fallback := domain.FallbackConfig{Timeout: 50 * time.Millisecond}

	for _, url := range []string{notFound.URL, slow.URL, "http://127.0.0.1:1/unreachable"} {
		s := NewRawHTMLStrategy(nil, domain.DefaultUserAgent, fallback, zap.NewNop())
		candidate, err := s.Extract(context.Background(), nil, url)
		assert.NoError(t, err, url)
		assert.Nil(t, candidate, url)
	}
}
