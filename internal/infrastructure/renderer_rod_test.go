package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

// Needs a local Chromium; run with PINEXTRACT_ROD_TEST=1
func TestRodRenderer_Open(t *testing.T) {
	if os.Getenv("PINEXTRACT_ROD_TEST") == "" {
		t.Skip("PINEXTRACT_ROD_TEST not set")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pinFixture))
	}))
	defer server.Close()

	config := domain.DefaultConfig().Browser
	config.SettleDelay = 100 * time.Millisecond
	renderer, err := NewRodRenderer(config, zap.NewNop())
	require.NoError(t, err)
	defer renderer.Close()

	page, err := renderer.Open(context.Background(), server.URL+"/pin/1/")
	require.NoError(t, err)
	defer page.Close()

	og, err := page.Properties(context.Background(), `meta[property="og:video"]`, "content")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://v.pinimg.com/og.mp4"}, og)

	scripts, err := page.TextContents(context.Background(), `script[type="application/json"]`)
	require.NoError(t, err)
	assert.Len(t, scripts, 1)
}
