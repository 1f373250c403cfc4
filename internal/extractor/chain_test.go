package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

func TestChain_StopsAtFirstCandidate(t *testing.T) {
	first := &countingStrategy{name: "first"}
	second := &countingStrategy{name: "second", candidate: &domain.MediaCandidate{URL: "https://v.pinimg.com/a.mp4"}}
	third := &countingStrategy{name: "third", candidate: &domain.MediaCandidate{URL: "https://v.pinimg.com/b.mp4"}}

	chain := NewChain(zap.NewNop(), first, second, third)
	candidate, err := chain.Extract(context.Background(), &fakePage{}, "https://www.pinterest.com/pin/1/")

	require.NoError(t, err)
	require.NotNil(t, candidate)
	assert.Equal(t, "https://v.pinimg.com/a.mp4", candidate.URL)
	assert.Equal(t, domain.MediaVideo, candidate.Kind)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 0, third.calls)
}

func TestChain_SkipsEphemeralCandidates(t *testing.T) {
	blob := &countingStrategy{name: "blob", candidate: &domain.MediaCandidate{URL: "blob:https://www.pinterest.com/x"}}
	usable := &countingStrategy{name: "real", candidate: &domain.MediaCandidate{URL: "https://v.pinimg.com/a.mp4"}}

	candidate, err := NewChain(zap.NewNop(), blob, usable).Extract(context.Background(), &fakePage{}, "")

	require.NoError(t, err)
	require.NotNil(t, candidate)
	assert.Equal(t, "https://v.pinimg.com/a.mp4", candidate.URL)
}

func TestChain_NothingFound(t *testing.T) {
	candidate, err := NewChain(zap.NewNop(), &countingStrategy{name: "a"}, &countingStrategy{name: "b"}).
		Extract(context.Background(), &fakePage{}, "")

	assert.NoError(t, err)
	assert.Nil(t, candidate)
}

func TestChain_PropagatesFaults(t *testing.T) {
	broken := &countingStrategy{name: "broken", err: errors.New("page crashed")}
	next := &countingStrategy{name: "next"}

	_, err := NewChain(zap.NewNop(), broken, next).Extract(context.Background(), &fakePage{}, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken strategy failed")
	assert.Equal(t, 0, next.calls)
}

func TestChain_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := &countingStrategy{name: "a"}

	_, err := NewChain(zap.NewNop(), s).Extract(ctx, &fakePage{}, "")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, s.calls)
}

func TestVideoChain_DOMHitSkipsLaterStrategies(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"video_url":"https://v.pinimg.com/fallback.mp4"}`))
	}))
	defer server.Close()

	page := &fakePage{
		properties: map[string][]string{
			key("video", "src"): {"https://v.pinimg.com/videos/720p/a.mp4"},
		},
		texts: map[string][]string{
			embeddedDataSelector: {`{"video_url":"https://v.pinimg.com/embedded.mp4"}`},
		},
	}

	chain := NewVideoChain(domain.DefaultConfig(), server.Client(), zap.NewNop())
	assert.Equal(t, []string{"dom", "embedded-data", "raw-html"}, chain.Strategies())

	candidate, err := chain.Extract(context.Background(), page, server.URL+"/pin/1/")
	require.NoError(t, err)
	require.NotNil(t, candidate)
	assert.Equal(t, "https://v.pinimg.com/videos/720p/a.mp4", candidate.URL)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestVideoChain_FallsBackToRawHTML(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`<html><meta property="og:video" content="https://v.pinimg.com/og.mp4"></html>`))
	}))
	defer server.Close()

	page := &fakePage{
		properties: map[string][]string{
			key("video", "src"): {"blob:https://www.pinterest.com/123"},
		},
		texts: map[string][]string{
			embeddedDataSelector: {`{not json`, `{"title":"no video here"}`},
		},
	}

	candidate, err := NewVideoChain(domain.DefaultConfig(), server.Client(), zap.NewNop()).
		Extract(context.Background(), page, server.URL+"/pin/1/")

	require.NoError(t, err)
	require.NotNil(t, candidate)
	assert.Equal(t, "https://v.pinimg.com/og.mp4", candidate.URL)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}
