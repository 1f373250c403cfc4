package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

func runtimeConfig(t *testing.T) *domain.Config {
	config := domain.DefaultConfig()
	dir := t.TempDir()
	config.Download.Dir = filepath.Join(dir, "downloads")
	config.History.DatabasePath = filepath.Join(dir, "history.db")
	config.Browser.Engine = domain.EngineStatic
	return config
}

func TestNewRuntime_WithHistory(t *testing.T) {
	rt, err := NewRuntime(runtimeConfig(t), nil, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { rt.Close() })

	assert.NotNil(t, rt.Service)
	assert.NotNil(t, rt.Sweeper)
	require.NotNil(t, rt.Repo)
	assert.DirExists(t, rt.Config.Download.Dir)

	result := rt.Service.Download(context.Background(), "not a url", nil)
	assert.Equal(t, domain.KindInvalidURL, result.Error)

	records, err := rt.Repo.FindAll(0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestNewRuntime_HistoryDisabled(t *testing.T) {
	config := runtimeConfig(t)
	config.History.Enabled = false

	rt, err := NewRuntime(config, nil, zap.NewNop())
	require.NoError(t, err)
	defer rt.Close()

	assert.Nil(t, rt.Repo)
	assert.NoFileExists(t, config.History.DatabasePath)
}

func TestNewRuntime_UnknownEngine(t *testing.T) {
	config := runtimeConfig(t)
	config.Browser.Engine = "webkit"

	_, err := NewRuntime(config, nil, zap.NewNop())
	assert.Error(t, err)
}
