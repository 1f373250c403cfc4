package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.NotNil(t, config)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, 60*time.Second, config.Download.Timeout)
	assert.Equal(t, 24*time.Hour, config.Download.Retention)
	assert.Equal(t, time.Hour, config.Download.SweepInterval)
	assert.Equal(t, EngineRod, config.Browser.Engine)
	assert.Equal(t, 45*time.Second, config.Browser.NavigationTimeout)
	assert.Equal(t, 5*time.Second, config.Browser.SettleDelay)
	assert.Equal(t, 1920, config.Browser.ViewportWidth)
	assert.Equal(t, 1080, config.Browser.ViewportHeight)
	assert.Contains(t, config.Browser.UserAgent, "Chrome/122")
	assert.Equal(t, 10*time.Second, config.Fallback.Timeout)
	assert.True(t, config.History.Enabled)
	assert.False(t, config.Notification.Enabled)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "stderr", config.Logging.OutputPath)
}
