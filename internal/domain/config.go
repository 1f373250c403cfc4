package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Download     DownloadConfig     `mapstructure:"download"`
	Browser      BrowserConfig      `mapstructure:"browser"`
	Fallback     FallbackConfig     `mapstructure:"fallback"`
	History      HistoryConfig      `mapstructure:"history"`
	Notification NotificationConfig `mapstructure:"notification"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DownloadConfig contains download-related configuration
type DownloadConfig struct {
	Dir           string        `mapstructure:"dir"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Retention     time.Duration `mapstructure:"retention"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// Rendering engines
const (
	EngineRod    = "rod"    // headless Chromium driven over CDP
	EngineStatic = "static" // plain HTML fetch, no script execution
)

// BrowserConfig contains rendering engine configuration
type BrowserConfig struct {
	Engine            string        `mapstructure:"engine"`
	BinPath           string        `mapstructure:"bin_path"`
	Headless          bool          `mapstructure:"headless"`
	NoSandbox         bool          `mapstructure:"no_sandbox"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout"`
	SettleDelay       time.Duration `mapstructure:"settle_delay"`
	UserAgent         string        `mapstructure:"user_agent"`
	ViewportWidth     int           `mapstructure:"viewport_width"`
	ViewportHeight    int           `mapstructure:"viewport_height"`
}

// FallbackConfig contains configuration for the raw HTML fetch
type FallbackConfig struct {
	Timeout        time.Duration `mapstructure:"timeout"`
	AcceptLanguage string        `mapstructure:"accept_language"`
}

// HistoryConfig contains configuration for the download history database
type HistoryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

// NotificationConfig contains notification-related configuration
type NotificationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Method  string `mapstructure:"method"` // osascript, notify-send
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
	LogsDir    string `mapstructure:"logs_dir"`    // categorized event logs (server only)
}

// DefaultUserAgent is a current desktop Chrome user agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Download: DownloadConfig{
			Dir:           "$HOME/Downloads/pin-extract",
			Timeout:       60 * time.Second,
			Retention:     24 * time.Hour,
			SweepInterval: time.Hour,
		},
		Browser: BrowserConfig{
			Engine:            EngineRod,
			BinPath:           "",
			Headless:          true,
			NoSandbox:         true,
			NavigationTimeout: 45 * time.Second,
			SettleDelay:       5 * time.Second,
			UserAgent:         DefaultUserAgent,
			ViewportWidth:     1920,
			ViewportHeight:    1080,
		},
		Fallback: FallbackConfig{
			Timeout:        10 * time.Second,
			AcceptLanguage: "es-ES,es;q=0.9,en;q=0.8",
		},
		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: "$HOME/Downloads/pin-extract/history.db",
		},
		Notification: NotificationConfig{
			Enabled: false,
			Method:  "notify-send",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stderr",
			LogsDir:    "$HOME/Downloads/pin-extract/logs",
		},
	}
}
