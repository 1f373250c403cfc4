package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/yourusername/pin-extract-go/internal/domain"
)

// LoadConfig loads configuration from file and environment
func LoadConfig(configPath string) (*domain.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Every key needs a default for AutomaticEnv to see it during Unmarshal
	for key, value := range configValues(domain.DefaultConfig()) {
		v.SetDefault(key, value)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.pin-extract")
	}

	v.SetEnvPrefix("PINEXTRACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &domain.Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config = expandPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// configValues flattens a config into viper keys; durations are written as strings
func configValues(c *domain.Config) map[string]interface{} {
	return map[string]interface{}{
		"server.host": c.Server.Host,
		"server.port": c.Server.Port,

		"download.dir":            c.Download.Dir,
		"download.timeout":        c.Download.Timeout.String(),
		"download.retention":      c.Download.Retention.String(),
		"download.sweep_interval": c.Download.SweepInterval.String(),

		"browser.engine":             c.Browser.Engine,
		"browser.bin_path":           c.Browser.BinPath,
		"browser.headless":           c.Browser.Headless,
		"browser.no_sandbox":         c.Browser.NoSandbox,
		"browser.navigation_timeout": c.Browser.NavigationTimeout.String(),
		"browser.settle_delay":       c.Browser.SettleDelay.String(),
		"browser.user_agent":         c.Browser.UserAgent,
		"browser.viewport_width":     c.Browser.ViewportWidth,
		"browser.viewport_height":    c.Browser.ViewportHeight,

		"fallback.timeout":         c.Fallback.Timeout.String(),
		"fallback.accept_language": c.Fallback.AcceptLanguage,

		"history.enabled":       c.History.Enabled,
		"history.database_path": c.History.DatabasePath,

		"notification.enabled": c.Notification.Enabled,
		"notification.method":  c.Notification.Method,

		"logging.level":       c.Logging.Level,
		"logging.format":      c.Logging.Format,
		"logging.output_path": c.Logging.OutputPath,
		"logging.logs_dir":    c.Logging.LogsDir,
	}
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *domain.Config) *domain.Config {
	config.Download.Dir = expandPath(config.Download.Dir)
	config.Browser.BinPath = expandPath(config.Browser.BinPath)
	config.History.DatabasePath = expandPath(config.History.DatabasePath)
	config.Logging.LogsDir = expandPath(config.Logging.LogsDir)

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = expandPath(config.Logging.OutputPath)
	}

	return config
}

// expandPath expands environment variables and ~ in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}

	path = os.ExpandEnv(path)

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}

	return path
}

// validateConfig validates the configuration
func validateConfig(config *domain.Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Download.Dir == "" {
		return fmt.Errorf("download directory not configured")
	}

	if config.Download.Timeout <= 0 {
		return fmt.Errorf("download timeout must be positive")
	}

	if config.Download.Retention <= 0 {
		return fmt.Errorf("download retention must be positive")
	}

	if config.Download.SweepInterval <= 0 {
		return fmt.Errorf("sweep interval must be positive")
	}

	switch config.Browser.Engine {
	case domain.EngineRod, domain.EngineStatic:
	default:
		return fmt.Errorf("unknown browser engine: %q", config.Browser.Engine)
	}

	if config.Browser.ViewportWidth < 1 || config.Browser.ViewportHeight < 1 {
		return fmt.Errorf("invalid viewport: %dx%d", config.Browser.ViewportWidth, config.Browser.ViewportHeight)
	}

	if config.History.Enabled && config.History.DatabasePath == "" {
		return fmt.Errorf("history database path not configured")
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	return nil
}

// SaveConfig saves configuration to file
func SaveConfig(config *domain.Config, path string) error {
	v := viper.New()
	v.SetConfigType("yaml")

	for key, value := range configValues(config) {
		v.Set(key, value)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
