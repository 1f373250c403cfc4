package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/pin-extract-go/internal/app"
	"github.com/yourusername/pin-extract-go/internal/domain"
	"github.com/yourusername/pin-extract-go/pkg/logger"
)

var (
	configPath string
	verbose    bool
	noProgress bool
	rootCmd    = &cobra.Command{
		Use:   "pinextract <PIN_URL>",
		Short: "pinextract - Download the video or image of a Pinterest pin",
		Long: `Downloads the best video of a Pinterest pin, or its image when the pin has no video.
The result is printed to stdout as JSON; progress and logs go to stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: runDownload,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ./configs/config.yaml or ~/.pin-extract/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Don't draw the progress bar")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(historyCmd)
}

// setup loads configuration and builds the stderr logger
func setup() (*domain.Config, *zap.Logger, error) {
	config, err := app.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := config.Logging.Level
	if verbose {
		level = "debug"
	}
	output := config.Logging.OutputPath
	if output == "stdout" {
		// stdout carries the JSON result only
		output = "stderr"
	}

	log, err := logger.New(logger.Config{
		Level:      level,
		Format:     config.Logging.Format,
		OutputPath: output,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return config, log, nil
}

func runDownload(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	config, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := app.NewRuntime(config, nil, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			log.Warn("Failed to release resources", zap.Error(err))
		}
	}()

	var progress *progressReporter
	var onProgress domain.ProgressFunc
	if !noProgress {
		progress = newProgressReporter(os.Stderr)
		onProgress = progress.Update
	}

	result := rt.Service.Download(ctx, args[0], onProgress)
	if progress != nil {
		progress.Finish(result.Success)
	}

	return printJSON(result)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
