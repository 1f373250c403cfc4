package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourusername/pin-extract-go/internal/app"
	"github.com/yourusername/pin-extract-go/internal/domain"
	"github.com/yourusername/pin-extract-go/internal/infrastructure"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List downloaded media files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		config, _, err := setup()
		if err != nil {
			return err
		}

		files, err := infrastructure.ListMediaFiles(config.Download.Dir)
		if err != nil {
			return err
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return printJSON(files)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "FILENAME\tSIZE\tCREATED")
		for _, f := range files {
			fmt.Fprintf(w, "%s\t%s\t%s\n", f.Filename, f.Size, f.Created.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete downloads older than the retention period",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		config, log, err := setup()
		if err != nil {
			return err
		}
		defer log.Sync()

		repo, closeRepo, err := openHistory(config)
		if err != nil {
			return err
		}
		defer closeRepo()

		report, err := app.NewSweeper(&config.Download, repo, log).RunOnce(cmd.Context())
		if report != nil {
			for _, name := range report.Removed {
				fmt.Printf("Removed %s\n", name)
			}
			fmt.Printf("%d removed, %d kept\n", len(report.Removed), report.Kept)
		}
		return err
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent downloads",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		config, _, err := setup()
		if err != nil {
			return err
		}
		if !config.History.Enabled {
			return fmt.Errorf("download history is disabled")
		}

		repo, closeRepo, err := openHistory(config)
		if err != nil {
			return err
		}
		defer closeRepo()

		if showStats, _ := cmd.Flags().GetBool("stats"); showStats {
			stats, err := repo.GetStats()
			if err != nil {
				return err
			}
			fmt.Println("Download Statistics:")
			fmt.Printf("  Total:     %d\n", stats.Total)
			fmt.Printf("  Succeeded: %d\n", stats.Succeeded)
			fmt.Printf("  Failed:    %d\n", stats.Failed)
			fmt.Printf("  Videos:    %d\n", stats.Videos)
			fmt.Printf("  Images:    %d\n", stats.Images)
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		records, err := repo.FindAll(limit)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPIN\tRESULT\tFILE\tCREATED")
		for _, r := range records {
			outcome := string(r.Type)
			file := r.Filename
			if !r.Success {
				outcome = "failed"
				file = r.ErrorKind
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				truncate(r.ID, 8),
				truncate(r.PinURL, 45),
				outcome,
				file,
				r.CreatedAt.Format("2006-01-02 15:04:05"))
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().BoolP("json", "j", false, "Output in JSON format")
	historyCmd.Flags().IntP("limit", "n", 20, "Number of records to show (0 for all)")
	historyCmd.Flags().Bool("stats", false, "Show totals instead of records")
}

// openHistory opens the history database, or returns a nil repository when
// history is disabled
func openHistory(config *domain.Config) (domain.DownloadRepository, func(), error) {
	if !config.History.Enabled {
		return nil, func() {}, nil
	}
	repo, err := infrastructure.NewSQLiteDownloadRepository(config.History.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open download history: %w", err)
	}
	return repo, func() { repo.Close() }, nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
