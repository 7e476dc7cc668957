package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Zachkp/showcase/internal/carousel"
	"github.com/Zachkp/showcase/internal/projects"
	"github.com/Zachkp/showcase/internal/tui"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview the project carousel in the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := projects.Resolve(appConfig.ProjectsFile)
		if err != nil {
			return err
		}

		// The preview owns the terminal; log lines would draw over it.
		restore := quietLogging()
		defer restore()

		ctrl, err := carousel.New(entries,
			carousel.WithInterval(appConfig.Carousel.Interval),
			carousel.WithLogger(slog.Default()))
		if err != nil {
			return err
		}
		return tui.Run(cmd.Context(), ctrl)
	},
}

func init() {
	previewCmd.Flags().String("file", "", "project data file (.yaml or .toml)")
	rootCmd.AddCommand(previewCmd)
}

// quietLogging discards all log output until restore is called.
func quietLogging() (restore func()) {
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.DiscardHandler))
	return func() { slog.SetDefault(prev) }
}
