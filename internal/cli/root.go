package cli

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Cyclip/pyproj/internal/branding"
	"github.com/Cyclip/pyproj/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates Python project skeletons, infers requirements.txt from
the imports under src/, removes build and cache directories, and runs the
unittest suite.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		logger := newLogger(cmd.ErrOrStderr(), level)
		cmd.SetContext(withLogger(cmd.Context(), logger))

		if err := config.Load(); err != nil {
			return err
		}
		logger.Debug("loaded configuration", "file", config.FilePath())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(ctx context.Context, version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.ExecuteContext(ctx)
}

// workDir returns the directory commands operate on.
func workDir() (string, error) {
	return os.Getwd()
}
