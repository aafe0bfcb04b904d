package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Cyclip/pyproj/internal/config"
	"github.com/Cyclip/pyproj/internal/runtime"
)

func init() {
	rootCmd.AddCommand(testCmd)
}

var testCmd = &cobra.Command{
	Use:   "test [name]",
	Short: "Run the unittest suite",
	Long: `Run "python -m unittest" from the project root over the whole tests
directory, or over tests/<name>.py when a name is given. Variables from a
.env file in the project root are added to the environment.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := loggerFromContext(cmd.Context())
		out := cmd.OutOrStdout()

		dir, err := workDir()
		if err != nil {
			return err
		}
		py, err := runtime.NewPython(config.Python(), dir)
		if err != nil {
			return err
		}
		py.Stdout = out
		py.Stderr = cmd.ErrOrStderr()

		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		target := runtime.TestTarget(name)
		logger.Debug("running unittest", "python", py.Bin, "target", target)

		printBanner(out, "Running "+target)
		start := time.Now()
		result, err := py.UnitTest(cmd.Context(), target)
		if err != nil {
			return err
		}
		elapsed := time.Since(start).Milliseconds()

		fmt.Fprintln(out)
		if result.Success() {
			printSuccess(out, "Tests passed in %dms (exit code %d)", elapsed, result.ExitCode)
			return nil
		}
		printError(out, "Tests failed in %dms (exit code %d)", elapsed, result.ExitCode)
		return fmt.Errorf("tests failed with exit code %d", result.ExitCode)
	},
}
