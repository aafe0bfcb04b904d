package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cyclip/pyproj/internal/config"
	"github.com/Cyclip/pyproj/internal/explorer"
)

var cleanDryRun bool

func init() {
	cleanCmd.Flags().BoolVar(&cleanDryRun, "dry-run", false, "list matching directories without removing them")
	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean [project_name]",
	Short: "Remove __pycache__ and build directories under src/",
	Long: `Delete every directory under <project>/src (or ./src) whose name matches a
clean pattern. The patterns default to __pycache__ and build and can be
changed with "config set clean_patterns". Deletion is immediate.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := loggerFromContext(cmd.Context())
		out := cmd.OutOrStdout()

		dir, err := workDir()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			dir = filepath.Join(dir, args[0])
		}
		root := filepath.Join(dir, config.SourceDir())

		info, err := os.Stat(root)
		switch {
		case errors.Is(err, fs.ErrNotExist), err == nil && !info.IsDir():
			return fmt.Errorf("no %s directory in %s", config.SourceDir(), dir)
		case err != nil:
			return fmt.Errorf("checking %s: %w", root, err)
		}

		patterns := config.CleanPatterns()
		logger.Debug("cleaning", "root", root, "patterns", patterns)

		matches, err := explorer.Explore(root, explorer.DirNamed(patterns...), config.ExploreDepth())
		if err != nil {
			return err
		}
		matches = pruneNested(matches)

		if len(matches) == 0 {
			printInfo(out, "Nothing to clean in %s", displayPath(dir, root))
			return nil
		}

		for _, path := range matches {
			if cleanDryRun {
				printFile(out, displayPath(dir, path))
				continue
			}
			if err := os.RemoveAll(path); err != nil {
				return fmt.Errorf("removing %s: %w", path, err)
			}
			logger.Debug("removed", "path", path)
			printFile(out, displayPath(dir, path))
		}

		if cleanDryRun {
			printInfo(out, "%d directories would be removed", len(matches))
		} else {
			printSuccess(out, "Removed %d directories", len(matches))
		}
		return nil
	},
}

// pruneNested drops paths that lie inside an earlier path. Explore lists a
// directory before its children, so one pass suffices.
func pruneNested(paths []string) []string {
	var kept []string
	for _, p := range paths {
		nested := false
		for _, parent := range kept {
			if strings.HasPrefix(p, parent+string(filepath.Separator)) {
				nested = true
				break
			}
		}
		if !nested {
			kept = append(kept, p)
		}
	}
	return kept
}
