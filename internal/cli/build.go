package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cyclip/pyproj/internal/config"
	"github.com/Cyclip/pyproj/internal/manifest"
	"github.com/Cyclip/pyproj/internal/pkgindex"
	"github.com/Cyclip/pyproj/internal/resolver"
	"github.com/Cyclip/pyproj/internal/runtime"
)

var (
	buildOutput string
	buildDryRun bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "manifest to write (default: config requirements_file)")
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "print the manifest instead of writing it")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate requirements.txt from the imports under src/",
	Long: `Scan every .py file under the source directory, collect the third-party
modules they import and pin each one to the version installed in the active
interpreter. Local modules and the standard library are left out. The
manifest is rewritten in full.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := loggerFromContext(ctx)
		out := cmd.OutOrStdout()

		dir, err := workDir()
		if err != nil {
			return err
		}
		srcDir := filepath.Join(dir, config.SourceDir())

		p := newProgress(logger)
		files, err := resolver.Sources(srcDir, config.ExploreDepth())
		if err != nil {
			if errors.Is(err, resolver.ErrNoSourceDir) {
				return fmt.Errorf("no %s directory in %s; run build from the project root", config.SourceDir(), dir)
			}
			return err
		}
		logger.Debug("found source files", "count", len(files), "root", srcDir)

		r := &resolver.Resolver{
			Provider: freezeProvider(dir),
			Logger:   logger,
			Root:     srcDir,
		}
		m, err := r.Build(ctx, files)
		if err != nil {
			return err
		}
		p.done(fmt.Sprintf("Resolved %d packages from %d files", len(m), len(files)))

		if buildDryRun {
			fmt.Fprint(out, m.Render())
			return nil
		}

		target := buildOutput
		if target == "" {
			target = config.RequirementsFile()
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}

		prev, err := manifest.Read(target)
		if err != nil {
			logger.Warn("could not read previous manifest", "err", err)
		}
		if err := m.Write(target); err != nil {
			return err
		}

		printSuccess(out, "Wrote %s (%d packages)", displayPath(dir, target), len(m))
		printChange(out, manifest.Diff(prev, m))
		return nil
	},
}

// freezeProvider builds the installed-package provider for the project at
// dir. A missing interpreter yields a provider that always fails, which the
// resolver reports as an unavailable index.
func freezeProvider(dir string) pkgindex.Provider {
	py, err := runtime.NewPython(config.Python(), dir)
	if err != nil {
		return &pkgindex.Freeze{Freezer: unavailable{err}}
	}
	return &pkgindex.Freeze{Freezer: py, Timeout: config.FreezeTimeout()}
}

// unavailable is a Freezer standing in for a missing interpreter.
type unavailable struct{ err error }

func (u unavailable) Freeze(context.Context) (string, error) { return "", u.err }

func printChange(w io.Writer, c manifest.Change) {
	for _, name := range c.Added {
		printDetail(w, "%s %s", iconAdded, name)
	}
	for _, name := range c.Updated {
		printDetail(w, "%s %s", iconUpdated, name)
	}
	for _, name := range c.Removed {
		printDetail(w, "%s %s", iconRemoved, name)
	}
}

// displayPath shows path relative to dir when it lies inside it.
func displayPath(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}
