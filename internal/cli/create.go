package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Cyclip/pyproj/internal/config"
	"github.com/Cyclip/pyproj/internal/project"
	"github.com/Cyclip/pyproj/internal/runtime"
	"github.com/Cyclip/pyproj/internal/scaffold"
)

var (
	createDescription   string
	createAuthor        string
	createLicense       string
	createPythonVersion string
	createFrom          string
	createNoInput       bool
)

func init() {
	f := createCmd.Flags()
	f.StringVar(&createDescription, "description", "", "project description")
	f.StringVar(&createAuthor, "author", "", "author name (default: config author)")
	f.StringVar(&createLicense, "license", "", "license name (default: config license, then MIT)")
	f.StringVar(&createPythonVersion, "python-version", "", "target Python version (default: detected interpreter)")
	f.StringVar(&createFrom, "from", "", "read project metadata from a YAML file")
	f.BoolVar(&createNoInput, "no-input", false, "do not prompt; use flags and defaults")
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create <project_name>",
	Short: "Scaffold a new Python project",
	Long: `Create a new project directory with a src/ layout, packaging files
(setup.cfg, setup.py, pyproject.toml, MANIFEST.in), a README and a starter
unittest suite.

Examples:
  pyproj create webapp
  pyproj create webapp --no-input --author "Sam Doe" --license MIT
  pyproj create --from project.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := loggerFromContext(ctx)
		out := cmd.OutOrStdout()

		m := &project.Metadata{}
		if createFrom != "" {
			loaded, err := project.LoadMetadata(createFrom)
			if err != nil {
				return err
			}
			m = loaded
		}
		if len(args) == 1 {
			m.Name = args[0]
		}
		if m.Name == "" {
			return fmt.Errorf("a project name is required")
		}
		if err := project.ValidateName(m.Name); err != nil {
			return err
		}

		dir, err := workDir()
		if err != nil {
			return err
		}
		outDir := filepath.Join(dir, m.Name)
		if err := checkEmptyDir(outDir); err != nil {
			return err
		}

		overlay(&m.Description, createDescription)
		overlay(&m.Author, createAuthor)
		overlay(&m.License, createLicense)
		overlay(&m.PythonVersion, createPythonVersion)

		defaults := project.Metadata{Author: config.Author(), License: config.License()}
		if defaults.License == "" {
			defaults.License = project.DefaultLicense
		}
		if createNoInput {
			overlay(&m.Author, defaults.Author)
			overlay(&m.License, defaults.License)
		} else {
			if err := project.NewPrompter(cmd.InOrStdin(), out).Fill(m, defaults); err != nil {
				return err
			}
		}

		if m.PythonVersion == "" {
			m.PythonVersion = detectPythonVersion(ctx, logger)
		}
		m.ApplyDefaults()
		if err := m.Validate(); err != nil {
			return err
		}

		result, err := scaffold.Generate(scaffold.NewData(m), outDir)
		if err != nil {
			return err
		}

		fmt.Fprintln(out)
		printSuccess(out, "Created project %s in %s", m.Name, displayPath(dir, result.OutputDir))
		for _, f := range result.Files {
			printFile(out, f)
		}
		fmt.Fprintln(out)
		printTitle(out, "Next steps")
		printDetail(out, "cd %s", m.Name)
		printDetail(out, "pyproj test")
		return nil
	},
}

// overlay sets *dst to value when value is non-empty and *dst is empty.
func overlay(dst *string, value string) {
	if *dst == "" && value != "" {
		*dst = value
	}
}

// checkEmptyDir fails when dir exists and has entries.
func checkEmptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	if len(entries) > 0 {
		return fmt.Errorf("directory %s exists and contains files", dir)
	}
	return nil
}

// detectPythonVersion asks the interpreter for its version, falling back to
// project.DefaultPythonVersion with a warning.
func detectPythonVersion(ctx context.Context, logger *log.Logger) string {
	py, err := runtime.NewPython(config.Python(), "")
	if err != nil {
		logger.Warn("could not find a Python interpreter, assuming Python 3", "err", err)
		return project.DefaultPythonVersion
	}
	v, err := py.Version(ctx)
	if err != nil {
		logger.Warn("could not detect the Python version, assuming Python 3", "err", err)
		return project.DefaultPythonVersion
	}
	logger.Debug("detected interpreter", "python", py.Bin, "version", v)
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}
