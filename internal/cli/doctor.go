package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Cyclip/pyproj/internal/config"
	"github.com/Cyclip/pyproj/internal/runtime"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the Python toolchain and project layout",
	Long:  `Report the interpreter pyproj will use, whether pip can list installed packages, and whether the current directory has a source directory to build.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		dir, err := workDir()
		if err != nil {
			return err
		}

		printTitle(out, "Interpreter")
		checkInterpreter(cmd.Context(), out, dir)

		printTitle(out, "Project")
		checkProject(out, dir)

		printTitle(out, "Configuration")
		printKeyValue(out, "config file", config.FilePath())
		for _, key := range config.Keys() {
			value := config.Get(key)
			if value == "" {
				value = styleDim.Render("(unset)")
			}
			printKeyValue(out, key, value)
		}
		return nil
	},
}

func checkInterpreter(ctx context.Context, w io.Writer, dir string) {
	py, err := runtime.NewPython(config.Python(), dir)
	if err != nil {
		printError(w, "%v", err)
		return
	}
	printSuccess(w, "python: %s", py.Bin)

	v, err := py.Version(ctx)
	if err != nil {
		printWarning(w, "version: %v", err)
	} else {
		printSuccess(w, "version: %s", v)
	}

	freezeCtx, cancel := context.WithTimeout(ctx, config.FreezeTimeout())
	defer cancel()
	if _, err := py.Freeze(freezeCtx); err != nil {
		printWarning(w, "pip: %v", err)
		printDetail(w, "build will not be able to pin versions")
	} else {
		printSuccess(w, "pip: available")
	}
}

func checkProject(w io.Writer, dir string) {
	src := filepath.Join(dir, config.SourceDir())
	if info, err := os.Stat(src); err == nil && info.IsDir() {
		printSuccess(w, "%s: found", config.SourceDir())
	} else {
		printWarning(w, "%s: not found in %s", config.SourceDir(), dir)
	}

	for _, name := range []string{"tests", config.RequirementsFile(), runtime.EnvFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			printInfo(w, "%s: present", name)
		} else {
			printInfo(w, "%s: absent", name)
		}
	}
}
