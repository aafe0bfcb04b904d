package scaffold

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/Cyclip/pyproj/internal/project"
)

// InitialVersion is the version every new project starts at.
const InitialVersion = "0.1.0"

// Data holds all template variables available to scaffold templates.
type Data struct {
	Name          string // e.g., "webapp"
	Description   string
	Author        string
	License       string // e.g., "MIT"
	PythonVersion string // as detected, e.g., "3.11.4"
	PythonShort   string // Derived: "3.11"
	Version       string
	Year          int
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Dirs      []string // slash-separated, relative to OutputDir
	Files     []string
}

// layoutDirs are created even when no template file lives in them.
var layoutDirs = []string{"docs", "examples", "tests", "src/" + projectPlaceholder}

// NewData creates template data from validated metadata.
func NewData(m *project.Metadata) *Data {
	d := &Data{
		Name:          m.Name,
		Description:   m.Description,
		Author:        m.Author,
		License:       m.License,
		PythonVersion: m.PythonVersion,
		PythonShort:   m.PythonVersion,
		Version:       InitialVersion,
		Year:          time.Now().Year(),
	}
	if v, err := semver.NewVersion(m.PythonVersion); err == nil {
		d.PythonShort = shortVersion(v, m.PythonVersion)
	}
	return d
}

// shortVersion keeps "3" as "3" but trims "3.11.4" to "3.11".
func shortVersion(v *semver.Version, raw string) string {
	if !strings.Contains(raw, ".") {
		return fmt.Sprintf("%d", v.Major())
	}
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

// Generate writes a new project into outputDir. An existing directory is
// accepted only when empty. If generation fails and outputDir was created by
// this call, it is removed again.
func Generate(data *Data, outputDir string) (res *Result, err error) {
	created, err := prepareDir(outputDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil && created {
			_ = os.RemoveAll(outputDir)
		}
	}()

	result := &Result{OutputDir: outputDir}
	name := func(p string) string {
		return strings.ReplaceAll(p, projectPlaceholder, data.Name)
	}

	for _, dir := range layoutDirs {
		rel := name(dir)
		if err := os.MkdirAll(filepath.Join(outputDir, filepath.FromSlash(rel)), 0755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", rel, err)
		}
		result.Dirs = append(result.Dirs, rel)
	}

	err = fs.WalkDir(templateFS, templateRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if p == templateRoot {
			return nil
		}
		rel := name(strings.TrimPrefix(p, templateRoot+"/"))
		outPath := filepath.Join(outputDir, filepath.FromSlash(rel))
		if d.IsDir() {
			return os.MkdirAll(outPath, 0755)
		}

		content, err := fs.ReadFile(templateFS, p)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}
		if strings.HasSuffix(rel, ".tmpl") {
			rel = strings.TrimSuffix(rel, ".tmpl")
			outPath = strings.TrimSuffix(outPath, ".tmpl")
			if content, err = render(path.Base(p), content, data); err != nil {
				return err
			}
		}
		if err := os.WriteFile(outPath, content, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	pyproject, err := renderPyproject(data)
	if err != nil {
		return nil, err
	}
	pyprojectPath := filepath.Join(outputDir, PyprojectFile)
	if err := os.WriteFile(pyprojectPath, pyproject, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", pyprojectPath, err)
	}
	result.Files = append(result.Files, PyprojectFile)

	sort.Strings(result.Files)
	return result, nil
}

// prepareDir creates dir or checks that an existing one is empty. created
// reports whether the directory did not exist before.
func prepareDir(dir string) (created bool, err error) {
	entries, err := os.ReadDir(dir)
	switch {
	case err == nil:
		if len(entries) > 0 {
			return false, fmt.Errorf("directory %s exists and is not empty", dir)
		}
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("creating output directory: %w", err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("checking output directory %s: %w", dir, err)
	}
}

func render(name string, content []byte, data *Data) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
