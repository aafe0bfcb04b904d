package resolver

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/Cyclip/pyproj/internal/pkgindex"
)

// writeSources creates files (relative path -> content) under a temp dir and
// returns the root and the absolute paths in argument order.
func writeSources(t *testing.T, files map[string]string) (string, []string) {
	t.Helper()
	root := t.TempDir()
	var paths []string
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}
	return root, paths
}

func quietLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: log.InfoLevel})
}

type failingProvider struct{}

func (failingProvider) Installed(context.Context) (pkgindex.Index, error) {
	return nil, errors.New("pip: command not found")
}

func TestBuild_ExcludesLocalAndBuiltin(t *testing.T) {
	_, files := writeSources(t, map[string]string{
		"app.py":       "import flask\nimport app_utils\n",
		"app_utils.py": "import os\n",
	})

	var logs bytes.Buffer
	r := &Resolver{Provider: pkgindex.Static{"Flask": "2.0.1"}, Logger: quietLogger(&logs)}

	m, err := r.Build(context.Background(), files)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got := m.Render(); got != "Flask==2.0.1\n" {
		t.Errorf("Render() = %q, want %q", got, "Flask==2.0.1\n")
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected warnings: %s", logs.String())
	}
}

func TestBuild_Idempotent(t *testing.T) {
	_, files := writeSources(t, map[string]string{
		"main.py":  "import requests\nfrom bs4 import BeautifulSoup\nimport flask\n",
		"extra.py": "import yaml, requests\n",
	})
	r := &Resolver{
		Provider: pkgindex.Static{"Flask": "2.0.1", "requests": "2.31.0", "beautifulsoup4": "4.12.2", "PyYAML": "6.0.1"},
		Logger:   quietLogger(&bytes.Buffer{}),
	}

	first, err := r.Build(context.Background(), files)
	if err != nil {
		t.Fatal(err)
	}
	second, err := r.Build(context.Background(), files)
	if err != nil {
		t.Fatal(err)
	}
	if first.Render() != second.Render() {
		t.Errorf("builds differ:\n%s\n---\n%s", first.Render(), second.Render())
	}
	want := "Flask==2.0.1\nPyYAML==6.0.1\nbeautifulsoup4==4.12.2\nrequests==2.31.0\n"
	if first.Render() != want {
		t.Errorf("Render() = %q, want %q", first.Render(), want)
	}
}

func TestBuild_AliasResolution(t *testing.T) {
	_, files := writeSources(t, map[string]string{"scrape.py": "from bs4 import BeautifulSoup\n"})
	r := &Resolver{Provider: pkgindex.Static{"beautifulsoup4": "4.12.2"}, Logger: quietLogger(&bytes.Buffer{})}

	m, err := r.Build(context.Background(), files)
	if err != nil {
		t.Fatal(err)
	}
	if len(m) != 1 || m[0].Name != "beautifulsoup4" || m[0].Version != "4.12.2" {
		t.Errorf("Build() = %v, want beautifulsoup4==4.12.2", m)
	}
}

func TestBuild_NormalizedLookup(t *testing.T) {
	_, files := writeSources(t, map[string]string{"cfg.py": "import yaml\nimport flask_cors\n"})
	r := &Resolver{Provider: pkgindex.Static{"pyyaml": "6.0.1", "flask-cors": "4.0.0"}, Logger: quietLogger(&bytes.Buffer{})}

	m, err := r.Build(context.Background(), files)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Render(); got != "flask-cors==4.0.0\npyyaml==6.0.1\n" {
		t.Errorf("Render() = %q", got)
	}
}

func TestBuild_UnresolvedIsWarning(t *testing.T) {
	_, files := writeSources(t, map[string]string{"main.py": "import requests\nimport flask\n"})

	var logs bytes.Buffer
	r := &Resolver{Provider: pkgindex.Static{"Flask": "2.0.1"}, Logger: quietLogger(&logs)}

	m, err := r.Build(context.Background(), files)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got := m.Render(); got != "Flask==2.0.1\n" {
		t.Errorf("Render() = %q", got)
	}
	if !strings.Contains(logs.String(), "requests") {
		t.Errorf("expected warning naming requests, got %q", logs.String())
	}
}

func TestBuild_IndexUnavailable(t *testing.T) {
	_, files := writeSources(t, map[string]string{"main.py": "import requests\nimport flask\n"})

	var logs bytes.Buffer
	r := &Resolver{Provider: failingProvider{}, Logger: quietLogger(&logs)}

	m, err := r.Build(context.Background(), files)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(m) != 0 {
		t.Errorf("Build() = %v, want empty", m)
	}
	out := logs.String()
	for _, want := range []string{"installed-package index unavailable", "requests", "Flask"} {
		if !strings.Contains(out, want) {
			t.Errorf("logs missing %q:\n%s", want, out)
		}
	}
}

func TestBuild_ReadErrorIsFatal(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.py")
	r := &Resolver{Provider: pkgindex.Static{}, Logger: quietLogger(&bytes.Buffer{})}

	_, err := r.Build(context.Background(), []string{missing})
	if err == nil {
		t.Fatal("expected error for unreadable source file")
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error %q should name %s", err, missing)
	}
}

func TestBuild_OversizedLine(t *testing.T) {
	_, files := writeSources(t, map[string]string{
		"data.py": "import flask\nBLOB = '" + strings.Repeat("A", 2<<20) + "'\n",
	})
	r := &Resolver{Provider: pkgindex.Static{"Flask": "2.0.1"}, Logger: quietLogger(&bytes.Buffer{})}

	m, err := r.Build(context.Background(), files)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if got := m.Render(); got != "Flask==2.0.1\n" {
		t.Errorf("Render() = %q, want %q", got, "Flask==2.0.1\n")
	}
}

func TestBuild_CancelledContext(t *testing.T) {
	_, files := writeSources(t, map[string]string{"main.py": "import flask\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Resolver{Provider: pkgindex.Static{}, Logger: quietLogger(&bytes.Buffer{})}
	if _, err := r.Build(ctx, files); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestDependencies_OrderAndDedupe(t *testing.T) {
	_, files := writeSources(t, map[string]string{
		"main.py": "import requests\nimport numpy as np\nfrom . import sibling\nimport requests\nimport os.path\nfrom flask import Flask\n",
	})
	r := &Resolver{Logger: quietLogger(&bytes.Buffer{})}

	deps, err := r.Dependencies(context.Background(), files)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"requests", "numpy", "Flask"}
	if strings.Join(deps, ",") != strings.Join(want, ",") {
		t.Errorf("Dependencies() = %v, want %v", deps, want)
	}
}

func TestLocalModules(t *testing.T) {
	root := filepath.Join("proj", "src")
	files := []string{
		filepath.Join(root, "main.py"),
		filepath.Join(root, "mypkg", "core", "engine.py"),
	}

	local := LocalModules(files, root)
	for _, name := range []string{"main", "engine", "mypkg", "core"} {
		if !local[name] {
			t.Errorf("LocalModules() missing %q", name)
		}
	}
	if local["src"] || local["proj"] {
		t.Errorf("LocalModules() should not include the root or its parents: %v", local)
	}

	bare := LocalModules(files, "")
	if bare["mypkg"] {
		t.Error("package directories should only be local when a root is given")
	}
}

func TestBuild_PackageDirectoryIsLocal(t *testing.T) {
	root, files := writeSources(t, map[string]string{
		"myapp/main.py":    "from myapp import helpers\nimport flask\n",
		"myapp/helpers.py": "import json\n",
	})
	r := &Resolver{Provider: pkgindex.Static{"Flask": "2.0.1"}, Root: root, Logger: quietLogger(&bytes.Buffer{})}

	m, err := r.Build(context.Background(), files)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Render(); got != "Flask==2.0.1\n" {
		t.Errorf("Render() = %q", got)
	}
}

func TestSources(t *testing.T) {
	root, _ := writeSources(t, map[string]string{
		"main.py":         "",
		"pkg/util.py":     "",
		"pkg/README.md":   "",
		"pkg/data/raw.PY": "",
		"notes.txt":       "",
	})

	files, err := Sources(root, 10)
	if err != nil {
		t.Fatalf("Sources() error: %v", err)
	}
	if len(files) != 3 {
		t.Errorf("Sources() = %v, want 3 python files", files)
	}
}

func TestSources_Missing(t *testing.T) {
	_, err := Sources(filepath.Join(t.TempDir(), "src"), 10)
	if !errors.Is(err, ErrNoSourceDir) {
		t.Errorf("error = %v, want ErrNoSourceDir", err)
	}
}
