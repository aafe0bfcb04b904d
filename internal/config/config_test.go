package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

// setup points the config directory at a temp dir and reloads viper state.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PYPROJ_HOME", dir)
	viper.Reset()
	t.Cleanup(viper.Reset)
	if err := Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return dir
}

func TestDefaults(t *testing.T) {
	setup(t)

	if got := SourceDir(); got != "src" {
		t.Errorf("SourceDir() = %q, want src", got)
	}
	if got := RequirementsFile(); got != "requirements.txt" {
		t.Errorf("RequirementsFile() = %q, want requirements.txt", got)
	}
	if got := ExploreDepth(); got != 10 {
		t.Errorf("ExploreDepth() = %d, want 10", got)
	}
	if got := FreezeTimeout(); got != 30*time.Second {
		t.Errorf("FreezeTimeout() = %v, want 30s", got)
	}
	if got := strings.Join(CleanPatterns(), ","); got != "__pycache__,build" {
		t.Errorf("CleanPatterns() = %q", got)
	}
	if Python() != "" {
		t.Errorf("Python() = %q, want empty", Python())
	}
}

func TestFilePath(t *testing.T) {
	dir := setup(t)
	if got := FilePath(); got != filepath.Join(dir, "config.yaml") {
		t.Errorf("FilePath() = %q", got)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PYPROJ_SOURCE_DIR", "lib")
	t.Setenv("PYPROJ_CLEAN_PATTERNS", "dist,.mypy_cache")
	setup(t)

	if got := SourceDir(); got != "lib" {
		t.Errorf("SourceDir() = %q, want lib", got)
	}
	if got := strings.Join(CleanPatterns(), ","); got != "dist,.mypy_cache" {
		t.Errorf("CleanPatterns() = %q", got)
	}
}

func TestSetAndReload(t *testing.T) {
	setup(t)

	if err := Set(KeyAuthor, "Sam Doe"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := Set(KeyCleanPatterns, "__pycache__, build, dist"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := Set(KeyExploreDepth, "4"); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, err := os.Stat(FilePath()); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	viper.Reset()
	if err := Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got := Author(); got != "Sam Doe" {
		t.Errorf("Author() = %q after reload", got)
	}
	if got := Get(KeyCleanPatterns); got != "__pycache__,build,dist" {
		t.Errorf("Get(clean_patterns) = %q", got)
	}
	if got := ExploreDepth(); got != 4 {
		t.Errorf("ExploreDepth() = %d, want 4", got)
	}
}

func TestSet_Invalid(t *testing.T) {
	setup(t)

	tests := []struct{ key, value string }{
		{"colour", "blue"},
		{KeyExploreDepth, "deep"},
		{KeyExploreDepth, "-1"},
		{KeyFreezeTimeout, "soon"},
		{KeyCleanPatterns, " , "},
	}
	for _, tt := range tests {
		if err := Set(tt.key, tt.value); err == nil {
			t.Errorf("Set(%q, %q) = nil, want error", tt.key, tt.value)
		}
	}
	if _, err := os.Stat(FilePath()); !os.IsNotExist(err) {
		t.Error("invalid values must not create the config file")
	}
}

func TestLoad_Malformed(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("PYPROJ_HOME", dir)
	viper.Reset()
	t.Cleanup(viper.Reset)

	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("source_dir: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Load(); err == nil {
		t.Error("expected error for malformed config file")
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	if len(keys) != 8 {
		t.Errorf("Keys() = %v, want 8 keys", keys)
	}
	if !IsKey(KeyPython) || IsKey("mirror") {
		t.Error("IsKey() mismatch")
	}
}
