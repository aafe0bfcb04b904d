package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Cyclip/pyproj/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Configuration keys.
const (
	KeyPython           = "python"
	KeySourceDir        = "source_dir"
	KeyRequirementsFile = "requirements_file"
	KeyExploreDepth     = "explore_depth"
	KeyFreezeTimeout    = "freeze_timeout"
	KeyCleanPatterns    = "clean_patterns"
	KeyAuthor           = "author"
	KeyLicense          = "license"
)

var defaults = map[string]interface{}{
	KeyPython:           "",
	KeySourceDir:        "src",
	KeyRequirementsFile: "requirements.txt",
	KeyExploreDepth:     10,
	KeyFreezeTimeout:    "30s",
	KeyCleanPatterns:    []string{"__pycache__", "build"},
	KeyAuthor:           "",
	KeyLicense:          "",
}

// Keys returns every supported configuration key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsKey reports whether key is a supported configuration key.
func IsKey(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Dir returns the path to the config directory (~/.pyproj/). PYPROJ_HOME
// overrides it.
func Dir() string {
	if dir := os.Getenv(branding.EnvVar("home")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.pyproj/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper with defaults, the config file and the environment.
// A missing config file is not an error; a malformed one is.
func Load() error {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(FilePath()); os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// Get returns a config value by key rendered as a string. List values are
// joined with commas.
func Get(key string) string {
	if key == KeyCleanPatterns {
		return strings.Join(CleanPatterns(), ",")
	}
	return viper.GetString(key)
}

// Set validates and writes a config key-value pair, then saves the config
// file. clean_patterns takes a comma-separated list.
func Set(key, value string) error {
	if !IsKey(key) {
		return fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	parsed, err := parseValue(key, value)
	if err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, parsed)

	configFile := FilePath()
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func parseValue(key, value string) (interface{}, error) {
	switch key {
	case KeyExploreDepth:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
		}
		return n, nil
	case KeyFreezeTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("%s must be a positive duration such as 30s, got %q", key, value)
		}
		return value, nil
	case KeyCleanPatterns:
		var patterns []string
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				patterns = append(patterns, p)
			}
		}
		if len(patterns) == 0 {
			return nil, fmt.Errorf("%s must name at least one directory", key)
		}
		return patterns, nil
	}
	return value, nil
}

// Python returns the configured interpreter, empty for auto-detection.
func Python() string { return viper.GetString(KeyPython) }

// SourceDir returns the directory "build" scans.
func SourceDir() string { return viper.GetString(KeySourceDir) }

// RequirementsFile returns the manifest path "build" writes.
func RequirementsFile() string { return viper.GetString(KeyRequirementsFile) }

// ExploreDepth returns the directory depth bound for "build" and "clean".
func ExploreDepth() int { return viper.GetInt(KeyExploreDepth) }

// FreezeTimeout bounds the installed-package query.
func FreezeTimeout() time.Duration { return viper.GetDuration(KeyFreezeTimeout) }

// CleanPatterns returns the directory names "clean" removes. An environment
// override is read as a comma-separated list.
func CleanPatterns() []string {
	var patterns []string
	for _, p := range viper.GetStringSlice(KeyCleanPatterns) {
		for _, part := range strings.Split(p, ",") {
			if part = strings.TrimSpace(part); part != "" {
				patterns = append(patterns, part)
			}
		}
	}
	return patterns
}

// Author returns the default author offered by "create".
func Author() string { return viper.GetString(KeyAuthor) }

// License returns the default license offered by "create".
func License() string { return viper.GetString(KeyLicense) }
