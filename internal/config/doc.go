// Package config manages user-level settings stored at ~/.pyproj/config.yaml.
// Every key has a default and can be overridden with a PYPROJ_-prefixed
// environment variable, e.g. PYPROJ_SOURCE_DIR.
package config
