package runtime

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrInterpreterNotFound is returned when no Python interpreter is on PATH.
var ErrInterpreterNotFound = errors.New("python interpreter not found on PATH")

// Output captures the result of a process run.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited with status 0.
func (o *Output) Success() bool {
	return o.ExitCode == 0
}

// defaultInterpreters are tried in order when no interpreter is configured.
var defaultInterpreters = []string{"python3", "python"}

// LookupInterpreter resolves the interpreter binary. A configured name or
// path is used as given; otherwise python3 and then python are searched.
func LookupInterpreter(configured string) (string, error) {
	if configured != "" {
		bin, err := exec.LookPath(configured)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrInterpreterNotFound, configured, err)
		}
		return bin, nil
	}
	for _, name := range defaultInterpreters {
		if bin, err := exec.LookPath(name); err == nil {
			return bin, nil
		}
	}
	return "", fmt.Errorf("%w (tried %s)", ErrInterpreterNotFound, strings.Join(defaultInterpreters, ", "))
}

var versionPattern = regexp.MustCompile(`(?i)python\s+(\d+\.\d+(?:\.\d+)?[0-9A-Za-z.+-]*)`)

// ParseVersion extracts the interpreter version from "--version" output such
// as "Python 3.11.4". Pre-release suffixes like "3.13.0rc1" are accepted.
func ParseVersion(output string) (*semver.Version, error) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return nil, fmt.Errorf("unrecognised version output %q", strings.TrimSpace(output))
	}

	raw := m[1]
	// CPython writes pre-releases as 3.13.0rc1; semver wants 3.13.0-rc1.
	if i := strings.IndexAny(raw, "abr"); i > 0 && raw[i-1] >= '0' && raw[i-1] <= '9' && !strings.Contains(raw, "-") {
		raw = raw[:i] + "-" + raw[i:]
	}
	v, err := semver.NewVersion(strings.TrimSuffix(raw, "+"))
	if err != nil {
		return nil, fmt.Errorf("parsing interpreter version %q: %w", m[1], err)
	}
	return v, nil
}

// ShortVersion formats v as "major.minor", the form used in trove classifiers.
func ShortVersion(v *semver.Version) string {
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

// exitCode extracts the status of a finished process. ok is false when err
// is not an exit status (the process never started).
func exitCode(err error) (code int, ok bool) {
	if err == nil {
		return 0, true
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return -1, false
}
