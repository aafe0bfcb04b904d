package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/joho/godotenv"
)

// EnvFileName is loaded from the project root into the environment of test runs.
const EnvFileName = ".env"

// Python executes a Python interpreter on behalf of a project.
type Python struct {
	// Bin is the interpreter path, usually from LookupInterpreter.
	Bin string
	// Dir is the working directory for every invocation. Empty means the
	// current directory.
	Dir string

	// Stdout and Stderr can be set for testing; defaults to os.Stdout/os.Stderr.
	// Only UnitTest streams to them; the other calls capture silently.
	Stdout io.Writer
	Stderr io.Writer
}

// NewPython resolves the interpreter and returns a runtime rooted at dir.
func NewPython(configured, dir string) (*Python, error) {
	bin, err := LookupInterpreter(configured)
	if err != nil {
		return nil, err
	}
	return &Python{Bin: bin, Dir: dir}, nil
}

// Version runs "python --version". Python 2 prints the banner on stderr, so
// both streams are inspected.
func (p *Python) Version(ctx context.Context) (*semver.Version, error) {
	out, err := p.capture(ctx, "--version")
	if err != nil {
		return nil, fmt.Errorf("probing interpreter version: %w", err)
	}
	return ParseVersion(out.Stdout + out.Stderr)
}

// Freeze returns the raw output of "pip freeze". It satisfies
// pkgindex.Freezer.
func (p *Python) Freeze(ctx context.Context) (string, error) {
	out, err := p.capture(ctx, "-m", "pip", "freeze", "-q", "-q", "-q")
	if err != nil {
		return "", fmt.Errorf("running pip freeze: %w", err)
	}
	if !out.Success() {
		msg := strings.TrimSpace(out.Stderr)
		if msg == "" {
			msg = "no output"
		}
		return "", fmt.Errorf("pip freeze exited with status %d: %s", out.ExitCode, msg)
	}
	return out.Stdout, nil
}

// UnitTest runs "python -m unittest <target>" from the project root with
// output streamed to the configured writers. A target naming an existing
// directory is run through test discovery. A failing suite is reported
// through Output.ExitCode, not as an error.
func (p *Python) UnitTest(ctx context.Context, target string) (*Output, error) {
	env, err := p.testEnv()
	if err != nil {
		return nil, fmt.Errorf("building test environment: %w", err)
	}

	cmd := exec.CommandContext(ctx, p.Bin, p.unitTestArgs(target)...)
	cmd.Dir = p.Dir
	cmd.Env = env

	stdout := p.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := p.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}
	code, ok := exitCode(err)
	if !ok {
		return output, fmt.Errorf("executing unittest: %w", err)
	}
	output.ExitCode = code
	return output, nil
}

// unitTestArgs discovers test*.py files when target is a directory of the
// project, since "-m unittest <package>" only runs tests the package's
// __init__ imports.
func (p *Python) unitTestArgs(target string) []string {
	if info, err := os.Stat(filepath.Join(p.Dir, filepath.FromSlash(target))); err == nil && info.IsDir() {
		return []string{"-m", "unittest", "discover", "-s", target, "-t", "."}
	}
	return []string{"-m", "unittest", target}
}

// capture runs the interpreter with args and buffers both streams.
func (p *Python) capture(ctx context.Context, args ...string) (*Output, error) {
	cmd := exec.CommandContext(ctx, p.Bin, args...)
	cmd.Dir = p.Dir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	code, ok := exitCode(err)
	if !ok {
		return nil, err
	}
	return &Output{ExitCode: code, Stdout: stdoutBuf.String(), Stderr: stderrBuf.String()}, nil
}

// testEnv inherits the process environment and overlays variables from the
// project's .env file when one exists.
func (p *Python) testEnv() ([]string, error) {
	env := os.Environ()

	path := filepath.Join(p.Dir, EnvFileName)
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return env, nil
		}
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = setEnv(env, k, vars[k])
	}
	return env, nil
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if strings.HasPrefix(e, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}

// TestTarget maps the optional test name to the unittest target. No name
// runs the whole tests directory; a name selects tests/<name>.py, with the
// extension added only when missing.
func TestTarget(name string) string {
	if name == "" {
		return "tests"
	}
	if !strings.HasSuffix(name, ".py") {
		name += ".py"
	}
	return "tests/" + name
}
