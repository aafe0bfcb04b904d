package pkgindex

import (
	"context"
	"fmt"
	"time"
)

// DefaultTimeout bounds a single "pip freeze" invocation.
const DefaultTimeout = 30 * time.Second

// Provider supplies the index of installed distributions.
type Provider interface {
	Installed(ctx context.Context) (Index, error)
}

// Static is a Provider backed by a fixed index.
type Static Index

// Installed returns a copy of the static index.
func (s Static) Installed(_ context.Context) (Index, error) {
	idx := make(Index, len(s))
	for k, v := range s {
		idx[k] = v
	}
	return idx, nil
}

// Freezer produces raw "pip freeze" output. *runtime.Python satisfies it.
type Freezer interface {
	Freeze(ctx context.Context) (string, error)
}

// Freeze is a Provider that parses the output of a Freezer, bounded by Timeout.
type Freeze struct {
	Freezer Freezer
	Timeout time.Duration // zero means DefaultTimeout
}

// Installed runs the freezer and parses its output. A failed or timed out
// invocation is returned as an error; callers decide whether that is fatal.
func (f *Freeze) Installed(ctx context.Context) (Index, error) {
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	raw, err := f.Freezer.Freeze(ctx)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("listing installed packages: timed out after %s", timeout)
		}
		return nil, fmt.Errorf("listing installed packages: %w", err)
	}
	return Parse(raw), nil
}
