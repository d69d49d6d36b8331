package golist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	depmaperrors "github.com/matzehuels/depmap/pkg/errors"
)

// DefaultPatterns is the package pattern list used when none is given.
var DefaultPatterns = []string{"./..."}

// Runner invokes `go list -deps -json` and captures its output.
//
// The zero value runs the go binary found on PATH in the current directory.
type Runner struct {
	// Dir is the working directory for the go command.
	Dir string

	// GoBin overrides the go binary. Defaults to "go".
	GoBin string

	// Env holds extra environment entries appended to the current process
	// environment (e.g. "GOFLAGS=-mod=mod").
	Env []string
}

// Args returns the go command arguments for the given patterns.
func (r *Runner) Args(patterns ...string) []string {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	return append([]string{"list", "-deps", "-json"}, patterns...)
}

// Run executes go list for patterns and returns stdout unmodified.
//
// A non-zero exit is reported as GO_LIST_FAILED carrying go's stderr, or
// "go list failed: <code>" when stderr is empty. Context cancellation kills
// the process and returns an error wrapping ctx.Err().
func (r *Runner) Run(ctx context.Context, patterns ...string) ([]byte, error) {
	bin := r.GoBin
	if bin == "" {
		bin = "go"
	}

	cmd := exec.CommandContext(ctx, bin, r.Args(patterns...)...)
	cmd.Dir = r.Dir
	if len(r.Env) > 0 {
		cmd.Env = append(os.Environ(), r.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, depmaperrors.Wrap(depmaperrors.ErrCodeGoList, ctxErr, "go list interrupted")
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				msg = fmt.Sprintf("go list failed: %d", exitErr.ExitCode())
			} else {
				msg = "go list failed"
			}
		}
		return nil, depmaperrors.Wrap(depmaperrors.ErrCodeGoList, err, "%s", msg)
	}
	return stdout.Bytes(), nil
}

// ModulePath returns the module path declared in dir/go.mod.
func ModulePath(dir string) (string, error) {
	path := filepath.Join(dir, "go.mod")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", depmaperrors.Wrap(depmaperrors.ErrCodeFileNotFound, err, "no go.mod in %s", dir)
		}
		return "", depmaperrors.Wrap(depmaperrors.ErrCodeInternal, err, "read %s", path)
	}
	mod := modfile.ModulePath(data)
	if mod == "" {
		return "", depmaperrors.New(depmaperrors.ErrCodeInvalidModule, "module directive not found in %s", path)
	}
	return mod, nil
}
