// Package build invokes the local build tool that produces the release
// artifact.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	apperrors "github.com/apkship/apkship/internal/errors"
	"github.com/apkship/apkship/internal/logging"
)

// Runner executes the configured build command, wiring its output through to
// the operator.
type Runner struct {
	command string
	args    []string
	dir     string
	stdout  io.Writer
	stderr  io.Writer
	log     logging.Logger
}

func NewRunner(command string, args []string, dir string, log logging.Logger) *Runner {
	return &Runner{
		command: command,
		args:    args,
		dir:     dir,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		log:     log,
	}
}

// SetOutput redirects the build tool's stdout and stderr.
func (r *Runner) SetOutput(stdout, stderr io.Writer) {
	r.stdout = stdout
	r.stderr = stderr
}

// Run executes the build command in the configured working directory. A
// non-zero exit status or a spawn failure wraps ErrBuild.
func (r *Runner) Run(ctx context.Context) error {
	if r.command == "" {
		return apperrors.NewBuildError("no build command configured", nil)
	}

	r.log.Info(ctx, "running build", "command", r.command, "args", strings.Join(r.args, " "), "dir", r.dir)
	cmd := exec.CommandContext(ctx, r.command, r.args...)
	cmd.Dir = r.dir
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return apperrors.NewBuildError(fmt.Sprintf("build exited with status %d", exitErr.ExitCode()), err)
		}
		return apperrors.NewBuildError("failed to run build command", err)
	}
	r.log.Info(ctx, "build succeeded")
	return nil
}
