package launch

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"syscall"

	"go.uber.org/multierr"
)

// Proc is a handle to a launched peer process.
type Proc struct {
	cmd *exec.Cmd
}

// Start launches the binary at path with the given arguments. The child
// inherits the parent's stdout and stderr so its status lines interleave
// with ours.
func Start(path string, args ...string) (*Proc, error) {
	cmd := exec.Command(path, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("launch: start %q: %w", path, err)
	}

	slog.Info("launch: peer started", "path", path, "pid", cmd.Process.Pid)
	return &Proc{cmd: cmd}, nil
}

// Pid returns the child's process ID.
func (p *Proc) Pid() int { return p.cmd.Process.Pid }

// Wait blocks until the child exits and reaps it. A non-zero exit status is
// returned as an *exec.ExitError.
func (p *Proc) Wait() error {
	if err := p.cmd.Wait(); err != nil {
		return fmt.Errorf("launch: wait: %w", err)
	}
	return nil
}

// Terminate sends SIGTERM to the child and reaps it. Death by our own
// signal is the expected outcome and is not reported as an error; signal
// delivery failures and unexpected wait errors are combined.
func (p *Proc) Terminate() error {
	var errs error

	if err := p.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("launch: signal: %w", err))
	}

	if err := p.cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The child died to a signal or exited non-zero while being torn
			// down; either way it is reaped, which is all Terminate promises.
			slog.Debug("launch: peer terminated", "pid", p.Pid(), "state", exitErr.ProcessState)
		} else {
			errs = multierr.Append(errs, fmt.Errorf("launch: reap: %w", err))
		}
	}

	return errs
}
