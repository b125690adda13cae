package process

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/launchdarkly/process-test-harness/daemon"
	"github.com/launchdarkly/process-test-harness/logging"
)

// Launcher starts the daemon program.
type Launcher interface {
	// Launch starts the program described by args and returns its process ID.
	//
	// Unless foreground is true, Launch then waits for the program to exit: a daemon usually
	// forks its long-running process and lets the launched one return. A program that fails
	// to start is an error; a program that starts and exits unsuccessfully is not. If ctx is
	// cancelled during that wait, the program is killed and reaped before Launch returns.
	Launch(ctx context.Context, args []string, foreground bool) (int, error)
}

// OSLauncher starts the daemon as a child process that shares the harness's standard output and
// standard error.
type OSLauncher struct {
	Stdout io.Writer
	Stderr io.Writer
	logger logging.Logger
}

func NewOSLauncher(logger logging.Logger) *OSLauncher {
	if logger == nil {
		logger = logging.NullLogger()
	}
	return &OSLauncher{Stdout: os.Stdout, Stderr: os.Stderr, logger: logger}
}

func (l *OSLauncher) Launch(ctx context.Context, args []string, foreground bool) (int, error) {
	if len(args) == 0 {
		return daemon.UnknownPID, errors.New("empty command line")
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	cmd.SysProcAttr = sysProcAttr()

	if err := cmd.Start(); err != nil {
		return daemon.UnknownPID, fmt.Errorf("start %s: %w", args[0], err)
	}
	pid := cmd.Process.Pid
	l.logger.Printf("Launched %s with pid %d", args[0], pid)

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	if foreground {
		go func() {
			err := <-done
			l.logger.Printf("Daemon process %d exited: %v", pid, err)
		}()
		return pid, nil
	}

	select {
	case err := <-done:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			l.logger.Printf("Launcher process %d exited with code %d", pid, exitErr.ExitCode())
		} else if err != nil {
			l.logger.Printf("Waiting for launcher process %d failed: %s", pid, err)
		}
		return pid, nil
	case <-ctx.Done():
		if err := killProcessGroup(pid); err != nil {
			l.logger.Printf("Killing launcher process %d failed: %s", pid, err)
			_ = cmd.Process.Kill()
		}
		<-done
		return daemon.UnknownPID, fmt.Errorf("waiting for launcher process %d: %w", pid, ctx.Err())
	}
}
