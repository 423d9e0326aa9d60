package executor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// ExitError reports that the spawned command ran but terminated with a
// non-zero exit code.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with status %d", e.Code)
}

// Run executes a command string through the host's shell.
func Run(command string) error {
	return RunWithDebug(command, false)
}

// RunWithDebug executes a command string through the host's shell, with
// optional debug logging. The child inherits stdin/stdout/stderr so the
// operator sees live output; pipes, globs, and redirection in the generated
// command behave as on a real terminal. There is no timeout: execution
// duration is under full operator control.
func RunWithDebug(command string, debug bool) error {
	var shell string
	var shellArgs []string

	if runtime.GOOS == "windows" {
		shell = "cmd"
		shellArgs = []string{"/C", command}
	} else {
		shell = os.Getenv("SHELL")
		if shell == "" {
			shell = "/bin/sh"
		}
		shellArgs = []string{"-c", command}
	}

	if debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Executor: using shell %s\n", shell)
		fmt.Fprintf(os.Stderr, "[DEBUG] Executor: executing command: %q\n", command)
	}

	cmd := exec.Command(shell, shellArgs...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if debug {
				fmt.Fprintf(os.Stderr, "[DEBUG] Executor: command failed with exit code %d\n", exitErr.ExitCode())
			}
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to start command: %w", err)
	}

	if debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Executor: command completed successfully\n")
	}

	return nil
}
