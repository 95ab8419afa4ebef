package ci

import (
	"errors"
	"os/exec"
)

// ExitCode maps a harness error back to a process exit status. Exit codes of
// failed external tools pass through unmodified; any other error maps to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}

	return 1
}
