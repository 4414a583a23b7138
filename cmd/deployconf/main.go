package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Version information (set by build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// =============================================================================
// Exit Codes
// =============================================================================

const (
	ExitSuccess       = 0
	ExitConfigError   = 1
	ExitManifestError = 2
	ExitOutputError   = 3
	ExitUsageError    = 64
)

// CommandError carries the exit code for a failed command.
type CommandError struct {
	Op       string
	Err      error
	ExitCode int
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			fmt.Fprintf(stderr, "error: %v\n", cmdErr)
			return cmdErr.ExitCode
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return ExitUsageError
	}
	return ExitSuccess
}
