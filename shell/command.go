package shell

import (
	"fmt"
	"io"
	"strings"
)

// Command describes one command line and the process state it runs with.
type Command struct {
	// Line is the complete command line, passed to the shell unchanged.
	Line string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env is the complete environment in "KEY=VALUE" form. Nil means the
	// environment of the current process.
	Env []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Outcome is the completion status of a command.
//
// A zero Outcome is success. Code holds a non-zero exit status. Err is set
// when the command could not be started or did not run to completion, in
// which case Code is meaningless.
type Outcome struct {
	Line   string
	Code   int
	Err    error
	Stderr string // captured standard error, if any
}

// Success reports whether the command exited normally with status 0.
func (o Outcome) Success() bool { return o.Err == nil && o.Code == 0 }

// Abnormal reports whether the command failed to start or was terminated.
func (o Outcome) Abnormal() bool { return o.Err != nil }

// ExitCode returns the status a process should exit with to mirror o.
func (o Outcome) ExitCode() int {
	switch {
	case o.Success():
		return 0

	case o.Abnormal() || o.Code <= 0:
		return 1

	default:
		return o.Code
	}
}

// Check returns o as an error, or nil if o is a success.
func (o Outcome) Check() error {
	if o.Success() {
		return nil
	}

	return o
}

// Error implements the error interface.
func (o Outcome) Error() string {
	var sb strings.Builder

	if o.Line != "" {
		fmt.Fprintf(&sb, "%q: ", o.Line)
	}

	if o.Abnormal() {
		sb.WriteString(o.Err.Error())
	} else {
		fmt.Fprintf(&sb, "exit status %d", o.Code)
	}

	if s := strings.TrimSpace(o.Stderr); s != "" {
		sb.WriteString(": ")
		sb.WriteString(s)
	}

	return sb.String()
}

// Unwrap returns the cause of an abnormal termination.
func (o Outcome) Unwrap() error { return o.Err }
