package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
)

// Native runs command lines with the host shell.
type Native struct {
	// Program is the shell executable. Empty selects "cmd" on Windows and
	// "sh" elsewhere.
	Program string
	// Flags precede the command line. Nil selects "/c" or "-c" to match the
	// default Program.
	Flags []string
}

// Spawn runs c with its configured standard streams.
func (n Native) Spawn(ctx context.Context, c Command) Outcome {
	cmd := n.command(ctx, c)
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	return n.outcome(c, cmd.Run(), "")
}

// Capture runs c and returns its trimmed standard output.
func (n Native) Capture(ctx context.Context, c Command) (string, Outcome) {
	var stdout, stderr bytes.Buffer

	cmd := n.command(ctx, c)
	cmd.Stdin = c.Stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	out := n.outcome(c, cmd.Run(), stderr.String())

	return strings.TrimSpace(stdout.String()), out
}

func (n Native) command(ctx context.Context, c Command) *exec.Cmd {
	program, flags := n.Program, n.Flags

	if program == "" {
		program = "sh"
		if runtime.GOOS == "windows" {
			program = "cmd"
		}
	}

	if flags == nil {
		flags = []string{"-c"}
		if runtime.GOOS == "windows" {
			flags = []string{"/c"}
		}
	}

	args := append(append([]string(nil), flags...), c.Line)

	cmd := exec.CommandContext(ctx, program, args...)
	cmd.Dir = c.Dir
	cmd.Env = c.Env

	return cmd
}

func (Native) outcome(c Command, err error, stderr string) Outcome {
	out := Outcome{Line: c.Line, Stderr: stderr}
	if err == nil {
		return out
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		out.Code = exitErr.ExitCode()

		return out
	}

	out.Err = err

	return out
}
