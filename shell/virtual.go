package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// Virtual interprets command lines in-process with a POSIX shell
// interpreter. External programs are still executed, but builtins, working
// directory and environment stay local to each run.
type Virtual struct{}

// Spawn runs c with its configured standard streams.
func (v Virtual) Spawn(ctx context.Context, c Command) Outcome {
	return v.run(ctx, c, c.Stdout, c.Stderr)
}

// Capture runs c and returns its trimmed standard output.
func (v Virtual) Capture(ctx context.Context, c Command) (string, Outcome) {
	var stdout, stderr bytes.Buffer

	out := v.run(ctx, c, &stdout, &stderr)
	out.Stderr = stderr.String()

	return strings.TrimSpace(stdout.String()), out
}

func (Virtual) run(
	ctx context.Context,
	c Command,
	stdout, stderr io.Writer,
) Outcome {
	out := Outcome{Line: c.Line}

	prog, err := syntax.NewParser().Parse(strings.NewReader(c.Line), "")
	if err != nil {
		out.Err = fmt.Errorf("parse: %w", err)

		return out
	}

	env := c.Env
	if env == nil {
		env = os.Environ()
	}

	if stdout == nil {
		stdout = io.Discard
	}

	if stderr == nil {
		stderr = io.Discard
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(c.Stdin, stdout, stderr),
	}

	if c.Dir != "" {
		opts = append(opts, interp.Dir(c.Dir))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		out.Err = err

		return out
	}

	err = runner.Run(ctx, prog)
	if err == nil {
		return out
	}

	var status interp.ExitStatus
	if errors.As(err, &status) {
		out.Code = int(status)

		return out
	}

	out.Err = err

	return out
}
