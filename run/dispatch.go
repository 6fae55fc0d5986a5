package run

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ardnew/aka/lang"
	"github.com/ardnew/aka/log"
	"github.com/ardnew/aka/shell"
)

// Predefined errors (sentinel values).
var (
	ErrStackUnderflow = lang.NewError("directory stack underflow")
	ErrChdir          = lang.NewError("failed to change directory")
	ErrSetenv         = lang.NewError("failed to set environment variable")
	ErrCommand        = lang.NewError("command failed")
	ErrScript         = lang.NewError("script failed")
)

// Shell runs command lines.
type Shell interface {
	Spawn(ctx context.Context, c shell.Command) shell.Outcome
	Capture(ctx context.Context, c shell.Command) (string, shell.Outcome)
}

// Engine evaluates script source and renders its results.
type Engine interface {
	Evaluate(ctx context.Context, source string) (any, error)
	Display(v any) (string, error)
}

// Dispatcher applies directives to a [Process].
type Dispatcher struct {
	Process Process
	Shell   Shell
	Engine  Engine

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	stack DirStack
}

// Depth returns the number of directories saved by @pushd and not yet
// restored.
func (d *Dispatcher) Depth() int { return d.stack.Len() }

// Apply performs a single directive.
func (d *Dispatcher) Apply(ctx context.Context, dir lang.Directive) error {
	log.DebugContext(ctx, "dispatch",
		slog.String("directive", dir.String()),
		slog.Int("depth", d.stack.Len()),
	)

	switch x := dir.(type) {
	case lang.SetEnv:
		if err := d.Process.Setenv(x.Key, x.Value); err != nil {
			return ErrSetenv.Wrap(err).With(slog.String("key", x.Key))
		}

		return nil

	case lang.PushDir:
		return d.pushd(x.Path)

	case lang.PopDir:
		return d.popd()

	case lang.ShellCommand:
		return d.spawn(ctx, x.Text)

	case lang.ScriptSource:
		return d.script(ctx, x.Text)

	default:
		panic(fmt.Sprintf("run: unhandled directive type %T", dir))
	}
}

func (d *Dispatcher) pushd(path string) error {
	cur, err := d.Process.Getwd()
	if err != nil {
		return ErrChdir.Wrap(err).With(slog.String("path", path))
	}

	if err := d.Process.Chdir(path); err != nil {
		return ErrChdir.Wrap(err).With(slog.String("path", path))
	}

	d.stack.Push(cur)

	return nil
}

func (d *Dispatcher) popd() error {
	prev, ok := d.stack.Pop()
	if !ok {
		return ErrStackUnderflow.Wrap(fmt.Errorf("%s%s with no saved directory",
			lang.DirectivePrefix, lang.KeywordPopd))
	}

	if err := d.Process.Chdir(prev); err != nil {
		return ErrChdir.Wrap(err).With(slog.String("path", prev))
	}

	return nil
}

func (d *Dispatcher) spawn(ctx context.Context, line string) error {
	c, err := d.command(line)
	if err != nil {
		return ErrCommand.Wrap(err)
	}

	c.Stdin, c.Stdout, c.Stderr = d.Stdin, d.Stdout, d.Stderr

	if err := d.Shell.Spawn(ctx, c).Check(); err != nil {
		return ErrCommand.Wrap(err)
	}

	return nil
}

// Capture runs line and returns its trimmed standard output. A failing
// command is an error carrying its [shell.Outcome].
func (d *Dispatcher) Capture(ctx context.Context, line string) (string, error) {
	c, err := d.command(line)
	if err != nil {
		return "", err
	}

	c.Stdin = d.Stdin

	out, o := d.Shell.Capture(ctx, c)
	if err := o.Check(); err != nil {
		return "", err
	}

	log.TraceContext(ctx, "captured",
		slog.String("command", line),
		slog.String("output", out),
	)

	return out, nil
}

// Interpolate evaluates an inline expression and renders its result.
func (d *Dispatcher) Interpolate(ctx context.Context, source string) (string, error) {
	v, err := d.Engine.Evaluate(ctx, source)
	if err != nil {
		return "", err
	}

	s, err := d.Engine.Display(v)
	if err != nil {
		return "", err
	}

	log.TraceContext(ctx, "interpolated",
		slog.String("source", source),
		slog.String("output", s),
	)

	return s, nil
}

func (d *Dispatcher) script(ctx context.Context, source string) error {
	v, err := d.Engine.Evaluate(ctx, source)
	if err != nil {
		return ErrScript.Wrap(err).At(source)
	}

	if v == nil {
		return nil
	}

	s, err := d.Engine.Display(v)
	if err != nil {
		return ErrScript.Wrap(err).At(source)
	}

	if d.Stdout != nil {
		if _, err := fmt.Fprintln(d.Stdout, s); err != nil {
			return ErrScript.Wrap(err)
		}
	}

	return nil
}

// command describes line in the current process state.
func (d *Dispatcher) command(line string) (shell.Command, error) {
	dir, err := d.Process.Getwd()
	if err != nil {
		return shell.Command{}, err
	}

	return shell.Command{
		Line: line,
		Dir:  dir,
		Env:  d.Process.Environ(),
	}, nil
}
