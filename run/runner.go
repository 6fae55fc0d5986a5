package run

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/aka/lang"
	"github.com/ardnew/aka/log"
	"github.com/ardnew/aka/shell"
)

// Runner executes alias bodies.
type Runner struct {
	Dispatcher
}

// Option configures a [Runner].
type Option func(*Runner)

// WithProcess sets the process state directives act on.
func WithProcess(p Process) Option {
	return func(r *Runner) { r.Process = p }
}

// WithShell sets the executor for command lines and substitutions.
func WithShell(s Shell) Option {
	return func(r *Runner) { r.Shell = s }
}

// WithEngine sets the script engine for script blocks and expressions.
func WithEngine(e Engine) Option {
	return func(r *Runner) { r.Engine = e }
}

// WithStdio sets the standard streams of spawned commands.
func WithStdio(in io.Reader, out, errw io.Writer) Option {
	return func(r *Runner) {
		r.Stdin, r.Stdout, r.Stderr = in, out, errw
	}
}

// New returns a runner acting on the current process with the native shell
// and standard streams. An [Engine] must be supplied with [WithEngine]
// before bodies containing scripts are run.
func New(opts ...Option) *Runner {
	r := &Runner{
		Dispatcher: Dispatcher{
			Process: OS{},
			Shell:   shell.Native{},
			Stdin:   os.Stdin,
			Stdout:  os.Stdout,
			Stderr:  os.Stderr,
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Run executes body with args, where args[0] is the invoked name.
func (r *Runner) Run(ctx context.Context, body string, args []string) error {
	text, err := lang.SubstituteArgs(body, args)
	if err != nil {
		return err
	}

	segs, err := lang.Split(text)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "run",
		slog.String("name", first(args)),
		slog.Int("args", max(len(args)-1, 0)),
		slog.Int("segments", len(segs)),
	)

	for _, seg := range segs {
		if err := r.step(ctx, seg); err != nil {
			return err
		}
	}

	return nil
}

// step expands, classifies and applies a single segment.
func (r *Runner) step(ctx context.Context, seg lang.Segment) error {
	if line, ok := seg.(lang.ShellLine); ok {
		text, err := r.expand(ctx, line.Text)
		if err != nil {
			return err
		}

		text = strings.TrimSpace(text)
		if text == "" {
			return nil
		}

		seg = lang.ShellLine{Text: text, Line: line.Line}
	}

	d, err := lang.Classify(seg)
	if err != nil {
		return err
	}

	src := source(seg)

	return lang.Decorate(r.Apply(ctx, d), src, lang.Range{End: len(src)})
}

// source returns the text of a segment as it was dispatched.
func source(seg lang.Segment) string {
	switch s := seg.(type) {
	case lang.ShellLine:
		return s.Text

	case lang.ScriptBlock:
		return s.Text

	default:
		return ""
	}
}

// expand resolves the inline substitutions of a shell line.
func (r *Runner) expand(ctx context.Context, line string) (string, error) {
	resolvers := lang.Resolvers{
		Command: func(inner string) (string, error) {
			return r.Capture(ctx, inner)
		},
	}

	if r.Engine != nil {
		resolvers.Expression = func(inner string) (string, error) {
			return r.Interpolate(ctx, inner)
		}
	}

	return lang.Expand(line, resolvers)
}

func first(args []string) string {
	if len(args) == 0 {
		return ""
	}

	return args[0]
}
