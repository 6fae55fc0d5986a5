package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/aka/log"
	"github.com/ardnew/aka/run"
	"github.com/ardnew/aka/script"
)

// Run executes an alias.
type Run struct {
	Name string   `arg:"" help:"Alias name"                  name:"name"`
	Args []string `arg:"" help:"Arguments passed to the alias" name:"args" optional:"" passthrough:""`
}

// Argv returns the argument vector the alias runs with: its name followed by
// the user arguments.
func (r *Run) Argv() []string {
	return invocation(r.Name, r.Args)
}

// Run executes the run command.
func (r *Run) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	g := globalsFrom(ctx)

	body, err := g.store().Read(ctx, r.Name)
	if err != nil {
		return err
	}

	args := r.Argv()

	engine := script.New(
		script.WithArgs(args),
		script.WithEnviron(g.Process.Environ),
		script.WithCwd(g.Process.Getwd),
		script.WithOutput(g.Stdout),
	)

	runner := run.New(
		run.WithProcess(g.Process),
		run.WithShell(g.shell()),
		run.WithEngine(engine),
		run.WithStdio(g.Stdin, g.Stdout, g.Stderr),
	)

	log.DebugContext(ctx, "run alias",
		slog.String("name", r.Name),
		slog.Any("args", args[1:]),
		slog.String("shell", g.Shell),
	)

	return runner.Run(ctx, body, args)
}
