package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/spf13/afero"

	"github.com/ardnew/aka/alias"
	"github.com/ardnew/aka/run"
	"github.com/ardnew/aka/shell"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Shell names accepted by --shell.
const (
	ShellNative  = "native"
	ShellVirtual = "virtual"
)

// Shells returns the accepted shell names, default first.
func Shells() []string { return []string{ShellNative, ShellVirtual} }

// Globals holds the settings shared by every command. Zero fields are
// replaced with the host defaults by the commands that use them.
type Globals struct {
	Dir   string // alias directory
	Shell string // one of [Shells]

	Fs      afero.Fs
	Process run.Process
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

type globalsKey struct{}

// WithGlobals returns a new context.Context containing g.
func WithGlobals(ctx context.Context, g Globals) context.Context {
	return context.WithValue(ctx, globalsKey{}, g)
}

// globalsFrom retrieves the Globals stored in ctx by WithGlobals, with every
// unset field defaulted.
func globalsFrom(ctx context.Context) Globals {
	g, _ := ctx.Value(globalsKey{}).(Globals)

	if g.Fs == nil {
		g.Fs = afero.NewOsFs()
	}

	if g.Process == nil {
		g.Process = run.OS{}
	}

	if g.Stdin == nil {
		g.Stdin = os.Stdin
	}

	if g.Stdout == nil {
		g.Stdout = os.Stdout
	}

	if g.Stderr == nil {
		g.Stderr = os.Stderr
	}

	return g
}

func (g Globals) store() *alias.Store {
	return alias.NewStore(g.Fs, g.Dir)
}

func (g Globals) shell() run.Shell {
	if g.Shell == ShellVirtual {
		return shell.Virtual{}
	}

	return shell.Native{}
}

// invocation returns the argument vector of an alias run: the alias name
// followed by its arguments. A leading "--" ends aka's own flags and is not
// an argument of the alias; kong keeps it in a passthrough argument.
func invocation(name string, args []string) []string {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}

	return append([]string{name}, args...)
}
