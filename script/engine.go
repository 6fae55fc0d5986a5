package script

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/aka/lang"
	"github.com/ardnew/aka/log"
)

// Predefined errors (sentinel values).
var (
	ErrCompile  = lang.NewError("script compile failed")
	ErrEvaluate = lang.NewError("script evaluation failed")
	ErrDisplay  = lang.NewError("unknown value type")
)

// Engine compiles and runs script source. The zero value is not usable;
// construct one with [New].
type Engine struct {
	args    []string
	environ func() []string
	cwd     func() (string, error)
	out     io.Writer

	mu       sync.Mutex
	programs map[uint64]*vm.Program
}

// Option configures an [Engine].
type Option func(*Engine)

// WithArgs sets the invocation arguments. args[0] is exposed as NAME and
// the rest as ARGV.
func WithArgs(args []string) Option {
	return func(e *Engine) { e.args = append([]string(nil), args...) }
}

// WithEnviron sets the source of the process environment, called on every
// evaluation so that scripts observe earlier @set directives.
func WithEnviron(fn func() []string) Option {
	return func(e *Engine) { e.environ = fn }
}

// WithCwd sets the source of the working directory reported by cwd().
func WithCwd(fn func() (string, error)) Option {
	return func(e *Engine) { e.cwd = fn }
}

// WithOutput sets the writer used by print and puts.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// New returns an engine bound to the current process unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{
		environ:  os.Environ,
		cwd:      os.Getwd,
		out:      os.Stdout,
		programs: make(map[uint64]*vm.Program),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate compiles and runs source, returning its result. Empty source
// evaluates to nil.
func (e *Engine) Evaluate(ctx context.Context, source string) (any, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, nil
	}

	env := e.env()

	program, err := e.compile(ctx, source, env)
	if err != nil {
		return nil, err
	}

	result, err := vm.Run(program, env)
	if err != nil {
		return nil, ErrEvaluate.Wrap(err).
			With(slog.String("source", source))
	}

	log.TraceContext(ctx, "script evaluated",
		slog.String("source", source),
		slog.Any("result", result),
	)

	return result, nil
}

// Display renders a result for interpolation into a command line.
func (e *Engine) Display(v any) (string, error) {
	return Display(v)
}

// compile returns the cached program for source, compiling it on first use.
func (e *Engine) compile(
	ctx context.Context,
	source string,
	env map[string]any,
) (*vm.Program, error) {
	key := xxh3.HashString(source)

	e.mu.Lock()
	defer e.mu.Unlock()

	if p, ok := e.programs[key]; ok {
		return p, nil
	}

	p, err := expr.Compile(source, expr.Env(env))
	if err != nil {
		return nil, ErrCompile.Wrap(err).
			With(slog.String("source", source))
	}

	log.TraceContext(ctx, "script compiled",
		slog.String("source", source),
		slog.Uint64("hash", key),
	)

	e.programs[key] = p

	return p, nil
}
