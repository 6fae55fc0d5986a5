package run_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/aka/lang"
	"github.com/ardnew/aka/run"
	"github.com/ardnew/aka/shell"
)

// fakeProcess accepts a chdir to any path in dirs.
type fakeProcess struct {
	dir  string
	dirs map[string]bool
	env  []string
}

func (p *fakeProcess) Getwd() (string, error) { return p.dir, nil }

func (p *fakeProcess) Chdir(dir string) error {
	if !p.dirs[dir] {
		return &fs.PathError{Op: "chdir", Path: dir, Err: fs.ErrNotExist}
	}

	p.dir = dir

	return nil
}

func (p *fakeProcess) Setenv(key, value string) error {
	p.env = append(p.env, key+"="+value)

	return nil
}

func (p *fakeProcess) Environ() []string { return p.env }

// fakeShell records the commands it receives, without their streams, and
// fails those listed in codes with the given status.
type fakeShell struct {
	spawned  []shell.Command
	captured []shell.Command
	codes    map[string]int
}

func (s *fakeShell) Spawn(_ context.Context, c shell.Command) shell.Outcome {
	c.Stdin, c.Stdout, c.Stderr = nil, nil, nil
	s.spawned = append(s.spawned, c)

	return shell.Outcome{Line: c.Line, Code: s.codes[c.Line]}
}

func (s *fakeShell) Capture(_ context.Context, c shell.Command) (string, shell.Outcome) {
	c.Stdin, c.Stdout, c.Stderr = nil, nil, nil
	s.captured = append(s.captured, c)

	return "<" + c.Line + ">", shell.Outcome{Line: c.Line, Code: s.codes[c.Line]}
}

// fakeEngine returns results keyed by source.
type fakeEngine map[string]any

func (e fakeEngine) Evaluate(_ context.Context, source string) (any, error) {
	v, ok := e[source]
	if !ok {
		return nil, fmt.Errorf("undefined: %s", source)
	}

	return v, nil
}

func (fakeEngine) Display(v any) (string, error) {
	if s, ok := v.(string); ok {
		return "'" + s + "'", nil
	}

	return "", errors.New("unknown value type")
}

func newDispatcher() (*run.Dispatcher, *fakeProcess, *fakeShell, *bytes.Buffer) {
	proc := &fakeProcess{dir: "/home", dirs: map[string]bool{"/home": true, "/tmp": true}}
	sh := &fakeShell{codes: map[string]int{"false": 1}}

	var out bytes.Buffer

	return &run.Dispatcher{
		Process: proc,
		Shell:   sh,
		Engine:  fakeEngine{"greeting": "hi", "nothing": nil, "number": 1},
		Stdout:  &out,
	}, proc, sh, &out
}

func TestDispatcher_Apply(t *testing.T) {
	t.Parallel()

	d, proc, sh, out := newDispatcher()
	ctx := context.Background()

	for _, dir := range []lang.Directive{
		lang.SetEnv{Key: "A", Value: "1"},
		lang.PushDir{Path: "/tmp"},
		lang.ShellCommand{Text: "make"},
		lang.ScriptSource{Text: "greeting"},
		lang.ScriptSource{Text: "nothing"},
		lang.PopDir{},
		lang.ShellCommand{Text: "ls"},
	} {
		if err := d.Apply(ctx, dir); err != nil {
			t.Fatalf("Apply(%v) error = %v", dir, err)
		}
	}

	want := []shell.Command{
		{Line: "make", Dir: "/tmp", Env: []string{"A=1"}},
		{Line: "ls", Dir: "/home", Env: []string{"A=1"}},
	}
	if diff := cmp.Diff(want, sh.spawned); diff != "" {
		t.Errorf("spawned commands mismatch (-want +got):\n%s", diff)
	}

	if got := out.String(); got != "'hi'\n" {
		t.Errorf("stdout = %q, want %q", got, "'hi'\n")
	}

	if proc.dir != "/home" || d.Depth() != 0 {
		t.Errorf("cwd = %q, depth = %d, want /home, 0", proc.dir, d.Depth())
	}
}

func TestDispatcher_Apply_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		directive lang.Directive
		wantErr   error
		wantDepth int
	}{
		{name: "underflow", directive: lang.PopDir{}, wantErr: run.ErrStackUnderflow},
		{name: "chdir", directive: lang.PushDir{Path: "/missing"}, wantErr: run.ErrChdir},
		{name: "exit_status", directive: lang.ShellCommand{Text: "false"}, wantErr: run.ErrCommand},
		{name: "script", directive: lang.ScriptSource{Text: "undefined"}, wantErr: run.ErrScript},
		{name: "display", directive: lang.ScriptSource{Text: "number"}, wantErr: run.ErrScript},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d, proc, _, _ := newDispatcher()

			err := d.Apply(context.Background(), tt.directive)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Apply() error = %v, want %v", err, tt.wantErr)
			}

			if proc.dir != "/home" || d.Depth() != tt.wantDepth {
				t.Errorf("cwd = %q, depth = %d after failure", proc.dir, d.Depth())
			}
		})
	}
}

func TestDispatcher_ScriptErrorShowsSource(t *testing.T) {
	t.Parallel()

	d, _, _, _ := newDispatcher()

	err := d.Apply(context.Background(), lang.ScriptSource{Text: "undefined"})
	if err == nil {
		t.Fatal("Apply() expected error")
	}

	for _, want := range []string{"script failed", "undefined: undefined", "1 | undefined"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error message missing %q:\n%s", want, err)
		}
	}
}

func TestDispatcher_Capture(t *testing.T) {
	t.Parallel()

	d, proc, sh, _ := newDispatcher()
	proc.env = []string{"X=1"}

	got, err := d.Capture(context.Background(), "date")
	if err != nil || got != "<date>" {
		t.Errorf("Capture() = %q, %v, want %q, nil", got, err, "<date>")
	}

	want := []shell.Command{{Line: "date", Dir: "/home", Env: []string{"X=1"}}}
	if diff := cmp.Diff(want, sh.captured); diff != "" {
		t.Errorf("captured commands mismatch (-want +got):\n%s", diff)
	}

	_, err = d.Capture(context.Background(), "false")

	var o shell.Outcome
	if !errors.As(err, &o) || o.Code != 1 {
		t.Errorf("Capture(false) error = %v, want exit status 1", err)
	}
}
