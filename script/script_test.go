package script_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/ardnew/aka/script"
)

func TestDisplay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: ""},
		{name: "string", in: "a b", want: `"a b"`},
		{name: "empty_string", in: "", want: `""`},
		{name: "int", in: 42, want: "42"},
		{name: "negative_int", in: int64(-7), want: "-7"},
		{name: "uint", in: uint8(255), want: "255"},
		{name: "float", in: 1.5, want: "1.5"},
		{name: "whole_float", in: 2.0, want: "2"},
		{name: "bool", in: true, want: "true"},
		{name: "list", in: []any{1, "a", false}, want: `[1, "a", false]`},
		{name: "typed_list", in: []string{"x", "y"}, want: `["x", "y"]`},
		{name: "nested_list", in: []any{[]any{1}, 2}, want: "[[1], 2]"},
		{name: "empty_list", in: []any{}, want: "[]"},
		{name: "cmd", in: script.Cmd{"git", "log", 3}, want: `"git" "log" 3`},
		{name: "cmd_keeps_nesting", in: script.Cmd{"a", []any{"b"}}, want: `"a" ["b"]`},
		{name: "cmd_deep", in: script.CmdDeep{"a", []any{"b", []any{"c"}}}, want: `"a" "b" "c"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := script.Display(tt.in)
			if err != nil {
				t.Fatalf("Display() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Display() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplay_UnknownType(t *testing.T) {
	t.Parallel()

	for name, v := range map[string]any{
		"map":        map[string]any{"a": 1},
		"struct":     struct{}{},
		"nested_map": []any{map[string]int{}},
		"func":       func() {},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := script.Display(v)
			if !errors.Is(err, script.ErrDisplay) {
				t.Errorf("Display(%T) error = %v, want ErrDisplay", v, err)
			}
		})
	}
}

func TestEngine_Evaluate(t *testing.T) {
	t.Parallel()

	engine := script.New(
		script.WithArgs([]string{"greet", "alice", "bob"}),
		script.WithEnviron(func() []string { return []string{"GREETING=hello"} }),
		script.WithCwd(func() (string, error) { return "/work", nil }),
		script.WithOutput(&bytes.Buffer{}),
	)

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "empty", source: "  \n ", want: ""},
		{name: "arithmetic", source: "1 + 2", want: "3"},
		{name: "name", source: "NAME", want: `"greet"`},
		{name: "argv", source: "ARGV", want: `["alice", "bob"]`},
		{name: "argc", source: "len(ARGV)", want: "2"},
		{name: "env", source: "env.GREETING", want: `"hello"`},
		{name: "env_missing", source: `"X" in env`, want: "false"},
		{name: "cwd", source: "cwd()", want: `"/work"`},
		{name: "cmd", source: `cmd(["echo", env.GREETING])`, want: `"echo" "hello"`},
		{name: "cmd_deep", source: `cmdDeep(["echo", ARGV])`, want: `"echo" "alice" "bob"`},
		{name: "multiline", source: "let n = len(ARGV);\nn * 10", want: "20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := engine.Evaluate(context.Background(), tt.source)
			if err != nil {
				t.Fatalf("Evaluate(%q) error = %v", tt.source, err)
			}

			got, err := engine.Display(v)
			if err != nil {
				t.Fatalf("Display() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("Evaluate(%q) = %q, want %q", tt.source, got, tt.want)
			}
		})
	}
}

func TestEngine_EnvironIsReadOnEachEvaluation(t *testing.T) {
	t.Parallel()

	environ := []string{"A=1"}
	engine := script.New(script.WithEnviron(func() []string { return environ }))

	for _, want := range []string{"1", "2"} {
		v, err := engine.Evaluate(context.Background(), "env.A")
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}

		if v != want {
			t.Errorf("env.A = %v, want %q", v, want)
		}

		environ = []string{"A=2"}
	}
}

func TestEngine_Output(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "print", source: `print("a", 1, [2])`, want: "a 1 [2]"},
		{name: "puts", source: `puts("a", true)`, want: "a\ntrue\n"},
		{name: "puts_empty", source: "puts()", want: "\n"},
		{name: "quotes_nested_strings", source: `puts(["x"])`, want: "[\"x\"]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			engine := script.New(script.WithOutput(&out))

			v, err := engine.Evaluate(context.Background(), tt.source)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}

			if v != nil {
				t.Errorf("Evaluate() = %v, want nil", v)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEngine_Mung(t *testing.T) {
	t.Parallel()

	sep := string(os.PathListSeparator)
	dir := t.TempDir()

	engine := script.New(script.WithEnviron(func() []string {
		return []string{"P=" + strings.Join([]string{"/b", "/c"}, sep)}
	}))

	v, err := engine.Evaluate(context.Background(), `mung.prefix(env.P, "/a")`)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if s, _ := v.(string); !strings.HasPrefix(s, "/a"+sep) {
		t.Errorf("mung.prefix() = %q, want %q first", s, "/a")
	}

	src := `mung.prefixdir("", "` + dir + `", "` + dir + `/missing")`

	v, err = engine.Evaluate(context.Background(), src)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if s, _ := v.(string); strings.Contains(s, "missing") || !strings.Contains(s, dir) {
		t.Errorf("mung.prefixdir() = %q, want only %q", s, dir)
	}
}

func TestEngine_Errors(t *testing.T) {
	t.Parallel()

	engine := script.New(script.WithArgs([]string{"x"}))

	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{name: "syntax", source: "1 +", wantErr: script.ErrCompile},
		{name: "unknown_name", source: "nope", wantErr: script.ErrCompile},
		{name: "index_out_of_range", source: "ARGV[3]", wantErr: script.ErrEvaluate},
		{name: "cmd_non_list", source: "cmd(1)", wantErr: script.ErrEvaluate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := engine.Evaluate(context.Background(), tt.source)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Evaluate(%q) error = %v, want %v", tt.source, err, tt.wantErr)
			}
		})
	}
}

func TestEngine_CachedProgramSeesNewArguments(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{{"a", "1"}, {"b", "1", "2", "3"}} {
		engine := script.New(script.WithArgs(args))

		for range 2 {
			v, err := engine.Evaluate(context.Background(), "len(ARGV)")
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}

			if v != len(args)-1 {
				t.Errorf("len(ARGV) = %v, want %d", v, len(args)-1)
			}
		}
	}
}
