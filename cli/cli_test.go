package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/aka/cli/cmd"
	"github.com/ardnew/aka/lang"
	"github.com/ardnew/aka/pkg"
	"github.com/ardnew/aka/run"
	"github.com/ardnew/aka/shell"
)

func TestArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		invoked string
		args    []string
		want    []string
	}{
		{
			name:    "canonical_name",
			invoked: pkg.Name,
			args:    []string{"list"},
			want:    []string{"list"},
		},
		{
			name:    "shim",
			invoked: "gco",
			args:    []string{"main"},
			want:    []string{"run", "gco", "--", "main"},
		},
		{
			name:    "shim_passes_flags_through",
			invoked: "build",
			args:    []string{"--help", "-v", "--"},
			want:    []string{"run", "build", "--", "--help", "-v", "--"},
		},
		{
			name:    "shim_without_args",
			invoked: "up",
			want:    []string{"run", "up", "--"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(tt.want, Args(tt.invoked, tt.args)); diff != "" {
				t.Errorf("Args() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestArgs_ParsedArgv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		invoked string
		args    []string
		want    []string
	}{
		{
			name:    "shim",
			invoked: "gco",
			args:    []string{"main"},
			want:    []string{"gco", "main"},
		},
		{
			name:    "shim_without_args",
			invoked: "gco",
			want:    []string{"gco"},
		},
		{
			name:    "shim_flags_and_separator",
			invoked: "gco",
			args:    []string{"-b", "--", "x"},
			want:    []string{"gco", "-b", "--", "x"},
		},
		{
			name:    "explicit_separator",
			invoked: pkg.Name,
			args:    []string{"run", "gco", "--", "main"},
			want:    []string{"gco", "main"},
		},
		{
			name:    "default_command",
			invoked: pkg.Name,
			args:    []string{"gco", "main"},
			want:    []string{"gco", "main"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var c struct {
				Run  cmd.Run  `cmd:"" default:"withargs"`
				List cmd.List `cmd:""`
			}

			parser, err := kong.New(&c, kong.Exit(func(int) { t.Fatal("parser exited") }))
			if err != nil {
				t.Fatalf("kong.New() error = %v", err)
			}

			if _, err := parser.Parse(Args(tt.invoked, tt.args)); err != nil {
				t.Fatalf("Parse() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, c.Run.Argv()); diff != "" {
				t.Errorf("Argv() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "plain", err: errors.New("boom"), want: 1},
		{name: "outcome", err: shell.Outcome{Code: 3}, want: 3},
		{
			name: "wrapped_outcome",
			err:  run.ErrCommand.Wrap(shell.Outcome{Line: "false", Code: 7}),
			want: 7,
		},
		{
			name: "substitution",
			err:  lang.ErrSubstitution.Wrap(fmt.Errorf("x: %w", shell.Outcome{Code: 2})),
			want: 2,
		},
		{
			name: "abnormal",
			err:  run.ErrCommand.Wrap(shell.Outcome{Err: errors.New("signal: killed")}),
			want: 1,
		},
		{name: "underflow", err: run.ErrStackUnderflow, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFlagBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    string
		assigned bool
		want     bool
		wantOK   bool
	}{
		{name: "--log-pretty", want: true, wantOK: true},
		{name: "--no-log-pretty", want: false, wantOK: true},
		{name: "--log-caller", value: "false", assigned: true, want: false, wantOK: true},
		{name: "--no-log-caller", value: "false", assigned: true, want: true, wantOK: true},
		{name: "--log-caller", value: "maybe", assigned: true, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := flagBool(tt.name, tt.value, tt.assigned)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("flagBool(%q, %q, %v) = %v, %v, want %v, %v",
				tt.name, tt.value, tt.assigned, got, ok, tt.want, tt.wantOK)
		}
	}
}
