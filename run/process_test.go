package run_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/ardnew/aka/run"
)

func newMemSandbox(t *testing.T) *run.Sandbox {
	t.Helper()

	mem := afero.NewMemMapFs()
	for _, dir := range []string{"/home/u/src", "/tmp"} {
		if err := mem.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}

	if err := afero.WriteFile(mem, "/home/u/file", []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	return run.NewSandbox(mem, "/home/u", []string{"B=2", "A=1", "bad", "=x"})
}

func TestSandbox_Chdir(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dir     string
		want    string
		wantErr bool
	}{
		{name: "relative", dir: "src", want: "/home/u/src"},
		{name: "absolute", dir: "/tmp", want: "/tmp"},
		{name: "parent", dir: "..", want: "/home"},
		{name: "unclean", dir: "src/../src/", want: "/home/u/src"},
		{name: "missing", dir: "nope", want: "/home/u", wantErr: true},
		{name: "file", dir: "file", want: "/home/u", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := newMemSandbox(t)

			err := s.Chdir(tt.dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Chdir(%q) error = %v, wantErr %v", tt.dir, err, tt.wantErr)
			}

			var pe *fs.PathError
			if tt.wantErr && !errors.As(err, &pe) {
				t.Errorf("Chdir(%q) error %T is not a *fs.PathError", tt.dir, err)
			}

			if got, _ := s.Getwd(); got != tt.want {
				t.Errorf("Getwd() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSandbox_Environ(t *testing.T) {
	t.Parallel()

	s := newMemSandbox(t)

	if err := s.Setenv("A", "3"); err != nil {
		t.Fatal(err)
	}

	if err := s.Setenv("C", "a=b"); err != nil {
		t.Fatal(err)
	}

	want := []string{"A=3", "B=2", "C=a=b"}
	if diff := cmp.Diff(want, s.Environ()); diff != "" {
		t.Errorf("Environ() mismatch (-want +got):\n%s", diff)
	}
}

func TestSandbox_ZeroValue(t *testing.T) {
	t.Parallel()

	var s run.Sandbox

	if err := s.Setenv("K", "v"); err != nil {
		t.Fatalf("Setenv() error = %v", err)
	}

	if diff := cmp.Diff([]string{"K=v"}, s.Environ()); diff != "" {
		t.Errorf("Environ() mismatch (-want +got):\n%s", diff)
	}

	if err := s.Chdir("/tmp"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Chdir() error = %v, want fs.ErrNotExist", err)
	}

	if dir, _ := s.Getwd(); dir != "" {
		t.Errorf("Getwd() = %q, want empty", dir)
	}
}

func TestDirStack(t *testing.T) {
	t.Parallel()

	var s run.DirStack

	if _, ok := s.Pop(); ok {
		t.Fatal("Pop() on empty stack reported ok")
	}

	s.Push("/a")
	s.Push("/b")

	for _, want := range []string{"/b", "/a"} {
		got, ok := s.Pop()
		if !ok || got != want {
			t.Errorf("Pop() = %q, %v, want %q, true", got, ok, want)
		}
	}

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}
