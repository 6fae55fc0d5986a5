package run

import (
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/spf13/afero"
)

// Process is the working directory and environment seen by directives and
// the commands they start.
type Process interface {
	Getwd() (string, error)
	Chdir(dir string) error
	Setenv(key, value string) error
	Environ() []string
}

// OS is the current operating system process.
type OS struct{}

func (OS) Getwd() (string, error)         { return os.Getwd() }
func (OS) Chdir(dir string) error         { return os.Chdir(dir) }
func (OS) Setenv(key, value string) error { return os.Setenv(key, value) }
func (OS) Environ() []string              { return os.Environ() }

// Sandbox is an in-memory [Process]. Directory changes are validated
// against its filesystem but never affect the host process.
//
// The zero value is an empty sandbox with no filesystem: it accepts
// environment changes and rejects every directory change. Use [NewSandbox]
// to give it one.
type Sandbox struct {
	fs  afero.Fs
	mu  sync.RWMutex
	dir string
	env map[string]string
}

// NewSandbox returns a sandbox starting in dir with the given "KEY=VALUE"
// environment. dir should be absolute.
func NewSandbox(fsys afero.Fs, dir string, environ []string) *Sandbox {
	env := make(map[string]string, len(environ))

	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = v
		}
	}

	return &Sandbox{fs: fsys, dir: filepath.Clean(dir), env: env}
}

func (s *Sandbox) Getwd() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.dir, nil
}

// Chdir changes to dir, resolved against the current directory when
// relative. It fails unless dir names an existing directory.
func (s *Sandbox) Chdir(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := dir
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, path)
	}

	path = filepath.Clean(path)

	if s.fs == nil {
		return &fs.PathError{Op: "chdir", Path: dir, Err: fs.ErrNotExist}
	}

	ok, err := afero.IsDir(s.fs, path)
	if err != nil {
		return &fs.PathError{Op: "chdir", Path: dir, Err: err}
	}

	if !ok {
		return &fs.PathError{Op: "chdir", Path: dir, Err: fs.ErrInvalid}
	}

	s.dir = path

	return nil
}

func (s *Sandbox) Setenv(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.env == nil {
		s.env = make(map[string]string)
	}

	s.env[key] = value

	return nil
}

// Environ returns the environment sorted by key.
func (s *Sandbox) Environ() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	env := make([]string, 0, len(s.env))
	for _, k := range slices.Sorted(maps.Keys(s.env)) {
		env = append(env, k+"="+s.env[k])
	}

	return env
}
