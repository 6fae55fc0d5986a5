// Package alias stores alias bodies as text files, one per name.
package alias

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/klauspost/readahead"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/afero"

	"github.com/ardnew/aka/lang"
	"github.com/ardnew/aka/log"
)

// Ext is the file extension of an alias body.
const Ext = ".txt"

// Predefined errors (sentinel values).
var (
	ErrNotFound    = lang.NewError("alias not found")
	ErrInvalidName = lang.NewError("invalid alias name")
	ErrRead        = lang.NewError("failed to read alias")
)

var namePattern = regexp.MustCompile(`^[\p{L}\p{N}_][\p{L}\p{N}_.+-]*$`)

// ValidName reports whether name can identify an alias: a non-empty word
// that does not start with punctuation and contains no path separators.
func ValidName(name string) error {
	if !namePattern.MatchString(name) {
		return ErrInvalidName.With(slog.String("name", name)).
			Wrap(fmt.Errorf("%q", name))
	}

	return nil
}

// Alias is a named body.
type Alias struct {
	Name string
	Body string
}

// Summary returns the first line of the body that is neither blank nor a
// comment, trimmed.
func (a Alias) Summary() string {
	for line := range strings.SplitSeq(a.Body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, lang.CommentPrefix) {
			return line
		}
	}

	return ""
}

// Store reads aliases from a directory of "<name>.txt" files.
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore returns a store rooted at dir on fsys.
func NewStore(fsys afero.Fs, dir string) *Store {
	return &Store{fs: fsys, dir: dir}
}

// Dir returns the directory holding the alias files.
func (s *Store) Dir() string { return s.dir }

// Path returns the file that holds the body of name.
func (s *Store) Path(name string) (string, error) {
	if err := ValidName(name); err != nil {
		return "", err
	}

	return filepath.Join(s.dir, name+Ext), nil
}

// Read returns the body of name. A missing alias yields [ErrNotFound],
// suggesting similar names when any exist.
func (s *Store) Read(ctx context.Context, name string) (string, error) {
	path, err := s.Path(name)
	if err != nil {
		return "", err
	}

	f, err := s.fs.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", s.notFound(ctx, name, err)
	}

	if err != nil {
		return "", ErrRead.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	ra := readahead.NewReader(f)
	defer ra.Close()

	body, err := io.ReadAll(ra)
	if err != nil {
		return "", ErrRead.Wrap(err).With(slog.String("path", path))
	}

	log.TraceContext(ctx, "read alias",
		slog.String("name", name),
		slog.String("path", path),
		slog.Int("bytes", len(body)),
	)

	return string(body), nil
}

// Names returns the names of all stored aliases in sorted order. A missing
// directory holds no aliases.
func (s *Store) Names() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, ErrRead.Wrap(err).With(slog.String("dir", s.dir))
	}

	var names []string

	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}

		name := strings.TrimSuffix(e.Name(), Ext)
		if ValidName(name) == nil {
			names = append(names, name)
		}
	}

	slices.Sort(names)

	return names, nil
}

// List returns every stored alias in name order.
func (s *Store) List(ctx context.Context) ([]Alias, error) {
	names, err := s.Names()
	if err != nil {
		return nil, err
	}

	list := make([]Alias, 0, len(names))

	for _, name := range names {
		body, err := s.Read(ctx, name)
		if err != nil {
			return nil, err
		}

		list = append(list, Alias{Name: name, Body: body})
	}

	return list, nil
}

func (s *Store) notFound(ctx context.Context, name string, cause error) error {
	err := fmt.Errorf("%s: %w", name, cause)

	names, lerr := s.Names()
	if lerr != nil {
		log.DebugContext(ctx, "list aliases for suggestion", slog.Any("error", lerr))
	}

	if m := fuzzy.Find(name, names); len(m) > 0 {
		sugg := make([]string, 0, min(len(m), 3))
		for _, x := range m[:min(len(m), 3)] {
			sugg = append(sugg, x.Str)
		}

		err = fmt.Errorf("%s (did you mean %s?): %w", name, strings.Join(sugg, ", "), cause)
	}

	return ErrNotFound.Wrap(err).With(slog.String("name", name))
}
