package script

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/ardnew/mung"
)

// env builds the evaluation environment from the engine's current state.
func (e *Engine) env() map[string]any {
	var name string

	argv := []string{}

	if len(e.args) > 0 {
		name = e.args[0]
		argv = append(argv, e.args[1:]...)
	}

	return map[string]any{
		"ARGV":    argv,
		"NAME":    name,
		"env":     environMap(e.environ()),
		"cwd":     e.getCwd,
		"print":   e.print,
		"puts":    e.puts,
		"cmd":     toCmd,
		"cmdDeep": toCmdDeep,
		"mung": map[string]any{
			"prefix":    mungPrefix,
			"prefixdir": mungPrefixDir,
		},
	}
}

// environMap converts "KEY=VALUE" entries to a map. Later entries win.
func environMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))

	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			m[k] = v
		}
	}

	return m
}

func (e *Engine) getCwd() (string, error) {
	return e.cwd()
}

// print writes its arguments separated by spaces, without a newline.
// Strings are written verbatim.
func (e *Engine) print(v ...any) (any, error) {
	parts := make([]string, len(v))

	for i, x := range v {
		s, err := plain(x)
		if err != nil {
			return nil, err
		}

		parts[i] = s
	}

	_, err := fmt.Fprint(e.out, strings.Join(parts, " "))

	return nil, err
}

// puts writes each argument on its own line. Strings are written verbatim.
func (e *Engine) puts(v ...any) (any, error) {
	if len(v) == 0 {
		_, err := fmt.Fprintln(e.out)

		return nil, err
	}

	for _, x := range v {
		s, err := plain(x)
		if err != nil {
			return nil, err
		}

		if _, err := fmt.Fprintln(e.out, s); err != nil {
			return nil, err
		}
	}

	return nil, nil
}

// plain renders v like [Display] but without quoting a top-level string.
func plain(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}

	return Display(v)
}

// toCmd marks a list to be displayed as a command line.
func toCmd(list any) (Cmd, error) {
	items, err := toList(list)
	if err != nil {
		return nil, err
	}

	return Cmd(items), nil
}

// toCmdDeep marks a list to be displayed as a flattened command line.
func toCmdDeep(list any) (CmdDeep, error) {
	items, err := toList(list)
	if err != nil {
		return nil, err
	}

	return CmdDeep(items), nil
}

// toList converts any slice or array to []any.
func toList(v any) ([]any, error) {
	switch l := v.(type) {
	case []any:
		return l, nil

	case Cmd:
		return l, nil

	case CmdDeep:
		return l, nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected list, got %T", v)
	}

	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}

	return items, nil
}

func mungPrefix(subject string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixDir(subject string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(isDir),
	).String()
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}
