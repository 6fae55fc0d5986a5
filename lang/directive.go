package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
)

// DirectivePrefix introduces a directive keyword on a shell line.
const DirectivePrefix = "@"

// Directive keywords.
const (
	KeywordSet   = "set"
	KeywordPushd = "pushd"
	KeywordPopd  = "popd"
)

// Keywords returns the recognized directive keywords.
func Keywords() []string {
	return []string{KeywordSet, KeywordPushd, KeywordPopd}
}

// Directive is one executable action derived from a segment. The set of
// implementations is closed: [SetEnv], [PushDir], [PopDir], [ShellCommand]
// and [ScriptSource].
type Directive interface {
	fmt.Stringer
	directive()
}

type (
	// SetEnv assigns an environment variable.
	SetEnv struct {
		Key   string
		Value string
	}

	// PushDir saves the working directory and changes to Path.
	PushDir struct {
		Path string
	}

	// PopDir restores the most recently saved working directory.
	PopDir struct{}

	// ShellCommand is a literal command line for the shell.
	ShellCommand struct {
		Text string
	}

	// ScriptSource is source code for the script engine.
	ScriptSource struct {
		Text string
	}
)

func (SetEnv) directive()       {}
func (PushDir) directive()      {}
func (PopDir) directive()       {}
func (ShellCommand) directive() {}
func (ScriptSource) directive() {}

func (d SetEnv) String() string {
	return DirectivePrefix + KeywordSet + " " + d.Key + "=" + d.Value
}

func (d PushDir) String() string {
	return DirectivePrefix + KeywordPushd + " " + d.Path
}

func (PopDir) String() string { return DirectivePrefix + KeywordPopd }

func (d ShellCommand) String() string { return d.Text }

func (d ScriptSource) String() string { return "```\n" + d.Text + "\n```" }

// Classify converts a segment into its directive. Shell lines are parsed
// with [ParseDirective]; script blocks become [ScriptSource].
func Classify(seg Segment) (Directive, error) {
	switch s := seg.(type) {
	case ShellLine:
		return ParseDirective(s.Text)

	case ScriptBlock:
		return ScriptSource{Text: s.Text}, nil

	default:
		panic(fmt.Sprintf("lang: unhandled segment type %T", seg))
	}
}

// ParseDirective classifies a single trimmed shell line.
//
// Lines beginning with "@" must name a known keyword:
//
//	@set KEY=VALUE
//	@pushd PATH
//	@popd
//
// Every other line is returned unchanged as a [ShellCommand].
func ParseDirective(line string) (Directive, error) {
	if !strings.HasPrefix(line, DirectivePrefix) {
		return ShellCommand{Text: line}, nil
	}

	end := strings.IndexFunc(line, unicode.IsSpace)
	if end < 0 {
		end = len(line)
	}

	keyword := line[len(DirectivePrefix):end]
	head := Range{Start: 0, End: end}

	// rest begins at the first non-space after the keyword.
	start := end + len(line[end:]) - len(strings.TrimLeftFunc(line[end:], unicode.IsSpace))
	rest := line[start:]
	tail := Range{Start: start, End: len(line)}

	switch keyword {
	case KeywordSet:
		key, value, ok := strings.Cut(rest, "=")
		if !ok {
			span := tail
			if rest == "" {
				span = head
			}

			return nil, ErrDirectiveFormat.
				Wrap(errors.New("expected @set KEY=VALUE")).
				With(slog.String("keyword", keyword)).
				At(line, span)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			eq := start + strings.Index(rest, "=")

			return nil, ErrDirectiveFormat.
				Wrap(errors.New("@set requires a non-empty KEY")).
				With(slog.String("keyword", keyword)).
				At(line, Range{Start: eq, End: eq + 1})
		}

		return SetEnv{Key: key, Value: value}, nil

	case KeywordPushd:
		path := strings.TrimSpace(rest)
		if path == "" {
			return nil, ErrDirectiveFormat.
				Wrap(errors.New("expected @pushd PATH")).
				With(slog.String("keyword", keyword)).
				At(line, head)
		}

		return PushDir{Path: path}, nil

	case KeywordPopd:
		if rest != "" {
			return nil, ErrDirectiveFormat.
				Wrap(errors.New("@popd takes no arguments")).
				With(slog.String("keyword", keyword)).
				At(line, tail)
		}

		return PopDir{}, nil

	default:
		return nil, ErrUnknownCommand.
			Wrap(unknownKeyword(keyword)).
			With(slog.String("keyword", keyword)).
			At(line, head)
	}
}

// unknownKeyword describes an unrecognized keyword, suggesting the closest
// known keyword when there is one.
func unknownKeyword(keyword string) error {
	if keyword != "" {
		if m := fuzzy.Find(keyword, Keywords()); len(m) > 0 {
			return fmt.Errorf(
				"%s%s (did you mean %s%s?)",
				DirectivePrefix, keyword, DirectivePrefix, m[0].Str,
			)
		}
	}

	return errors.New(DirectivePrefix + keyword)
}
