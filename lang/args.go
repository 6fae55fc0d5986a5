package lang

import (
	"errors"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// positionalPattern matches the positional tokens understood by
// [SubstituteArgs]. Quoted forms are listed first so that "$@" is never
// mistaken for a bare $@.
var positionalPattern = regexp.MustCompile(`"\$[@+*]"|\$[0-9#*@]`)

// SubstituteArgs replaces positional tokens in body with values taken from
// args, where args[0] is the invoked name and the rest are user arguments.
//
//	$0         args[0]
//	$1 .. $9   args[k], or "" when absent
//	$#         number of user arguments
//	"$@"       user arguments joined by spaces, each quoted if it has spaces
//	"$+"       user arguments joined by spaces, quoted once as a whole
//
// Bare $* and $@, and the legacy "$*", are rejected. Any other "$" sequence
// is left alone. Replacement text is never scanned again.
func SubstituteArgs(body string, args []string) (string, error) {
	locs := positionalPattern.FindAllStringIndex(body, -1)
	if len(locs) == 0 {
		return body, nil
	}

	var sb strings.Builder

	sb.Grow(len(body))

	prev := 0

	for _, loc := range locs {
		tok := body[loc[0]:loc[1]]

		val, err := positional(tok, args)
		if err != nil {
			return "", ErrPositional.Wrap(err).
				With(slog.String("token", tok)).
				At(body, Range{Start: loc[0], End: loc[1]})
		}

		sb.WriteString(body[prev:loc[0]])
		sb.WriteString(val)

		prev = loc[1]
	}

	sb.WriteString(body[prev:])

	return sb.String(), nil
}

// positional resolves a single token matched by positionalPattern.
func positional(tok string, args []string) (string, error) {
	var user []string
	if len(args) > 1 {
		user = args[1:]
	}

	switch tok {
	case "$0":
		if len(args) == 0 {
			return "", nil
		}

		return args[0], nil

	case "$#":
		return strconv.Itoa(len(user)), nil

	case `"$@"`:
		quoted := make([]string, len(user))
		for i, arg := range user {
			quoted[i] = quoteArg(arg)
		}

		return strings.Join(quoted, " "), nil

	case `"$+"`:
		return `"` + strings.Join(user, " ") + `"`, nil

	case "$*":
		return "", errors.New(`unquoted $* is not supported, maybe "$+" or "$@"?`)

	case "$@":
		return "", errors.New(`unquoted $@ is not supported, maybe "$@"?`)

	case `"$*"`:
		return "", errors.New(`"$*" is not supported, maybe "$+" or "$@"?`)
	}

	// $1 .. $9
	k := int(tok[1] - '0')
	if k < len(args) {
		return args[k], nil
	}

	return "", nil
}

// quoteArg wraps arg in double quotes if it is empty or contains whitespace.
func quoteArg(arg string) string {
	if arg == "" || strings.ContainsFunc(arg, unicode.IsSpace) {
		return `"` + arg + `"`
	}

	return arg
}
