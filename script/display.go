package script

import (
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
	"strings"
)

// Cmd is a list displayed as a command line: its elements rendered by
// [Display] and joined by spaces.
type Cmd []any

// CmdDeep is a [Cmd] whose nested lists are flattened into the same line.
type CmdDeep []any

// Display renders v for interpolation into a command line.
//
//	string     "s" (double-quoted)
//	integer    decimal
//	float      shortest decimal form
//	bool       true or false
//	list       [a, b]
//	Cmd        a b
//	CmdDeep    a b, with nested lists flattened
//	nil        empty string
//
// Any other type is an error.
func Display(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil

	case string:
		return `"` + x + `"`, nil

	case bool:
		return strconv.FormatBool(x), nil

	case Cmd:
		return join(x, " ", false)

	case CmdDeep:
		return join(x, " ", true)
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil

	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32), nil

	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil

	case reflect.Slice, reflect.Array:
		items, _ := toList(v)

		s, err := join(items, ", ", false)
		if err != nil {
			return "", err
		}

		return "[" + s + "]", nil

	default:
		return "", ErrDisplay.
			Wrap(fmt.Errorf("%T", v)).
			With(slog.String("type", fmt.Sprintf("%T", v)))
	}
}

func join(items []any, sep string, deep bool) (string, error) {
	parts := make([]string, 0, len(items))

	for _, item := range items {
		if deep {
			if nested, err := toList(item); err == nil {
				s, err := join(nested, sep, true)
				if err != nil {
					return "", err
				}

				parts = append(parts, s)

				continue
			}
		}

		s, err := Display(item)
		if err != nil {
			return "", err
		}

		parts = append(parts, s)
	}

	return strings.Join(parts, sep), nil
}
