package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/aka/log"
)

// load is a [kong.ConfigurationLoader] that reads a YAML configuration file.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(load, "/path/to/config.yaml")
//
// Nested mappings are flattened by joining keys with hyphens, so that both of
// these set --log-level:
//
//	log:
//	  level: debug
//
//	log-level: debug
//
// Scalars are passed to kong as strings and sequences as lists of strings.
// Keys may use underscores in place of hyphens. A file that cannot be parsed
// is ignored with a warning. Command-line flags override config file values.
func load(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	err := yaml.NewDecoder(r).Decode(&doc)
	if errors.Is(err, io.EOF) {
		return config{}, nil
	}

	if err != nil {
		log.Warn("ignoring configuration file", slog.Any("error", err))

		return config{}, nil
	}

	cfg := config{}
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] for flattened YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flatten adds every leaf of m to r under its hyphen-joined key path.
func (r config) flatten(prefix string, m map[string]any) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "-" + k
		}

		switch x := v.(type) {
		case map[string]any:
			r.flatten(key, x)

		case []any:
			list := make([]any, len(x))
			for i, item := range x {
				list[i] = scalar(item)
			}

			r[key] = list

		default:
			r[key] = scalar(x)
		}
	}
}

// scalar converts a decoded YAML scalar to the form kong decodes. Kong
// requires numbers as strings for parsing.
func scalar(v any) any {
	switch x := v.(type) {
	case nil, string, bool:
		return x

	case int64:
		return strconv.FormatInt(x, 10)

	case uint64:
		return strconv.FormatUint(x, 10)

	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)

	default:
		return fmt.Sprint(x)
	}
}
