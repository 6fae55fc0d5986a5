package cmd

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/aka/log"
	"github.com/ardnew/aka/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: config path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalContext(ctx, settings(ktx),
		yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrYAMLMarshal.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	err = os.WriteFile(confPath, data, 0o600)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	log.DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// settings collects the current value of every configurable flag in model
// order. Flags belonging to a group are nested under the group key with the
// group prefix removed, which is the inverse of the flattening applied when
// the file is loaded.
func settings(ktx *kong.Context) yaml.MapSlice {
	var (
		doc    yaml.MapSlice
		groups = map[string]int{}
	)

	ignore := []string{"help", "version", profile.Tag}

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		val, ok := settingValue(ktx.FlagValue(flag))
		if !ok {
			continue
		}

		key := flag.Name

		if flag.Group != nil && strings.HasPrefix(key, flag.Group.Key+"-") {
			g, seen := groups[flag.Group.Key]
			if !seen {
				g = len(doc)
				groups[flag.Group.Key] = g
				doc = append(doc, yaml.MapItem{Key: flag.Group.Key, Value: yaml.MapSlice{}})
			}

			sub := doc[g].Value.(yaml.MapSlice)
			doc[g].Value = append(sub, yaml.MapItem{
				Key:   strings.TrimPrefix(key, flag.Group.Key+"-"),
				Value: val,
			})

			continue
		}

		doc = append(doc, yaml.MapItem{Key: key, Value: val})
	}

	return doc
}

// settingValue reports the value to write for a flag, or false if the flag
// has no value worth persisting.
func settingValue(val any) (any, bool) {
	switch v := val.(type) {
	case nil:
		return nil, false

	case string:
		return v, v != ""

	case []string:
		return v, len(v) > 0

	default:
		return v, true
	}
}
