package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/aka/run"
)

// Output formats accepted by expand.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Expand prints how an alias body would run without running it.
type Expand struct {
	Format string `default:"text" enum:"text,json,yaml" help:"Output format" short:"f"`
	Indent int    `default:"2"                          help:"Indent width for JSON and YAML output" short:"i"`

	Name string   `arg:"" help:"Alias name"                  name:"name"`
	Args []string `arg:"" help:"Arguments passed to the alias" name:"args" optional:"" passthrough:""`
}

// Run executes the expand command.
func (e *Expand) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	g := globalsFrom(ctx)

	body, err := g.store().Read(ctx, e.Name)
	if err != nil {
		return err
	}

	steps, err := run.Plan(body, invocation(e.Name, e.Args))
	if err != nil {
		return err
	}

	switch e.Format {
	case FormatJSON:
		return e.writeJSON(g.Stdout, steps)

	case FormatYAML:
		return e.writeYAML(ctx, g.Stdout, steps)

	default:
		return writeText(g.Stdout, steps)
	}
}

func (e *Expand) writeJSON(w io.Writer, steps []run.Step) error {
	var (
		data []byte
		err  error
	)

	if e.Indent > 0 {
		data, err = json.MarshalIndent(steps, "", strings.Repeat(" ", e.Indent))
	} else {
		data, err = json.Marshal(steps)
	}

	if err != nil {
		return ErrJSONMarshal.Wrap(err)
	}

	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

func (e *Expand) writeYAML(ctx context.Context, w io.Writer, steps []run.Step) error {
	var opts []yaml.EncodeOption
	if e.Indent > 0 {
		opts = append(opts, yaml.Indent(e.Indent))
	}

	data, err := yaml.MarshalContext(ctx, steps, opts...)
	if err != nil {
		return ErrYAMLMarshal.Wrap(err).
			With(slog.Int("steps", len(steps)))
	}

	if _, err := w.Write(data); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// writeText writes one block per step: the line number and kind, then the
// step text. Continuation lines and errors are indented under the text.
//
//	4 shell  @pushd /tmp
//	6 script len(ARGV)
//	9 shell  @nope
//	         ! unknown @command: @nope
func writeText(w io.Writer, steps []run.Step) error {
	const margin = "           "

	var sb strings.Builder

	for _, st := range steps {
		fmt.Fprintf(&sb, "%3d %-6s %s\n", st.Line, st.Kind,
			strings.ReplaceAll(st.Text, "\n", "\n"+margin))

		if st.Error != "" {
			sb.WriteString(margin + "! ")
			sb.WriteString(strings.ReplaceAll(st.Error, "\n", "\n"+margin+"  "))
			sb.WriteByte('\n')
		}
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
