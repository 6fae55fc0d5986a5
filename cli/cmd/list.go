package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// List prints every alias with the first line of its body.
type List struct {
	Names bool `help:"Print names only" short:"n"`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	g := globalsFrom(ctx)

	aliases, err := g.store().List(ctx)
	if err != nil {
		return err
	}

	var sb strings.Builder

	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	for _, a := range aliases {
		if l.Names {
			fmt.Fprintln(tw, a.Name)

			continue
		}

		fmt.Fprintf(tw, "%s\t%s\n", a.Name, a.Summary())
	}

	if err := tw.Flush(); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	if _, err := io.WriteString(g.Stdout, sb.String()); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
