package lang

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
)

// Delimiter tokens recognized by [ValidateNesting].
const (
	commandOpen     = "$("
	groupOpen       = "("
	commandClose    = ")"
	expressionOpen  = "<%="
	expressionClose = "%>"
)

// family distinguishes the two independent delimiter families.
type family int

const (
	familyCommand family = iota
	familyExpression
)

// opener is an open delimiter awaiting its close.
type opener struct {
	span Range
	seq  int // order in which the delimiter was opened
}

// nesting tracks open delimiters of both families during a scan.
type nesting struct {
	stack     [2][]opener
	seq       int
	violation []Range
}

// ValidateNesting checks that the command-substitution delimiters ("$(" or
// "(" closed by ")") and the expression delimiters ("<%=" closed by "%>") in
// text are balanced and properly nested.
//
// Each family is tracked on its own stack. A close must match the innermost
// open of its family, and that open must not be older than the innermost
// still-open delimiter of the other family; "$(<%=)%>" is rejected even though
// each family balances on its own.
//
// All violations are collected and reported as one error marking every
// offending span.
func ValidateNesting(text string) error {
	var n nesting

	for i := 0; i < len(text); {
		switch rest := text[i:]; {
		case strings.HasPrefix(rest, expressionOpen):
			n.open(familyExpression, Range{Start: i, End: i + len(expressionOpen)})
			i += len(expressionOpen)

		case strings.HasPrefix(rest, expressionClose):
			n.close(familyExpression, Range{Start: i, End: i + len(expressionClose)})
			i += len(expressionClose)

		case strings.HasPrefix(rest, commandOpen):
			n.open(familyCommand, Range{Start: i, End: i + len(commandOpen)})
			i += len(commandOpen)

		case strings.HasPrefix(rest, groupOpen):
			n.open(familyCommand, Range{Start: i, End: i + len(groupOpen)})
			i += len(groupOpen)

		case strings.HasPrefix(rest, commandClose):
			n.close(familyCommand, Range{Start: i, End: i + len(commandClose)})
			i += len(commandClose)

		default:
			i++
		}
	}

	for _, stack := range n.stack {
		for _, o := range stack {
			n.violation = append(n.violation, o.span)
		}
	}

	if len(n.violation) == 0 {
		return nil
	}

	slices.SortFunc(n.violation, func(a, b Range) int {
		return cmp.Or(cmp.Compare(a.Start, b.Start), cmp.Compare(a.End, b.End))
	})

	return ErrNesting.
		With(slog.Int("count", len(n.violation))).
		At(text, slices.Compact(n.violation)...)
}

func (n *nesting) open(f family, span Range) {
	n.stack[f] = append(n.stack[f], opener{span: span, seq: n.seq})
	n.seq++
}

func (n *nesting) close(f family, span Range) {
	own := n.stack[f]
	if len(own) == 0 {
		n.violation = append(n.violation, span)

		return
	}

	top := own[len(own)-1]
	n.stack[f] = own[:len(own)-1]

	other := n.stack[1-f]
	if len(other) > 0 && other[len(other)-1].seq > top.seq {
		n.violation = append(n.violation, top.span, other[len(other)-1].span, span)
	}
}
