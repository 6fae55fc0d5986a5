package lang

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Range is a half-open byte interval [Start, End) of some text.
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by r.
func (r Range) Len() int { return r.End - r.Start }

// Overlaps reports whether r and o share at least one byte.
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// Shift returns r moved right by n bytes.
func (r Range) Shift(n int) Range {
	return Range{Start: r.Start + n, End: r.End + n}
}

// Slice returns the substring of s covered by r.
func (r Range) Slice(s string) string { return s[r.Start:r.End] }

// Highlight reproduces text in a numbered gutter and writes a line of carets
// beneath every line touched by one of the given spans.
//
// A zero-width span is drawn as a single caret at its offset, which lets
// callers point at positions such as end-of-line.
func Highlight(text string, spans ...Range) string {
	lines := strings.Split(text, "\n")
	width := len(strconv.Itoa(len(lines)))

	var sb strings.Builder

	offset := 0

	for i, line := range lines {
		num := strconv.Itoa(i + 1)

		sb.WriteString("  ")
		sb.WriteString(strings.Repeat(" ", width-len(num)))
		sb.WriteString(num)
		sb.WriteString(" | ")
		sb.WriteString(line)
		sb.WriteByte('\n')

		if marks := markLine(line, offset, spans); marks != "" {
			sb.WriteString("  ")
			sb.WriteString(strings.Repeat(" ", width))
			sb.WriteString(" | ")
			sb.WriteString(marks)
			sb.WriteByte('\n')
		}

		offset += len(line) + 1
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// markLine returns the caret line for a single line of text starting at byte
// offset base, or the empty string if no span touches it.
func markLine(line string, base int, spans []Range) string {
	marked := func(pos int) bool {
		for _, s := range spans {
			if s.Len() == 0 && s.Start == pos {
				return true
			}

			if pos >= s.Start && pos < s.End {
				return true
			}
		}

		return false
	}

	var (
		sb  strings.Builder
		hit bool
	)

	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])

		switch {
		case marked(base + i):
			sb.WriteByte('^')

			hit = true

		case r == '\t':
			sb.WriteByte('\t')

		default:
			sb.WriteByte(' ')
		}

		i += size
	}

	// Zero-width spans may point just past the last character.
	end := base + len(line)
	for _, s := range spans {
		if s.Len() == 0 && s.Start == end {
			sb.WriteByte('^')

			hit = true

			break
		}
	}

	if !hit {
		return ""
	}

	return strings.TrimRight(sb.String(), " \t")
}
