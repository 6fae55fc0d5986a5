package lang

import (
	"log/slog"
	"regexp"
	"strings"
)

// CommentPrefix starts a line that [Split] discards.
const CommentPrefix = "#"

// fencePattern matches a line that opens a script block: three or more
// backticks or tildes, optionally followed by an info word such as "expr".
var fencePattern = regexp.MustCompile("^(`{3,}|~{3,})[\\w.+-]*$")

// Segment is one ordered unit of an alias body: either a [ShellLine] or a
// [ScriptBlock].
type Segment interface {
	segment()
}

// ShellLine is a trimmed, non-empty, non-comment line outside any fence.
type ShellLine struct {
	Text string
	Line int // 1-based line number within the body
}

// ScriptBlock is the trimmed interior of a fenced region.
type ScriptBlock struct {
	Text string
	Line int // 1-based line number of the first interior line
}

func (ShellLine) segment()   {}
func (ScriptBlock) segment() {}

// Split divides body into segments in source order.
//
// A line consisting solely of a fence opens a script block, closed by the
// next line consisting solely of the same fence. Fence lines are dropped and
// the interior becomes one [ScriptBlock]. Every other line is trimmed; blank
// lines and comments are dropped, and the rest become [ShellLine] segments.
//
// An opening fence without a matching close is an error.
func Split(body string) ([]Segment, error) {
	lines := strings.Split(body, "\n")

	var (
		segs   []Segment
		offset int
	)

	for i := 0; i < len(lines); i++ {
		start := offset
		line := strings.TrimSpace(lines[i])
		offset += len(lines[i]) + 1

		m := fencePattern.FindStringSubmatch(line)
		if m == nil {
			if line == "" || strings.HasPrefix(line, CommentPrefix) {
				continue
			}

			segs = append(segs, ShellLine{Text: line, Line: i + 1})

			continue
		}

		end := closeFence(lines, i+1, m[1])
		if end < 0 {
			return nil, ErrUnterminated.
				With(slog.Int("line", i+1)).
				At(body, Range{Start: start, End: start + len(lines[i])})
		}

		interior := strings.Join(lines[i+1:end], "\n")
		segs = append(segs, ScriptBlock{
			Text: strings.TrimSpace(interior),
			Line: i + 2,
		})

		for _, skipped := range lines[i+1 : end+1] {
			offset += len(skipped) + 1
		}

		i = end
	}

	return segs, nil
}

// closeFence returns the index of the first line at or after from that
// consists solely of fence, or -1 if there is none.
func closeFence(lines []string, from int, fence string) int {
	for j := from; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == fence {
			return j
		}
	}

	return -1
}
