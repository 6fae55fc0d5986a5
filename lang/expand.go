package lang

import (
	"regexp"
	"strings"
)

// Inline substitution patterns.
//
// CommandPattern pairs each "$(" with its ")" the way [ValidateNesting] does,
// counting a bare "(" as an opener, and reports the first substitution to
// close, which never contains another. ExpressionPattern is non-greedy so
// that a match ends at the first close; [Innermost] then narrows it to the
// deepest open.
var (
	CommandPattern    Pattern = commandPattern{}
	ExpressionPattern Pattern = regexp.MustCompile(`<%=(.*?)%>`)
)

type commandPattern struct{}

func (commandPattern) FindStringSubmatchIndex(s string) []int {
	type paren struct {
		at      int
		command bool
	}

	var open []paren

	for i := 0; i < len(s); {
		switch rest := s[i:]; {
		case strings.HasPrefix(rest, expressionOpen):
			i += len(expressionOpen)

		case strings.HasPrefix(rest, commandOpen):
			open = append(open, paren{at: i, command: true})
			i += len(commandOpen)

		case strings.HasPrefix(rest, groupOpen):
			open = append(open, paren{at: i})
			i += len(groupOpen)

		case strings.HasPrefix(rest, commandClose):
			if n := len(open); n > 0 {
				top := open[n-1]
				open = open[:n-1]

				if top.command {
					return []int{top.at, i + len(commandClose), top.at + len(commandOpen), i}
				}
			}

			i += len(commandClose)

		default:
			i++
		}
	}

	return nil
}

// Resolvers supplies the replacement for each kind of inline substitution.
// A nil field leaves that kind of substitution untouched.
type Resolvers struct {
	// Command receives the text between "$(" and ")".
	Command Resolver
	// Expression receives the text between "<%=" and "%>".
	Expression Resolver
}

// Expand validates the delimiters in a shell line and then resolves its
// inline substitutions from the inside out.
func Expand(line string, r Resolvers) (string, error) {
	err := ValidateNesting(line)
	if err != nil {
		return "", err
	}

	return Replace(line,
		Rule{Pattern: CommandPattern, Resolve: r.Command},
		Rule{Pattern: ExpressionPattern, Resolve: r.Expression},
	)
}
