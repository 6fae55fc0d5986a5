package lang

import "unicode/utf8"

// Pattern locates delimited text. It is satisfied by [regexp.Regexp].
type Pattern interface {
	// FindStringSubmatchIndex returns the offsets of the leftmost match in s
	// and of its submatches, or nil when there is none.
	FindStringSubmatchIndex(s string) []int
}

// Resolver maps the inner text of a delimited match to its replacement.
type Resolver func(inner string) (string, error)

// Rule pairs a delimiter pattern with the resolver for its matches.
//
// If Pattern has a capture group, group 1 is the inner text handed to
// Resolve; otherwise the whole match is. Pattern must never match the empty
// string.
type Rule struct {
	Pattern Pattern
	Resolve Resolver
}

// Match locates one delimited occurrence within some text.
type Match struct {
	Range

	// Inner is the portion passed to a [Resolver].
	Inner Range
}

// Innermost finds the most deeply nested match of re in text.
//
// The leftmost match is refined by searching again from one character after
// its start. While the new match ends at the same offset, it is nested inside
// the previous one and replaces it. The last such match is returned.
func Innermost(re Pattern, text string) (Match, bool) {
	m, ok := matchFrom(re, text, 0)
	if !ok {
		return Match{}, false
	}

	for {
		_, size := utf8.DecodeRuneInString(text[m.Start:])

		next, ok := matchFrom(re, text, m.Start+size)
		if !ok || next.End != m.End {
			return m, true
		}

		m = next
	}
}

// matchFrom returns the leftmost match of re in text[from:], with offsets
// relative to text.
func matchFrom(re Pattern, text string, from int) (Match, bool) {
	if from >= len(text) {
		return Match{}, false
	}

	loc := re.FindStringSubmatchIndex(text[from:])
	if loc == nil || loc[0] == loc[1] {
		return Match{}, false
	}

	m := Match{Range: Range{Start: loc[0], End: loc[1]}}
	m.Inner = m.Range

	if len(loc) >= 4 && loc[2] >= 0 {
		m.Inner = Range{Start: loc[2], End: loc[3]}
	}

	m.Range = m.Range.Shift(from)
	m.Inner = m.Inner.Shift(from)

	return m, true
}

// Replace repeatedly resolves the innermost match of the given rules and
// splices the result back into text until nothing matches.
//
// When the innermost matches of two rules overlap, the one starting later is
// nested in the other and is resolved first. Otherwise the leftmost match is
// resolved first.
//
// A resolver failure stops the replacement. The error is decorated with the
// text as it stood at that moment, with the failing match marked.
func Replace(text string, rules ...Rule) (string, error) {
	for {
		rule, m, ok := nextMatch(text, rules)
		if !ok {
			return text, nil
		}

		out, err := rule.Resolve(m.Inner.Slice(text))
		if err != nil {
			return "", Decorate(ErrSubstitution.Wrap(err), text, m.Range)
		}

		text = text[:m.Start] + out + text[m.End:]
	}
}

// nextMatch selects the rule and match that Replace resolves next.
func nextMatch(text string, rules []Rule) (Rule, Match, bool) {
	var (
		best  Match
		rule  Rule
		found bool
	)

	for _, r := range rules {
		if r.Pattern == nil || r.Resolve == nil {
			continue
		}

		m, ok := Innermost(r.Pattern, text)
		if !ok {
			continue
		}

		switch {
		case !found:
			best, rule, found = m, r, true

		case m.Overlaps(best.Range):
			if m.Start > best.Start {
				best, rule = m, r
			}

		case m.Start < best.Start:
			best, rule = m, r
		}
	}

	return rule, best, found
}
