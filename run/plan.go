package run

import (
	"github.com/ardnew/aka/lang"
)

// Step is one segment of a body and the directive it classifies to before
// any inline substitution is resolved.
type Step struct {
	Line      int    `json:"line"                yaml:"line"`
	Kind      string `json:"kind"                yaml:"kind"`
	Text      string `json:"text"                yaml:"text"`
	Directive string `json:"directive,omitempty" yaml:"directive,omitempty"`
	Error     string `json:"error,omitempty"     yaml:"error,omitempty"`
}

// Step kinds.
const (
	KindShell  = "shell"
	KindScript = "script"
)

// Plan substitutes args into body and describes each resulting segment
// without executing anything. A segment that fails validation or
// classification is reported in its Step rather than as an error; only
// body-level failures are returned.
func Plan(body string, args []string) ([]Step, error) {
	text, err := lang.SubstituteArgs(body, args)
	if err != nil {
		return nil, err
	}

	segs, err := lang.Split(text)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, 0, len(segs))

	for _, seg := range segs {
		var st Step

		switch s := seg.(type) {
		case lang.ShellLine:
			st = Step{Line: s.Line, Kind: KindShell, Text: s.Text}

			if err := lang.ValidateNesting(s.Text); err != nil {
				st.Error = err.Error()
				steps = append(steps, st)

				continue
			}

		case lang.ScriptBlock:
			st = Step{Line: s.Line, Kind: KindScript, Text: s.Text}
		}

		d, err := lang.Classify(seg)
		if err != nil {
			st.Error = err.Error()
		} else {
			st.Directive = d.String()
		}

		steps = append(steps, st)
	}

	return steps, nil
}
