package lang_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/aka/lang"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want []lang.Segment
	}{
		{
			name: "empty",
			body: "",
			want: nil,
		},
		{
			name: "plain_lines",
			body: "echo a\n\n# comment\n  ls -l  \n",
			want: []lang.Segment{
				lang.ShellLine{Text: "echo a", Line: 1},
				lang.ShellLine{Text: "ls -l", Line: 4},
			},
		},
		{
			name: "crlf",
			body: "echo a\r\necho b\r\n",
			want: []lang.Segment{
				lang.ShellLine{Text: "echo a", Line: 1},
				lang.ShellLine{Text: "echo b", Line: 2},
			},
		},
		{
			name: "fenced_block",
			body: "echo a\n```\nputs(1)\n  x\n```\necho b",
			want: []lang.Segment{
				lang.ShellLine{Text: "echo a", Line: 1},
				lang.ScriptBlock{Text: "puts(1)\n  x", Line: 3},
				lang.ShellLine{Text: "echo b", Line: 6},
			},
		},
		{
			name: "info_word",
			body: "```expr\n1 + 1\n```",
			want: []lang.Segment{
				lang.ScriptBlock{Text: "1 + 1", Line: 2},
			},
		},
		{
			name: "tilde_fence",
			body: "~~~\n\"```\"\n~~~",
			want: []lang.Segment{
				lang.ScriptBlock{Text: "\"```\"", Line: 2},
			},
		},
		{
			name: "comments_kept_in_block",
			body: "```\n# hi\n```",
			want: []lang.Segment{
				lang.ScriptBlock{Text: "# hi", Line: 2},
			},
		},
		{
			name: "empty_block",
			body: "```\n```",
			want: []lang.Segment{
				lang.ScriptBlock{Text: "", Line: 2},
			},
		},
		{
			name: "inline_backticks_are_shell",
			body: "echo ```x``` y",
			want: []lang.Segment{
				lang.ShellLine{Text: "echo ```x``` y", Line: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := lang.Split(tt.body)
			if err != nil {
				t.Fatalf("Split() error = %v", err)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Split() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplit_Unterminated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		span lang.Range
	}{
		{name: "missing_close", body: "echo\n```\nx", span: lang.Range{Start: 5, End: 8}},
		{name: "different_fence", body: "```\nx\n~~~", span: lang.Range{Start: 0, End: 3}},
		{name: "shorter_close", body: "````\nx\n```", span: lang.Range{Start: 0, End: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := lang.Split(tt.body)
			if !errors.Is(err, lang.ErrUnterminated) {
				t.Fatalf("Split() = %v, want ErrUnterminated", err)
			}

			var le *lang.Error
			if !errors.As(err, &le) {
				t.Fatalf("error is %T, want *lang.Error", err)
			}

			_, spans := le.Text()
			if diff := cmp.Diff([]lang.Range{tt.span}, spans); diff != "" {
				t.Errorf("spans mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
