package analysis_test

import (
	"testing"

	"insight_engine/internal/analysis"
)

func TestSummarizeFeedback(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want string
	}{
		{"empty", nil, analysis.NoFeedback},
		{"one", []string{"Quiet."}, "Quiet."},
		{"three verbatim", []string{"a", "b", "c"}, "a b c"},
		{"four truncated", []string{"a", "b", "c", "d"}, "a b c..."},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := analysis.SummarizeFeedback(c.in); got != c.want {
				t.Fatalf("got %q, want %q", got, c.want)
			}
		})
	}
}
