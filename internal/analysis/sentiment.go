// Package analysis turns community text into structured review insight:
// sentiment scoring, per-document heuristic analysis and cross-document aggregation.
package analysis

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"insight_engine/internal/domain"
)

const (
	minSentimentChars = 10
	labelThreshold    = 0.1
	negationWindow    = 3
	negationFactor    = -0.5
)

var wordRe = regexp.MustCompile(`[a-z]+(?:'[a-z]+)?`)

// Score estimates polarity in [-1,1] and subjectivity in [0,1] from a word lexicon.
// Intensifiers scale the next assessed word; a negation within a short window
// flips and dampens it. Texts shorter than 10 characters score neutral.
func Score(text string) domain.Sentiment {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minSentimentChars {
		return domain.Sentiment{Label: domain.SentimentNeutral}
	}

	var sumP, sumS float64
	n := 0
	intensity := 1.0
	negatedAt := -1
	tokens := wordRe.FindAllString(strings.ToLower(text), -1)
	for i, tok := range tokens {
		if isNegation(tok) {
			negatedAt = i
			continue
		}
		if m, ok := intensifiers[tok]; ok {
			intensity *= m
			continue
		}
		e, ok := lexicon[tok]
		if !ok {
			continue
		}
		p := e.polarity * intensity
		s := e.subjectivity * intensity
		if negatedAt >= 0 && i-negatedAt <= negationWindow {
			p *= negationFactor
			negatedAt = -1
		}
		sumP += clamp(p, -1, 1)
		sumS += clamp(s, 0, 1)
		n++
		intensity = 1.0
	}
	if n == 0 {
		return domain.Sentiment{Label: domain.SentimentNeutral}
	}
	pol := clamp(sumP/float64(n), -1, 1)
	return domain.Sentiment{
		Polarity:     pol,
		Subjectivity: clamp(sumS/float64(n), 0, 1),
		Label:        Label(pol),
	}
}

// Label classifies a polarity value.
func Label(polarity float64) domain.SentimentLabel {
	switch {
	case polarity > labelThreshold:
		return domain.SentimentPositive
	case polarity < -labelThreshold:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

func isNegation(tok string) bool {
	switch tok {
	case "not", "never", "no", "nothing", "hardly":
		return true
	}
	return strings.HasSuffix(tok, "n't")
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
