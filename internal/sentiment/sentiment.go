// Package sentiment scores short free-text remarks for polarity and
// subjectivity using an embedded lexicon.
package sentiment

import (
	"strings"
	"unicode"
)

// negationWindow is how many tokens a negation stays active for.
const negationWindow = 3

// Score is the sentiment of a piece of text.
type Score struct {
	Polarity     float64 `json:"polarity"`     // -1.0 (negative) to 1.0 (positive)
	Subjectivity float64 `json:"subjectivity"` // 0.0 (objective) to 1.0 (subjective)
}

// Analyze scores text. Text with no known sentiment words scores zero on
// both axes.
func Analyze(text string) Score {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return Score{}
	}

	var (
		polSum, subjSum float64
		matched         int
		intensity       = 1.0
		negatedFor      int
	)

	for _, tok := range tokens {
		if isNegation(tok) {
			negatedFor = negationWindow
			continue
		}
		if mult, ok := intensifiers[tok]; ok {
			intensity *= mult
			continue
		}

		e, ok := lexicon[tok]
		if !ok {
			if negatedFor > 0 {
				negatedFor--
			}
			continue
		}

		p := clamp(e.polarity*intensity, -1, 1)
		s := clamp(e.subjectivity*intensity, 0, 1)
		if negatedFor > 0 {
			p *= -0.5
			negatedFor = 0
		}
		polSum += p
		subjSum += s
		matched++
		intensity = 1.0
	}

	if matched == 0 {
		return Score{}
	}
	return Score{
		Polarity:     polSum / float64(matched),
		Subjectivity: subjSum / float64(matched),
	}
}

func isNegation(tok string) bool {
	return negations[tok] || strings.HasSuffix(tok, "n't")
}

// tokenize lower-cases text and splits it into words, keeping apostrophes
// inside words so contractions like "doesn't" survive.
func tokenize(text string) []string {
	text = strings.ToLower(strings.ReplaceAll(text, "\u2019", "'"))
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && r != '\''
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
