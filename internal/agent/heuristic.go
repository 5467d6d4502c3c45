package agent

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/i474232898/travel-weather-agent/internal/common"
)

const trailingPunctuation = ",.;:!?"

// prepositions introducing a destination: Czech "do" and English "to".
var prepositions = []string{"do", "to"}

// Heuristic guesses a destination from raw text without any I/O.
//
// The first pass returns the token that follows "do"/"to". The second pass, used only
// when the first finds nothing, returns the first capitalized token. Candidates shorter
// than two characters are skipped. An empty string means no guess.
func Heuristic(text string) string {
	tokens := strings.Fields(text)

	for i := 0; i < len(tokens)-1; i++ {
		if !common.EqualFoldAny(tokens[i], prepositions...) {
			continue
		}
		if cand := stripTrailing(tokens[i+1]); utf8.RuneCountInString(cand) >= 2 {
			return cand
		}
	}

	for _, tok := range tokens {
		cand := stripTrailing(tok)
		if utf8.RuneCountInString(cand) < 2 {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(cand); unicode.IsUpper(r) {
			return cand
		}
	}

	return ""
}

func stripTrailing(tok string) string {
	return strings.TrimRight(tok, trailingPunctuation)
}
