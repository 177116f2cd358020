// Package similarity provides text similarity utilities.
package similarity

import (
	"regexp"
	"strings"
)

// tokenPattern mirrors the classic "two or more word characters" token rule.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lowercases text and splits it into tokens, dropping English stop words.
func Tokenize(text string) []string {
	words := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !IsStopWord(w) {
			out = append(out, w)
		}
	}
	return out
}

// TermSet returns the distinct tokens of text.
func TermSet(text string) map[string]bool {
	terms := make(map[string]bool)
	for _, w := range Tokenize(text) {
		terms[w] = true
	}
	return terms
}

// JaccardSimilarity returns |a ∩ b| / |a ∪ b|. Sets with nothing in common,
// including two empty sets, score 0.
func JaccardSimilarity(a, b map[string]bool) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	shared := 0
	for term := range a {
		if b[term] {
			shared++
		}
	}
	if shared == 0 {
		return 0
	}
	return float64(shared) / float64(len(a)+len(b)-shared)
}
