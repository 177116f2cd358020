package extractor

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/thebtf/herbmind/internal/catalog"
	"github.com/thebtf/herbmind/pkg/models"
	"github.com/thebtf/herbmind/pkg/similarity"
)

// DefaultSeverityKeywords is used when the catalog declares no severity indicators.
var DefaultSeverityKeywords = map[models.Severity][]string{
	models.SeverityMild:     {"slight", "little", "minor", "light", "mild"},
	models.SeverityModerate: {"moderate", "regular", "normal"},
	models.SeveritySevere:   {"severe", "intense", "unbearable", "extreme", "terrible"},
}

// DefaultEmergencyKeywords is used when the catalog declares no emergency flags.
var DefaultEmergencyKeywords = []string{
	"chest pain", "difficulty breathing", "sudden severe",
	"unconscious", "bleeding heavily", "high fever",
}

// termPattern is a whitespace-tolerant literal pattern for one vocabulary term.
type termPattern struct {
	re    *regexp.Regexp
	terms map[string]bool
	term  string
}

// buildPatterns compiles one pattern per term, longest term first.
func buildPatterns(terms []string) []termPattern {
	out := make([]termPattern, 0, len(terms))
	for _, term := range terms {
		words := strings.Fields(term)
		if len(words) == 0 {
			continue
		}
		quoted := make([]string, len(words))
		for i, w := range words {
			quoted[i] = regexp.QuoteMeta(w)
		}
		expr := strings.Join(quoted, `\s+`)
		if first, _ := utf8.DecodeRuneInString(term); isWordRune(first) {
			expr = `\b` + expr
		}
		if last, _ := utf8.DecodeLastRuneInString(term); isWordRune(last) {
			expr += `\b`
		}
		out = append(out, termPattern{term: term, re: regexp.MustCompile(expr), terms: similarity.TermSet(term)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].term) > len(out[j].term)
	})
	return out
}

// isWordRune matches the ASCII-only word class used by \b in RE2.
func isWordRune(r rune) bool {
	return r < utf8.RuneSelf && (r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
}

// severityTable returns the catalog severity keywords or the defaults when
// the catalog declares none.
func severityTable(cat *catalog.Catalog) map[models.Severity][]string {
	table := cat.SeverityKeywords()
	for _, words := range table {
		if len(words) > 0 {
			return table
		}
	}
	return DefaultSeverityKeywords
}

// emergencyTable returns the catalog emergency keywords or the defaults.
func emergencyTable(cat *catalog.Catalog) []string {
	if kw := cat.EmergencyKeywords(); len(kw) > 0 {
		return kw
	}
	return DefaultEmergencyKeywords
}

// vocabularyLexicon merges the built-in findings with the catalog terms.
func vocabularyLexicon(cat *catalog.Catalog) map[string]string {
	entries := make(map[string]string, len(DefaultFindings)+len(cat.Terms()))
	for _, f := range DefaultFindings {
		entries[f] = LabelFinding
	}
	for _, term := range cat.Terms() {
		entries[term] = LabelSymptom
	}
	return entries
}
