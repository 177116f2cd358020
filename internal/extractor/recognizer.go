package extractor

import (
	"regexp"
	"strings"
)

// Entity labels produced by LexiconRecognizer.
const (
	LabelSymptom = "SYMPTOM"
	LabelFinding = "FINDING"
)

// findingLabels are the entity labels accepted as symptoms without a vocabulary match.
var findingLabels = map[string]bool{
	LabelSymptom: true,
	LabelFinding: true,
	"PROBLEM":    true,
	"DISEASE":    true,
	"DISORDER":   true,
	"SIGN":       true,
}

// IsFindingLabel reports whether an entity label marks a clinical finding or problem.
func IsFindingLabel(label string) bool {
	return findingLabels[strings.ToUpper(label)]
}

// Entity is a span recognized in text. Offsets are byte offsets, End exclusive.
type Entity struct {
	Text  string
	Label string
	Start int
	End   int
}

// Recognizer performs named-entity recognition over lowercased text.
type Recognizer interface {
	Recognize(text string) ([]Entity, error)
}

// DefaultFindings is a general clinical-finding lexicon used in addition to
// the catalog vocabulary.
var DefaultFindings = []string{
	"fatigue", "tiredness", "dizziness", "insomnia", "anxiety", "stress",
	"nausea", "vomiting", "diarrhea", "constipation", "bloating", "heartburn",
	"indigestion", "cramps", "fever", "chills", "cough", "congestion",
	"runny nose", "sneezing", "sore throat", "headache", "migraine",
	"back pain", "joint pain", "muscle pain", "muscle ache", "toothache",
	"earache", "rash", "itching", "acne", "eczema", "sunburn", "burn",
}

var wordRegex = regexp.MustCompile(`[\p{L}\p{N}]+(?:['-][\p{L}\p{N}]+)*`)

// LexiconRecognizer tags the longest known phrase at each word position.
type LexiconRecognizer struct {
	labels   map[string]string
	maxWords int
}

// NewLexiconRecognizer builds a recognizer from phrase to label entries.
func NewLexiconRecognizer(entries map[string]string) *LexiconRecognizer {
	r := &LexiconRecognizer{labels: make(map[string]string, len(entries))}
	for phrase, label := range entries {
		words := strings.Fields(strings.ToLower(phrase))
		if len(words) == 0 {
			continue
		}
		r.labels[strings.Join(words, " ")] = label
		if len(words) > r.maxWords {
			r.maxWords = len(words)
		}
	}
	return r
}

// Recognize implements Recognizer.
func (r *LexiconRecognizer) Recognize(text string) ([]Entity, error) {
	locs := wordRegex.FindAllStringIndex(text, -1)
	var out []Entity

	for i := 0; i < len(locs); {
		matched := 0
		for n := min(r.maxWords, len(locs)-i); n >= 1; n-- {
			words := make([]string, n)
			for k := 0; k < n; k++ {
				words[k] = strings.ToLower(text[locs[i+k][0]:locs[i+k][1]])
			}
			label, ok := r.labels[strings.Join(words, " ")]
			if !ok {
				continue
			}
			start, end := locs[i][0], locs[i+n-1][1]
			out = append(out, Entity{Text: text[start:end], Label: label, Start: start, End: end})
			matched = n
			break
		}
		if matched == 0 {
			matched = 1
		}
		i += matched
	}
	return out, nil
}
