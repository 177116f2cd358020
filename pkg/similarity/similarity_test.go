package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJaccardSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		set1     map[string]bool
		set2     map[string]bool
		expected float64
	}{
		{
			name:     "identical sets",
			set1:     map[string]bool{"a": true, "b": true, "c": true},
			set2:     map[string]bool{"a": true, "b": true, "c": true},
			expected: 1.0,
		},
		{
			name:     "no overlap",
			set1:     map[string]bool{"a": true, "b": true},
			set2:     map[string]bool{"c": true, "d": true},
			expected: 0.0,
		},
		{
			name:     "partial overlap",
			set1:     map[string]bool{"a": true, "b": true, "c": true},
			set2:     map[string]bool{"b": true, "c": true, "d": true},
			expected: 0.5, // intersection=2, union=4
		},
		{
			name:     "empty sets",
			set1:     map[string]bool{},
			set2:     map[string]bool{},
			expected: 0.0,
		},
		{
			name:     "subset",
			set1:     map[string]bool{"head": true, "pain": true},
			set2:     map[string]bool{"head": true, "pain": true, "stomachache": true},
			expected: 0.667,
		},
		{
			name:     "one empty set",
			set1:     map[string]bool{"a": true},
			set2:     map[string]bool{},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := JaccardSimilarity(tt.set1, tt.set2)
			assert.InDelta(t, tt.expected, result, 0.001)
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "stop words dropped", text: "The pain in my back", want: []string{"pain"}},
		{name: "hyphen splits", text: "Anti-Inflammatory", want: []string{"anti", "inflammatory"}},
		{name: "single letters dropped", text: "a b vitamin c", want: []string{"vitamin"}},
		{name: "digits kept", text: "24 hours", want: []string{"24", "hours"}},
		{name: "empty", text: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestTermSet(t *testing.T) {
	terms := TermSet("cough, dry cough and sore throat")
	assert.Equal(t, map[string]bool{"cough": true, "dry": true, "sore": true, "throat": true}, terms)
}

func TestIndex_Similarities(t *testing.T) {
	idx := NewIndex([]string{
		"cough sore throat expectorant",
		"nausea motion sickness digestive",
		"headache relief tension headache analgesic",
	})
	require.Equal(t, 3, idx.Len())

	scores := idx.Similarities("headache")
	require.Len(t, scores, 3)
	assert.Zero(t, scores[0])
	assert.Zero(t, scores[1])
	assert.Greater(t, scores[2], 0.5)
	assert.LessOrEqual(t, scores[2], 1.0)

	assert.Equal(t, []float64{0, 0, 0}, idx.Similarities("unrelated words only"))
}

func TestIndex_SelfSimilarity(t *testing.T) {
	docs := []string{"cough bronchitis", "rash sunburn skin healing"}
	idx := NewIndex(docs)

	for i, doc := range docs {
		assert.InDelta(t, 1.0, idx.Similarities(doc)[i], 1e-9)
	}
}

func TestIndex_SmoothIDF(t *testing.T) {
	idx := NewIndex([]string{"ginger nausea", "ginger headache"})

	// ginger appears in both documents, nausea in one.
	ginger := idx.idf[idx.vocab["ginger"]]
	nausea := idx.idf[idx.vocab["nausea"]]
	assert.InDelta(t, 1.0, ginger, 1e-9)
	assert.InDelta(t, math.Log(3.0/2.0)+1, nausea, 1e-9)

	v := idx.Transform("nausea nausea ginger")
	norm := 0.0
	for _, w := range v {
		norm += w * w
	}
	assert.InDelta(t, 1.0, norm, 1e-9)
}

func TestVector_Dot(t *testing.T) {
	a := Vector{0: 0.6, 1: 0.8}
	b := Vector{1: 1}
	assert.InDelta(t, 0.8, a.Dot(b), 1e-9)
	assert.InDelta(t, 0.8, b.Dot(a), 1e-9)
	assert.Zero(t, Vector{}.Dot(a))
}
