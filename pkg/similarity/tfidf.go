package similarity

import (
	"math"
	"sort"
)

// Vector is a sparse l2-normalized term-weight vector keyed by vocabulary index.
type Vector map[int]float64

// Dot returns the dot product of two vectors; for normalized vectors this is the cosine.
func (v Vector) Dot(o Vector) float64 {
	if len(o) < len(v) {
		v, o = o, v
	}
	sum := 0.0
	for i, w := range v {
		sum += w * o[i]
	}
	return sum
}

// Index is a TF-IDF vector space fitted over a fixed document set.
// It is immutable after NewIndex and safe for concurrent readers.
type Index struct {
	vocab   map[string]int
	idf     []float64
	vectors []Vector
}

// NewIndex fits the vocabulary and smoothed idf weights over docs:
// idf(t) = ln((1+n)/(1+df(t))) + 1.
func NewIndex(docs []string) *Index {
	idx := &Index{vocab: make(map[string]int)}

	tokenized := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tokenized[i] = Tokenize(doc)
		seen := make(map[string]bool)
		for _, t := range tokenized[i] {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	idx.idf = make([]float64, len(terms))
	for i, t := range terms {
		idx.vocab[t] = i
		idx.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	idx.vectors = make([]Vector, len(docs))
	for i, toks := range tokenized {
		idx.vectors[i] = idx.weigh(toks)
	}
	return idx
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int {
	return len(idx.vectors)
}

// Transform projects text into the fitted space. Unknown terms are ignored.
func (idx *Index) Transform(text string) Vector {
	return idx.weigh(Tokenize(text))
}

// Similarities returns the cosine similarity of query against every document, in document order.
func (idx *Index) Similarities(query string) []float64 {
	q := idx.Transform(query)
	out := make([]float64, len(idx.vectors))
	if len(q) == 0 {
		return out
	}
	for i, v := range idx.vectors {
		out[i] = q.Dot(v)
	}
	return out
}

func (idx *Index) weigh(tokens []string) Vector {
	tf := make(map[int]float64)
	for _, t := range tokens {
		if i, ok := idx.vocab[t]; ok {
			tf[i]++
		}
	}
	vec := make(Vector, len(tf))
	norm := 0.0
	for i, c := range tf {
		w := c * idx.idf[i]
		vec[i] = w
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
