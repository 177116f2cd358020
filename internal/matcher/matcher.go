// Package matcher ranks catalog remedies for a set of symptom observations.
package matcher

import (
	"sort"
	"strings"

	"github.com/thebtf/herbmind/internal/catalog"
	"github.com/thebtf/herbmind/pkg/models"
	"github.com/thebtf/herbmind/pkg/similarity"
)

const (
	// DefaultTopK is the number of remedies returned when the caller asks for none.
	DefaultTopK = 5
	// MinSimilarity is the exclusive lower bound for similarity candidates.
	MinSimilarity = 0.1

	directBase          = 0.5
	directWeight        = 0.2
	categoryMatchWeight = 0.5
)

// Matcher combines direct catalog mappings with TF-IDF similarity over remedy
// indications and properties. It is immutable after New.
type Matcher struct {
	catalog  *catalog.Catalog
	mappings *catalog.Mappings
	index    *similarity.Index
}

// New fits the remedy vector space. A nil mappings disables direct matching.
func New(cat *catalog.Catalog, mappings *catalog.Mappings) *Matcher {
	if mappings == nil {
		mappings = catalog.EmptyMappings()
	}
	docs := make([]string, len(cat.Remedies))
	for i := range cat.Remedies {
		docs[i] = cat.Remedies[i].Document()
	}
	return &Matcher{
		catalog:  cat,
		mappings: mappings,
		index:    similarity.NewIndex(docs),
	}
}

// FindMatches returns at most topK remedies ordered by descending final score.
func (m *Matcher) FindMatches(observations []models.SymptomObservation, topK int) []*models.MatchedRemedy {
	if len(observations) == 0 {
		return []*models.MatchedRemedy{}
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	direct := m.directMatches(observations)
	similar := m.similarityMatches(observations, topK)
	merged := merge(direct, similar)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].FinalScore > merged[j].FinalScore
	})
	if len(merged) > topK {
		merged = merged[:topK]
	}
	return merged
}

// directMatches collects remedies mapped to observation names, then remedies
// mapped to observation categories that were not already matched by name.
func (m *Matcher) directMatches(observations []models.SymptomObservation) []*models.MatchedRemedy {
	var out []*models.MatchedRemedy
	byID := make(map[string]*models.MatchedRemedy)

	for _, obs := range observations {
		for _, rid := range m.mappings.SymptomRemedies[catalog.NormalizeTerm(obs.Name)] {
			if cand, ok := byID[rid]; ok {
				cand.DirectMatchCount++
				cand.AddReason("Specifically recommended for " + obs.Name)
				continue
			}
			remedy, ok := m.catalog.Remedy(rid)
			if !ok {
				continue
			}
			cand := models.NewMatchedRemedy(*remedy)
			cand.DirectMatchCount = 1
			cand.AddReason("Specifically recommended for " + obs.Name)
			byID[rid] = cand
			out = append(out, cand)
		}
	}

	seenCategory := make(map[string]bool)
	for _, obs := range observations {
		category := strings.ToLower(obs.Category)
		if category == "" || seenCategory[category] {
			continue
		}
		seenCategory[category] = true
		for _, rid := range m.mappings.CategoryRemedies[category] {
			if _, ok := byID[rid]; ok {
				continue
			}
			remedy, ok := m.catalog.Remedy(rid)
			if !ok {
				continue
			}
			cand := models.NewMatchedRemedy(*remedy)
			cand.DirectMatchCount = categoryMatchWeight
			cand.AddReason("Effective for " + category + " symptoms")
			byID[rid] = cand
			out = append(out, cand)
		}
	}

	for _, cand := range out {
		cand.FinalScore = directBase + directWeight*cand.DirectMatchCount
	}
	return out
}

// similarityMatches returns up to 2*topK remedies with cosine similarity
// above MinSimilarity, most similar first.
func (m *Matcher) similarityMatches(observations []models.SymptomObservation, topK int) []*models.MatchedRemedy {
	names := make([]string, len(observations))
	for i, obs := range observations {
		names[i] = obs.Name
	}
	scores := m.index.Similarities(strings.Join(names, " "))

	order := make([]int, 0, len(scores))
	for i, s := range scores {
		if s > MinSimilarity {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if len(order) > 2*topK {
		order = order[:2*topK]
	}

	out := make([]*models.MatchedRemedy, 0, len(order))
	for _, i := range order {
		cand := models.NewMatchedRemedy(m.catalog.Remedies[i])
		cand.ConfidenceScore = scores[i]
		cand.FinalScore = scores[i]
		for _, reason := range matchReasons(observations, &m.catalog.Remedies[i]) {
			cand.AddReason(reason)
		}
		out = append(out, cand)
	}
	return out
}

// merge combines candidates by remedy id, direct candidates first.
func merge(direct, similar []*models.MatchedRemedy) []*models.MatchedRemedy {
	out := make([]*models.MatchedRemedy, 0, len(direct)+len(similar))
	byID := make(map[string]*models.MatchedRemedy, len(direct))
	for _, cand := range direct {
		byID[cand.ID] = cand
		out = append(out, cand)
	}

	for _, cand := range similar {
		existing, ok := byID[cand.ID]
		if !ok {
			out = append(out, cand)
			continue
		}
		existing.ConfidenceScore = cand.ConfidenceScore
		existing.FinalScore = directBase + directWeight*existing.DirectMatchCount + cand.ConfidenceScore
		for _, reason := range cand.MatchReasons {
			existing.AddReason(reason)
		}
	}
	return out
}
