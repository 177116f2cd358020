package catalog

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/thebtf/herbmind/pkg/models"
)

// Mappings are the symptom to remedy and symptom to symptom links derived
// from a catalog.
type Mappings struct {
	// SymptomRemedies maps a normalized canonical symptom name to remedy ids.
	SymptomRemedies map[string][]string
	// CategoryRemedies aggregates remedy ids over every symptom in a category.
	CategoryRemedies map[string][]string
	// Relationships are the validated primary to related symptom links.
	Relationships []models.Relationship
}

// EmptyMappings returns mappings with every direct-match feature disabled.
func EmptyMappings() *Mappings {
	return &Mappings{
		SymptomRemedies:  map[string][]string{},
		CategoryRemedies: map[string][]string{},
	}
}

// MappingResult is the outcome of BuildMappings: either Mappings or Err is set.
type MappingResult struct {
	Mappings *Mappings
	Err      *MappingBuildError
}

// OrEmpty returns the built mappings, or logs the failure and returns empty mappings.
func (r MappingResult) OrEmpty() *Mappings {
	if r.Err != nil {
		log.Warn().Err(r.Err).Msg("Symptom mappings unavailable, direct matching disabled")
		return EmptyMappings()
	}
	return r.Mappings
}

// BuildMappings derives the mapping tables. Every referenced remedy and
// symptom id must exist in the catalog.
func BuildMappings(c *Catalog) MappingResult {
	m := EmptyMappings()
	categorySeen := make(map[string]map[string]bool)

	for _, s := range c.Symptoms {
		name := NormalizeTerm(s.Name)
		category := s.CategoryOrDefault()
		if categorySeen[category] == nil {
			categorySeen[category] = make(map[string]bool)
		}
		for _, rid := range s.SuitableRemedies {
			if _, ok := c.Remedy(rid); !ok {
				return MappingResult{Err: &MappingBuildError{
					SymptomID: s.ID,
					Reason:    fmt.Sprintf("unknown remedy %q", rid),
				}}
			}
			m.SymptomRemedies[name] = appendUnique(m.SymptomRemedies[name], rid)
			if !categorySeen[category][rid] {
				categorySeen[category][rid] = true
				m.CategoryRemedies[category] = append(m.CategoryRemedies[category], rid)
			}
		}
	}

	for _, rel := range c.AllRelationships() {
		if _, ok := c.Symptom(rel.SymptomID); !ok {
			return MappingResult{Err: &MappingBuildError{
				SymptomID: rel.SymptomID,
				Reason:    "relationship for unknown symptom",
			}}
		}
		for _, id := range rel.Related {
			if _, ok := c.Symptom(id); !ok {
				return MappingResult{Err: &MappingBuildError{
					SymptomID: rel.SymptomID,
					Reason:    fmt.Sprintf("unknown related symptom %q", id),
				}}
			}
		}
		m.Relationships = append(m.Relationships, rel)
	}

	return MappingResult{Mappings: m}
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}
