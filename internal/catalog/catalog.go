// Package catalog loads and indexes the symptom and remedy reference dataset.
package catalog

import (
	"fmt"
	"strings"

	"github.com/thebtf/herbmind/pkg/models"
)

// Catalog is the immutable reference dataset. It must not be modified after New
// returns, which makes it safe to share between concurrent requests.
type Catalog struct {
	symptomByID   map[string]int
	remedyByID    map[string]int
	byTerm        map[string]int
	Symptoms      []models.SymptomEntry
	Remedies      []models.RemedyEntry
	Relationships []models.Relationship
	terms         []string
}

// New validates the records and builds the lookup indexes.
func New(symptoms []models.SymptomEntry, remedies []models.RemedyEntry, relationships []models.Relationship) (*Catalog, error) {
	c := &Catalog{
		Symptoms:      symptoms,
		Remedies:      remedies,
		Relationships: relationships,
		symptomByID:   make(map[string]int, len(symptoms)),
		remedyByID:    make(map[string]int, len(remedies)),
		byTerm:        make(map[string]int),
	}

	for i := range symptoms {
		s := &symptoms[i]
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.symptomByID[s.ID]; dup {
			return nil, fmt.Errorf("duplicate symptom id %s", s.ID)
		}
		c.symptomByID[s.ID] = i

		for _, term := range append([]string{s.Name}, s.Aliases...) {
			key := NormalizeTerm(term)
			if key == "" {
				continue
			}
			if owner, ok := c.byTerm[key]; ok {
				if owner != i {
					return nil, fmt.Errorf("term %q declared by symptoms %s and %s", key, symptoms[owner].ID, s.ID)
				}
				continue
			}
			c.byTerm[key] = i
			c.terms = append(c.terms, key)
		}
	}

	for i := range remedies {
		r := &remedies[i]
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.remedyByID[r.ID]; dup {
			return nil, fmt.Errorf("duplicate remedy id %s", r.ID)
		}
		c.remedyByID[r.ID] = i
	}

	for _, rel := range relationships {
		if strings.TrimSpace(rel.SymptomID) == "" {
			return nil, fmt.Errorf("symptom relationship without symptom_id")
		}
	}

	return c, nil
}

// NormalizeTerm lowercases a vocabulary term and collapses inner whitespace.
func NormalizeTerm(term string) string {
	return strings.Join(strings.Fields(strings.ToLower(term)), " ")
}

// Symptom returns the symptom with the given id.
func (c *Catalog) Symptom(id string) (*models.SymptomEntry, bool) {
	i, ok := c.symptomByID[id]
	if !ok {
		return nil, false
	}
	return &c.Symptoms[i], true
}

// Remedy returns the remedy with the given id.
func (c *Catalog) Remedy(id string) (*models.RemedyEntry, bool) {
	i, ok := c.remedyByID[id]
	if !ok {
		return nil, false
	}
	return &c.Remedies[i], true
}

// LookupTerm resolves a canonical name or alias, case-insensitively.
func (c *Catalog) LookupTerm(term string) (*models.SymptomEntry, bool) {
	i, ok := c.byTerm[NormalizeTerm(term)]
	if !ok {
		return nil, false
	}
	return &c.Symptoms[i], true
}

// Terms returns every normalized canonical name and alias in declaration order.
func (c *Catalog) Terms() []string {
	out := make([]string, len(c.terms))
	copy(out, c.terms)
	return out
}

// AllRelationships returns per-symptom related lists followed by the
// document-level relationships.
func (c *Catalog) AllRelationships() []models.Relationship {
	out := make([]models.Relationship, 0, len(c.Symptoms)+len(c.Relationships))
	for _, s := range c.Symptoms {
		if len(s.RelatedSymptoms) > 0 {
			out = append(out, models.Relationship{SymptomID: s.ID, Related: s.RelatedSymptoms})
		}
	}
	return append(out, c.Relationships...)
}

// SearchRemediesByIndication returns remedies with an indication containing
// the query, case-insensitively, in catalog order.
func (c *Catalog) SearchRemediesByIndication(query string) []models.RemedyEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []models.RemedyEntry
	for _, r := range c.Remedies {
		for _, ind := range r.Indications {
			if strings.Contains(strings.ToLower(ind), q) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// SeverityKeywords aggregates the severity indicators of every symptom,
// keyed by severity and deduplicated in declaration order.
func (c *Catalog) SeverityKeywords() map[models.Severity][]string {
	out := make(map[models.Severity][]string)
	seen := make(map[string]bool)
	for _, s := range c.Symptoms {
		for level, words := range s.SeverityIndicators {
			sev := models.Severity(strings.ToLower(level))
			for _, w := range words {
				w = strings.ToLower(strings.TrimSpace(w))
				key := string(sev) + "\x00" + w
				if w == "" || seen[key] {
					continue
				}
				seen[key] = true
				out[sev] = append(out[sev], w)
			}
		}
	}
	return out
}

// EmergencyKeywords aggregates the emergency flags of every symptom,
// deduplicated in declaration order.
func (c *Catalog) EmergencyKeywords() []string {
	var out []string
	seen := make(map[string]bool)
	for _, s := range c.Symptoms {
		for _, f := range s.EmergencyFlags {
			f = strings.ToLower(strings.TrimSpace(f))
			if f == "" || seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
