// Package safety screens ranked remedies against a user's health profile.
package safety

import (
	"strings"

	"github.com/thebtf/herbmind/pkg/models"
)

const (
	pediatricAge = 12
	elderlyAge   = 65

	pediatricWarning = "Consult pediatrician before use"
	elderlyWarning   = "Consult doctor - elderly may need dose adjustment"
)

// Interaction links a medication class, matched as a substring of the user's
// medication, to the herb names it interacts with.
type Interaction struct {
	MedicationType string
	Herbs          []string
}

// DefaultInteractions is the built-in drug/herb interaction table.
var DefaultInteractions = []Interaction{
	{MedicationType: "blood thinners", Herbs: []string{"turmeric", "ginger", "garlic"}},
	{MedicationType: "diabetes medication", Herbs: []string{"bitter melon", "fenugreek"}},
	{MedicationType: "blood pressure medication", Herbs: []string{"licorice", "ginseng"}},
}

// Filter annotates remedies with a safety assessment and keeps the safe ones.
type Filter struct {
	interactions []Interaction
}

// New returns a Filter using the given interaction table, or
// DefaultInteractions when it is empty.
func New(interactions []Interaction) *Filter {
	if len(interactions) == 0 {
		interactions = DefaultInteractions
	}
	normalized := make([]Interaction, len(interactions))
	for i, in := range interactions {
		herbs := make([]string, len(in.Herbs))
		for j, h := range in.Herbs {
			herbs[j] = strings.ToLower(h)
		}
		normalized[i] = Interaction{MedicationType: strings.ToLower(in.MedicationType), Herbs: herbs}
	}
	return &Filter{interactions: normalized}
}

// Check attaches an assessment to every remedy and returns the safe ones in
// their original order. The returned slice is never nil.
func (f *Filter) Check(remedies []*models.MatchedRemedy, profile models.UserProfile) []*models.MatchedRemedy {
	safe := make([]*models.MatchedRemedy, 0, len(remedies))
	for _, r := range remedies {
		r.Safety = f.Assess(&r.RemedyEntry, profile)
		if r.Safety.IsSafe {
			safe = append(safe, r)
		}
	}
	return safe
}

// Assess evaluates one remedy against the profile.
func (f *Filter) Assess(remedy *models.RemedyEntry, profile models.UserProfile) *models.SafetyAssessment {
	a := &models.SafetyAssessment{
		SafetyLevel: remedy.SafetyLevel,
		Warnings:    []string{},
		IsSafe:      true,
	}
	if a.SafetyLevel == "" {
		a.SafetyLevel = models.SafetyMedium
	}

	for _, condition := range profile.Conditions {
		if contraindicated(remedy, condition) {
			a.Warnings = append(a.Warnings, "Not recommended for "+condition)
			a.IsSafe = false
		}
	}

	for _, medication := range profile.Medications {
		if f.interacts(remedy.Name, medication) {
			a.Warnings = append(a.Warnings, "May interact with "+medication)
			a.IsSafe = false
		}
	}

	switch {
	case profile.Age < pediatricAge:
		a.Warnings = append(a.Warnings, pediatricWarning)
		a.IsSafe = false
	case profile.Age > elderlyAge:
		a.Warnings = append(a.Warnings, elderlyWarning)
	}
	return a
}

func contraindicated(remedy *models.RemedyEntry, condition string) bool {
	for _, c := range remedy.Contraindications {
		if strings.EqualFold(c, condition) {
			return true
		}
	}
	return false
}

func (f *Filter) interacts(remedyName, medication string) bool {
	name := strings.ToLower(remedyName)
	med := strings.ToLower(medication)
	for _, in := range f.interactions {
		if in.MedicationType == "" || !strings.Contains(med, in.MedicationType) {
			continue
		}
		for _, herb := range in.Herbs {
			if herb != "" && strings.Contains(name, herb) {
				return true
			}
		}
	}
	return false
}
