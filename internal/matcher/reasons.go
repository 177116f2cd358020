package matcher

import (
	"strings"

	"github.com/thebtf/herbmind/pkg/models"
)

// categoryProperties lists the remedy properties relevant to each symptom category.
var categoryProperties = map[string]map[string]bool{
	"respiratory": {"expectorant": true, "decongestant": true, "anti-inflammatory": true},
	"digestive":   {"digestive": true, "carminative": true, "anti-nausea": true},
	"pain":        {"analgesic": true, "anti-inflammatory": true},
	"skin":        {"antiseptic": true, "anti-inflammatory": true, "skin healing": true},
}

// matchReasons explains a similarity match. Property reasons are only added
// when the indications produced fewer than two reasons.
func matchReasons(observations []models.SymptomObservation, remedy *models.RemedyEntry) []string {
	var reasons []string
	add := func(r string) {
		for _, existing := range reasons {
			if existing == r {
				return
			}
		}
		reasons = append(reasons, r)
	}

	for _, ind := range remedy.Indications {
		lowered := strings.ToLower(ind)
		for _, obs := range observations {
			name := strings.ToLower(obs.Name)
			if name != "" && strings.Contains(lowered, name) {
				add("Effective for " + ind)
				break
			}
		}
	}

	if len(reasons) < 2 {
		for _, obs := range observations {
			relevant := categoryProperties[strings.ToLower(obs.Category)]
			for _, prop := range remedy.Properties {
				if relevant[strings.ToLower(prop)] {
					add("Has " + prop + " properties")
				}
			}
		}
	}

	if remedy.SafetyLevel == models.SafetyHigh {
		add("Has a high safety profile")
	}
	if remedy.EvidenceLevel == models.EvidenceStrong {
		add("Has strong scientific evidence")
	}
	return reasons
}
