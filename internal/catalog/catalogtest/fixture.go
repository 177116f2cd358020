// Package catalogtest provides a small deterministic catalog for tests.
package catalogtest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"

	"github.com/thebtf/herbmind/internal/catalog"
	"github.com/thebtf/herbmind/pkg/models"
)

// Symptoms returns a fresh copy of the fixture symptom records.
func Symptoms() []models.SymptomEntry {
	return []models.SymptomEntry{
		{
			ID:          "S001",
			Name:        "headache",
			Aliases:     []string{"head ache", "head pain"},
			Category:    "pain",
			Description: "Pain in the head or upper neck",
			SeverityIndicators: map[string][]string{
				"mild":   {"mild", "slight", "dull"},
				"severe": {"severe", "intense", "throbbing", "unbearable"},
			},
			SuitableRemedies: []string{"R001", "R003"},
		},
		{
			ID:               "S002",
			Name:             "migraine",
			Category:         "pain",
			Description:      "Recurring severe headache, often one-sided",
			SuitableRemedies: []string{"R001"},
		},
		{
			ID:               "S003",
			Name:             "nausea",
			Aliases:          []string{"feeling sick", "queasy"},
			Category:         "digestive",
			Description:      "Urge to vomit",
			SuitableRemedies: []string{"R003"},
		},
		{
			ID:               "S004",
			Name:             "stomach ache",
			Aliases:          []string{"stomach pain", "stomachache", "tummy ache"},
			Category:         "digestive",
			SuitableRemedies: []string{"R002"},
		},
		{
			ID:               "S005",
			Name:             "cough",
			Aliases:          []string{"coughing"},
			Category:         "respiratory",
			RelatedSymptoms:  []string{"S006"},
			SuitableRemedies: []string{"R005", "R006"},
		},
		{
			ID:               "S006",
			Name:             "sore throat",
			Aliases:          []string{"throat pain"},
			Category:         "respiratory",
			SuitableRemedies: []string{"R006"},
		},
		{
			ID:               "S007",
			Name:             "back pain",
			Aliases:          []string{"backache"},
			Category:         "pain",
			SuitableRemedies: []string{"R004"},
		},
		{
			ID:               "S008",
			Name:             "rash",
			Aliases:          []string{"skin rash"},
			Category:         "skin",
			SuitableRemedies: []string{"R007"},
		},
		{
			ID:       "S009",
			Name:     "dry cough",
			Category: "respiratory",
		},
	}
}

// Remedies returns a fresh copy of the fixture remedy records.
func Remedies() []models.RemedyEntry {
	return []models.RemedyEntry{
		{
			ID:                "R001",
			Name:              "Peppermint",
			ScientificName:    "Mentha piperita",
			TraditionalSystem: "Western Herbalism",
			Properties:        []string{"analgesic", "carminative", "cooling"},
			Indications:       []string{"tension headache", "headache relief", "indigestion"},
			Preparation:       []string{"Steep 1 tsp dried leaves in hot water", "Cover for 10 minutes"},
			Dosage:            "1 cup up to 3 times daily",
			Contraindications: []string{"gerd"},
			SafetyLevel:       models.SafetyHigh,
			EvidenceLevel:     models.EvidenceModerate,
		},
		{
			ID:                "R002",
			Name:              "Chamomile",
			ScientificName:    "Matricaria chamomilla",
			TraditionalSystem: "Western Herbalism",
			Properties:        []string{"anti-inflammatory", "digestive", "calming"},
			Indications:       []string{"stomach ache", "anxiety", "insomnia"},
			Preparation:       []string{"Steep 2 tsp flowers in hot water for 5 minutes"},
			Dosage:            "1 cup 2-3 times daily",
			Contraindications: []string{"pregnancy"},
			SafetyLevel:       models.SafetyHigh,
			EvidenceLevel:     models.EvidenceModerate,
		},
		{
			ID:                "R003",
			Name:              "Ginger",
			ScientificName:    "Zingiber officinale",
			TraditionalSystem: "Ayurveda",
			Properties:        []string{"anti-nausea", "anti-inflammatory", "digestive"},
			Indications:       []string{"nausea", "motion sickness", "headache"},
			Preparation:       []string{"Slice fresh root", "Simmer in water for 10 minutes"},
			Dosage:            "1-2 g daily",
			Contraindications: []string{"gallstones"},
			SafetyLevel:       models.SafetyHigh,
			EvidenceLevel:     models.EvidenceStrong,
		},
		{
			ID:                "R004",
			Name:              "Turmeric",
			ScientificName:    "Curcuma longa",
			TraditionalSystem: "Ayurveda",
			Properties:        []string{"anti-inflammatory", "analgesic"},
			Indications:       []string{"joint pain", "back pain", "arthritis"},
			Preparation:       []string{"Mix 1 tsp powder into warm milk"},
			Dosage:            "500 mg twice daily",
			Contraindications: []string{"gallstones", "pregnancy"},
			SafetyLevel:       models.SafetyMedium,
			EvidenceLevel:     models.EvidenceModerate,
		},
		{
			ID:                "R005",
			Name:              "Licorice Root",
			ScientificName:    "Glycyrrhiza glabra",
			TraditionalSystem: "Traditional Chinese Medicine",
			Properties:        []string{"expectorant", "demulcent"},
			Indications:       []string{"cough", "sore throat"},
			Preparation:       []string{"Simmer 1 tsp root in water for 10 minutes"},
			Dosage:            "1 cup daily, no longer than 4 weeks",
			Contraindications: []string{"hypertension", "heart disease"},
			SafetyLevel:       models.SafetyLow,
			EvidenceLevel:     models.EvidenceModerate,
		},
		{
			ID:                "R006",
			Name:              "Thyme",
			ScientificName:    "Thymus vulgaris",
			TraditionalSystem: "Western Herbalism",
			Properties:        []string{"expectorant", "antiseptic"},
			Indications:       []string{"cough", "bronchitis", "sore throat"},
			Preparation:       []string{"Steep 1 tsp dried herb in hot water"},
			Dosage:            "1 cup 3 times daily",
			SafetyLevel:       models.SafetyHigh,
			EvidenceLevel:     models.EvidenceWeak,
		},
		{
			ID:                "R007",
			Name:              "Aloe Vera",
			ScientificName:    "Aloe barbadensis",
			TraditionalSystem: "Ayurveda",
			Properties:        []string{"skin healing", "anti-inflammatory", "cooling"},
			Indications:       []string{"rash", "minor burns", "sunburn"},
			Preparation:       []string{"Apply fresh gel to affected skin"},
			Dosage:            "Apply 2-3 times daily",
			SafetyLevel:       models.SafetyHigh,
			EvidenceLevel:     models.EvidenceModerate,
		},
		{
			ID:                "R008",
			Name:              "Fenugreek",
			ScientificName:    "Trigonella foenum-graecum",
			TraditionalSystem: "Ayurveda",
			Properties:        []string{"digestive", "demulcent"},
			Indications:       []string{"indigestion", "blood sugar support"},
			Preparation:       []string{"Soak 1 tsp seeds overnight"},
			Dosage:            "5 g seeds daily",
			Contraindications: []string{"diabetes", "pregnancy"},
			SafetyLevel:       models.SafetyMedium,
			EvidenceLevel:     models.EvidenceWeak,
		},
	}
}

// New builds the fixture catalog and fails the test if it is invalid.
func New(t testing.TB) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New(Symptoms(), Remedies(), nil)
	if err != nil {
		t.Fatalf("fixture catalog: %v", err)
	}
	return cat
}

// WriteFiles writes the fixture as JSON documents into dir and returns their paths.
func WriteFiles(t testing.TB, dir string) (symptomsPath, remediesPath string) {
	t.Helper()
	symptomsPath = filepath.Join(dir, "symptoms.json")
	remediesPath = filepath.Join(dir, "remedies.json")
	writeJSON(t, symptomsPath, Symptoms())
	writeJSON(t, remediesPath, map[string]interface{}{"remedies": Remedies()})
	return symptomsPath, remediesPath
}

func writeJSON(t testing.TB, path string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
