package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("data/symptoms.YAML"))
	assert.Equal(t, FormatYAML, FormatForPath("symptoms.yml"))
	assert.Equal(t, FormatJSON, FormatForPath("symptoms.json"))
	assert.Equal(t, FormatJSON, FormatForPath("symptoms"))
}

func TestDecodeSymptoms_TableDriven(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		format    Format
		wantCount int
		wantRels  int
		wantErr   bool
	}{
		{
			name:      "json list",
			data:      `[{"id":"S1","name":"cough","aliases":["coughing"]},{"id":"S2","name":"fever"}]`,
			format:    FormatJSON,
			wantCount: 2,
		},
		{
			name: "json wrapped with relationships",
			data: `{"symptoms":[{"id":"S1","name":"cough"}],
				"symptom_relationships":[{"symptom_id":"S1","related":["S2"]}]}`,
			format:    FormatJSON,
			wantCount: 1,
			wantRels:  1,
		},
		{
			name: "yaml list",
			data: `
- id: S1
  name: cough
  severity_indicators:
    mild: [slight]
`,
			format:    FormatYAML,
			wantCount: 1,
		},
		{
			name: "yaml wrapped",
			data: `
symptoms:
  - id: S1
    name: cough
symptom_relationships:
  - symptom_id: S1
    related: [S2, S3]
`,
			format:    FormatYAML,
			wantCount: 1,
			wantRels:  1,
		},
		{name: "empty json", data: "  ", format: FormatJSON, wantErr: true},
		{name: "json scalar", data: `"cough"`, format: FormatJSON, wantErr: true},
		{name: "truncated json", data: `[{"id":"S1"`, format: FormatJSON, wantErr: true},
		{name: "yaml scalar", data: "cough", format: FormatYAML, wantErr: true},
		{name: "empty yaml", data: "", format: FormatYAML, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := DecodeSymptoms([]byte(tt.data), tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, doc.Symptoms, tt.wantCount)
			assert.Len(t, doc.Relationships, tt.wantRels)
		})
	}
}

func TestDecodeSymptoms_Fields(t *testing.T) {
	doc, err := DecodeSymptoms([]byte(`[{
		"id": "S1",
		"name": "Headache",
		"category": "pain",
		"description": "head pain",
		"aliases": ["head ache"],
		"severity_indicators": {"severe": ["throbbing"]},
		"emergency_flags": ["worst headache of my life"],
		"related_symptoms": ["S2"],
		"suitable_remedies": ["R1"]
	}]`), FormatJSON)
	require.NoError(t, err)
	require.Len(t, doc.Symptoms, 1)

	s := doc.Symptoms[0]
	assert.Equal(t, "Headache", s.Name)
	assert.Equal(t, []string{"head ache"}, s.Aliases)
	assert.Equal(t, []string{"throbbing"}, s.SeverityIndicators["severe"])
	assert.Equal(t, []string{"worst headache of my life"}, s.EmergencyFlags)
	assert.Equal(t, []string{"S2"}, s.RelatedSymptoms)
	assert.Equal(t, []string{"R1"}, s.SuitableRemedies)
}

func TestDecodeRemedies(t *testing.T) {
	doc, err := DecodeRemedies([]byte(`{"remedies":[{
		"id":"R1","name":"Ginger","scientific_name":"Zingiber officinale",
		"traditional_system":"Ayurveda","properties":["digestive"],
		"indications":["nausea"],"preparation":["slice"],"dosage":"1 g",
		"contraindications":["gallstones"],"safety_level":"high","evidence_level":"strong"
	}]}`), FormatJSON)
	require.NoError(t, err)
	require.Len(t, doc.Remedies, 1)
	assert.Equal(t, "Zingiber officinale", doc.Remedies[0].ScientificName)
	assert.Equal(t, "high", string(doc.Remedies[0].SafetyLevel))
	assert.Equal(t, "strong", string(doc.Remedies[0].EvidenceLevel))

	yamlDoc, err := DecodeRemedies([]byte("- id: R1\n  name: Ginger\n  safety_level: medium\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "Ginger", yamlDoc.Remedies[0].Name)
}
