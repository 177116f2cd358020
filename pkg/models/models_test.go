// Package models contains domain models for herbmind.
package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ModelsSuite is a test suite for the catalog and request models.
type ModelsSuite struct {
	suite.Suite
}

func TestModelsSuite(t *testing.T) {
	suite.Run(t, new(ModelsSuite))
}

// TestEnumConstants tests enumeration values.
func (s *ModelsSuite) TestEnumConstants() {
	s.Equal(Severity("mild"), SeverityMild)
	s.Equal(Severity("moderate"), SeverityModerate)
	s.Equal(Severity("severe"), SeveritySevere)
	s.Equal([]Severity{SeverityMild, SeverityModerate, SeveritySevere}, SeverityLevels)
	s.True(SafetyHigh.Valid())
	s.False(SafetyLevel("unknown").Valid())
	s.True(EvidenceAnecdotal.Valid())
	s.False(EvidenceLevel("").Valid())
}

// TestSymptomValidate_TableDriven tests symptom record validation.
func (s *ModelsSuite) TestSymptomValidate_TableDriven() {
	tests := []struct {
		name    string
		entry   SymptomEntry
		wantErr bool
	}{
		{name: "valid", entry: SymptomEntry{ID: "S1", Name: "cough"}},
		{name: "missing id", entry: SymptomEntry{Name: "cough"}, wantErr: true},
		{name: "missing name", entry: SymptomEntry{ID: "S1"}, wantErr: true},
		{
			name:    "bad severity level",
			entry:   SymptomEntry{ID: "S1", Name: "cough", SeverityIndicators: map[string][]string{"extreme": {"x"}}},
			wantErr: true,
		},
		{
			name:  "mixed case severity level",
			entry: SymptomEntry{ID: "S1", Name: "cough", SeverityIndicators: map[string][]string{"Mild": {"slight"}}},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := tt.entry.Validate()
			if tt.wantErr {
				s.Error(err)
			} else {
				s.NoError(err)
			}
		})
	}
}

// TestRemedyValidate tests remedy record validation.
func (s *ModelsSuite) TestRemedyValidate() {
	s.NoError((&RemedyEntry{ID: "R1", Name: "Ginger", SafetyLevel: SafetyHigh}).Validate())
	s.Error((&RemedyEntry{Name: "Ginger"}).Validate())
	s.Error((&RemedyEntry{ID: "R1", Name: "Ginger", SafetyLevel: "unsafe"}).Validate())
	s.Error((&RemedyEntry{ID: "R1", Name: "Ginger", EvidenceLevel: "rumour"}).Validate())
}

// TestCategoryOrDefault tests the general category fallback.
func (s *ModelsSuite) TestCategoryOrDefault() {
	s.Equal("general", (&SymptomEntry{}).CategoryOrDefault())
	s.Equal("pain", (&SymptomEntry{Category: "Pain"}).CategoryOrDefault())
}

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{name: "disjoint", a: Span{0, 3}, b: Span{5, 9}, want: false},
		{name: "nested", a: Span{0, 10}, b: Span{2, 4}, want: true},
		{name: "touching", a: Span{0, 4}, b: Span{4, 8}, want: true},
		{name: "partial", a: Span{3, 8}, b: Span{0, 5}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestUserProfileValidate(t *testing.T) {
	assert.NoError(t, UserProfile{Age: 30}.Validate())
	err := UserProfile{Age: 0}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidProfile))
	assert.Error(t, UserProfile{Age: 121}.Validate())
}

func TestNewMatchedRemedyCopies(t *testing.T) {
	entry := RemedyEntry{ID: "R1", Name: "Ginger", Indications: []string{"nausea"}}
	m := NewMatchedRemedy(entry)
	m.Indications[0] = "changed"
	assert.Equal(t, "nausea", entry.Indications[0])
	assert.NotNil(t, m.MatchReasons)

	m.AddReason("a")
	m.AddReason("b")
	m.AddReason("a")
	assert.Equal(t, []string{"a", "b"}, m.MatchReasons)
}

func TestRemedyDocument(t *testing.T) {
	r := RemedyEntry{Indications: []string{"nausea", "motion sickness"}, Properties: []string{"carminative"}}
	assert.Equal(t, "nausea motion sickness carminative", r.Document())
}

func TestJSONStringArrayScanValue(t *testing.T) {
	var a JSONStringArray
	require.NoError(t, a.Scan([]byte(`["x","y"]`)))
	assert.Equal(t, JSONStringArray{"x", "y"}, a)

	require.NoError(t, a.Scan(nil))
	assert.Nil(t, a)

	assert.Error(t, a.Scan(42))

	v, err := JSONStringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestJSONStringListMapScanValue(t *testing.T) {
	var m JSONStringListMap
	require.NoError(t, m.Scan(`{"mild":["slight"]}`))
	assert.Equal(t, []string{"slight"}, m["mild"])

	v, err := m.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"mild":["slight"]}`, v.(string))
}
