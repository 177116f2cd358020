// Package models contains domain models for herbmind.
package models

// Severity is the intensity of a reported symptom.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// SeverityLevels lists severities in detection order.
var SeverityLevels = []Severity{SeverityMild, SeverityModerate, SeveritySevere}

// Valid reports whether s is a known severity.
func (s Severity) Valid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

// ObservationSource tags which extraction pass produced an observation.
type ObservationSource string

const (
	SourceEntity       ObservationSource = "entity-recognition"
	SourcePattern      ObservationSource = "pattern-match"
	SourceRelationship ObservationSource = "relationship-inference"
)

// Confidence tags attached to observations.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

const (
	// DefaultCategory is used for symptoms the catalog does not categorize.
	DefaultCategory = "general"
	// DurationUnspecified is reported when no duration phrase is found.
	DurationUnspecified = "not specified"
)

// Span is a half-open byte range into the text the extractor scanned: the
// input after NFKC folding, control and markup stripping and lowercasing.
// It is only meaningful for comparing spans from the same extraction.
type Span struct {
	Start int
	End   int
}

// Overlaps reports whether two spans touch or intersect.
func (s Span) Overlaps(o Span) bool {
	return s.Start <= o.End && s.End >= o.Start
}

// SymptomObservation is one symptom detected in free text.
type SymptomObservation struct {
	Span             *Span             `json:"-"`
	Name             string            `json:"name"`
	Severity         Severity          `json:"severity"`
	Duration         string            `json:"duration"`
	Category         string            `json:"category"`
	Source           ObservationSource `json:"source"`
	SymptomID        string            `json:"symptom_id,omitempty"`
	Confidence       string            `json:"confidence,omitempty"`
	Description      string            `json:"description,omitempty"`
	SuitableRemedies []string          `json:"suitable_remedies,omitempty"`
}
