// Package models contains domain models for herbmind.
package models

import (
	"fmt"
	"strings"
)

// SafetyLevel is the declared safety rating of a remedy.
type SafetyLevel string

const (
	SafetyHigh   SafetyLevel = "high"
	SafetyMedium SafetyLevel = "medium"
	SafetyLow    SafetyLevel = "low"
)

// Valid reports whether l is one of the known safety levels.
func (l SafetyLevel) Valid() bool {
	switch l {
	case SafetyHigh, SafetyMedium, SafetyLow:
		return true
	}
	return false
}

// EvidenceLevel is the declared strength of evidence behind a remedy.
type EvidenceLevel string

const (
	EvidenceStrong    EvidenceLevel = "strong"
	EvidenceModerate  EvidenceLevel = "moderate"
	EvidenceWeak      EvidenceLevel = "weak"
	EvidenceAnecdotal EvidenceLevel = "anecdotal"
)

// Valid reports whether l is one of the known evidence levels.
func (l EvidenceLevel) Valid() bool {
	switch l {
	case EvidenceStrong, EvidenceModerate, EvidenceWeak, EvidenceAnecdotal:
		return true
	}
	return false
}

// SymptomEntry is one record of the symptom catalog.
type SymptomEntry struct {
	SeverityIndicators map[string][]string `json:"severity_indicators,omitempty" yaml:"severity_indicators,omitempty"`
	ID                 string              `json:"id" yaml:"id"`
	Name               string              `json:"name" yaml:"name"`
	Category           string              `json:"category,omitempty" yaml:"category,omitempty"`
	Description        string              `json:"description,omitempty" yaml:"description,omitempty"`
	Aliases            []string            `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	EmergencyFlags     []string            `json:"emergency_flags,omitempty" yaml:"emergency_flags,omitempty"`
	RelatedSymptoms    []string            `json:"related_symptoms,omitempty" yaml:"related_symptoms,omitempty"`
	SuitableRemedies   []string            `json:"suitable_remedies,omitempty" yaml:"suitable_remedies,omitempty"`
}

// Validate checks the required fields of a symptom record.
func (s *SymptomEntry) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("symptom without id")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("symptom %s: missing name", s.ID)
	}
	for level := range s.SeverityIndicators {
		if !Severity(strings.ToLower(level)).Valid() {
			return fmt.Errorf("symptom %s: unknown severity level %q", s.ID, level)
		}
	}
	return nil
}

// CategoryOrDefault returns the category, or "general" when none is declared.
func (s *SymptomEntry) CategoryOrDefault() string {
	if s.Category == "" {
		return DefaultCategory
	}
	return strings.ToLower(s.Category)
}

// Relationship links a primary symptom to the symptoms that commonly accompany it.
type Relationship struct {
	SymptomID string   `json:"symptom_id" yaml:"symptom_id"`
	Related   []string `json:"related" yaml:"related"`
}

// RemedyEntry is one record of the remedy catalog.
type RemedyEntry struct {
	ID                string        `json:"id" yaml:"id"`
	Name              string        `json:"name" yaml:"name"`
	ScientificName    string        `json:"scientific_name" yaml:"scientific_name"`
	TraditionalSystem string        `json:"traditional_system" yaml:"traditional_system"`
	Dosage            string        `json:"dosage" yaml:"dosage"`
	SafetyLevel       SafetyLevel   `json:"safety_level" yaml:"safety_level"`
	EvidenceLevel     EvidenceLevel `json:"evidence_level" yaml:"evidence_level"`
	Properties        []string      `json:"properties" yaml:"properties"`
	Indications       []string      `json:"indications" yaml:"indications"`
	Preparation       []string      `json:"preparation" yaml:"preparation"`
	Contraindications []string      `json:"contraindications" yaml:"contraindications"`
}

// Validate checks the required fields and enumerations of a remedy record.
func (r *RemedyEntry) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("remedy without id")
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("remedy %s: missing name", r.ID)
	}
	if r.SafetyLevel != "" && !r.SafetyLevel.Valid() {
		return fmt.Errorf("remedy %s: unknown safety level %q", r.ID, r.SafetyLevel)
	}
	if r.EvidenceLevel != "" && !r.EvidenceLevel.Valid() {
		return fmt.Errorf("remedy %s: unknown evidence level %q", r.ID, r.EvidenceLevel)
	}
	return nil
}

// Document returns the text used to index the remedy for similarity search.
func (r *RemedyEntry) Document() string {
	parts := make([]string, 0, len(r.Indications)+len(r.Properties))
	parts = append(parts, r.Indications...)
	parts = append(parts, r.Properties...)
	return strings.Join(parts, " ")
}
