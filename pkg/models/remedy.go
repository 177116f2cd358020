// Package models contains domain models for herbmind.
package models

import (
	"errors"
	"fmt"
)

// ErrInvalidProfile is returned when a user profile fails validation.
var ErrInvalidProfile = errors.New("invalid user profile")

// UserProfile carries the health details used by the safety filter.
type UserProfile struct {
	Conditions  []string `json:"conditions"`
	Medications []string `json:"medications"`
	Age         int      `json:"age"`
}

// Validate checks the profile bounds.
func (p UserProfile) Validate() error {
	if p.Age < 1 || p.Age > 120 {
		return fmt.Errorf("%w: age %d outside 1..120", ErrInvalidProfile, p.Age)
	}
	return nil
}

// SafetyAssessment is the outcome of checking one remedy against a profile.
type SafetyAssessment struct {
	SafetyLevel SafetyLevel `json:"safety_level"`
	Warnings    []string    `json:"warnings"`
	IsSafe      bool        `json:"is_safe"`
}

// MatchedRemedy is a catalog remedy ranked for a set of observations.
type MatchedRemedy struct {
	Safety *SafetyAssessment `json:"safety_assessment,omitempty"`
	RemedyEntry
	MatchReasons     []string `json:"match_reasons"`
	ConfidenceScore  float64  `json:"confidence_score"`
	DirectMatchCount float64  `json:"direct_match_count"`
	FinalScore       float64  `json:"final_score"`
}

// NewMatchedRemedy copies a catalog entry into a fresh match.
func NewMatchedRemedy(r RemedyEntry) *MatchedRemedy {
	cp := r
	cp.Properties = append([]string(nil), r.Properties...)
	cp.Indications = append([]string(nil), r.Indications...)
	cp.Preparation = append([]string(nil), r.Preparation...)
	cp.Contraindications = append([]string(nil), r.Contraindications...)
	return &MatchedRemedy{RemedyEntry: cp, MatchReasons: []string{}}
}

// AddReason appends a match reason unless it is already present.
func (m *MatchedRemedy) AddReason(reason string) {
	for _, r := range m.MatchReasons {
		if r == reason {
			return
		}
	}
	m.MatchReasons = append(m.MatchReasons, reason)
}
