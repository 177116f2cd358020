// Package analysis wires extraction, matching and safety screening into one
// request-scoped pipeline.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/thebtf/herbmind/internal/catalog"
	"github.com/thebtf/herbmind/internal/extractor"
	"github.com/thebtf/herbmind/internal/graph"
	"github.com/thebtf/herbmind/internal/matcher"
	"github.com/thebtf/herbmind/internal/safety"
	"github.com/thebtf/herbmind/internal/textclean"
	"github.com/thebtf/herbmind/pkg/models"
)

const instrumentationName = "github.com/thebtf/herbmind/internal/analysis"

// User-facing messages attached to results.
const (
	EmergencyMessage = "Please consult a healthcare provider immediately."
	NoResultsMessage = "No safe remedies found. Please consult a healthcare provider."
	Disclaimer       = "This tool is for educational purposes only and does not replace professional medical advice. " +
		"Always consult with qualified healthcare providers before using herbal remedies, especially if you have " +
		"existing medical conditions or are taking medications."
)

// ErrEmptyText is returned when the description is blank after cleaning.
var ErrEmptyText = errors.New("symptom description is empty")

// Status is the terminal outcome of an analysis.
type Status string

const (
	StatusEmergency Status = "emergency"
	StatusOK        Status = "ok"
	StatusNoResults Status = "no_results"
)

// Request is one analysis call.
type Request struct {
	Text         string             `json:"text"`
	Profile      models.UserProfile `json:"profile"`
	TopK         int                `json:"top_k,omitempty"`
	IncludeGraph bool               `json:"include_graph,omitempty"`
}

// Result is the response of one analysis call.
type Result struct {
	Graph          *graph.Graph                `json:"graph,omitempty"`
	RequestID      string                      `json:"request_id"`
	Status         Status                      `json:"status"`
	Message        string                      `json:"message,omitempty"`
	Disclaimer     string                      `json:"disclaimer"`
	EmergencyFlags []string                    `json:"emergency_flags"`
	Symptoms       []models.SymptomObservation `json:"symptoms"`
	Remedies       []*models.MatchedRemedy     `json:"remedies"`
}

// Options configures a Service.
type Options struct {
	Recognizer     extractor.Recognizer
	Interactions   []safety.Interaction
	TopK           int
	SeverityWindow int
}

// Service runs the pipeline over an immutable catalog. It is safe for
// concurrent use; every request works on its own observations and matches.
type Service struct {
	catalog   *catalog.Catalog
	extractor *extractor.Extractor
	matcher   *matcher.Matcher
	safety    *safety.Filter
	graph     *graph.Builder
	tracer    trace.Tracer

	analyses metric.Int64Counter
	duration metric.Float64Histogram
	topK     int
}

// New builds the pipeline components. A failed mapping build degrades to
// similarity-only matching.
func New(cat *catalog.Catalog, opts Options) *Service {
	mappings := catalog.BuildMappings(cat).OrEmpty()

	s := &Service{
		catalog: cat,
		extractor: extractor.New(cat, mappings, extractor.Options{
			Recognizer:     opts.Recognizer,
			SeverityWindow: opts.SeverityWindow,
		}),
		matcher: matcher.New(cat, mappings),
		safety:  safety.New(opts.Interactions),
		graph:   graph.NewBuilder(cat, mappings),
		tracer:  otel.Tracer(instrumentationName),
		topK:    opts.TopK,
	}
	if s.topK <= 0 {
		s.topK = matcher.DefaultTopK
	}
	s.initMetrics()
	return s
}

func (s *Service) initMetrics() {
	meter := otel.Meter(instrumentationName)
	var err error

	s.analyses, err = meter.Int64Counter(
		"herbmind.analysis.requests_total",
		metric.WithDescription("Total number of symptom analyses by status"),
		metric.WithUnit("{analysis}"),
	)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create analysis counter")
	}

	s.duration, err = meter.Float64Histogram(
		"herbmind.analysis.duration_seconds",
		metric.WithDescription("Duration of symptom analyses"),
		metric.WithUnit("s"),
	)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to create analysis duration histogram")
	}
}

// Catalog returns the catalog the service was built from.
func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

// Analyze runs emergency screening, extraction, matching and safety
// filtering. An emergency stops the pipeline before profile validation and
// extraction.
func (s *Service) Analyze(ctx context.Context, req Request) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "analysis.Analyze")
	defer span.End()
	start := time.Now()

	result := &Result{
		RequestID:      uuid.New().String(),
		Disclaimer:     Disclaimer,
		EmergencyFlags: []string{},
		Symptoms:       []models.SymptomObservation{},
		Remedies:       []*models.MatchedRemedy{},
	}
	defer func() {
		if result.Status == "" {
			return
		}
		s.record(ctx, result.Status, time.Since(start))
		span.SetAttributes(attribute.String("status", string(result.Status)))
	}()

	// Emergencies are reported for any profile, and on the input before
	// markup stripping so no keyword can be hidden between angle brackets.
	if emergency, flags := s.CheckEmergency(req.Text); emergency {
		result.Status = StatusEmergency
		result.EmergencyFlags = flags
		result.Message = EmergencyMessage
		log.Info().Str("request_id", result.RequestID).Strs("flags", flags).Msg("Emergency indicators found")
		return result, nil
	}

	text := textclean.Clean(req.Text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if err := req.Profile.Validate(); err != nil {
		return nil, err
	}

	result.Symptoms = s.extractor.Extract(text)
	topK := req.TopK
	if topK <= 0 {
		topK = s.topK
	}
	matches := s.matcher.FindMatches(result.Symptoms, topK)
	result.Remedies = s.safety.Check(matches, req.Profile)

	if req.IncludeGraph {
		g := s.graph.Build(result.Symptoms)
		result.Graph = &g
	}

	if len(result.Remedies) == 0 {
		result.Status = StatusNoResults
		result.Message = NoResultsMessage
	} else {
		result.Status = StatusOK
		result.Message = fmt.Sprintf("Found %d safe remedies for your symptoms", len(result.Remedies))
	}

	log.Debug().
		Str("request_id", result.RequestID).
		Int("symptoms", len(result.Symptoms)).
		Int("candidates", len(matches)).
		Int("safe", len(result.Remedies)).
		Msg("Analysis complete")
	return result, nil
}

// ExtractSymptoms returns the observations found in text.
func (s *Service) ExtractSymptoms(text string) []models.SymptomObservation {
	return s.extractor.Extract(textclean.Clean(text))
}

// CheckEmergency reports the emergency indicators found in text.
func (s *Service) CheckEmergency(text string) (bool, []string) {
	return s.extractor.CheckEmergency(textclean.Normalize(text))
}

// FindMatches ranks remedies for observations.
func (s *Service) FindMatches(observations []models.SymptomObservation, topK int) []*models.MatchedRemedy {
	if topK <= 0 {
		topK = s.topK
	}
	return s.matcher.FindMatches(observations, topK)
}

// CheckSafety screens matches against a profile.
func (s *Service) CheckSafety(matches []*models.MatchedRemedy, profile models.UserProfile) []*models.MatchedRemedy {
	return s.safety.Check(matches, profile)
}

// Relationships builds the visualization graph for observations.
func (s *Service) Relationships(observations []models.SymptomObservation) graph.Graph {
	return s.graph.Build(observations)
}

func (s *Service) record(ctx context.Context, status Status, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("status", string(status)))
	if s.analyses != nil {
		s.analyses.Add(ctx, 1, attrs)
	}
	if s.duration != nil {
		s.duration.Record(ctx, elapsed.Seconds(), attrs)
	}
}
