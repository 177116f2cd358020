// Package extractor turns free-text symptom descriptions into structured observations.
package extractor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/thebtf/herbmind/internal/catalog"
	"github.com/thebtf/herbmind/pkg/models"
	"github.com/thebtf/herbmind/pkg/similarity"
)

// DefaultSeverityWindow is the number of characters inspected on each side
// of a symptom mention when detecting severity.
const DefaultSeverityWindow = 20

// durationPatterns are tried in order against the whole text; the first match wins.
var durationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d+\s*(?:days?|weeks?|months?|years?)\b`),
	regexp.MustCompile(`\bsince\s+\w+`),
	regexp.MustCompile(`\bfor\s+\d+\s+\w+`),
	regexp.MustCompile(`\b(?:started|began)\s+\w+\s+\w+\s+ago\b`),
}

// Options configures an Extractor.
type Options struct {
	// Recognizer replaces the default lexicon recognizer.
	Recognizer Recognizer
	// SeverityWindow defaults to DefaultSeverityWindow.
	SeverityWindow int
}

// Extractor detects symptom mentions. It is immutable after New and safe
// for concurrent use.
type Extractor struct {
	catalog    *catalog.Catalog
	mappings   *catalog.Mappings
	recognizer Recognizer
	severity   map[models.Severity][]string
	patterns   []termPattern
	emergency  []string
	window     int
}

// New builds the symptom vocabulary and keyword tables from the catalog.
func New(cat *catalog.Catalog, mappings *catalog.Mappings, opts Options) *Extractor {
	if mappings == nil {
		mappings = catalog.EmptyMappings()
	}
	e := &Extractor{
		catalog:    cat,
		mappings:   mappings,
		recognizer: opts.Recognizer,
		severity:   severityTable(cat),
		emergency:  emergencyTable(cat),
		patterns:   buildPatterns(cat.Terms()),
		window:     opts.SeverityWindow,
	}
	if e.recognizer == nil {
		e.recognizer = NewLexiconRecognizer(vocabularyLexicon(cat))
	}
	if e.window <= 0 {
		e.window = DefaultSeverityWindow
	}
	return e
}

// hit is an accepted symptom mention before enrichment.
type hit struct {
	entry  *models.SymptomEntry
	name   string
	source models.ObservationSource
	span   models.Span
}

// Extract returns the observations found in text: entity hits first, then
// pattern hits in text order, then symptoms inferred from catalog relationships.
func (e *Extractor) Extract(text string) []models.SymptomObservation {
	lowered := strings.ToLower(text)
	duration := extractDuration(lowered)

	hits := e.entityPass(lowered)
	hits = append(hits, e.patternPass(lowered, hits)...)

	observations := make([]models.SymptomObservation, 0, len(hits))
	seenNames := make(map[string]bool)
	detected := make(map[string]bool)
	for _, h := range hits {
		key := catalog.NormalizeTerm(h.name)
		if seenNames[key] {
			continue
		}
		seenNames[key] = true
		if h.entry != nil {
			detected[h.entry.ID] = true
		}
		observations = append(observations, e.observe(h, e.detectSeverity(lowered, h.span), duration))
	}

	return append(observations, e.inferRelated(detected, seenNames)...)
}

// CheckEmergency reports the emergency keywords contained in text, in table order.
func (e *Extractor) CheckEmergency(text string) (bool, []string) {
	lowered := strings.ToLower(text)
	flags := []string{}
	for _, kw := range e.emergency {
		if strings.Contains(lowered, kw) {
			flags = append(flags, kw)
		}
	}
	return len(flags) > 0, flags
}

func (e *Extractor) entityPass(lowered string) []hit {
	entities, err := e.recognizer.Recognize(lowered)
	if err != nil {
		log.Warn().Err(err).Msg("Entity recognition failed, using pattern matching only")
		return nil
	}

	var hits []hit
	for _, ent := range entities {
		if ent.Start < 0 || ent.End > len(lowered) || ent.Start >= ent.End {
			continue
		}
		entry, name, ok := e.acceptEntity(ent)
		if !ok {
			continue
		}
		span := models.Span{Start: ent.Start, End: ent.End}
		if overlapsAny(hits, span) {
			continue
		}
		hits = append(hits, hit{entry: entry, name: name, source: models.SourceEntity, span: span})
	}
	return hits
}

// acceptEntity decides whether an entity denotes a symptom and resolves its name.
func (e *Extractor) acceptEntity(ent Entity) (*models.SymptomEntry, string, bool) {
	text := catalog.NormalizeTerm(ent.Text)
	if text == "" {
		return nil, "", false
	}
	if entry, ok := e.catalog.LookupTerm(text); ok {
		return entry, entry.Name, true
	}
	if entry := e.partialMatch(text); entry != nil {
		return entry, entry.Name, true
	}
	if IsFindingLabel(ent.Label) {
		return nil, text, true
	}
	return nil, "", false
}

// partialMatch resolves text to the vocabulary term it contains, or that
// contains it when text is at least four characters long. Among several
// candidates the one sharing the most words with text wins; ties keep the
// longer term.
func (e *Extractor) partialMatch(text string) *models.SymptomEntry {
	words := similarity.TermSet(text)
	var best *termPattern
	bestScore := -1.0
	for i := range e.patterns {
		p := &e.patterns[i]
		if !p.re.MatchString(text) && (len(text) < 4 || !strings.Contains(p.term, text)) {
			continue
		}
		if score := similarity.JaccardSimilarity(words, p.terms); score > bestScore {
			best, bestScore = p, score
		}
	}
	if best == nil {
		return nil
	}
	entry, _ := e.catalog.LookupTerm(best.term)
	return entry
}

func (e *Extractor) patternPass(lowered string, accepted []hit) []hit {
	var hits []hit
	for _, p := range e.patterns {
		for _, loc := range p.re.FindAllStringIndex(lowered, -1) {
			span := models.Span{Start: loc[0], End: loc[1]}
			if overlapsAny(accepted, span) || overlapsAny(hits, span) {
				continue
			}
			entry, _ := e.catalog.LookupTerm(p.term)
			name := p.term
			if entry != nil {
				name = entry.Name
			}
			hits = append(hits, hit{entry: entry, name: name, source: models.SourcePattern, span: span})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].span.Start < hits[j].span.Start
	})
	return hits
}

func overlapsAny(hits []hit, span models.Span) bool {
	for _, h := range hits {
		if h.span.Overlaps(span) {
			return true
		}
	}
	return false
}

// detectSeverity scans the window around span; the first severity level in
// mild, moderate, severe order with a keyword present wins.
func (e *Extractor) detectSeverity(lowered string, span models.Span) models.Severity {
	lo := max(0, span.Start-e.window)
	hi := min(len(lowered), span.End+e.window)
	window := lowered[lo:hi]

	for _, level := range models.SeverityLevels {
		for _, kw := range e.severity[level] {
			if strings.Contains(window, kw) {
				return level
			}
		}
	}
	return models.SeverityModerate
}

func extractDuration(lowered string) string {
	for _, re := range durationPatterns {
		if m := re.FindString(lowered); m != "" {
			return m
		}
	}
	return models.DurationUnspecified
}

func (e *Extractor) observe(h hit, severity models.Severity, duration string) models.SymptomObservation {
	span := h.span
	obs := models.SymptomObservation{
		Name:       h.name,
		Severity:   severity,
		Duration:   duration,
		Category:   models.DefaultCategory,
		Source:     h.source,
		Confidence: models.ConfidenceHigh,
		Span:       &span,
	}
	if h.entry == nil {
		obs.Confidence = models.ConfidenceMedium
		return obs
	}
	enrich(&obs, h.entry)
	return obs
}

// inferRelated adds the catalog-related symptoms of detected symptoms.
func (e *Extractor) inferRelated(detected, seenNames map[string]bool) []models.SymptomObservation {
	var inferred []models.SymptomObservation
	added := make(map[string]bool)
	for _, rel := range e.mappings.Relationships {
		if !detected[rel.SymptomID] {
			continue
		}
		for _, id := range rel.Related {
			entry, ok := e.catalog.Symptom(id)
			if !ok || detected[id] || added[id] || seenNames[catalog.NormalizeTerm(entry.Name)] {
				continue
			}
			added[id] = true
			seenNames[catalog.NormalizeTerm(entry.Name)] = true

			obs := models.SymptomObservation{
				Name:       entry.Name,
				Severity:   models.SeverityModerate,
				Duration:   models.DurationUnspecified,
				Source:     models.SourceRelationship,
				Confidence: models.ConfidenceLow,
			}
			enrich(&obs, entry)
			inferred = append(inferred, obs)
		}
	}
	return inferred
}

func enrich(obs *models.SymptomObservation, entry *models.SymptomEntry) {
	obs.SymptomID = entry.ID
	obs.Category = entry.CategoryOrDefault()
	obs.Description = entry.Description
	obs.SuitableRemedies = append([]string(nil), entry.SuitableRemedies...)
}
