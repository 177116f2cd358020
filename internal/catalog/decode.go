package catalog

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/thebtf/herbmind/pkg/models"
)

// Format is the encoding of a catalog document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatForPath picks the document format from the file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// SymptomsDocument is the decoded symptoms document. The document may be a
// bare list of symptoms or an object wrapping the list.
type SymptomsDocument struct {
	Symptoms      []models.SymptomEntry `json:"symptoms" yaml:"symptoms"`
	Relationships []models.Relationship `json:"symptom_relationships" yaml:"symptom_relationships"`
}

// RemediesDocument is the decoded remedies document.
type RemediesDocument struct {
	Remedies []models.RemedyEntry `json:"remedies" yaml:"remedies"`
}

// DecodeSymptoms parses a symptoms document.
func DecodeSymptoms(data []byte, format Format) (*SymptomsDocument, error) {
	doc := &SymptomsDocument{}
	if err := decodeDocument(data, format, &doc.Symptoms, doc); err != nil {
		return nil, fmt.Errorf("decode symptoms: %w", err)
	}
	return doc, nil
}

// DecodeRemedies parses a remedies document.
func DecodeRemedies(data []byte, format Format) (*RemediesDocument, error) {
	doc := &RemediesDocument{}
	if err := decodeDocument(data, format, &doc.Remedies, doc); err != nil {
		return nil, fmt.Errorf("decode remedies: %w", err)
	}
	return doc, nil
}

// decodeDocument decodes a top-level list into list, or a top-level object into wrapper.
func decodeDocument(data []byte, format Format, list, wrapper interface{}) error {
	if format == FormatYAML {
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return err
		}
		if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
			return fmt.Errorf("empty document")
		}
		switch node := root.Content[0]; node.Kind {
		case yaml.SequenceNode:
			return node.Decode(list)
		case yaml.MappingNode:
			return node.Decode(wrapper)
		default:
			return fmt.Errorf("document must be a list or a mapping")
		}
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty document")
	}
	switch trimmed[0] {
	case '[':
		return json.Unmarshal(trimmed, list)
	case '{':
		return json.Unmarshal(trimmed, wrapper)
	default:
		return fmt.Errorf("document must be a JSON array or object")
	}
}
