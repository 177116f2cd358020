// Package graph derives symptom and remedy relationship graphs for visualization.
package graph

import (
	"github.com/thebtf/herbmind/internal/catalog"
	"github.com/thebtf/herbmind/pkg/models"
)

// NodeType distinguishes symptom nodes from remedy nodes.
type NodeType string

const (
	NodeSymptom NodeType = "symptom"
	NodeRemedy  NodeType = "remedy"
)

// LinkType describes how two nodes are related.
type LinkType string

const (
	LinkTreats  LinkType = "treats"
	LinkRelated LinkType = "related"
)

// Node is one vertex of the graph.
type Node struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Type     NodeType        `json:"type"`
	Category string          `json:"category,omitempty"`
	Severity models.Severity `json:"severity,omitempty"`
	Safety   string          `json:"safety_level,omitempty"`
}

// Link is one edge of the graph. Source and Target are node ids.
type Link struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   LinkType `json:"type"`
}

// Graph is the node/link payload consumed by chart renderers.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Builder derives graphs from a catalog and its mappings.
type Builder struct {
	catalog  *catalog.Catalog
	mappings *catalog.Mappings
}

// NewBuilder returns a Builder. A nil mappings omits symptom to symptom links.
func NewBuilder(cat *catalog.Catalog, mappings *catalog.Mappings) *Builder {
	if mappings == nil {
		mappings = catalog.EmptyMappings()
	}
	return &Builder{catalog: cat, mappings: mappings}
}

// Build returns a node for every observation, a node for every catalog remedy
// suitable for one of them, "treats" links from symptoms to remedies and
// "related" links between observed symptoms. Nodes and links appear in
// discovery order without duplicates.
func (b *Builder) Build(observations []models.SymptomObservation) Graph {
	g := Graph{Nodes: []Node{}, Links: []Link{}}
	nodes := make(map[string]bool)
	links := make(map[Link]bool)

	addNode := func(n Node) {
		if !nodes[n.ID] {
			nodes[n.ID] = true
			g.Nodes = append(g.Nodes, n)
		}
	}
	addLink := func(l Link) {
		if !links[l] {
			links[l] = true
			g.Links = append(g.Links, l)
		}
	}

	observedIDs := make(map[string]string)
	for _, obs := range observations {
		symptomNode := SymptomNodeID(obs.Name)
		addNode(Node{
			ID:       symptomNode,
			Label:    obs.Name,
			Type:     NodeSymptom,
			Category: obs.Category,
			Severity: obs.Severity,
		})
		if obs.SymptomID != "" {
			observedIDs[obs.SymptomID] = symptomNode
		}

		for _, rid := range b.remediesFor(obs) {
			remedy, ok := b.catalog.Remedy(rid)
			if !ok {
				continue
			}
			remedyNode := RemedyNodeID(remedy.ID)
			addNode(Node{
				ID:     remedyNode,
				Label:  remedy.Name,
				Type:   NodeRemedy,
				Safety: string(remedy.SafetyLevel),
			})
			addLink(Link{Source: symptomNode, Target: remedyNode, Type: LinkTreats})
		}
	}

	for _, rel := range b.mappings.Relationships {
		from, ok := observedIDs[rel.SymptomID]
		if !ok {
			continue
		}
		for _, id := range rel.Related {
			if to, ok := observedIDs[id]; ok && to != from {
				addLink(Link{Source: from, Target: to, Type: LinkRelated})
			}
		}
	}
	return g
}

func (b *Builder) remediesFor(obs models.SymptomObservation) []string {
	if len(obs.SuitableRemedies) > 0 {
		return obs.SuitableRemedies
	}
	return b.mappings.SymptomRemedies[catalog.NormalizeTerm(obs.Name)]
}

// SymptomNodeID returns the node id used for a symptom name.
func SymptomNodeID(name string) string {
	return "symptom:" + catalog.NormalizeTerm(name)
}

// RemedyNodeID returns the node id used for a remedy id.
func RemedyNodeID(id string) string {
	return "remedy:" + id
}
