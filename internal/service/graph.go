package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kinshiphq/kinship/internal/domain"
	"github.com/kinshiphq/kinship/internal/models"
)

// GraphStore is the store surface GraphService depends on.
type GraphStore interface {
	Contacts() []models.Contact
	Contact(id string) (models.Contact, bool)
	Relationships() []models.Relationship
	RelationshipsForContact(id string) []models.Relationship
}

// Compile-time check: *GraphService must satisfy domain.GraphService.
var _ domain.GraphService = (*GraphService)(nil)

const (
	selfNodeSize       = 50
	contactNodeBase    = 20
	contactNodePerStep = 4
)

// GraphService builds the network graph read model.
type GraphService struct {
	store GraphStore
	log   *logrus.Logger
}

// NewGraphService creates a GraphService.
func NewGraphService(store GraphStore, log *logrus.Logger) *GraphService {
	return &GraphService{store: store, log: log}
}

// Graph returns the whole network: the self node, one node and spoke per
// contact, and one edge per relationship whose endpoints both exist.
func (s *GraphService) Graph(_ context.Context) (*models.Graph, error) {
	contacts := s.store.Contacts()
	rels := s.store.Relationships()

	g := &models.Graph{
		Nodes: make([]models.GraphNode, 0, len(contacts)+1),
		Edges: make([]models.GraphEdge, 0, len(contacts)+len(rels)),
	}

	g.Nodes = append(g.Nodes, models.GraphNode{
		ID:    models.SelfNodeID,
		Label: "Me",
		Kind:  models.NodeKindSelf,
		Size:  selfNodeSize,
	})

	known := make(map[string]bool, len(contacts))

	for i := range contacts {
		c := &contacts[i]
		known[c.ID] = true

		importance := c.Importance
		if importance < 1 {
			importance = 1
		}

		g.Nodes = append(g.Nodes, models.GraphNode{
			ID:         c.ID,
			Label:      c.Name,
			Kind:       models.NodeKindContact,
			Category:   c.Category,
			Status:     c.RelationshipStatus,
			Importance: c.Importance,
			Size:       contactNodeBase + importance*contactNodePerStep,
		})

		g.Edges = append(g.Edges, models.GraphEdge{
			Source: models.SelfNodeID,
			Target: c.ID,
			Kind:   models.EdgeKindSpoke,
			Status: c.RelationshipStatus,
		})
	}

	for _, r := range rels {
		if !known[r.SourceID] || !known[r.TargetID] {
			g.Skipped++
			continue
		}

		g.Edges = append(g.Edges, models.GraphEdge{
			ID:     r.ID,
			Source: r.SourceID,
			Target: r.TargetID,
			Kind:   models.EdgeKindRelationship,
			Type:   r.Type,
			Notes:  r.Notes,
			Dashed: r.Type == models.RelationNeutral,
		})
	}

	if g.Skipped > 0 {
		s.log.WithField("skipped", g.Skipped).Warn("graph skipped relationships with missing endpoints")
	}

	return g, nil
}

// Neighbors returns a contact with the contacts it is directly related to.
func (s *GraphService) Neighbors(_ context.Context, contactID string) (*models.Neighborhood, error) {
	c, ok := s.store.Contact(contactID)
	if !ok {
		return nil, models.ErrContactNotFound
	}

	rels := s.store.RelationshipsForContact(contactID)
	n := &models.Neighborhood{
		Contact:       c,
		Neighbors:     make([]models.Contact, 0, len(rels)),
		Relationships: rels,
	}

	seen := map[string]bool{}
	for i := range rels {
		other := rels[i].Other(contactID)
		if seen[other] {
			continue
		}
		seen[other] = true

		if nc, ok := s.store.Contact(other); ok {
			n.Neighbors = append(n.Neighbors, nc)
		}
	}

	return n, nil
}
