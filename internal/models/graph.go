package models

// SelfNodeID is the id of the synthetic node representing the user.
const SelfNodeID = "self"

// Node kinds.
const (
	NodeKindSelf    = "self"
	NodeKindContact = "contact"
)

// Edge kinds.
const (
	EdgeKindSpoke        = "spoke"
	EdgeKindRelationship = "relationship"
)

// GraphNode is a vertex of the network graph.
type GraphNode struct {
	ID         string             `json:"id"`
	Label      string             `json:"label"`
	Kind       string             `json:"kind"`
	Category   Category           `json:"category,omitempty"`
	Status     RelationshipStatus `json:"status,omitempty"`
	Importance int                `json:"importance,omitempty"`
	Size       int                `json:"size"`
}

// GraphEdge is an edge of the network graph. Spoke edges join the self node
// to a contact and carry its status; relationship edges carry their type.
type GraphEdge struct {
	ID     string             `json:"id,omitempty"`
	Source string             `json:"source"`
	Target string             `json:"target"`
	Kind   string             `json:"kind"`
	Status RelationshipStatus `json:"status,omitempty"`
	Type   RelationshipType   `json:"type,omitempty"`
	Notes  string             `json:"notes,omitempty"`
	Dashed bool               `json:"dashed"`
}

// Graph is the network graph read model.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
	// Skipped counts relationships dropped because an endpoint no longer exists.
	Skipped int `json:"skipped"`
}

// Neighborhood holds a contact with the contacts it is related to.
type Neighborhood struct {
	Contact       Contact        `json:"contact"`
	Neighbors     []Contact      `json:"neighbors"`
	Relationships []Relationship `json:"relationships"`
}
