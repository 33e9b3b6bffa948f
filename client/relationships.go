package client

import (
	"context"
	"net/url"
)

// RelationshipService handles relationship operations.
type RelationshipService struct {
	c *Client
}

type relationshipListResponse struct {
	Relationships []Relationship `json:"relationships"`
	Count         int            `json:"count"`
}

// List returns every relationship.
func (s *RelationshipService) List(ctx context.Context) ([]Relationship, error) {
	var resp relationshipListResponse
	if err := s.c.get(ctx, "/api/v1/relationships", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Relationships, nil
}

// Between returns the relationships linking a and b in either direction.
func (s *RelationshipService) Between(ctx context.Context, a, b string) ([]Relationship, error) {
	var resp relationshipListResponse
	path := "/api/v1/relationships/between/" + url.PathEscape(a) + "/" + url.PathEscape(b)
	if err := s.c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Relationships, nil
}

// Upsert creates the relationship for the pair, or overwrites the existing one.
func (s *RelationshipService) Upsert(ctx context.Context, req *UpsertRelationshipRequest) (*Relationship, error) {
	var rel Relationship
	if err := s.c.post(ctx, "/api/v1/relationships", req, &rel); err != nil {
		return nil, err
	}
	return &rel, nil
}

// Update changes the type or notes of a relationship.
func (s *RelationshipService) Update(ctx context.Context, id string, req *UpdateRelationshipRequest) (*Relationship, error) {
	var rel Relationship
	if err := s.c.patch(ctx, "/api/v1/relationships/"+url.PathEscape(id), req, &rel); err != nil {
		return nil, err
	}
	return &rel, nil
}

// Delete removes a relationship.
func (s *RelationshipService) Delete(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/relationships/"+url.PathEscape(id))
}
