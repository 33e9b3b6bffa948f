package client

import (
	"context"
	"net/url"
)

// GraphService reads the relationship graph.
type GraphService struct {
	c *Client
}

// Get returns the whole graph centred on the user.
func (s *GraphService) Get(ctx context.Context) (*Graph, error) {
	var g Graph
	if err := s.c.get(ctx, "/api/v1/graph", nil, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Neighbors returns a contact with the contacts it is directly related to.
func (s *GraphService) Neighbors(ctx context.Context, id string) (*Neighborhood, error) {
	var n Neighborhood
	if err := s.c.get(ctx, "/api/v1/graph/neighbors/"+url.PathEscape(id), nil, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// AnalyticsService reads aggregate views.
type AnalyticsService struct {
	c *Client
}

// Get returns the full analytics breakdown.
func (s *AnalyticsService) Get(ctx context.Context) (*Analytics, error) {
	var a Analytics
	if err := s.c.get(ctx, "/api/v1/analytics", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Dashboard returns the dashboard summary.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard
	if err := s.c.get(ctx, "/api/v1/dashboard", nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
