package client

import (
	"context"
	"net/url"
)

// ContactService handles contact operations.
type ContactService struct {
	c *Client
}

type contactListResponse struct {
	Contacts []Contact `json:"contacts"`
	Count    int       `json:"count"`
}

// List returns contacts matching opts, which may be nil.
func (s *ContactService) List(ctx context.Context, opts *ContactListOptions) ([]Contact, error) {
	params := url.Values{}
	if opts != nil {
		if opts.Search != "" {
			params.Set("q", opts.Search)
		}
		if opts.Category != "" {
			params.Set("category", opts.Category)
		}
		if opts.Status != "" {
			params.Set("status", opts.Status)
		}
	}
	var resp contactListResponse
	if err := s.c.get(ctx, "/api/v1/contacts", params, &resp); err != nil {
		return nil, err
	}
	return resp.Contacts, nil
}

// Get returns a single contact by ID.
func (s *ContactService) Get(ctx context.Context, id string) (*Contact, error) {
	var contact Contact
	if err := s.c.get(ctx, "/api/v1/contacts/"+url.PathEscape(id), nil, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// Create adds a contact. Unset enum and score fields take server defaults.
func (s *ContactService) Create(ctx context.Context, req *CreateContactRequest) (*Contact, error) {
	var contact Contact
	if err := s.c.post(ctx, "/api/v1/contacts", req, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// Update applies a partial update to a contact.
func (s *ContactService) Update(ctx context.Context, id string, req *UpdateContactRequest) (*Contact, error) {
	var contact Contact
	if err := s.c.patch(ctx, "/api/v1/contacts/"+url.PathEscape(id), req, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

// Delete removes a contact and every relationship touching it.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.c.del(ctx, "/api/v1/contacts/"+url.PathEscape(id))
}

// AddInteraction logs an interaction with a contact.
func (s *ContactService) AddInteraction(ctx context.Context, id string, req *CreateInteractionRequest) (*Interaction, error) {
	var in Interaction
	if err := s.c.post(ctx, "/api/v1/contacts/"+url.PathEscape(id)+"/interactions", req, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

// Relationships returns every relationship touching a contact.
func (s *ContactService) Relationships(ctx context.Context, id string) ([]Relationship, error) {
	var resp relationshipListResponse
	if err := s.c.get(ctx, "/api/v1/contacts/"+url.PathEscape(id)+"/relationships", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Relationships, nil
}
