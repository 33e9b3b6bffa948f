package client

import (
	"context"
	"net/url"
)

// JournalService handles journal operations.
type JournalService struct {
	c *Client
}

// List returns journal entries matching opts, which may be nil.
func (s *JournalService) List(ctx context.Context, opts *JournalListOptions) ([]JournalEntry, error) {
	params := url.Values{}
	if opts != nil {
		if opts.ContactID != "" {
			params.Set("contact_id", opts.ContactID)
		}
		if opts.Emotion != "" {
			params.Set("emotion", opts.Emotion)
		}
		if opts.Tag != "" {
			params.Set("tag", opts.Tag)
		}
	}
	var resp struct {
		Entries []JournalEntry `json:"entries"`
	}
	if err := s.c.get(ctx, "/api/v1/journal", params, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// Create writes a journal entry.
func (s *JournalService) Create(ctx context.Context, req *CreateJournalRequest) (*JournalEntry, error) {
	var entry JournalEntry
	if err := s.c.post(ctx, "/api/v1/journal", req, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
