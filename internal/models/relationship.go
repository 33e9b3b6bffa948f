package models

import "time"

// Relationship is an edge between two contacts. At most one exists per
// unordered pair; the stored record keeps the orientation it was created with.
type Relationship struct {
	ID          string           `json:"id"`
	SourceID    string           `json:"sourceId"`
	TargetID    string           `json:"targetId"`
	Type        RelationshipType `json:"type"`
	Notes       string           `json:"notes"`
	CreatedAt   time.Time        `json:"createdAt"`
	LastUpdated time.Time        `json:"lastUpdated"`
}

// Touches reports whether contactID is either endpoint of r.
func (r *Relationship) Touches(contactID string) bool {
	return r.SourceID == contactID || r.TargetID == contactID
}

// Other returns the endpoint of r that is not contactID.
func (r *Relationship) Other(contactID string) string {
	if r.SourceID == contactID {
		return r.TargetID
	}

	return r.SourceID
}

// PairKey returns the canonical key of the unordered pair {a, b}.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}

	return a + "\x00" + b
}

// UpsertRelationshipRequest is the payload for creating or overwriting the
// relationship between two contacts.
type UpsertRelationshipRequest struct {
	SourceID string           `json:"sourceId"`
	TargetID string           `json:"targetId"`
	Type     RelationshipType `json:"type"`
	Notes    string           `json:"notes"`
}

// Validate checks endpoints and fills the default type.
func (r *UpsertRelationshipRequest) Validate() error {
	if r.SourceID == "" {
		return ErrMissingSource
	}

	if r.TargetID == "" {
		return ErrMissingTarget
	}

	if r.SourceID == r.TargetID {
		return ErrSelfRelation
	}

	if r.Type == "" {
		r.Type = RelationNeutral
	}

	if !r.Type.Valid() {
		return ErrInvalidValue("type", r.Type)
	}

	if len(r.Notes) > maxFreeTextLen {
		return ErrFieldTooLong("notes", maxFreeTextLen)
	}

	return nil
}

// ValidateImported fills the default type on a relationship read from an
// export and checks its type and notes. Endpoints are checked by the caller,
// which knows the contact set.
func (r *Relationship) ValidateImported() error {
	if r.Type == "" {
		r.Type = RelationNeutral
	}

	if !r.Type.Valid() {
		return ErrInvalidValue("type", r.Type)
	}

	if len(r.Notes) > maxFreeTextLen {
		return ErrFieldTooLong("notes", maxFreeTextLen)
	}

	return nil
}

// RelationshipPatch is a partial update of a relationship. Endpoints cannot
// be patched, so the one-per-pair rule cannot be broken by an update.
type RelationshipPatch struct {
	Type  *RelationshipType `json:"type,omitempty"`
	Notes *string           `json:"notes,omitempty"`
}

// Apply merges the set fields of p into r.
func (p *RelationshipPatch) Apply(r *Relationship) {
	setIf(&r.Type, p.Type)
	setIf(&r.Notes, p.Notes)
}

// UpdateRelationshipRequest is the payload for patching a relationship.
type UpdateRelationshipRequest struct {
	RelationshipPatch
}

// Validate checks the fields that are set on the patch.
func (r *UpdateRelationshipRequest) Validate() error {
	if r.Type == nil && r.Notes == nil {
		return ErrEmptyPatch
	}

	if r.Type != nil && !r.Type.Valid() {
		return ErrInvalidValue("type", *r.Type)
	}

	if r.Notes != nil && len(*r.Notes) > maxFreeTextLen {
		return ErrFieldTooLong("notes", maxFreeTextLen)
	}

	return nil
}
