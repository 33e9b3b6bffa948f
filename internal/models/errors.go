package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for validation.
var (
	ErrMissingName     = errors.New("name is required")
	ErrMissingTitle    = errors.New("title is required")
	ErrMissingContent  = errors.New("content is required")
	ErrMissingSource   = errors.New("sourceId is required")
	ErrMissingTarget   = errors.New("targetId is required")
	ErrSelfRelation    = errors.New("sourceId and targetId must be different")
	ErrEmptyPatch      = errors.New("at least one field must be set")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)

// Sentinel errors for entity lookups.
var (
	ErrContactNotFound      = errors.New("contact not found")
	ErrRelationshipNotFound = errors.New("relationship not found")
)

// ErrFieldTooLong returns an error indicating a field exceeds its maximum length.
func ErrFieldTooLong(field string, maxLen int) error {
	return fmt.Errorf("%s exceeds maximum length of %d", field, maxLen)
}

// ErrInvalidValue returns an error indicating a field holds an unknown enum value.
func ErrInvalidValue(field string, value any) error {
	return fmt.Errorf("%s has invalid value %q", field, fmt.Sprint(value))
}

// ErrOutOfRange returns an error indicating a numeric field is outside [lo, hi].
func ErrOutOfRange(field string, lo, hi int) error {
	return fmt.Errorf("%s must be between %d and %d", field, lo, hi)
}
