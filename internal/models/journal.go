package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	maxTitleLen = 500
	maxTags     = 50
	maxTagLen   = 100
)

// JournalEntry is a dated reflection, optionally about one contact. The
// contact reference is not cascaded when the contact is deleted.
type JournalEntry struct {
	ID string `json:"id"`
	JournalFields
	Date time.Time `json:"date"`
}

// Clone returns a deep copy of e.
func (e *JournalEntry) Clone() JournalEntry {
	out := *e
	out.Tags = slices.Clone(e.Tags)

	return out
}

// JournalFields are the caller-supplied attributes of a journal entry.
type JournalFields struct {
	Title         string         `json:"title"`
	Content       string         `json:"content"`
	ContactID     string         `json:"contactId,omitempty"`
	Emotion       JournalEmotion `json:"emotion"`
	LessonLearned string         `json:"lessonLearned"`
	NextAction    string         `json:"nextAction"`
	Tags          TagList        `json:"tags"`
}

// TagList is an ordered set of tags. It decodes from either a JSON array or
// a single comma-separated string.
type TagList []string

// UnmarshalJSON accepts ["a","b"] or "a, b".
func (t *TagList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = ParseTags(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("tags must be a string or an array of strings: %w", err)
	}

	*t = list

	return nil
}

// ParseTags splits a comma-separated tag string and normalises the result.
func ParseTags(s string) TagList {
	return NormalizeTags(strings.Split(s, ","))
}

// NormalizeTags trims every tag, drops empties and duplicates, and keeps the
// first-seen order. The result is never nil.
func NormalizeTags(tags []string) TagList {
	out := make(TagList, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || slices.Contains(out, tag) {
			continue
		}
		out = append(out, tag)
	}

	return out
}

// CreateJournalRequest is the payload for writing a journal entry.
type CreateJournalRequest struct {
	JournalFields
}

// Validate checks required fields, fills the default emotion and normalises tags.
func (r *CreateJournalRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrMissingTitle
	}

	if len(r.Title) > maxTitleLen {
		return ErrFieldTooLong("title", maxTitleLen)
	}

	if strings.TrimSpace(r.Content) == "" {
		return ErrMissingContent
	}

	if len(r.Content) > maxFreeTextLen {
		return ErrFieldTooLong("content", maxFreeTextLen)
	}

	if r.Emotion == "" {
		r.Emotion = JournalNeutral
	}

	if !r.Emotion.Valid() {
		return ErrInvalidValue("emotion", r.Emotion)
	}

	if len(r.LessonLearned) > maxFreeTextLen {
		return ErrFieldTooLong("lessonLearned", maxFreeTextLen)
	}

	if len(r.NextAction) > maxFreeTextLen {
		return ErrFieldTooLong("nextAction", maxFreeTextLen)
	}

	r.Tags = NormalizeTags(r.Tags)

	if len(r.Tags) > maxTags {
		return fmt.Errorf("at most %d tags are allowed", maxTags)
	}

	for _, tag := range r.Tags {
		if len(tag) > maxTagLen {
			return ErrFieldTooLong("tag", maxTagLen)
		}
	}

	return nil
}

// ValidateImported fills defaults on an entry read from an export and checks
// it by the rules that apply to new entries.
func (e *JournalEntry) ValidateImported() error {
	r := CreateJournalRequest{JournalFields: e.JournalFields}
	if err := r.Validate(); err != nil {
		return err
	}

	e.JournalFields = r.JournalFields

	return nil
}

// JournalFilter narrows a journal listing. Empty fields match everything.
type JournalFilter struct {
	ContactID string
	Emotion   JournalEmotion
	Tag       string
}

// Matches reports whether e passes the filter.
func (f JournalFilter) Matches(e *JournalEntry) bool {
	if f.ContactID != "" && e.ContactID != f.ContactID {
		return false
	}

	if f.Emotion != "" && e.Emotion != f.Emotion {
		return false
	}

	if f.Tag != "" && !slices.Contains(e.Tags, f.Tag) {
		return false
	}

	return true
}
