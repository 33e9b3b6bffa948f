// Package models defines the data types of the relationship journal.
package models

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Field length limits.
const (
	maxNameLen     = 255
	maxFreeTextLen = 10000
)

// Profile holds the free-text observations recorded about a contact.
// None of these fields carry validation beyond their length.
type Profile struct {
	PersonalNotes    string `json:"personalNotes"`
	Strengths        string `json:"strengths"`
	Weaknesses       string `json:"weaknesses"`
	Interests        string `json:"interests"`
	TriggerPoints    string `json:"triggerPoints"`
	Quotes           string `json:"quotes"`
	BehaviorPatterns string `json:"behaviorPatterns"`
	Beliefs          string `json:"beliefs"`
	RedFlags         string `json:"redFlags"`
	Motivations      string `json:"motivations"`
	Fears            string `json:"fears"`
	ConflictTriggers string `json:"conflictTriggers"`
	MetDate          string `json:"metDate"`
	MetLocation      string `json:"metLocation"`
	NetWorth         string `json:"netWorth"`
	LoyaltyTendency  string `json:"loyaltyTendency"`
}

// ContactFields are the user-editable attributes of a contact.
type ContactFields struct {
	Name               string             `json:"name"`
	Nickname           string             `json:"nickname"`
	Category           Category           `json:"category"`
	ConnectionType     ConnectionType     `json:"connectionType"`
	RelationshipStatus RelationshipStatus `json:"relationshipStatus"`
	TrustLevel         int                `json:"trustLevel"`
	Importance         int                `json:"importance"`
	Potential          Potential          `json:"potential"`
	EnergyBalance      EnergyBalance      `json:"energyBalance"`
	Profile
}

// Contact is a person in the user's network.
type Contact struct {
	ID string `json:"id"`
	ContactFields
	CreatedAt    time.Time     `json:"createdAt"`
	LastContact  time.Time     `json:"lastContact"`
	Interactions []Interaction `json:"interactions"`
}

// Clone returns a deep copy of c.
func (c *Contact) Clone() Contact {
	out := *c
	out.Interactions = slices.Clone(c.Interactions)
	if out.Interactions == nil {
		out.Interactions = []Interaction{}
	}

	return out
}

// InteractionFields are the caller-supplied attributes of an interaction.
type InteractionFields struct {
	Type          InteractionType `json:"type"`
	Content       string          `json:"content"`
	Emotion       Emotion         `json:"emotion"`
	LessonLearned string          `json:"lessonLearned"`
}

// Interaction is a single logged encounter with a contact. It has no identity
// outside the contact that owns it and is never modified once appended.
type Interaction struct {
	ID string `json:"id"`
	InteractionFields
	Date time.Time `json:"date"`
}

// CreateContactRequest is the payload for adding a contact.
type CreateContactRequest struct {
	ContactFields
}

// Validate fills defaults for unset attributes and checks the result.
func (r *CreateContactRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}

	r.applyDefaults()

	return r.validate()
}

// ValidateImported fills defaults on a contact read from an export and checks
// it, interactions included, by the rules that apply to new records.
func (c *Contact) ValidateImported() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrMissingName
	}

	c.applyDefaults()

	if err := c.validate(); err != nil {
		return err
	}

	return validateInteractions(c.Interactions)
}

func (f *ContactFields) applyDefaults() {
	if f.Category == "" {
		f.Category = CategoryFriend
	}
	if f.ConnectionType == "" {
		f.ConnectionType = ConnectionEmotional
	}
	if f.RelationshipStatus == "" {
		f.RelationshipStatus = StatusActive
	}
	if f.TrustLevel == 0 {
		f.TrustLevel = 3
	}
	if f.Importance == 0 {
		f.Importance = 3
	}
	if f.Potential == "" {
		f.Potential = PotentialMedium
	}
	if f.EnergyBalance == "" {
		f.EnergyBalance = EnergyNeutral
	}
}

func (f *ContactFields) validate() error {
	if len(f.Name) > maxNameLen {
		return ErrFieldTooLong("name", maxNameLen)
	}

	if len(f.Nickname) > maxNameLen {
		return ErrFieldTooLong("nickname", maxNameLen)
	}

	if !f.Category.Valid() {
		return ErrInvalidValue("category", f.Category)
	}

	if !f.ConnectionType.Valid() {
		return ErrInvalidValue("connectionType", f.ConnectionType)
	}

	if !f.RelationshipStatus.Valid() {
		return ErrInvalidValue("relationshipStatus", f.RelationshipStatus)
	}

	if f.TrustLevel < 1 || f.TrustLevel > 5 {
		return ErrOutOfRange("trustLevel", 1, 5)
	}

	if f.Importance < 1 || f.Importance > 5 {
		return ErrOutOfRange("importance", 1, 5)
	}

	if !f.Potential.Valid() {
		return ErrInvalidValue("potential", f.Potential)
	}

	if !f.EnergyBalance.Valid() {
		return ErrInvalidValue("energyBalance", f.EnergyBalance)
	}

	for _, p := range f.Profile.texts() {
		if len(p.value) > maxFreeTextLen {
			return ErrFieldTooLong(p.name, maxFreeTextLen)
		}
	}

	return nil
}

type namedText struct {
	name  string
	value string
}

func (p *Profile) texts() []namedText {
	return []namedText{
		{"personalNotes", p.PersonalNotes},
		{"strengths", p.Strengths},
		{"weaknesses", p.Weaknesses},
		{"interests", p.Interests},
		{"triggerPoints", p.TriggerPoints},
		{"quotes", p.Quotes},
		{"behaviorPatterns", p.BehaviorPatterns},
		{"beliefs", p.Beliefs},
		{"redFlags", p.RedFlags},
		{"motivations", p.Motivations},
		{"fears", p.Fears},
		{"conflictTriggers", p.ConflictTriggers},
		{"metDate", p.MetDate},
		{"metLocation", p.MetLocation},
		{"netWorth", p.NetWorth},
		{"loyaltyTendency", p.LoyaltyTendency},
	}
}

// ProfilePatch carries optional replacements for Profile fields.
type ProfilePatch struct {
	PersonalNotes    *string `json:"personalNotes,omitempty"`
	Strengths        *string `json:"strengths,omitempty"`
	Weaknesses       *string `json:"weaknesses,omitempty"`
	Interests        *string `json:"interests,omitempty"`
	TriggerPoints    *string `json:"triggerPoints,omitempty"`
	Quotes           *string `json:"quotes,omitempty"`
	BehaviorPatterns *string `json:"behaviorPatterns,omitempty"`
	Beliefs          *string `json:"beliefs,omitempty"`
	RedFlags         *string `json:"redFlags,omitempty"`
	Motivations      *string `json:"motivations,omitempty"`
	Fears            *string `json:"fears,omitempty"`
	ConflictTriggers *string `json:"conflictTriggers,omitempty"`
	MetDate          *string `json:"metDate,omitempty"`
	MetLocation      *string `json:"metLocation,omitempty"`
	NetWorth         *string `json:"netWorth,omitempty"`
	LoyaltyTendency  *string `json:"loyaltyTendency,omitempty"`
}

type textPatch struct {
	name string
	src  *string
	dst  *string
}

// pairs binds each patch field to its destination in dst.
func (p *ProfilePatch) pairs(dst *Profile) []textPatch {
	return []textPatch{
		{"personalNotes", p.PersonalNotes, &dst.PersonalNotes},
		{"strengths", p.Strengths, &dst.Strengths},
		{"weaknesses", p.Weaknesses, &dst.Weaknesses},
		{"interests", p.Interests, &dst.Interests},
		{"triggerPoints", p.TriggerPoints, &dst.TriggerPoints},
		{"quotes", p.Quotes, &dst.Quotes},
		{"behaviorPatterns", p.BehaviorPatterns, &dst.BehaviorPatterns},
		{"beliefs", p.Beliefs, &dst.Beliefs},
		{"redFlags", p.RedFlags, &dst.RedFlags},
		{"motivations", p.Motivations, &dst.Motivations},
		{"fears", p.Fears, &dst.Fears},
		{"conflictTriggers", p.ConflictTriggers, &dst.ConflictTriggers},
		{"metDate", p.MetDate, &dst.MetDate},
		{"metLocation", p.MetLocation, &dst.MetLocation},
		{"netWorth", p.NetWorth, &dst.NetWorth},
		{"loyaltyTendency", p.LoyaltyTendency, &dst.LoyaltyTendency},
	}
}

// ContactPatch is a shallow partial update of a contact. Nil fields are left
// untouched. Timestamps and interactions change only when explicitly set.
type ContactPatch struct {
	Name               *string             `json:"name,omitempty"`
	Nickname           *string             `json:"nickname,omitempty"`
	Category           *Category           `json:"category,omitempty"`
	ConnectionType     *ConnectionType     `json:"connectionType,omitempty"`
	RelationshipStatus *RelationshipStatus `json:"relationshipStatus,omitempty"`
	TrustLevel         *int                `json:"trustLevel,omitempty"`
	Importance         *int                `json:"importance,omitempty"`
	Potential          *Potential          `json:"potential,omitempty"`
	EnergyBalance      *EnergyBalance      `json:"energyBalance,omitempty"`
	ProfilePatch
	CreatedAt    *time.Time    `json:"createdAt,omitempty"`
	LastContact  *time.Time    `json:"lastContact,omitempty"`
	Interactions []Interaction `json:"interactions,omitempty"`
}

// Apply merges the set fields of p into c.
func (p *ContactPatch) Apply(c *Contact) {
	setIf(&c.Name, p.Name)
	setIf(&c.Nickname, p.Nickname)
	setIf(&c.Category, p.Category)
	setIf(&c.ConnectionType, p.ConnectionType)
	setIf(&c.RelationshipStatus, p.RelationshipStatus)
	setIf(&c.TrustLevel, p.TrustLevel)
	setIf(&c.Importance, p.Importance)
	setIf(&c.Potential, p.Potential)
	setIf(&c.EnergyBalance, p.EnergyBalance)

	for _, t := range p.ProfilePatch.pairs(&c.Profile) {
		setIf(t.dst, t.src)
	}

	setIf(&c.CreatedAt, p.CreatedAt)
	setIf(&c.LastContact, p.LastContact)

	if p.Interactions != nil {
		c.Interactions = slices.Clone(p.Interactions)
	}
}

// UpdateContactRequest is the payload for patching a contact.
type UpdateContactRequest struct {
	ContactPatch
}

// Validate checks the fields that are set on the patch.
func (r *UpdateContactRequest) Validate() error {
	p := &r.ContactPatch

	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return ErrMissingName
		}
		if len(*p.Name) > maxNameLen {
			return ErrFieldTooLong("name", maxNameLen)
		}
	}

	if p.Nickname != nil && len(*p.Nickname) > maxNameLen {
		return ErrFieldTooLong("nickname", maxNameLen)
	}

	if p.Category != nil && !p.Category.Valid() {
		return ErrInvalidValue("category", *p.Category)
	}

	if p.ConnectionType != nil && !p.ConnectionType.Valid() {
		return ErrInvalidValue("connectionType", *p.ConnectionType)
	}

	if p.RelationshipStatus != nil && !p.RelationshipStatus.Valid() {
		return ErrInvalidValue("relationshipStatus", *p.RelationshipStatus)
	}

	if p.TrustLevel != nil && (*p.TrustLevel < 1 || *p.TrustLevel > 5) {
		return ErrOutOfRange("trustLevel", 1, 5)
	}

	if p.Importance != nil && (*p.Importance < 1 || *p.Importance > 5) {
		return ErrOutOfRange("importance", 1, 5)
	}

	if p.Potential != nil && !p.Potential.Valid() {
		return ErrInvalidValue("potential", *p.Potential)
	}

	if p.EnergyBalance != nil && !p.EnergyBalance.Valid() {
		return ErrInvalidValue("energyBalance", *p.EnergyBalance)
	}

	if err := validateInteractions(p.Interactions); err != nil {
		return err
	}

	set := p.Name != nil || p.Nickname != nil || p.Category != nil || p.ConnectionType != nil ||
		p.RelationshipStatus != nil || p.TrustLevel != nil || p.Importance != nil ||
		p.Potential != nil || p.EnergyBalance != nil ||
		p.CreatedAt != nil || p.LastContact != nil || p.Interactions != nil

	var scratch Profile
	for _, t := range p.ProfilePatch.pairs(&scratch) {
		if t.src == nil {
			continue
		}
		set = true
		if len(*t.src) > maxFreeTextLen {
			return ErrFieldTooLong(t.name, maxFreeTextLen)
		}
	}

	if !set {
		return ErrEmptyPatch
	}

	return nil
}

// CreateInteractionRequest is the payload for logging an interaction.
type CreateInteractionRequest struct {
	InteractionFields
}

// Validate fills defaults and checks the interaction fields.
func (r *CreateInteractionRequest) Validate() error {
	r.applyDefaults()

	return r.validate()
}

func (f *InteractionFields) applyDefaults() {
	if f.Type == "" {
		f.Type = InteractionConversation
	}

	if f.Emotion == "" {
		f.Emotion = EmotionNeutral
	}
}

func (f *InteractionFields) validate() error {
	if !f.Type.Valid() {
		return ErrInvalidValue("type", f.Type)
	}

	if !f.Emotion.Valid() {
		return ErrInvalidValue("emotion", f.Emotion)
	}

	if len(f.Content) > maxFreeTextLen {
		return ErrFieldTooLong("content", maxFreeTextLen)
	}

	if len(f.LessonLearned) > maxFreeTextLen {
		return ErrFieldTooLong("lessonLearned", maxFreeTextLen)
	}

	return nil
}

// validateInteractions fills defaults on stored interactions and checks them.
// Each must carry an id and a unique one.
func validateInteractions(list []Interaction) error {
	seen := make(map[string]struct{}, len(list))

	for i := range list {
		in := &list[i]
		if in.ID == "" {
			return fmt.Errorf("interactions[%d]: id is empty", i)
		}

		if _, dup := seen[in.ID]; dup {
			return fmt.Errorf("interactions[%d]: duplicate id %s", i, in.ID)
		}
		seen[in.ID] = struct{}{}

		in.applyDefaults()
		if err := in.validate(); err != nil {
			return fmt.Errorf("interactions[%d]: %w", i, err)
		}
	}

	return nil
}

// ContactFilter narrows a contact listing. Empty fields match everything.
type ContactFilter struct {
	// Search matches case-insensitively against name and nickname.
	Search   string
	Category Category
	Status   RelationshipStatus
}

// Matches reports whether c passes the filter.
func (f ContactFilter) Matches(c *Contact) bool {
	if f.Category != "" && c.Category != f.Category {
		return false
	}

	if f.Status != "" && c.RelationshipStatus != f.Status {
		return false
	}

	if f.Search == "" {
		return true
	}

	term := strings.ToLower(f.Search)

	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Nickname), term)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
