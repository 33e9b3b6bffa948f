package models

// Category classifies what role a contact plays in the user's life.
type Category string

// Contact categories.
const (
	CategoryFriend   Category = "friend"
	CategoryFamily   Category = "family"
	CategoryCustomer Category = "customer"
	CategoryMentor   Category = "mentor"
	CategoryEnemy    Category = "enemy"
	CategoryEnvier   Category = "envier"
	CategoryRival    Category = "rival"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFriend, CategoryFamily, CategoryCustomer, CategoryMentor,
	CategoryEnemy, CategoryEnvier, CategoryRival,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool { return oneOf(c, Categories) }

// ConnectionType describes the nature of the bond.
type ConnectionType string

// Connection types.
const (
	ConnectionEmotional    ConnectionType = "emotional"
	ConnectionProfessional ConnectionType = "professional"
	ConnectionIntellectual ConnectionType = "intellectual"
	ConnectionFamilial     ConnectionType = "familial"
)

// ConnectionTypes lists every connection type.
var ConnectionTypes = []ConnectionType{
	ConnectionEmotional, ConnectionProfessional, ConnectionIntellectual, ConnectionFamilial,
}

// Valid reports whether t is a known connection type.
func (t ConnectionType) Valid() bool { return oneOf(t, ConnectionTypes) }

// RelationshipStatus is the current health of the relationship with a contact.
type RelationshipStatus string

// Relationship statuses.
const (
	StatusActive      RelationshipStatus = "active"
	StatusPassive     RelationshipStatus = "passive"
	StatusInterrupted RelationshipStatus = "interrupted"
	StatusToxic       RelationshipStatus = "toxic"
	StatusNeutral     RelationshipStatus = "neutral"
)

// RelationshipStatuses lists every status.
var RelationshipStatuses = []RelationshipStatus{
	StatusActive, StatusPassive, StatusInterrupted, StatusToxic, StatusNeutral,
}

// Valid reports whether s is a known status.
func (s RelationshipStatus) Valid() bool { return oneOf(s, RelationshipStatuses) }

// Potential estimates how much a relationship could grow.
type Potential string

// Potential levels.
const (
	PotentialLow    Potential = "low"
	PotentialMedium Potential = "medium"
	PotentialHigh   Potential = "high"
)

// Potentials lists every potential level.
var Potentials = []Potential{PotentialLow, PotentialMedium, PotentialHigh}

// Valid reports whether p is a known potential level.
func (p Potential) Valid() bool { return oneOf(p, Potentials) }

// EnergyBalance records whether time with a contact drains or restores energy.
type EnergyBalance string

// Energy balances.
const (
	EnergyDraining   EnergyBalance = "draining"
	EnergyNeutral    EnergyBalance = "neutral"
	EnergyEnergizing EnergyBalance = "energizing"
)

// EnergyBalances lists every energy balance.
var EnergyBalances = []EnergyBalance{EnergyDraining, EnergyNeutral, EnergyEnergizing}

// Valid reports whether e is a known energy balance.
func (e EnergyBalance) Valid() bool { return oneOf(e, EnergyBalances) }

// InteractionType is the medium of a recorded interaction.
type InteractionType string

// Interaction types.
const (
	InteractionConversation InteractionType = "conversation"
	InteractionMessage      InteractionType = "message"
	InteractionMeeting      InteractionType = "meeting"
	InteractionCall         InteractionType = "call"
	InteractionConflict     InteractionType = "conflict"
)

// InteractionTypes lists every interaction type.
var InteractionTypes = []InteractionType{
	InteractionConversation, InteractionMessage, InteractionMeeting, InteractionCall, InteractionConflict,
}

// Valid reports whether t is a known interaction type.
func (t InteractionType) Valid() bool { return oneOf(t, InteractionTypes) }

// Emotion is the felt tone of an interaction.
type Emotion string

// Interaction emotions.
const (
	EmotionPositive Emotion = "positive"
	EmotionNeutral  Emotion = "neutral"
	EmotionNegative Emotion = "negative"
)

// Emotions lists every interaction emotion.
var Emotions = []Emotion{EmotionPositive, EmotionNeutral, EmotionNegative}

// Valid reports whether e is a known interaction emotion.
func (e Emotion) Valid() bool { return oneOf(e, Emotions) }

// JournalEmotion is the mood recorded with a journal entry. It is a superset of Emotion.
type JournalEmotion string

// Journal emotions.
const (
	JournalPositive   JournalEmotion = "positive"
	JournalNeutral    JournalEmotion = "neutral"
	JournalNegative   JournalEmotion = "negative"
	JournalInspired   JournalEmotion = "inspired"
	JournalFrustrated JournalEmotion = "frustrated"
	JournalProud      JournalEmotion = "proud"
)

// JournalEmotions lists every journal emotion.
var JournalEmotions = []JournalEmotion{
	JournalPositive, JournalNeutral, JournalNegative, JournalInspired, JournalFrustrated, JournalProud,
}

// Valid reports whether e is a known journal emotion.
func (e JournalEmotion) Valid() bool { return oneOf(e, JournalEmotions) }

// RelationshipType is the polarity of an edge between two contacts.
type RelationshipType string

// Relationship types.
const (
	RelationPositive RelationshipType = "positive"
	RelationNeutral  RelationshipType = "neutral"
	RelationNegative RelationshipType = "negative"
)

// RelationshipTypes lists every relationship type.
var RelationshipTypes = []RelationshipType{RelationPositive, RelationNeutral, RelationNegative}

// Valid reports whether t is a known relationship type.
func (t RelationshipType) Valid() bool { return oneOf(t, RelationshipTypes) }

func oneOf[T comparable](v T, set []T) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}

	return false
}
