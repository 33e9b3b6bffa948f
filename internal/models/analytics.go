package models

// ScatterPoint places a contact on the trust/importance plane.
type ScatterPoint struct {
	ContactID  string `json:"contactId"`
	Name       string `json:"name"`
	Trust      int    `json:"trust"`
	Importance int    `json:"importance"`
}

// Analytics is the aggregate read model over the whole store.
type Analytics struct {
	TotalContacts      int            `json:"totalContacts"`
	TotalRelationships int            `json:"totalRelationships"`
	TotalJournal       int            `json:"totalJournalEntries"`
	TotalInteractions  int            `json:"totalInteractions"`
	ByCategory         map[string]int `json:"byCategory"`
	ByStatus           map[string]int `json:"byStatus"`
	ByEnergy           map[string]int `json:"byEnergy"`
	ByConnectionType   map[string]int `json:"byConnectionType"`
	ByPotential        map[string]int `json:"byPotential"`
	RelationshipTypes  map[string]int `json:"relationshipTypes"`
	JournalEmotions    map[string]int `json:"journalEmotions"`
	JournalTags        map[string]int `json:"journalTags"`
	InteractionMoods   map[string]int `json:"interactionEmotions"`
	AverageTrust       float64        `json:"averageTrust"`
	AverageImportance  float64        `json:"averageImportance"`
	ToxicContacts      int            `json:"toxicContacts"`
	EnergyGivers       int            `json:"energyGivers"`
	EnergyDrainers     int            `json:"energyDrainers"`
	Scatter            []ScatterPoint `json:"scatter"`
}

// Dashboard is the summary shown on the landing view.
type Dashboard struct {
	TotalContacts       int            `json:"totalContacts"`
	ActiveRelationships int            `json:"activeRelationships"`
	ToxicRelationships  int            `json:"toxicRelationships"`
	TotalConnections    int            `json:"totalConnections"`
	RecentEntries       []JournalEntry `json:"recentEntries"`
	// Neglected lists the contacts with the oldest lastContact.
	Neglected []Contact `json:"neglected"`
}
