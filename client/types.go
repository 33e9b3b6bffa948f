package client

import "github.com/kinshiphq/kinship/internal/models"

// Domain types shared with the server.
type (
	Contact                   = models.Contact
	ContactFields             = models.ContactFields
	Interaction               = models.Interaction
	Relationship              = models.Relationship
	JournalEntry              = models.JournalEntry
	Graph                     = models.Graph
	Neighborhood              = models.Neighborhood
	Analytics                 = models.Analytics
	Dashboard                 = models.Dashboard
	ExportFormat              = models.ExportFormat
	ImportOptions             = models.ImportOptions
	ImportResult              = models.ImportResult
	CreateContactRequest      = models.CreateContactRequest
	UpdateContactRequest      = models.UpdateContactRequest
	CreateInteractionRequest  = models.CreateInteractionRequest
	UpsertRelationshipRequest = models.UpsertRelationshipRequest
	UpdateRelationshipRequest = models.UpdateRelationshipRequest
	CreateJournalRequest      = models.CreateJournalRequest
)

// HealthResponse is returned by the liveness endpoint.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	Storage       string  `json:"storage"`
	LiveClients   int     `json:"live_clients"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadyResponse is returned by the readiness endpoint.
type ReadyResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ContactListOptions filters a contact listing. Zero fields are ignored.
type ContactListOptions struct {
	Search   string
	Category string
	Status   string
}

// JournalListOptions filters a journal listing. Zero fields are ignored.
type JournalListOptions struct {
	ContactID string
	Emotion   string
	Tag       string
}
