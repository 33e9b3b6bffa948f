package service

import (
	"cmp"
	"context"
	"math"
	"slices"

	"github.com/kinshiphq/kinship/internal/domain"
	"github.com/kinshiphq/kinship/internal/models"
)

// AnalyticsStore is the store surface AnalyticsService depends on.
type AnalyticsStore interface {
	Contacts() []models.Contact
	Relationships() []models.Relationship
	JournalEntries() []models.JournalEntry
}

// Compile-time check: *AnalyticsService must satisfy domain.AnalyticsService.
var _ domain.AnalyticsService = (*AnalyticsService)(nil)

const (
	recentEntriesLimit = 3
	neglectedLimit     = 5
)

// AnalyticsService derives aggregate read models from the store.
type AnalyticsService struct {
	store AnalyticsStore
}

// NewAnalyticsService creates an AnalyticsService.
func NewAnalyticsService(store AnalyticsStore) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// Analytics computes distribution counts, averages and scatter points.
func (s *AnalyticsService) Analytics(_ context.Context) (*models.Analytics, error) {
	contacts := s.store.Contacts()
	rels := s.store.Relationships()
	journal := s.store.JournalEntries()

	a := &models.Analytics{
		TotalContacts:      len(contacts),
		TotalRelationships: len(rels),
		TotalJournal:       len(journal),
		ByCategory:         zeroCounts(models.Categories),
		ByStatus:           zeroCounts(models.RelationshipStatuses),
		ByEnergy:           zeroCounts(models.EnergyBalances),
		ByConnectionType:   zeroCounts(models.ConnectionTypes),
		ByPotential:        zeroCounts(models.Potentials),
		RelationshipTypes:  zeroCounts(models.RelationshipTypes),
		JournalEmotions:    zeroCounts(models.JournalEmotions),
		JournalTags:        map[string]int{},
		InteractionMoods:   zeroCounts(models.Emotions),
		Scatter:            make([]models.ScatterPoint, 0, len(contacts)),
	}

	var trust, importance int

	for i := range contacts {
		c := &contacts[i]

		a.ByCategory[string(c.Category)]++
		a.ByStatus[string(c.RelationshipStatus)]++
		a.ByEnergy[string(c.EnergyBalance)]++
		a.ByConnectionType[string(c.ConnectionType)]++
		a.ByPotential[string(c.Potential)]++

		trust += c.TrustLevel
		importance += c.Importance

		switch c.EnergyBalance {
		case models.EnergyEnergizing:
			a.EnergyGivers++
		case models.EnergyDraining:
			a.EnergyDrainers++
		}

		if c.RelationshipStatus == models.StatusToxic {
			a.ToxicContacts++
		}

		for _, in := range c.Interactions {
			a.InteractionMoods[string(in.Emotion)]++
		}
		a.TotalInteractions += len(c.Interactions)

		a.Scatter = append(a.Scatter, models.ScatterPoint{
			ContactID: c.ID, Name: c.Name, Trust: c.TrustLevel, Importance: c.Importance,
		})
	}

	a.AverageTrust = average(trust, len(contacts))
	a.AverageImportance = average(importance, len(contacts))

	for _, r := range rels {
		a.RelationshipTypes[string(r.Type)]++
	}

	for _, e := range journal {
		a.JournalEmotions[string(e.Emotion)]++
		for _, tag := range e.Tags {
			a.JournalTags[tag]++
		}
	}

	return a, nil
}

// Dashboard summarises the network for the landing view.
func (s *AnalyticsService) Dashboard(_ context.Context) (*models.Dashboard, error) {
	contacts := s.store.Contacts()
	journal := s.store.JournalEntries()

	d := &models.Dashboard{
		TotalContacts:    len(contacts),
		TotalConnections: len(s.store.Relationships()),
		RecentEntries:    journal[:min(recentEntriesLimit, len(journal))],
	}

	for i := range contacts {
		switch contacts[i].RelationshipStatus {
		case models.StatusActive:
			d.ActiveRelationships++
		case models.StatusToxic:
			d.ToxicRelationships++
		}
	}

	neglected := slices.Clone(contacts)
	slices.SortStableFunc(neglected, func(a, b models.Contact) int {
		return cmp.Compare(a.LastContact.UnixNano(), b.LastContact.UnixNano())
	})
	d.Neglected = neglected[:min(neglectedLimit, len(neglected))]

	return d, nil
}

// average returns sum/n rounded to one decimal, or 0 when n is 0.
func average(sum, n int) float64 {
	if n == 0 {
		return 0
	}

	return math.Round(float64(sum)/float64(n)*10) / 10
}

func zeroCounts[T ~string](keys []T) map[string]int {
	m := make(map[string]int, len(keys))
	for _, k := range keys {
		m[string(k)] = 0
	}

	return m
}
