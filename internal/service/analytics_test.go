package service

import (
	"context"
	"testing"

	"github.com/kinshiphq/kinship/internal/models"
)

func TestAnalyticsService_Empty(t *testing.T) {
	a, err := NewAnalyticsService(newRealStore(t)).Analytics(context.Background())
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}

	if a.AverageTrust != 0 || a.AverageImportance != 0 {
		t.Errorf("averages over empty set = %v, %v; want 0", a.AverageTrust, a.AverageImportance)
	}

	if a.ByCategory["friend"] != 0 || len(a.ByCategory) != len(models.Categories) {
		t.Errorf("category counts = %v", a.ByCategory)
	}
}

func TestAnalyticsService_Analytics(t *testing.T) {
	s := newRealStore(t)
	ctx := context.Background()

	a := seedContact(t, s, "a", func(f *models.ContactFields) {
		f.TrustLevel = 5
		f.Importance = 4
		f.EnergyBalance = models.EnergyEnergizing
	})
	seedContact(t, s, "b", func(f *models.ContactFields) {
		f.TrustLevel = 2
		f.Importance = 1
		f.RelationshipStatus = models.StatusToxic
		f.EnergyBalance = models.EnergyDraining
		f.Category = models.CategoryRival
	})
	seedContact(t, s, "c", nil)

	_, _, _ = s.AddInteraction(ctx, a.ID, models.InteractionFields{Type: models.InteractionCall, Emotion: models.EmotionPositive})
	_, _ = s.AddJournalEntry(ctx, models.JournalFields{Title: "t", Content: "c", Emotion: models.JournalProud, Tags: models.TagList{"work", "x"}})
	_, _ = s.AddJournalEntry(ctx, models.JournalFields{Title: "t", Content: "c", Emotion: models.JournalProud, Tags: models.TagList{"work"}})

	got, err := NewAnalyticsService(s).Analytics(ctx)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}

	// (5+2+3)/3 = 3.33 -> 3.3 ; (4+1+3)/3 = 2.67 -> 2.7
	if got.AverageTrust != 3.3 || got.AverageImportance != 2.7 {
		t.Errorf("averages = %v, %v", got.AverageTrust, got.AverageImportance)
	}

	if got.ToxicContacts != 1 || got.EnergyGivers != 1 || got.EnergyDrainers != 1 {
		t.Errorf("toxic/givers/drainers = %d/%d/%d", got.ToxicContacts, got.EnergyGivers, got.EnergyDrainers)
	}

	if got.ByCategory["friend"] != 2 || got.ByCategory["rival"] != 1 {
		t.Errorf("by category = %v", got.ByCategory)
	}

	if got.JournalTags["work"] != 2 || got.JournalEmotions["proud"] != 2 {
		t.Errorf("journal tags/emotions = %v / %v", got.JournalTags, got.JournalEmotions)
	}

	if got.InteractionMoods["positive"] != 1 || got.TotalInteractions != 1 {
		t.Errorf("interaction moods = %v", got.InteractionMoods)
	}

	if len(got.Scatter) != 3 || got.Scatter[0].Trust != 5 {
		t.Errorf("scatter = %+v", got.Scatter)
	}
}

func TestAnalyticsService_Dashboard(t *testing.T) {
	s := newRealStore(t)
	ctx := context.Background()

	first := seedContact(t, s, "first", nil)
	second := seedContact(t, s, "second", func(f *models.ContactFields) { f.RelationshipStatus = models.StatusToxic })
	_, _, _ = s.AddInteraction(ctx, first.ID, models.InteractionFields{})
	_, _, _ = s.AddRelationship(ctx, first.ID, second.ID, "", "")

	for i := 0; i < 4; i++ {
		_, _ = s.AddJournalEntry(ctx, models.JournalFields{Title: "t", Content: "c"})
	}

	d, err := NewAnalyticsService(s).Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}

	if d.TotalContacts != 2 || d.ActiveRelationships != 1 || d.ToxicRelationships != 1 || d.TotalConnections != 1 {
		t.Errorf("dashboard counts = %+v", d)
	}

	if len(d.RecentEntries) != 3 {
		t.Errorf("recent entries = %d, want 3", len(d.RecentEntries))
	}

	// first was contacted most recently, so second is the most neglected.
	if len(d.Neglected) != 2 || d.Neglected[0].ID != second.ID {
		t.Errorf("neglected = %+v", d.Neglected)
	}
}
