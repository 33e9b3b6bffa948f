package models_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/kinshiphq/kinship/internal/models"
)

func ptr[T any](v T) *T { return &v }

func assertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func assertErrorContains(t *testing.T, err error, want string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error containing %q, got nil", want)
	}

	if !strings.Contains(err.Error(), want) {
		t.Errorf("expected error containing %q, got %q", want, err.Error())
	}
}

func TestCreateContactRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateContactRequest
		wantErr string
	}{
		{name: "minimal", req: contactReq("Ada")},
		{name: "missing name", req: contactReq(""), wantErr: "name is required"},
		{name: "blank name", req: contactReq("   "), wantErr: "name is required"},
		{name: "name too long", req: contactReq(strings.Repeat("x", 256)), wantErr: "exceeds maximum length"},
		{name: "bad category", req: withFields(contactReq("Ada"), func(f *models.ContactFields) { f.Category = "stranger" }), wantErr: "category has invalid value"},
		{name: "bad status", req: withFields(contactReq("Ada"), func(f *models.ContactFields) { f.RelationshipStatus = "gone" }), wantErr: "relationshipStatus has invalid value"},
		{name: "trust too high", req: withFields(contactReq("Ada"), func(f *models.ContactFields) { f.TrustLevel = 6 }), wantErr: "trustLevel must be between 1 and 5"},
		{name: "importance negative", req: withFields(contactReq("Ada"), func(f *models.ContactFields) { f.Importance = -1 }), wantErr: "importance must be between 1 and 5"},
		{name: "notes too long", req: withFields(contactReq("Ada"), func(f *models.ContactFields) { f.PersonalNotes = strings.Repeat("x", 10001) }), wantErr: "personalNotes exceeds"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr != "" {
				assertErrorContains(t, err, tc.wantErr)
				return
			}
			assertNoError(t, err)
		})
	}
}

func TestCreateContactRequest_ValidateDefaults(t *testing.T) {
	req := contactReq("Ada")
	assertNoError(t, req.Validate())

	want := models.ContactFields{
		Name:               "Ada",
		Category:           models.CategoryFriend,
		ConnectionType:     models.ConnectionEmotional,
		RelationshipStatus: models.StatusActive,
		TrustLevel:         3,
		Importance:         3,
		Potential:          models.PotentialMedium,
		EnergyBalance:      models.EnergyNeutral,
	}

	if diff := cmp.Diff(want, req.ContactFields); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateContactRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     models.UpdateContactRequest
		wantErr string
	}{
		{name: "name only", req: models.UpdateContactRequest{ContactPatch: models.ContactPatch{Name: ptr("Bob")}}},
		{name: "profile only", req: models.UpdateContactRequest{ContactPatch: models.ContactPatch{ProfilePatch: models.ProfilePatch{Fears: ptr("heights")}}}},
		{name: "empty", req: models.UpdateContactRequest{}, wantErr: "at least one field"},
		{name: "blank name", req: models.UpdateContactRequest{ContactPatch: models.ContactPatch{Name: ptr(" ")}}, wantErr: "name is required"},
		{name: "bad energy", req: models.UpdateContactRequest{ContactPatch: models.ContactPatch{EnergyBalance: ptr(models.EnergyBalance("hyper"))}}, wantErr: "energyBalance has invalid value"},
		{name: "trust zero", req: models.UpdateContactRequest{ContactPatch: models.ContactPatch{TrustLevel: ptr(0)}}, wantErr: "trustLevel must be between"},
		{name: "quotes too long", req: models.UpdateContactRequest{ContactPatch: models.ContactPatch{ProfilePatch: models.ProfilePatch{Quotes: ptr(strings.Repeat("q", 10001))}}}, wantErr: "quotes exceeds"},
		{name: "interactions", req: models.UpdateContactRequest{ContactPatch: models.ContactPatch{Interactions: []models.Interaction{{ID: "i1"}}}}},
		{name: "interaction without id", req: models.UpdateContactRequest{ContactPatch: models.ContactPatch{Interactions: []models.Interaction{{}}}}, wantErr: "interactions[0]: id is empty"},
		{name: "interaction duplicate id", req: models.UpdateContactRequest{ContactPatch: models.ContactPatch{Interactions: []models.Interaction{{ID: "i1"}, {ID: "i1"}}}}, wantErr: "interactions[1]: duplicate id i1"},
		{name: "interaction bad type", req: models.UpdateContactRequest{ContactPatch: models.ContactPatch{Interactions: []models.Interaction{{ID: "i1", InteractionFields: models.InteractionFields{Type: "telepathy"}}}}}, wantErr: "interactions[0]: type has invalid value"},
		{name: "interaction bad emotion", req: models.UpdateContactRequest{ContactPatch: models.ContactPatch{Interactions: []models.Interaction{{ID: "i1", InteractionFields: models.InteractionFields{Emotion: "proud"}}}}}, wantErr: "interactions[0]: emotion has invalid value"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr != "" {
				assertErrorContains(t, err, tc.wantErr)
				return
			}
			assertNoError(t, err)
		})
	}
}

func TestContactPatch_Apply(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	c := models.Contact{
		ID:            "1",
		ContactFields: models.ContactFields{Name: "Ada", Nickname: "A", TrustLevel: 3, Profile: models.Profile{Fears: "none"}},
		CreatedAt:     created,
		LastContact:   created,
		Interactions:  []models.Interaction{{ID: "i1"}},
	}

	p := models.ContactPatch{
		Nickname:     ptr("Countess"),
		TrustLevel:   ptr(5),
		ProfilePatch: models.ProfilePatch{Strengths: ptr("maths")},
	}
	p.Apply(&c)

	if c.Name != "Ada" || c.Nickname != "Countess" || c.TrustLevel != 5 {
		t.Errorf("unexpected fields after apply: %+v", c.ContactFields)
	}

	if c.Strengths != "maths" || c.Fears != "none" {
		t.Errorf("profile merge wrong: %+v", c.Profile)
	}

	if !c.CreatedAt.Equal(created) || !c.LastContact.Equal(created) || len(c.Interactions) != 1 {
		t.Error("patch without timestamps or interactions must not touch them")
	}
}

func TestContact_CloneIsDeep(t *testing.T) {
	c := models.Contact{ID: "1", Interactions: []models.Interaction{{ID: "i1"}}}
	cp := c.Clone()
	cp.Interactions[0].ID = "changed"

	if c.Interactions[0].ID != "i1" {
		t.Error("clone shares interactions with the original")
	}

	empty := (&models.Contact{ID: "2"}).Clone()
	if empty.Interactions == nil {
		t.Error("clone of a contact without interactions should carry an empty slice")
	}
}

func TestContactFilter_Matches(t *testing.T) {
	c := &models.Contact{ContactFields: models.ContactFields{
		Name: "Margarethe", Nickname: "Grete", Category: models.CategoryFamily, RelationshipStatus: models.StatusPassive,
	}}

	tests := []struct {
		name   string
		filter models.ContactFilter
		want   bool
	}{
		{name: "empty", filter: models.ContactFilter{}, want: true},
		{name: "name case insensitive", filter: models.ContactFilter{Search: "MARGA"}, want: true},
		{name: "nickname", filter: models.ContactFilter{Search: "ret"}, want: true},
		{name: "no match", filter: models.ContactFilter{Search: "bob"}, want: false},
		{name: "category", filter: models.ContactFilter{Category: models.CategoryFamily}, want: true},
		{name: "wrong category", filter: models.ContactFilter{Category: models.CategoryRival}, want: false},
		{name: "wrong status", filter: models.ContactFilter{Status: models.StatusActive}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.filter.Matches(c); got != tc.want {
				t.Errorf("Matches() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCreateInteractionRequest_Validate(t *testing.T) {
	var req models.CreateInteractionRequest
	assertNoError(t, req.Validate())

	if req.Type != models.InteractionConversation || req.Emotion != models.EmotionNeutral {
		t.Errorf("defaults not applied: %+v", req.InteractionFields)
	}

	bad := models.CreateInteractionRequest{InteractionFields: models.InteractionFields{Type: "telepathy"}}
	assertErrorContains(t, bad.Validate(), "type has invalid value")

	badEmotion := models.CreateInteractionRequest{InteractionFields: models.InteractionFields{Emotion: "proud"}}
	assertErrorContains(t, badEmotion.Validate(), "emotion has invalid value")
}

func TestUpsertRelationshipRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     models.UpsertRelationshipRequest
		wantErr error
		wantMsg string
	}{
		{name: "valid", req: models.UpsertRelationshipRequest{SourceID: "a", TargetID: "b"}},
		{name: "missing source", req: models.UpsertRelationshipRequest{TargetID: "b"}, wantErr: models.ErrMissingSource},
		{name: "missing target", req: models.UpsertRelationshipRequest{SourceID: "a"}, wantErr: models.ErrMissingTarget},
		{name: "self", req: models.UpsertRelationshipRequest{SourceID: "a", TargetID: "a"}, wantErr: models.ErrSelfRelation},
		{name: "bad type", req: models.UpsertRelationshipRequest{SourceID: "a", TargetID: "b", Type: "hostile"}, wantMsg: "type has invalid value"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			switch {
			case tc.wantErr != nil:
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("expected %v, got %v", tc.wantErr, err)
				}
			case tc.wantMsg != "":
				assertErrorContains(t, err, tc.wantMsg)
			default:
				assertNoError(t, err)
				if tc.req.Type != models.RelationNeutral {
					t.Errorf("type default = %q, want neutral", tc.req.Type)
				}
			}
		})
	}
}

func TestUpdateRelationshipRequest_Validate(t *testing.T) {
	empty := models.UpdateRelationshipRequest{}
	if !errors.Is(empty.Validate(), models.ErrEmptyPatch) {
		t.Error("empty patch should be rejected")
	}

	ok := models.UpdateRelationshipRequest{RelationshipPatch: models.RelationshipPatch{Notes: ptr("")}}
	assertNoError(t, ok.Validate())

	bad := models.UpdateRelationshipRequest{RelationshipPatch: models.RelationshipPatch{Type: ptr(models.RelationshipType("odd"))}}
	assertErrorContains(t, bad.Validate(), "type has invalid value")
}

func TestPairKey_Unordered(t *testing.T) {
	if models.PairKey("1", "2") != models.PairKey("2", "1") {
		t.Error("pair key must not depend on orientation")
	}

	if models.PairKey("1", "23") == models.PairKey("12", "3") {
		t.Error("pair key must not collide on concatenation")
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		in   string
		want models.TagList
	}{
		{in: "a, b ,,c", want: models.TagList{"a", "b", "c"}},
		{in: "", want: models.TagList{}},
		{in: " , ,", want: models.TagList{}},
		{in: "x,y,x", want: models.TagList{"x", "y"}},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, models.ParseTags(tc.in)); diff != "" {
				t.Errorf("ParseTags(%q) mismatch (-want +got):\n%s", tc.in, diff)
			}
		})
	}
}

func TestTagList_UnmarshalJSON(t *testing.T) {
	var fromString struct {
		Tags models.TagList `json:"tags"`
	}
	assertNoError(t, json.Unmarshal([]byte(`{"tags":"work, family"}`), &fromString))

	if diff := cmp.Diff(models.TagList{"work", "family"}, fromString.Tags); diff != "" {
		t.Errorf("string form mismatch (-want +got):\n%s", diff)
	}

	var fromArray struct {
		Tags models.TagList `json:"tags"`
	}
	assertNoError(t, json.Unmarshal([]byte(`{"tags":["a"," b "]}`), &fromArray))

	if diff := cmp.Diff(models.TagList{"a", " b "}, fromArray.Tags); diff != "" {
		t.Errorf("array form mismatch (-want +got):\n%s", diff)
	}

	var bad struct {
		Tags models.TagList `json:"tags"`
	}
	if err := json.Unmarshal([]byte(`{"tags":42}`), &bad); err == nil {
		t.Error("expected error for numeric tags")
	}
}

func TestCreateJournalRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     models.CreateJournalRequest
		wantErr string
	}{
		{name: "valid", req: journalReq("Day", "went well")},
		{name: "missing title", req: journalReq("", "x"), wantErr: "title is required"},
		{name: "missing content", req: journalReq("t", " "), wantErr: "content is required"},
		{name: "bad emotion", req: func() models.CreateJournalRequest {
			r := journalReq("t", "c")
			r.Emotion = "bored"
			return r
		}(), wantErr: "emotion has invalid value"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr != "" {
				assertErrorContains(t, err, tc.wantErr)
				return
			}
			assertNoError(t, err)
		})
	}
}

func TestCreateJournalRequest_NormalizesTags(t *testing.T) {
	req := journalReq("t", "c")
	req.Tags = models.TagList{" a", "", "b", "a"}
	assertNoError(t, req.Validate())

	if diff := cmp.Diff(models.TagList{"a", "b"}, req.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}

	if req.Emotion != models.JournalNeutral {
		t.Errorf("emotion default = %q, want neutral", req.Emotion)
	}
}

func TestJournalFilter_Matches(t *testing.T) {
	e := &models.JournalEntry{JournalFields: models.JournalFields{
		ContactID: "7", Emotion: models.JournalProud, Tags: models.TagList{"work"},
	}}

	if !(models.JournalFilter{}).Matches(e) {
		t.Error("empty filter should match")
	}

	if !(models.JournalFilter{ContactID: "7", Tag: "work"}).Matches(e) {
		t.Error("contact+tag filter should match")
	}

	if (models.JournalFilter{Tag: "home"}).Matches(e) {
		t.Error("unknown tag should not match")
	}

	if (models.JournalFilter{Emotion: models.JournalNegative}).Matches(e) {
		t.Error("different emotion should not match")
	}
}

func TestContact_JSONShape(t *testing.T) {
	c := models.Contact{
		ID:            "1700000000000",
		ContactFields: models.ContactFields{Name: "Ada", TrustLevel: 4, Profile: models.Profile{RedFlags: "none"}},
		CreatedAt:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Interactions:  []models.Interaction{},
	}

	data, err := json.Marshal(c)
	assertNoError(t, err)

	var raw map[string]any
	assertNoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"id", "name", "trustLevel", "redFlags", "createdAt", "lastContact", "interactions"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("missing top-level key %q in %s", key, data)
		}
	}

	if raw["createdAt"] != "2024-05-01T12:00:00Z" {
		t.Errorf("createdAt = %v, want RFC 3339", raw["createdAt"])
	}
}

func contactReq(name string) models.CreateContactRequest {
	return models.CreateContactRequest{ContactFields: models.ContactFields{Name: name}}
}

func withFields(r models.CreateContactRequest, fn func(*models.ContactFields)) models.CreateContactRequest {
	fn(&r.ContactFields)
	return r
}

func journalReq(title, content string) models.CreateJournalRequest {
	return models.CreateJournalRequest{JournalFields: models.JournalFields{Title: title, Content: content}}
}

func TestUpdateContactRequest_InteractionDefaults(t *testing.T) {
	req := models.UpdateContactRequest{ContactPatch: models.ContactPatch{Interactions: []models.Interaction{{ID: "i1"}}}}
	assertNoError(t, req.Validate())

	if in := req.Interactions[0]; in.Type != models.InteractionConversation || in.Emotion != models.EmotionNeutral {
		t.Errorf("defaults not applied: %+v", in.InteractionFields)
	}
}

func TestContact_ValidateImported(t *testing.T) {
	c := models.Contact{ID: "1", ContactFields: models.ContactFields{Name: "a"}}
	assertNoError(t, c.ValidateImported())

	if c.Category != models.CategoryFriend || c.TrustLevel != 3 || c.Potential != models.PotentialMedium {
		t.Errorf("defaults not applied: %+v", c.ContactFields)
	}

	tests := []struct {
		name    string
		contact models.Contact
		wantErr string
	}{
		{name: "blank name", contact: models.Contact{ID: "1"}, wantErr: "name is required"},
		{name: "bad category", contact: models.Contact{ID: "1", ContactFields: models.ContactFields{Name: "a", Category: "bogus"}}, wantErr: "category has invalid value"},
		{name: "trust too high", contact: models.Contact{ID: "1", ContactFields: models.ContactFields{Name: "a", TrustLevel: 99}}, wantErr: "trustLevel must be between"},
		{name: "negative importance", contact: models.Contact{ID: "1", ContactFields: models.ContactFields{Name: "a", Importance: -4}}, wantErr: "importance must be between"},
		{name: "bad interaction", contact: models.Contact{ID: "1", ContactFields: models.ContactFields{Name: "a"}, Interactions: []models.Interaction{{ID: "i1", InteractionFields: models.InteractionFields{Type: "shout"}}}}, wantErr: "interactions[0]: type has invalid value"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assertErrorContains(t, tc.contact.ValidateImported(), tc.wantErr)
		})
	}
}

func TestRelationship_ValidateImported(t *testing.T) {
	r := models.Relationship{ID: "r1"}
	assertNoError(t, r.ValidateImported())

	if r.Type != models.RelationNeutral {
		t.Errorf("type = %q, want neutral", r.Type)
	}

	bad := models.Relationship{ID: "r1", Type: "hostile"}
	assertErrorContains(t, bad.ValidateImported(), "type has invalid value")
}

func TestJournalEntry_ValidateImported(t *testing.T) {
	e := models.JournalEntry{ID: "j1", JournalFields: models.JournalFields{Title: "t", Content: "c", Tags: models.TagList{" a ", "a"}}}
	assertNoError(t, e.ValidateImported())

	if e.Emotion != models.JournalNeutral || len(e.Tags) != 1 || e.Tags[0] != "a" {
		t.Errorf("entry not normalised: %+v", e.JournalFields)
	}

	bad := models.JournalEntry{ID: "j1", JournalFields: models.JournalFields{Title: "t", Content: "c", Emotion: "meh"}}
	assertErrorContains(t, bad.ValidateImported(), "emotion has invalid value")
}
