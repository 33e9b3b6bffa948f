package api_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kinshiphq/kinship/internal/api"
	"github.com/kinshiphq/kinship/internal/models"
)

func contactRouter(svc *mockContactService, rels *mockRelationshipService) *gin.Engine {
	r := gin.New()
	h := api.NewContactHandler(svc, rels, testLogger())
	r.GET("/contacts", h.List)
	r.POST("/contacts", h.Create)
	r.GET("/contacts/:id", h.Get)
	r.PATCH("/contacts/:id", h.Update)
	r.DELETE("/contacts/:id", h.Delete)
	r.POST("/contacts/:id/interactions", h.AddInteraction)
	r.GET("/contacts/:id/relationships", h.Relationships)

	return r
}

func TestContactCreate_AppliesDefaults(t *testing.T) {
	t.Parallel()

	var got models.CreateContactRequest
	svc := &mockContactService{
		createFn: func(_ context.Context, req models.CreateContactRequest) (*models.Contact, error) {
			got = req
			return &models.Contact{ID: "1", ContactFields: req.ContactFields, CreatedAt: time.Now()}, nil
		},
	}

	w := doRequest(contactRouter(svc, nil), http.MethodPost, "/contacts", `{"name":"Ada","metLocation":"Paris"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	if got.Category != models.CategoryFriend || got.TrustLevel != 3 || got.Importance != 3 {
		t.Errorf("defaults not applied: %+v", got.ContactFields)
	}

	var c models.Contact
	decode(t, w, &c)

	if c.ID != "1" || c.Name != "Ada" || c.MetLocation != "Paris" {
		t.Errorf("unexpected contact: %+v", c)
	}
}

func TestContactCreate_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		code string
	}{
		{"malformed json", `{"name":`, api.ErrCodeInvalidRequest},
		{"missing name", `{"nickname":"x"}`, api.ErrCodeValidationError},
		{"bad category", `{"name":"Ada","category":"pal"}`, api.ErrCodeValidationError},
		{"trust out of range", `{"name":"Ada","trustLevel":9}`, api.ErrCodeValidationError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(contactRouter(&mockContactService{}, nil), http.MethodPost, "/contacts", tt.body)
			expectError(t, w, http.StatusBadRequest, tt.code)
		})
	}
}

func TestContactList_PassesFilter(t *testing.T) {
	t.Parallel()

	var got models.ContactFilter
	svc := &mockContactService{
		listFn: func(_ context.Context, f models.ContactFilter) ([]models.Contact, error) {
			got = f
			return []models.Contact{{ID: "1"}}, nil
		},
	}

	w := doRequest(contactRouter(svc, nil), http.MethodGet, "/contacts?q=ad&category=family&status=toxic", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	want := models.ContactFilter{Search: "ad", Category: models.CategoryFamily, Status: models.StatusToxic}
	if got != want {
		t.Errorf("filter = %+v, want %+v", got, want)
	}

	var body struct {
		Contacts []models.Contact `json:"contacts"`
		Count    int              `json:"count"`
	}
	decode(t, w, &body)

	if body.Count != 1 || len(body.Contacts) != 1 {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestContactList_RejectsUnknownCategory(t *testing.T) {
	t.Parallel()

	w := doRequest(contactRouter(&mockContactService{}, nil), http.MethodGet, "/contacts?category=pal", "")
	expectError(t, w, http.StatusBadRequest, api.ErrCodeInvalidRequest)
}

func TestContactGet_NotFound(t *testing.T) {
	t.Parallel()

	svc := &mockContactService{
		getFn: func(context.Context, string) (*models.Contact, error) {
			return nil, models.ErrContactNotFound
		},
	}

	w := doRequest(contactRouter(svc, nil), http.MethodGet, "/contacts/404", "")
	expectError(t, w, http.StatusNotFound, api.ErrCodeNotFound)
}

func TestContactGet_InternalError(t *testing.T) {
	t.Parallel()

	svc := &mockContactService{
		getFn: func(context.Context, string) (*models.Contact, error) {
			return nil, errors.New("disk on fire")
		},
	}

	w := doRequest(contactRouter(svc, nil), http.MethodGet, "/contacts/1", "")
	expectError(t, w, http.StatusInternalServerError, api.ErrCodeInternalError)
}

func TestContactUpdate(t *testing.T) {
	t.Parallel()

	svc := &mockContactService{
		updateFn: func(_ context.Context, id string, req models.UpdateContactRequest) (*models.Contact, error) {
			c := &models.Contact{ID: id}
			req.Apply(c)
			return c, nil
		},
	}

	t.Run("patch", func(t *testing.T) {
		w := doRequest(contactRouter(svc, nil), http.MethodPatch, "/contacts/7", `{"trustLevel":5}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var c models.Contact
		decode(t, w, &c)
		if c.ID != "7" || c.TrustLevel != 5 {
			t.Errorf("unexpected contact: %+v", c)
		}
	})

	t.Run("empty patch", func(t *testing.T) {
		w := doRequest(contactRouter(svc, nil), http.MethodPatch, "/contacts/7", `{}`)
		expectError(t, w, http.StatusBadRequest, api.ErrCodeValidationError)
	})
}

func TestContactDelete(t *testing.T) {
	t.Parallel()

	svc := &mockContactService{
		deleteFn: func(_ context.Context, id string) error {
			if id != "1" {
				return models.ErrContactNotFound
			}
			return nil
		},
	}

	if w := doRequest(contactRouter(svc, nil), http.MethodDelete, "/contacts/1", ""); w.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", w.Code)
	}

	w := doRequest(contactRouter(svc, nil), http.MethodDelete, "/contacts/2", "")
	expectError(t, w, http.StatusNotFound, api.ErrCodeNotFound)
}

func TestContactAddInteraction(t *testing.T) {
	t.Parallel()

	svc := &mockContactService{
		interactionFn: func(_ context.Context, id string, req models.CreateInteractionRequest) (*models.Interaction, error) {
			if id != "1" {
				return nil, models.ErrContactNotFound
			}
			return &models.Interaction{ID: "9", InteractionFields: req.InteractionFields, Date: time.Now()}, nil
		},
	}

	w := doRequest(contactRouter(svc, nil), http.MethodPost, "/contacts/1/interactions", `{"content":"coffee"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var in models.Interaction
	decode(t, w, &in)
	if in.Type != models.InteractionConversation || in.Emotion != models.EmotionNeutral {
		t.Errorf("defaults not applied: %+v", in)
	}

	w = doRequest(contactRouter(svc, nil), http.MethodPost, "/contacts/2/interactions", `{}`)
	expectError(t, w, http.StatusNotFound, api.ErrCodeNotFound)

	w = doRequest(contactRouter(svc, nil), http.MethodPost, "/contacts/1/interactions", `{"type":"telepathy"}`)
	expectError(t, w, http.StatusBadRequest, api.ErrCodeValidationError)
}

func TestContactRelationships(t *testing.T) {
	t.Parallel()

	rels := &mockRelationshipService{
		forContactFn: func(_ context.Context, id string) ([]models.Relationship, error) {
			return []models.Relationship{{ID: "r1", SourceID: id, TargetID: "2"}}, nil
		},
	}

	w := doRequest(contactRouter(&mockContactService{}, rels), http.MethodGet, "/contacts/1/relationships", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Relationships []models.Relationship `json:"relationships"`
	}
	decode(t, w, &body)
	if len(body.Relationships) != 1 || body.Relationships[0].SourceID != "1" {
		t.Errorf("unexpected body: %+v", body)
	}
}
