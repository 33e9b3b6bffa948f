package api_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kinshiphq/kinship/internal/api"
	"github.com/kinshiphq/kinship/internal/models"
)

func exportImportRouter(svc *mockExportImportService) *gin.Engine {
	r := gin.New()
	h := api.NewExportImportHandler(svc, testLogger())
	r.GET("/export", h.Export)
	r.POST("/import", h.Import)
	r.POST("/import/validate", h.Validate)

	return r
}

func TestExport_Attachment(t *testing.T) {
	t.Parallel()

	svc := &mockExportImportService{
		exportFn: func(context.Context) (*models.ExportFormat, error) {
			return &models.ExportFormat{
				SchemaVersion: models.ExportSchemaVersion,
				ExportedAt:    time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
				Stats:         models.ExportStats{ContactCount: 1},
				Snapshot:      models.Snapshot{Contacts: []models.Contact{{ID: "1"}}},
			}, nil
		},
	}

	w := doRequest(exportImportRouter(svc), http.MethodGet, "/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "kinship-export-20250304T050607Z.json") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	var got models.ExportFormat
	decode(t, w, &got)
	if got.SchemaVersion != models.ExportSchemaVersion || len(got.Contacts) != 1 {
		t.Errorf("unexpected export: %+v", got)
	}
}

func TestImport_Options(t *testing.T) {
	t.Parallel()

	var got models.ImportOptions
	svc := &mockExportImportService{
		importFn: func(_ context.Context, _ *models.ExportFormat, opts models.ImportOptions) (*models.ImportResult, error) {
			got = opts
			return &models.ImportResult{ContactsCreated: 2}, nil
		},
	}
	r := exportImportRouter(svc)

	tests := []struct {
		query string
		want  models.ImportOptions
	}{
		{"", models.ImportOptions{Mode: models.ImportMerge}},
		{"?mode=replace", models.ImportOptions{Mode: models.ImportReplace}},
		{"?mode=merge&dry_run=true", models.ImportOptions{Mode: models.ImportMerge, DryRun: true}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := doRequest(r, http.MethodPost, "/import"+tt.query, `{"schema_version":1,"contacts":[]}`)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
			}
			if got != tt.want {
				t.Errorf("options = %+v, want %+v", got, tt.want)
			}
		})
	}

	expectError(t, doRequest(r, http.MethodPost, "/import?mode=append", `{}`), http.StatusBadRequest, api.ErrCodeInvalidRequest)
	expectError(t, doRequest(r, http.MethodPost, "/import", `[`), http.StatusBadRequest, api.ErrCodeInvalidRequest)
}

func TestImport_ValidationErrorsAre422(t *testing.T) {
	t.Parallel()

	svc := &mockExportImportService{
		importFn: func(context.Context, *models.ExportFormat, models.ImportOptions) (*models.ImportResult, error) {
			return &models.ImportResult{Errors: []string{"contacts[0]: missing id"}}, nil
		},
	}

	w := doRequest(exportImportRouter(svc), http.MethodPost, "/import", `{"contacts":[{}]}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}

	var res models.ImportResult
	decode(t, w, &res)
	if len(res.Errors) != 1 {
		t.Errorf("errors = %v", res.Errors)
	}
}

func TestImportValidate(t *testing.T) {
	t.Parallel()

	svc := &mockExportImportService{
		validateFn: func(_ context.Context, data *models.ExportFormat, _ models.ImportMode) ([]string, error) {
			if len(data.Contacts) == 0 {
				return nil, nil
			}
			return []string{"bad"}, nil
		},
	}
	r := exportImportRouter(svc)

	var body struct {
		Valid  bool     `json:"valid"`
		Errors []string `json:"errors"`
	}

	decode(t, doRequest(r, http.MethodPost, "/import/validate", `{}`), &body)
	if !body.Valid || body.Errors == nil {
		t.Errorf("empty payload: %+v, want valid with an empty error list", body)
	}

	decode(t, doRequest(r, http.MethodPost, "/import/validate", `{"contacts":[{"id":"1"}]}`), &body)
	if body.Valid || len(body.Errors) != 1 {
		t.Errorf("bad payload: %+v", body)
	}
}
