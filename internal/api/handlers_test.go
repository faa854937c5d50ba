package api_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"

	"daytrack/internal/api"
	"daytrack/internal/db"
)

func newTestRouter(t *testing.T) (*gin.Engine, *sql.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	path := filepath.Join(t.TempDir(), "daytrack.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return api.NewServer(sqldb).Router(), sqldb
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/ping", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestCreateAndListMeals(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/meals", map[string]any{
		"date":      "2026-01-10",
		"logged_at": "2026-01-10T13:00:00Z",
		"meal_type": "lunch",
		"items": []map[string]any{
			{"name": "chicken breast", "quantity": 1},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("create meal status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/meals?date=2026-01-10", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list meals status = %d", rec.Code)
	}
	var resp struct {
		Entries []struct {
			ID    int64 `json:"ID"`
			Items []struct {
				Name string `json:"Name"`
			} `json:"Items"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Entries) != 1 || len(resp.Entries[0].Items) != 1 {
		t.Fatalf("unexpected entries: %s", rec.Body.String())
	}
	if resp.Entries[0].Items[0].Name != "chicken breast" {
		t.Errorf("item name = %q", resp.Entries[0].Items[0].Name)
	}
}

func TestCreateMealRejectsMissingItems(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/meals", map[string]any{"date": "2026-01-10"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSupplementChecklistAndLog(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/supplements?date=2026-01-10", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("checklist status = %d", rec.Code)
	}
	var resp struct {
		Supplements []struct {
			Supplement struct {
				ID   int64  `json:"ID"`
				Name string `json:"Name"`
			} `json:"supplement"`
			Value    int  `json:"value"`
			Complete bool `json:"complete"`
		} `json:"supplements"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Supplements) != 5 {
		t.Fatalf("checklist has %d supplements, want 5 seeds", len(resp.Supplements))
	}
	for _, s := range resp.Supplements {
		if s.Complete {
			t.Errorf("%s complete with no logs", s.Supplement.Name)
		}
	}

	first := resp.Supplements[0].Supplement
	rec = doJSON(t, router, http.MethodPost,
		"/api/v1/supplements/"+strconv.FormatInt(first.ID, 10)+"/log",
		map[string]any{"date": "2026-01-10", "value": 99})
	if rec.Code != http.StatusOK {
		t.Fatalf("log status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/supplements?date=2026-01-10", nil)
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, s := range resp.Supplements {
		if s.Supplement.ID == first.ID && !s.Complete {
			t.Errorf("%s not complete after logging", s.Supplement.Name)
		}
	}
}

func TestMoveDayConflict(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, date := range []string{"2026-01-10", "2026-01-11"} {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/meals", map[string]any{
			"date":  date,
			"items": []map[string]any{{"name": "eggs (2)"}},
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("seed meal on %s: %d", date, rec.Code)
		}
	}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/day/move",
		map[string]any{"from": "2026-01-10", "to": "2026-01-11"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("move into occupied date status = %d, want 409", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/day/move",
		map[string]any{"from": "2026-01-10", "to": "2026-01-12"})
	if rec.Code != http.StatusOK {
		t.Fatalf("move into empty date status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestStatsRangeValidation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/stats?start=2026-01-10&end=2026-01-01", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("inverted range status = %d, want 400", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/v1/stats?start=2026-01-01&end=2026-01-10", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid range status = %d", rec.Code)
	}
}
