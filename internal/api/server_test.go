package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sells-group/scout-cli/internal/browser"
	"github.com/sells-group/scout-cli/internal/dataset"
	"github.com/sells-group/scout-cli/internal/model"
)

func init() {
	zap.ReplaceGlobals(zap.NewNop())
}

func testCatalog() *dataset.Catalog {
	facilities := []model.Facility{
		{
			ID: 1, ApfmID: "501", FacilityName: "Maple Grove", StreetAddress: "1200 Maple Avenue",
			City: "Springfield", State: "IL", ZipCode: "62701", OwnershipGroup: "Holiday Retirement",
			CareType1: "Assisted Living", RoomType1: "Studio", RoomType1Price: "$2,400",
		},
		{ID: 2, FacilityName: "Oak Terrace", State: "OH", CareType1: "Memory Care", RoomType1: "Suite", RoomType1Price: "$5,500"},
	}
	for i := 3; i <= 14; i++ {
		facilities = append(facilities, model.Facility{ID: i, FacilityName: "Filler", State: "FL"})
	}
	contacts := []model.Contact{
		{FirstName: "Ann", LastName: "Lee", Email: "ann@x.com", CompanyName: "Atria Senior Living", JobTitle: "Executive Director"},
	}
	residents := []model.Resident{
		{FirstName: "Ruth", LastName: "Adams", Age: "82", CurrentAddress: "1200 Maple Avenue Springfield IL 62701", ApfmID: "501"},
		{FirstName: "Walt", LastName: "Burke", Age: "75", CurrentAddress: "900 Birch Road Peoria IL 61602", ApfmID: "501"},
		{FirstName: "June", LastName: "Cole", Age: "65", ApfmID: "501"},
	}
	return dataset.NewCatalog(facilities, contacts, residents)
}

func newTestServer(opts Options) *Server {
	if opts.PageSizes == (browser.PageSizes{}) {
		opts.PageSizes = browser.DefaultPageSizes()
	}
	return New(testCatalog(), nil, nil, opts)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(Options{})
	rec := get(t, s, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, s.catalog.Version.String(), body["version"])
	assert.InDelta(t, 14, body["facilities"], 0)
}

func TestOptions(t *testing.T) {
	rec := get(t, newTestServer(Options{}), "/options")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Len(t, body["states"], 50)
	assert.Len(t, body["care_types"], 6)
	assert.Len(t, body["prices"], 4)
}

func TestFacilities_DefaultPage(t *testing.T) {
	rec := get(t, newTestServer(Options{}), "/facilities")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Len(t, body["items"], 6)
	assert.InDelta(t, 14, body["total_items"], 0)
	assert.InDelta(t, 3, body["total_pages"], 0)
	nav := body["nav"].(map[string]any)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, nav["numbers"])
}

func TestFacilities_TableView(t *testing.T) {
	rec := get(t, newTestServer(Options{}), "/facilities?view=table&page=2")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Len(t, body["items"], 4)
	assert.InDelta(t, 2, body["page"], 0)
}

func TestFacilities_PagePastEnd(t *testing.T) {
	rec := get(t, newTestServer(Options{}), "/facilities?page=9223372036854775807")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Empty(t, body["items"])
	assert.InDelta(t, 14, body["total_items"], 0)
	assert.InDelta(t, 3, body["total_pages"], 0)
	nav := body["nav"].(map[string]any)
	assert.Equal(t, false, nav["has_next"])
}

func TestFacilities_Filters(t *testing.T) {
	s := newTestServer(Options{})

	tests := []struct {
		name  string
		query string
		want  []float64
	}{
		{"state", "/facilities?state=IL", []float64{1}},
		{"comma states", "/facilities?state=IL,OH", []float64{1, 2}},
		{"repeated care type", "/facilities?care_type=Memory+Care&care_type=Assisted+Living", []float64{1, 2}},
		{"price", "/facilities?price=5-7k", []float64{2}},
		{"search", "/facilities?q=maple", []float64{1}},
		{"no match", "/facilities?q=zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.query)
			require.Equal(t, http.StatusOK, rec.Code)

			items := decode(t, rec)["items"].([]any)
			var ids []float64
			for _, it := range items {
				ids = append(ids, it.(map[string]any)["id"].(float64))
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestFacilities_BadRequests(t *testing.T) {
	s := newTestServer(Options{})

	for _, target := range []string{
		"/facilities?price=cheap",
		"/facilities?view=grid",
		"/facilities?page=two",
		"/facilities/abc",
		"/facilities/abc/residents",
		"/facilities/1/residents?page=x",
	} {
		rec := get(t, s, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.NotEmpty(t, decode(t, rec)["error"], target)
	}
}

func TestProfile(t *testing.T) {
	rec := get(t, newTestServer(Options{}), "/facilities/1")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "1200 Maple Avenue, Springfield, IL, 62701", body["location"])
	assert.Equal(t, "N/A", body["review_score"])

	rates := body["room_rates"].([]any)
	assert.Equal(t, "$2,400", rates[0].(map[string]any)["price"])

	kpis := body["kpis"].([]any)
	first := kpis[0].(map[string]any)
	assert.Equal(t, "Executive Director", first["category"])
	assert.InDelta(t, 1, first["count"], 0)
}

func TestProfile_SearchTerm(t *testing.T) {
	rec := get(t, newTestServer(Options{}), "/facilities/1?q=oak")
	require.Equal(t, http.StatusOK, rec.Code)

	facility := decode(t, rec)["facility"].(map[string]any)
	assert.InDelta(t, 2, facility["id"], 0)
}

func TestProfile_NotFound(t *testing.T) {
	s := newTestServer(Options{})

	for _, target := range []string{"/facilities/999", "/facilities/1?q=nowhere", "/facilities/999/residents"} {
		rec := get(t, s, target)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		assert.Equal(t, "facility not found", decode(t, rec)["error"], target)
	}
}

func TestResidents(t *testing.T) {
	rec := get(t, newTestServer(Options{}), "/facilities/1/residents")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	items := body["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, "Resident", items[0].(map[string]any)["status"])
	assert.Equal(t, "Lead", items[1].(map[string]any)["status"])

	counts := body["counts"].(map[string]any)
	assert.InDelta(t, 1, counts["Resident"], 0)
	assert.InDelta(t, 1, counts["Lead"], 0)
}

func TestResidents_NameSearch(t *testing.T) {
	rec := get(t, newTestServer(Options{}), "/facilities/1/residents?q=burke")
	require.Equal(t, http.StatusOK, rec.Code)

	items := decode(t, rec)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Walt", items[0].(map[string]any)["firstName"])
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(Options{RateLimit: 0.001, RateBurst: 1})

	assert.Equal(t, http.StatusOK, get(t, s, "/health").Code)
	rec := get(t, s, "/health")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestCORS(t *testing.T) {
	s := newTestServer(Options{CORSOrigins: []string{"https://scout.example.com"}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://scout.example.com")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://scout.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
