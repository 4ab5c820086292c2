package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/junhoahn/manse-api/internal/config"
	"github.com/junhoahn/manse-api/internal/database"
)

const testAPIKey = "test-key"

// testRouter builds a router backed by an in-memory database.
func testRouter(t *testing.T) http.Handler {
	t.Helper()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	db, err := database.Open(database.Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}, log)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if _, err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	cfg := &config.Config{
		Port:              8080,
		Env:               config.EnvDevelopment,
		DatabasePath:      ":memory:",
		APIKey:            testAPIKey,
		DefaultCycleCount: 10,
		LogLevel:          "error",
		LogFormat:         "text",
	}

	return SetupRoutes(db, cfg, log)
}

// doJSON performs a request and decodes the response envelope.
func doJSON(t *testing.T, router http.Handler, method, path string, body any, apiKey string) (int, Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return rec.Code, resp
}

// decodeData re-marshals the envelope's data field into a typed value.
func decodeData(t *testing.T, resp Response, out any) {
	t.Helper()

	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatalf("marshal data: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	router := testRouter(t)

	status, resp := doJSON(t, router, http.MethodGet, "/health", nil, "")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if !resp.Success {
		t.Error("success = false, want true")
	}
}

func TestComputeChart(t *testing.T) {
	router := testRouter(t)

	status, resp := doJSON(t, router, http.MethodPost, "/api/v1/charts", ChartRequest{
		Date: "2025-12-14",
		Time: "15:00",
		Sex:  "male",
	}, "")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (error %+v)", status, resp.Error)
	}

	var chart ChartJSON
	decodeData(t, resp, &chart)

	if got := chart.Pillars.Year.Hanja; got != "乙巳" {
		t.Errorf("year pillar = %q, want 乙巳", got)
	}
	if got := chart.Pillars.Month.Hanja; got != "戊子" {
		t.Errorf("month pillar = %q, want 戊子", got)
	}
	if got := chart.Pillars.Day.Hanja; got != "丁巳" {
		t.Errorf("day pillar = %q, want 丁巳", got)
	}
	if got := chart.Pillars.Hour.Hanja; got != "丁未" {
		t.Errorf("hour pillar = %q, want 丁未", got)
	}
	if chart.LunarDisplay != "2025년 10월 25일" {
		t.Errorf("lunar = %q, want 2025년 10월 25일", chart.LunarDisplay)
	}
	if chart.Luck.Direction != "backward" {
		t.Errorf("direction = %q, want backward", chart.Luck.Direction)
	}
	if len(chart.Luck.Cycles) != 10 {
		t.Errorf("cycle count = %d, want 10", len(chart.Luck.Cycles))
	}
}

func TestComputeChart_Validation(t *testing.T) {
	router := testRouter(t)

	tests := []struct {
		name string
		req  ChartRequest
	}{
		{"missing date", ChartRequest{Time: "12:00", Sex: "male"}},
		{"bad date format", ChartRequest{Date: "14-12-2025", Sex: "male"}},
		{"bad time", ChartRequest{Date: "2025-12-14", Time: "25:00", Sex: "male"}},
		{"bad sex", ChartRequest{Date: "2025-12-14", Sex: "unknown"}},
		{"too many cycles", ChartRequest{Date: "2025-12-14", Sex: "male", Cycles: 31}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := doJSON(t, router, http.MethodPost, "/api/v1/charts", tt.req, "")
			if status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", status)
			}
			if resp.Success {
				t.Error("success = true, want false")
			}
		})
	}
}

func TestComputeChart_LunarOutOfRange(t *testing.T) {
	router := testRouter(t)

	status, resp := doJSON(t, router, http.MethodPost, "/api/v1/charts", ChartRequest{
		Date: "1899-06-15",
		Time: "12:00",
		Sex:  "female",
	}, "")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (error %+v)", status, resp.Error)
	}

	var chart ChartJSON
	decodeData(t, resp, &chart)
	if chart.Lunar != nil {
		t.Errorf("lunar = %+v, want omitted", chart.Lunar)
	}
	if chart.LunarError == "" {
		t.Error("lunar_error is empty, want a range message")
	}
	if got := chart.Pillars.Year.Hanja; got != "己亥" {
		t.Errorf("year pillar = %q, want 己亥", got)
	}
}

func TestGetDateChart(t *testing.T) {
	router := testRouter(t)

	path := "/api/v1/charts/date/2025-12-14?time=15:00&sex=male&cycles=3"
	status, resp := doJSON(t, router, http.MethodGet, path, nil, "")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200 (error %+v)", status, resp.Error)
	}

	var chart ChartJSON
	decodeData(t, resp, &chart)
	if got := chart.Pillars.Day.Hanja; got != "丁巳" {
		t.Errorf("day pillar = %q, want 丁巳", got)
	}
	if len(chart.Luck.Cycles) != 3 {
		t.Errorf("cycle count = %d, want 3", len(chart.Luck.Cycles))
	}
}

func TestGetDateChart_BadQuery(t *testing.T) {
	router := testRouter(t)

	status, _ := doJSON(t, router, http.MethodGet, "/api/v1/charts/date/2025-12-14?sex=male&tz=east", nil, "")
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}

func TestSavedCharts_RequireAPIKey(t *testing.T) {
	router := testRouter(t)

	status, _ := doJSON(t, router, http.MethodGet, "/api/v1/charts/saved", nil, "")
	if status != http.StatusUnauthorized {
		t.Errorf("no key: status = %d, want 401", status)
	}

	status, _ = doJSON(t, router, http.MethodGet, "/api/v1/charts/saved", nil, "wrong-key")
	if status != http.StatusUnauthorized {
		t.Errorf("wrong key: status = %d, want 401", status)
	}
}

func TestSavedCharts_CRUD(t *testing.T) {
	router := testRouter(t)

	// Create
	status, resp := doJSON(t, router, http.MethodPost, "/api/v1/charts/saved", ChartRequest{
		Name: "December subject",
		Date: "2025-12-14",
		Time: "15:00",
		Sex:  "male",
	}, testAPIKey)
	if status != http.StatusOK {
		t.Fatalf("create: status = %d, want 200 (error %+v)", status, resp.Error)
	}

	var created database.SavedChart
	decodeData(t, resp, &created)
	if created.ID == 0 {
		t.Fatal("create: chart ID not set")
	}
	if created.DayPillar != "丁巳" {
		t.Errorf("create: day pillar = %q, want 丁巳", created.DayPillar)
	}

	// Get
	status, resp = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/charts/saved/%d", created.ID), nil, testAPIKey)
	if status != http.StatusOK {
		t.Fatalf("get: status = %d, want 200", status)
	}
	var fetched database.SavedChart
	decodeData(t, resp, &fetched)
	if fetched.Name != "December subject" {
		t.Errorf("get: name = %q, want %q", fetched.Name, "December subject")
	}

	// List
	status, resp = doJSON(t, router, http.MethodGet, "/api/v1/charts/saved", nil, testAPIKey)
	if status != http.StatusOK {
		t.Fatalf("list: status = %d, want 200", status)
	}
	var charts []database.SavedChart
	decodeData(t, resp, &charts)
	if len(charts) != 1 {
		t.Errorf("list: len = %d, want 1", len(charts))
	}

	// Delete
	status, _ = doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/api/v1/charts/saved/%d", created.ID), nil, testAPIKey)
	if status != http.StatusOK {
		t.Fatalf("delete: status = %d, want 200", status)
	}

	status, _ = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/charts/saved/%d", created.ID), nil, testAPIKey)
	if status != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", status)
	}
}

func TestCreateSavedChart_RequiresName(t *testing.T) {
	router := testRouter(t)

	status, _ := doJSON(t, router, http.MethodPost, "/api/v1/charts/saved", ChartRequest{
		Date: "2025-12-14",
		Sex:  "male",
	}, testAPIKey)
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}
