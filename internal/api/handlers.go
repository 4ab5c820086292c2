package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/junhoahn/manse-api/internal/config"
	"github.com/junhoahn/manse-api/internal/database"
	"github.com/junhoahn/manse-api/internal/manse"
)

// Request defaults for callers that omit location information: Seoul,
// Korea Standard Time.
const (
	defaultTZOffset  = 9.0
	defaultLongitude = 126.98
	defaultBirthTime = "12:00"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db     *database.DB
	cfg    *config.Config
	logger *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, cfg *config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// =============================================================================
// Request / response shapes
// =============================================================================

// ChartRequest is the JSON body for chart computation. Omitted tz and
// longitude default to Seoul; an omitted time defaults to noon.
type ChartRequest struct {
	Date      string   `json:"date"` // YYYY-MM-DD
	Time      string   `json:"time"` // HH:MM
	Sex       string   `json:"sex"`  // male, female
	TZ        *float64 `json:"tz"`
	Longitude *float64 `json:"longitude"`
	LMT       bool     `json:"lmt"`
	Cycles    int      `json:"cycles"`

	// Name is only used by the saved-chart endpoint.
	Name string `json:"name,omitempty"`
}

// PillarJSON is one pillar in wire form.
type PillarJSON struct {
	Stem   int    `json:"stem"`
	Branch int    `json:"branch"`
	Hanja  string `json:"hanja"`
	Hangul string `json:"hangul"`
}

// CycleJSON is one luck cycle in wire form.
type CycleJSON struct {
	Index     int        `json:"index"`
	AgeStart  float64    `json:"age_start"`
	AgeEnd    float64    `json:"age_end"`
	DateStart string     `json:"date_start"`
	DateEnd   string     `json:"date_end"`
	Pillar    PillarJSON `json:"pillar"`
}

// ChartJSON is a fully computed chart in wire form.
type ChartJSON struct {
	JulianDateUTC float64          `json:"julian_date_utc"`
	Gregorian     string           `json:"gregorian"`
	Lunar         *manse.LunarDate `json:"lunar,omitempty"`
	LunarDisplay  string           `json:"lunar_display,omitempty"`
	LunarError    string           `json:"lunar_error,omitempty"`
	Pillars       struct {
		Year  PillarJSON `json:"year"`
		Month PillarJSON `json:"month"`
		Day   PillarJSON `json:"day"`
		Hour  PillarJSON `json:"hour"`
	} `json:"pillars"`
	Luck struct {
		Direction string      `json:"direction"` // forward, backward
		Cycles    []CycleJSON `json:"cycles"`
	} `json:"luck"`
}

func pillarJSON(p manse.Pillar) PillarJSON {
	return PillarJSON{
		Stem:   p.Stem,
		Branch: p.Branch,
		Hanja:  p.Hanja(),
		Hangul: p.Hangul(),
	}
}

const wireTimeLayout = "2006-01-02 15:04:05"

func chartJSON(res *manse.Result) *ChartJSON {
	out := &ChartJSON{
		JulianDateUTC: res.JulianDateUTC,
		Gregorian:     res.Gregorian.Format("2006-01-02 15:04"),
	}
	if res.Lunar != nil {
		out.Lunar = res.Lunar
		out.LunarDisplay = res.Lunar.String()
	}
	if res.LunarErr != nil {
		out.LunarError = res.LunarErr.Error()
	}

	out.Pillars.Year = pillarJSON(res.Pillars.Year)
	out.Pillars.Month = pillarJSON(res.Pillars.Month)
	out.Pillars.Day = pillarJSON(res.Pillars.Day)
	out.Pillars.Hour = pillarJSON(res.Pillars.Hour)

	out.Luck.Direction = "backward"
	if res.Forward {
		out.Luck.Direction = "forward"
	}
	out.Luck.Cycles = make([]CycleJSON, 0, len(res.Cycles))
	for _, c := range res.Cycles {
		out.Luck.Cycles = append(out.Luck.Cycles, CycleJSON{
			Index:     c.Index,
			AgeStart:  c.AgeStart,
			AgeEnd:    c.AgeEnd,
			DateStart: c.DateStart.Format(wireTimeLayout),
			DateEnd:   c.DateEnd.Format(wireTimeLayout),
			Pillar:    pillarJSON(c.Pillar),
		})
	}
	return out
}

// toInput validates the request and converts it to a calculation input.
func (req *ChartRequest) toInput(defaultCycles int) (manse.Input, error) {
	var in manse.Input

	if req.Date == "" {
		return in, errors.New("date is required")
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return in, fmt.Errorf("invalid date %q, use YYYY-MM-DD", req.Date)
	}

	clock := req.Time
	if clock == "" {
		clock = defaultBirthTime
	}
	tod, err := time.Parse("15:04", clock)
	if err != nil {
		return in, fmt.Errorf("invalid time %q, use HH:MM", clock)
	}

	switch req.Sex {
	case "male":
		in.Sex = manse.SexMale
	case "female":
		in.Sex = manse.SexFemale
	default:
		return in, fmt.Errorf("invalid sex %q, use male or female", req.Sex)
	}

	in.Year, in.Month, in.Day = date.Year(), int(date.Month()), date.Day()
	in.Hour, in.Minute = tod.Hour(), tod.Minute()

	in.TZOffset = defaultTZOffset
	if req.TZ != nil {
		in.TZOffset = *req.TZ
	}
	in.Longitude = defaultLongitude
	if req.Longitude != nil {
		in.Longitude = *req.Longitude
	}
	in.ApplyLMT = req.LMT

	in.CycleCount = req.Cycles
	if in.CycleCount <= 0 {
		in.CycleCount = defaultCycles
	}
	if in.CycleCount > 30 {
		return in, fmt.Errorf("cycles must be at most 30, got %d", in.CycleCount)
	}

	return in, nil
}

// =============================================================================
// Chart computation handlers
// =============================================================================

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check database health
	if err := h.db.Health(ctx); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// ComputeChart handles POST /api/v1/charts
func (h *Handlers) ComputeChart(w http.ResponseWriter, r *http.Request) {
	var req ChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}

	h.computeAndWrite(w, &req)
}

// GetDateChart handles GET /api/v1/charts/date/{date}
//
// Query parameters: time (HH:MM), sex, tz, lon, lmt, cycles.
func (h *Handlers) GetDateChart(w http.ResponseWriter, r *http.Request) {
	req := ChartRequest{
		Date: chi.URLParam(r, "date"),
		Time: r.URL.Query().Get("time"),
		Sex:  r.URL.Query().Get("sex"),
	}
	if req.Sex == "" {
		req.Sex = "male"
	}

	q := r.URL.Query()
	if v := q.Get("tz"); v != "" {
		tz, err := strconv.ParseFloat(v, 64)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid tz %q", v))
			return
		}
		req.TZ = &tz
	}
	if v := q.Get("lon"); v != "" {
		lon, err := strconv.ParseFloat(v, 64)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid lon %q", v))
			return
		}
		req.Longitude = &lon
	}
	if v := q.Get("lmt"); v != "" {
		req.LMT = v == "true" || v == "1"
	}
	if v := q.Get("cycles"); v != "" {
		cycles, err := strconv.Atoi(v)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid cycles %q", v))
			return
		}
		req.Cycles = cycles
	}

	h.computeAndWrite(w, &req)
}

// computeAndWrite runs the calculation core and maps its errors onto the
// response envelope.
func (h *Handlers) computeAndWrite(w http.ResponseWriter, req *ChartRequest) {
	in, err := req.toInput(h.cfg.DefaultCycleCount)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	res, err := manse.Compute(in)
	switch {
	case errors.Is(err, manse.ErrInvalidDate):
		WriteError(w, http.StatusBadRequest, "Date is outside the representable calendar range", "INVALID_DATE")
		return
	case err != nil:
		// ErrBoundarySearch or similar: an internal model defect, not bad input.
		h.logger.Error("chart computation failed", slog.Any("error", err))
		WriteInternalError(w, "Chart computation failed")
		return
	}

	WriteSuccess(w, chartJSON(res))
}

// =============================================================================
// Saved chart handlers
// =============================================================================

// CreateSavedChart handles POST /api/v1/charts/saved
func (h *Handlers) CreateSavedChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return
	}
	if req.Name == "" {
		WriteBadRequest(w, "Name is required for a saved chart")
		return
	}

	in, err := req.toInput(h.cfg.DefaultCycleCount)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	res, err := manse.Compute(in)
	if err != nil {
		if errors.Is(err, manse.ErrInvalidDate) {
			WriteError(w, http.StatusBadRequest, "Date is outside the representable calendar range", "INVALID_DATE")
			return
		}
		h.logger.Error("chart computation failed", slog.Any("error", err))
		WriteInternalError(w, "Chart computation failed")
		return
	}

	chart := &database.SavedChart{
		Name:        req.Name,
		BirthDate:   req.Date,
		BirthTime:   fmt.Sprintf("%02d:%02d", in.Hour, in.Minute),
		Sex:         in.Sex.String(),
		TZOffset:    in.TZOffset,
		Longitude:   in.Longitude,
		ApplyLMT:    in.ApplyLMT,
		YearPillar:  res.Pillars.Year.Hanja(),
		MonthPillar: res.Pillars.Month.Hanja(),
		DayPillar:   res.Pillars.Day.Hanja(),
		HourPillar:  res.Pillars.Hour.Hanja(),
	}
	if res.Lunar != nil {
		chart.LunarDate = res.Lunar.String()
	}

	if err := h.db.CreateChart(ctx, chart); err != nil {
		h.logger.Error("failed to save chart", slog.Any("error", err))
		WriteInternalError(w, "Failed to save chart")
		return
	}

	WriteSuccess(w, chart)
}

// ListSavedCharts handles GET /api/v1/charts/saved
func (h *Handlers) ListSavedCharts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid limit %q", v))
			return
		}
		limit = n
	}

	charts, err := h.db.ListCharts(ctx, limit)
	if err != nil {
		h.logger.Error("failed to list charts", slog.Any("error", err))
		WriteInternalError(w, "Failed to list charts")
		return
	}
	if charts == nil {
		charts = []database.SavedChart{}
	}

	WriteSuccess(w, charts)
}

// GetSavedChart handles GET /api/v1/charts/saved/{id}
func (h *Handlers) GetSavedChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid chart ID")
		return
	}

	chart, err := h.db.GetChart(ctx, id)
	if database.IsNotFound(err) {
		WriteNotFound(w, "Chart not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get chart", slog.Int64("id", id), slog.Any("error", err))
		WriteInternalError(w, "Failed to get chart")
		return
	}

	WriteSuccess(w, chart)
}

// DeleteSavedChart handles DELETE /api/v1/charts/saved/{id}
func (h *Handlers) DeleteSavedChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid chart ID")
		return
	}

	if err := h.db.DeleteChart(ctx, id); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Chart not found")
			return
		}
		h.logger.Error("failed to delete chart", slog.Int64("id", id), slog.Any("error", err))
		WriteInternalError(w, "Failed to delete chart")
		return
	}

	WriteSuccess(w, map[string]string{"status": "deleted"})
}
