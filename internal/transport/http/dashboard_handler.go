package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"epipulse/internal/analytics"
	apierrors "epipulse/internal/errors"
)

// DashboardHandler handles the analytics API routes.
type DashboardHandler struct {
	service      DashboardService
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service DashboardService, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/summary", h.GetSummary)
	r.Get("/records", h.GetRecords)
	r.Get("/yearly-totals", h.GetYearlyTotals)
	r.Get("/top-countries", h.GetTopCountries)
	r.Get("/continents/max", h.GetMaxByContinent)
	r.Get("/continents/means", h.GetContinentMeans)
	r.Get("/pct-change", h.GetPctChange)
	r.Get("/decline", h.GetDecline)
	r.Get("/correlation", h.GetCorrelation)

	return r
}

// GetSummary returns the headline dashboard values.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetRecords returns the cleaned record set plus the run's audit stats.
func (h *DashboardHandler) GetRecords(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.Result(r.Context()))
}

// GetYearlyTotals returns the incidence sum per year.
func (h *DashboardHandler) GetYearlyTotals(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.service.YearlyTotals(r.Context()))
}

// GetTopCountries returns the top-n countries by max incidence. The n
// query parameter is optional; the configured default applies.
func (h *DashboardHandler) GetTopCountries(w http.ResponseWriter, r *http.Request) {
	n := 0
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("n", "must be a positive integer"))
			return
		}
		n = parsed
	}

	top, err := h.service.TopCountries(r.Context(), n)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, top)
}

// GetMaxByContinent returns the peak record per continent.
func (h *DashboardHandler) GetMaxByContinent(w http.ResponseWriter, r *http.Request) {
	maxes, err := h.service.MaxByContinent(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, maxes)
}

// GetContinentMeans returns per-continent means, split by year when
// by_year=true.
func (h *DashboardHandler) GetContinentMeans(w http.ResponseWriter, r *http.Request) {
	byYear := r.URL.Query().Get("by_year") == "true"

	means, err := h.service.ContinentMeans(r.Context(), byYear)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, means)
}

// GetPctChange returns per-country baseline→comparison changes.
func (h *DashboardHandler) GetPctChange(w http.ResponseWriter, r *http.Request) {
	changes, err := h.service.PctChange(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, changes)
}

// GetDecline returns total-incidence decline between the from and to
// years, both required.
func (h *DashboardHandler) GetDecline(w http.ResponseWriter, r *http.Request) {
	fromYear, err := yearParam(r, "from")
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	toYear, err := yearParam(r, "to")
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	decline, err := h.service.Decline(r.Context(), fromYear, toYear)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"from":        fromYear,
		"to":          toYear,
		"decline_pct": decline,
	})
}

// GetCorrelation returns the Pearson coefficient between the x and y
// fields (incidence, urban_pct, population).
func (h *DashboardHandler) GetCorrelation(w http.ResponseWriter, r *http.Request) {
	x := analytics.Field(r.URL.Query().Get("x"))
	y := analytics.Field(r.URL.Query().Get("y"))
	if !x.Valid() {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("x", "must be one of incidence, urban_pct, population"))
		return
	}
	if !y.Valid() {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("y", "must be one of incidence, urban_pct, population"))
		return
	}

	coefficient, err := h.service.Correlation(r.Context(), x, y)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"x":           x,
		"y":           y,
		"correlation": coefficient,
	})
}

func yearParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, apierrors.ErrValidation(name, "year parameter is required")
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apierrors.ErrValidation(name, "must be an integer year")
	}
	return year, nil
}
