package webapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pinchbench/pinchboard/internal/api"
	"github.com/pinchbench/pinchboard/internal/charts"
	"github.com/pinchbench/pinchboard/internal/view"
)

// Version is set at build time or defaults to dev.
var Version = "dev"

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	svc *LeaderboardService
}

// NewHandlers creates a new Handlers backed by svc.
func NewHandlers(svc *LeaderboardService) *Handlers {
	return &Handlers{svc: svc}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleVersions lists benchmark versions.
func (h *Handlers) HandleVersions(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.Versions(r.Context())
	if err != nil {
		h.upstreamError(w, r, "couldn't load benchmark versions", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleLeaderboard returns the ranked leaderboard for the view, score,
// provider and version query parameters.
func (h *Handlers) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	st, ok := parseState(w, r)
	if !ok {
		return
	}
	resp, err := h.svc.View(r.Context(), st)
	if err != nil {
		h.upstreamError(w, r, "couldn't load leaderboard", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleRuns returns one page of individual submissions.
func (h *Handlers) HandleRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := intParam(q.Get("limit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
		return
	}
	offset, err := intParam(q.Get("offset"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "offset must be a non-negative integer")
		return
	}

	resp, err := h.svc.Runs(r.Context(), api.SubmissionsQuery{
		Version: q.Get("version"),
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		h.upstreamError(w, r, "couldn't load runs", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleSubmission returns one submission with rendered task notes.
func (h *Handlers) HandleSubmission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "submission id is required")
		return
	}

	resp, err := h.svc.SubmissionDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			writeError(w, http.StatusNotFound, "submission not found")
			return
		}
		h.upstreamError(w, r, "couldn't load submission", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleScatter returns scatter parameters. Query: axis (cost|speed) and
// repeated hide=<provider>.
func (h *Handlers) HandleScatter(w http.ResponseWriter, r *http.Request) {
	cq, ok := parseChartQuery(w, r)
	if !ok {
		return
	}
	hidden := map[string]bool{}
	for _, p := range cq.Hide {
		hidden[p] = true
	}

	resp, err := h.svc.Scatter(r.Context(), cq.State, charts.ParseAxis(cq.Axis), hidden)
	if err != nil {
		h.upstreamError(w, r, "couldn't load leaderboard", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleHeatmap returns the model-by-task grid. Query: sort (score|name).
func (h *Handlers) HandleHeatmap(w http.ResponseWriter, r *http.Request) {
	cq, ok := parseChartQuery(w, r)
	if !ok {
		return
	}
	resp, err := h.svc.Heatmap(r.Context(), cq.State, charts.ParseHeatmapSort(cq.Sort))
	if err != nil {
		h.upstreamError(w, r, "couldn't load task data", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleDistribution returns per-model box plots. Query: sort
// (median|best|spread).
func (h *Handlers) HandleDistribution(w http.ResponseWriter, r *http.Request) {
	cq, ok := parseChartQuery(w, r)
	if !ok {
		return
	}
	resp, err := h.svc.Distribution(r.Context(), cq.State, charts.ParseDistributionSort(cq.Sort))
	if err != nil {
		h.upstreamError(w, r, "couldn't load submissions", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleRadar returns radar series. Query: repeated model=<name>.
func (h *Handlers) HandleRadar(w http.ResponseWriter, r *http.Request) {
	cq, ok := parseChartQuery(w, r)
	if !ok {
		return
	}
	resp, err := h.svc.Radar(r.Context(), cq.State, cq.Models)
	if err != nil {
		h.upstreamError(w, r, "couldn't load leaderboard", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// RegisterRoutes registers all web API routes on r.
func RegisterRoutes(r chi.Router, svc *LeaderboardService) {
	h := NewHandlers(svc)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealth)
		r.Get("/versions", h.HandleVersions)
		r.Get("/leaderboard", h.HandleLeaderboard)
		r.Get("/runs", h.HandleRuns)
		r.Get("/submissions/{id}", h.HandleSubmission)
		r.Route("/graphs", func(r chi.Router) {
			r.Get("/scatter", h.HandleScatter)
			r.Get("/heatmap", h.HandleHeatmap)
			r.Get("/distribution", h.HandleDistribution)
			r.Get("/radar", h.HandleRadar)
		})
	})
}

func (h *Handlers) upstreamError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.svc.logger.Error(msg, "path", r.URL.Path, "error", err)
	writeError(w, http.StatusBadGateway, msg)
}

func parseChartQuery(w http.ResponseWriter, r *http.Request) (view.ChartQuery, bool) {
	cq, err := view.ParseChartQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return view.ChartQuery{}, false
	}
	return cq, true
}

func parseState(w http.ResponseWriter, r *http.Request) (view.State, bool) {
	st, err := view.ParseState(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return view.State{}, false
	}
	return st, true
}

func intParam(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("negative value")
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
