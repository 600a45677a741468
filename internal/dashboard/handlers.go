package dashboard

import (
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"github.com/ademuri/streaming-history/internal/logging"
	"github.com/ademuri/streaming-history/internal/metrics"
	"github.com/ademuri/streaming-history/internal/query"
)

type dashboardResponse struct {
	Year         int       `json:"year"`
	Plays        int       `json:"plays"`
	TotalMinutes float64   `json:"total_minutes"`
	Figures      FigureSet `json:"figures"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log := logging.Logger()
		log.Error().Err(err).Msg("encoding response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, struct{ Title string }{s.title}); err != nil {
		log := logging.Logger()
		log.Error().Err(err).Msg("rendering page")
	}
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.options)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"plays":  s.table.Len(),
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	start := time.Now()
	res := query.Compute(s.table, sel)
	metrics.DashboardDuration.Observe(time.Since(start).Seconds())
	if res.Empty() {
		metrics.EmptySelections.Inc()
		log := logging.Logger()
		log.Debug().Int("year", sel.Year).Msg(query.ErrEmptyResult.Error())
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		Year:         sel.Year,
		Plays:        res.Plays,
		TotalMinutes: res.TotalMinutes,
		Figures:      Figures(res),
	})
}

type selectionError string

func (e selectionError) Error() string {
	return string(e)
}

// parseSelection reads year (required), artist (repeatable) and platform (optional)
// from the query string. Blank values are ignored.
func parseSelection(r *http.Request) (query.Selection, error) {
	params := r.URL.Query()

	yearParam := params.Get("year")
	if yearParam == "" {
		return query.Selection{}, selectionError("year is required")
	}
	year, err := strconv.Atoi(yearParam)
	if err != nil {
		return query.Selection{}, selectionError("invalid year " + strconv.Quote(yearParam))
	}

	var artists []string
	for _, a := range params["artist"] {
		if a != "" {
			artists = append(artists, a)
		}
	}

	sel := query.Selection{
		Year:   year,
		Artist: query.OneOf(artists...),
	}
	if platform := params.Get("platform"); platform != "" {
		sel.Platform = query.Exactly(platform)
	}
	return sel, nil
}
