package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/focusflow/focusflow-server/internal/api/respond"
	"github.com/focusflow/focusflow-server/internal/model"
	"github.com/focusflow/focusflow-server/internal/services"
)

type ReportsHandler struct {
	rollup *services.RollupService
}

func NewReportsHandler(rollup *services.RollupService) *ReportsHandler {
	return &ReportsHandler{rollup: rollup}
}

// parseDayVar reads a yyyy-mm-dd path variable.
func parseDayVar(r *http.Request, name string) (time.Time, bool) {
	v := mux.Vars(r)[name]
	t, err := model.ParseDay(v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (h *ReportsHandler) GetDailySummary(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	date, ok := parseDayVar(r, "date")
	if !ok {
		respond.WriteBadRequest(w, "date must be yyyy-mm-dd")
		return
	}
	out, err := h.rollup.GetDaily(r.Context(), userID, date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *ReportsHandler) GetWeeklyReport(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	weekStart, ok := parseDayVar(r, "weekStart")
	if !ok {
		respond.WriteBadRequest(w, "weekStart must be yyyy-mm-dd")
		return
	}
	out, err := h.rollup.GetWeekly(r.Context(), userID, weekStart)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *ReportsHandler) GenerateWeeklyReport(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	weekStart, ok := parseDayVar(r, "weekStart")
	if !ok {
		respond.WriteBadRequest(w, "weekStart must be yyyy-mm-dd")
		return
	}
	out, err := h.rollup.GenerateWeekly(r.Context(), userID, weekStart)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *ReportsHandler) GetTeamReport(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["teamId"]
	weekStart, ok := parseDayVar(r, "weekStart")
	if !ok {
		respond.WriteBadRequest(w, "weekStart must be yyyy-mm-dd")
		return
	}
	out, err := h.rollup.GetTeamReport(r.Context(), teamID, weekStart)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *ReportsHandler) GenerateTeamReport(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["teamId"]
	weekStart, ok := parseDayVar(r, "weekStart")
	if !ok {
		respond.WriteBadRequest(w, "weekStart must be yyyy-mm-dd")
		return
	}
	out, err := h.rollup.GenerateTeamReport(r.Context(), teamID, weekStart)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *ReportsHandler) TeamActivity(w http.ResponseWriter, r *http.Request) {
	teamID := mux.Vars(r)["teamId"]
	q := r.URL.Query()

	var from, to time.Time
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respond.WriteBadRequest(w, "from must be RFC3339")
			return
		}
		from = t.UTC()
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respond.WriteBadRequest(w, "to must be RFC3339")
			return
		}
		to = t.UTC()
	}

	events, err := h.rollup.TeamActivity(r.Context(), teamID, from, to)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if events == nil {
		events = []*model.ActivityEvent{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"teamId": teamID,
		"events": events,
		"count":  len(events),
	})
}
