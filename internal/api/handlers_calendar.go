package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/focusflow/focusflow-server/internal/api/respond"
	"github.com/focusflow/focusflow-server/internal/model"
	"github.com/focusflow/focusflow-server/internal/services"
)

type CalendarHandler struct {
	calendar *services.CalendarService
	publish  *services.PublishService
}

func NewCalendarHandler(calendar *services.CalendarService, publish *services.PublishService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar, publish: publish}
}

func (h *CalendarHandler) WeekView(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	weekStart, ok := parseDayVar(r, "weekStart")
	if !ok {
		respond.WriteBadRequest(w, "weekStart must be yyyy-mm-dd")
		return
	}
	out, err := h.calendar.WeekView(r.Context(), userID, weekStart)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *CalendarHandler) DateView(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	date, ok := parseDayVar(r, "date")
	if !ok {
		respond.WriteBadRequest(w, "date must be yyyy-mm-dd")
		return
	}
	out, err := h.calendar.DateView(r.Context(), userID, date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *CalendarHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	entryID := mux.Vars(r)["entryId"]
	var upd model.EventUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	out, err := h.calendar.UpdateEntry(r.Context(), entryID, upd)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *CalendarHandler) PublishEntry(w http.ResponseWriter, r *http.Request) {
	entryID := mux.Vars(r)["entryId"]
	out, err := h.publish.PublishEntry(r.Context(), entryID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *CalendarHandler) PublishWeek(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	weekStart, ok := parseDayVar(r, "weekStart")
	if !ok {
		respond.WriteBadRequest(w, "weekStart must be yyyy-mm-dd")
		return
	}
	out, err := h.publish.PublishWeek(r.Context(), userID, weekStart)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}
