package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/focusflow/focusflow-server/internal/api/respond"
	"github.com/focusflow/focusflow-server/internal/model"
	"github.com/focusflow/focusflow-server/internal/services"
)

type ActivityHandler struct {
	svc *services.ActivityService
}

func NewActivityHandler(svc *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

func (h *ActivityHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID     string                 `json:"userId"`
		ToolID     *string                `json:"toolId,omitempty"`
		TemplateID *string                `json:"templateId,omitempty"`
		EventTime  *time.Time             `json:"eventTime,omitempty"`
		Minutes    *int                   `json:"minutes,omitempty"`
		Title      *string                `json:"title,omitempty"`
		Status     string                 `json:"status,omitempty"`
		Metadata   map[string]interface{} `json:"metadata,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	ev := &model.ActivityEvent{
		UserID:     in.UserID,
		ToolID:     in.ToolID,
		TemplateID: in.TemplateID,
		Minutes:    in.Minutes,
		Title:      in.Title,
		Status:     in.Status,
		Metadata:   in.Metadata,
	}
	if in.EventTime != nil {
		ev.EventTime = in.EventTime.UTC()
	}
	out, err := h.svc.CreateEvent(r.Context(), ev)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (h *ActivityHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]
	out, err := h.svc.GetEvent(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

func (h *ActivityHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
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
	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respond.WriteBadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	events, err := h.svc.ListEvents(r.Context(), userID, from, to, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if events == nil {
		events = []*model.ActivityEvent{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

func (h *ActivityHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventId"]
	if err := h.svc.DeleteEvent(r.Context(), eventID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
