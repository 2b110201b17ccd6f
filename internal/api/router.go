package api

import (
	"github.com/gorilla/mux"

	"github.com/focusflow/focusflow-server/internal/api/recovery"
	"github.com/focusflow/focusflow-server/internal/services"
	"github.com/focusflow/focusflow-server/internal/store"
)

// NewRouter wires the HTTP surface over the given store.
func NewRouter(st store.Store, checker healthReader) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)

	// Domain services
	activitySvc := services.NewActivityService(st)
	rollupSvc := services.NewRollupService(st, nil)
	publishSvc := services.NewPublishService(st)
	calendarSvc := services.NewCalendarService(st)

	// Handlers
	healthHandler := NewHealthHandler(checker)
	activityHandler := NewActivityHandler(activitySvc)
	reportsHandler := NewReportsHandler(rollupSvc)
	calendarHandler := NewCalendarHandler(calendarSvc, publishSvc)

	// Health endpoint
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	// Activity event endpoints
	router.HandleFunc("/api/activity-events", activityHandler.CreateEvent).Methods("POST")
	router.HandleFunc("/api/activity-events/{eventId}", activityHandler.GetEvent).Methods("GET")
	router.HandleFunc("/api/activity-events/{eventId}", activityHandler.DeleteEvent).Methods("DELETE")
	router.HandleFunc("/api/users/{userId}/activity-events", activityHandler.ListEvents).Methods("GET")

	// Rollup endpoints
	router.HandleFunc("/api/users/{userId}/summaries/{date}", reportsHandler.GetDailySummary).Methods("GET")
	router.HandleFunc("/api/users/{userId}/reports/{weekStart}", reportsHandler.GetWeeklyReport).Methods("GET")
	router.HandleFunc("/api/users/{userId}/reports/{weekStart}", reportsHandler.GenerateWeeklyReport).Methods("POST")
	router.HandleFunc("/api/teams/{teamId}/reports/{weekStart}", reportsHandler.GetTeamReport).Methods("GET")
	router.HandleFunc("/api/teams/{teamId}/reports/{weekStart}", reportsHandler.GenerateTeamReport).Methods("POST")
	router.HandleFunc("/api/teams/{teamId}/activity", reportsHandler.TeamActivity).Methods("GET")

	// Calendar endpoints
	router.HandleFunc("/api/users/{userId}/calendar/week/{weekStart}", calendarHandler.WeekView).Methods("GET")
	router.HandleFunc("/api/users/{userId}/calendar/date/{date}", calendarHandler.DateView).Methods("GET")
	router.HandleFunc("/api/users/{userId}/calendar/week/{weekStart}/publish", calendarHandler.PublishWeek).Methods("POST")
	router.HandleFunc("/api/calendar/{entryId}", calendarHandler.UpdateEntry).Methods("PUT")
	router.HandleFunc("/api/calendar/{entryId}/publish", calendarHandler.PublishEntry).Methods("POST")

	return router
}
