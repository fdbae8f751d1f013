package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RouterConfig collects everything NewRouter mounts.
type RouterConfig struct {
	Monday         *MondayHandler
	Timeline       *TimelineHandler
	Dashboard      *DashboardHandler
	Static         http.Handler
	AllowedOrigins []string
	Logger         *slog.Logger
}

// NewRouter wires every route and wraps them in request logging, panic
// recovery and CORS.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	m, t, d := cfg.Monday, cfg.Timeline, cfg.Dashboard

	// Page and connection
	r.HandleFunc("/", d.Index).Methods("GET")
	r.HandleFunc("/test-connection", m.TestConnection).Methods("POST")
	r.HandleFunc("/connection-status", m.ConnectionStatus).Methods("GET")

	// Boards and items
	r.HandleFunc("/api/boards", m.Boards).Methods("GET")
	r.HandleFunc("/api/board/{id}", m.Board).Methods("GET")
	r.HandleFunc("/api/create-board", m.CreateBoard).Methods("POST")
	r.HandleFunc("/api/items", m.Items).Methods("GET")
	r.HandleFunc("/api/create-item", m.CreateItem).Methods("POST")
	r.HandleFunc("/api/update-item", m.UpdateItem).Methods("POST")

	// People, activity and stats
	r.HandleFunc("/api/users", m.Users).Methods("GET")
	r.HandleFunc("/api/teams", m.Teams).Methods("GET")
	r.HandleFunc("/api/activity", m.Activity).Methods("GET")
	r.HandleFunc("/api/logs", m.Logs).Methods("GET")
	r.HandleFunc("/api/updates", m.Updates).Methods("GET")
	r.HandleFunc("/api/create-update", m.CreateUpdate).Methods("POST")
	r.HandleFunc("/api/stats", m.Stats).Methods("GET")
	r.HandleFunc("/api/custom-query", m.CustomQuery).Methods("POST")

	// Timeline write-back
	r.HandleFunc("/api/upload-timeline-dates", t.UploadDates).Methods("POST")
	r.HandleFunc("/api/upload-bulk-timeline-dates", t.UploadBulkDates).Methods("POST")
	r.HandleFunc("/api/create-timeline-column", t.CreateTimelineColumn).Methods("POST")
	r.HandleFunc("/api/upload-history", t.History).Methods("GET")

	// Dashboard view model and live updates
	r.HandleFunc("/api/view", d.View).Methods("GET")
	r.HandleFunc("/api/gantt", d.Gantt).Methods("GET")
	r.HandleFunc("/api/ws", d.WebSocket)

	r.HandleFunc("/api/debug", d.Debug).Methods("GET")
	r.HandleFunc("/health", d.Health).Methods("GET")

	if cfg.Static != nil {
		r.PathPrefix("/static/").Handler(cfg.Static)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mw := NewRequestMiddleware(logger)
	r.Use(mw.Logging, mw.Recover)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})

	return c.Handler(r)
}
