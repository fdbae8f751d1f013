package handlers

import (
	"context"
	"html/template"
	"net/http"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sourcegraph/conc/pool"

	"github.com/CrowderSoup/monday-dashboard/dashboard"
	"github.com/CrowderSoup/monday-dashboard/monday"
	"github.com/CrowderSoup/monday-dashboard/services"
)

const debugItemLimit = 1

// JournalCounter reports how many uploads were journaled.
type JournalCounter interface {
	Count() (int, error)
}

// DashboardHandler serves the page, its view model and the live event socket.
type DashboardHandler struct {
	api      MondayAPI
	hub      *services.Hub
	journal  JournalCounter
	pages    *template.Template
	started  time.Time
	now      func() time.Time
	upgrader websocket.Upgrader
}

func NewDashboardHandler(api MondayAPI, hub *services.Hub, journal JournalCounter, pages *template.Template) *DashboardHandler {
	return &DashboardHandler{
		api:     api,
		hub:     hub,
		journal: journal,
		pages:   pages,
		started: time.Now(),
		now:     time.Now,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // same origins as the REST API
			},
		},
	}
}

// Index renders the dashboard document.
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Title":      "Monday.com Dashboard",
		"Configured": h.api.Configured(),
		"Token":      monday.InspectToken(h.api.Token()),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.pages.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		loggerFrom(r.Context()).Error("failed to render dashboard", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// fetchBoardsAndUsers issues both fetches at once and waits for both.
func (h *DashboardHandler) fetchBoardsAndUsers(ctx context.Context) ([]monday.Board, []monday.User, error) {
	var (
		boards []monday.Board
		users  []monday.User
	)
	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError().WithFirstError()
	p.Go(func(ctx context.Context) error {
		var err error
		boards, err = h.api.Boards(ctx, boardListLimit, boardListItemLimit)
		return err
	})
	p.Go(func(ctx context.Context) error {
		var err error
		users, err = h.api.Users(ctx)
		return err
	})
	if err := p.Wait(); err != nil {
		return nil, nil, err
	}
	return boards, users, nil
}

// View returns everything the page draws for one navigation state, given as
// ?level=&user=&project=.
func (h *DashboardHandler) View(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	nav, err := dashboard.ParseNavigation(q.Get("level"), q.Get("user"), q.Get("project"))
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	boards, users, err := h.fetchBoardsAndUsers(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	view, err := dashboard.BuildView(nav, boards, users, h.now())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	logSkipped(loggerFrom(r.Context()), view.Skipped)
	writeSuccess(w, map[string]any{"view": view})
}

// Gantt lays out every project, or one user's with ?user=.
func (h *DashboardHandler) Gantt(w http.ResponseWriter, r *http.Request) {
	boards, err := h.api.Boards(r.Context(), boardListLimit, boardListItemLimit)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	projects := dashboard.FilterByUser(dashboard.BuildTree(boards), r.URL.Query().Get("user"))
	gantt, skipped := dashboard.BuildGantt(projects, h.now())
	logSkipped(loggerFrom(r.Context()), skipped)
	writeSuccess(w, map[string]any{"gantt": gantt, "projects": len(projects)})
}

// WebSocket upgrades the connection and registers it with the hub.
func (h *DashboardHandler) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		loggerFrom(r.Context()).Warn("websocket upgrade failed", "error", err)
		return
	}

	client := &services.Client{
		ID:   uuid.NewString(),
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// Health answers without touching Monday.com.
func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]any{
		"status":     "ok",
		"configured": h.api.Configured(),
		"time":       h.now().UTC(),
		"uptime":     time.Since(h.started).Round(time.Second).String(),
	})
}

// Debug reports configuration and how the board list splits into main,
// subitem and orphaned subitem boards. Upstream errors are reported in the
// body rather than failing the request.
func (h *DashboardHandler) Debug(w http.ResponseWriter, r *http.Request) {
	out := map[string]any{
		"api": map[string]any{
			"endpoint":   h.api.Endpoint(),
			"apiVersion": h.api.APIVersion(),
			"configured": h.api.Configured(),
			"token":      monday.InspectToken(h.api.Token()),
		},
		"runtime": map[string]any{
			"goVersion":  runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
			"uptime":     time.Since(h.started).Round(time.Second).String(),
		},
	}
	if h.hub != nil {
		out["websocketClients"] = h.hub.ClientCount()
	}
	if h.journal != nil {
		if n, err := h.journal.Count(); err != nil {
			out["journalError"] = err.Error()
		} else {
			out["journaledUploads"] = n
		}
	}

	boards, err := h.api.Boards(r.Context(), boardListLimit, debugItemLimit)
	if err != nil {
		out["boardsError"] = err.Error()
		writeSuccess(w, out)
		return
	}

	subitemBoards := 0
	for _, b := range boards {
		if dashboard.IsSubitemBoard(b) {
			subitemBoards++
		}
	}
	orphans := dashboard.OrphanSubitemBoards(boards)
	orphanNames := make([]string, 0, len(orphans))
	for _, b := range orphans {
		orphanNames = append(orphanNames, b.Name)
	}
	out["boards"] = map[string]any{
		"total":         len(boards),
		"main":          len(boards) - subitemBoards,
		"subitem":       subitemBoards,
		"orphanSubitem": orphanNames,
	}
	writeSuccess(w, out)
}
