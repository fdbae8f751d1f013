package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/CrowderSoup/monday-dashboard/dashboard"
	"github.com/CrowderSoup/monday-dashboard/monday"
	"github.com/CrowderSoup/monday-dashboard/services"
)

const (
	boardListLimit     = 100
	boardListItemLimit = 10
	defaultItemLimit   = 25
	maxItemLimit       = 500
	activityBoardLimit = 10
	activityLimit      = 25
	logsLimit          = 100
	updatesLimit       = 25
)

// MondayAPI is the part of *monday.Client the handlers use.
type MondayAPI interface {
	Configured() bool
	Token() string
	Endpoint() string
	APIVersion() string

	Me(ctx context.Context) (*monday.Me, error)
	Boards(ctx context.Context, limit, itemLimit int) ([]monday.Board, error)
	Board(ctx context.Context, id string) (*monday.Board, error)
	CreateBoard(ctx context.Context, name, description, kind string) (*monday.Board, error)
	Items(ctx context.Context, boardID string, limit int) ([]monday.Item, error)
	CreateItem(ctx context.Context, boardID, name, groupID string) (*monday.Item, error)
	UpdateItemName(ctx context.Context, boardID, itemID, name string) (*monday.Item, error)
	UpdateItemColumns(ctx context.Context, boardID, itemID string, values map[string]any) (*monday.Item, error)
	Users(ctx context.Context) ([]monday.User, error)
	Teams(ctx context.Context) ([]monday.Team, error)
	ActivityLogs(ctx context.Context, boardLimit, limit int) ([]monday.BoardActivity, error)
	Updates(ctx context.Context, limit int) ([]monday.Update, error)
	CreateUpdate(ctx context.Context, itemID, body string) (*monday.Update, error)
	Stats(ctx context.Context) (*monday.Stats, error)
	Custom(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error)
	ChangeTimeline(ctx context.Context, boardID, itemID, columnID, from, to string) (*monday.Item, error)
	CreateTimelineColumn(ctx context.Context, boardID, title string) (*monday.Column, error)
}

// MondayHandler proxies the dashboard's calls to the Monday.com API. Each
// request issues its own upstream call; nothing is cached between requests.
type MondayHandler struct {
	api    MondayAPI
	events services.Broadcaster
	now    func() time.Time
}

func NewMondayHandler(api MondayAPI, events services.Broadcaster) *MondayHandler {
	return &MondayHandler{
		api:    api,
		events: events,
		now:    time.Now,
	}
}

func (h *MondayHandler) publish(eventType string, data any) {
	if h.events != nil {
		h.events.Broadcast(eventType, data)
	}
}

// resolveAll fills the inferred dates of every project.
func resolveAll(ctx context.Context, projects []dashboard.Project, now time.Time) {
	var skipped []dashboard.SkippedValue
	for i := range projects {
		skipped = append(skipped, dashboard.ResolveDates(&projects[i], now)...)
	}
	logSkipped(loggerFrom(ctx), skipped)
}

// logSkipped reports column values that could not be decoded. Inference has
// already continued without them.
func logSkipped(logger *slog.Logger, skipped []dashboard.SkippedValue) {
	for _, s := range skipped {
		logger.Warn("skipping malformed column value",
			"item_id", s.ItemID, "column_id", s.ColumnID, "error", s.Err)
	}
}
