package monday

import (
	"strconv"
	"strings"
	"time"
)

// Ref is the id/name pair Monday.com returns for owners, subscribers and similar links.
type Ref struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Group struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

type Item struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	State        string        `json:"state,omitempty"`
	Group        *Group        `json:"group,omitempty"`
	ColumnValues []ColumnValue `json:"column_values,omitempty"`
}

type ItemsPage struct {
	Cursor *string `json:"cursor"`
	Items  []Item  `json:"items"`
}

type Board struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Kind        string     `json:"board_kind,omitempty"`
	State       string     `json:"state,omitempty"`
	ItemsCount  *int       `json:"items_count,omitempty"`
	Workspace   *Ref       `json:"workspace,omitempty"`
	Owners      []Ref      `json:"owners,omitempty"`
	Subscribers []Ref      `json:"subscribers,omitempty"`
	Groups      []Group    `json:"groups,omitempty"`
	Columns     []Column   `json:"columns,omitempty"`
	ItemsPage   *ItemsPage `json:"items_page,omitempty"`
}

// Items returns the fetched page of items, or nil.
func (b Board) Items() []Item {
	if b.ItemsPage == nil {
		return nil
	}
	return b.ItemsPage.Items
}

// ItemCount prefers the API's items_count and falls back to the fetched page size.
func (b Board) ItemCount() int {
	if b.ItemsCount != nil {
		return *b.ItemsCount
	}
	return len(b.Items())
}

// HasMember reports whether userID owns or subscribes to the board.
func (b Board) HasMember(userID string) bool {
	for _, o := range b.Owners {
		if o.ID == userID {
			return true
		}
	}
	for _, s := range b.Subscribers {
		if s.ID == userID {
			return true
		}
	}
	return false
}

type Team struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PictureURL string `json:"picture_url,omitempty"`
	Users      []Ref  `json:"users,omitempty"`
}

type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Enabled bool   `json:"enabled"`
	IsAdmin bool   `json:"is_admin"`
	IsGuest bool   `json:"is_guest"`
	Title   string `json:"title,omitempty"`
	Teams   []Ref  `json:"teams,omitempty"`
}

type ActivityLog struct {
	ID        string `json:"id"`
	Event     string `json:"event"`
	Entity    string `json:"entity"`
	Data      string `json:"data"`
	UserID    string `json:"user_id"`
	CreatedAt string `json:"created_at"`
}

// Time decodes CreatedAt. Activity logs carry a 17 digit count of 100ns
// ticks since the epoch; RFC 3339 strings are accepted too.
func (l ActivityLog) Time() (time.Time, bool) {
	return parseMondayTime(l.CreatedAt)
}

// BoardActivity groups the activity logs of one board.
type BoardActivity struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ActivityLogs []ActivityLog `json:"activity_logs"`
}

type Update struct {
	ID        string `json:"id"`
	Body      string `json:"body"`
	TextBody  string `json:"text_body,omitempty"`
	CreatedAt string `json:"created_at"`
	ItemID    string `json:"item_id,omitempty"`
	Creator   *Ref   `json:"creator,omitempty"`
}

// Time decodes CreatedAt.
func (u Update) Time() (time.Time, bool) {
	return parseMondayTime(u.CreatedAt)
}

// Me is the authenticated user as returned by the `me` query.
type Me struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Account *Ref   `json:"account,omitempty"`
}

// Stats aggregates board, user and team counts.
type Stats struct {
	TotalBoards     int `json:"totalBoards"`
	ActiveBoards    int `json:"activeBoards"`
	SubitemBoards   int `json:"subitemBoards"`
	TotalItems      int `json:"totalItems"`
	TotalUsers      int `json:"totalUsers"`
	ActiveUsers     int `json:"activeUsers"`
	AdminUsers      int `json:"adminUsers"`
	GuestUsers      int `json:"guestUsers"`
	TotalTeams      int `json:"totalTeams"`
	TotalWorkspaces int `json:"totalWorkspaces"`
}

func parseMondayTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if ticks, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(0, ticks*100).UTC(), true
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
