package monday

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// SubitemsPrefix marks boards Monday.com creates to hold the subitems of another board.
const SubitemsPrefix = "Subitems of "

// Me returns the user the token belongs to.
func (c *Client) Me(ctx context.Context) (*Me, error) {
	var out struct {
		Me *Me `json:"me"`
	}
	if err := c.query(ctx, QueryMe, nil, &out); err != nil {
		return nil, err
	}
	if out.Me == nil {
		return nil, fmt.Errorf("me query returned no user")
	}
	return out.Me, nil
}

// Boards lists up to limit boards with itemLimit items each.
func (c *Client) Boards(ctx context.Context, limit, itemLimit int) ([]Board, error) {
	var out struct {
		Boards []Board `json:"boards"`
	}
	vars := map[string]any{"limit": limit, "itemLimit": itemLimit}
	if err := c.query(ctx, QueryBoards, vars, &out); err != nil {
		return nil, err
	}
	return out.Boards, nil
}

// Board returns the full detail of one board.
func (c *Client) Board(ctx context.Context, id string) (*Board, error) {
	var out struct {
		Boards []Board `json:"boards"`
	}
	if err := c.query(ctx, QueryBoard, map[string]any{"ids": []string{id}}, &out); err != nil {
		return nil, err
	}
	if len(out.Boards) == 0 {
		return nil, fmt.Errorf("board %s not found", id)
	}
	return &out.Boards[0], nil
}

// CreateBoard creates a board. kind defaults to "public".
func (c *Client) CreateBoard(ctx context.Context, name, description, kind string) (*Board, error) {
	if kind == "" {
		kind = "public"
	}
	vars := map[string]any{"name": name, "kind": kind}
	if description != "" {
		vars["description"] = description
	}
	var out struct {
		CreateBoard *Board `json:"create_board"`
	}
	if err := c.query(ctx, MutationCreateBoard, vars, &out); err != nil {
		return nil, err
	}
	return out.CreateBoard, nil
}

// Items returns items of boardID, or of the first boards when boardID is empty.
func (c *Client) Items(ctx context.Context, boardID string, limit int) ([]Item, error) {
	var out struct {
		Boards []Board `json:"boards"`
	}
	var err error
	if boardID != "" {
		err = c.query(ctx, QueryBoardItems, map[string]any{"ids": []string{boardID}, "limit": limit}, &out)
	} else {
		err = c.query(ctx, QueryRecentItems, map[string]any{"boardLimit": 10, "limit": limit}, &out)
	}
	if err != nil {
		return nil, err
	}

	items := []Item{}
	for _, b := range out.Boards {
		items = append(items, b.Items()...)
	}
	return items, nil
}

// CreateItem adds an item to a board, optionally inside groupID.
func (c *Client) CreateItem(ctx context.Context, boardID, name, groupID string) (*Item, error) {
	vars := map[string]any{"boardId": boardID, "itemName": name}
	if groupID != "" {
		vars["groupId"] = groupID
	}
	var out struct {
		CreateItem *Item `json:"create_item"`
	}
	if err := c.query(ctx, MutationCreateItem, vars, &out); err != nil {
		return nil, err
	}
	return out.CreateItem, nil
}

// UpdateItemName renames an item.
func (c *Client) UpdateItemName(ctx context.Context, boardID, itemID, name string) (*Item, error) {
	var out struct {
		Item *Item `json:"change_simple_column_value"`
	}
	vars := map[string]any{"boardId": boardID, "itemId": itemID, "name": name}
	if err := c.query(ctx, MutationUpdateItemName, vars, &out); err != nil {
		return nil, err
	}
	return out.Item, nil
}

// UpdateItemColumns writes several column values at once. Monday.com expects the
// values as a JSON-encoded string.
func (c *Client) UpdateItemColumns(ctx context.Context, boardID, itemID string, values map[string]any) (*Item, error) {
	encoded, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode column values: %w", err)
	}
	var out struct {
		Item *Item `json:"change_multiple_column_values"`
	}
	vars := map[string]any{"boardId": boardID, "itemId": itemID, "columnValues": string(encoded)}
	if err := c.query(ctx, MutationUpdateItemColumns, vars, &out); err != nil {
		return nil, err
	}
	return out.Item, nil
}

func (c *Client) Users(ctx context.Context) ([]User, error) {
	var out struct {
		Users []User `json:"users"`
	}
	if err := c.query(ctx, QueryUsers, nil, &out); err != nil {
		return nil, err
	}
	return out.Users, nil
}

func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	var out struct {
		Teams []Team `json:"teams"`
	}
	if err := c.query(ctx, QueryTeams, nil, &out); err != nil {
		return nil, err
	}
	return out.Teams, nil
}

// ActivityLogs returns up to limit log entries for each of the first boardLimit boards.
func (c *Client) ActivityLogs(ctx context.Context, boardLimit, limit int) ([]BoardActivity, error) {
	var out struct {
		Boards []BoardActivity `json:"boards"`
	}
	vars := map[string]any{"boardLimit": boardLimit, "limit": limit}
	if err := c.query(ctx, QueryActivityLogs, vars, &out); err != nil {
		return nil, err
	}
	return out.Boards, nil
}

func (c *Client) Updates(ctx context.Context, limit int) ([]Update, error) {
	var out struct {
		Updates []Update `json:"updates"`
	}
	if err := c.query(ctx, QueryUpdates, map[string]any{"limit": limit}, &out); err != nil {
		return nil, err
	}
	return out.Updates, nil
}

// CreateUpdate posts an update with an HTML body on an item.
func (c *Client) CreateUpdate(ctx context.Context, itemID, body string) (*Update, error) {
	var out struct {
		CreateUpdate *Update `json:"create_update"`
	}
	vars := map[string]any{"itemId": itemID, "body": body}
	if err := c.query(ctx, MutationCreateUpdate, vars, &out); err != nil {
		return nil, err
	}
	return out.CreateUpdate, nil
}

// Stats counts boards, items, users and teams in one round trip.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var out struct {
		Boards []Board `json:"boards"`
		Users  []User  `json:"users"`
		Teams  []Team  `json:"teams"`
	}
	if err := c.query(ctx, QueryStats, nil, &out); err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalBoards: len(out.Boards),
		TotalUsers:  len(out.Users),
		TotalTeams:  len(out.Teams),
	}
	workspaces := make(map[string]bool)
	for _, b := range out.Boards {
		if b.State == "" || b.State == "active" {
			stats.ActiveBoards++
		}
		if strings.HasPrefix(b.Name, SubitemsPrefix) {
			stats.SubitemBoards++
		}
		stats.TotalItems += b.ItemCount()
		if b.Workspace != nil {
			workspaces[b.Workspace.ID] = true
		}
	}
	stats.TotalWorkspaces = len(workspaces)
	for _, u := range out.Users {
		if u.Enabled {
			stats.ActiveUsers++
		}
		if u.IsAdmin {
			stats.AdminUsers++
		}
		if u.IsGuest {
			stats.GuestUsers++
		}
	}
	return stats, nil
}

// Custom forwards an arbitrary query and returns its data object verbatim.
func (c *Client) Custom(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	return c.Do(ctx, query, variables)
}

// ChangeTimeline writes a {from,to} range into a timeline column. Dates are YYYY-MM-DD.
func (c *Client) ChangeTimeline(ctx context.Context, boardID, itemID, columnID, from, to string) (*Item, error) {
	value, err := json.Marshal(map[string]string{"from": from, "to": to})
	if err != nil {
		return nil, fmt.Errorf("failed to encode timeline value: %w", err)
	}
	var out struct {
		Item *Item `json:"change_column_value"`
	}
	vars := map[string]any{
		"boardId":  boardID,
		"itemId":   itemID,
		"columnId": columnID,
		"value":    string(value),
	}
	if err := c.query(ctx, MutationChangeTimeline, vars, &out); err != nil {
		return nil, err
	}
	return out.Item, nil
}

// CreateTimelineColumn adds a timeline column to a board.
func (c *Client) CreateTimelineColumn(ctx context.Context, boardID, title string) (*Column, error) {
	var out struct {
		Column *Column `json:"create_column"`
	}
	if err := c.query(ctx, MutationCreateTimelineColumn, map[string]any{"boardId": boardID, "title": title}, &out); err != nil {
		return nil, err
	}
	return out.Column, nil
}
