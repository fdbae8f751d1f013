package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrowderSoup/monday-dashboard/monday"
)

func board(id, name string, items int) monday.Board {
	page := &monday.ItemsPage{Items: []monday.Item{}}
	for i := 0; i < items; i++ {
		page.Items = append(page.Items, monday.Item{ID: id + "-item"})
	}
	return monday.Board{ID: id, Name: name, ItemsPage: page}
}

func TestBuildTree_NestsSubitemBoards(t *testing.T) {
	boards := []monday.Board{
		board("1", "Project A", 3),
		board("2", "Subitems of Project A", 4),
		board("3", "Project B", 1),
	}

	projects := BuildTree(boards)
	require.Len(t, projects, 2)

	a := projects[0]
	assert.Equal(t, "Project A", a.Name)
	assert.True(t, a.HasSubitems)
	require.Len(t, a.Subitems, 1)
	assert.Equal(t, "2", a.Subitems[0].ID)
	assert.Equal(t, 7, a.TotalItems)

	b := projects[1]
	assert.False(t, b.HasSubitems)
	assert.Empty(t, b.Subitems)
	assert.Equal(t, 1, b.TotalItems)
}

func TestBuildTree_ExactCaseSensitiveMatch(t *testing.T) {
	boards := []monday.Board{
		board("1", "Roadmap", 1),
		board("2", "Subitems of roadmap", 5),
		board("3", "Subitems of Roadmap ", 5),
	}

	projects := BuildTree(boards)
	require.Len(t, projects, 1)
	assert.False(t, projects[0].HasSubitems)
	assert.Equal(t, 1, projects[0].TotalItems)
}

func TestBuildTree_OrphansAreDropped(t *testing.T) {
	boards := []monday.Board{
		board("1", "Project A", 2),
		board("9", "Subitems of Deleted Project", 8),
	}

	projects := BuildTree(boards)
	require.Len(t, projects, 1)
	for _, p := range projects {
		for _, s := range p.Subitems {
			assert.NotEqual(t, "9", s.ID)
		}
	}

	orphans := OrphanSubitemBoards(boards)
	require.Len(t, orphans, 1)
	assert.Equal(t, "9", orphans[0].ID)
}

func TestBuildTree_AttachesEachSubitemBoardOnce(t *testing.T) {
	boards := []monday.Board{
		board("2", "Subitems of Alpha", 2),
		board("1", "Alpha", 1),
		board("3", "Beta", 0),
	}

	projects := BuildTree(boards)
	attached := 0
	for _, p := range projects {
		attached += len(p.Subitems)
	}
	assert.Equal(t, 1, attached)
	assert.Equal(t, 3, projects[0].TotalItems)
}

func TestBuildTree_CountsFetchedItems(t *testing.T) {
	count := 200
	main := monday.Board{ID: "1", Name: "Alpha", ItemsCount: &count, ItemsPage: &monday.ItemsPage{Items: []monday.Item{
		itemWith(t, `[{"id":"d","type":"date","value":"{\"date\":\"2025-01-10\"}","column":{"title":"Start Date"}}]`),
	}}}

	projects := BuildTree([]monday.Board{main})
	require.Len(t, projects, 1)
	p := projects[0]
	assert.Equal(t, 1, p.TotalItems)
	assert.Equal(t, 200, p.ReportedItems)

	ResolveDates(&p, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-01-10", p.StartDate)
	assert.Equal(t, "2025-01-17", p.EndDate, "start + max(7, 2*1) days")
	assert.True(t, p.HasEstimatedDates)
}

func TestFilterByUser(t *testing.T) {
	owned := board("1", "Owned", 0)
	owned.Owners = []monday.Ref{{ID: "u1"}}
	subscribed := board("2", "Subscribed", 0)
	subscribed.Subscribers = []monday.Ref{{ID: "u1"}}
	other := board("3", "Other", 0)
	other.Owners = []monday.Ref{{ID: "u2"}}

	projects := BuildTree([]monday.Board{owned, subscribed, other})

	got := FilterByUser(projects, "u1")
	require.Len(t, got, 2)
	assert.Equal(t, "Owned", got[0].Name)
	assert.Equal(t, "Subscribed", got[1].Name)

	assert.Len(t, FilterByUser(projects, ""), 3)
	assert.Empty(t, FilterByUser(projects, "nobody"))
}
