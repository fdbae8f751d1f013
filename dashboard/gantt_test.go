package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrowderSoup/monday-dashboard/monday"
)

const percentTolerance = 0.01

func TestBarFor_LinearMapping(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	w := Window{Start: start, End: start.AddDate(0, 0, 180)}
	require.InDelta(t, 180, w.Days(), 1e-9)

	left, width := BarFor(w, DateRange{Start: start.AddDate(0, 0, 10), End: start.AddDate(0, 0, 20)})
	assert.InDelta(t, 5.56, left, percentTolerance)
	assert.InDelta(t, 5.56, width, percentTolerance)
}

func TestBarFor_Clamps(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	w := Window{Start: start, End: start.AddDate(0, 0, 365)}

	_, width := BarFor(w, DateRange{Start: start.AddDate(0, 0, 30), End: start.AddDate(0, 0, 31)})
	assert.Equal(t, minBarPercent, width, "one-day bars are widened to the minimum")

	left, width := BarFor(w, DateRange{Start: start.AddDate(0, 0, -30), End: start.AddDate(0, 0, 60)})
	assert.Equal(t, 0.0, left)
	assert.InDelta(t, w.Percent(start.AddDate(0, 0, 60)), width, 1e-9, "clipped at the window start")

	left, width = BarFor(w, DateRange{Start: start.AddDate(0, 0, 364), End: start.AddDate(0, 0, 365)})
	assert.Equal(t, minBarPercent, width)
	assert.InDelta(t, 100-minBarPercent, left, 1e-9, "short bars at the right edge stay inside the grid")
	assert.LessOrEqual(t, left+width, 100.0+1e-9)
}

func TestDefaultWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

	w := DefaultWindow(now, nil)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), w.End)
	assert.Len(t, w.Months(), 19)
}

func TestDefaultWindow_ExpandsToCoverRanges(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	ranges := []DateRange{
		{Start: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		{Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2027, 2, 10, 0, 0, 0, 0, time.UTC)},
		{},
	}

	w := DefaultWindow(now, ranges)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC), w.End)
}

func TestWindowMonths_CoverWholeWindow(t *testing.T) {
	w := Window{
		Start: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC),
	}

	months := w.Months()
	require.Len(t, months, 4)
	assert.Equal(t, "Jan 2025", months[0].Label)
	assert.Equal(t, "Apr 2025", months[3].Label)
	assert.Equal(t, 0.0, months[0].LeftPercent)

	total := 0.0
	for _, m := range months {
		total += m.WidthPercent
	}
	assert.InDelta(t, 100, total, 1e-9)
}

func TestBuildGantt(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	dated := monday.Board{ID: "1", Name: "Dated", ItemsPage: &monday.ItemsPage{Items: []monday.Item{
		itemWith(t, `[{"id":"tl","type":"timeline","value":"{\"from\":\"2025-06-01\",\"to\":\"2025-07-01\"}","column":{"title":"Timeline"}}]`),
	}}}
	undated := monday.Board{ID: "2", Name: "Undated", ItemsPage: &monday.ItemsPage{Items: []monday.Item{}}}

	g, skipped := BuildGantt(BuildTree([]monday.Board{dated, undated}), now)
	assert.Empty(t, skipped)

	require.Len(t, g.Bars, 1)
	bar := g.Bars[0]
	assert.Equal(t, "1", bar.ProjectID)
	assert.Equal(t, StatusActive, bar.Status)
	assert.Equal(t, "2025-06-01", bar.StartDate)
	assert.Equal(t, "2025-07-01", bar.EndDate)
	assert.InDelta(t, g.Window.Percent(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)), bar.LeftPercent, 1e-9)

	require.Len(t, g.Undated, 1)
	assert.Equal(t, "Undated", g.Undated[0].Name)

	require.NotNil(t, g.TodayPercent)
	assert.Greater(t, *g.TodayPercent, bar.LeftPercent)
}
