package dashboard

import (
	"encoding/json"
	"time"
)

const (
	monthsBack     = 6
	monthsForward  = 12
	minBarPercent  = 2.0
	hoursPerDay    = 24.0
	monthCellLabel = "Jan 2006"
)

// Window is the visible date span of the chart. End is exclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// Days is the window's length in days.
func (w Window) Days() float64 {
	return w.End.Sub(w.Start).Hours() / hoursPerDay
}

// Percent maps t onto the window: (t - start) / span * 100.
func (w Window) Percent(t time.Time) float64 {
	span := w.Days()
	if span <= 0 {
		return 0
	}
	return t.Sub(w.Start).Hours() / hoursPerDay / span * 100
}

func (w Window) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start string  `json:"start"`
		End   string  `json:"end"`
		Days  float64 `json:"days"`
	}{w.Start.Format(dayLayout), w.End.Format(dayLayout), w.Days()})
}

// DefaultWindow spans six months back to twelve months forward from now,
// month aligned, widened to whole months until every range fits.
func DefaultWindow(now time.Time, ranges []DateRange) Window {
	thisMonth := monthStart(truncateDay(now))
	w := Window{
		Start: thisMonth.AddDate(0, -monthsBack, 0),
		End:   thisMonth.AddDate(0, monthsForward+1, 0),
	}
	for _, r := range ranges {
		if r.HasStart() && r.Start.Before(w.Start) {
			w.Start = monthStart(r.Start)
		}
		if r.HasEnd() && !r.End.Before(w.End) {
			w.End = monthStart(r.End).AddDate(0, 1, 0)
		}
	}
	return w
}

// MonthCell is one header column of the chart.
type MonthCell struct {
	Label        string  `json:"label"`
	Year         int     `json:"year"`
	Month        int     `json:"month"`
	LeftPercent  float64 `json:"leftPercent"`
	WidthPercent float64 `json:"widthPercent"`
}

// Months returns a header cell for every calendar month the window touches.
func (w Window) Months() []MonthCell {
	cells := []MonthCell{}
	for m := monthStart(w.Start); m.Before(w.End); m = m.AddDate(0, 1, 0) {
		from := m
		if from.Before(w.Start) {
			from = w.Start
		}
		to := m.AddDate(0, 1, 0)
		if to.After(w.End) {
			to = w.End
		}
		left := w.Percent(from)
		cells = append(cells, MonthCell{
			Label:        m.Format(monthCellLabel),
			Year:         m.Year(),
			Month:        int(m.Month()),
			LeftPercent:  left,
			WidthPercent: w.Percent(to) - left,
		})
	}
	return cells
}

// Bar is the geometry and label data of one project on the chart.
type Bar struct {
	ProjectID    string  `json:"projectId"`
	Name         string  `json:"name"`
	Status       Status  `json:"status"`
	StartDate    string  `json:"startDate"`
	EndDate      string  `json:"endDate"`
	Estimated    bool    `json:"estimated"`
	ItemCount    int     `json:"itemCount"`
	LeftPercent  float64 `json:"leftPercent"`
	WidthPercent float64 `json:"widthPercent"`
}

// BarFor lays out a single range clipped to the grid. Width is at least 2% so
// short projects stay visible; a widened bar at the right edge moves left.
func BarFor(w Window, r DateRange) (left, width float64) {
	left = max(w.Percent(r.Start), 0)
	right := min(w.Percent(r.End), 100)
	width = right - left
	if width < minBarPercent {
		width = minBarPercent
		left = min(left, 100-minBarPercent)
	}
	return left, width
}

// Undated names a project that has no inferable dates.
type Undated struct {
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
}

// Gantt is the complete chart model.
type Gantt struct {
	Window       Window      `json:"window"`
	Months       []MonthCell `json:"months"`
	Bars         []Bar       `json:"bars"`
	Undated      []Undated   `json:"undated"`
	TodayPercent *float64    `json:"todayPercent,omitempty"`
}

// Layout places every dated project on w. Projects must have been through ResolveDates.
func Layout(w Window, projects []Project, now time.Time) Gantt {
	g := Gantt{
		Window:  w,
		Months:  w.Months(),
		Bars:    []Bar{},
		Undated: []Undated{},
	}
	for _, p := range projects {
		r := p.Dates()
		if !r.HasStart() || !r.HasEnd() {
			g.Undated = append(g.Undated, Undated{ProjectID: p.ID, Name: p.Name})
			continue
		}
		left, width := BarFor(w, r)
		g.Bars = append(g.Bars, Bar{
			ProjectID:    p.ID,
			Name:         p.Name,
			Status:       p.Status,
			StartDate:    p.StartDate,
			EndDate:      p.EndDate,
			Estimated:    p.HasEstimatedDates,
			ItemCount:    p.TotalItems,
			LeftPercent:  left,
			WidthPercent: width,
		})
	}

	today := truncateDay(now)
	if !today.Before(w.Start) && today.Before(w.End) {
		pct := w.Percent(today)
		g.TodayPercent = &pct
	}
	return g
}

// BuildGantt resolves dates for projects and lays them out on the default window.
func BuildGantt(projects []Project, now time.Time) (Gantt, []SkippedValue) {
	var skipped []SkippedValue
	ranges := make([]DateRange, 0, len(projects))
	for i := range projects {
		skipped = append(skipped, ResolveDates(&projects[i], now)...)
		ranges = append(ranges, projects[i].Dates())
	}
	return Layout(DefaultWindow(now, ranges), projects, now), skipped
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
