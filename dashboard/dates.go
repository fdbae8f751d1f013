package dashboard

import (
	"strings"
	"time"

	"github.com/CrowderSoup/monday-dashboard/monday"
)

// Status is a project's schedule state relative to today.
type Status string

const (
	StatusNoDates   Status = "no-dates"
	StatusCompleted Status = "completed"
	StatusActive    Status = "active"
	StatusPlanned   Status = "planned"
)

const (
	minEstimateDays = 7
	daysPerItem     = 2
)

const dayLayout = "2006-01-02"

// DateRange is a best-effort schedule. Zero Start or End means unknown.
type DateRange struct {
	Start     time.Time
	End       time.Time
	Estimated bool
}

func (r DateRange) HasStart() bool { return !r.Start.IsZero() }
func (r DateRange) HasEnd() bool   { return !r.End.IsZero() }

// SkippedValue is a date column whose payload could not be decoded.
type SkippedValue struct {
	ItemID   string
	ColumnID string
	Err      error
}

type boundKind int

const (
	boundEither boundKind = iota
	boundStart
	boundEnd
)

func classifyTitle(title string) boundKind {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "start"), strings.Contains(t, "begin"):
		return boundStart
	case strings.Contains(t, "end"), strings.Contains(t, "due"),
		strings.Contains(t, "deadline"), strings.Contains(t, "finish"):
		return boundEnd
	}
	return boundEither
}

// InferDates scans the date-typed column values of items and returns the
// widest start/end it can justify. When only one bound is found the other is
// estimated as max(7, 2*itemCount) days away.
func InferDates(items []monday.Item, itemCount int) (DateRange, []SkippedValue) {
	var r DateRange
	var skipped []SkippedValue

	observe := func(kind boundKind, d time.Time) {
		if kind != boundEnd && (r.Start.IsZero() || d.Before(r.Start)) {
			r.Start = d
		}
		if kind != boundStart && (r.End.IsZero() || d.After(r.End)) {
			r.End = d
		}
	}

	for _, item := range items {
		for _, cv := range item.ColumnValues {
			if !monday.IsDateType(cv.Type) || cv.Empty() {
				continue
			}
			kind := classifyTitle(cv.Title)
			switch v := cv.Data.(type) {
			case monday.DateValue:
				observe(kind, v.Date)
			case monday.TimelineValue:
				observe(kind, v.From)
				observe(kind, v.To)
			case monday.LogValue:
				observe(kind, v.At)
			case monday.UnknownValue:
				if v.Err != nil {
					skipped = append(skipped, SkippedValue{ItemID: item.ID, ColumnID: cv.ID, Err: v.Err})
				}
			}
		}
	}

	return estimateMissing(r, itemCount), skipped
}

func estimateMissing(r DateRange, itemCount int) DateRange {
	days := max(minEstimateDays, daysPerItem*itemCount)
	switch {
	case r.HasStart() && !r.HasEnd():
		r.End = r.Start.AddDate(0, 0, days)
		r.Estimated = true
	case r.HasEnd() && !r.HasStart():
		r.Start = r.End.AddDate(0, 0, -days)
		r.Estimated = true
	}
	return r
}

// StatusAt classifies r against the calendar day of now.
func StatusAt(r DateRange, now time.Time) Status {
	today := truncateDay(now)
	switch {
	case !r.HasStart() && !r.HasEnd():
		return StatusNoDates
	case r.HasEnd() && r.End.Before(today):
		return StatusCompleted
	case r.HasStart() && !r.Start.After(today):
		return StatusActive
	default:
		return StatusPlanned
	}
}

// ResolveDates infers p's schedule from its own items and those of its subitem
// boards and fills the date fields. Undecodable values are returned.
func ResolveDates(p *Project, now time.Time) []SkippedValue {
	items := append([]monday.Item{}, p.Items()...)
	for _, sub := range p.Subitems {
		items = append(items, sub.Items()...)
	}

	r, skipped := InferDates(items, p.TotalItems)
	p.dates = r
	p.Status = StatusAt(r, now)
	p.HasEstimatedDates = r.Estimated
	p.StartDate, p.EndDate = "", ""
	if r.HasStart() {
		p.StartDate = r.Start.Format(dayLayout)
	}
	if r.HasEnd() {
		p.EndDate = r.End.Format(dayLayout)
	}
	return skipped
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
