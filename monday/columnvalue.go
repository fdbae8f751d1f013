package monday

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Column types that carry dates.
const (
	TypeDate        = "date"
	TypeTimeline    = "timeline"
	TypeCreationLog = "creation_log"
	TypeLastUpdated = "last_updated"
)

// ColumnData is the decoded payload of a column value. It is one of
// DateValue, TimelineValue, LogValue or UnknownValue.
type ColumnData interface {
	columnData()
}

// DateValue is a single date from a `date` column.
type DateValue struct {
	Date time.Time
}

// TimelineValue is a {from,to} range from a `timeline` column.
type TimelineValue struct {
	From time.Time
	To   time.Time
}

// LogValue is the timestamp of a `creation_log` or `last_updated` column.
type LogValue struct {
	At time.Time
}

// UnknownValue is any other column, an empty payload, or a payload that failed to decode.
// Err is set only for malformed payloads.
type UnknownValue struct {
	Err error
}

func (DateValue) columnData()     {}
func (TimelineValue) columnData() {}
func (LogValue) columnData()      {}
func (UnknownValue) columnData()  {}

// ColumnValue is one typed field of an item. Data is decoded once, when the
// API response is unmarshaled.
type ColumnValue struct {
	ID    string     `json:"id"`
	Title string     `json:"title"`
	Type  string     `json:"type"`
	Text  string     `json:"text"`
	Value *string    `json:"value"`
	Data  ColumnData `json:"-"`
}

// IsDateType reports whether t is one of the date-carrying column types.
func IsDateType(t string) bool {
	switch t {
	case TypeDate, TypeTimeline, TypeCreationLog, TypeLastUpdated:
		return true
	}
	return false
}

func (cv *ColumnValue) UnmarshalJSON(b []byte) error {
	var raw struct {
		ID     string  `json:"id"`
		Title  string  `json:"title"`
		Type   string  `json:"type"`
		Text   *string `json:"text"`
		Value  *string `json:"value"`
		Column *struct {
			Title string `json:"title"`
		} `json:"column"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	cv.ID = raw.ID
	cv.Title = raw.Title
	if cv.Title == "" && raw.Column != nil {
		cv.Title = raw.Column.Title
	}
	cv.Type = raw.Type
	cv.Text = ""
	if raw.Text != nil {
		cv.Text = *raw.Text
	}
	cv.Value = raw.Value
	cv.Data = decodeColumnData(cv.Type, cv.Value, cv.Text)
	return nil
}

// Empty reports whether the raw payload is absent or the "{}" placeholder.
func (cv ColumnValue) Empty() bool {
	if cv.Value == nil {
		return true
	}
	v := strings.TrimSpace(*cv.Value)
	return v == "" || v == "{}" || v == "null"
}

func decodeColumnData(columnType string, value *string, text string) ColumnData {
	if !IsDateType(columnType) || value == nil {
		return UnknownValue{}
	}
	v := strings.TrimSpace(*value)
	if v == "" || v == "{}" || v == "null" {
		return UnknownValue{}
	}

	var payload struct {
		Date      string `json:"date"`
		From      string `json:"from"`
		To        string `json:"to"`
		CreatedAt string `json:"created_at"`
		UpdatedAt string `json:"updated_at"`
	}
	if err := json.Unmarshal([]byte(v), &payload); err != nil {
		return UnknownValue{Err: fmt.Errorf("invalid %s payload %q: %w", columnType, v, err)}
	}

	switch columnType {
	case TypeDate:
		if d, ok := ParseDay(payload.Date); ok {
			return DateValue{Date: d}
		}
	case TypeTimeline:
		from, okFrom := ParseDay(payload.From)
		to, okTo := ParseDay(payload.To)
		switch {
		case okFrom && okTo:
			return TimelineValue{From: from, To: to}
		case okFrom:
			return DateValue{Date: from}
		case okTo:
			return DateValue{Date: to}
		}
	case TypeCreationLog:
		if d, ok := ParseDay(firstNonEmpty(payload.CreatedAt, text)); ok {
			return LogValue{At: d}
		}
	case TypeLastUpdated:
		if d, ok := ParseDay(firstNonEmpty(payload.UpdatedAt, text)); ok {
			return LogValue{At: d}
		}
	}
	return UnknownValue{}
}

var dayLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05",
}

// ParseDay parses the date formats Monday.com uses and truncates the result
// to midnight UTC.
func ParseDay(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
