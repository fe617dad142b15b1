// Package calendar lays out a month as a seven-column day grid and maps
// dated events onto it.
//
// Dates are YYYY-MM-DD strings throughout. The grid carries no state of its
// own; a View names the month being displayed and starts at the current
// month every time one is created.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"medprep/internal/model"
)

// DateLayout is the key format events are matched on.
const DateLayout = "2006-01-02"

var (
	ErrPastDate    = errors.New("date is in the past")
	ErrInvalidDate = errors.New("date must be YYYY-MM-DD")
)

// Direction of month navigation
type Direction string

const (
	DirectionPrev Direction = "prev"
	DirectionNext Direction = "next"
)

// DaysInMonth returns the number of days in month of year.
func DaysInMonth(month time.Month, year int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the 1st of month, Sunday = 0.
func FirstWeekday(month time.Month, year int) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// View is the month currently displayed.
type View struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// NewView returns the view for the month containing now.
func NewView(now time.Time) View {
	return View{Year: now.Year(), Month: now.Month()}
}

// Navigate moves one month back or forward, wrapping the year at the
// December/January boundary. Unknown directions leave the view unchanged.
func (v View) Navigate(dir Direction) View {
	switch dir {
	case DirectionPrev:
		if v.Month == time.January {
			return View{Year: v.Year - 1, Month: time.December}
		}
		return View{Year: v.Year, Month: v.Month - 1}
	case DirectionNext:
		if v.Month == time.December {
			return View{Year: v.Year + 1, Month: time.January}
		}
		return View{Year: v.Year, Month: v.Month + 1}
	}
	return v
}

// Valid reports whether the view names a real month.
func (v View) Valid() bool {
	return v.Month >= time.January && v.Month <= time.December && v.Year > 0
}

// DateKey formats day of the viewed month as YYYY-MM-DD.
func (v View) DateKey(day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", v.Year, int(v.Month), day)
}

// EventsForDate returns the events whose date equals day of the viewed month.
func (v View) EventsForDate(events []model.Event, day int) []model.Event {
	key := v.DateKey(day)
	var out []model.Event
	for _, e := range events {
		if e.Date == key {
			out = append(out, e)
		}
	}
	return out
}

// Cell is one day of the grid
type Cell struct {
	Day        int           `json:"day"`
	Date       string        `json:"date"`
	Events     []model.Event `json:"events"`
	HasEvents  bool          `json:"hasEvents"`
	IsToday    bool          `json:"isToday"`
	IsPast     bool          `json:"isPast"`
	IsSelected bool          `json:"isSelected"`
	Selectable bool          `json:"selectable"`
}

// Grid is a rendered month. LeadingBlanks empty columns precede day 1 so
// that it lands under its weekday; TrailingBlanks pad the last row to seven.
type Grid struct {
	Year           int        `json:"year"`
	Month          time.Month `json:"month"`
	LeadingBlanks  int        `json:"leadingBlanks"`
	TrailingBlanks int        `json:"trailingBlanks"`
	Cells          []Cell     `json:"cells"`
	Prev           View       `json:"prev"`
	Next           View       `json:"next"`
}

// Build lays out the viewed month. today decides which cells are past and
// which one is today; selected is the externally selected date, if any.
func (v View) Build(events []model.Event, today time.Time, selected string) Grid {
	todayKey := today.Format(DateLayout)
	days := DaysInMonth(v.Month, v.Year)
	leading := FirstWeekday(v.Month, v.Year)

	cells := make([]Cell, 0, days)
	for day := 1; day <= days; day++ {
		key := v.DateKey(day)
		dayEvents := v.EventsForDate(events, day)
		// YYYY-MM-DD keys order the same way the dates do.
		past := key < todayKey
		cells = append(cells, Cell{
			Day:        day,
			Date:       key,
			Events:     dayEvents,
			HasEvents:  len(dayEvents) > 0,
			IsToday:    key == todayKey,
			IsPast:     past,
			IsSelected: selected != "" && key == selected,
			Selectable: !past,
		})
	}

	trailing := (7 - (leading+days)%7) % 7
	return Grid{
		Year:           v.Year,
		Month:          v.Month,
		LeadingBlanks:  leading,
		TrailingBlanks: trailing,
		Cells:          cells,
		Prev:           v.Navigate(DirectionPrev),
		Next:           v.Navigate(DirectionNext),
	}
}

// ParseDate parses a YYYY-MM-DD key.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Format(DateLayout) != s {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Select validates a date picked from the grid. An empty date clears the
// selection. Dates before today are never selectable.
func Select(date string, today time.Time) (string, error) {
	if date == "" {
		return "", nil
	}
	if _, err := ParseDate(date); err != nil {
		return "", err
	}
	if date < today.Format(DateLayout) {
		return "", ErrPastDate
	}
	return date, nil
}
