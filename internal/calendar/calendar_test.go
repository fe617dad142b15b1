package calendar

import (
	"errors"
	"testing"
	"time"

	"medprep/internal/model"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		month time.Month
		year  int
		want  int
	}{
		{time.January, 2026, 31},
		{time.February, 2026, 28},
		{time.February, 2024, 29},
		{time.February, 1900, 28},
		{time.February, 2000, 29},
		{time.April, 2026, 30},
		{time.December, 2026, 31},
	}
	for _, tt := range tests {
		if got := DaysInMonth(tt.month, tt.year); got != tt.want {
			t.Errorf("DaysInMonth(%v, %d) = %d, want %d", tt.month, tt.year, got, tt.want)
		}
	}
}

func TestFirstWeekday(t *testing.T) {
	tests := []struct {
		month time.Month
		year  int
		want  int
	}{
		{time.October, 2026, 4}, // Thursday
		{time.February, 2026, 0},
		{time.March, 2026, 0},
		{time.January, 2028, 6},
	}
	for _, tt := range tests {
		if got := FirstWeekday(tt.month, tt.year); got != tt.want {
			t.Errorf("FirstWeekday(%v, %d) = %d, want %d", tt.month, tt.year, got, tt.want)
		}
	}
}

func TestNavigateWrapsYear(t *testing.T) {
	dec := View{Year: 2026, Month: time.December}
	if got := dec.Navigate(DirectionNext); got != (View{Year: 2027, Month: time.January}) {
		t.Errorf("next from Dec 2026 = %+v", got)
	}
	jan := View{Year: 2026, Month: time.January}
	if got := jan.Navigate(DirectionPrev); got != (View{Year: 2025, Month: time.December}) {
		t.Errorf("prev from Jan 2026 = %+v", got)
	}
	mid := View{Year: 2026, Month: time.June}
	if got := mid.Navigate(DirectionNext).Navigate(DirectionPrev); got != mid {
		t.Errorf("next then prev = %+v, want %+v", got, mid)
	}
	if got := mid.Navigate("sideways"); got != mid {
		t.Errorf("unknown direction moved view to %+v", got)
	}
}

func TestNewViewStartsAtCurrentMonth(t *testing.T) {
	now := time.Date(2026, time.October, 16, 9, 0, 0, 0, time.UTC)
	if got := NewView(now); got != (View{Year: 2026, Month: time.October}) {
		t.Fatalf("NewView = %+v", got)
	}
}

func TestEventsForDate(t *testing.T) {
	events := []model.Event{
		{ID: "1", Date: "2026-10-05"},
		{ID: "2", Date: "2026-10-05"},
		{ID: "3", Date: "2026-11-05"},
	}
	v := View{Year: 2026, Month: time.October}
	if got := v.EventsForDate(events, 5); len(got) != 2 {
		t.Errorf("Oct 5 events = %d, want 2", len(got))
	}
	if got := v.EventsForDate(events, 6); len(got) != 0 {
		t.Errorf("Oct 6 events = %d, want 0", len(got))
	}
}

func TestBuild(t *testing.T) {
	today := time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC)
	events := []model.Event{
		{ID: "mmi", Date: "2026-10-20", Title: "Mock MMI"},
		{ID: "old", Date: "2026-10-02", Title: "UCAT webinar"},
	}
	v := View{Year: 2026, Month: time.October}
	grid := v.Build(events, today, "2026-10-20")

	if len(grid.Cells) != 31 {
		t.Fatalf("cells = %d, want 31", len(grid.Cells))
	}
	if grid.LeadingBlanks != 4 {
		t.Errorf("leading blanks = %d, want 4", grid.LeadingBlanks)
	}
	if (grid.LeadingBlanks+len(grid.Cells)+grid.TrailingBlanks)%7 != 0 {
		t.Errorf("grid does not fill whole weeks: %d+%d+%d", grid.LeadingBlanks, len(grid.Cells), grid.TrailingBlanks)
	}
	if grid.Next != (View{Year: 2026, Month: time.November}) || grid.Prev != (View{Year: 2026, Month: time.September}) {
		t.Errorf("prev/next = %+v/%+v", grid.Prev, grid.Next)
	}

	cell := func(day int) Cell { return grid.Cells[day-1] }

	if c := cell(16); !c.IsToday || c.IsPast || !c.Selectable {
		t.Errorf("today cell = %+v", c)
	}
	if c := cell(15); !c.IsPast || c.Selectable {
		t.Errorf("yesterday cell = %+v", c)
	}
	if c := cell(2); !c.HasEvents || !c.IsPast || c.Selectable {
		t.Errorf("past event cell = %+v", c)
	}
	if c := cell(20); !c.HasEvents || !c.IsSelected || c.Date != "2026-10-20" {
		t.Errorf("selected event cell = %+v", c)
	}
	if c := cell(21); c.HasEvents || c.IsSelected {
		t.Errorf("plain cell = %+v", c)
	}
}

func TestBuildNoPastCellIsSelectable(t *testing.T) {
	today := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	for _, v := range []View{{2026, time.September}, {2026, time.October}, {2026, time.November}} {
		for _, c := range v.Build(nil, today, "").Cells {
			if c.IsPast && c.Selectable {
				t.Fatalf("past cell %s is selectable", c.Date)
			}
		}
	}
}

func TestSelect(t *testing.T) {
	today := time.Date(2026, time.October, 16, 23, 59, 0, 0, time.UTC)
	tests := []struct {
		date    string
		want    string
		wantErr error
	}{
		{"", "", nil},
		{"2026-10-16", "2026-10-16", nil},
		{"2026-12-01", "2026-12-01", nil},
		{"2026-10-15", "", ErrPastDate},
		{"2026-1-5", "", ErrInvalidDate},
		{"16/10/2026", "", ErrInvalidDate},
		{"2026-02-30", "", ErrInvalidDate},
	}
	for _, tt := range tests {
		got, err := Select(tt.date, today)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Select(%q) error = %v, want %v", tt.date, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("Select(%q) = %q, want %q", tt.date, got, tt.want)
		}
	}
}
