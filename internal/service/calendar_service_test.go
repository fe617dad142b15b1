package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"medprep/internal/backend"
	"medprep/internal/calendar"
	"medprep/internal/model"
)

func newTestCalendar() (*CalendarService, *fakeEventRepo) {
	repo := &fakeEventRepo{events: []model.Event{
		{ID: "e1", Title: "UCAT webinar", Type: model.EventTypeWebinar, Date: "2026-10-20"},
		{ID: "e2", Title: "MMI circuit", Type: model.EventTypeMockMMI, Date: "2026-11-03"},
	}}
	now := func() time.Time { return time.Date(2026, time.October, 16, 12, 0, 0, 0, time.UTC) }
	return NewCalendarService(repo, now), repo
}

func TestMonthDefaultsToCurrent(t *testing.T) {
	svc, _ := newTestCalendar()
	grid, err := svc.Month(context.Background(), 0, 0, "")
	if err != nil {
		t.Fatal(err)
	}
	if grid.Year != 2026 || grid.Month != time.October || len(grid.Cells) != 31 {
		t.Fatalf("grid = %d-%d with %d cells", grid.Year, grid.Month, len(grid.Cells))
	}
	cell := grid.Cells[19]
	if !cell.HasEvents || cell.Events[0].ID != "e1" {
		t.Errorf("20th = %+v", cell)
	}
	if !grid.Cells[15].IsToday || !grid.Cells[14].IsPast || grid.Cells[14].Selectable {
		t.Errorf("today/past flags wrong: %+v %+v", grid.Cells[15], grid.Cells[14])
	}
}

func TestMonthExplicitAndInvalid(t *testing.T) {
	svc, _ := newTestCalendar()
	ctx := context.Background()

	grid, err := svc.Month(ctx, 2026, time.November, "2026-11-03")
	if err != nil {
		t.Fatal(err)
	}
	if !grid.Cells[2].IsSelected || !grid.Cells[2].HasEvents {
		t.Errorf("3rd = %+v", grid.Cells[2])
	}

	if _, err := svc.Month(ctx, 2026, 13, ""); !backend.IsKind(err, backend.KindValidation) {
		t.Errorf("month 13 error = %v", err)
	}
	if _, err := svc.Month(ctx, 2026, time.November, "3 Nov"); !errors.Is(err, calendar.ErrInvalidDate) {
		t.Errorf("bad selected error = %v", err)
	}
}

func TestCreateAndDeleteEvent(t *testing.T) {
	svc, repo := newTestCalendar()
	ctx := context.Background()

	_, err := svc.CreateEvent(ctx, model.Event{Title: "", Type: "party", Date: "tomorrow", StartTime: "7pm"})
	appErr, ok := backend.AsAppError(err)
	if !ok || len(appErr.Fields) != 4 {
		t.Fatalf("validation error = %v", err)
	}

	e, err := svc.CreateEvent(ctx, model.Event{Title: "Interview workshop", Type: model.EventTypeWorkshop, Date: "2026-10-28", StartTime: "18:30"})
	if err != nil {
		t.Fatal(err)
	}
	if e.ID == "" || e.CreatedAt.IsZero() || len(repo.events) != 3 {
		t.Errorf("created = %+v", e)
	}

	upcoming, err := svc.Upcoming(ctx, 0)
	if err != nil || len(upcoming) != 3 {
		t.Errorf("upcoming = %v, %v", upcoming, err)
	}

	got, err := svc.Event(ctx, e.ID)
	if err != nil || got.Title != "Interview workshop" {
		t.Errorf("Event = %+v, %v", got, err)
	}

	if err := svc.DeleteEvent(ctx, e.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteEvent(ctx, e.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v", err)
	}
	if _, err := svc.Event(ctx, e.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Event after delete error = %v", err)
	}
}
