package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medprep/internal/backend"
	"medprep/internal/calendar"
	"medprep/internal/model"
	"medprep/internal/repository"
)

// CalendarService builds the events calendar from the events collection
type CalendarService struct {
	events repository.EventRepo
	now    func() time.Time
}

// NewCalendarService creates a new calendar service. now decides what today
// is, in the site's time zone.
func NewCalendarService(events repository.EventRepo, now func() time.Time) *CalendarService {
	return &CalendarService{
		events: events,
		now:    now,
	}
}

// Month builds the grid for year/month; zero values mean the current month.
func (s *CalendarService) Month(ctx context.Context, year int, month time.Month, selected string) (*calendar.Grid, error) {
	today := s.now()
	view := calendar.NewView(today)
	if year != 0 || month != 0 {
		view = calendar.View{Year: year, Month: month}
	}
	if !view.Valid() {
		return nil, backend.ValidationError("invalid month", map[string]string{"month": "must be 1-12"})
	}
	if selected != "" {
		if _, err := calendar.ParseDate(selected); err != nil {
			return nil, err
		}
	}

	events, err := s.events.ListByMonth(ctx, view.Year, view.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	grid := view.Build(events, today, selected)
	return &grid, nil
}

// Upcoming lists events from today onwards
func (s *CalendarService) Upcoming(ctx context.Context, limit int64) ([]model.Event, error) {
	return s.events.ListFrom(ctx, s.now().Format(calendar.DateLayout), limit)
}

// CreateEvent adds an event to the calendar
func (s *CalendarService) CreateEvent(ctx context.Context, e model.Event) (*model.Event, error) {
	e.Title = strings.TrimSpace(e.Title)
	fields := map[string]string{}
	if e.Title == "" {
		fields["title"] = "required"
	}
	switch e.Type {
	case model.EventTypeConference, model.EventTypeWebinar, model.EventTypeWorkshop, model.EventTypeMockMMI:
	default:
		fields["type"] = "must be conference, webinar, workshop or mock_mmi"
	}
	if _, err := calendar.ParseDate(e.Date); err != nil {
		fields["date"] = "must be YYYY-MM-DD"
	}
	if e.StartTime != "" {
		if _, err := time.Parse("15:04", e.StartTime); err != nil {
			fields["startTime"] = "must be HH:MM"
		}
	}
	if len(fields) > 0 {
		return nil, backend.ValidationError("invalid event", fields)
	}

	e.ID = ""
	e.CreatedAt = s.now().UTC()
	if err := s.events.Create(ctx, &e); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &e, nil
}

// Event returns one calendar event
func (s *CalendarService) Event(ctx context.Context, id string) (*model.Event, error) {
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

// DeleteEvent removes an event
func (s *CalendarService) DeleteEvent(ctx context.Context, id string) error {
	ok, err := s.events.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
