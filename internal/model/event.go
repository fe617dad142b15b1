package model

import "time"

// EventType categorises a site calendar entry
type EventType string

const (
	EventTypeConference EventType = "conference"
	EventTypeWebinar    EventType = "webinar"
	EventTypeWorkshop   EventType = "workshop"
	EventTypeMockMMI    EventType = "mock_mmi"
)

// Event is a dated entry shown on the events calendar.
// Date is the YYYY-MM-DD key the calendar grid matches on.
type Event struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Type        EventType `json:"type" bson:"type"`
	Date        string    `json:"date" bson:"date"`
	StartTime   string    `json:"startTime,omitempty" bson:"startTime,omitempty"` // HH:MM, local time
	Location    string    `json:"location,omitempty" bson:"location,omitempty"`
	URL         string    `json:"url,omitempty" bson:"url,omitempty"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
