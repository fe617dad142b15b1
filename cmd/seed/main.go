package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medprep/internal/calendar"
	"medprep/internal/config"
	"medprep/internal/logging"
	"medprep/internal/model"
	"medprep/internal/repository"
)

// seedEvents are laid out relative to today so the calendar always has
// something to show after seeding.
var seedEvents = []struct {
	offsetDays int
	event      model.Event
}{
	{3, model.Event{Title: "UCAT strategy webinar", Type: model.EventTypeWebinar, StartTime: "18:00", Location: "Online"}},
	{7, model.Event{Title: "Personal statement workshop", Type: model.EventTypeWorkshop, StartTime: "17:30", Location: "London"}},
	{14, model.Event{Title: "Mock MMI circuit", Type: model.EventTypeMockMMI, StartTime: "10:00", Location: "London",
		Description: "Six stations with tutor feedback after each rotation."}},
	{14, model.Event{Title: "Panel interview clinic", Type: model.EventTypeWorkshop, StartTime: "14:00", Location: "Online"}},
	{30, model.Event{Title: "Medical ethics for interviews", Type: model.EventTypeWebinar, StartTime: "19:00", Location: "Online"}},
	{45, model.Event{Title: "Medical Schools Conference", Type: model.EventTypeConference, StartTime: "09:30", Location: "Birmingham"}},
}

func main() {
	cfg := config.Load()
	if err := logging.Setup(cfg.LogLevel, cfg.LogPretty); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	if err := repository.EnsureEventIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create event indexes")
	}
	events := repository.NewEventRepo(db)

	today := time.Now().In(cfg.Location())
	existing, err := events.ListFrom(ctx, today.Format(calendar.DateLayout), 0)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list existing events")
	}

	pending := pendingEvents(today, existing)
	log.Info().Int("pending", len(pending)).Int("skipped", len(seedEvents)-len(pending)).Msg("seeding events")
	for _, e := range pending {
		if err := events.Create(ctx, &e); err != nil {
			log.Fatal().Err(err).Str("title", e.Title).Msg("failed to insert event")
		}
		log.Info().Str("id", e.ID).Str("date", e.Date).Str("title", e.Title).Msg("seeded event")
	}
}

// pendingEvents dates the seed set relative to today and drops any event whose
// title is already on the calendar for that date, so reruns insert nothing new.
func pendingEvents(today time.Time, existing []model.Event) []model.Event {
	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[e.Date+"|"+e.Title] = true
	}

	var out []model.Event
	for _, s := range seedEvents {
		e := s.event
		e.Date = today.AddDate(0, 0, s.offsetDays).Format(calendar.DateLayout)
		if seen[e.Date+"|"+e.Title] {
			continue
		}
		seen[e.Date+"|"+e.Title] = true
		out = append(out, e)
	}
	return out
}
