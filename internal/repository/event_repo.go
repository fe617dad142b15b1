package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medprep/internal/model"
)

// EventRepo handles MongoDB operations for calendar events
type EventRepo interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	ListByMonth(ctx context.Context, year int, month time.Month) ([]model.Event, error)
	ListFrom(ctx context.Context, fromDate string, limit int64) ([]model.Event, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type eventRepo struct {
	collection *mongo.Collection
}

// NewEventRepo creates a new event repository
func NewEventRepo(db *mongo.Database) EventRepo {
	return &eventRepo{
		collection: db.Collection("events"),
	}
}

// EnsureEventIndexes creates the date index month queries rely on
func EnsureEventIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("events").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}},
	})
	return err
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// ListByMonth returns the month's events ordered by date and start time.
// Dates are stored as YYYY-MM-DD so a string range selects the month.
func (r *eventRepo) ListByMonth(ctx context.Context, year int, month time.Month) ([]model.Event, error) {
	filter := bson.M{"date": bson.M{
		"$gte": fmt.Sprintf("%04d-%02d-01", year, int(month)),
		"$lte": fmt.Sprintf("%04d-%02d-31", year, int(month)),
	}}
	return r.find(ctx, filter, options.Find())
}

// ListFrom returns events on or after fromDate, soonest first
func (r *eventRepo) ListFrom(ctx context.Context, fromDate string, limit int64) ([]model.Event, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return r.find(ctx, bson.M{"date": bson.M{"$gte": fromDate}}, opts)
}

func (r *eventRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]model.Event, error) {
	opts.SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := []model.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Delete reports whether an event was removed
func (r *eventRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
