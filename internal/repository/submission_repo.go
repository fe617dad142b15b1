package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medprep/internal/model"
)

// SubmissionRepo records outbound backend calls that failed, for operators
// to follow up by hand.
type SubmissionRepo interface {
	Record(ctx context.Context, s *model.FailedSubmission) error
	List(ctx context.Context, limit int64) ([]model.FailedSubmission, error)
}

type submissionRepo struct {
	collection *mongo.Collection
}

// NewSubmissionRepo creates a new failed-submission repository
func NewSubmissionRepo(db *mongo.Database) SubmissionRepo {
	return &submissionRepo{
		collection: db.Collection("failed_submissions"),
	}
}

func (r *submissionRepo) Record(ctx context.Context, s *model.FailedSubmission) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, s)
	return err
}

// List returns the most recent failures first
func (r *submissionRepo) List(ctx context.Context, limit int64) ([]model.FailedSubmission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	subs := []model.FailedSubmission{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}
