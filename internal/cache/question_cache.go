package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"medprep/internal/model"
)

// QuestionCache holds a snapshot of the approved question bank so similarity
// checks do not hit the backend on every keystroke.
type QuestionCache interface {
	SetApproved(ctx context.Context, questions []model.Question) error
	GetApproved(ctx context.Context) ([]model.Question, error)
	InvalidateApproved(ctx context.Context) error
}

type questionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQuestionCache creates a new question cache
func NewQuestionCache(client *redis.Client) QuestionCache {
	return &questionCache{
		client: client,
		ttl:    5 * time.Minute,
	}
}

func (c *questionCache) key() string {
	return "questions:approved"
}

func (c *questionCache) SetApproved(ctx context.Context, questions []model.Question) error {
	if questions == nil {
		questions = []model.Question{}
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(), data, c.ttl).Err()
}

// GetApproved returns nil, nil on a cache miss. An empty bank is a hit with
// an empty, non-nil slice.
func (c *questionCache) GetApproved(ctx context.Context) ([]model.Question, error) {
	data, err := c.client.Get(ctx, c.key()).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	questions := []model.Question{}
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *questionCache) InvalidateApproved(ctx context.Context) error {
	return c.client.Del(ctx, c.key()).Err()
}
