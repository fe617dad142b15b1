package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"medprep/internal/model"
)

// ReferenceCache holds slow-changing backend lists shown on public pages
type ReferenceCache interface {
	SetUniversities(ctx context.Context, universities []model.University) error
	GetUniversities(ctx context.Context) ([]model.University, error)
}

type referenceCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReferenceCache creates a new reference-data cache
func NewReferenceCache(client *redis.Client) ReferenceCache {
	return &referenceCache{
		client: client,
		ttl:    time.Hour,
	}
}

func (c *referenceCache) key(name string) string {
	return fmt.Sprintf("ref:%s", name)
}

func (c *referenceCache) SetUniversities(ctx context.Context, universities []model.University) error {
	data, err := json.Marshal(universities)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key("universities"), data, c.ttl).Err()
}

func (c *referenceCache) GetUniversities(ctx context.Context) ([]model.University, error) {
	data, err := c.client.Get(ctx, c.key("universities")).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var universities []model.University
	if err := json.Unmarshal(data, &universities); err != nil {
		return nil, err
	}
	return universities, nil
}
