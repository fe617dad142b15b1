package cache

import (
	"context"

	"github.com/redis/go-redis/v9"

	"medprep/internal/model"
)

// DemandCache ranks universities by confirmed bookings in a Redis ZSET
type DemandCache interface {
	Increment(ctx context.Context, universities ...string) error
	Top(ctx context.Context, limit int) ([]model.UniversityDemand, error)
	Rank(ctx context.Context, university string) (*model.UniversityDemand, error)
}

type demandCache struct {
	client *redis.Client
}

// NewDemandCache creates a new demand cache
func NewDemandCache(client *redis.Client) DemandCache {
	return &demandCache{
		client: client,
	}
}

func (c *demandCache) key() string {
	return "demand:universities"
}

// Increment adds one booking to each university in a single round trip
func (c *demandCache) Increment(ctx context.Context, universities ...string) error {
	if len(universities) == 0 {
		return nil
	}
	pipe := c.client.TxPipeline()
	for _, u := range universities {
		pipe.ZIncrBy(ctx, c.key(), 1, u)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (c *demandCache) Top(ctx context.Context, limit int) ([]model.UniversityDemand, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.UniversityDemand, len(results))
	for i, z := range results {
		entries[i] = model.UniversityDemand{
			University: z.Member.(string),
			Bookings:   int(z.Score),
			Rank:       i + 1,
		}
	}
	return entries, nil
}

// Rank returns one university's 1-indexed position and booking count, or
// nil, nil if it has no bookings
func (c *demandCache) Rank(ctx context.Context, university string) (*model.UniversityDemand, error) {
	pipe := c.client.Pipeline()
	rankCmd := pipe.ZRevRank(ctx, c.key(), university)
	scoreCmd := pipe.ZScore(ctx, c.key(), university)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, err
	}

	rank, err := rankCmd.Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &model.UniversityDemand{
		University: university,
		Bookings:   int(scoreCmd.Val()),
		Rank:       int(rank) + 1,
	}, nil
}
