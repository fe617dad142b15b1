package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"medprep/internal/booking"
)

// DraftCache handles Redis operations for booking drafts
type DraftCache interface {
	Save(ctx context.Context, d booking.DraftV1) error
	Get(ctx context.Context, id string) (*booking.DraftV1, error)
	Delete(ctx context.Context, id string) error
	// Claim marks the draft as being confirmed. It reports false when
	// another confirmation already holds the claim.
	Claim(ctx context.Context, id string) (bool, error)
	Release(ctx context.Context, id string) error
}

type draftCache struct {
	client   *redis.Client
	ttl      time.Duration
	claimTTL time.Duration
}

// NewDraftCache creates a new draft cache
func NewDraftCache(client *redis.Client) DraftCache {
	return &draftCache{
		client:   client,
		ttl:      24 * time.Hour, // abandoned bookings expire after a day
		claimTTL: 2 * time.Minute,
	}
}

func (c *draftCache) key(id string) string {
	return fmt.Sprintf("booking:draft:%s", id)
}

// Save stores the draft and restarts its expiry
func (c *draftCache) Save(ctx context.Context, d booking.DraftV1) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(d.ID), data, c.ttl).Err()
}

// Get returns nil, nil for unknown or expired drafts
func (c *draftCache) Get(ctx context.Context, id string) (*booking.DraftV1, error) {
	data, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d, err := booking.DecodeDraft(data)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *draftCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *draftCache) claimKey(id string) string {
	return c.key(id) + ":confirming"
}

// Claim uses SETNX so only one caller confirms a draft. The claim expires on
// its own if the holder dies before releasing it.
func (c *draftCache) Claim(ctx context.Context, id string) (bool, error) {
	return c.client.SetNX(ctx, c.claimKey(id), 1, c.claimTTL).Result()
}

func (c *draftCache) Release(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.claimKey(id)).Err()
}
