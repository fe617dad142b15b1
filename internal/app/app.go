package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medprep/internal/cache"
	"medprep/internal/config"
	"medprep/internal/repository"
)

const pingTimeout = 5 * time.Second

// App bundles the stores the services run on
type App struct {
	Mongo *mongo.Client
	DB    *mongo.Database
	Redis *redis.Client

	Events      repository.EventRepo
	Submissions repository.SubmissionRepo
	Drafts      cache.DraftCache
	Questions   cache.QuestionCache
	References  cache.ReferenceCache
	Demand      cache.DemandCache
}

// Connect dials MongoDB and Redis, checks both respond and builds the
// repositories and caches on top of them.
func Connect(ctx context.Context, cfg *config.Config) (*App, error) {
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr()})
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	db := mongoClient.Database(cfg.MongoDB)
	if err := repository.EnsureEventIndexes(ctx, db); err != nil {
		rdb.Close()
		mongoClient.Disconnect(ctx)
		return nil, err
	}

	return &App{
		Mongo:       mongoClient,
		DB:          db,
		Redis:       rdb,
		Events:      repository.NewEventRepo(db),
		Submissions: repository.NewSubmissionRepo(db),
		Drafts:      cache.NewDraftCache(rdb),
		Questions:   cache.NewQuestionCache(rdb),
		References:  cache.NewReferenceCache(rdb),
		Demand:      cache.NewDemandCache(rdb),
	}, nil
}

// Close releases both connections
func (a *App) Close(ctx context.Context) error {
	return errors.Join(a.Redis.Close(), a.Mongo.Disconnect(ctx))
}
