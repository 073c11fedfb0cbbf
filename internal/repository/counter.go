package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const viewCounterKey = "counter:views"

// CounterRepository is the process-independent page-view counter.
type CounterRepository interface {
	Increment(ctx context.Context) (int64, error)
	CurrentValue(ctx context.Context) (int64, error)
}

type dbCounter struct {
	client *redis.Client
}

func NewCounterRepository(client *redis.Client) CounterRepository {
	return &dbCounter{
		client: client,
	}
}

func (that *dbCounter) Increment(ctx context.Context) (int64, error) {
	value, err := that.client.Incr(ctx, viewCounterKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter: %w", err)
	}

	return value, nil
}

func (that *dbCounter) CurrentValue(ctx context.Context) (int64, error) {
	value, err := that.client.Get(ctx, viewCounterKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get counter: %w", err)
	}

	return value, nil
}
