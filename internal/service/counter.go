package service

import (
	"context"
	"fmt"
)

type CounterService interface {
	Hit(ctx context.Context) (int64, error)
	Current(ctx context.Context) (int64, error)
}

type counterRepo interface {
	Increment(ctx context.Context) (int64, error)
	CurrentValue(ctx context.Context) (int64, error)
}

type counterService struct {
	counterRepo counterRepo
}

func NewCounterService(counterRepo counterRepo) CounterService {
	return &counterService{
		counterRepo: counterRepo,
	}
}

// Hit records one page view and returns the new total.
func (that *counterService) Hit(ctx context.Context) (int64, error) {
	value, err := that.counterRepo.Increment(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count view: %w", err)
	}

	return value, nil
}

func (that *counterService) Current(ctx context.Context) (int64, error) {
	value, err := that.counterRepo.CurrentValue(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read counter: %w", err)
	}

	return value, nil
}
