package admin

import (
	"context"
	"time"

	"grandresort/internal/repository"
)

// BookingStats is the slice of the booking repository the dashboard reads.
type BookingStats interface {
	CountGroupedByStatus(ctx context.Context) (map[string]int64, error)
	CountGroupedByType(ctx context.Context) (map[string]int64, error)
	Revenue(ctx context.Context, from, to time.Time) (float64, error)
}

type OrderStats interface {
	CountGroupedByStatus(ctx context.Context) (map[string]int64, error)
	CountGroupedByType(ctx context.Context) (map[string]int64, error)
	Revenue(ctx context.Context, from, to time.Time) (float64, error)
	AverageValue(ctx context.Context, from, to time.Time) (float64, error)
}

type PaymentStats interface {
	Totals(ctx context.Context, from, to time.Time) (repository.PaymentTotals, error)
}
