package admin

import (
	"context"
	"time"
)

type Service struct {
	bookings BookingStats
	orders   OrderStats
	payments PaymentStats
}

func NewService(bookings BookingStats, orders OrderStats, payments PaymentStats) *Service {
	return &Service{bookings: bookings, orders: orders, payments: payments}
}

// Dashboard aggregates the admin overview. A zero from/to means all time.
func (s *Service) Dashboard(ctx context.Context, from, to time.Time) (*Dashboard, error) {
	var d Dashboard
	var err error

	if d.Bookings.ByStatus, err = s.bookings.CountGroupedByStatus(ctx); err != nil {
		return nil, err
	}
	if d.Bookings.ByType, err = s.bookings.CountGroupedByType(ctx); err != nil {
		return nil, err
	}
	if d.Bookings.Revenue, err = s.bookings.Revenue(ctx, from, to); err != nil {
		return nil, err
	}

	if d.Orders.ByStatus, err = s.orders.CountGroupedByStatus(ctx); err != nil {
		return nil, err
	}
	if d.Orders.ByType, err = s.orders.CountGroupedByType(ctx); err != nil {
		return nil, err
	}
	if d.Orders.Revenue, err = s.orders.Revenue(ctx, from, to); err != nil {
		return nil, err
	}
	if d.Orders.AverageValue, err = s.orders.AverageValue(ctx, from, to); err != nil {
		return nil, err
	}

	if d.Payments, err = s.payments.Totals(ctx, from, to); err != nil {
		return nil, err
	}

	return &d, nil
}
