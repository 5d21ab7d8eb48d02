package booking

import (
	"context"

	"grandresort/internal/domain"
)

// BookingRepository defines the persistence operations the service needs.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking, ev *domain.BookingStatusEvent) error
	SaveWithEvent(ctx context.Context, b *domain.Booking, ev *domain.BookingStatusEvent) error
	Save(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByNumber(ctx context.Context, number string) (*domain.Booking, error)
	ListByUser(ctx context.Context, userID int64, bookingType, status string) ([]domain.Booking, error)
	ListAll(ctx context.Context, bookingType, status string, limit, offset int) ([]domain.Booking, int64, error)
}

// RoomProvider looks up rooms at booking-creation time. Rates are read live;
// the computed pricing block is the only snapshot kept.
type RoomProvider interface {
	GetRoom(ctx context.Context, id int64) (*domain.Room, error)
}

type TableProvider interface {
	GetTable(ctx context.Context, id int64) (*domain.Table, error)
}

type GardenProvider interface {
	GetGarden(ctx context.Context, id int64) (*domain.Garden, error)
}

// NotificationSender delivers booking lifecycle notifications. Failures are
// logged, never propagated to the caller.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, userID, bookingID int64, bookingNumber string) error
	NotifyBookingConfirmed(ctx context.Context, userID, bookingID int64, bookingNumber string) error
	NotifyBookingCancelled(ctx context.Context, userID, bookingID int64, bookingNumber, reason string) error
}

// ReferenceGenerator issues unique booking numbers.
type ReferenceGenerator interface {
	Next(prefix string) string
}
