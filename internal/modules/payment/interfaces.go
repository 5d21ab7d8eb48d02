package payment

import (
	"context"

	"grandresort/internal/domain"
)

// PaymentRepository persists payments. The *Sync methods write the payment
// and the referenced entity's flips in one transaction so the ledger and the
// booking or order never disagree about money.
type PaymentRepository interface {
	CreateWithBookingSync(ctx context.Context, p *domain.Payment, b *domain.Booking, bev *domain.BookingStatusEvent) error
	CreateWithOrderSync(ctx context.Context, p *domain.Payment, o *domain.Order, oev *domain.OrderStatusEvent) error
	SaveRefundWithBookingSync(ctx context.Context, p *domain.Payment, b *domain.Booking, bev *domain.BookingStatusEvent) error
	SaveRefundWithOrderSync(ctx context.Context, p *domain.Payment, o *domain.Order, oev *domain.OrderStatusEvent) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Payment, int64, error)
	ListAll(ctx context.Context, status, kind string, limit, offset int) ([]domain.Payment, int64, error)
}

type BookingStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type OrderStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
}

// ReferenceGenerator issues unique payment numbers.
type ReferenceGenerator interface {
	Next(prefix string) string
}

// Gateway charges the customer. The stub implementation always succeeds;
// a real processor slots in behind the same interface.
type Gateway interface {
	Charge(ctx context.Context, amount float64, method domain.PaymentMethod) (transactionID string, err error)
}
