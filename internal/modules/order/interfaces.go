package order

import (
	"context"
	"time"

	"grandresort/internal/domain"
)

// OrderRepository defines the persistence operations the service needs.
// Status writes carry the history event so both land in one transaction.
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order, ev *domain.OrderStatusEvent) error
	SaveWithEvent(ctx context.Context, o *domain.Order, ev *domain.OrderStatusEvent) error
	Save(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByNumber(ctx context.Context, number string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID int64, orderType, status string, limit, offset int) ([]domain.Order, int64, error)
	ListAll(ctx context.Context, orderType, status string, day *time.Time, limit, offset int) ([]domain.Order, int64, error)
	ListActiveKitchen(ctx context.Context) ([]domain.Order, error)
}

// MenuProvider looks up menu items at order time for snapshotting.
type MenuProvider interface {
	GetItem(ctx context.Context, id int64) (*domain.MenuItem, error)
}

// FeedPublisher pushes order events to connected kitchen screens.
type FeedPublisher interface {
	Publish(event FeedEvent)
}

// ReferenceGenerator issues unique order numbers.
type ReferenceGenerator interface {
	Next(prefix string) string
}
