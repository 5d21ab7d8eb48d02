package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"grandresort/internal/domain"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order and its initial status event in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order, ev *domain.OrderStatusEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		ev.OrderID = o.ID
		return tx.Create(ev).Error
	})
}

// SaveWithEvent persists a status change and its history row atomically.
func (r *OrderRepository) SaveWithEvent(ctx context.Context, o *domain.Order, ev *domain.OrderStatusEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(o).Error; err != nil {
			return err
		}
		ev.OrderID = o.ID
		return tx.Create(ev).Error
	})
}

// Save persists non-status field updates (reviews, notes).
func (r *OrderRepository) Save(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_status_events.id")
		}).
		First(&o, id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_status_events.id")
		}).
		Where("order_number = ?", number).
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID int64, orderType, status string, limit, offset int) ([]domain.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Order{}).Where("user_id = ?", userID)
	if orderType != "" {
		q = q.Where("order_type = ?", orderType)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []domain.Order
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error
	return orders, total, err
}

func (r *OrderRepository) ListAll(ctx context.Context, orderType, status string, day *time.Time, limit, offset int) ([]domain.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Order{})
	if orderType != "" {
		q = q.Where("order_type = ?", orderType)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		q = q.Where("created_at >= ? AND created_at < ?", start, start.Add(24*time.Hour))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []domain.Order
	err := q.Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, total, err
}

// ListActiveKitchen returns orders the kitchen still has to act on.
func (r *OrderRepository) ListActiveKitchen(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Where("status IN ?", []string{
			string(domain.OrderConfirmed),
			string(domain.OrderPreparing),
			string(domain.OrderReady),
		}).
		Order("created_at").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) CountGroupedByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "status")
}

func (r *OrderRepository) CountGroupedByType(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "order_type")
}

func (r *OrderRepository) countGrouped(ctx context.Context, column string) (map[string]int64, error) {
	type row struct {
		Key   string
		Count int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Select(column + " AS key, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Count
	}
	return out, nil
}

// Revenue sums totals of paid orders that were not cancelled or refunded.
func (r *OrderRepository) Revenue(ctx context.Context, from, to time.Time) (float64, error) {
	var total *float64
	q := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Select("SUM(total_amount)").
		Where("payment_status = ?", domain.OrderPaymentPaid).
		Where("status NOT IN ?", []string{string(domain.OrderCancelled), string(domain.OrderRefunded)})
	if !from.IsZero() && !to.IsZero() {
		q = q.Where("created_at BETWEEN ? AND ?", from, to)
	}

	if err := q.Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// AverageValue averages order totals excluding cancelled and refunded orders.
func (r *OrderRepository) AverageValue(ctx context.Context, from, to time.Time) (float64, error) {
	var avg *float64
	q := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Select("AVG(total_amount)").
		Where("status NOT IN ?", []string{string(domain.OrderCancelled), string(domain.OrderRefunded)})
	if !from.IsZero() && !to.IsZero() {
		q = q.Where("created_at BETWEEN ? AND ?", from, to)
	}

	if err := q.Scan(&avg).Error; err != nil {
		return 0, err
	}
	if avg == nil {
		return 0, nil
	}
	return *avg, nil
}
