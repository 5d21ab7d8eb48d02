package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"grandresort/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts the booking together with its initial status event in one
// transaction, so even the creation write carries an audit-trail row.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking, ev *domain.BookingStatusEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		ev.BookingID = b.ID
		return tx.Create(ev).Error
	})
}

// SaveWithEvent persists a status change and appends the matching history row
// atomically. Every status write goes through here.
func (r *BookingRepository) SaveWithEvent(ctx context.Context, b *domain.Booking, ev *domain.BookingStatusEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(b).Error; err != nil {
			return err
		}
		ev.BookingID = b.ID
		return tx.Create(ev).Error
	})
}

// Save persists non-status field updates (special requests, reviews). Status
// changes must go through SaveWithEvent instead.
func (r *BookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("booking_status_events.id")
		}).
		First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("booking_status_events.id")
		}).
		Where("booking_number = ?", number).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID int64, bookingType, status string) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if bookingType != "" {
		q = q.Where("booking_type = ?", bookingType)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var bookings []domain.Booking
	err := q.Order("created_at DESC").Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) ListAll(ctx context.Context, bookingType, status string, limit, offset int) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{})
	if bookingType != "" {
		q = q.Where("booking_type = ?", bookingType)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []domain.Booking
	err := q.Preload("User").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&bookings).Error
	return bookings, total, err
}

func (r *BookingRepository) CountGroupedByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "status")
}

func (r *BookingRepository) CountGroupedByType(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "booking_type")
}

func (r *BookingRepository) countGrouped(ctx context.Context, column string) (map[string]int64, error) {
	type row struct {
		Key   string
		Count int64
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
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

// Revenue sums totals of fully paid bookings that were not cancelled.
func (r *BookingRepository) Revenue(ctx context.Context, from, to time.Time) (float64, error) {
	var total *float64
	q := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Select("SUM(total_amount)").
		Where("payment_status = ?", domain.PaymentFullyPaid).
		Where("status NOT IN ?", []string{string(domain.BookingCancelled), string(domain.BookingNoShow)})
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
