package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"grandresort/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreateWithBookingSync records the payment and flips the booking's payment
// status (and, when provided, its booking status plus audit row) in a single
// transaction. The two entities must never disagree about whether money moved.
func (r *PaymentRepository) CreateWithBookingSync(ctx context.Context, p *domain.Payment, b *domain.Booking, bev *domain.BookingStatusEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := createPaymentWithEvent(tx, p); err != nil {
			return err
		}
		if err := tx.Save(b).Error; err != nil {
			return err
		}
		if bev != nil {
			bev.BookingID = b.ID
			return tx.Create(bev).Error
		}
		return nil
	})
}

// CreateWithOrderSync is the order-side counterpart of CreateWithBookingSync.
func (r *PaymentRepository) CreateWithOrderSync(ctx context.Context, p *domain.Payment, o *domain.Order, oev *domain.OrderStatusEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := createPaymentWithEvent(tx, p); err != nil {
			return err
		}
		if err := tx.Save(o).Error; err != nil {
			return err
		}
		if oev != nil {
			oev.OrderID = o.ID
			return tx.Create(oev).Error
		}
		return nil
	})
}

// SaveRefundWithBookingSync persists the refunded payment and the booking's
// matching status flips atomically.
func (r *PaymentRepository) SaveRefundWithBookingSync(ctx context.Context, p *domain.Payment, b *domain.Booking, bev *domain.BookingStatusEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := savePaymentWithEvent(tx, p); err != nil {
			return err
		}
		if err := tx.Save(b).Error; err != nil {
			return err
		}
		if bev != nil {
			bev.BookingID = b.ID
			return tx.Create(bev).Error
		}
		return nil
	})
}

// SaveRefundWithOrderSync persists the refunded payment and the order's
// matching status flips atomically.
func (r *PaymentRepository) SaveRefundWithOrderSync(ctx context.Context, p *domain.Payment, o *domain.Order, oev *domain.OrderStatusEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := savePaymentWithEvent(tx, p); err != nil {
			return err
		}
		if err := tx.Save(o).Error; err != nil {
			return err
		}
		if oev != nil {
			oev.OrderID = o.ID
			return tx.Create(oev).Error
		}
		return nil
	})
}

func createPaymentWithEvent(tx *gorm.DB, p *domain.Payment) error {
	if err := tx.Create(p).Error; err != nil {
		return err
	}
	return tx.Create(&domain.PaymentStatusEvent{
		PaymentID: p.ID,
		Status:    p.Status,
		Note:      p.FailureMessage,
	}).Error
}

func savePaymentWithEvent(tx *gorm.DB, p *domain.Payment) error {
	if err := tx.Save(p).Error; err != nil {
		return err
	}
	return tx.Create(&domain.PaymentStatusEvent{
		PaymentID: p.ID,
		Status:    p.Status,
	}).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	err := r.db.WithContext(ctx).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_status_events.id")
		}).
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Payment, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Payment{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []domain.Payment
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&payments).Error
	return payments, total, err
}

func (r *PaymentRepository) ListAll(ctx context.Context, status, kind string, limit, offset int) ([]domain.Payment, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Payment{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if kind != "" {
		q = q.Where("payment_type = ?", kind)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []domain.Payment
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&payments).Error
	return payments, total, err
}

type PaymentTotals struct {
	Gross   float64 `json:"gross"`
	Refunds float64 `json:"refunds"`
	Net     float64 `json:"net"`
}

// Totals aggregates successful payments: gross received, refunded, and net.
func (r *PaymentRepository) Totals(ctx context.Context, from, to time.Time) (PaymentTotals, error) {
	type row struct {
		Gross   *float64
		Refunds *float64
	}

	q := r.db.WithContext(ctx).
		Model(&domain.Payment{}).
		Select("SUM(amount) AS gross, SUM(refund_amount) AS refunds").
		Where("status IN ?", []string{
			string(domain.PaymentRecordSuccess),
			string(domain.PaymentRecordRefunded),
			string(domain.PaymentRecordPartiallyRefunded),
		})
	if !from.IsZero() && !to.IsZero() {
		q = q.Where("created_at BETWEEN ? AND ?", from, to)
	}

	var res row
	if err := q.Scan(&res).Error; err != nil {
		return PaymentTotals{}, err
	}

	var totals PaymentTotals
	if res.Gross != nil {
		totals.Gross = *res.Gross
	}
	if res.Refunds != nil {
		totals.Refunds = *res.Refunds
	}
	totals.Net = totals.Gross - totals.Refunds
	return totals, nil
}
