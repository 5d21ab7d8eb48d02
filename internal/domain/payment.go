package domain

import "time"

type PaymentKind string

const (
	PaymentKindBooking PaymentKind = "booking"
	PaymentKindOrder   PaymentKind = "order"
)

type PaymentRecordStatus string

const (
	PaymentRecordPending           PaymentRecordStatus = "pending"
	PaymentRecordProcessing        PaymentRecordStatus = "processing"
	PaymentRecordSuccess           PaymentRecordStatus = "success"
	PaymentRecordFailed            PaymentRecordStatus = "failed"
	PaymentRecordCancelled         PaymentRecordStatus = "cancelled"
	PaymentRecordRefunded          PaymentRecordStatus = "refunded"
	PaymentRecordPartiallyRefunded PaymentRecordStatus = "partially-refunded"
)

type PaymentMethod string

const (
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodMobileMoney  PaymentMethod = "mobile-money"
	PaymentMethodBankTransfer PaymentMethod = "bank-transfer"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodCash, PaymentMethodMobileMoney, PaymentMethodBankTransfer:
		return true
	default:
		return false
	}
}

type PaymentStatusEvent struct {
	ID        int64               `json:"id" gorm:"primaryKey"`
	PaymentID int64               `json:"payment_id" gorm:"not null;index"`
	Status    PaymentRecordStatus `json:"status" gorm:"size:20;not null"`
	Note      string              `json:"note,omitempty" gorm:"type:text"`
	CreatedAt time.Time           `json:"timestamp" gorm:"autoCreateTime"`
}

func (PaymentStatusEvent) TableName() string { return "payment_status_events" }

// Payment is a ledger entry referencing exactly one booking or one order.
// Rows are never deleted; refunds accumulate in RefundAmount.
type Payment struct {
	ID            int64       `json:"id" gorm:"primaryKey"`
	PaymentNumber string      `json:"payment_number" gorm:"uniqueIndex;size:32;not null"`
	Kind          PaymentKind `json:"payment_type" gorm:"column:payment_type;size:10;not null"`
	BookingID     *int64      `json:"booking_id,omitempty" gorm:"index"`
	OrderID       *int64      `json:"order_id,omitempty" gorm:"index"`
	UserID        int64       `json:"user_id" gorm:"not null;index"`

	Amount   float64       `json:"amount" gorm:"check:amount >= 0"`
	Currency string        `json:"currency" gorm:"size:3;default:USD"`
	Method   PaymentMethod `json:"payment_method" gorm:"column:payment_method;size:20"`

	Status        PaymentRecordStatus  `json:"status" gorm:"size:20;not null;index"`
	StatusHistory []PaymentStatusEvent `json:"status_history,omitempty" gorm:"foreignKey:PaymentID"`

	RefundAmount float64    `json:"refund_amount" gorm:"check:refund_amount >= 0"`
	RefundReason string     `json:"refund_reason,omitempty" gorm:"type:text"`
	RefundedAt   *time.Time `json:"refunded_at,omitempty"`

	TransactionID string `json:"transaction_id,omitempty" gorm:"size:64"`
	Description   string `json:"description,omitempty" gorm:"type:text"`

	FailureMessage string `json:"failure_message,omitempty" gorm:"type:text"`

	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
