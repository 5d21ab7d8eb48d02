package domain

import "time"

type OrderType string

const (
	OrderTypeDineIn      OrderType = "dine-in"
	OrderTypeTakeout     OrderType = "takeout"
	OrderTypeRoomService OrderType = "room-service"
	OrderTypeDelivery    OrderType = "delivery"
)

func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeout, OrderTypeRoomService, OrderTypeDelivery:
		return true
	default:
		return false
	}
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderServed    OrderStatus = "served"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
	OrderRefunded  OrderStatus = "refunded"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderServed, OrderDelivered},
	OrderServed:    {OrderDelivered},
	OrderDelivered: {OrderRefunded},
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, t := range orderTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderCancelled || s == OrderRefunded
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderPreparing, OrderReady,
		OrderServed, OrderDelivered, OrderCancelled, OrderRefunded:
		return true
	default:
		return false
	}
}

type OrderPaymentStatus string

const (
	OrderPaymentPending  OrderPaymentStatus = "pending"
	OrderPaymentPartial  OrderPaymentStatus = "partial"
	OrderPaymentPaid     OrderPaymentStatus = "paid"
	OrderPaymentRefunded OrderPaymentStatus = "refunded"
	OrderPaymentFailed   OrderPaymentStatus = "failed"
)

// OrderItem is a snapshot of a menu item at order time. Name and unit price
// are copied in so historical orders stay stable when the menu changes.
type OrderItem struct {
	MenuItemID          int64   `json:"menu_item_id"`
	Name                string  `json:"name"`
	Quantity            int     `json:"quantity"`
	UnitPrice           float64 `json:"unit_price"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
}

// OrderStatusEvent mirrors BookingStatusEvent for the order audit trail.
type OrderStatusEvent struct {
	ID        int64       `json:"id" gorm:"primaryKey"`
	OrderID   int64       `json:"order_id" gorm:"not null;index"`
	Status    OrderStatus `json:"status" gorm:"size:20;not null"`
	Note      string      `json:"note,omitempty" gorm:"type:text"`
	UpdatedBy int64       `json:"updated_by"`
	CreatedAt time.Time   `json:"timestamp" gorm:"autoCreateTime"`
}

func (OrderStatusEvent) TableName() string { return "order_status_events" }

type Order struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	OrderNumber string    `json:"order_number" gorm:"uniqueIndex;size:32;not null"`
	UserID      int64     `json:"user_id" gorm:"not null;index"`
	OrderType   OrderType `json:"order_type" gorm:"size:15;not null;index"`

	Items []OrderItem `json:"items" gorm:"serializer:json"`

	Subtotal      float64 `json:"subtotal" gorm:"check:subtotal >= 0"`
	Tax           float64 `json:"tax" gorm:"check:tax >= 0"`
	TaxRate       float64 `json:"tax_rate"`
	DeliveryFee   float64 `json:"delivery_fee" gorm:"check:delivery_fee >= 0"`
	ServiceCharge float64 `json:"service_charge" gorm:"check:service_charge >= 0"`
	Discount      float64 `json:"discount" gorm:"check:discount >= 0"`
	TotalAmount   float64 `json:"total_amount" gorm:"check:total_amount >= 0"`

	Status        OrderStatus        `json:"status" gorm:"size:20;not null;index"`
	StatusHistory []OrderStatusEvent `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	PaymentStatus OrderPaymentStatus `json:"payment_status" gorm:"size:20;not null"`
	PaymentMethod string             `json:"payment_method,omitempty" gorm:"size:20"`

	TableNumber     string `json:"table_number,omitempty" gorm:"size:10"`
	RoomNumber      string `json:"room_number,omitempty" gorm:"size:10"`
	DeliveryAddress string `json:"delivery_address,omitempty" gorm:"type:text"`

	// Minutes. Estimated at creation from item prep times, actual set at the
	// terminal served/delivered transition.
	EstimatedTime int  `json:"estimated_time,omitempty"`
	ActualTime    *int `json:"actual_time,omitempty"`

	ScheduledTime   *time.Time `json:"scheduled_time,omitempty"`
	SpecialRequests string     `json:"special_requests,omitempty" gorm:"type:text"`
	InternalNotes   string     `json:"internal_notes,omitempty" gorm:"type:text"`

	CancellationReason string     `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy        *int64     `json:"cancelled_by,omitempty"`

	HasReview bool    `json:"has_review"`
	Review    *Review `json:"review,omitempty" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Order) TableName() string { return "orders" }
