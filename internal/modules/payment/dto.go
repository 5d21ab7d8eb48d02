package payment

type ProcessPaymentRequest struct {
	Kind      string  `json:"payment_type" binding:"required,oneof=booking order"`
	BookingID *int64  `json:"booking_id"`
	OrderID   *int64  `json:"order_id"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Method    string  `json:"payment_method" binding:"required,oneof=card cash mobile-money bank-transfer"`

	Description string `json:"description"`
}

type RefundRequest struct {
	// Zero means refund everything still refundable.
	Amount float64 `json:"amount" binding:"min=0"`
	Reason string  `json:"reason" binding:"required"`
}
