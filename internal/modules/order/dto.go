package order

import "time"

type OrderItemRequest struct {
	MenuItemID          int64  `json:"menu_item_id" binding:"required"`
	Quantity            int    `json:"quantity" binding:"required,min=1"`
	SpecialInstructions string `json:"special_instructions"`
}

type CreateOrderRequest struct {
	OrderType string             `json:"order_type" binding:"required,oneof=dine-in takeout room-service delivery"`
	Items     []OrderItemRequest `json:"items" binding:"required,min=1,dive"`

	TableNumber     string `json:"table_number"`
	RoomNumber      string `json:"room_number"`
	DeliveryAddress string `json:"delivery_address"`

	ScheduledTime   *time.Time `json:"scheduled_time"`
	SpecialRequests string     `json:"special_requests"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}
