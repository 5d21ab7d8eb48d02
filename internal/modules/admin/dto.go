package admin

import "grandresort/internal/repository"

type BookingDashboard struct {
	ByStatus map[string]int64 `json:"by_status"`
	ByType   map[string]int64 `json:"by_type"`
	Revenue  float64          `json:"revenue"`
}

type OrderDashboard struct {
	ByStatus     map[string]int64 `json:"by_status"`
	ByType       map[string]int64 `json:"by_type"`
	Revenue      float64          `json:"revenue"`
	AverageValue float64          `json:"average_value"`
}

type Dashboard struct {
	Bookings BookingDashboard         `json:"bookings"`
	Orders   OrderDashboard           `json:"orders"`
	Payments repository.PaymentTotals `json:"payments"`
}
