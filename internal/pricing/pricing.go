// Package pricing computes the money breakdown for bookings and orders.
// All functions are pure: same inputs, same outputs, no clock access.
package pricing

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"grandresort/internal/domain"
)

const (
	// TaxRatePercent is applied to every subtotal.
	TaxRatePercent = 10.0

	// DeliveryFee is flat per delivery order.
	DeliveryFee = 5.0

	roomDepositRate   = 0.20
	gardenDepositRate = 0.30

	defaultTableDuration = 2
	minTableDuration     = 1
	maxTableDuration     = 6
)

var (
	ErrCheckOutBeforeCheckIn = errors.New("checkout must be after checkin")
	ErrCapacityExceeded      = errors.New("guest count exceeds capacity")
	ErrNegativeAmount        = errors.New("rates and fees must be non-negative")
	ErrInvalidQuantity       = errors.New("quantity must be at least 1")
	ErrInvalidTime           = errors.New("invalid time of day, expected HH:MM")
)

// Breakdown is the full pricing result. Monetary fields are rounded to cents.
type Breakdown struct {
	Subtotal      float64
	Tax           float64
	TaxRate       float64
	ServiceCharge float64
	Discount      float64
	Deposit       float64
	DeliveryFee   float64
	CleaningFee   float64
	TotalAmount   float64

	// Room bookings only.
	Nights int
	// Garden bookings only.
	HoursBooked int
}

type LineItem struct {
	UnitPrice float64
	Quantity  int
}

// RoomBooking prices a stay of one or more rooms. Nights are counted as
// ceil(checkOut-checkIn / 24h) with a minimum of one night, and the deposit
// is 20% of the taxed total.
func RoomBooking(ratePerNight float64, checkIn, checkOut time.Time, roomCount, guestCount, roomCapacity int) (Breakdown, error) {
	if ratePerNight < 0 {
		return Breakdown{}, ErrNegativeAmount
	}
	if !checkOut.After(checkIn) {
		return Breakdown{}, ErrCheckOutBeforeCheckIn
	}
	if guestCount > roomCapacity {
		return Breakdown{}, ErrCapacityExceeded
	}
	if roomCount < 1 {
		roomCount = 1
	}

	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 1 {
		nights = 1
	}

	subtotal := round2(ratePerNight * float64(nights) * float64(roomCount))
	tax := round2(subtotal * TaxRatePercent / 100)
	total := round2(subtotal + tax)

	return Breakdown{
		Subtotal:    subtotal,
		Tax:         tax,
		TaxRate:     TaxRatePercent,
		Deposit:     round2(total * roomDepositRate),
		TotalAmount: total,
		Nights:      nights,
	}, nil
}

// TableBooking prices a table reservation as minimum spend times duration.
// Duration defaults to 2 hours and is clamped to [1,6]. No deposit.
func TableBooking(minimumSpend float64, durationHours, guestCount, tableCapacity int) (Breakdown, error) {
	if minimumSpend < 0 {
		return Breakdown{}, ErrNegativeAmount
	}
	if guestCount > tableCapacity {
		return Breakdown{}, ErrCapacityExceeded
	}

	if durationHours == 0 {
		durationHours = defaultTableDuration
	}
	if durationHours < minTableDuration {
		durationHours = minTableDuration
	}
	if durationHours > maxTableDuration {
		durationHours = maxTableDuration
	}

	subtotal := round2(minimumSpend * float64(durationHours))
	tax := round2(subtotal * TaxRatePercent / 100)

	return Breakdown{
		Subtotal:    subtotal,
		Tax:         tax,
		TaxRate:     TaxRatePercent,
		TotalAmount: round2(subtotal + tax),
	}, nil
}

// GardenBooking prices an event slot. Billable hours are
// max(endHour-startHour, minimumHours) using the hour component only:
// minutes are truncated, so 18:00-22:30 bills as 4 hours. Round-up vs.
// half-hour billing is an open product decision.
func GardenBooking(pricePerHour float64, minimumHours int, startTime, endTime string, cleaningFee float64, guestCount, gardenCapacity int) (Breakdown, error) {
	if pricePerHour < 0 || cleaningFee < 0 {
		return Breakdown{}, ErrNegativeAmount
	}
	if guestCount > gardenCapacity {
		return Breakdown{}, ErrCapacityExceeded
	}

	startHour, err := hourOf(startTime)
	if err != nil {
		return Breakdown{}, err
	}
	endHour, err := hourOf(endTime)
	if err != nil {
		return Breakdown{}, err
	}

	hoursBooked := endHour - startHour
	if hoursBooked < minimumHours {
		hoursBooked = minimumHours
	}

	subtotal := round2(pricePerHour * float64(hoursBooked))
	tax := round2(subtotal * TaxRatePercent / 100)
	total := round2(subtotal + tax + cleaningFee)

	return Breakdown{
		Subtotal:    subtotal,
		Tax:         tax,
		TaxRate:     TaxRatePercent,
		CleaningFee: cleaningFee,
		Deposit:     round2(total * gardenDepositRate),
		TotalAmount: total,
		HoursBooked: hoursBooked,
	}, nil
}

// Order prices a food/beverage order from already-snapshotted line items.
// Delivery orders carry the flat delivery fee.
func Order(items []LineItem, orderType domain.OrderType) (Breakdown, error) {
	var subtotal float64
	for _, it := range items {
		if it.UnitPrice < 0 {
			return Breakdown{}, ErrNegativeAmount
		}
		if it.Quantity < 1 {
			return Breakdown{}, ErrInvalidQuantity
		}
		subtotal += it.UnitPrice * float64(it.Quantity)
	}
	subtotal = round2(subtotal)
	tax := round2(subtotal * TaxRatePercent / 100)

	var deliveryFee float64
	if orderType == domain.OrderTypeDelivery {
		deliveryFee = DeliveryFee
	}

	return Breakdown{
		Subtotal:    subtotal,
		Tax:         tax,
		TaxRate:     TaxRatePercent,
		DeliveryFee: deliveryFee,
		TotalAmount: round2(subtotal + tax + deliveryFee),
	}, nil
}

func hourOf(t string) (int, error) {
	h, _, ok := strings.Cut(t, ":")
	if !ok {
		return 0, ErrInvalidTime
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, ErrInvalidTime
	}
	return hour, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
