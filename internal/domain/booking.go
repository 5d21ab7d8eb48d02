package domain

import "time"

type BookingType string

const (
	BookingTypeRoom   BookingType = "room"
	BookingTypeTable  BookingType = "table"
	BookingTypeGarden BookingType = "garden"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked-in"
	BookingCheckedOut BookingStatus = "checked-out"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
	BookingNoShow     BookingStatus = "no-show"
)

// bookingTransitions is the single allow-list for booking status changes.
// All status writes go through the booking service, which consults this
// table, so the history append side effect can never be skipped.
// checked-in is reachable for room bookings only, and completed directly
// from confirmed for table/garden bookings only; the service enforces both
// type restrictions on top of this table.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingConfirmed, BookingCancelled, BookingNoShow},
	BookingConfirmed:  {BookingCheckedIn, BookingCompleted, BookingCancelled, BookingNoShow},
	BookingCheckedIn:  {BookingCheckedOut},
	BookingCheckedOut: {BookingCompleted},
}

func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range bookingTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingCancelled || s == BookingCompleted || s == BookingNoShow
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut,
		BookingCompleted, BookingCancelled, BookingNoShow:
		return true
	default:
		return false
	}
}

type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "pending"
	PaymentDepositPaid       PaymentStatus = "deposit-paid"
	PaymentFullyPaid         PaymentStatus = "fully-paid"
	PaymentPartiallyRefunded PaymentStatus = "partially-refunded"
	PaymentRefunded          PaymentStatus = "refunded"
	PaymentFailed            PaymentStatus = "failed"
)

// Pricing is computed once at creation time and stored with the booking.
// Later rate changes never alter historical bookings.
type Pricing struct {
	Subtotal      float64 `json:"subtotal" gorm:"column:subtotal;check:subtotal >= 0"`
	Tax           float64 `json:"tax" gorm:"column:tax;check:tax >= 0"`
	TaxRate       float64 `json:"tax_rate" gorm:"column:tax_rate"`
	ServiceCharge float64 `json:"service_charge" gorm:"column:service_charge;check:service_charge >= 0"`
	Discount      float64 `json:"discount" gorm:"column:discount;check:discount >= 0"`
	Deposit       float64 `json:"deposit" gorm:"column:deposit;check:deposit >= 0"`
	DepositPaid   bool    `json:"deposit_paid" gorm:"column:deposit_paid"`
	TotalAmount   float64 `json:"total_amount" gorm:"column:total_amount;check:total_amount >= 0"`
	AmountPaid    float64 `json:"amount_paid" gorm:"column:amount_paid;check:amount_paid >= 0"`
}

type RoomBookingDetails struct {
	RoomID         int64     `json:"room_id"`
	CheckInDate    time.Time `json:"check_in_date"`
	CheckOutDate   time.Time `json:"check_out_date"`
	NumberOfGuests int       `json:"number_of_guests"`
	NumberOfRooms  int       `json:"number_of_rooms"`
	RoomType       string    `json:"room_type"`
	Nights         int       `json:"nights"`
}

type TableBookingDetails struct {
	TableID         int64     `json:"table_id"`
	ReservationDate time.Time `json:"reservation_date"`
	ReservationTime string    `json:"reservation_time"`
	DurationHours   int       `json:"duration_hours"`
	NumberOfGuests  int       `json:"number_of_guests"`
	TableLocation   string    `json:"table_location"`
	Occasion        string    `json:"occasion"`
}

type GardenBookingDetails struct {
	GardenID       int64     `json:"garden_id"`
	EventDate      time.Time `json:"event_date"`
	EventStartTime string    `json:"event_start_time"`
	EventEndTime   string    `json:"event_end_time"`
	EventType      string    `json:"event_type"`
	EventName      string    `json:"event_name"`
	ExpectedGuests int       `json:"expected_guests"`
	HoursBooked    int       `json:"hours_booked"`
}

type Review struct {
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingStatusEvent is one row of the append-only booking audit trail.
type BookingStatusEvent struct {
	ID        int64         `json:"id" gorm:"primaryKey"`
	BookingID int64         `json:"booking_id" gorm:"not null;index"`
	Status    BookingStatus `json:"status" gorm:"size:20;not null"`
	Note      string        `json:"note,omitempty" gorm:"type:text"`
	UpdatedBy int64         `json:"updated_by"`
	CreatedAt time.Time     `json:"timestamp" gorm:"autoCreateTime"`
}

func (BookingStatusEvent) TableName() string { return "booking_status_events" }

// Booking is a reservation for exactly one of room, table or garden.
// BookingNumber and BookingType are immutable after creation; exactly one
// of the three detail blocks is populated, matching BookingType.
type Booking struct {
	ID            int64       `json:"id" gorm:"primaryKey"`
	BookingNumber string      `json:"booking_number" gorm:"uniqueIndex;size:32;not null"`
	UserID        int64       `json:"user_id" gorm:"not null;index"`
	BookingType   BookingType `json:"booking_type" gorm:"size:10;not null;index"`

	RoomDetails   *RoomBookingDetails   `json:"room_details,omitempty" gorm:"serializer:json"`
	TableDetails  *TableBookingDetails  `json:"table_details,omitempty" gorm:"serializer:json"`
	GardenDetails *GardenBookingDetails `json:"garden_details,omitempty" gorm:"serializer:json"`

	Pricing Pricing `json:"pricing" gorm:"embedded"`

	Status        BookingStatus        `json:"status" gorm:"size:20;not null;index"`
	StatusHistory []BookingStatusEvent `json:"status_history,omitempty" gorm:"foreignKey:BookingID"`
	PaymentStatus PaymentStatus        `json:"payment_status" gorm:"size:20;not null"`
	PaymentMethod string               `json:"payment_method,omitempty" gorm:"size:20"`

	ActualCheckIn  *time.Time `json:"actual_check_in,omitempty"`
	ActualCheckOut *time.Time `json:"actual_check_out,omitempty"`

	SpecialRequests string `json:"special_requests,omitempty" gorm:"type:text"`
	InternalNotes   string `json:"internal_notes,omitempty" gorm:"type:text"`

	CancellationReason string     `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy        *int64     `json:"cancelled_by,omitempty"`

	HasReview bool    `json:"has_review"`
	Review    *Review `json:"review,omitempty" gorm:"serializer:json"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Booking) TableName() string { return "bookings" }
