package booking

import "time"

type CreateRoomBookingRequest struct {
	RoomID          int64     `json:"room_id" binding:"required"`
	CheckInDate     time.Time `json:"check_in_date" binding:"required"`
	CheckOutDate    time.Time `json:"check_out_date" binding:"required"`
	NumberOfGuests  int       `json:"number_of_guests" binding:"required,min=1"`
	NumberOfRooms   int       `json:"number_of_rooms"`
	SpecialRequests string    `json:"special_requests"`
}

type CreateTableBookingRequest struct {
	TableID         int64     `json:"table_id" binding:"required"`
	ReservationDate time.Time `json:"reservation_date" binding:"required"`
	ReservationTime string    `json:"reservation_time" binding:"required,hhmm"`
	DurationHours   int       `json:"duration_hours"`
	NumberOfGuests  int       `json:"number_of_guests" binding:"required,min=1"`
	Occasion        string    `json:"occasion"`
	SpecialRequests string    `json:"special_requests"`
}

type CreateGardenBookingRequest struct {
	GardenID        int64     `json:"garden_id" binding:"required"`
	EventDate       time.Time `json:"event_date" binding:"required"`
	EventStartTime  string    `json:"event_start_time" binding:"required,hhmm"`
	EventEndTime    string    `json:"event_end_time" binding:"required,hhmm"`
	EventType       string    `json:"event_type"`
	EventName       string    `json:"event_name"`
	ExpectedGuests  int       `json:"expected_guests" binding:"required,min=1"`
	SpecialRequests string    `json:"special_requests"`
}

type UpdateBookingRequest struct {
	SpecialRequests *string `json:"special_requests"`
	InternalNotes   *string `json:"internal_notes"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}
