package booking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"grandresort/internal/domain"
	"grandresort/internal/pricing"
	"grandresort/internal/pkg/refnum"
)

type Service struct {
	bookings BookingRepository
	rooms    RoomProvider
	tables   TableProvider
	gardens  GardenProvider
	notifs   NotificationSender
	refs     ReferenceGenerator
	now      func() time.Time
}

func NewService(
	bookings BookingRepository,
	rooms RoomProvider,
	tables TableProvider,
	gardens GardenProvider,
	notifs NotificationSender,
	refs ReferenceGenerator,
) *Service {
	return &Service{
		bookings: bookings,
		rooms:    rooms,
		tables:   tables,
		gardens:  gardens,
		notifs:   notifs,
		refs:     refs,
		now:      time.Now,
	}
}

func (s *Service) CreateRoomBooking(ctx context.Context, userID int64, req CreateRoomBookingRequest) (*domain.Booking, error) {
	room, err := s.rooms.GetRoom(ctx, req.RoomID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	if !room.IsAvailable || !room.IsActive {
		return nil, ErrNotAvailable
	}

	p, err := pricing.RoomBooking(room.PricePerNight, req.CheckInDate, req.CheckOutDate,
		req.NumberOfRooms, req.NumberOfGuests, room.Capacity)
	if err != nil {
		return nil, ErrValidation
	}

	roomCount := req.NumberOfRooms
	if roomCount < 1 {
		roomCount = 1
	}

	b := &domain.Booking{
		UserID:      userID,
		BookingType: domain.BookingTypeRoom,
		RoomDetails: &domain.RoomBookingDetails{
			RoomID:         room.ID,
			CheckInDate:    req.CheckInDate,
			CheckOutDate:   req.CheckOutDate,
			NumberOfGuests: req.NumberOfGuests,
			NumberOfRooms:  roomCount,
			RoomType:       room.Type,
			Nights:         p.Nights,
		},
		SpecialRequests: req.SpecialRequests,
	}

	return s.create(ctx, b, p)
}

func (s *Service) CreateTableBooking(ctx context.Context, userID int64, req CreateTableBookingRequest) (*domain.Booking, error) {
	table, err := s.tables.GetTable(ctx, req.TableID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	if !table.IsAvailable || !table.IsActive {
		return nil, ErrNotAvailable
	}

	p, err := pricing.TableBooking(table.MinimumSpend, req.DurationHours, req.NumberOfGuests, table.Capacity)
	if err != nil {
		return nil, ErrValidation
	}

	duration := req.DurationHours
	if duration == 0 {
		duration = 2
	}
	if duration < 1 {
		duration = 1
	}
	if duration > 6 {
		duration = 6
	}

	b := &domain.Booking{
		UserID:      userID,
		BookingType: domain.BookingTypeTable,
		TableDetails: &domain.TableBookingDetails{
			TableID:         table.ID,
			ReservationDate: req.ReservationDate,
			ReservationTime: req.ReservationTime,
			DurationHours:   duration,
			NumberOfGuests:  req.NumberOfGuests,
			TableLocation:   table.Location,
			Occasion:        req.Occasion,
		},
		SpecialRequests: req.SpecialRequests,
	}

	return s.create(ctx, b, p)
}

func (s *Service) CreateGardenBooking(ctx context.Context, userID int64, req CreateGardenBookingRequest) (*domain.Booking, error) {
	garden, err := s.gardens.GetGarden(ctx, req.GardenID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	if !garden.IsAvailable || !garden.IsActive {
		return nil, ErrNotAvailable
	}

	p, err := pricing.GardenBooking(garden.PricePerHour, garden.MinimumHours,
		req.EventStartTime, req.EventEndTime, garden.CleaningFee,
		req.ExpectedGuests, garden.Capacity)
	if err != nil {
		return nil, ErrValidation
	}

	b := &domain.Booking{
		UserID:      userID,
		BookingType: domain.BookingTypeGarden,
		GardenDetails: &domain.GardenBookingDetails{
			GardenID:       garden.ID,
			EventDate:      req.EventDate,
			EventStartTime: req.EventStartTime,
			EventEndTime:   req.EventEndTime,
			EventType:      req.EventType,
			EventName:      req.EventName,
			ExpectedGuests: req.ExpectedGuests,
			HoursBooked:    p.HoursBooked,
		},
		SpecialRequests: req.SpecialRequests,
	}

	return s.create(ctx, b, p)
}

// create finishes a booking of any kind: pricing block, reference number,
// initial pending status plus its history row, and the created notification.
func (s *Service) create(ctx context.Context, b *domain.Booking, p pricing.Breakdown) (*domain.Booking, error) {
	b.Pricing = domain.Pricing{
		Subtotal:    p.Subtotal,
		Tax:         p.Tax,
		TaxRate:     p.TaxRate,
		Deposit:     p.Deposit,
		TotalAmount: p.TotalAmount,
	}
	b.Status = domain.BookingPending
	b.PaymentStatus = domain.PaymentPending
	b.BookingNumber = s.refs.Next(refnum.PrefixBooking)

	ev := &domain.BookingStatusEvent{
		Status:    domain.BookingPending,
		Note:      "Booking created",
		UpdatedBy: b.UserID,
	}

	err := s.bookings.Create(ctx, b, ev)
	if isUniqueViolation(err) {
		// Reference collision. One retry with a fresh number.
		b.BookingNumber = s.refs.Next(refnum.PrefixBooking)
		err = s.bookings.Create(ctx, b, ev)
	}
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCreated(ctx, b.UserID, b.ID, b.BookingNumber)
	}

	return b, nil
}

func (s *Service) GetByID(ctx context.Context, bookingID, actorID int64, actorRole string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	if b.UserID != actorID && !isStaff(actorRole) {
		return nil, ErrForbidden
	}
	return b, nil
}

// GetByNumber resolves a booking from its human-readable reference, for
// guests quoting a confirmation number at the desk. Same ownership rule
// as GetByID.
func (s *Service) GetByNumber(ctx context.Context, number string, actorID int64, actorRole string) (*domain.Booking, error) {
	b, err := s.bookings.GetByNumber(ctx, number)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	if b.UserID != actorID && !isStaff(actorRole) {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64, bookingType, status string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID, bookingType, status)
}

func (s *Service) ListAll(ctx context.Context, bookingType, status string, limit, offset int) ([]domain.Booking, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.bookings.ListAll(ctx, bookingType, status, limit, offset)
}

// Update changes bounded fields while the booking is still editable.
func (s *Service) Update(ctx context.Context, bookingID, actorID int64, actorRole string, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	if b.UserID != actorID && !isStaff(actorRole) {
		return nil, ErrForbidden
	}
	if b.Status != domain.BookingPending && b.Status != domain.BookingConfirmed {
		return nil, ErrNotEditable
	}

	if req.SpecialRequests != nil {
		b.SpecialRequests = *req.SpecialRequests
	}
	if req.InternalNotes != nil {
		if !isStaff(actorRole) {
			return nil, ErrForbidden
		}
		b.InternalNotes = *req.InternalNotes
	}

	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// TransitionStatus is the single entry point for booking status changes.
func (s *Service) TransitionStatus(ctx context.Context, bookingID int64, target domain.BookingStatus, actorID int64, actorRole, note string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	return s.transition(ctx, b, target, actorID, actorRole, note)
}

func (s *Service) transition(ctx context.Context, b *domain.Booking, target domain.BookingStatus, actorID int64, actorRole, note string) (*domain.Booking, error) {
	if !target.IsValid() {
		return nil, ErrValidation
	}
	if !b.Status.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}

	switch target {
	case domain.BookingCheckedIn, domain.BookingCheckedOut:
		if b.BookingType != domain.BookingTypeRoom {
			return nil, ErrInvalidTransition
		}
	case domain.BookingCompleted:
		// Rooms complete after check-out; table/garden straight from confirmed.
		if b.BookingType == domain.BookingTypeRoom && b.Status != domain.BookingCheckedOut {
			return nil, ErrInvalidTransition
		}
	case domain.BookingNoShow:
		if actorRole != string(domain.RoleAdmin) {
			return nil, ErrForbidden
		}
		// Missed reservations only; rooms that never check in are
		// cancelled or completed by staff, not marked no-show.
		if b.BookingType == domain.BookingTypeRoom {
			return nil, ErrInvalidTransition
		}
	}

	now := s.now()
	b.Status = target

	switch target {
	case domain.BookingCheckedIn:
		b.ActualCheckIn = &now
	case domain.BookingCheckedOut:
		b.ActualCheckOut = &now
	case domain.BookingCancelled:
		if b.CancellationReason == "" {
			b.CancellationReason = note
		}
		b.CancelledAt = &now
		b.CancelledBy = &actorID
	}

	ev := &domain.BookingStatusEvent{
		Status:    target,
		Note:      note,
		UpdatedBy: actorID,
	}
	if err := s.bookings.SaveWithEvent(ctx, b, ev); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		switch target {
		case domain.BookingConfirmed:
			_ = s.notifs.NotifyBookingConfirmed(ctx, b.UserID, b.ID, b.BookingNumber)
		case domain.BookingCancelled:
			_ = s.notifs.NotifyBookingCancelled(ctx, b.UserID, b.ID, b.BookingNumber, b.CancellationReason)
		}
	}

	return b, nil
}

// CheckIn moves a confirmed room booking to checked-in.
func (s *Service) CheckIn(ctx context.Context, bookingID, actorID int64, actorRole string) (*domain.Booking, error) {
	return s.TransitionStatus(ctx, bookingID, domain.BookingCheckedIn, actorID, actorRole, "Guest checked in")
}

// CheckOut moves a checked-in room booking to checked-out.
func (s *Service) CheckOut(ctx context.Context, bookingID, actorID int64, actorRole string) (*domain.Booking, error) {
	return s.TransitionStatus(ctx, bookingID, domain.BookingCheckedOut, actorID, actorRole, "Guest checked out")
}

// Cancel is the customer-facing cancellation: owner or staff, while the
// booking is still pending or confirmed.
func (s *Service) Cancel(ctx context.Context, bookingID, actorID int64, actorRole, reason string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	if b.UserID != actorID && !isStaff(actorRole) {
		return nil, ErrForbidden
	}

	if reason == "" {
		reason = "Customer cancelled"
	}
	b.CancellationReason = reason

	return s.transition(ctx, b, domain.BookingCancelled, actorID, actorRole, reason)
}

// AddReview attaches the one allowed review once the booking is consumed.
func (s *Service) AddReview(ctx context.Context, bookingID, actorID int64, rating int, comment string) (*domain.Booking, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	if b.UserID != actorID {
		return nil, ErrForbidden
	}
	if b.HasReview {
		return nil, ErrAlreadyReviewed
	}
	if b.Status != domain.BookingCompleted && b.Status != domain.BookingCheckedOut {
		return nil, ErrNotEligible
	}

	b.Review = &domain.Review{
		Rating:    rating,
		Comment:   comment,
		CreatedAt: s.now(),
	}
	b.HasReview = true

	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) mapLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func isStaff(role string) bool {
	return role == string(domain.RoleStaff) || role == string(domain.RoleAdmin)
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
