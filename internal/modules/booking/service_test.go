package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"grandresort/internal/domain"
)

// Mock repositories

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking, ev *domain.BookingStatusEvent) error {
	args := m.Called(ctx, b, ev)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) SaveWithEvent(ctx context.Context, b *domain.Booking, ev *domain.BookingStatusEvent) error {
	args := m.Called(ctx, b, ev)
	return args.Error(0)
}

func (m *MockBookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByNumber(ctx context.Context, number string) (*domain.Booking, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID int64, bookingType, status string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID, bookingType, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListAll(ctx context.Context, bookingType, status string, limit, offset int) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, bookingType, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

type MockRoomProvider struct {
	mock.Mock
}

func (m *MockRoomProvider) GetRoom(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

type MockTableProvider struct {
	mock.Mock
}

func (m *MockTableProvider) GetTable(ctx context.Context, id int64) (*domain.Table, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Table), args.Error(1)
}

type MockGardenProvider struct {
	mock.Mock
}

func (m *MockGardenProvider) GetGarden(ctx context.Context, id int64) (*domain.Garden, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Garden), args.Error(1)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) NotifyBookingCreated(ctx context.Context, userID, bookingID int64, bookingNumber string) error {
	args := m.Called(ctx, userID, bookingID, bookingNumber)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingConfirmed(ctx context.Context, userID, bookingID int64, bookingNumber string) error {
	args := m.Called(ctx, userID, bookingID, bookingNumber)
	return args.Error(0)
}

func (m *MockNotificationSender) NotifyBookingCancelled(ctx context.Context, userID, bookingID int64, bookingNumber, reason string) error {
	args := m.Called(ctx, userID, bookingID, bookingNumber, reason)
	return args.Error(0)
}

type stubRefs struct{}

func (stubRefs) Next(prefix string) string { return prefix + "-1756720000000-TEST" }

func newTestService(bookings *MockBookingRepository, rooms *MockRoomProvider, tables *MockTableProvider, gardens *MockGardenProvider, notifs *MockNotificationSender) *Service {
	var sender NotificationSender
	if notifs != nil {
		sender = notifs
	}
	svc := NewService(bookings, rooms, tables, gardens, sender, stubRefs{})
	svc.now = func() time.Time { return time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateRoomBooking_Success(t *testing.T) {
	bookings := new(MockBookingRepository)
	rooms := new(MockRoomProvider)
	notifs := new(MockNotificationSender)

	rooms.On("GetRoom", mock.Anything, int64(10)).Return(&domain.Room{
		ID: 10, Capacity: 4, PricePerNight: 100.0, Type: "deluxe",
		IsAvailable: true, IsActive: true,
	}, nil)
	bookings.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	notifs.On("NotifyBookingCreated", mock.Anything, int64(7), int64(999), mock.Anything).Return(nil)

	svc := newTestService(bookings, rooms, nil, nil, notifs)

	checkIn := time.Date(2026, 7, 1, 14, 0, 0, 0, time.UTC)
	b, err := svc.CreateRoomBooking(context.Background(), 7, CreateRoomBookingRequest{
		RoomID:         10,
		CheckInDate:    checkIn,
		CheckOutDate:   checkIn.AddDate(0, 0, 3),
		NumberOfGuests: 2,
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingTypeRoom, b.BookingType)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, "BK-1756720000000-TEST", b.BookingNumber)
	assert.Equal(t, 300.0, b.Pricing.Subtotal)
	assert.Equal(t, 30.0, b.Pricing.Tax)
	assert.Equal(t, 330.0, b.Pricing.TotalAmount)
	assert.Equal(t, 66.0, b.Pricing.Deposit)
	assert.NotNil(t, b.RoomDetails)
	assert.Equal(t, 3, b.RoomDetails.Nights)
	assert.Nil(t, b.TableDetails)
	assert.Nil(t, b.GardenDetails)

	// creation appends exactly one pending history row
	ev := bookings.Calls[0].Arguments.Get(2).(*domain.BookingStatusEvent)
	assert.Equal(t, domain.BookingPending, ev.Status)
	notifs.AssertCalled(t, "NotifyBookingCreated", mock.Anything, int64(7), int64(999), mock.Anything)
}

func TestCreateRoomBooking_GuestsOverCapacity(t *testing.T) {
	bookings := new(MockBookingRepository)
	rooms := new(MockRoomProvider)

	rooms.On("GetRoom", mock.Anything, int64(10)).Return(&domain.Room{
		ID: 10, Capacity: 2, PricePerNight: 100.0, IsAvailable: true, IsActive: true,
	}, nil)

	svc := newTestService(bookings, rooms, nil, nil, nil)

	checkIn := time.Date(2026, 7, 1, 14, 0, 0, 0, time.UTC)
	_, err := svc.CreateRoomBooking(context.Background(), 7, CreateRoomBookingRequest{
		RoomID:         10,
		CheckInDate:    checkIn,
		CheckOutDate:   checkIn.AddDate(0, 0, 1),
		NumberOfGuests: 5,
	})

	assert.ErrorIs(t, err, ErrValidation)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateRoomBooking_RoomUnavailable(t *testing.T) {
	bookings := new(MockBookingRepository)
	rooms := new(MockRoomProvider)

	rooms.On("GetRoom", mock.Anything, int64(10)).Return(&domain.Room{
		ID: 10, Capacity: 2, PricePerNight: 100.0, IsAvailable: false, IsActive: true,
	}, nil)

	svc := newTestService(bookings, rooms, nil, nil, nil)

	checkIn := time.Date(2026, 7, 1, 14, 0, 0, 0, time.UTC)
	_, err := svc.CreateRoomBooking(context.Background(), 7, CreateRoomBookingRequest{
		RoomID:         10,
		CheckInDate:    checkIn,
		CheckOutDate:   checkIn.AddDate(0, 0, 1),
		NumberOfGuests: 2,
	})

	assert.ErrorIs(t, err, ErrNotAvailable)
}

func TestCreateTableBooking_Success(t *testing.T) {
	bookings := new(MockBookingRepository)
	tables := new(MockTableProvider)

	tables.On("GetTable", mock.Anything, int64(3)).Return(&domain.Table{
		ID: 3, Capacity: 6, MinimumSpend: 20.0, Location: "terrace",
		IsAvailable: true, IsActive: true,
	}, nil)
	bookings.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(bookings, nil, tables, nil, nil)

	b, err := svc.CreateTableBooking(context.Background(), 7, CreateTableBookingRequest{
		TableID:         3,
		ReservationDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		ReservationTime: "19:00",
		DurationHours:   3,
		NumberOfGuests:  4,
	})

	assert.NoError(t, err)
	assert.Equal(t, 60.0, b.Pricing.Subtotal)
	assert.Equal(t, 66.0, b.Pricing.TotalAmount)
	assert.Equal(t, 0.0, b.Pricing.Deposit)
	assert.NotNil(t, b.TableDetails)
	assert.Equal(t, "terrace", b.TableDetails.TableLocation)
}

func TestCreateGardenBooking_TruncatesMinutes(t *testing.T) {
	bookings := new(MockBookingRepository)
	gardens := new(MockGardenProvider)

	gardens.On("GetGarden", mock.Anything, int64(2)).Return(&domain.Garden{
		ID: 2, Capacity: 100, PricePerHour: 50.0, MinimumHours: 2, CleaningFee: 25.0,
		IsAvailable: true, IsActive: true,
	}, nil)
	bookings.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(bookings, nil, nil, gardens, nil)

	b, err := svc.CreateGardenBooking(context.Background(), 7, CreateGardenBookingRequest{
		GardenID:       2,
		EventDate:      time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		EventStartTime: "18:00",
		EventEndTime:   "22:30",
		ExpectedGuests: 80,
	})

	assert.NoError(t, err)
	assert.Equal(t, 4, b.GardenDetails.HoursBooked)
	assert.Equal(t, 200.0, b.Pricing.Subtotal)
	assert.Equal(t, 245.0, b.Pricing.TotalAmount)
	assert.Equal(t, 73.5, b.Pricing.Deposit)
}

func TestTransitionStatus_PendingToConfirmed(t *testing.T) {
	bookings := new(MockBookingRepository)
	notifs := new(MockNotificationSender)

	b := &domain.Booking{ID: 1, UserID: 7, BookingNumber: "BK-1-AAAA",
		BookingType: domain.BookingTypeTable, Status: domain.BookingPending}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	bookings.On("SaveWithEvent", mock.Anything, b, mock.Anything).Return(nil)
	notifs.On("NotifyBookingConfirmed", mock.Anything, int64(7), int64(1), "BK-1-AAAA").Return(nil)

	svc := newTestService(bookings, nil, nil, nil, notifs)

	out, err := svc.TransitionStatus(context.Background(), 1, domain.BookingConfirmed, 2, "staff", "payment received")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, out.Status)

	ev := bookings.Calls[1].Arguments.Get(2).(*domain.BookingStatusEvent)
	assert.Equal(t, domain.BookingConfirmed, ev.Status)
	assert.Equal(t, "payment received", ev.Note)
	assert.Equal(t, int64(2), ev.UpdatedBy)
	notifs.AssertCalled(t, "NotifyBookingConfirmed", mock.Anything, int64(7), int64(1), "BK-1-AAAA")
}

func TestTransitionStatus_DisallowedTarget(t *testing.T) {
	bookings := new(MockBookingRepository)

	b := &domain.Booking{ID: 1, BookingType: domain.BookingTypeRoom, Status: domain.BookingPending}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	svc := newTestService(bookings, nil, nil, nil, nil)

	_, err := svc.TransitionStatus(context.Background(), 1, domain.BookingCheckedIn, 2, "admin", "")

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.BookingPending, b.Status) // unchanged
	bookings.AssertNotCalled(t, "SaveWithEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckIn_RoomOnly(t *testing.T) {
	bookings := new(MockBookingRepository)

	b := &domain.Booking{ID: 1, BookingType: domain.BookingTypeTable, Status: domain.BookingConfirmed}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	svc := newTestService(bookings, nil, nil, nil, nil)

	_, err := svc.CheckIn(context.Background(), 1, 2, "staff")

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCheckIn_ThenSecondCheckInFails(t *testing.T) {
	bookings := new(MockBookingRepository)

	b := &domain.Booking{ID: 1, BookingType: domain.BookingTypeRoom, Status: domain.BookingConfirmed}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	bookings.On("SaveWithEvent", mock.Anything, b, mock.Anything).Return(nil)

	svc := newTestService(bookings, nil, nil, nil, nil)

	out, err := svc.CheckIn(context.Background(), 1, 2, "staff")
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedIn, out.Status)
	assert.NotNil(t, out.ActualCheckIn)

	firstCheckIn := *out.ActualCheckIn

	// a second check-in finds status checked-in and must be rejected
	_, err = svc.CheckIn(context.Background(), 1, 2, "staff")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, firstCheckIn, *b.ActualCheckIn)
}

func TestCheckOut_RequiresCheckedIn(t *testing.T) {
	bookings := new(MockBookingRepository)

	b := &domain.Booking{ID: 1, BookingType: domain.BookingTypeRoom, Status: domain.BookingConfirmed}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	svc := newTestService(bookings, nil, nil, nil, nil)

	_, err := svc.CheckOut(context.Background(), 1, 2, "staff")

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_SetsReasonAndAudit(t *testing.T) {
	bookings := new(MockBookingRepository)
	notifs := new(MockNotificationSender)

	b := &domain.Booking{ID: 1, UserID: 7, BookingNumber: "BK-1-AAAA",
		BookingType: domain.BookingTypeRoom, Status: domain.BookingConfirmed}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	bookings.On("SaveWithEvent", mock.Anything, b, mock.Anything).Return(nil)
	notifs.On("NotifyBookingCancelled", mock.Anything, int64(7), int64(1), "BK-1-AAAA", "Change of plans").Return(nil)

	svc := newTestService(bookings, nil, nil, nil, notifs)

	out, err := svc.Cancel(context.Background(), 1, 7, "customer", "Change of plans")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, out.Status)
	assert.Equal(t, "Change of plans", out.CancellationReason)
	assert.NotNil(t, out.CancelledAt)
	assert.Equal(t, int64(7), *out.CancelledBy)
}

func TestCancel_DefaultReason(t *testing.T) {
	bookings := new(MockBookingRepository)

	b := &domain.Booking{ID: 1, UserID: 7, BookingType: domain.BookingTypeTable, Status: domain.BookingPending}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	bookings.On("SaveWithEvent", mock.Anything, b, mock.Anything).Return(nil)

	svc := newTestService(bookings, nil, nil, nil, nil)

	out, err := svc.Cancel(context.Background(), 1, 7, "customer", "")

	assert.NoError(t, err)
	assert.Equal(t, "Customer cancelled", out.CancellationReason)
}

func TestCancel_TerminalStatusRejected(t *testing.T) {
	bookings := new(MockBookingRepository)

	b := &domain.Booking{ID: 1, UserID: 7, BookingType: domain.BookingTypeRoom, Status: domain.BookingCheckedIn}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	svc := newTestService(bookings, nil, nil, nil, nil)

	_, err := svc.Cancel(context.Background(), 1, 7, "customer", "too late")

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancel_OtherUsersBookingForbidden(t *testing.T) {
	bookings := new(MockBookingRepository)

	b := &domain.Booking{ID: 1, UserID: 7, BookingType: domain.BookingTypeRoom, Status: domain.BookingPending}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	svc := newTestService(bookings, nil, nil, nil, nil)

	_, err := svc.Cancel(context.Background(), 1, 8, "customer", "")

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestNoShow_AdminOnly(t *testing.T) {
	bookings := new(MockBookingRepository)

	b := &domain.Booking{ID: 1, UserID: 7, BookingType: domain.BookingTypeTable, Status: domain.BookingConfirmed}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	bookings.On("SaveWithEvent", mock.Anything, b, mock.Anything).Return(nil)

	svc := newTestService(bookings, nil, nil, nil, nil)

	_, err := svc.TransitionStatus(context.Background(), 1, domain.BookingNoShow, 2, "staff", "")
	assert.ErrorIs(t, err, ErrForbidden)

	out, err := svc.TransitionStatus(context.Background(), 1, domain.BookingNoShow, 2, "admin", "did not arrive")
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingNoShow, out.Status)
}

func TestNoShow_TableAndGardenOnly(t *testing.T) {
	bookings := new(MockBookingRepository)

	b := &domain.Booking{ID: 1, UserID: 7, BookingType: domain.BookingTypeRoom, Status: domain.BookingConfirmed}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	svc := newTestService(bookings, nil, nil, nil, nil)

	// Room guests who never arrive are cancelled, not marked no-show.
	_, err := svc.TransitionStatus(context.Background(), 1, domain.BookingNoShow, 2, "admin", "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	bookings.AssertNotCalled(t, "SaveWithEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetByNumber_OwnershipRule(t *testing.T) {
	bookings := new(MockBookingRepository)

	b := &domain.Booking{ID: 1, UserID: 7, BookingNumber: "BK-1756720000000-TEST",
		BookingType: domain.BookingTypeRoom, Status: domain.BookingConfirmed}
	bookings.On("GetByNumber", mock.Anything, "BK-1756720000000-TEST").Return(b, nil)

	svc := newTestService(bookings, nil, nil, nil, nil)

	out, err := svc.GetByNumber(context.Background(), "BK-1756720000000-TEST", 7, "customer")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)

	// staff can quote any reference, other customers cannot
	_, err = svc.GetByNumber(context.Background(), "BK-1756720000000-TEST", 8, "customer")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetByNumber(context.Background(), "BK-1756720000000-TEST", 8, "staff")
	assert.NoError(t, err)
}

func TestAddReview_HappyPathAndDuplicate(t *testing.T) {
	bookings := new(MockBookingRepository)

	b := &domain.Booking{ID: 1, UserID: 7, BookingType: domain.BookingTypeRoom, Status: domain.BookingCompleted}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)
	bookings.On("Save", mock.Anything, b).Return(nil)

	svc := newTestService(bookings, nil, nil, nil, nil)

	out, err := svc.AddReview(context.Background(), 1, 7, 5, "great stay")
	assert.NoError(t, err)
	assert.True(t, out.HasReview)
	assert.Equal(t, 5, out.Review.Rating)

	_, err = svc.AddReview(context.Background(), 1, 7, 4, "changed my mind")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	assert.Equal(t, 5, b.Review.Rating) // first review untouched
}

func TestAddReview_NotEligibleBeforeCompletion(t *testing.T) {
	bookings := new(MockBookingRepository)

	b := &domain.Booking{ID: 1, UserID: 7, BookingType: domain.BookingTypeRoom, Status: domain.BookingConfirmed}
	bookings.On("GetByID", mock.Anything, int64(1)).Return(b, nil)

	svc := newTestService(bookings, nil, nil, nil, nil)

	_, err := svc.AddReview(context.Background(), 1, 7, 5, "premature")

	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestAddReview_BadRating(t *testing.T) {
	svc := newTestService(new(MockBookingRepository), nil, nil, nil, nil)

	_, err := svc.AddReview(context.Background(), 1, 7, 0, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddReview(context.Background(), 1, 7, 6, "")
	assert.ErrorIs(t, err, ErrValidation)
}
