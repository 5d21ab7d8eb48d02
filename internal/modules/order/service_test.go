package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"grandresort/internal/domain"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *domain.Order, ev *domain.OrderStatusEvent) error {
	args := m.Called(ctx, o, ev)
	if o != nil {
		o.ID = 555 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockOrderRepository) SaveWithEvent(ctx context.Context, o *domain.Order, ev *domain.OrderStatusEvent) error {
	args := m.Called(ctx, o, ev)
	return args.Error(0)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number string) (*domain.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID int64, orderType, status string, limit, offset int) ([]domain.Order, int64, error) {
	args := m.Called(ctx, userID, orderType, status, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) ListAll(ctx context.Context, orderType, status string, day *time.Time, limit, offset int) ([]domain.Order, int64, error) {
	args := m.Called(ctx, orderType, status, day, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) ListActiveKitchen(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

type MockMenuProvider struct {
	mock.Mock
}

func (m *MockMenuProvider) GetItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

// recordingFeed captures published events in order.
type recordingFeed struct {
	events []FeedEvent
}

func (f *recordingFeed) Publish(event FeedEvent) {
	f.events = append(f.events, event)
}

type stubRefs struct{}

func (stubRefs) Next(prefix string) string { return prefix + "-1756720000000-TEST" }

func newTestService(orders *MockOrderRepository, menu *MockMenuProvider, feed *recordingFeed) *Service {
	var pub FeedPublisher
	if feed != nil {
		pub = feed
	}
	svc := NewService(orders, menu, pub, stubRefs{})
	svc.now = func() time.Time { return time.Date(2026, 6, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreate_DeliveryOrderPricingAndEstimate(t *testing.T) {
	orders := new(MockOrderRepository)
	menu := new(MockMenuProvider)
	feed := &recordingFeed{}

	menu.On("GetItem", mock.Anything, int64(1)).Return(&domain.MenuItem{
		ID: 1, Name: "Margherita", Price: 10.0, PreparationTime: 25,
		IsAvailable: true, IsActive: true,
	}, nil)
	menu.On("GetItem", mock.Anything, int64(2)).Return(&domain.MenuItem{
		ID: 2, Name: "Tiramisu", Price: 13.0, PreparationTime: 15,
		IsAvailable: true, IsActive: true,
	}, nil)
	orders.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(orders, menu, feed)

	o, err := svc.Create(context.Background(), 7, CreateOrderRequest{
		OrderType: "delivery",
		Items: []OrderItemRequest{
			{MenuItemID: 1, Quantity: 2},
			{MenuItemID: 2, Quantity: 1, SpecialInstructions: "no cocoa"},
		},
		DeliveryAddress: "12 Palm Street",
	})

	assert.NoError(t, err)
	assert.Equal(t, "ORD-1756720000000-TEST", o.OrderNumber)
	assert.Equal(t, domain.OrderPending, o.Status)
	assert.Equal(t, 33.0, o.Subtotal)
	assert.Equal(t, 3.3, o.Tax)
	assert.Equal(t, 5.0, o.DeliveryFee)
	assert.Equal(t, 41.3, o.TotalAmount)
	// longest prep 25 min plus 30 for the courier
	assert.Equal(t, 55, o.EstimatedTime)
	// menu snapshot survives later menu edits
	assert.Equal(t, "Margherita", o.Items[0].Name)
	assert.Equal(t, 10.0, o.Items[0].UnitPrice)

	ev := orders.Calls[0].Arguments.Get(2).(*domain.OrderStatusEvent)
	assert.Equal(t, domain.OrderPending, ev.Status)

	if assert.Len(t, feed.events, 1) {
		assert.Equal(t, "order.created", feed.events[0].Type)
		assert.Equal(t, int64(555), feed.events[0].OrderID)
	}
}

func TestCreate_DineInNeedsTableNumber(t *testing.T) {
	svc := newTestService(new(MockOrderRepository), new(MockMenuProvider), nil)

	_, err := svc.Create(context.Background(), 7, CreateOrderRequest{
		OrderType: "dine-in",
		Items:     []OrderItemRequest{{MenuItemID: 1, Quantity: 1}},
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_RoomServiceEstimate(t *testing.T) {
	orders := new(MockOrderRepository)
	menu := new(MockMenuProvider)

	// prep time below the floor: the 20 minute default wins
	menu.On("GetItem", mock.Anything, int64(3)).Return(&domain.MenuItem{
		ID: 3, Name: "Club Sandwich", Price: 9.5, PreparationTime: 10,
		IsAvailable: true, IsActive: true,
	}, nil)
	orders.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	svc := newTestService(orders, menu, nil)

	o, err := svc.Create(context.Background(), 7, CreateOrderRequest{
		OrderType:  "room-service",
		Items:      []OrderItemRequest{{MenuItemID: 3, Quantity: 1}},
		RoomNumber: "204",
	})

	assert.NoError(t, err)
	assert.Equal(t, 35, o.EstimatedTime) // 20 default + 15 room service
	assert.Equal(t, 0.0, o.DeliveryFee)
}

func TestCreate_UnavailableItemRejected(t *testing.T) {
	orders := new(MockOrderRepository)
	menu := new(MockMenuProvider)

	menu.On("GetItem", mock.Anything, int64(4)).Return(&domain.MenuItem{
		ID: 4, Name: "Oysters", Price: 24.0, IsAvailable: false, IsActive: true,
	}, nil)

	svc := newTestService(orders, menu, nil)

	_, err := svc.Create(context.Background(), 7, CreateOrderRequest{
		OrderType: "takeout",
		Items:     []OrderItemRequest{{MenuItemID: 4, Quantity: 1}},
	})

	assert.ErrorIs(t, err, ErrItemUnavailable)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionStatus_PendingToConfirmedPublishes(t *testing.T) {
	orders := new(MockOrderRepository)
	feed := &recordingFeed{}

	o := &domain.Order{ID: 1, UserID: 7, OrderNumber: "ORD-1-AAAA",
		OrderType: domain.OrderTypeDineIn, Status: domain.OrderPending}
	orders.On("GetByID", mock.Anything, int64(1)).Return(o, nil)
	orders.On("SaveWithEvent", mock.Anything, o, mock.Anything).Return(nil)

	svc := newTestService(orders, nil, feed)

	out, err := svc.TransitionStatus(context.Background(), 1, domain.OrderConfirmed, 2, "staff", "accepted")

	assert.NoError(t, err)
	assert.Equal(t, domain.OrderConfirmed, out.Status)

	ev := orders.Calls[1].Arguments.Get(2).(*domain.OrderStatusEvent)
	assert.Equal(t, domain.OrderConfirmed, ev.Status)
	assert.Equal(t, int64(2), ev.UpdatedBy)

	if assert.Len(t, feed.events, 1) {
		assert.Equal(t, "order.status_changed", feed.events[0].Type)
		assert.Equal(t, "confirmed", feed.events[0].Status)
	}
}

func TestTransitionStatus_SkippingStagesRejected(t *testing.T) {
	orders := new(MockOrderRepository)

	o := &domain.Order{ID: 1, OrderType: domain.OrderTypeDineIn, Status: domain.OrderPending}
	orders.On("GetByID", mock.Anything, int64(1)).Return(o, nil)

	svc := newTestService(orders, nil, nil)

	_, err := svc.TransitionStatus(context.Background(), 1, domain.OrderPreparing, 2, "staff", "")

	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.OrderPending, o.Status)
	orders.AssertNotCalled(t, "SaveWithEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionStatus_ServedRecordsActualTime(t *testing.T) {
	orders := new(MockOrderRepository)

	o := &domain.Order{ID: 1, OrderType: domain.OrderTypeDineIn, Status: domain.OrderReady,
		CreatedAt: time.Date(2026, 6, 10, 11, 18, 0, 0, time.UTC)}
	orders.On("GetByID", mock.Anything, int64(1)).Return(o, nil)
	orders.On("SaveWithEvent", mock.Anything, o, mock.Anything).Return(nil)

	svc := newTestService(orders, nil, nil)

	out, err := svc.TransitionStatus(context.Background(), 1, domain.OrderServed, 2, "staff", "")

	assert.NoError(t, err)
	if assert.NotNil(t, out.ActualTime) {
		assert.Equal(t, 42, *out.ActualTime)
	}
}

func TestTransitionStatus_RefundedOnlyViaPayments(t *testing.T) {
	orders := new(MockOrderRepository)

	o := &domain.Order{ID: 1, OrderType: domain.OrderTypeDelivery, Status: domain.OrderDelivered,
		PaymentStatus: domain.OrderPaymentPaid}
	orders.On("GetByID", mock.Anything, int64(1)).Return(o, nil)

	svc := newTestService(orders, nil, nil)

	// The status endpoint cannot flip an order to refunded while the ledger
	// is untouched; that write belongs to the payment refund flow.
	for _, role := range []string{"staff", "admin"} {
		_, err := svc.TransitionStatus(context.Background(), 1, domain.OrderRefunded, 2, role, "")
		assert.ErrorIs(t, err, ErrInvalidTransition)
	}
	assert.Equal(t, domain.OrderDelivered, o.Status)
	assert.Equal(t, domain.OrderPaymentPaid, o.PaymentStatus)
	orders.AssertNotCalled(t, "SaveWithEvent", mock.Anything, mock.Anything, mock.Anything)
}

func TestTrack_ResolvesByNumberForAnyCaller(t *testing.T) {
	orders := new(MockOrderRepository)

	o := &domain.Order{ID: 3, UserID: 7, OrderNumber: "ORD-1-AAAA", Status: domain.OrderPreparing}
	orders.On("GetByNumber", mock.Anything, "ORD-1-AAAA").Return(o, nil)

	svc := newTestService(orders, nil, nil)

	// no caller identity: anyone holding the number may follow the order
	got, err := svc.Track(context.Background(), "ORD-1-AAAA")
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderPreparing, got.Status)

	orders.On("GetByNumber", mock.Anything, "ORD-MISSING").Return(nil, gorm.ErrRecordNotFound)
	_, err = svc.Track(context.Background(), "ORD-MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancel_CustomerOnlyBeforeKitchenAccepts(t *testing.T) {
	orders := new(MockOrderRepository)

	o := &domain.Order{ID: 1, UserID: 7, OrderType: domain.OrderTypeTakeout, Status: domain.OrderConfirmed}
	orders.On("GetByID", mock.Anything, int64(1)).Return(o, nil)
	orders.On("SaveWithEvent", mock.Anything, o, mock.Anything).Return(nil)

	svc := newTestService(orders, nil, nil)

	_, err := svc.Cancel(context.Background(), 1, 7, "customer", "changed my mind")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.OrderConfirmed, o.Status)

	// staff can still cancel per the allow-list
	out, err := svc.Cancel(context.Background(), 1, 2, "staff", "kitchen closed")
	assert.NoError(t, err)
	assert.Equal(t, domain.OrderCancelled, out.Status)
	assert.Equal(t, "kitchen closed", out.CancellationReason)
	assert.NotNil(t, out.CancelledAt)
}

func TestCancel_OtherUsersOrderForbidden(t *testing.T) {
	orders := new(MockOrderRepository)

	o := &domain.Order{ID: 1, UserID: 7, OrderType: domain.OrderTypeTakeout, Status: domain.OrderPending}
	orders.On("GetByID", mock.Anything, int64(1)).Return(o, nil)

	svc := newTestService(orders, nil, nil)

	_, err := svc.Cancel(context.Background(), 1, 8, "customer", "")

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAddReview_OnlyAfterServedOrDelivered(t *testing.T) {
	orders := new(MockOrderRepository)

	o := &domain.Order{ID: 1, UserID: 7, OrderType: domain.OrderTypeDineIn, Status: domain.OrderPreparing}
	orders.On("GetByID", mock.Anything, int64(1)).Return(o, nil)
	orders.On("Save", mock.Anything, o).Return(nil)

	svc := newTestService(orders, nil, nil)

	_, err := svc.AddReview(context.Background(), 1, 7, 5, "too early")
	assert.ErrorIs(t, err, ErrNotEligible)

	o.Status = domain.OrderServed
	out, err := svc.AddReview(context.Background(), 1, 7, 4, "lovely")
	assert.NoError(t, err)
	assert.True(t, out.HasReview)
	assert.Equal(t, 4, out.Review.Rating)

	_, err = svc.AddReview(context.Background(), 1, 7, 5, "again")
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}
