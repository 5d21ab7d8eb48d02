package order

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"grandresort/internal/domain"
	"grandresort/internal/pkg/refnum"
	"grandresort/internal/pricing"
)

const (
	defaultPrepMinutes  = 20
	deliveryExtraMins   = 30
	roomServiceExtraMin = 15
)

type Service struct {
	orders OrderRepository
	menu   MenuProvider
	feed   FeedPublisher
	refs   ReferenceGenerator
	now    func() time.Time
}

func NewService(orders OrderRepository, menu MenuProvider, feed FeedPublisher, refs ReferenceGenerator) *Service {
	return &Service{
		orders: orders,
		menu:   menu,
		feed:   feed,
		refs:   refs,
		now:    time.Now,
	}
}

func (s *Service) Create(ctx context.Context, userID int64, req CreateOrderRequest) (*domain.Order, error) {
	orderType := domain.OrderType(req.OrderType)
	if !orderType.IsValid() {
		return nil, ErrValidation
	}
	if err := validateDestination(orderType, req); err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, ErrValidation
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	lines := make([]pricing.LineItem, 0, len(req.Items))
	maxPrep := defaultPrepMinutes

	for _, ir := range req.Items {
		item, err := s.menu.GetItem(ctx, ir.MenuItemID)
		if err != nil {
			return nil, s.mapLookupErr(err)
		}
		if !item.IsAvailable || !item.IsActive {
			return nil, ErrItemUnavailable
		}

		items = append(items, domain.OrderItem{
			MenuItemID:          item.ID,
			Name:                item.Name,
			Quantity:            ir.Quantity,
			UnitPrice:           item.Price,
			SpecialInstructions: ir.SpecialInstructions,
		})
		lines = append(lines, pricing.LineItem{UnitPrice: item.Price, Quantity: ir.Quantity})

		if item.PreparationTime > maxPrep {
			maxPrep = item.PreparationTime
		}
	}

	p, err := pricing.Order(lines, orderType)
	if err != nil {
		return nil, ErrValidation
	}

	estimated := maxPrep
	switch orderType {
	case domain.OrderTypeDelivery:
		estimated += deliveryExtraMins
	case domain.OrderTypeRoomService:
		estimated += roomServiceExtraMin
	}

	o := &domain.Order{
		UserID:    userID,
		OrderType: orderType,
		Items:     items,

		Subtotal:    p.Subtotal,
		Tax:         p.Tax,
		TaxRate:     p.TaxRate,
		DeliveryFee: p.DeliveryFee,
		TotalAmount: p.TotalAmount,

		Status:        domain.OrderPending,
		PaymentStatus: domain.OrderPaymentPending,

		TableNumber:     req.TableNumber,
		RoomNumber:      req.RoomNumber,
		DeliveryAddress: req.DeliveryAddress,

		EstimatedTime:   estimated,
		ScheduledTime:   req.ScheduledTime,
		SpecialRequests: req.SpecialRequests,
	}
	o.OrderNumber = s.refs.Next(refnum.PrefixOrder)

	ev := &domain.OrderStatusEvent{
		Status:    domain.OrderPending,
		Note:      "Order placed",
		UpdatedBy: userID,
	}

	err = s.orders.Create(ctx, o, ev)
	if isUniqueViolation(err) {
		// Reference collision. One retry with a fresh number.
		o.OrderNumber = s.refs.Next(refnum.PrefixOrder)
		err = s.orders.Create(ctx, o, ev)
	}
	if err != nil {
		return nil, err
	}

	s.publish("order.created", o)
	return o, nil
}

func (s *Service) GetByID(ctx context.Context, orderID, actorID int64, actorRole string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	if o.UserID != actorID && !isStaff(actorRole) {
		return nil, ErrForbidden
	}
	return o, nil
}

// Track resolves an order by its public number. The endpoint is served
// unauthenticated; handlers expose only the tracking fields, never the
// full order.
func (s *Service) Track(ctx context.Context, number string) (*domain.Order, error) {
	o, err := s.orders.GetByNumber(ctx, number)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	return o, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64, orderType, status string, limit, offset int) ([]domain.Order, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.orders.ListByUser(ctx, userID, orderType, status, limit, offset)
}

func (s *Service) ListAll(ctx context.Context, orderType, status string, day *time.Time, limit, offset int) ([]domain.Order, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.orders.ListAll(ctx, orderType, status, day, limit, offset)
}

// KitchenQueue lists orders the kitchen still has work on.
func (s *Service) KitchenQueue(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListActiveKitchen(ctx)
}

// TransitionStatus is the single entry point for order status changes.
func (s *Service) TransitionStatus(ctx context.Context, orderID int64, target domain.OrderStatus, actorID int64, actorRole, note string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	return s.transition(ctx, o, target, actorID, actorRole, note)
}

func (s *Service) transition(ctx context.Context, o *domain.Order, target domain.OrderStatus, actorID int64, actorRole, note string) (*domain.Order, error) {
	if !target.IsValid() {
		return nil, ErrValidation
	}
	if !o.Status.CanTransitionTo(target) {
		return nil, ErrInvalidTransition
	}
	// Refunds move the ledger and the order together inside the payment
	// module; the bare status endpoint never writes refunded on its own.
	if target == domain.OrderRefunded {
		return nil, ErrInvalidTransition
	}

	now := s.now()
	o.Status = target

	switch target {
	case domain.OrderServed, domain.OrderDelivered:
		if o.ActualTime == nil {
			mins := int(math.Round(now.Sub(o.CreatedAt).Minutes()))
			o.ActualTime = &mins
		}
	case domain.OrderCancelled:
		if o.CancellationReason == "" {
			o.CancellationReason = note
		}
		o.CancelledAt = &now
		o.CancelledBy = &actorID
	}

	ev := &domain.OrderStatusEvent{
		Status:    target,
		Note:      note,
		UpdatedBy: actorID,
	}
	if err := s.orders.SaveWithEvent(ctx, o, ev); err != nil {
		return nil, err
	}

	s.publish("order.status_changed", o)
	return o, nil
}

// Cancel is the customer-facing cancellation. Customers may only back out of
// an order the kitchen has not accepted yet; staff can cancel anything the
// allow-list still permits.
func (s *Service) Cancel(ctx context.Context, orderID, actorID int64, actorRole, reason string) (*domain.Order, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	if o.UserID != actorID && !isStaff(actorRole) {
		return nil, ErrForbidden
	}
	if !isStaff(actorRole) && o.Status != domain.OrderPending {
		return nil, ErrInvalidTransition
	}

	if reason == "" {
		reason = "Customer cancelled"
	}
	o.CancellationReason = reason

	return s.transition(ctx, o, domain.OrderCancelled, actorID, actorRole, reason)
}

// AddReview attaches the one allowed review once the order reached the table.
func (s *Service) AddReview(ctx context.Context, orderID, actorID int64, rating int, comment string) (*domain.Order, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrValidation
	}

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	if o.UserID != actorID {
		return nil, ErrForbidden
	}
	if o.HasReview {
		return nil, ErrAlreadyReviewed
	}
	if o.Status != domain.OrderServed && o.Status != domain.OrderDelivered {
		return nil, ErrNotEligible
	}

	o.Review = &domain.Review{
		Rating:    rating,
		Comment:   comment,
		CreatedAt: s.now(),
	}
	o.HasReview = true

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) publish(eventType string, o *domain.Order) {
	if s.feed == nil {
		return
	}
	s.feed.Publish(FeedEvent{
		Type:          eventType,
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		OrderType:     string(o.OrderType),
		Status:        string(o.Status),
		TableNumber:   o.TableNumber,
		RoomNumber:    o.RoomNumber,
		EstimatedTime: o.EstimatedTime,
		At:            s.now(),
	})
}

func validateDestination(t domain.OrderType, req CreateOrderRequest) error {
	switch t {
	case domain.OrderTypeDineIn:
		if req.TableNumber == "" {
			return ErrValidation
		}
	case domain.OrderTypeRoomService:
		if req.RoomNumber == "" {
			return ErrValidation
		}
	case domain.OrderTypeDelivery:
		if req.DeliveryAddress == "" {
			return ErrValidation
		}
	}
	return nil
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
