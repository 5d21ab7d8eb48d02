package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"grandresort/internal/domain"
	"grandresort/internal/pkg/refnum"
)

type Service struct {
	payments PaymentRepository
	bookings BookingStore
	orders   OrderStore
	gateway  Gateway
	refs     ReferenceGenerator
	now      func() time.Time
}

func NewService(payments PaymentRepository, bookings BookingStore, orders OrderStore, gateway Gateway, refs ReferenceGenerator) *Service {
	return &Service{
		payments: payments,
		bookings: bookings,
		orders:   orders,
		gateway:  gateway,
		refs:     refs,
		now:      time.Now,
	}
}

// StubGateway approves every charge with a generated transaction ID.
type StubGateway struct{}

func (StubGateway) Charge(ctx context.Context, amount float64, method domain.PaymentMethod) (string, error) {
	return "txn_" + uuid.NewString(), nil
}

// Process charges for a booking or order and flips the target's payment
// status in the same transaction as the ledger write.
func (s *Service) Process(ctx context.Context, actorID int64, actorRole string, req ProcessPaymentRequest) (*domain.Payment, error) {
	method := domain.PaymentMethod(req.Method)
	if !method.IsValid() || req.Amount <= 0 {
		return nil, ErrValidation
	}

	switch domain.PaymentKind(req.Kind) {
	case domain.PaymentKindBooking:
		if req.BookingID == nil {
			return nil, ErrValidation
		}
		return s.processBooking(ctx, actorID, actorRole, *req.BookingID, req.Amount, method, req.Description)
	case domain.PaymentKindOrder:
		if req.OrderID == nil {
			return nil, ErrValidation
		}
		return s.processOrder(ctx, actorID, actorRole, *req.OrderID, req.Amount, method, req.Description)
	default:
		return nil, ErrValidation
	}
}

func (s *Service) processBooking(ctx context.Context, actorID int64, actorRole string, bookingID int64, amount float64, method domain.PaymentMethod, description string) (*domain.Payment, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	if b.UserID != actorID && !isStaff(actorRole) {
		return nil, ErrForbidden
	}
	if b.Status.IsTerminal() {
		return nil, ErrValidation
	}

	// Either the deposit up front or the balance due. Nothing else.
	var target domain.PaymentStatus
	switch b.PaymentStatus {
	case domain.PaymentPending, domain.PaymentFailed:
		switch {
		case b.Pricing.Deposit > 0 && amountEqual(amount, b.Pricing.Deposit):
			target = domain.PaymentDepositPaid
		case amountEqual(amount, b.Pricing.TotalAmount):
			target = domain.PaymentFullyPaid
		default:
			return nil, ErrAmountMismatch
		}
	case domain.PaymentDepositPaid:
		if !amountEqual(amount, b.Pricing.TotalAmount-b.Pricing.Deposit) {
			return nil, ErrAmountMismatch
		}
		target = domain.PaymentFullyPaid
	case domain.PaymentFullyPaid:
		return nil, ErrAlreadyPaid
	default:
		return nil, ErrValidation
	}

	p := s.newPayment(domain.PaymentKindBooking, b.UserID, amount, method, description)
	p.BookingID = &b.ID

	txnID, chargeErr := s.gateway.Charge(ctx, amount, method)
	if chargeErr != nil {
		p.Status = domain.PaymentRecordFailed
		p.FailureMessage = chargeErr.Error()
		b.PaymentStatus = domain.PaymentFailed
		if err := s.payments.CreateWithBookingSync(ctx, p, b, nil); err != nil {
			return nil, err
		}
		return p, nil
	}

	now := s.now()
	p.Status = domain.PaymentRecordSuccess
	p.TransactionID = txnID
	p.ProcessedAt = &now

	b.PaymentStatus = target
	b.PaymentMethod = string(method)

	var bev *domain.BookingStatusEvent
	if b.Status == domain.BookingPending && b.Status.CanTransitionTo(domain.BookingConfirmed) {
		b.Status = domain.BookingConfirmed
		bev = &domain.BookingStatusEvent{
			Status:    domain.BookingConfirmed,
			Note:      "Payment received",
			UpdatedBy: actorID,
		}
	}

	if err := s.payments.CreateWithBookingSync(ctx, p, b, bev); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) processOrder(ctx context.Context, actorID int64, actorRole string, orderID int64, amount float64, method domain.PaymentMethod, description string) (*domain.Payment, error) {
	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	if o.UserID != actorID && !isStaff(actorRole) {
		return nil, ErrForbidden
	}
	if o.Status.IsTerminal() {
		return nil, ErrValidation
	}
	if o.PaymentStatus == domain.OrderPaymentPaid {
		return nil, ErrAlreadyPaid
	}
	if !amountEqual(amount, o.TotalAmount) {
		return nil, ErrAmountMismatch
	}

	p := s.newPayment(domain.PaymentKindOrder, o.UserID, amount, method, description)
	p.OrderID = &o.ID

	txnID, chargeErr := s.gateway.Charge(ctx, amount, method)
	if chargeErr != nil {
		p.Status = domain.PaymentRecordFailed
		p.FailureMessage = chargeErr.Error()
		o.PaymentStatus = domain.OrderPaymentFailed
		if err := s.payments.CreateWithOrderSync(ctx, p, o, nil); err != nil {
			return nil, err
		}
		return p, nil
	}

	now := s.now()
	p.Status = domain.PaymentRecordSuccess
	p.TransactionID = txnID
	p.ProcessedAt = &now

	o.PaymentStatus = domain.OrderPaymentPaid
	o.PaymentMethod = string(method)

	var oev *domain.OrderStatusEvent
	if o.Status == domain.OrderPending && o.Status.CanTransitionTo(domain.OrderConfirmed) {
		o.Status = domain.OrderConfirmed
		oev = &domain.OrderStatusEvent{
			Status:    domain.OrderConfirmed,
			Note:      "Payment received",
			UpdatedBy: actorID,
		}
	}

	if err := s.payments.CreateWithOrderSync(ctx, p, o, oev); err != nil {
		return nil, err
	}
	return p, nil
}

// Refund returns money against a successful payment. Admin only. A zero
// amount refunds whatever is still outstanding.
func (s *Service) Refund(ctx context.Context, paymentID, actorID int64, actorRole string, req RefundRequest) (*domain.Payment, error) {
	if actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}

	p, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	if p.Status != domain.PaymentRecordSuccess && p.Status != domain.PaymentRecordPartiallyRefunded {
		return nil, ErrNotRefundable
	}

	remaining := p.Amount - p.RefundAmount
	amount := req.Amount
	if amount == 0 {
		amount = remaining
	}
	if amount <= 0 || amount > remaining+0.001 {
		return nil, ErrRefundTooLarge
	}

	now := s.now()
	p.RefundAmount += amount
	p.RefundReason = req.Reason
	p.RefundedAt = &now

	full := amountEqual(p.RefundAmount, p.Amount)
	if full {
		p.Status = domain.PaymentRecordRefunded
	} else {
		p.Status = domain.PaymentRecordPartiallyRefunded
	}

	switch p.Kind {
	case domain.PaymentKindBooking:
		return s.refundBooking(ctx, p, actorID, full, req.Reason)
	case domain.PaymentKindOrder:
		return s.refundOrder(ctx, p, actorID, full, req.Reason)
	default:
		return nil, ErrValidation
	}
}

func (s *Service) refundBooking(ctx context.Context, p *domain.Payment, actorID int64, full bool, reason string) (*domain.Payment, error) {
	b, err := s.bookings.GetByID(ctx, *p.BookingID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}

	if full {
		b.PaymentStatus = domain.PaymentRefunded
	} else {
		b.PaymentStatus = domain.PaymentPartiallyRefunded
	}

	// A fully refunded booking that can still be cancelled is cancelled.
	var bev *domain.BookingStatusEvent
	if full && b.Status.CanTransitionTo(domain.BookingCancelled) {
		now := s.now()
		b.Status = domain.BookingCancelled
		if b.CancellationReason == "" {
			b.CancellationReason = reason
		}
		b.CancelledAt = &now
		b.CancelledBy = &actorID
		bev = &domain.BookingStatusEvent{
			Status:    domain.BookingCancelled,
			Note:      "Refund issued",
			UpdatedBy: actorID,
		}
	}

	if err := s.payments.SaveRefundWithBookingSync(ctx, p, b, bev); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) refundOrder(ctx context.Context, p *domain.Payment, actorID int64, full bool, reason string) (*domain.Payment, error) {
	o, err := s.orders.GetByID(ctx, *p.OrderID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}

	var oev *domain.OrderStatusEvent
	if full {
		o.PaymentStatus = domain.OrderPaymentRefunded
		if o.Status.CanTransitionTo(domain.OrderRefunded) {
			o.Status = domain.OrderRefunded
			oev = &domain.OrderStatusEvent{
				Status:    domain.OrderRefunded,
				Note:      "Refund issued",
				UpdatedBy: actorID,
			}
		}
	}

	if err := s.payments.SaveRefundWithOrderSync(ctx, p, o, oev); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, paymentID, actorID int64, actorRole string) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, paymentID)
	if err != nil {
		return nil, s.mapLookupErr(err)
	}
	if p.UserID != actorID && !isStaff(actorRole) {
		return nil, ErrForbidden
	}
	return p, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64, limit, offset int) ([]domain.Payment, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.payments.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) ListAll(ctx context.Context, status, kind string, limit, offset int) ([]domain.Payment, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.payments.ListAll(ctx, status, kind, limit, offset)
}

func (s *Service) newPayment(kind domain.PaymentKind, userID int64, amount float64, method domain.PaymentMethod, description string) *domain.Payment {
	return &domain.Payment{
		PaymentNumber: s.refs.Next(refnum.PrefixPayment),
		Kind:          kind,
		UserID:        userID,
		Amount:        amount,
		Currency:      "USD",
		Method:        method,
		Description:   description,
	}
}

// amountEqual compares money values to the cent.
func amountEqual(a, b float64) bool {
	diff := a - b
	return diff < 0.005 && diff > -0.005
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
