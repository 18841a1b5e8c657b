package payment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"taskmarket/internal/domain"
	"taskmarket/internal/repository"
)

type Service struct {
	payments PaymentRepository
	bookings BookingReader
	notifs   NotificationSender
}

func NewService(payments PaymentRepository, bookings BookingReader, notifs NotificationSender) *Service {
	return &Service{payments: payments, bookings: bookings, notifs: notifs}
}

// Create opens a pending payment against a booking. Payer and payee are
// derived from the booking parties, never taken from the request.
func (s *Service) Create(ctx context.Context, actorID int64, req CreatePaymentRequest) (*domain.Payment, error) {
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.IsNegative() {
		return nil, ErrValidation
	}
	if !domain.ValidCurrency(domain.Currency(req.Currency)) ||
		!domain.ValidPaymentMethod(domain.PaymentMethod(req.PaymentMethod)) {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if !b.IsParty(actorID) {
		return nil, ErrForbidden
	}

	txRef := req.TransactionID
	if txRef == nil {
		// internal reference until the gateway reports its own
		ref := uuid.NewString()
		txRef = &ref
	}

	p := &domain.Payment{
		BookingID:     b.ID,
		PayerID:       b.ClientID,
		PayeeID:       b.TaskerID,
		Amount:        amount,
		Currency:      domain.Currency(req.Currency),
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		TransactionID: txRef,
		Status:        domain.PaymentStatusPending,
	}

	if err := s.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) Get(ctx context.Context, id, actorID int64, actorRole string) (*domain.Payment, error) {
	return s.authorized(ctx, id, actorID, actorRole)
}

func (s *Service) ListMine(ctx context.Context, actorID int64, actorRole string, status *domain.PaymentStatus) ([]domain.Payment, error) {
	if actorRole == string(domain.RoleTasker) {
		return s.payments.ListForPayee(ctx, actorID, status)
	}
	return s.payments.ListForPayer(ctx, actorID, status)
}

// MarkCompleted settles a pending payment; a transaction reference from the
// gateway replaces the stored one only when supplied.
func (s *Service) MarkCompleted(ctx context.Context, id, actorID int64, actorRole string, req CompletePaymentRequest) (*domain.Payment, error) {
	p, err := s.authorized(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransitionTo(domain.PaymentStatusCompleted) {
		return nil, ErrInvalidStatusTransition
	}

	ok, err := s.payments.MarkCompleted(ctx, id, req.TransactionID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidStatusTransition
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyPaymentCompleted(ctx, p.PayeeID, p.ID)
	}

	return s.payments.GetByID(ctx, id)
}

func (s *Service) MarkFailed(ctx context.Context, id, actorID int64, actorRole string) (*domain.Payment, error) {
	p, err := s.authorized(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransitionTo(domain.PaymentStatusFailed) {
		return nil, ErrInvalidStatusTransition
	}

	ok, err := s.payments.MarkFailed(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidStatusTransition
	}

	return s.payments.GetByID(ctx, id)
}

// Refund reverses a completed payment and flips the owning booking's
// payment_status in the same transaction.
func (s *Service) Refund(ctx context.Context, id, actorID int64, actorRole string) (*domain.Payment, error) {
	p, err := s.authorized(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	if !p.Status.CanTransitionTo(domain.PaymentStatusRefunded) {
		return nil, ErrInvalidStatusTransition
	}

	refunded, err := s.payments.Refund(ctx, id, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotCompleted) {
			return nil, ErrInvalidStatusTransition
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyPaymentRefunded(ctx, refunded.PayerID, refunded.ID)
	}

	return refunded, nil
}

func (s *Service) authorized(ctx context.Context, id, actorID int64, actorRole string) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.PayerID != actorID && p.PayeeID != actorID && actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	return p, nil
}
