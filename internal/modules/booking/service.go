package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"taskmarket/internal/domain"
)

type Service struct {
	bookings BookingRepository
	tasks    TaskReader
	notifs   NotificationSender
}

func NewService(bookings BookingRepository, tasks TaskReader, notifs NotificationSender) *Service {
	return &Service{bookings: bookings, tasks: tasks, notifs: notifs}
}

func (s *Service) Get(ctx context.Context, id, actorID int64, actorRole string) (*BookingDetails, error) {
	b, err := s.authorized(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	return s.withDetails(ctx, b)
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListForUser(ctx, userID)
}

func (s *Service) ListActiveForTasker(ctx context.Context, taskerID int64) ([]domain.Booking, error) {
	return s.bookings.ListForTaskerByStatus(ctx, taskerID,
		[]domain.BookingStatus{domain.BookingScheduled, domain.BookingInProgress})
}

// MarkInProgress starts the work: scheduled -> in_progress. An already-set
// start_time survives, so calling this twice never shifts the schedule.
func (s *Service) MarkInProgress(ctx context.Context, id, actorID int64, actorRole string) (*BookingDetails, error) {
	b, err := s.authorized(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanTransitionTo(domain.BookingInProgress) {
		return nil, ErrInvalidStatusTransition
	}

	ok, err := s.bookings.MarkInProgress(ctx, id, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidStatusTransition
	}

	return s.reload(ctx, id)
}

// Complete finishes the work: in_progress -> completed. A booking that was
// never started cannot be completed.
func (s *Service) Complete(ctx context.Context, id, actorID int64, actorRole string) (*BookingDetails, error) {
	b, err := s.authorized(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanTransitionTo(domain.BookingCompleted) {
		return nil, ErrInvalidStatusTransition
	}

	// completing ahead of an agreed future start must not stamp an end_time
	// earlier than start_time
	now := time.Now().UTC()
	if b.StartTime != nil && b.StartTime.After(now) {
		now = *b.StartTime
	}

	ok, err := s.bookings.Complete(ctx, id, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidStatusTransition
	}

	return s.reload(ctx, id)
}

// Cancel is reachable from scheduled and in_progress only; completed and
// disputed bookings stay as they are.
func (s *Service) Cancel(ctx context.Context, id, actorID int64, actorRole string) (*BookingDetails, error) {
	b, err := s.authorized(ctx, id, actorID, actorRole)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanTransitionTo(domain.BookingCanceled) {
		return nil, ErrInvalidStatusTransition
	}

	ok, err := s.bookings.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidStatusTransition
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingCanceled(ctx, b.Counterparty(actorID), b.ID)
	}

	return s.reload(ctx, id)
}

// Dispute is an admin-recorded transition; the parties raise disputes
// out-of-band with support.
func (s *Service) Dispute(ctx context.Context, id int64, actorRole string) (*BookingDetails, error) {
	if actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !b.Status.CanTransitionTo(domain.BookingDisputed) {
		return nil, ErrInvalidStatusTransition
	}

	ok, err := s.bookings.Dispute(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidStatusTransition
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBookingDisputed(ctx, b.ClientID, b.ID)
		_ = s.notifs.NotifyBookingDisputed(ctx, b.TaskerID, b.ID)
	}

	return s.reload(ctx, id)
}

// MarkPaid moves the payment axis pending -> paid. Only the paying client
// may do this.
func (s *Service) MarkPaid(ctx context.Context, id, actorID int64) (*BookingDetails, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.ClientID != actorID {
		return nil, ErrForbidden
	}
	if !b.PaymentStatus.CanTransitionTo(domain.BookingPaymentPaid) {
		return nil, ErrInvalidPaymentStatus
	}

	ok, err := s.bookings.MarkPaid(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidPaymentStatus
	}

	return s.reload(ctx, id)
}

func (s *Service) authorized(ctx context.Context, id, actorID int64, actorRole string) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !b.IsParty(actorID) && actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) reload(ctx context.Context, id int64) (*BookingDetails, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withDetails(ctx, b)
}

func (s *Service) withDetails(ctx context.Context, b *domain.Booking) (*BookingDetails, error) {
	budgetType := domain.BudgetFixed
	if b.Task != nil {
		budgetType = b.Task.BudgetType
	} else {
		t, err := s.tasks.GetByID(ctx, b.TaskID)
		if err != nil {
			return nil, err
		}
		budgetType = t.BudgetType
	}
	return detailsFor(b, budgetType), nil
}
