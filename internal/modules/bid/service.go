package bid

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"taskmarket/internal/domain"
	"taskmarket/internal/repository"
)

type AcceptResult struct {
	Bid     *domain.Bid     `json:"bid"`
	Booking *domain.Booking `json:"booking"`
}

type Service struct {
	bids   BidRepository
	tasks  TaskReader
	notifs NotificationSender
}

func NewService(bids BidRepository, tasks TaskReader, notifs NotificationSender) *Service {
	return &Service{bids: bids, tasks: tasks, notifs: notifs}
}

func (s *Service) Create(ctx context.Context, taskerID int64, req CreateBidRequest) (*domain.Bid, error) {
	amount, err := decimal.NewFromString(req.BidAmount)
	if err != nil || amount.IsNegative() {
		return nil, ErrValidation
	}
	if len(req.Message) > domain.MaxBidMessageLen {
		return nil, ErrValidation
	}

	t, err := s.tasks.GetByID(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if t.Status != domain.TaskOpen {
		return nil, ErrTaskNotOpen
	}
	if t.ClientID == taskerID {
		return nil, ErrOwnTask
	}

	b := &domain.Bid{
		TaskID:    req.TaskID,
		TaskerID:  taskerID,
		BidAmount: amount,
		Message:   req.Message,
		Status:    domain.BidPending,
	}

	if err := s.bids.Create(ctx, b); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateBid
		}
		return nil, err
	}

	return b, nil
}

// Accept turns a pending bid into an accepted one and creates the booking in
// the same transaction; the task moves open -> assigned as part of it. Under
// concurrent accepts on the same task exactly one call wins, the rest get
// ErrTaskAlreadyAssigned.
func (s *Service) Accept(ctx context.Context, bidID, actorID int64, actorRole string, req AcceptBidRequest) (*AcceptResult, error) {
	if req.StartTime != nil && req.EndTime != nil && req.EndTime.Before(*req.StartTime) {
		return nil, ErrValidation
	}

	b, t, err := s.bidWithTask(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if t.ClientID != actorID && actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	if !b.Status.CanTransitionTo(domain.BidAccepted) {
		return nil, ErrInvalidStatusTransition
	}

	booking, err := s.bids.AcceptAndBook(ctx, bidID, req.StartTime, req.EndTime)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBidNotPending):
			return nil, ErrInvalidStatusTransition
		case errors.Is(err, repository.ErrTaskAlreadyAssigned):
			return nil, ErrTaskAlreadyAssigned
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBidAccepted(ctx, b.TaskerID, b.ID, booking.ID)
	}

	accepted, err := s.bids.GetByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	return &AcceptResult{Bid: accepted, Booking: booking}, nil
}

func (s *Service) Reject(ctx context.Context, bidID, actorID int64, actorRole string) (*domain.Bid, error) {
	b, t, err := s.bidWithTask(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if t.ClientID != actorID && actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}

	if err := s.terminalTransition(ctx, b, domain.BidRejected); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyBidRejected(ctx, b.TaskerID, b.ID)
	}

	return s.bids.GetByID(ctx, bidID)
}

func (s *Service) Withdraw(ctx context.Context, bidID, actorID int64) (*domain.Bid, error) {
	b, _, err := s.bidWithTask(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if b.TaskerID != actorID {
		return nil, ErrForbidden
	}

	if err := s.terminalTransition(ctx, b, domain.BidWithdrawn); err != nil {
		return nil, err
	}

	return s.bids.GetByID(ctx, bidID)
}

func (s *Service) ListForTask(ctx context.Context, taskID, actorID int64, actorRole string) ([]domain.Bid, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if t.ClientID != actorID && actorRole != string(domain.RoleAdmin) {
		return nil, ErrForbidden
	}
	return s.bids.ListByTask(ctx, taskID)
}

func (s *Service) ListMine(ctx context.Context, taskerID int64, status *domain.BidStatus) ([]domain.Bid, error) {
	return s.bids.ListByTasker(ctx, taskerID, status)
}

func (s *Service) terminalTransition(ctx context.Context, b *domain.Bid, to domain.BidStatus) error {
	if !b.Status.CanTransitionTo(to) {
		return ErrInvalidStatusTransition
	}

	ok, err := s.bids.UpdateStatusIfPending(ctx, b.ID, to)
	if err != nil {
		return err
	}
	if !ok {
		// raced with another transition since the read above
		return ErrInvalidStatusTransition
	}
	return nil
}

func (s *Service) bidWithTask(ctx context.Context, bidID int64) (*domain.Bid, *domain.Task, error) {
	b, err := s.bids.GetByID(ctx, bidID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}

	t := b.Task
	if t == nil {
		t, err = s.tasks.GetByID(ctx, b.TaskID)
		if err != nil {
			return nil, nil, err
		}
	}
	return b, t, nil
}
