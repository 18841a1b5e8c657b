package task

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"taskmarket/internal/domain"
)

type Service struct {
	tasks TaskRepository
}

func NewService(tasks TaskRepository) *Service {
	return &Service{tasks: tasks}
}

func (s *Service) Create(ctx context.Context, clientID int64, req CreateTaskRequest) (*domain.Task, error) {
	amount, err := decimal.NewFromString(req.BudgetAmount)
	if err != nil || amount.IsNegative() {
		return nil, ErrValidation
	}

	if req.Deadline != nil && req.PreferredDate != nil && !req.Deadline.After(*req.PreferredDate) {
		return nil, ErrValidation
	}

	t := &domain.Task{
		ClientID:      clientID,
		CategoryID:    req.CategoryID,
		Title:         req.Title,
		Description:   req.Description,
		BudgetType:    domain.BudgetType(req.BudgetType),
		BudgetAmount:  amount,
		Status:        domain.TaskOpen,
		PreferredDate: req.PreferredDate,
		Deadline:      req.Deadline,
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}

	if len(req.SkillIDs) > 0 {
		if err := s.tasks.ReplaceSkills(ctx, t, req.SkillIDs); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (s *Service) ListOpen(ctx context.Context, limit, offset int) ([]domain.Task, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.tasks.ListOpen(ctx, limit, offset)
}

func (s *Service) ListMine(ctx context.Context, clientID int64) ([]domain.Task, error) {
	return s.tasks.ListByClient(ctx, clientID)
}

// Cancel is the client-driven task transition. Assignment happens through
// bid acceptance, completion through the booking lifecycle.
func (s *Service) Cancel(ctx context.Context, id, actorID int64) (*domain.Task, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.ClientID != actorID {
		return nil, ErrForbidden
	}
	if !t.Status.CanTransitionTo(domain.TaskCanceled) {
		return nil, ErrInvalidStatusTransition
	}

	ok, err := s.tasks.UpdateStatusFrom(ctx, id,
		[]domain.TaskStatus{domain.TaskOpen, domain.TaskAssigned, domain.TaskInProgress},
		domain.TaskCanceled)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidStatusTransition
	}

	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id, actorID int64) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if t.ClientID != actorID {
		return ErrForbidden
	}
	return s.tasks.Delete(ctx, id)
}
