package task

import (
	"context"

	"taskmarket/internal/domain"
)

// TaskRepository defines the persistence surface the task service needs.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListOpen(ctx context.Context, limit, offset int) ([]domain.Task, error)
	ListByClient(ctx context.Context, clientID int64) ([]domain.Task, error)
	UpdateStatusFrom(ctx context.Context, id int64, from []domain.TaskStatus, to domain.TaskStatus) (bool, error)
	Delete(ctx context.Context, id int64) error
	ReplaceSkills(ctx context.Context, t *domain.Task, skillIDs []int64) error
}
