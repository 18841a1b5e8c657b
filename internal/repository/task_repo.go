package repository

import (
	"context"

	"gorm.io/gorm"

	"taskmarket/internal/domain"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Skills").
		First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) ListOpen(ctx context.Context, limit, offset int) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("status = ?", domain.TaskOpen).
		Order("created_at desc").
		Limit(limit).Offset(offset).
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListByClient(ctx context.Context, clientID int64) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

// UpdateStatusFrom performs the guarded transition and reports whether the
// row was actually moved. Zero rows means the task was not in any of the
// expected source states (or does not exist); the caller re-reads to tell
// those apart.
func (r *TaskRepository) UpdateStatusFrom(ctx context.Context, id int64, from []domain.TaskStatus, to domain.TaskStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("id = ? AND status IN ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	// bids go with the task; the FK is declared ON DELETE CASCADE but sqlite
	// runs without foreign_keys pragma, so remove them explicitly
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&domain.Bid{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Task{}, id).Error
	})
}

func (r *TaskRepository) ReplaceSkills(ctx context.Context, t *domain.Task, skillIDs []int64) error {
	if len(skillIDs) == 0 {
		return r.db.WithContext(ctx).Model(t).Association("Skills").Clear()
	}
	var skills []domain.Skill
	if err := r.db.WithContext(ctx).Where("id IN ?", skillIDs).Find(&skills).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(t).Association("Skills").Replace(skills)
}
