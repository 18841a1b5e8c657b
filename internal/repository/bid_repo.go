package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"taskmarket/internal/domain"
)

type BidRepository struct {
	db *gorm.DB
}

func NewBidRepository(db *gorm.DB) *BidRepository {
	return &BidRepository{db: db}
}

func (r *BidRepository) Create(ctx context.Context, b *domain.Bid) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BidRepository) GetByID(ctx context.Context, id int64) (*domain.Bid, error) {
	var b domain.Bid
	if err := r.db.WithContext(ctx).Preload("Task").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BidRepository) ListByTask(ctx context.Context, taskID int64) ([]domain.Bid, error) {
	var bids []domain.Bid
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at asc").
		Find(&bids).Error
	return bids, err
}

func (r *BidRepository) ListByTasker(ctx context.Context, taskerID int64, status *domain.BidStatus) ([]domain.Bid, error) {
	q := r.db.WithContext(ctx).Where("tasker_id = ?", taskerID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var bids []domain.Bid
	err := q.Order("created_at desc").Find(&bids).Error
	return bids, err
}

// UpdateStatusIfPending is the guarded terminal transition for reject and
// withdraw. Returns false when the bid had already left pending (or is gone).
func (r *BidRepository) UpdateStatusIfPending(ctx context.Context, id int64, to domain.BidStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Bid{}).
		Where("id = ? AND status = ?", id, domain.BidPending).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// AcceptAndBook accepts a bid and creates its booking in one transaction so
// an accepted bid can never exist without a booking. The conditional update
// on the task row (open -> assigned) is the serialization point: of any
// number of concurrent accepts on the same task, exactly one sees
// RowsAffected == 1.
func (r *BidRepository) AcceptAndBook(ctx context.Context, bidID int64, startTime, endTime *time.Time) (*domain.Booking, error) {
	var booking *domain.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bid domain.Bid
		if err := tx.First(&bid, bidID).Error; err != nil {
			return err
		}
		if !bid.IsPending() {
			return ErrBidNotPending
		}

		res := tx.Model(&domain.Task{}).
			Where("id = ? AND status = ?", bid.TaskID, domain.TaskOpen).
			Updates(map[string]interface{}{
				"status":             domain.TaskAssigned,
				"assigned_tasker_id": bid.TaskerID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTaskAlreadyAssigned
		}

		res = tx.Model(&domain.Bid{}).
			Where("id = ? AND status = ?", bidID, domain.BidPending).
			Update("status", domain.BidAccepted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrBidNotPending
		}

		var task domain.Task
		if err := tx.First(&task, bid.TaskID).Error; err != nil {
			return err
		}

		b := &domain.Booking{
			TaskID:        bid.TaskID,
			TaskerID:      bid.TaskerID,
			ClientID:      task.ClientID,
			AgreedPrice:   bid.BidAmount,
			StartTime:     startTime,
			EndTime:       endTime,
			Status:        domain.BookingScheduled,
			PaymentStatus: domain.BookingPaymentPending,
		}
		if err := tx.Create(b).Error; err != nil {
			return err
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return booking, nil
}
