package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"taskmarket/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Preload("Task").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Where("tasker_id = ? OR client_id = ?", userID, userID).
		Order("created_at desc").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) ListForTaskerByStatus(ctx context.Context, taskerID int64, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Where("tasker_id = ? AND status IN ?", taskerID, statuses).
		Order("created_at desc").
		Find(&bookings).Error
	return bookings, err
}

// MarkInProgress moves scheduled -> in_progress. start_time is stamped only
// when still unset so the agreed schedule stays authoritative; the COALESCE
// also makes repeated calls idempotent with respect to start_time.
func (r *BookingRepository) MarkInProgress(ctx context.Context, id int64, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, domain.BookingScheduled).
		Updates(map[string]interface{}{
			"status":     domain.BookingInProgress,
			"start_time": gorm.Expr("COALESCE(start_time, ?)", now),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Complete moves in_progress -> completed, stamping end_time when unset.
func (r *BookingRepository) Complete(ctx context.Context, id int64, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND status = ?", id, domain.BookingInProgress).
		Updates(map[string]interface{}{
			"status":   domain.BookingCompleted,
			"end_time": gorm.Expr("COALESCE(end_time, ?)", now),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *BookingRepository) Cancel(ctx context.Context, id int64) (bool, error) {
	return r.updateStatusFromActive(ctx, id, domain.BookingCanceled)
}

func (r *BookingRepository) Dispute(ctx context.Context, id int64) (bool, error) {
	return r.updateStatusFromActive(ctx, id, domain.BookingDisputed)
}

func (r *BookingRepository) updateStatusFromActive(ctx context.Context, id int64, to domain.BookingStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND status IN ?", id, []domain.BookingStatus{domain.BookingScheduled, domain.BookingInProgress}).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkPaid moves the payment axis pending -> paid.
func (r *BookingRepository) MarkPaid(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND payment_status = ?", id, domain.BookingPaymentPending).
		Update("payment_status", domain.BookingPaymentPaid)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
