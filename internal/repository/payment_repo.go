package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"taskmarket/internal/domain"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var p domain.Payment
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) ListForPayer(ctx context.Context, payerID int64, status *domain.PaymentStatus) ([]domain.Payment, error) {
	return r.list(ctx, "payer_id = ?", payerID, status)
}

func (r *PaymentRepository) ListForPayee(ctx context.Context, payeeID int64, status *domain.PaymentStatus) ([]domain.Payment, error) {
	return r.list(ctx, "payee_id = ?", payeeID, status)
}

func (r *PaymentRepository) list(ctx context.Context, cond string, userID int64, status *domain.PaymentStatus) ([]domain.Payment, error) {
	q := r.db.WithContext(ctx).Where(cond, userID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var payments []domain.Payment
	err := q.Order("created_at desc").Find(&payments).Error
	return payments, err
}

// MarkCompleted moves pending -> completed. The existing transaction id is
// kept unless the gateway handed back a new one.
func (r *PaymentRepository) MarkCompleted(ctx context.Context, id int64, transactionID *string, now time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status":       domain.PaymentStatusCompleted,
		"processed_at": now,
	}
	if transactionID != nil {
		updates["transaction_id"] = *transactionID
	}

	res := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("id = ? AND status = ?", id, domain.PaymentStatusPending).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *PaymentRepository) MarkFailed(ctx context.Context, id int64, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Where("id = ? AND status = ?", id, domain.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":       domain.PaymentStatusFailed,
			"processed_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Refund moves completed -> refunded and flips the owning booking's
// payment_status in the same transaction so the two rows cannot diverge.
func (r *PaymentRepository) Refund(ctx context.Context, id int64, now time.Time) (*domain.Payment, error) {
	var p domain.Payment

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}

		res := tx.Model(&domain.Payment{}).
			Where("id = ? AND status = ?", id, domain.PaymentStatusCompleted).
			Updates(map[string]interface{}{
				"status":       domain.PaymentStatusRefunded,
				"processed_at": now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPaymentNotCompleted
		}

		if err := tx.Model(&domain.Booking{}).
			Where("id = ?", p.BookingID).
			Update("payment_status", domain.BookingPaymentRefunded).Error; err != nil {
			return err
		}

		p.Status = domain.PaymentStatusRefunded
		p.ProcessedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}
