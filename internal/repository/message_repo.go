package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"taskmarket/internal/domain"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// ListConversation returns the messages exchanged between two users in send
// order, optionally narrowed to a single booking.
func (r *MessageRepository) ListConversation(ctx context.Context, userID, otherID int64, bookingID *int64, limit int) ([]domain.Message, error) {
	q := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, otherID, otherID, userID)
	if bookingID != nil {
		q = q.Where("booking_id = ?", *bookingID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var messages []domain.Message
	err := q.Order("created_at asc, id asc").Find(&messages).Error
	return messages, err
}

func (r *MessageRepository) ListUnread(ctx context.Context, receiverID int64) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND read_at IS NULL", receiverID).
		Order("created_at desc").
		Find(&messages).Error
	return messages, err
}

// MarkRead stamps read_at once; repeated calls keep the first timestamp. Only
// the receiver's row matches, so a sender cannot mark its own message read.
func (r *MessageRepository) MarkRead(ctx context.Context, id, receiverID int64, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("id = ? AND receiver_id = ?", id, receiverID).
		Update("read_at", gorm.Expr("COALESCE(read_at, ?)", now))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
