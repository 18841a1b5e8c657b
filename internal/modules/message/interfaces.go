package message

import (
	"context"
	"time"

	"taskmarket/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	ListConversation(ctx context.Context, userID, otherID int64, bookingID *int64, limit int) ([]domain.Message, error)
	ListUnread(ctx context.Context, receiverID int64) ([]domain.Message, error)
	MarkRead(ctx context.Context, id, receiverID int64, now time.Time) (bool, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}
