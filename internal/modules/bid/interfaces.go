package bid

import (
	"context"
	"time"

	"taskmarket/internal/domain"
)

type BidRepository interface {
	Create(ctx context.Context, b *domain.Bid) error
	GetByID(ctx context.Context, id int64) (*domain.Bid, error)
	ListByTask(ctx context.Context, taskID int64) ([]domain.Bid, error)
	ListByTasker(ctx context.Context, taskerID int64, status *domain.BidStatus) ([]domain.Bid, error)
	UpdateStatusIfPending(ctx context.Context, id int64, to domain.BidStatus) (bool, error)
	AcceptAndBook(ctx context.Context, bidID int64, startTime, endTime *time.Time) (*domain.Booking, error)
}

type TaskReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
}

// NotificationSender records lifecycle side effects for the counterparty.
type NotificationSender interface {
	NotifyBidAccepted(ctx context.Context, taskerID, bidID, bookingID int64) error
	NotifyBidRejected(ctx context.Context, taskerID, bidID int64) error
}
