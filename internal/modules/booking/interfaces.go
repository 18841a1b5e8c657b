package booking

import (
	"context"
	"time"

	"taskmarket/internal/domain"
)

// BookingRepository defines the guarded transition surface. Every mutation
// is a conditional update; false means the row was not in the expected state.
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListForTaskerByStatus(ctx context.Context, taskerID int64, statuses []domain.BookingStatus) ([]domain.Booking, error)
	MarkInProgress(ctx context.Context, id int64, now time.Time) (bool, error)
	Complete(ctx context.Context, id int64, now time.Time) (bool, error)
	Cancel(ctx context.Context, id int64) (bool, error)
	Dispute(ctx context.Context, id int64) (bool, error)
	MarkPaid(ctx context.Context, id int64) (bool, error)
}

type TaskReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
}

type NotificationSender interface {
	NotifyBookingCanceled(ctx context.Context, userID, bookingID int64) error
	NotifyBookingDisputed(ctx context.Context, userID, bookingID int64) error
}
