package payment

import (
	"context"
	"time"

	"taskmarket/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListForPayer(ctx context.Context, payerID int64, status *domain.PaymentStatus) ([]domain.Payment, error)
	ListForPayee(ctx context.Context, payeeID int64, status *domain.PaymentStatus) ([]domain.Payment, error)
	MarkCompleted(ctx context.Context, id int64, transactionID *string, now time.Time) (bool, error)
	MarkFailed(ctx context.Context, id int64, now time.Time) (bool, error)
	Refund(ctx context.Context, id int64, now time.Time) (*domain.Payment, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type NotificationSender interface {
	NotifyPaymentCompleted(ctx context.Context, userID, paymentID int64) error
	NotifyPaymentRefunded(ctx context.Context, userID, paymentID int64) error
}
