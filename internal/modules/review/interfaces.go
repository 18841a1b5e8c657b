package review

import (
	"context"

	"taskmarket/internal/domain"
	"taskmarket/internal/repository"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *domain.Review) error
	ListForUser(ctx context.Context, revieweeID int64, limit, offset int) ([]domain.Review, error)
	RatingForUser(ctx context.Context, revieweeID int64) (*repository.RatingSummary, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type NotificationSender interface {
	NotifyReviewReceived(ctx context.Context, userID, reviewID int64) error
}
