package review

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"taskmarket/internal/domain"
	"taskmarket/internal/repository"
)

type Service struct {
	reviews  ReviewRepository
	bookings BookingReader
	notifs   NotificationSender
}

func NewService(reviews ReviewRepository, bookings BookingReader, notifs NotificationSender) *Service {
	return &Service{reviews: reviews, bookings: bookings, notifs: notifs}
}

// Create writes the acting party's review of the other party. Reviewer and
// reviewee are always the two booking parties in opposite roles, derived
// here, never taken from the request.
func (s *Service) Create(ctx context.Context, actorID int64, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < domain.MinRating || req.Rating > domain.MaxRating {
		return nil, ErrValidation
	}
	if len(req.Comment) > domain.MaxReviewCommentLen {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if !b.IsParty(actorID) {
		return nil, ErrNotBookingParty
	}
	if b.Status != domain.BookingCompleted {
		return nil, ErrBookingNotDone
	}

	rv := &domain.Review{
		BookingID:  b.ID,
		ReviewerID: actorID,
		RevieweeID: b.Counterparty(actorID),
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.reviews.Create(ctx, rv); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyReviewReceived(ctx, rv.RevieweeID, rv.ID)
	}

	return rv, nil
}

func (s *Service) ListForUser(ctx context.Context, revieweeID int64, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	return s.reviews.ListForUser(ctx, revieweeID, limit, offset)
}

func (s *Service) RatingForUser(ctx context.Context, revieweeID int64) (*repository.RatingSummary, error) {
	return s.reviews.RatingForUser(ctx, revieweeID)
}
