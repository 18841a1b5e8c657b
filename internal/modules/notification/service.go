package notification

import (
	"context"
	"fmt"

	"taskmarket/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, id, userID int64) (bool, error)
}

// Service records lifecycle events as notification rows. It satisfies the
// NotificationSender interfaces of the bid, booking, payment and review
// modules; delivering the records anywhere is out of scope here.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) NotifyBidAccepted(ctx context.Context, taskerID, bidID, bookingID int64) error {
	return s.record(ctx, taskerID, domain.NotifyBidAccepted,
		fmt.Sprintf("Your bid #%d was accepted; booking #%d created", bidID, bookingID))
}

func (s *Service) NotifyBidRejected(ctx context.Context, taskerID, bidID int64) error {
	return s.record(ctx, taskerID, domain.NotifyBidRejected,
		fmt.Sprintf("Your bid #%d was rejected", bidID))
}

func (s *Service) NotifyBookingCanceled(ctx context.Context, userID, bookingID int64) error {
	return s.record(ctx, userID, domain.NotifyBookingCanceled,
		fmt.Sprintf("Booking #%d was canceled", bookingID))
}

func (s *Service) NotifyBookingDisputed(ctx context.Context, userID, bookingID int64) error {
	return s.record(ctx, userID, domain.NotifyBookingDisputed,
		fmt.Sprintf("Booking #%d is under dispute", bookingID))
}

func (s *Service) NotifyPaymentCompleted(ctx context.Context, userID, paymentID int64) error {
	return s.record(ctx, userID, domain.NotifyPaymentCompleted,
		fmt.Sprintf("Payment #%d completed", paymentID))
}

func (s *Service) NotifyPaymentRefunded(ctx context.Context, userID, paymentID int64) error {
	return s.record(ctx, userID, domain.NotifyPaymentRefunded,
		fmt.Sprintf("Payment #%d was refunded", paymentID))
}

func (s *Service) NotifyReviewReceived(ctx context.Context, userID, reviewID int64) error {
	return s.record(ctx, userID, domain.NotifyReviewReceived,
		fmt.Sprintf("You received a new review (#%d)", reviewID))
}

func (s *Service) List(ctx context.Context, userID int64, unreadOnly bool) ([]domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID, unreadOnly)
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) (bool, error) {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *Service) record(ctx context.Context, userID int64, typ domain.NotificationType, msg string) error {
	return s.repo.Create(ctx, &domain.Notification{
		UserID:  userID,
		Type:    typ,
		Message: msg,
	})
}
