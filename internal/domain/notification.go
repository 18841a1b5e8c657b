package domain

import "time"

type NotificationType string

const (
	NotifyBidAccepted      NotificationType = "bid_accepted"
	NotifyBidRejected      NotificationType = "bid_rejected"
	NotifyBookingCanceled  NotificationType = "booking_canceled"
	NotifyBookingDisputed  NotificationType = "booking_disputed"
	NotifyPaymentCompleted NotificationType = "payment_completed"
	NotifyPaymentRefunded  NotificationType = "payment_refunded"
	NotifyReviewReceived   NotificationType = "review_received"
)

// Notification is a persisted lifecycle side-effect record. Delivery to a
// device or mailbox is someone else's job.
type Notification struct {
	ID        int64            `json:"id" gorm:"primaryKey"`
	UserID    int64            `json:"user_id" gorm:"not null;index"`
	Type      NotificationType `json:"type" gorm:"size:50;not null"`
	Message   string           `json:"message" gorm:"type:text"`
	Read      bool             `json:"read" gorm:"not null;default:false"`
	CreatedAt time.Time        `json:"created_at"`
}
