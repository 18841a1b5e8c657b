package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5

	MaxReviewCommentLen = 500
)

type Review struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	BookingID  int64     `json:"booking_id" gorm:"not null;uniqueIndex:idx_reviews_booking_reviewer"`
	ReviewerID int64     `json:"reviewer_id" gorm:"not null;uniqueIndex:idx_reviews_booking_reviewer"`
	RevieweeID int64     `json:"reviewee_id" gorm:"not null;index"`
	Rating     int       `json:"rating" gorm:"not null"`
	Comment    string    `json:"comment,omitempty" gorm:"size:500"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Booking  *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Reviewer *User    `json:"reviewer,omitempty" gorm:"foreignKey:ReviewerID"`
	Reviewee *User    `json:"reviewee,omitempty" gorm:"foreignKey:RevieweeID"`
}
