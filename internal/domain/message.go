package domain

import "time"

const MaxMessageBodyLen = 1000

// Message is a direct message between two users, optionally pinned to the
// booking it is about. read_at doubles as the read flag.
type Message struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	SenderID   int64      `json:"sender_id" gorm:"not null;index"`
	ReceiverID int64      `json:"receiver_id" gorm:"not null;index"`
	BookingID  *int64     `json:"booking_id,omitempty" gorm:"index"`
	Body       string     `json:"body" gorm:"type:text;not null"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (m *Message) IsRead() bool { return m.ReadAt != nil }
