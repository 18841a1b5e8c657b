package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BidStatus string

const (
	BidPending   BidStatus = "pending"
	BidAccepted  BidStatus = "accepted"
	BidRejected  BidStatus = "rejected"
	BidWithdrawn BidStatus = "withdrawn"
)

// MaxBidMessageLen bounds the optional message attached to a bid.
const MaxBidMessageLen = 500

type Bid struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	TaskID    int64           `json:"task_id" gorm:"not null;uniqueIndex:idx_bids_task_tasker"`
	TaskerID  int64           `json:"tasker_id" gorm:"not null;uniqueIndex:idx_bids_task_tasker"`
	BidAmount decimal.Decimal `json:"bid_amount" gorm:"type:decimal(12,2);not null"`
	Message   string          `json:"message,omitempty" gorm:"size:500"`
	Status    BidStatus       `json:"status" gorm:"size:50;not null;default:pending"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Task   *Task `json:"task,omitempty" gorm:"foreignKey:TaskID"`
	Tasker *User `json:"tasker,omitempty" gorm:"foreignKey:TaskerID"`
}

func (b *Bid) IsPending() bool  { return b.Status == BidPending }
func (b *Bid) IsAccepted() bool { return b.Status == BidAccepted }
