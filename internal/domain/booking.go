package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingScheduled  BookingStatus = "scheduled"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCanceled   BookingStatus = "canceled"
	BookingDisputed   BookingStatus = "disputed"
)

// BookingPaymentStatus is the second status axis on a booking. It moves
// independently of the execution status: pending -> paid -> refunded.
type BookingPaymentStatus string

const (
	BookingPaymentPending  BookingPaymentStatus = "pending"
	BookingPaymentPaid     BookingPaymentStatus = "paid"
	BookingPaymentRefunded BookingPaymentStatus = "refunded"
)

type Booking struct {
	ID            int64                `json:"id" gorm:"primaryKey"`
	TaskID        int64                `json:"task_id" gorm:"not null;index"`
	TaskerID      int64                `json:"tasker_id" gorm:"not null;index"`
	ClientID      int64                `json:"client_id" gorm:"not null;index"`
	AgreedPrice   decimal.Decimal      `json:"agreed_price" gorm:"type:decimal(12,2);not null"`
	StartTime     *time.Time           `json:"start_time,omitempty"`
	EndTime       *time.Time           `json:"end_time,omitempty"`
	Status        BookingStatus        `json:"status" gorm:"size:50;not null;default:scheduled"`
	PaymentStatus BookingPaymentStatus `json:"payment_status" gorm:"size:50;not null;default:pending"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`

	Task     *Task     `json:"task,omitempty" gorm:"foreignKey:TaskID"`
	Tasker   *User     `json:"tasker,omitempty" gorm:"foreignKey:TaskerID"`
	Client   *User     `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Payments []Payment `json:"payments,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Reviews  []Review  `json:"reviews,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// DurationInHours returns the booked duration rounded to two decimals,
// or nil while either timestamp is still unset.
func (b *Booking) DurationInHours() *float64 {
	if b.StartTime == nil || b.EndTime == nil {
		return nil
	}
	minutes := b.EndTime.Sub(*b.StartTime).Minutes()
	hours := math.Round(minutes/60*100) / 100
	return &hours
}

// TotalAmount is the amount owed for this booking. Fixed-budget tasks pay the
// agreed price as-is; hourly tasks pay per computed hour, falling back to a
// single hour when no duration can be derived yet.
func (b *Booking) TotalAmount(budgetType BudgetType) decimal.Decimal {
	if budgetType == BudgetFixed {
		return b.AgreedPrice
	}

	hours := 1.0
	if d := b.DurationInHours(); d != nil {
		hours = *d
	}
	return b.AgreedPrice.Mul(decimal.NewFromFloat(hours)).Round(2)
}

// IsParty reports whether userID is one of the two booking parties.
func (b *Booking) IsParty(userID int64) bool {
	return userID == b.ClientID || userID == b.TaskerID
}

// Counterparty returns the other booking party for userID, or 0 when userID
// is not a party at all.
func (b *Booking) Counterparty(userID int64) int64 {
	switch userID {
	case b.ClientID:
		return b.TaskerID
	case b.TaskerID:
		return b.ClientID
	default:
		return 0
	}
}
