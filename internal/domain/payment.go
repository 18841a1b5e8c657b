package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodPayPal       PaymentMethod = "paypal"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodWallet       PaymentMethod = "wallet"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

type Payment struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	BookingID     int64           `json:"booking_id" gorm:"not null;index"`
	PayerID       int64           `json:"payer_id" gorm:"not null;index"`
	PayeeID       int64           `json:"payee_id" gorm:"not null;index"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	Currency      Currency        `json:"currency" gorm:"size:3;not null"`
	PaymentMethod PaymentMethod   `json:"payment_method" gorm:"size:50;not null"`
	Status        PaymentStatus   `json:"status" gorm:"size:50;not null;default:pending"`
	TransactionID *string         `json:"transaction_id,omitempty" gorm:"size:255"`
	ProcessedAt   *time.Time      `json:"processed_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`

	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
	Payer   *User    `json:"payer,omitempty" gorm:"foreignKey:PayerID"`
	Payee   *User    `json:"payee,omitempty" gorm:"foreignKey:PayeeID"`
}

func (p *Payment) IsCompleted() bool { return p.Status == PaymentStatusCompleted }

// PaymentMethods lists the accepted payment methods.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{MethodCreditCard, MethodPayPal, MethodBankTransfer, MethodWallet}
}

// Currencies lists the accepted currencies.
func Currencies() []Currency {
	return []Currency{CurrencyUSD, CurrencyEUR, CurrencyGBP}
}

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCreditCard, MethodPayPal, MethodBankTransfer, MethodWallet:
		return true
	}
	return false
}

func ValidCurrency(c Currency) bool {
	switch c {
	case CurrencyUSD, CurrencyEUR, CurrencyGBP:
		return true
	}
	return false
}
