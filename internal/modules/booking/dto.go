package booking

import (
	"github.com/shopspring/decimal"

	"taskmarket/internal/domain"
)

// BookingDetails is a booking snapshot with the derived billing values.
type BookingDetails struct {
	*domain.Booking
	DurationInHours *float64        `json:"duration_in_hours"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

func detailsFor(b *domain.Booking, budgetType domain.BudgetType) *BookingDetails {
	return &BookingDetails{
		Booking:         b,
		DurationInHours: b.DurationInHours(),
		TotalAmount:     b.TotalAmount(budgetType),
	}
}
