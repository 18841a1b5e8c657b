package payment

type CreatePaymentRequest struct {
	BookingID     int64   `json:"booking_id" binding:"required"`
	Amount        string  `json:"amount" binding:"required"`
	Currency      string  `json:"currency" binding:"required,oneof=USD EUR GBP"`
	PaymentMethod string  `json:"payment_method" binding:"required,oneof=credit_card paypal bank_transfer wallet"`
	TransactionID *string `json:"transaction_id" binding:"omitempty,max=255"`
}

type CompletePaymentRequest struct {
	TransactionID *string `json:"transaction_id" binding:"omitempty,max=255"`
}
