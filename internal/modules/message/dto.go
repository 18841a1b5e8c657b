package message

type SendMessageRequest struct {
	ReceiverID int64  `json:"receiver_id" binding:"required"`
	BookingID  *int64 `json:"booking_id"`
	Body       string `json:"body" binding:"required"`
}
