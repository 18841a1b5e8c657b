package bid

import "time"

type CreateBidRequest struct {
	TaskID    int64  `json:"task_id" binding:"required"`
	BidAmount string `json:"bid_amount" binding:"required"`
	Message   string `json:"message" binding:"omitempty,max=500"`
}

// AcceptBidRequest optionally fixes the schedule of the booking created by
// the acceptance.
type AcceptBidRequest struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
}
