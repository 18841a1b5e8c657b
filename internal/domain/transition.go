package domain

// Allowed lifecycle transitions, one table per status field. A status absent
// from its table is terminal. Repositories still guard every UPDATE with a
// WHERE on the current status; these tables are the application-level source
// of truth the services consult first.

var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskOpen:       {TaskAssigned, TaskCanceled},
	TaskAssigned:   {TaskInProgress, TaskCanceled, TaskDisputed},
	TaskInProgress: {TaskCompleted, TaskCanceled, TaskDisputed},
}

var bidTransitions = map[BidStatus][]BidStatus{
	BidPending: {BidAccepted, BidRejected, BidWithdrawn},
}

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingScheduled:  {BookingInProgress, BookingCanceled, BookingDisputed},
	BookingInProgress: {BookingCompleted, BookingCanceled, BookingDisputed},
}

var bookingPaymentTransitions = map[BookingPaymentStatus][]BookingPaymentStatus{
	BookingPaymentPending: {BookingPaymentPaid},
	BookingPaymentPaid:    {BookingPaymentRefunded},
}

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:   {PaymentStatusCompleted, PaymentStatusFailed},
	PaymentStatusCompleted: {PaymentStatusRefunded},
}

func (s TaskStatus) CanTransitionTo(to TaskStatus) bool {
	return containsStatus(taskTransitions[s], to)
}

func (s BidStatus) CanTransitionTo(to BidStatus) bool {
	return containsStatus(bidTransitions[s], to)
}

func (s BookingStatus) CanTransitionTo(to BookingStatus) bool {
	return containsStatus(bookingTransitions[s], to)
}

func (s BookingPaymentStatus) CanTransitionTo(to BookingPaymentStatus) bool {
	return containsStatus(bookingPaymentTransitions[s], to)
}

func (s PaymentStatus) CanTransitionTo(to PaymentStatus) bool {
	return containsStatus(paymentTransitions[s], to)
}

func containsStatus[T comparable](allowed []T, to T) bool {
	for _, v := range allowed {
		if v == to {
			return true
		}
	}
	return false
}
