package domain

import "time"

// Status is the order fulfilment state machine.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusRefunded   Status = "refunded"
)

// PaymentStatus is the payment state machine.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// statusTransitions is the full order-status transition table. cancelled
// and refunded are terminal.
var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {StatusRefunded},
	StatusCancelled:  {},
	StatusRefunded:   {},
}

// paymentTransitions is the payment-status transition table. refunded is
// terminal; failed payments may be retried into paid.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:  {PaymentPaid, PaymentFailed},
	PaymentPaid:     {PaymentRefunded},
	PaymentFailed:   {PaymentPaid},
	PaymentRefunded: {},
}

// ValidStatus reports whether the value appears in the transition table.
func ValidStatus(s Status) bool {
	_, ok := statusTransitions[s]
	return ok
}

// ValidPaymentStatus reports whether the value appears in the transition table.
func ValidPaymentStatus(s PaymentStatus) bool {
	_, ok := paymentTransitions[s]
	return ok
}

// CanTransitionStatus is the order-status transition guard.
func CanTransitionStatus(from, to Status) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// CanTransitionPayment is the payment-status transition guard.
func CanTransitionPayment(from, to PaymentStatus) bool {
	for _, allowed := range paymentTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// TransitionStatus advances the order status. A disallowed transition
// fails with *InvalidTransitionError and leaves the order untouched;
// UpdatedAt is bumped on success only.
func (o *Order) TransitionStatus(next Status) error {
	if !CanTransitionStatus(o.Status, next) {
		return &InvalidTransitionError{
			Kind: TransitionKindStatus,
			From: string(o.Status),
			To:   string(next),
		}
	}
	o.Status = next
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// TransitionPayment advances the payment status. When payment lands on
// paid while the order is still pending, the order status is advanced to
// confirmed in the same mutation — this is the single intentional coupling
// between the two state machines, so a successful payment confirms a fresh
// order without a second call.
func (o *Order) TransitionPayment(next PaymentStatus) error {
	if !CanTransitionPayment(o.PaymentStatus, next) {
		return &InvalidTransitionError{
			Kind: TransitionKindPayment,
			From: string(o.PaymentStatus),
			To:   string(next),
		}
	}
	o.PaymentStatus = next
	if next == PaymentPaid && o.Status == StatusPending {
		o.Status = StatusConfirmed
	}
	o.UpdatedAt = time.Now().UTC()
	return nil
}
