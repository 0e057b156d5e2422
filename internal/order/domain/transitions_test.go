package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder(NewOrderInput{
		ID: 42,
		Customer: CustomerDetails{
			FirstName: "Thabo",
			LastName:  "Mokoena",
			Email:     "thabo@example.co.za",
			Phone:     "0821234567",
		},
		Address: DeliveryAddress{
			Street:     "12 Vilakazi Street",
			City:       "Soweto",
			Province:   "Gauteng",
			PostalCode: "1804",
		},
		Items: []Item{
			{ProductID: 1, Name: "Classic Kota", Price: 10000, Quantity: 1, Total: 10000},
		},
		DeliveryFee:   DeliveryFee,
		PaymentMethod: PaymentCard,
	})
	require.NoError(t, err)
	return order
}

func TestStatusTransitionTable(t *testing.T) {
	all := []Status{
		StatusPending, StatusConfirmed, StatusProcessing,
		StatusShipped, StatusDelivered, StatusCancelled, StatusRefunded,
	}

	allowed := map[Status]map[Status]bool{
		StatusPending:    {StatusConfirmed: true, StatusCancelled: true},
		StatusConfirmed:  {StatusProcessing: true, StatusCancelled: true},
		StatusProcessing: {StatusShipped: true, StatusCancelled: true},
		StatusShipped:    {StatusDelivered: true, StatusCancelled: true},
		StatusDelivered:  {StatusRefunded: true},
		StatusCancelled:  {},
		StatusRefunded:   {},
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[from][to], CanTransitionStatus(from, to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestPaymentTransitionTable(t *testing.T) {
	all := []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded}

	allowed := map[PaymentStatus]map[PaymentStatus]bool{
		PaymentPending:  {PaymentPaid: true, PaymentFailed: true},
		PaymentPaid:     {PaymentRefunded: true},
		PaymentFailed:   {PaymentPaid: true},
		PaymentRefunded: {},
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[from][to], CanTransitionPayment(from, to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestTransitionStatusHappyPath(t *testing.T) {
	order := pendingOrder(t)

	for _, next := range []Status{StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered} {
		require.NoError(t, order.TransitionStatus(next))
		assert.Equal(t, next, order.Status)
	}

	require.NoError(t, order.TransitionStatus(StatusRefunded))
	assert.Equal(t, StatusRefunded, order.Status)
}

func TestTransitionStatusRejectsSkips(t *testing.T) {
	order := pendingOrder(t)
	before := order.UpdatedAt

	err := order.TransitionStatus(StatusDelivered)
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, TransitionKindStatus, invalid.Kind)
	assert.Equal(t, "pending", invalid.From)
	assert.Equal(t, "delivered", invalid.To)

	// rejected transition leaves the order untouched
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, before, order.UpdatedAt)
}

func TestCancelledIsTerminal(t *testing.T) {
	order := pendingOrder(t)
	require.NoError(t, order.TransitionStatus(StatusCancelled))

	for _, next := range []Status{
		StatusPending, StatusConfirmed, StatusProcessing,
		StatusShipped, StatusDelivered, StatusRefunded, StatusCancelled,
	} {
		err := order.TransitionStatus(next)
		var invalid *InvalidTransitionError
		require.ErrorAs(t, err, &invalid, "cancelled -> %s should fail", next)
		assert.Equal(t, StatusCancelled, order.Status)
	}
}

func TestPaymentPaidAutoConfirmsPendingOrder(t *testing.T) {
	order := pendingOrder(t)
	require.Equal(t, StatusPending, order.Status)
	require.Equal(t, PaymentPending, order.PaymentStatus)

	require.NoError(t, order.TransitionPayment(PaymentPaid))

	assert.Equal(t, PaymentPaid, order.PaymentStatus)
	assert.Equal(t, StatusConfirmed, order.Status)
}

func TestPaymentPaidDoesNotTouchAdvancedStatus(t *testing.T) {
	order := pendingOrder(t)
	require.NoError(t, order.TransitionStatus(StatusConfirmed))
	require.NoError(t, order.TransitionStatus(StatusProcessing))

	require.NoError(t, order.TransitionPayment(PaymentPaid))

	assert.Equal(t, PaymentPaid, order.PaymentStatus)
	assert.Equal(t, StatusProcessing, order.Status)
}

func TestFailedPaymentCanRetryIntoPaid(t *testing.T) {
	order := pendingOrder(t)
	require.NoError(t, order.TransitionPayment(PaymentFailed))
	assert.Equal(t, StatusPending, order.Status)

	require.NoError(t, order.TransitionPayment(PaymentPaid))
	assert.Equal(t, PaymentPaid, order.PaymentStatus)
	assert.Equal(t, StatusConfirmed, order.Status)
}

func TestPaymentRefundedIsTerminal(t *testing.T) {
	order := pendingOrder(t)
	require.NoError(t, order.TransitionPayment(PaymentPaid))
	require.NoError(t, order.TransitionPayment(PaymentRefunded))

	for _, next := range []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded} {
		err := order.TransitionPayment(next)
		var invalid *InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, TransitionKindPayment, invalid.Kind)
	}
}

func TestTransitionBumpsUpdatedAt(t *testing.T) {
	order := pendingOrder(t)
	order.UpdatedAt = time.Time{}

	require.NoError(t, order.TransitionStatus(StatusConfirmed))
	assert.False(t, order.UpdatedAt.IsZero())
}
