package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos_manager/constants"
)

func TestCanTransition(t *testing.T) {
	legal := [][2]string{
		{constants.OrderPending, constants.OrderPaid},
		{constants.OrderPending, constants.OrderCancelled},
		{constants.OrderPaid, constants.OrderRefunded},
	}
	for _, edge := range legal {
		assert.True(t, CanTransition(edge[0], edge[1]), "%s -> %s", edge[0], edge[1])
	}

	illegal := [][2]string{
		{constants.OrderPaid, constants.OrderPending},
		{constants.OrderPaid, constants.OrderCancelled},
		{constants.OrderCancelled, constants.OrderPaid},
		{constants.OrderRefunded, constants.OrderPaid},
		{constants.OrderRefunded, constants.OrderPending},
		{constants.OrderPending, constants.OrderRefunded},
		{"bogus", constants.OrderPaid},
	}
	for _, edge := range illegal {
		assert.False(t, CanTransition(edge[0], edge[1]), "%s -> %s", edge[0], edge[1])
	}
}

func TestTransitionToPaid(t *testing.T) {
	order := &Order{Status: constants.OrderPending, PaymentStatus: constants.PaymentUnpaid}
	at := time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC)

	require.NoError(t, order.Transition(constants.OrderPaid, at))
	assert.Equal(t, constants.OrderPaid, order.Status)
	assert.Equal(t, constants.PaymentCompleted, order.PaymentStatus)
	require.NotNil(t, order.CompletedAt)
	assert.Equal(t, at, *order.CompletedAt)
}

func TestTransitionToRefunded(t *testing.T) {
	order := &Order{Status: constants.OrderPaid, PaymentStatus: constants.PaymentCompleted}

	require.NoError(t, order.Transition(constants.OrderRefunded, time.Now()))
	assert.Equal(t, constants.OrderRefunded, order.Status)
	assert.Equal(t, constants.PaymentRefunded, order.PaymentStatus)
}

func TestTransitionIllegalLeavesOrderUntouched(t *testing.T) {
	order := &Order{Status: constants.OrderRefunded, PaymentStatus: constants.PaymentRefunded}

	err := order.Transition(constants.OrderPaid, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidStateTransition))
	assert.Equal(t, constants.OrderRefunded, order.Status)
	assert.Equal(t, constants.PaymentRefunded, order.PaymentStatus)
	assert.Nil(t, order.CompletedAt)
}

func TestTransitionCancelKeepsPaymentUnpaid(t *testing.T) {
	order := &Order{Status: constants.OrderPending, PaymentStatus: constants.PaymentUnpaid}

	require.NoError(t, order.Transition(constants.OrderCancelled, time.Now()))
	assert.Equal(t, constants.OrderCancelled, order.Status)
	assert.Equal(t, constants.PaymentUnpaid, order.PaymentStatus)
	assert.Nil(t, order.CompletedAt)
}
