package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulated_approves(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	g := NewSimulated(WithDelay(0), WithClock(func() time.Time { return at }))

	r, err := g.Charge(context.Background(), ChargeRequest{OrderID: "o-1", AmountCents: 900, Method: "card"})
	require.NoError(t, err)
	assert.NotEmpty(t, r.Reference)
	assert.Equal(t, int64(900), r.AmountCents)
	assert.Equal(t, "o-1", r.OrderID)
	assert.Equal(t, at, r.ChargedAt)
}

func TestSimulated_declinesListedMethod(t *testing.T) {
	g := NewSimulated(WithDelay(0), WithDeclineMethods("Declined-Card"))

	_, err := g.Charge(context.Background(), ChargeRequest{AmountCents: 100, Method: " declined-card "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDeclined))

	var decline *DeclineError
	require.True(t, errors.As(err, &decline))
	assert.Equal(t, ReasonMethodRefused, decline.Reason)
}

func TestSimulated_declinesOverLimit(t *testing.T) {
	g := NewSimulated(WithDelay(0), WithLimit(1000))

	_, err := g.Charge(context.Background(), ChargeRequest{AmountCents: 1001, Method: "card"})
	var decline *DeclineError
	require.True(t, errors.As(err, &decline))
	assert.Equal(t, ReasonOverLimit, decline.Reason)

	_, err = g.Charge(context.Background(), ChargeRequest{AmountCents: 1000, Method: "card"})
	assert.NoError(t, err)
}

func TestSimulated_declinesNegativeAmount(t *testing.T) {
	g := NewSimulated(WithDelay(0))
	_, err := g.Charge(context.Background(), ChargeRequest{AmountCents: -1, Method: "card"})
	assert.ErrorIs(t, err, ErrDeclined)

	var decline *DeclineError
	require.True(t, errors.As(err, &decline))
	assert.Equal(t, ReasonInvalidAmount, decline.Reason)
}

func TestSimulated_approvesFreeOrder(t *testing.T) {
	g := NewSimulated(WithDelay(0), WithLimit(1000))
	r, err := g.Charge(context.Background(), ChargeRequest{OrderID: "o-free", AmountCents: 0, Method: "card"})
	require.NoError(t, err)
	assert.NotEmpty(t, r.Reference)
	assert.Zero(t, r.AmountCents)
}

func TestSimulated_honoursCancellation(t *testing.T) {
	g := NewSimulated(WithDelay(time.Hour))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := g.Charge(ctx, ChargeRequest{AmountCents: 100, Method: "card"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSimulated_idempotencyKeyReplaysReceipt(t *testing.T) {
	g := NewSimulated(WithDelay(0))
	req := ChargeRequest{OrderID: "o-1", AmountCents: 100, Method: "card", IdempotencyKey: "o-1/1"}

	first, err := g.Charge(context.Background(), req)
	require.NoError(t, err)
	second, err := g.Charge(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.Reference, second.Reference)

	req.IdempotencyKey = "o-1/2"
	third, err := g.Charge(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, first.Reference, third.Reference)
}

func TestDeclineError_message(t *testing.T) {
	err := &DeclineError{Reason: "insufficient funds"}
	assert.Equal(t, "payment declined: insufficient funds", err.Error())
}
