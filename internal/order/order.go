// Package order is the order aggregate behind checkout. An order is placed
// from a ledger snapshot, carries one or more payment attempts, and ends
// either completed or cancelled.
package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
)

// Order records the lifecycle of one order.
//
// An Order is not safe for concurrent use.
type Order struct {
	root   uuid.UUID
	state  State
	book   *kit.EventBook
	now    func() time.Time
	logger *zap.Logger
}

// New creates an unplaced order aggregate for orderID.
func New(orderID string, logger *zap.Logger) *Order {
	return Rebuild(orderID, nil, logger)
}

// Rebuild restores an order from its event history.
func Rebuild(orderID string, book *kit.EventBook, logger *zap.Logger) *Order {
	if logger == nil {
		logger = zap.NewNop()
	}
	root := kit.OrderRoot(orderID)
	o := &Order{
		root:   root,
		state:  RebuildState(book),
		book:   &kit.EventBook{Cover: kit.Cover{Domain: kit.DomainOrder, Root: root, CorrelationID: orderID}},
		now:    time.Now,
		logger: logger,
	}
	if book != nil {
		o.book.Pages = append(o.book.Pages, book.Pages...)
	}
	return o
}

// Root returns the order aggregate root.
func (o *Order) Root() uuid.UUID { return o.root }

// State returns a copy of the current state.
func (o *Order) State() State { return o.state }

// Events returns a copy of the recorded event history.
func (o *Order) Events() *kit.EventBook { return o.book.Clone() }

// Place records the order.
func (o *Order) Place(cmd PlaceOrder) error {
	event, err := HandlePlaceOrder(&o.state, cmd, o.now())
	if err != nil {
		return err
	}
	return o.record(event)
}

// SubmitPayment records a charge attempt.
func (o *Order) SubmitPayment(method string, amountCents int64) error {
	event, err := HandleSubmitPayment(&o.state, method, amountCents, o.now())
	if err != nil {
		return err
	}
	return o.record(event)
}

// DeclinePayment records a failed charge attempt.
func (o *Order) DeclinePayment(reason string) error {
	event, err := HandleDeclinePayment(&o.state, reason, o.now())
	if err != nil {
		return err
	}
	return o.record(event)
}

// ConfirmPayment completes the order.
func (o *Order) ConfirmPayment(reference string) error {
	event, err := HandleConfirmPayment(&o.state, reference, o.now())
	if err != nil {
		return err
	}
	return o.record(event)
}

// Cancel cancels the order.
func (o *Order) Cancel(reason string) error {
	event, err := HandleCancelOrder(&o.state, reason, o.now())
	if err != nil {
		return err
	}
	return o.record(event)
}

func (o *Order) record(event kit.Named) error {
	page, err := kit.PackEvent(o.book.Cover, event, kit.NextSequence(o.book))
	if err != nil {
		return fmt.Errorf("record %s: %w", event.TypeName(), err)
	}
	stateBuilder.ApplyBook(&o.state, page)
	o.book.Append(page)
	kit.LogEvents(o.logger, page)
	o.logger.Info("order updated",
		zap.String("order_id", o.state.OrderID),
		zap.String("event", event.TypeName()),
		zap.String("status", string(o.state.Status)),
	)
	return nil
}
