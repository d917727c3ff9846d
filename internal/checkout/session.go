// Package checkout finalizes an order. A Session couples the cart ledger with
// the checkout flow and the order aggregate, and runs each payment attempt on
// its own goroutine so the caller is never blocked by the gateway.
//
// Callbacks run on the payment goroutine without the session lock held.
// They must not call Close, which waits for that goroutine.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/cart"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/flows"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/order"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/payment"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/promo"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/wizard"
)

// DefaultTimeout bounds a single payment attempt.
const DefaultTimeout = 10 * time.Second

// Attempt outcomes reported to the Observer.
const (
	OutcomeCompleted = "completed"
	OutcomeDeclined  = "declined"
	OutcomeTimeout   = "timeout"
	OutcomeCancelled = "cancelled"
	OutcomeError     = "error"
)

// Observer receives the outcome of every payment attempt.
type Observer interface {
	ObserveCheckout(outcome string, elapsed time.Duration)
}

// Option configures a Session.
type Option func(*Session)

// WithTimeout bounds each payment attempt.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithObserver reports attempt outcomes, typically to metrics.
func WithObserver(o Observer) Option {
	return func(s *Session) { s.observer = o }
}

// WithOnComplete registers the callback invoked once with the summary of the
// paid order.
func WithOnComplete(fn func(OrderSummary)) Option {
	return func(s *Session) { s.onComplete = fn }
}

// WithOnFailed registers the callback invoked after a declined, timed out or
// failed payment attempt.
func WithOnFailed(fn func(error)) Option {
	return func(s *Session) { s.onFailed = fn }
}

// WithOnBack registers the callback invoked when backing out of the first
// checkout step.
func WithOnBack(fn func()) Option {
	return func(s *Session) { s.onBack = fn }
}

// WithOrderID fixes the id of the order placed by this session.
func WithOrderID(id string) Option {
	return func(s *Session) { s.orderID = id }
}

// Session is one checkout. It is safe for concurrent use.
type Session struct {
	id       string
	orderID  string
	gateway  payment.Gateway
	timeout  time.Duration
	logger   *zap.Logger
	observer Observer

	onComplete func(OrderSummary)
	onFailed   func(error)
	onBack     func()

	mu       sync.Mutex
	ledger   *cart.Ledger
	wizard   *wizard.Wizard[flows.CheckoutForm]
	order    *order.Order
	inFlight bool
	cancel   context.CancelFunc
	done     chan struct{}
	closed   bool
	summary  *OrderSummary
	lastErr  error
	wg       sync.WaitGroup
}

// New starts a checkout for sessionID over ledger, charging through gateway.
func New(sessionID string, ledger *cart.Ledger, gateway payment.Gateway, opts ...Option) *Session {
	s := &Session{
		id:      sessionID,
		gateway: gateway,
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
		ledger:  ledger,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.orderID == "" {
		s.orderID = uuid.NewString()
	}
	if s.ledger == nil {
		s.ledger = cart.New(sessionID, cart.WithLogger(s.logger))
	}
	s.wizard = flows.NewCheckout(nil,
		wizard.WithLogger(s.logger),
		wizard.WithOnTransition(func(from, to wizard.Step) {
			s.logger.Info("checkout step",
				zap.String("session_id", s.id),
				zap.String("from", string(from)),
				zap.String("to", string(to)),
			)
		}),
	)
	s.order = order.New(s.orderID, s.logger)
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// OrderID returns the id of the order this session places.
func (s *Session) OrderID() string { return s.orderID }

// AddItem adds delta units of c to the cart.
func (s *Session) AddItem(c cart.Candidate, delta int64) error {
	return s.edit(func(l *cart.Ledger) error { return l.AddItem(c, delta) })
}

// SetQuantity sets the quantity of a cart item; zero or less removes it.
func (s *Session) SetQuantity(id string, quantity int64) error {
	return s.edit(func(l *cart.Ledger) error { return l.SetQuantity(id, quantity) })
}

// RemoveItem removes an item from the cart.
func (s *Session) RemoveItem(id string) error {
	return s.edit(func(l *cart.Ledger) error { return l.RemoveItem(id) })
}

// ApplyPromotion applies a promotion code to the cart.
func (s *Session) ApplyPromotion(code string) (promo.Promotion, error) {
	var applied promo.Promotion
	err := s.edit(func(l *cart.Ledger) error {
		p, err := l.ApplyCode(code)
		applied = p
		return err
	})
	return applied, err
}

// ClearPromotion removes the active promotion from the cart.
func (s *Session) ClearPromotion() error {
	return s.edit(func(l *cart.Ledger) error { return l.ClearPromotion() })
}

// SelectAddress records the delivery address.
func (s *Session) SelectAddress(addressID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkEditable(); err != nil {
		return err
	}
	s.wizard.Form().AddressID = addressID
	return nil
}

// ChoosePayment records the payment method. It may change between attempts.
func (s *Session) ChoosePayment(method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.order.State().IsCompleted() {
		return ErrAlreadyCompleted
	}
	if s.inFlight {
		return ErrSubmitInProgress
	}
	s.wizard.Form().PaymentMethod = method
	return nil
}

// Next advances the flow. On the review step it submits the order.
func (s *Session) Next(ctx context.Context) (wizard.Step, error) {
	s.mu.Lock()
	step := s.wizard.Current()
	if err := s.checkOpen(); err != nil {
		s.mu.Unlock()
		return step, err
	}
	switch step {
	case flows.StepReview:
		s.mu.Unlock()
		err := s.Submit(ctx)
		return s.Current(), err
	case flows.StepProcessing:
		s.mu.Unlock()
		return step, ErrSubmitInProgress
	}
	defer s.mu.Unlock()
	return s.wizard.Next()
}

// Back returns to the previous step. At the first step the OnBack callback
// runs and wizard.ErrExited is returned.
func (s *Session) Back() (wizard.Step, error) {
	s.mu.Lock()
	if err := s.checkOpen(); err != nil {
		step := s.wizard.Current()
		s.mu.Unlock()
		return step, err
	}
	if s.inFlight {
		s.mu.Unlock()
		return flows.StepProcessing, ErrSubmitInProgress
	}
	step, err := s.wizard.Back()
	s.mu.Unlock()

	if errors.Is(err, wizard.ErrExited) && s.onBack != nil {
		s.onBack()
	}
	return step, err
}

// Submit places the order on first use and starts a payment attempt. It
// returns once the attempt is running; use Wait or the callbacks for the
// outcome.
//
// The attempt is detached from ctx cancellation so it outlives the request
// that started it, but keeps ctx values. Close cancels it.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.order.State().IsCompleted() {
		return ErrAlreadyCompleted
	}
	if s.order.State().IsPaymentSubmitted() {
		return ErrSubmitInProgress
	}
	if s.wizard.Current() != flows.StepReview {
		return kit.NewFailedPreconditionf("%s, not %s", ErrMsgNotOnReview, s.wizard.Current())
	}

	form := s.wizard.Form()
	if reason := flows.ReadyToSubmit(form); reason != nil {
		return kit.NewFailedPrecondition(reason.Error()).WithCause(reason)
	}
	if !s.order.State().Exists() {
		snap, err := s.ledger.Snapshot()
		if err != nil {
			return err
		}
		if err := s.order.Place(order.PlaceOrder{
			OrderID:   s.orderID,
			SessionID: s.id,
			AddressID: form.AddressID,
			Snapshot:  snap,
		}); err != nil {
			return err
		}
	}

	st := s.order.State()
	if err := s.order.SubmitPayment(form.PaymentMethod, st.Totals.TotalCents); err != nil {
		return err
	}
	if _, err := s.wizard.Next(); err != nil {
		return err
	}

	st = s.order.State()
	req := payment.ChargeRequest{
		OrderID:        st.OrderID,
		AmountCents:    st.Totals.TotalCents,
		Method:         st.PaymentMethod,
		IdempotencyKey: fmt.Sprintf("%s/%d", st.OrderID, st.Attempts),
	}
	attemptCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	done := make(chan struct{})
	s.inFlight = true
	s.cancel = cancel
	s.done = done
	s.lastErr = nil

	s.logger.Info("payment submitted",
		zap.String("session_id", s.id),
		zap.String("order_id", req.OrderID),
		zap.Int64("amount_cents", req.AmountCents),
		zap.String("method", req.Method),
		zap.Int("attempt", st.Attempts),
	)

	s.wg.Add(1)
	go s.charge(attemptCtx, cancel, req, done)
	return nil
}

func (s *Session) charge(ctx context.Context, cancel context.CancelFunc, req payment.ChargeRequest, done chan struct{}) {
	defer s.wg.Done()
	defer close(done)
	defer cancel()

	started := time.Now()
	receipt, chargeErr := s.gateway.Charge(ctx, req)
	timedOut := errors.Is(ctx.Err(), context.DeadlineExceeded)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.inFlight = false
	s.cancel = nil

	var notify func()
	outcome := OutcomeCompleted
	if chargeErr == nil {
		notify = s.settleApproved(receipt)
	} else {
		var failure error
		outcome, failure = classify(chargeErr, timedOut)
		notify = s.settleFailed(failure)
	}
	s.mu.Unlock()

	if s.observer != nil {
		s.observer.ObserveCheckout(outcome, time.Since(started))
	}
	notify()
}

// settleApproved must be called with s.mu held.
func (s *Session) settleApproved(receipt payment.Receipt) func() {
	s.wizard.Form().PaymentReference = receipt.Reference
	if err := s.order.ConfirmPayment(receipt.Reference); err != nil {
		return s.settleFailed(err)
	}
	if _, err := s.wizard.Next(); err != nil {
		return s.settleFailed(err)
	}

	summary := summarize(s.order.State())
	s.summary = &summary
	s.logger.Info("checkout completed",
		zap.String("session_id", s.id),
		zap.String("order_id", summary.OrderID),
		zap.String("reference", summary.PaymentReference),
		zap.Int64("total_cents", summary.TotalCents),
	)
	return func() {
		if s.onComplete != nil {
			s.onComplete(summary)
		}
	}
}

// settleFailed must be called with s.mu held.
func (s *Session) settleFailed(failure error) func() {
	s.lastErr = failure
	if err := s.order.DeclinePayment(failure.Error()); err != nil {
		s.logger.Error("record decline", zap.String("order_id", s.orderID), zap.Error(err))
	}
	s.wizard.Form().PaymentReference = ""
	if _, err := s.wizard.Back(); err != nil {
		s.logger.Error("return to review", zap.String("session_id", s.id), zap.Error(err))
	}
	s.logger.Warn("payment failed",
		zap.String("session_id", s.id),
		zap.String("order_id", s.orderID),
		zap.Error(failure),
	)
	return func() {
		if s.onFailed != nil {
			s.onFailed(failure)
		}
	}
}

func classify(err error, timedOut bool) (string, error) {
	switch {
	case errors.Is(err, payment.ErrDeclined):
		return OutcomeDeclined, err
	case timedOut:
		return OutcomeTimeout, ErrTimeout
	default:
		return OutcomeError, fmt.Errorf("payment failed: %w", err)
	}
}

// Wait blocks until the current payment attempt settles and returns its
// failure, or nil when it succeeded or none was running.
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Close tears the session down. A running payment attempt is cancelled and
// its order cancelled; no callback fires after Close returns.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if s.inFlight {
		s.inFlight = false
		if err := s.order.Cancel(ErrMsgCancelReason); err != nil {
			s.logger.Error("cancel order", zap.String("order_id", s.orderID), zap.Error(err))
		}
		if s.observer != nil {
			s.observer.ObserveCheckout(OutcomeCancelled, 0)
		}
		s.logger.Info("checkout cancelled", zap.String("session_id", s.id))
	}
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// CartEvents returns the event history of the session's cart.
func (s *Session) CartEvents() *kit.EventBook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Events()
}

// OrderEvents returns the event history of the session's order.
func (s *Session) OrderEvents() *kit.EventBook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Events()
}

// Current returns the current checkout step.
func (s *Session) Current() wizard.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard.Current()
}

// Summary returns the order summary once checkout has completed.
func (s *Session) Summary() (OrderSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summary == nil {
		return OrderSummary{}, false
	}
	return *s.summary, true
}

// LastError returns the failure of the most recent payment attempt.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Session) edit(fn func(*cart.Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkEditable(); err != nil {
		return err
	}
	return fn(s.ledger)
}

// checkEditable must be called with s.mu held.
func (s *Session) checkEditable() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if s.order.State().Exists() {
		return kit.NewFailedPrecondition(ErrMsgOrderPlaced)
	}
	return nil
}

// checkOpen must be called with s.mu held.
func (s *Session) checkOpen() error {
	if s.closed {
		return ErrClosed
	}
	return nil
}
