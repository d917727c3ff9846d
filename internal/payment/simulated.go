package payment

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultDelay is the processing time of the simulated gateway.
const DefaultDelay = 2 * time.Second

// Simulated approves every charge after a fixed delay, except for methods on
// its decline list and amounts above its limit.
type Simulated struct {
	delay    time.Duration
	declined map[string]struct{}
	limit    int64
	now      func() time.Time
	logger   *zap.Logger

	mu       sync.Mutex
	receipts map[string]Receipt // idempotency key -> receipt
}

// SimulatedOption configures a Simulated gateway.
type SimulatedOption func(*Simulated)

// WithDelay sets the processing delay.
func WithDelay(d time.Duration) SimulatedOption {
	return func(s *Simulated) { s.delay = d }
}

// WithDeclineMethods lists payment methods that are always refused.
func WithDeclineMethods(methods ...string) SimulatedOption {
	return func(s *Simulated) {
		for _, m := range methods {
			s.declined[normalizeMethod(m)] = struct{}{}
		}
	}
}

// WithLimit refuses charges above limit cents. Zero means no limit.
func WithLimit(limit int64) SimulatedOption {
	return func(s *Simulated) { s.limit = limit }
}

// WithClock sets the clock stamped on receipts.
func WithClock(now func() time.Time) SimulatedOption {
	return func(s *Simulated) { s.now = now }
}

// WithGatewayLogger sets the logger.
func WithGatewayLogger(logger *zap.Logger) SimulatedOption {
	return func(s *Simulated) { s.logger = logger }
}

// NewSimulated creates a simulated gateway.
func NewSimulated(opts ...SimulatedOption) *Simulated {
	s := &Simulated{
		delay:    DefaultDelay,
		declined: make(map[string]struct{}),
		now:      time.Now,
		logger:   zap.NewNop(),
		receipts: make(map[string]Receipt),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Charge waits for the configured delay and then approves or declines req.
// It returns ctx.Err() if ctx ends first.
func (s *Simulated) Charge(ctx context.Context, req ChargeRequest) (Receipt, error) {
	if req.IdempotencyKey != "" {
		if r, ok := s.lookup(req.IdempotencyKey); ok {
			s.logger.Debug("charge replayed", zap.String("key", req.IdempotencyKey))
			return r, nil
		}
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			s.logger.Info("charge abandoned",
				zap.String("order_id", req.OrderID),
				zap.Error(ctx.Err()),
			)
			return Receipt{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	if err := s.check(req); err != nil {
		s.logger.Info("charge declined",
			zap.String("order_id", req.OrderID),
			zap.String("method", req.Method),
			zap.Int64("amount_cents", req.AmountCents),
			zap.String("reason", err.Reason),
		)
		return Receipt{}, err
	}

	r := Receipt{
		Reference:   uuid.NewString(),
		OrderID:     req.OrderID,
		AmountCents: req.AmountCents,
		Method:      req.Method,
		ChargedAt:   s.now(),
	}
	if req.IdempotencyKey != "" {
		s.mu.Lock()
		if prior, ok := s.receipts[req.IdempotencyKey]; ok {
			r = prior
		} else {
			s.receipts[req.IdempotencyKey] = r
		}
		s.mu.Unlock()
	}
	s.logger.Info("charge approved",
		zap.String("order_id", req.OrderID),
		zap.String("reference", r.Reference),
		zap.Int64("amount_cents", r.AmountCents),
	)
	return r, nil
}

func (s *Simulated) check(req ChargeRequest) *DeclineError {
	if req.AmountCents < 0 {
		return &DeclineError{Reason: ReasonInvalidAmount}
	}
	if _, ok := s.declined[normalizeMethod(req.Method)]; ok {
		return &DeclineError{Reason: ReasonMethodRefused}
	}
	if s.limit > 0 && req.AmountCents > s.limit {
		return &DeclineError{Reason: ReasonOverLimit}
	}
	return nil
}

func (s *Simulated) lookup(key string) (Receipt, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.receipts[key]
	return r, ok
}

func normalizeMethod(m string) string {
	return strings.ToLower(strings.TrimSpace(m))
}
