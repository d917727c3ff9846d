package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/cart"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/checkout"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/payment"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/promo"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/store"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/wizard"
)

// Error message constants.
const (
	ErrMsgSessionNotFound = "session not found"
	ErrMsgSessionRequired = "session_id is required"
)

// Reply fields added to the session view.
const (
	FieldExited = "exited"
	FieldClosed = "closed"
)

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithObserver reports payment attempts to o.
func WithObserver(o checkout.Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithPromotions sets the promotion table carts resolve codes against.
func WithPromotions(t *promo.Table) Option {
	return func(s *Service) { s.promotions = t }
}

// WithTimeout bounds each payment attempt.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithStore sets the event store. A fresh in-memory store is used otherwise.
func WithStore(books *store.Books) Option {
	return func(s *Service) { s.books = books }
}

// Service holds the open checkout sessions and handles session commands.
type Service struct {
	gateway    payment.Gateway
	logger     *zap.Logger
	observer   checkout.Observer
	promotions *promo.Table
	timeout    time.Duration
	books      *store.Books
	router     *kit.CommandRouter[*structpb.Struct]

	mu       sync.Mutex
	sessions map[string]*checkout.Session
}

// NewService creates a session service charging through gateway.
func NewService(gateway payment.Gateway, opts ...Option) (*Service, error) {
	s := &Service{
		gateway:    gateway,
		logger:     zap.NewNop(),
		promotions: promo.DefaultTable(),
		timeout:    checkout.DefaultTimeout,
		sessions:   make(map[string]*checkout.Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.books == nil {
		books, err := store.New()
		if err != nil {
			return nil, err
		}
		s.books = books
	}
	s.router = kit.NewCommandRouter[*structpb.Struct]("session").
		On(CmdOpenSession, s.handleOpen).
		On(CmdAddItem, s.handleAddItem).
		On(CmdSetQuantity, s.handleSetQuantity).
		On(CmdRemoveItem, s.handleRemoveItem).
		On(CmdApplyPromotion, s.handleApplyPromotion).
		On(CmdClearPromotion, s.handleClearPromotion).
		On(CmdSelectAddress, s.handleSelectAddress).
		On(CmdChoosePayment, s.handleChoosePayment).
		On(CmdNext, s.handleNext).
		On(CmdBack, s.handleBack).
		On(CmdSubmit, s.handleSubmit).
		On(CmdGetSession, s.handleGet).
		On(CmdCloseSession, s.handleClose)
	s.logger.Debug("session service ready", zap.Strings("commands", s.router.Types()))
	return s, nil
}

// Handle implements SessionServer.
func (s *Service) Handle(ctx context.Context, cmd *anypb.Any) (*structpb.Struct, error) {
	resp, err := s.router.Dispatch(ctx, cmd)
	if err != nil {
		return nil, kit.MapCommandError(err)
	}
	return resp, nil
}

// Sessions returns the ids of the open sessions, sorted.
func (s *Service) Sessions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Orders returns the roots of the orders kept in the store.
func (s *Service) Orders() ([]uuid.UUID, error) {
	return s.books.Roots(kit.DomainOrder)
}

// Close closes every open session.
func (s *Service) Close() error {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*checkout.Session)
	s.mu.Unlock()

	var errs []error
	for _, sess := range sessions {
		errs = append(errs, s.closeSession(sess))
	}
	orders, err := s.Orders()
	if err != nil {
		errs = append(errs, err)
	}
	s.logger.Info("session service closed",
		zap.Int("sessions", len(sessions)),
		zap.Int("stored_orders", len(orders)),
	)
	return errors.Join(errs...)
}

func (s *Service) handleOpen(_ context.Context, data []byte) (*structpb.Struct, error) {
	var cmd OpenSession
	if err := decode(data, &cmd); err != nil {
		return nil, err
	}
	id := cmd.SessionID
	if id == "" {
		id = uuid.NewString()
	}

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = s.open(id)
		s.sessions[id] = sess
	}
	s.mu.Unlock()

	return reply(sess, nil)
}

func (s *Service) open(id string) *checkout.Session {
	ledgerOpts := []cart.Option{
		cart.WithPromotions(s.promotions),
		cart.WithLogger(s.logger),
	}
	var ledger *cart.Ledger
	if book, ok := s.books.Load(kit.CartRoot(id)); ok {
		ledger = cart.Rebuild(id, book, ledgerOpts...)
		s.logger.Info("session restored",
			zap.String("session_id", id),
			zap.Int("items", ledger.Len()),
		)
	} else {
		ledger = cart.New(id, ledgerOpts...)
		s.logger.Info("session opened", zap.String("session_id", id))
	}

	var sess *checkout.Session
	opts := []checkout.Option{
		checkout.WithTimeout(s.timeout),
		checkout.WithLogger(s.logger),
		checkout.WithOnComplete(func(checkout.OrderSummary) {
			s.saveOrder(sess)
			if err := s.books.Delete(kit.CartRoot(id)); err != nil {
				s.logger.Error("release cart", zap.String("session_id", id), zap.Error(err))
			}
		}),
		checkout.WithOnFailed(func(error) { s.saveOrder(sess) }),
	}
	if s.observer != nil {
		opts = append(opts, checkout.WithObserver(s.observer))
	}
	sess = checkout.New(id, ledger, s.gateway, opts...)
	return sess
}

func (s *Service) handleAddItem(_ context.Context, data []byte) (*structpb.Struct, error) {
	var cmd AddItem
	if err := decode(data, &cmd); err != nil {
		return nil, err
	}
	return s.editCart(cmd.SessionID, func(sess *checkout.Session) error {
		return sess.AddItem(cmd.candidate(), cmd.delta())
	})
}

func (s *Service) handleSetQuantity(_ context.Context, data []byte) (*structpb.Struct, error) {
	var cmd SetQuantity
	if err := decode(data, &cmd); err != nil {
		return nil, err
	}
	return s.editCart(cmd.SessionID, func(sess *checkout.Session) error {
		return sess.SetQuantity(cmd.ID, cmd.Quantity)
	})
}

func (s *Service) handleRemoveItem(_ context.Context, data []byte) (*structpb.Struct, error) {
	var cmd RemoveItem
	if err := decode(data, &cmd); err != nil {
		return nil, err
	}
	return s.editCart(cmd.SessionID, func(sess *checkout.Session) error {
		return sess.RemoveItem(cmd.ID)
	})
}

func (s *Service) handleApplyPromotion(_ context.Context, data []byte) (*structpb.Struct, error) {
	var cmd ApplyPromotion
	if err := decode(data, &cmd); err != nil {
		return nil, err
	}
	return s.editCart(cmd.SessionID, func(sess *checkout.Session) error {
		_, err := sess.ApplyPromotion(cmd.Code)
		return err
	})
}

func (s *Service) handleClearPromotion(_ context.Context, data []byte) (*structpb.Struct, error) {
	var cmd ClearPromotion
	if err := decode(data, &cmd); err != nil {
		return nil, err
	}
	return s.editCart(cmd.SessionID, func(sess *checkout.Session) error {
		return sess.ClearPromotion()
	})
}

func (s *Service) handleSelectAddress(_ context.Context, data []byte) (*structpb.Struct, error) {
	var cmd SelectAddress
	if err := decode(data, &cmd); err != nil {
		return nil, err
	}
	sess, err := s.session(cmd.SessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.SelectAddress(cmd.AddressID); err != nil {
		return nil, translate(err)
	}
	return reply(sess, nil)
}

func (s *Service) handleChoosePayment(_ context.Context, data []byte) (*structpb.Struct, error) {
	var cmd ChoosePayment
	if err := decode(data, &cmd); err != nil {
		return nil, err
	}
	sess, err := s.session(cmd.SessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.ChoosePayment(cmd.Method); err != nil {
		return nil, translate(err)
	}
	return reply(sess, nil)
}

func (s *Service) handleNext(ctx context.Context, data []byte) (*structpb.Struct, error) {
	var cmd Next
	if err := decode(data, &cmd); err != nil {
		return nil, err
	}
	sess, err := s.session(cmd.SessionID)
	if err != nil {
		return nil, err
	}
	if _, err := sess.Next(ctx); err != nil {
		return nil, translate(err)
	}
	if cmd.Wait {
		if err := await(ctx, sess); err != nil {
			return nil, err
		}
	}
	return reply(sess, nil)
}

func (s *Service) handleBack(_ context.Context, data []byte) (*structpb.Struct, error) {
	var cmd Back
	if err := decode(data, &cmd); err != nil {
		return nil, err
	}
	sess, err := s.session(cmd.SessionID)
	if err != nil {
		return nil, err
	}
	_, err = sess.Back()
	switch {
	case errors.Is(err, wizard.ErrExited):
		return reply(sess, map[string]any{FieldExited: true})
	case err != nil:
		return nil, translate(err)
	}
	return reply(sess, nil)
}

func (s *Service) handleSubmit(ctx context.Context, data []byte) (*structpb.Struct, error) {
	var cmd Submit
	if err := decode(data, &cmd); err != nil {
		return nil, err
	}
	sess, err := s.session(cmd.SessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Submit(ctx); err != nil {
		return nil, translate(err)
	}
	s.saveOrder(sess)
	if cmd.Wait {
		if err := await(ctx, sess); err != nil {
			return nil, err
		}
	}
	return reply(sess, nil)
}

func (s *Service) handleGet(ctx context.Context, data []byte) (*structpb.Struct, error) {
	var cmd GetSession
	if err := decode(data, &cmd); err != nil {
		return nil, err
	}
	sess, err := s.session(cmd.SessionID)
	if err != nil {
		return nil, err
	}
	if cmd.Wait {
		if err := await(ctx, sess); err != nil {
			return nil, err
		}
	}
	return reply(sess, nil)
}

func (s *Service) handleClose(_ context.Context, data []byte) (*structpb.Struct, error) {
	var cmd CloseSession
	if err := decode(data, &cmd); err != nil {
		return nil, err
	}
	if err := kit.RequireNotBlank(cmd.SessionID, ErrMsgSessionRequired); err != nil {
		return nil, err
	}
	s.mu.Lock()
	sess, ok := s.sessions[cmd.SessionID]
	delete(s.sessions, cmd.SessionID)
	s.mu.Unlock()
	if !ok {
		return nil, notFound(cmd.SessionID)
	}
	if err := s.closeSession(sess); err != nil {
		return nil, err
	}
	return reply(sess, map[string]any{FieldClosed: true})
}

func (s *Service) closeSession(sess *checkout.Session) error {
	if err := sess.Close(); err != nil {
		return err
	}
	s.saveOrder(sess)
	s.logger.Info("session closed", zap.String("session_id", sess.ID()))
	return nil
}

func (s *Service) session(id string) (*checkout.Session, error) {
	if err := kit.RequireNotBlank(id, ErrMsgSessionRequired); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, notFound(id)
	}
	return sess, nil
}

// editCart applies fn and persists the cart history.
func (s *Service) editCart(id string, fn func(*checkout.Session) error) (*structpb.Struct, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	if err := fn(sess); err != nil {
		return nil, translate(err)
	}
	if err := s.books.Save(sess.CartEvents()); err != nil {
		return nil, err
	}
	return reply(sess, nil)
}

func (s *Service) saveOrder(sess *checkout.Session) {
	book := sess.OrderEvents()
	if len(book.Pages) == 0 {
		return
	}
	if err := s.books.Save(book); err != nil {
		s.logger.Error("save order",
			zap.String("order_id", sess.OrderID()),
			zap.Error(err),
		)
	}
}

// await blocks until the running payment attempt settles. Its outcome is
// reported in the view, so only a cancelled or expired ctx is an error.
func await(ctx context.Context, sess *checkout.Session) error {
	if err := sess.Wait(ctx); err != nil && ctx.Err() != nil {
		return status.FromContextError(ctx.Err()).Err()
	}
	return nil
}

func decode(data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return kit.NewInvalidArgument(fmt.Sprintf("malformed command: %v", err))
	}
	return nil
}

func notFound(id string) error {
	return kit.NewNotFound(fmt.Sprintf("%s: %s", ErrMsgSessionNotFound, id))
}

// translate maps session errors onto command errors.
func translate(err error) error {
	var cmdErr *kit.CommandError
	switch {
	case errors.As(err, &cmdErr):
		return err
	case errors.Is(err, checkout.ErrSubmitInProgress),
		errors.Is(err, checkout.ErrAlreadyCompleted),
		errors.Is(err, checkout.ErrClosed):
		return kit.NewFailedPrecondition(err.Error()).WithCause(err)
	}
	return err
}

func reply(sess *checkout.Session, extra map[string]any) (*structpb.Struct, error) {
	view, err := sess.View()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("encode view: %w", err)
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode view: %w", err)
	}
	for k, v := range extra {
		fields[k] = v
	}
	return structpb.NewStruct(fields)
}
