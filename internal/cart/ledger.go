// Package cart implements the line-item ledger behind the cart, recycle
// order and checkout screens. Every mutation is validated by a Handle*
// function, recorded as an event, and applied through the state builder so
// the ledger can be rebuilt on a later screen from its event history.
package cart

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/promo"
)

// UpdateFunc receives the items after every ledger mutation.
type UpdateFunc func(items []LineItem)

// Snapshot is a read-only copy of the ledger taken at a point in time.
type Snapshot struct {
	Items     []LineItem
	Totals    Totals
	Promotion *promo.Promotion
}

// Ledger holds the line items of one session.
//
// A Ledger is owned by a single session and is not safe for concurrent use.
type Ledger struct {
	root       uuid.UUID
	state      State
	book       *kit.EventBook
	promotions *promo.Table
	onUpdate   UpdateFunc
	logger     *zap.Logger
	promoInput string
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithPromotions sets the promotion table. Defaults to promo.DefaultTable.
func WithPromotions(t *promo.Table) Option {
	return func(l *Ledger) { l.promotions = t }
}

// WithOnUpdate registers the onUpdateCart collaborator.
func WithOnUpdate(fn UpdateFunc) Option {
	return func(l *Ledger) { l.onUpdate = fn }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) { l.logger = logger }
}

// New creates an empty ledger for a session.
func New(sessionID string, opts ...Option) *Ledger {
	return Rebuild(sessionID, nil, opts...)
}

// Rebuild restores a ledger from a previously recorded event history.
func Rebuild(sessionID string, book *kit.EventBook, opts ...Option) *Ledger {
	root := kit.CartRoot(sessionID)
	l := &Ledger{
		root:   root,
		state:  RebuildState(book),
		book:   &kit.EventBook{Cover: kit.Cover{Domain: kit.DomainCart, Root: root}},
		logger: zap.NewNop(),
	}
	if book != nil {
		l.book.Pages = append(l.book.Pages, book.Pages...)
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.promotions == nil {
		l.promotions = promo.DefaultTable()
	}
	return l
}

// Root returns the cart aggregate root.
func (l *Ledger) Root() uuid.UUID { return l.root }

// AddItem adds one unit of c, or delta units when given.
func (l *Ledger) AddItem(c Candidate, delta ...int64) error {
	d := int64(1)
	if len(delta) > 0 {
		d = delta[0]
	}
	event, err := HandleAddItem(&l.state, c, d)
	if err != nil {
		return err
	}
	return l.record(event)
}

// SetQuantity sets the quantity of a held item; zero or less removes it.
func (l *Ledger) SetQuantity(id string, quantity int64) error {
	event, err := HandleSetQuantity(&l.state, id, quantity)
	if err != nil {
		return err
	}
	return l.record(event)
}

// RemoveItem deletes id from the ledger. Absent ids are ignored.
func (l *Ledger) RemoveItem(id string) error {
	event, err := HandleRemoveItem(&l.state, id)
	if err != nil || event == nil {
		return err
	}
	return l.record(event)
}

// Clear empties the ledger.
func (l *Ledger) Clear() error {
	event, err := HandleClearCart(&l.state)
	if err != nil {
		return err
	}
	return l.record(event)
}

// ApplyCode applies a promotion code, replacing any active promotion.
//
// Unknown codes leave the ledger unchanged and return an error wrapping
// promo.ErrInvalidCode. On success the promotion input buffer is cleared.
func (l *Ledger) ApplyCode(raw string) (promo.Promotion, error) {
	event, err := HandleApplyPromotion(&l.state, l.promotions, raw)
	if err != nil {
		l.logger.Info("promotion rejected", zap.String("code", promo.Normalize(raw)))
		return promo.Promotion{}, err
	}
	if err := l.record(event); err != nil {
		return promo.Promotion{}, err
	}
	l.promoInput = ""
	l.logger.Info("promotion applied",
		zap.String("code", event.Code),
		zap.String("ratio", event.Ratio),
		zap.String("replaced", event.ReplacedCode),
	)
	return *l.state.Promotion, nil
}

// SetPromoInput stores what the user has typed into the promotion field.
func (l *Ledger) SetPromoInput(raw string) { l.promoInput = raw }

// PromoInput returns the pending promotion input.
func (l *Ledger) PromoInput() string { return l.promoInput }

// ApplyPromoInput applies the pending promotion input.
func (l *Ledger) ApplyPromoInput() (promo.Promotion, error) {
	return l.ApplyCode(l.promoInput)
}

// ClearPromotion removes the active promotion, if any.
func (l *Ledger) ClearPromotion() error {
	event, err := HandleClearPromotion(&l.state)
	if err != nil || event == nil {
		return err
	}
	return l.record(event)
}

// Promotion returns the active promotion.
func (l *Ledger) Promotion() (promo.Promotion, bool) {
	if l.state.Promotion == nil {
		return promo.Promotion{}, false
	}
	return *l.state.Promotion, true
}

// Items returns copies of the held items in insertion order.
func (l *Ledger) Items() []LineItem { return l.state.List() }

// Item returns the held item with the given id.
func (l *Ledger) Item(id string) (LineItem, bool) {
	item, ok := l.state.Items[id]
	if !ok {
		return LineItem{}, false
	}
	return *item, true
}

// Len returns the number of distinct items held.
func (l *Ledger) Len() int { return len(l.state.Items) }

// Totals derives subtotal, discount, total, points, weight and CO2.
func (l *Ledger) Totals() (Totals, error) {
	return PriceTotals(l.state.List(), l.state.Promotion)
}

// Snapshot copies the ledger for checkout.
func (l *Ledger) Snapshot() (Snapshot, error) {
	totals, err := l.Totals()
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{Items: l.Items(), Totals: totals}
	if p, ok := l.Promotion(); ok {
		snap.Promotion = &p
	}
	return snap, nil
}

// Events returns a copy of the recorded event history.
func (l *Ledger) Events() *kit.EventBook { return l.book.Clone() }

func (l *Ledger) record(event kit.Named) error {
	page, err := kit.PackEvent(l.book.Cover, event, kit.NextSequence(l.book))
	if err != nil {
		return fmt.Errorf("record %s: %w", event.TypeName(), err)
	}
	stateBuilder.ApplyBook(&l.state, page)
	l.book.Append(page)
	kit.LogEvents(l.logger, page)

	if l.onUpdate != nil {
		l.onUpdate(l.state.List())
	}
	return nil
}
