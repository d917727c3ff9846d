// Package wizard implements the linear step machine shared by every
// multi-step flow: checkout, pickup scheduling, listing upload and recycle
// orders. A Wizard moves forward one step at a time, only when the guard of
// the current step passes, and backs out through an exit callback at the
// first step.
package wizard

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Hanfried-Nguegan/pre-eco-sub000/internal/kit"
)

// ErrExited is returned by Back at the first step after the exit callback ran.
var ErrExited = errors.New("wizard exited")

// Error message constants.
const (
	ErrMsgTerminalBack = "flow already finished"
)

// TransitionFunc observes every step change.
type TransitionFunc func(from, to Step)

type settings struct {
	onBack       func()
	onTransition TransitionFunc
	logger       *zap.Logger
}

// Option configures a Wizard.
type Option func(*settings)

// WithOnBack registers the exit callback invoked when backing out of the
// first step.
func WithOnBack(fn func()) Option {
	return func(s *settings) { s.onBack = fn }
}

// WithOnTransition registers a step change observer.
func WithOnTransition(fn TransitionFunc) Option {
	return func(s *settings) { s.onTransition = fn }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// Wizard is the state of one flow instance. It is owned by a single session
// and is not safe for concurrent use.
type Wizard[F any] struct {
	def   Definition[F]
	form  *F
	index int
	settings
}

// New starts a wizard on the first step of def. A nil form is replaced by a
// zero value.
func New[F any](def Definition[F], form *F, opts ...Option) (*Wizard[F], error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	if form == nil {
		form = new(F)
	}
	w := &Wizard[F]{
		def:      def,
		form:     form,
		settings: settings{logger: zap.NewNop()},
	}
	for _, opt := range opts {
		opt(&w.settings)
	}
	return w, nil
}

// MustNew is New for definitions known to be valid.
func MustNew[F any](def Definition[F], form *F, opts ...Option) *Wizard[F] {
	w, err := New(def, form, opts...)
	if err != nil {
		panic(err)
	}
	return w
}

// Name returns the flow name.
func (w *Wizard[F]) Name() string { return w.def.Name }

// Current returns the current step.
func (w *Wizard[F]) Current() Step { return w.def.Steps[w.index] }

// Index returns the position of the current step.
func (w *Wizard[F]) Index() int { return w.index }

// Steps returns a copy of the ordered steps.
func (w *Wizard[F]) Steps() []Step {
	out := make([]Step, len(w.def.Steps))
	copy(out, w.def.Steps)
	return out
}

// Form returns the form the guards are evaluated against.
func (w *Wizard[F]) Form() *F { return w.form }

// IsTerminal reports whether the wizard is on its last step.
func (w *Wizard[F]) IsTerminal() bool { return w.index == len(w.def.Steps)-1 }

// CanAdvance evaluates the guard of the current step. It returns nil on the
// terminal step, where Next is a no-op.
func (w *Wizard[F]) CanAdvance() error {
	if w.IsTerminal() {
		return nil
	}
	guard, ok := w.def.Guards[w.Current()]
	if !ok || guard == nil {
		return nil
	}
	return guard(w.form)
}

// Next moves to the following step when the current guard passes.
//
// A failing guard leaves the wizard where it is and returns a
// FAILED_PRECONDITION error wrapping the guard's reason. On the terminal step
// Next does nothing.
func (w *Wizard[F]) Next() (Step, error) {
	if w.IsTerminal() {
		return w.Current(), nil
	}
	if reason := w.CanAdvance(); reason != nil {
		w.logger.Debug("step blocked",
			zap.String("flow", w.def.Name),
			zap.String("step", string(w.Current())),
			zap.Error(reason),
		)
		return w.Current(), kit.NewFailedPrecondition(reason.Error()).WithCause(reason)
	}
	w.move(w.index + 1)
	return w.Current(), nil
}

// Back moves to the previous step. At the first step it runs the exit
// callback and returns ErrExited; on the terminal step it is refused.
func (w *Wizard[F]) Back() (Step, error) {
	if w.IsTerminal() && w.index > 0 {
		return w.Current(), kit.NewFailedPrecondition(ErrMsgTerminalBack)
	}
	if w.index == 0 {
		w.logger.Debug("flow exited", zap.String("flow", w.def.Name))
		if w.onBack != nil {
			w.onBack()
		}
		return w.Current(), ErrExited
	}
	w.move(w.index - 1)
	return w.Current(), nil
}

func (w *Wizard[F]) move(to int) {
	from := w.Current()
	w.index = to
	w.logger.Debug("step changed",
		zap.String("flow", w.def.Name),
		zap.String("from", string(from)),
		zap.String("to", string(w.Current())),
	)
	if w.onTransition != nil {
		w.onTransition(from, w.Current())
	}
}
