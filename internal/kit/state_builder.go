package kit

import (
	"strings"

	"google.golang.org/protobuf/types/known/anypb"
)

// StateApplier applies a raw event (Any) to state.
//
// Each handler is responsible for decoding the event.
type StateApplier[S any] func(state *S, event *anypb.Any)

type applierEntry[S any] struct {
	suffix string
	apply  StateApplier[S]
}

// StateBuilder builds state from events with registered handlers.
//
// Example:
//
//	builder := kit.NewStateBuilder(cart.EmptyState).
//	    On("ItemAdded", kit.Decode(applyItemAdded)).
//	    On("ItemRemoved", kit.Decode(applyItemRemoved))
//
//	state := builder.Rebuild(book)
type StateBuilder[S any] struct {
	newState func() S
	appliers []applierEntry[S]
}

// NewStateBuilder creates a StateBuilder for state type S.
//
// The newState function creates a default/zero state.
func NewStateBuilder[S any](newState func() S) *StateBuilder[S] {
	return &StateBuilder[S]{
		newState: newState,
		appliers: make([]applierEntry[S], 0),
	}
}

// On registers an event applier for a type_url suffix.
func (sb *StateBuilder[S]) On(typeSuffix string, apply StateApplier[S]) *StateBuilder[S] {
	sb.appliers = append(sb.appliers, applierEntry[S]{
		suffix: typeSuffix,
		apply:  apply,
	})
	return sb
}

// Apply applies a single event to state using registered handlers.
//
// Useful for applying newly-created events to current state
// without going through full EventBook reconstruction. Type URLs match at a
// name boundary, as in CommandRouter.Dispatch.
func (sb *StateBuilder[S]) Apply(state *S, event *anypb.Any) {
	if event == nil {
		return
	}
	name := ShortName(event.TypeUrl)
	for _, applier := range sb.appliers {
		if name == applier.suffix || strings.HasSuffix(event.TypeUrl, "/"+applier.suffix) {
			applier.apply(state, event)
			break
		}
	}
}

// ApplyBook applies every page of book to state, in order.
func (sb *StateBuilder[S]) ApplyBook(state *S, book *EventBook) {
	if book == nil {
		return
	}
	for _, page := range book.Pages {
		if page.Event == nil {
			continue
		}
		sb.Apply(state, page.Event)
	}
}

// Rebuild reconstructs state from an EventBook.
//
// Unknown event types are silently ignored.
func (sb *StateBuilder[S]) Rebuild(eventBook *EventBook) S {
	state := sb.newState()
	sb.ApplyBook(&state, eventBook)
	return state
}

// Decode adapts a typed applier into a StateApplier. Events that fail to
// decode are skipped, matching how undecodable pages are ignored on rebuild.
func Decode[S any, E any](apply func(state *S, event *E)) StateApplier[S] {
	return func(state *S, raw *anypb.Any) {
		var event E
		if err := Unpack(raw, &event); err != nil {
			return
		}
		apply(state, &event)
	}
}
