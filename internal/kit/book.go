package kit

import (
	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Cover identifies the aggregate an EventBook belongs to.
type Cover struct {
	Domain        string
	Root          uuid.UUID
	CorrelationID string
}

// EventPage is one recorded event with its position in the stream.
type EventPage struct {
	Sequence  uint32
	Event     *anypb.Any
	CreatedAt *timestamppb.Timestamp
}

// EventBook is the ordered event history of a single aggregate.
type EventBook struct {
	Cover Cover
	Pages []*EventPage
}

// Append adds the pages of other to b, keeping sequence order.
func (b *EventBook) Append(other *EventBook) {
	if other == nil {
		return
	}
	b.Pages = append(b.Pages, other.Pages...)
}

// Clone returns a copy of the book whose page slice can be extended
// without affecting the original.
func (b *EventBook) Clone() *EventBook {
	if b == nil {
		return nil
	}
	pages := make([]*EventPage, len(b.Pages))
	copy(pages, b.Pages)
	return &EventBook{Cover: b.Cover, Pages: pages}
}

// NextSequence computes the next event sequence number from prior events.
func NextSequence(events *EventBook) uint32 {
	if events == nil || len(events.Pages) == 0 {
		return 0
	}
	return uint32(len(events.Pages))
}
