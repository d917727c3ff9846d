package kit

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

// PackEvent wraps a single event into an EventBook.
func PackEvent(cover Cover, event Named, seq uint32) (*EventBook, error) {
	eventAny, err := Pack(event)
	if err != nil {
		return nil, err
	}

	return &EventBook{
		Cover: cover,
		Pages: []*EventPage{
			{
				Sequence:  seq,
				Event:     eventAny,
				CreatedAt: timestamppb.Now(),
			},
		},
	}, nil
}
