package kit

import (
	"testing"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/anypb"
)

type noteAdded struct {
	Text string `json:"text"`
}

func (noteAdded) TypeName() string { return "NoteAdded" }

type noteState struct {
	notes []string
}

func TestPackEvent_singleEvent_returnsOnePageEventBook(t *testing.T) {
	cover := Cover{Domain: DomainCart, Root: uuid.New()}

	book, err := PackEvent(cover, noteAdded{Text: "hello"}, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if book.Cover != cover {
		t.Error("cover not preserved")
	}
	if len(book.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(book.Pages))
	}
	page := book.Pages[0]
	if page.Sequence != 42 {
		t.Errorf("expected sequence 42, got %d", page.Sequence)
	}
	if page.Event.TypeUrl != "type.ecocart/ecocart.NoteAdded" {
		t.Errorf("unexpected type url %q", page.Event.TypeUrl)
	}
	if page.CreatedAt == nil {
		t.Error("created_at is nil")
	}
}

func TestPackEvent_appendedPagesContinueSequence(t *testing.T) {
	book := &EventBook{}
	for _, text := range []string{"first", "second", "third"} {
		page, err := PackEvent(Cover{}, noteAdded{text}, NextSequence(book))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		book.Append(page)
	}
	for i, page := range book.Pages {
		if page.Sequence != uint32(i) {
			t.Errorf("page %d: expected sequence %d, got %d", i, i, page.Sequence)
		}
	}
	if NextSequence(book) != 3 {
		t.Errorf("expected next sequence 3, got %d", NextSequence(book))
	}
}

func TestStateBuilder_rebuildsInOrder(t *testing.T) {
	builder := NewStateBuilder(func() noteState { return noteState{} }).
		On("NoteAdded", Decode(func(s *noteState, e *noteAdded) {
			s.notes = append(s.notes, e.Text)
		}))

	book, err := PackEvent(Cover{}, noteAdded{"a"}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	next, err := PackEvent(Cover{}, noteAdded{"b"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	book.Append(next)
	book.Pages = append(book.Pages, &EventPage{Event: nil})

	state := builder.Rebuild(book)
	if len(state.notes) != 2 || state.notes[0] != "a" || state.notes[1] != "b" {
		t.Errorf("unexpected state: %v", state.notes)
	}
}

func TestStateBuilder_skipsUndecodableEvents(t *testing.T) {
	builder := NewStateBuilder(func() noteState { return noteState{} }).
		On("NoteAdded", Decode(func(s *noteState, e *noteAdded) {
			s.notes = append(s.notes, e.Text)
		}))

	book, _ := PackEvent(Cover{}, noteAdded{"ok"}, 0)
	book.Pages[0].Event.Value = []byte("{not json")

	if state := builder.Rebuild(book); len(state.notes) != 0 {
		t.Errorf("expected no notes, got %v", state.notes)
	}
}

type noteRemoved struct{}

func (noteRemoved) TypeName() string { return "ItemNoteRemoved" }

func TestStateBuilder_matchesWholeTypeName(t *testing.T) {
	var removed, added int
	builder := NewStateBuilder(func() noteState { return noteState{} }).
		On("Added", func(*noteState, *anypb.Any) { added++ }).
		On("NoteRemoved", func(*noteState, *anypb.Any) { removed++ })

	book, _ := PackEvent(Cover{}, noteAdded{"a"}, 0)
	other, _ := PackEvent(Cover{}, noteRemoved{}, 1)
	book.Append(other)
	builder.Rebuild(book)

	if added != 0 {
		t.Errorf("NoteAdded reached the Added applier %d times", added)
	}
	if removed != 0 {
		t.Errorf("ItemNoteRemoved reached the NoteRemoved applier %d times", removed)
	}

	exact := NewStateBuilder(func() noteState { return noteState{} }).
		On("NoteAdded", func(*noteState, *anypb.Any) { added++ })
	exact.Rebuild(book)
	if added != 1 {
		t.Errorf("expected NoteAdded applied once, got %d", added)
	}
}

func TestEventBook_CloneIsIndependent(t *testing.T) {
	book, _ := PackEvent(Cover{Domain: DomainCart}, noteAdded{"a"}, 0)
	clone := book.Clone()
	clone.Pages = append(clone.Pages, &EventPage{Sequence: 1})

	if len(book.Pages) != 1 {
		t.Errorf("original changed: %d pages", len(book.Pages))
	}
}
