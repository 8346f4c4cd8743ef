package audit

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (s *memorySink) Log(ctx context.Context, ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

func TestDispatcherDeliversBeforeClose(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink)

	d.Dispatch(Event{Action: "reservation_created", EntityID: Ptr(1)})
	d.Dispatch(Event{Action: "reservation_cancelled", EntityID: Ptr(1)})
	d.Close()

	if len(sink.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(sink.events))
	}
	if sink.events[0].Action != "reservation_created" || *sink.events[1].EntityID != 1 {
		t.Fatalf("unexpected events: %+v", sink.events)
	}
}

func TestDispatcherSurvivesSinkErrorsAndClose(t *testing.T) {
	sink := &memorySink{err: errors.New("db down")}
	d := NewDispatcher(sink)

	d.Dispatch(Event{Action: "rating_recorded"})
	d.Close()
	d.Close()

	// Dispatch after Close is a no-op.
	d.Dispatch(Event{Action: "late"})

	if len(sink.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(sink.events))
	}
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "x"})
}
