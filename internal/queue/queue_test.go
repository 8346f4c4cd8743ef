package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"strings"
	"testing"
	"time"

	resv "github.com/matchsage/booking-api/internal/domain/reservation"
	"github.com/matchsage/booking-api/internal/models"
)

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func sampleReservation() models.Reservation {
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	return models.Reservation{
		ID:           5,
		ServiceID:    2,
		EmployeeID:   7,
		CustomerID:   11,
		DateReserved: start,
		EndsAt:       start.Add(time.Hour),
	}
}

func TestReservationMessageRoundTrip(t *testing.T) {
	m := reservationMessage(resv.Event{Type: resv.EventCreated, Reservation: sampleReservation()}, fixedNow)

	body, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Message
	err = handleDelivery(context.Background(), body, func(_ context.Context, in Message) error {
		got = in
		return nil
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if got.Type != resv.EventCreated || got.Reservation == nil || got.Receipt != nil {
		t.Fatalf("unexpected message: %+v", got)
	}
	if got.Reservation.EmployeeID != 7 || !got.Reservation.End.Equal(m.Reservation.End) {
		t.Fatalf("unexpected payload: %+v", got.Reservation)
	}
}

func TestHandleDeliveryErrors(t *testing.T) {
	noop := func(context.Context, Message) error { return nil }

	if err := handleDelivery(context.Background(), []byte("{"), noop); err == nil {
		t.Fatalf("expected unmarshal error")
	}
	if err := handleDelivery(context.Background(), []byte(`{"occurred_at":"2026-03-02T09:00:00Z"}`), noop); err == nil {
		t.Fatalf("expected error for a message without type")
	}

	boom := errors.New("boom")
	body, _ := json.Marshal(receiptMessage(models.Receipt{ReceiptNo: "x"}, fixedNow))
	err := handleDelivery(context.Background(), body, func(context.Context, Message) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected handler error, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	line := Describe(receiptMessage(models.Receipt{
		ReceiptNo:     "abc",
		ReservationID: 5,
		CustomerID:    11,
		Price:         99.5,
		PaymentStatus: "approved",
	}, fixedNow))

	for _, want := range []string{"receipt.issued", "receipt_no=abc", "price=99.50", "status=approved"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q misses %q", line, want)
		}
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := LogNotifier{Logger: log.New(&buf, "", 0)}

	n.Notify(context.Background(), resv.Event{Type: resv.EventCancelled, Reservation: sampleReservation()})

	if !strings.Contains(buf.String(), "reservation.cancelled | reservation_id=5") {
		t.Fatalf("unexpected log output: %q", buf.String())
	}
}

// silentBroker accepts TCP connections and never answers the AMQP handshake.
func silentBroker(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	var conns []net.Conn
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			conns = append(conns, c)
		}
	}()

	t.Cleanup(func() {
		ln.Close()
		<-done
		for _, c := range conns {
			c.Close()
		}
	})
	return "amqp://guest:guest@" + ln.Addr().String() + "/"
}

func TestPublisherDoesNotBlockOnStalledBroker(t *testing.T) {
	p := newPublisher(silentBroker(t), 200*time.Millisecond)

	start := time.Now()
	for i := 0; i < 5; i++ {
		p.Notify(context.Background(), resv.Event{Type: resv.EventCreated, Reservation: sampleReservation()})
	}
	p.ReceiptIssued(context.Background(), models.Receipt{ID: 1, ReceiptNo: "r-1"})
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("notify blocked for %s", elapsed)
	}

	closed := make(chan struct{})
	go func() {
		p.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(3 * time.Second):
		t.Fatalf("close did not return while the broker was stalled")
	}

	// After Close, events are dropped without blocking.
	p.Notify(context.Background(), resv.Event{Type: resv.EventCancelled, Reservation: sampleReservation()})
}
