package queue

import (
	"context"
	"log"
	"time"

	resv "github.com/matchsage/booking-api/internal/domain/reservation"
	"github.com/matchsage/booking-api/internal/models"
)

// LogNotifier writes events to the process log. It stands in for the
// publisher when no broker is configured.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) Notify(_ context.Context, ev resv.Event) {
	n.print(reservationMessage(ev, time.Now()))
}

func (n LogNotifier) ReceiptIssued(_ context.Context, rc models.Receipt) {
	n.print(receiptMessage(rc, time.Now()))
}

func (n LogNotifier) print(m Message) {
	if n.Logger != nil {
		n.Logger.Println(Describe(m))
		return
	}
	log.Println(Describe(m))
}
