package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	resv "github.com/matchsage/booking-api/internal/domain/reservation"
	"github.com/matchsage/booking-api/internal/models"
)

var errBrokerDown = errors.New("broker unreachable, retry pending")

// Publisher sends events to the booking exchange from a single worker, so a
// slow or unreachable broker never holds up the request that produced the
// event. The connection is opened lazily; after a failed dial, events are
// dropped until the retry delay has passed. Errors are logged, never returned.
type Publisher struct {
	url         string
	now         func() time.Time
	dialTimeout time.Duration
	retryDelay  time.Duration

	queue chan Message

	mu     sync.RWMutex
	closed bool
	done   chan struct{}

	// worker-owned
	conn      *amqp.Connection
	ch        *amqp.Channel
	downUntil time.Time
}

func NewPublisher(url string) *Publisher {
	return newPublisher(url, 3*time.Second)
}

func newPublisher(url string, dialTimeout time.Duration) *Publisher {
	p := &Publisher{
		url:         url,
		now:         time.Now,
		dialTimeout: dialTimeout,
		retryDelay:  5 * time.Second,
		queue:       make(chan Message, 256),
		done:        make(chan struct{}),
	}

	go p.worker()
	return p
}

func (p *Publisher) Notify(_ context.Context, ev resv.Event) {
	p.enqueue(reservationMessage(ev, p.now()))
}

func (p *Publisher) ReceiptIssued(_ context.Context, rc models.Receipt) {
	p.enqueue(receiptMessage(rc, p.now()))
}

// enqueue never blocks: a full queue drops the event.
func (p *Publisher) enqueue(m Message) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}

	select {
	case p.queue <- m:
	default:
		log.Printf("rabbitmq: queue full, dropping %s", m.Type)
	}
}

func (p *Publisher) worker() {
	defer close(p.done)
	for m := range p.queue {
		p.publish(m)
	}
	p.reset()
}

func (p *Publisher) publish(m Message) {
	body, err := json.Marshal(m)
	if err != nil {
		log.Printf("rabbitmq: marshal %s failed: %v", m.Type, err)
		return
	}

	ch, err := p.channel()
	if err != nil {
		log.Printf("rabbitmq: %s not published: %v", m.Type, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.dialTimeout)
	defer cancel()

	err = ch.PublishWithContext(ctx,
		Exchange,
		m.Type,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    m.OccurredAt,
			Type:         m.Type,
			Body:         body,
		},
	)
	if err != nil {
		log.Printf("rabbitmq: publish %s failed: %v", m.Type, err)
		p.reset()
	}
}

// channel returns the open channel, dialing when needed. Only the worker
// calls it.
func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	if p.now().Before(p.downUntil) {
		return nil, errBrokerDown
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(p.dialTimeout),
	})
	if err != nil {
		p.downUntil = p.now().Add(p.retryDelay)
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := declareExchange(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// Close publishes what is already queued and closes the connection.
func (p *Publisher) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()
	<-p.done
}

func declareExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(Exchange, "topic", true, false, false, false, nil)
}
