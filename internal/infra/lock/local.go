package lock

import (
	"context"
	"sync"
)

// LocalLocker serializes bookings inside one process. It is used when no
// Redis is configured.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[uint]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[uint]chan struct{})}
}

func (l *LocalLocker) slot(employeeID uint) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.slots[employeeID]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[employeeID] = ch
	}
	return ch
}

func (l *LocalLocker) Acquire(ctx context.Context, employeeID uint) (func(), error) {
	ch := l.slot(employeeID)

	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { <-ch })
	}, nil
}
