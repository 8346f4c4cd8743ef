package storage

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/matchsage/booking-api/internal/domain"
)

type object struct {
	contentType string
	data        []byte
}

// MemoryStore keeps objects in process. It backs local runs without S3.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]object
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]object)}
}

func (m *MemoryStore) Put(_ context.Context, key, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.objects[key] = object{contentType: contentType, data: data}
	m.mu.Unlock()

	return "memory://" + key, nil
}

func (m *MemoryStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()

	if !ok {
		return nil, domain.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}
