// Package storage abstracts the persistent key-value collaborator the
// reference stores write through. Values are JSON-serializable records keyed
// by domain.
package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// Storage is the persistence contract. Get reports found=false for keys
// never written; Set replaces the value atomically.
type Storage interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// Memory is an in-process Storage used for local development and tests.
type Memory struct {
	mu     sync.RWMutex
	values map[string]json.RawMessage
}

// NewMemory constructs an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]json.RawMessage)}
}

// Get unmarshals the stored value into out.
func (m *Memory) Get(ctx context.Context, key string, out any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.values[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores the JSON encoding of value.
func (m *Memory) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.values[key] = raw
	m.mu.Unlock()
	return nil
}
