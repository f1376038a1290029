package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"chatlite/internal/common"
)

// Memory is an in-memory Store used by tests and anywhere durability is not
// required. It deep-copies records on the way in and out so callers can never
// alias its internal state.
type Memory struct {
	mu   sync.Mutex
	data map[string][]json.RawMessage

	failSave error
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]json.RawMessage)}
}

func (m *Memory) Load(_ context.Context, name string) []json.RawMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyRecords(m.data[name])
}

func (m *Memory) Save(_ context.Context, name string, records []json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failSave != nil {
		err := m.failSave
		m.failSave = nil
		return fmt.Errorf("%w: save %q: %v", common.ErrorPersistence, name, err)
	}

	m.data[name] = copyRecords(records)
	return nil
}

// FailNextSave makes the next Save call fail with the given cause, wrapped in
// common.ErrorPersistence. Simulates quota exhaustion in tests.
func (m *Memory) FailNextSave(cause error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failSave = cause
}

func copyRecords(records []json.RawMessage) []json.RawMessage {
	if records == nil {
		return nil
	}
	out := make([]json.RawMessage, len(records))
	for i, rec := range records {
		cp := make(json.RawMessage, len(rec))
		copy(cp, rec)
		out[i] = cp
	}
	return out
}
