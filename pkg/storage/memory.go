package storage

import (
	"context"
	"sync"
)

// Memory keeps the document in process memory. Nothing survives a restart.
type Memory struct {
	mu       sync.Mutex
	data     []byte
	readErr  error
	writeErr error
	writes   int
}

// NewMemory creates a memory medium, optionally pre-loaded with data
func NewMemory(data []byte) *Memory {
	return &Memory{data: data}
}

// Describe implements Medium
func (m *Memory) Describe() string {
	return "memory"
}

// Read implements Medium
func (m *Memory) Read(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.readErr != nil {
		return nil, m.readErr
	}

	if m.data == nil {
		return nil, ErrNotExist
	}

	return append([]byte(nil), m.data...), nil
}

// Write implements Medium
func (m *Memory) Write(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return m.writeErr
	}

	m.data = append([]byte(nil), data...)
	m.writes++

	return nil
}

// Bytes returns the stored content
func (m *Memory) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]byte(nil), m.data...)
}

// Writes returns how many successful writes happened
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.writes
}

// FailReads makes subsequent reads return err; nil restores normal reads
func (m *Memory) FailReads(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readErr = err
}

// FailWrites makes subsequent writes return err; nil restores normal writes
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeErr = err
}
