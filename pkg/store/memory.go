package store

import (
	"sync"
)

// MemoryKV is an in-process KV medium. It satisfies the KV contract for the
// lifetime of the process and doubles as the test stand-in for a durable
// medium.
type MemoryKV struct {
	mutex   sync.Mutex
	entries map[string][]byte
}

var _ KV = (*MemoryKV)(nil)

// NewMemoryKV creates an empty in-memory medium
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		entries: make(map[string][]byte),
	}
}

// Get returns the value stored under key, or found=false for a key never set
func (m *MemoryKV) Get(key string) ([]byte, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	value, found := m.entries[key]
	if !found {
		return nil, false, nil
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, true, nil
}

// Set stores a copy of value under key, overwriting any prior value
func (m *MemoryKV) Set(key string, value []byte) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	m.entries[key] = cp
	return nil
}

// Len returns the number of stored entries
func (m *MemoryKV) Len() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.entries)
}
