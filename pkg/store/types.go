package store

import (
	"github.com/fieldvault/fieldvault/pkg/field"
)

// Backend is the uniform persistence surface. Both backends operate on the
// encoded mapping form, never on typed records; use Save and Load at the
// package level to lift them over record types.
type Backend interface {
	// Save persists the mapping sequence under name, replacing any prior
	// value stored there.
	Save(name string, mappings []field.Mapping) error

	// Load retrieves the mapping sequence stored under name. ok is false
	// when nothing usable is stored there: a never-saved name, an I/O
	// failure, or stored bytes that do not decode as a mapping sequence
	// all look the same to the caller. An empty sequence with ok true is
	// distinct from ok false.
	Load(name string) (mappings []field.Mapping, ok bool)
}

// KV is the injected key-value medium behind KVBackend. Implementations must
// persist Set values until overwritten; Get reports found=false for a key
// never set.
type KV interface {
	Get(key string) (value []byte, found bool, err error)
	Set(key string, value []byte) error
}

// Errors
var (
	ErrInvalidName = &StoreError{"invalid name"}
	ErrNoMedium    = &StoreError{"no storage medium configured"}
)

// StoreError represents a persistence backend error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
