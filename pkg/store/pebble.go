package store

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// PebbleKV is a durable KV medium backed by a pebble database on disk.
// Entries written through Set survive process restarts.
type PebbleKV struct {
	db *pebble.DB
}

var _ KV = (*PebbleKV)(nil)

// OpenPebbleKV opens (or creates) a pebble database rooted at path
func OpenPebbleKV(path string) (*PebbleKV, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open pebble database: %w", err)
	}
	return &PebbleKV{db: db}, nil
}

// Get returns the value stored under key, or found=false for a key never set
func (p *PebbleKV) Get(key string) ([]byte, bool, error) {
	value, closer, err := p.db.Get([]byte(key))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get key %q: %w", key, err)
	}
	defer closer.Close()

	// The slice is only valid until the closer is released.
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, true, nil
}

// Set durably stores value under key, overwriting any prior value
func (p *PebbleKV) Set(key string, value []byte) error {
	if err := p.db.Set([]byte(key), value, pebble.Sync); err != nil {
		return fmt.Errorf("set key %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database
func (p *PebbleKV) Close() error {
	return p.db.Close()
}
