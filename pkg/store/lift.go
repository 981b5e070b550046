package store

import (
	"github.com/fieldvault/fieldvault/pkg/record"
)

// Save encodes typed records and persists them through the backend.
func Save[E record.Encoder](b Backend, name string, records []E) error {
	return b.Save(name, record.EncodeAll(records))
}

// Load retrieves and decodes the records stored under name. ok is false when
// nothing usable is stored there; mappings that fail to decode as T are
// silently dropped, so a stored-but-garbled sequence comes back shorter (or
// empty) with ok still true.
func Load[T any, PT record.Ptr[T]](b Backend, name string) ([]T, bool) {
	records, _, ok := LoadCounted[T, PT](b, name)
	return records, ok
}

// LoadCounted is Load with an explicit count of dropped mappings.
func LoadCounted[T any, PT record.Ptr[T]](b Backend, name string) ([]T, int, bool) {
	mappings, ok := b.Load(name)
	if !ok {
		return nil, 0, false
	}
	records, dropped := record.DecodeAllCounted[T, PT](mappings)
	return records, dropped, true
}
