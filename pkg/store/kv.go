package store

import (
	"fmt"

	"github.com/fieldvault/fieldvault/pkg/codec"
	"github.com/fieldvault/fieldvault/pkg/field"
)

// KVBackendConfig holds configuration for the key-value backend
type KVBackendConfig struct {
	KV      KV       // Storage medium (required)
	Metrics *Metrics // Optional operation counters
}

// KVBackend persists mapping sequences as single entries in an injected
// key-value medium. One Save writes exactly one entry; concurrent writers to
// the same key race at the level of the medium.
type KVBackend struct {
	kv      KV
	codec   *codec.MappingCodec
	metrics *Metrics
}

var _ Backend = (*KVBackend)(nil)

// NewKVBackend creates a key-value backend over the given medium
func NewKVBackend(config KVBackendConfig) (*KVBackend, error) {
	if config.KV == nil {
		return nil, ErrNoMedium
	}
	return &KVBackend{
		kv:      config.KV,
		codec:   codec.NewMappingCodec(),
		metrics: config.Metrics,
	}, nil
}

// Save encodes the mapping sequence and stores it under key, overwriting any
// prior entry. A failed Save leaves other keys untouched.
func (b *KVBackend) Save(key string, mappings []field.Mapping) error {
	data, err := b.codec.Encode(mappings)
	if err != nil {
		b.metrics.RecordOperation("kv", "save", false)
		return fmt.Errorf("encode for key %q: %w", key, err)
	}

	if err := b.kv.Set(key, data); err != nil {
		b.metrics.RecordOperation("kv", "save", false)
		return fmt.Errorf("set key %q: %w", key, err)
	}

	b.metrics.RecordOperation("kv", "save", true)
	return nil
}

// Load retrieves the mapping sequence stored under key. A missing key, a
// medium error, and an entry that is not a mapping-sequence blob all return
// ok false.
func (b *KVBackend) Load(key string) ([]field.Mapping, bool) {
	data, found, err := b.kv.Get(key)
	if err != nil || !found {
		b.metrics.RecordOperation("kv", "load", false)
		return nil, false
	}

	mappings, err := b.codec.Decode(data)
	if err != nil {
		b.metrics.RecordOperation("kv", "load", false)
		return nil, false
	}

	b.metrics.RecordOperation("kv", "load", true)
	return mappings, true
}
