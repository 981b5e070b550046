package cmd

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldvault/fieldvault/pkg/record"
	"github.com/fieldvault/fieldvault/pkg/store"
)

func sampleReadings() []*Reading {
	return []*Reading{
		{
			Sequence: 1,
			Value:    1.0,
			Label:    "One",
			Valid:    true,
			TakenAt:  time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC),
			Raw:      []byte{1, 2, 3, 4, 5, 6, 7, 8},
		},
		{
			Sequence: 2,
			Value:    2.0,
			Label:    "Two",
			Valid:    false,
			TakenAt:  time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC),
			Raw:      []byte{9, 10, 11, 12},
		},
	}
}

func TestReadingRoundTrip(t *testing.T) {
	for _, want := range sampleReadings() {
		var got Reading
		require.NoError(t, got.DecodeFields(want.EncodeFields()))
		assert.True(t, got.Equal(want), "round trip mismatch: %s != %s", &got, want)
	}
}

func TestReadingDecodeFailures(t *testing.T) {
	var r Reading

	assert.Error(t, r.DecodeFields(nil))

	m := sampleReadings()[0].EncodeFields()
	delete(m, "taken_at")
	assert.Error(t, r.DecodeFields(m))
}

func TestReadingsThroughBackends(t *testing.T) {
	readings := sampleReadings()

	t.Run("batch codec", func(t *testing.T) {
		decoded := record.DecodeAll[Reading](record.EncodeAll(readings))
		require.Len(t, decoded, 2)
		for i := range readings {
			assert.True(t, decoded[i].Equal(readings[i]))
		}
	})

	t.Run("pebble key-value backend", func(t *testing.T) {
		kv, err := store.OpenPebbleKV(filepath.Join(t.TempDir(), "db"))
		require.NoError(t, err)
		defer kv.Close()

		backend, err := store.NewKVBackend(store.KVBackendConfig{KV: kv})
		require.NoError(t, err)

		require.NoError(t, store.Save(backend, "k", readings))
		loaded, ok := store.Load[Reading](backend, "k")
		require.True(t, ok)
		require.Len(t, loaded, 2)
		for i := range readings {
			assert.True(t, loaded[i].Equal(readings[i]))
		}
	})

	t.Run("file backend", func(t *testing.T) {
		backend, err := store.NewFileBackend(store.FileBackendConfig{Dir: t.TempDir()})
		require.NoError(t, err)

		require.NoError(t, store.Save(backend, "f.dat", readings))
		loaded, ok := store.Load[Reading](backend, "f.dat")
		require.True(t, ok)
		require.Len(t, loaded, 2)
		for i := range readings {
			assert.True(t, loaded[i].Equal(readings[i]))
		}

		_, ok = store.Load[Reading](backend, "nonexistent.dat")
		assert.False(t, ok)
	})
}
