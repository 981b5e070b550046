package codec

import (
	"bytes"
	"testing"
	"time"

	"github.com/fieldvault/fieldvault/pkg/field"
)

func fullMapping(n int64) field.Mapping {
	return field.Mapping{
		"id":    field.Int(n),
		"ratio": field.Float(float64(n) * 1.5),
		"name":  field.String("mapping"),
		"live":  field.Bool(n%2 == 0),
		"at":    field.Time(time.Date(2024, 6, 1, 12, 0, 0, int(n), time.UTC)),
		"blob":  field.Bytes([]byte{byte(n), byte(n + 1), byte(n + 2)}),
	}
}

func TestMappingCodec_EncodeDecodeRoundTrip(t *testing.T) {
	codec := NewMappingCodec()

	testCases := []struct {
		name     string
		mappings []field.Mapping
	}{
		{
			name:     "empty sequence",
			mappings: []field.Mapping{},
		},
		{
			name:     "single mapping",
			mappings: []field.Mapping{fullMapping(1)},
		},
		{
			name:     "multiple mappings",
			mappings: []field.Mapping{fullMapping(1), fullMapping(2), fullMapping(3)},
		},
		{
			name:     "empty mapping",
			mappings: []field.Mapping{{}},
		},
		{
			name: "edge payloads",
			mappings: []field.Mapping{{
				"zero":      field.Int(0),
				"negative":  field.Int(-42),
				"empty_str": field.String(""),
				"empty_b":   field.Bytes([]byte{}),
				"epoch":     field.Time(time.Unix(0, 0)),
				"false":     field.Bool(false),
			}},
		},
		{
			name: "unicode names and values",
			mappings: []field.Mapping{{
				"clé 🔑": field.String("valeur 🎯"),
			}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := codec.Encode(tc.mappings)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			decoded, err := codec.Decode(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if len(decoded) != len(tc.mappings) {
				t.Fatalf("length mismatch: got %d, want %d", len(decoded), len(tc.mappings))
			}
			for i := range tc.mappings {
				if !decoded[i].Equal(tc.mappings[i]) {
					t.Errorf("mapping %d mismatch: got %v, want %v", i, decoded[i], tc.mappings[i])
				}
			}
		})
	}
}

func TestMappingCodec_DeterministicEncoding(t *testing.T) {
	codec := NewMappingCodec()
	mappings := []field.Mapping{fullMapping(1), fullMapping(2)}

	first, err := codec.Encode(mappings)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	second, err := codec.Encode(mappings)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("encoding the same sequence twice produced different bytes")
	}
}

func TestMappingCodec_RejectsInvalidValue(t *testing.T) {
	codec := NewMappingCodec()

	_, err := codec.Encode([]field.Mapping{{"bad": field.Value{}}})
	if err == nil {
		t.Error("Encode accepted a zero Value")
	}
}

func TestMappingCodec_DecodeFailures(t *testing.T) {
	codec := NewMappingCodec()

	valid, err := codec.Encode([]field.Mapping{fullMapping(1)})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	t.Run("too short", func(t *testing.T) {
		if _, err := codec.Decode(valid[:8]); err == nil {
			t.Error("Decode accepted a truncated header")
		}
	})

	t.Run("bad magic", func(t *testing.T) {
		corrupted := bytes.Clone(valid)
		corrupted[0] = 'X'
		if _, err := codec.Decode(corrupted); err == nil {
			t.Error("Decode accepted a bad magic")
		}
	})

	t.Run("flipped payload byte", func(t *testing.T) {
		corrupted := bytes.Clone(valid)
		corrupted[len(corrupted)-1] ^= 0xFF
		if _, err := codec.Decode(corrupted); err == nil {
			t.Error("Decode accepted a corrupted payload")
		}
	})

	t.Run("truncated body", func(t *testing.T) {
		if _, err := codec.Decode(valid[:len(valid)-3]); err == nil {
			t.Error("Decode accepted a truncated body")
		}
	})

	t.Run("trailing garbage", func(t *testing.T) {
		extended := append(bytes.Clone(valid), 0xAB)
		if _, err := codec.Decode(extended); err == nil {
			t.Error("Decode accepted trailing bytes")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if _, err := codec.Decode(nil); err == nil {
			t.Error("Decode accepted empty input")
		}
	})
}

func TestMappingCodec_TimeNormalizedToUTC(t *testing.T) {
	codec := NewMappingCodec()
	local := time.Date(2024, 6, 1, 12, 0, 0, 500, time.FixedZone("X", 7200))

	encoded, err := codec.Encode([]field.Mapping{{"at": field.Time(local)}})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	decoded, err := codec.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	got, ok := decoded[0].Time("at")
	if !ok {
		t.Fatal("decoded mapping lost the time field")
	}
	if !got.Equal(local) {
		t.Errorf("instant changed through the codec: got %v, want %v", got, local)
	}
	if got.Location() != time.UTC {
		t.Errorf("decoded time not in UTC: %v", got.Location())
	}
}
