package codec

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"
	"time"

	"github.com/fieldvault/fieldvault/pkg/field"
)

// Magic marks the start of every encoded blob
var Magic = [4]byte{'F', 'V', 'M', '1'}

const (
	headerSize = 12 // Magic(4) + CRC32(4) + Count(4)
	maxNameLen = math.MaxUint16
	maxPayload = math.MaxUint32
	boolTrue   = 1
	boolFalse  = 0
)

// MappingCodec serializes sequences of field mappings into the self-describing
// binary blob the persistence backends store
type MappingCodec struct{}

// NewMappingCodec creates a new mapping codec instance
func NewMappingCodec() *MappingCodec {
	return &MappingCodec{}
}

// Encode serializes a sequence of mappings.
// Format: [Magic(4)][CRC32(4)][Count(4)] followed by one block per mapping.
// Field names within a mapping are written in sorted order so the same
// sequence always encodes to the same bytes.
func (c *MappingCodec) Encode(mappings []field.Mapping) ([]byte, error) {
	if uint64(len(mappings)) > maxPayload {
		return nil, fmt.Errorf("too many mappings: %d", len(mappings))
	}

	buf := make([]byte, headerSize)
	copy(buf[0:4], Magic[:])
	binary.LittleEndian.PutUint32(buf[8:12], uint32(len(mappings)))

	var err error
	for i, m := range mappings {
		buf, err = appendMapping(buf, m)
		if err != nil {
			return nil, fmt.Errorf("mapping %d: %w", i, err)
		}
	}

	crc := crc32.ChecksumIEEE(buf[8:])
	binary.LittleEndian.PutUint32(buf[4:8], crc)

	return buf, nil
}

// Decode deserializes a blob produced by Encode. It fails on a bad magic,
// a checksum mismatch, or any structural damage; it never returns a partial
// sequence.
func (c *MappingCodec) Decode(data []byte) ([]field.Mapping, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("data too short for header: %d bytes", len(data))
	}
	if [4]byte(data[0:4]) != Magic {
		return nil, fmt.Errorf("bad magic %q", data[0:4])
	}

	crc := binary.LittleEndian.Uint32(data[4:8])
	if actual := crc32.ChecksumIEEE(data[8:]); actual != crc {
		return nil, fmt.Errorf("checksum mismatch: %d != %d", actual, crc)
	}

	count := binary.LittleEndian.Uint32(data[8:12])
	// Every mapping block carries at least a field count, so a valid blob
	// cannot claim more mappings than its remaining bytes allow.
	if uint64(count) > uint64(len(data)-headerSize)/4 {
		return nil, fmt.Errorf("mapping count %d exceeds blob size", count)
	}
	mappings := make([]field.Mapping, 0, count)

	off := headerSize
	for i := uint32(0); i < count; i++ {
		m, n, err := readMapping(data, off)
		if err != nil {
			return nil, fmt.Errorf("mapping %d: %w", i, err)
		}
		mappings = append(mappings, m)
		off = n
	}
	if off != len(data) {
		return nil, fmt.Errorf("%d trailing bytes after %d mappings", len(data)-off, count)
	}

	return mappings, nil
}

// appendMapping writes [FieldCount(4)] then one entry per field, sorted by name.
// Entry: [NameLen(2)][Name][Kind(1)][payload].
func appendMapping(buf []byte, m field.Mapping) ([]byte, error) {
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(m)))

	for _, name := range m.Names() {
		if len(name) > maxNameLen {
			return nil, fmt.Errorf("field name too long: %d bytes", len(name))
		}
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(name)))
		buf = append(buf, name...)

		v := m[name]
		buf = append(buf, byte(v.Kind()))

		switch v.Kind() {
		case field.KindInt:
			i, _ := v.Int()
			buf = binary.LittleEndian.AppendUint64(buf, uint64(i))
		case field.KindFloat:
			f, _ := v.Float()
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
		case field.KindString:
			s, _ := v.Text()
			if uint64(len(s)) > maxPayload {
				return nil, fmt.Errorf("field %q: string too long", name)
			}
			buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s)))
			buf = append(buf, s...)
		case field.KindBool:
			b, _ := v.Bool()
			if b {
				buf = append(buf, boolTrue)
			} else {
				buf = append(buf, boolFalse)
			}
		case field.KindTime:
			t, _ := v.Time()
			buf = binary.LittleEndian.AppendUint64(buf, uint64(t.UnixNano()))
		case field.KindBytes:
			raw, _ := v.Bytes()
			if uint64(len(raw)) > maxPayload {
				return nil, fmt.Errorf("field %q: byte payload too long", name)
			}
			buf = binary.LittleEndian.AppendUint32(buf, uint32(len(raw)))
			buf = append(buf, raw...)
		default:
			return nil, fmt.Errorf("field %q: cannot encode kind %s", name, v.Kind())
		}
	}

	return buf, nil
}

// readMapping decodes one mapping block starting at off and returns the
// offset just past it.
func readMapping(data []byte, off int) (field.Mapping, int, error) {
	if len(data)-off < 4 {
		return nil, 0, fmt.Errorf("data too short for field count")
	}
	fieldCount := binary.LittleEndian.Uint32(data[off:])
	off += 4

	// A field entry is at least name length, kind, and one payload byte.
	if uint64(fieldCount) > uint64(len(data)-off)/4 {
		return nil, 0, fmt.Errorf("field count %d exceeds blob size", fieldCount)
	}
	m := make(field.Mapping, fieldCount)
	for i := uint32(0); i < fieldCount; i++ {
		if len(data)-off < 2 {
			return nil, 0, fmt.Errorf("data too short for name length")
		}
		nameLen := int(binary.LittleEndian.Uint16(data[off:]))
		off += 2

		if len(data)-off < nameLen+1 {
			return nil, 0, fmt.Errorf("data too short for name and kind")
		}
		name := string(data[off : off+nameLen])
		off += nameLen
		kind := field.Kind(data[off])
		off++

		var v field.Value
		switch kind {
		case field.KindInt:
			if len(data)-off < 8 {
				return nil, 0, fmt.Errorf("field %q: data too short for int", name)
			}
			v = field.Int(int64(binary.LittleEndian.Uint64(data[off:])))
			off += 8
		case field.KindFloat:
			if len(data)-off < 8 {
				return nil, 0, fmt.Errorf("field %q: data too short for float", name)
			}
			v = field.Float(math.Float64frombits(binary.LittleEndian.Uint64(data[off:])))
			off += 8
		case field.KindString:
			s, n, err := readBlob(data, off)
			if err != nil {
				return nil, 0, fmt.Errorf("field %q: %w", name, err)
			}
			v = field.String(string(s))
			off = n
		case field.KindBool:
			if len(data)-off < 1 {
				return nil, 0, fmt.Errorf("field %q: data too short for bool", name)
			}
			switch data[off] {
			case boolTrue:
				v = field.Bool(true)
			case boolFalse:
				v = field.Bool(false)
			default:
				return nil, 0, fmt.Errorf("field %q: invalid bool byte %d", name, data[off])
			}
			off++
		case field.KindTime:
			if len(data)-off < 8 {
				return nil, 0, fmt.Errorf("field %q: data too short for time", name)
			}
			nanos := int64(binary.LittleEndian.Uint64(data[off:]))
			v = field.Time(time.Unix(0, nanos).UTC())
			off += 8
		case field.KindBytes:
			raw, n, err := readBlob(data, off)
			if err != nil {
				return nil, 0, fmt.Errorf("field %q: %w", name, err)
			}
			cp := make([]byte, len(raw))
			copy(cp, raw)
			v = field.Bytes(cp)
			off = n
		default:
			return nil, 0, fmt.Errorf("field %q: unknown kind %d", name, kind)
		}

		if _, dup := m[name]; dup {
			return nil, 0, fmt.Errorf("duplicate field %q", name)
		}
		m[name] = v
	}

	return m, off, nil
}

// readBlob reads a length-prefixed byte run and returns the offset past it.
func readBlob(data []byte, off int) ([]byte, int, error) {
	if len(data)-off < 4 {
		return nil, 0, fmt.Errorf("data too short for length prefix")
	}
	n := int(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	if len(data)-off < n {
		return nil, 0, fmt.Errorf("data too short for payload: %d < %d", len(data)-off, n)
	}
	return data[off : off+n], off + n, nil
}
