package record

import (
	"github.com/fieldvault/fieldvault/pkg/field"
)

// Encoder is the outbound half of the codec contract. EncodeFields must be
// pure and total: it returns a mapping holding every field the type's
// DecodeFields requires, and it cannot fail for a valid record.
type Encoder interface {
	EncodeFields() field.Mapping
}

// Decoder is the inbound half of the codec contract, implemented on pointer
// receivers. DecodeFields must check every required field before concluding
// success and must leave no partial state behind a returned error worth
// trusting; batch helpers discard the value on failure.
type Decoder interface {
	DecodeFields(field.Mapping) error
}

// Ptr constrains a pointer to T that can rebuild T from a mapping.
type Ptr[T any] interface {
	*T
	Decoder
}

// EncodeAll encodes each record in order. The result is always the same
// length as the input since encoding cannot fail.
func EncodeAll[E Encoder](records []E) []field.Mapping {
	mappings := make([]field.Mapping, len(records))
	for i, r := range records {
		mappings[i] = r.EncodeFields()
	}
	return mappings
}

// DecodeAll decodes each mapping in order, silently dropping any entry that
// fails to decode. Relative order of the survivors is preserved. Callers that
// need to tell "nothing stored" from "everything dropped" should use the
// backend's presence result or DecodeAllCounted.
func DecodeAll[T any, PT Ptr[T]](mappings []field.Mapping) []T {
	records, _ := DecodeAllCounted[T, PT](mappings)
	return records
}

// DecodeAllCounted is DecodeAll with an explicit count of dropped entries,
// for callers that want the failure signal the silent variant withholds.
func DecodeAllCounted[T any, PT Ptr[T]](mappings []field.Mapping) ([]T, int) {
	records := make([]T, 0, len(mappings))
	dropped := 0
	for _, m := range mappings {
		var r T
		if err := PT(&r).DecodeFields(m); err != nil {
			dropped++
			continue
		}
		records = append(records, r)
	}
	return records, dropped
}
