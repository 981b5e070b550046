package cmd

import (
	"fmt"
	"time"

	"github.com/fieldvault/fieldvault/pkg/field"
)

// Reading is the demonstration record type: one value per supported field
// kind. It exercises the codec and the backends; it is not part of the
// reusable core.
type Reading struct {
	Sequence int64
	Value    float64
	Label    string
	Valid    bool
	TakenAt  time.Time
	Raw      []byte
}

var readingSchema = field.Schema{
	"sequence": field.KindInt,
	"value":    field.KindFloat,
	"label":    field.KindString,
	"valid":    field.KindBool,
	"taken_at": field.KindTime,
	"raw":      field.KindBytes,
}

// EncodeFields renders the reading as a field mapping
func (r *Reading) EncodeFields() field.Mapping {
	return field.Mapping{
		"sequence": field.Int(r.Sequence),
		"value":    field.Float(r.Value),
		"label":    field.String(r.Label),
		"valid":    field.Bool(r.Valid),
		"taken_at": field.Time(r.TakenAt),
		"raw":      field.Bytes(r.Raw),
	}
}

// DecodeFields rebuilds the reading from a field mapping, failing if any
// required field is missing or mistyped.
func (r *Reading) DecodeFields(m field.Mapping) error {
	if err := readingSchema.Validate(m); err != nil {
		return err
	}
	r.Sequence, _ = m.Int("sequence")
	r.Value, _ = m.Float("value")
	r.Label, _ = m.Text("label")
	r.Valid, _ = m.Bool("valid")
	r.TakenAt, _ = m.Time("taken_at")
	r.Raw, _ = m.Bytes("raw")
	return nil
}

// Equal reports whether two readings match field-for-field
func (r *Reading) Equal(o *Reading) bool {
	return r.Sequence == o.Sequence &&
		r.Value == o.Value &&
		r.Label == o.Label &&
		r.Valid == o.Valid &&
		r.TakenAt.Equal(o.TakenAt) &&
		string(r.Raw) == string(o.Raw)
}

func (r *Reading) String() string {
	return fmt.Sprintf("Reading{seq=%d value=%g label=%q valid=%t taken_at=%s raw=0x%x}",
		r.Sequence, r.Value, r.Label, r.Valid, r.TakenAt.Format(time.RFC3339), r.Raw)
}
