package schema

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/errs"
	"github.com/Trinoooo/dastcom/storage/dastcom5/logs"
	"go.uber.org/zap"
)

// Record is one decoded fixed width block. Numeric fields hold int8, int16,
// int32, float32 or float64; byte string fields keep their raw padded bytes
// so that Encode reproduces the input exactly.
type Record struct {
	schema *Schema
	values []any
}

// NewRecord returns a zero valued record of the schema.
func NewRecord(s *Schema) *Record {
	r := &Record{
		schema: s,
		values: make([]any, s.Len()),
	}
	for i, f := range s.fields {
		r.values[i] = zeroValue(f)
	}
	return r
}

func zeroValue(f Field) any {
	switch f.Kind {
	case KindInt8:
		return int8(0)
	case KindInt16:
		return int16(0)
	case KindInt32:
		return int32(0)
	case KindFloat32:
		return float32(0)
	case KindFloat64:
		return float64(0)
	default:
		return make([]byte, f.Width)
	}
}

// Decode interprets the first s.Size() bytes of data. Extra trailing bytes
// are ignored; fewer bytes fail with a truncated record error.
func Decode(s *Schema, data []byte) (*Record, error) {
	if lodata := len(data); lodata < s.size {
		e := errs.NewTruncatedRecordErr().WithMsg("%s needs %d bytes, got %d", s.name, s.size, lodata)
		logs.Error(
			e.Error(),
			zap.String(consts.LogFieldParams, "len(data)"),
			zap.Int(consts.LogFieldValue, lodata),
		)
		return nil, e
	}

	r := &Record{
		schema: s,
		values: make([]any, len(s.fields)),
	}
	le := binary.LittleEndian
	for i, f := range s.fields {
		b := data[s.offsets[i] : s.offsets[i]+f.Width]
		switch f.Kind {
		case KindInt8:
			r.values[i] = int8(b[0])
		case KindInt16:
			r.values[i] = int16(le.Uint16(b))
		case KindInt32:
			r.values[i] = int32(le.Uint32(b))
		case KindFloat32:
			r.values[i] = math.Float32frombits(le.Uint32(b))
		case KindFloat64:
			r.values[i] = math.Float64frombits(le.Uint64(b))
		default:
			raw := make([]byte, f.Width)
			copy(raw, b)
			r.values[i] = raw
		}
	}
	return r, nil
}

// Encode lays the record out with its schema.
func (r *Record) Encode() []byte {
	buf := make([]byte, r.schema.size)
	le := binary.LittleEndian
	for i, f := range r.schema.fields {
		b := buf[r.schema.offsets[i] : r.schema.offsets[i]+f.Width]
		switch v := r.values[i].(type) {
		case int8:
			b[0] = byte(v)
		case int16:
			le.PutUint16(b, uint16(v))
		case int32:
			le.PutUint32(b, uint32(v))
		case float32:
			le.PutUint32(b, math.Float32bits(v))
		case float64:
			le.PutUint64(b, math.Float64bits(v))
		case []byte:
			copy(b, v)
		}
	}
	return buf
}

func (r *Record) Schema() *Schema {
	return r.schema
}

// Value returns a field's decoded value; byte strings come back as trimmed
// strings.
func (r *Record) Value(name string) (any, error) {
	i, err := r.schema.indexOf(name)
	if err != nil {
		return nil, err
	}
	if raw, ok := r.values[i].([]byte); ok {
		return trim(raw), nil
	}
	return r.values[i], nil
}

// ValueAt is Value by field position.
func (r *Record) ValueAt(i int) any {
	if raw, ok := r.values[i].([]byte); ok {
		return trim(raw)
	}
	return r.values[i]
}

func (r *Record) Int(name string) (int64, error) {
	i, err := r.schema.indexOf(name)
	if err != nil {
		return 0, err
	}
	switch v := r.values[i].(type) {
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	}
	return 0, errs.NewFieldTypeErr().WithMsg("%s is %s, not an integer", name, r.schema.fields[i].Kind)
}

// Float returns float fields widened to float64. Integer fields are
// converted as well.
func (r *Record) Float(name string) (float64, error) {
	i, err := r.schema.indexOf(name)
	if err != nil {
		return 0, err
	}
	switch v := r.values[i].(type) {
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	}
	return 0, errs.NewFieldTypeErr().WithMsg("%s is %s, not a number", name, r.schema.fields[i].Kind)
}

// Text returns a byte string field with trailing NUL and blank padding removed.
func (r *Record) Text(name string) (string, error) {
	raw, err := r.Raw(name)
	if err != nil {
		return "", err
	}
	return trim(raw), nil
}

// Raw returns a byte string field exactly as stored.
func (r *Record) Raw(name string) ([]byte, error) {
	i, err := r.schema.indexOf(name)
	if err != nil {
		return nil, err
	}
	raw, ok := r.values[i].([]byte)
	if !ok {
		return nil, errs.NewFieldTypeErr().WithMsg("%s is %s, not a byte string", name, r.schema.fields[i].Kind)
	}
	return raw, nil
}

// Set stores v into a field. Integer fields accept any Go integer that fits,
// float fields accept float32 or float64, byte string fields accept a string
// or []byte no longer than the field and are padded with NUL.
func (r *Record) Set(name string, v any) error {
	i, err := r.schema.indexOf(name)
	if err != nil {
		return err
	}
	f := r.schema.fields[i]
	cv, ok := convert(f, v)
	if !ok {
		e := errs.NewFieldTypeErr().WithMsg("%s (%s) cannot hold %T", name, f.Kind, v)
		logs.Error(e.Error(), zap.String(consts.LogFieldParams, name), zap.Any(consts.LogFieldValue, v))
		return e
	}
	r.values[i] = cv
	return nil
}

func convert(f Field, v any) (any, bool) {
	switch f.Kind {
	case KindInt8, KindInt16, KindInt32:
		n, ok := asInt64(v)
		if !ok {
			return nil, false
		}
		switch f.Kind {
		case KindInt8:
			return int8(n), n >= math.MinInt8 && n <= math.MaxInt8
		case KindInt16:
			return int16(n), n >= math.MinInt16 && n <= math.MaxInt16
		default:
			return int32(n), n >= math.MinInt32 && n <= math.MaxInt32
		}
	case KindFloat32:
		switch x := v.(type) {
		case float32:
			return x, true
		case float64:
			return float32(x), true
		}
	case KindFloat64:
		switch x := v.(type) {
		case float32:
			return float64(x), true
		case float64:
			return x, true
		}
	case KindBytes:
		var src []byte
		switch x := v.(type) {
		case string:
			src = []byte(x)
		case []byte:
			src = x
		default:
			return nil, false
		}
		if len(src) > f.Width {
			return nil, false
		}
		raw := make([]byte, f.Width)
		copy(raw, src)
		return raw, true
	}
	return nil, false
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	}
	return 0, false
}

func trim(raw []byte) string {
	return strings.TrimRight(string(raw), "\x00 ")
}
