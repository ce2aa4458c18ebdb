package schema

import (
	"fmt"

	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/errs"
	"github.com/Trinoooo/dastcom/storage/dastcom5/logs"
	"go.uber.org/zap"
)

// Projection names one field of a merged schema and the field it is taken
// from in each of the two source schemas.
type Projection struct {
	As   string
	From [2]string
}

// Same projects a field that carries the same name in both sources.
func Same(name string) Projection {
	return Projection{As: name, From: [2]string{name, name}}
}

// Merger maps records of two source schemas onto their common projection.
type Merger struct {
	sources [2]*Schema
	proj    []Projection
	schema  *Schema
}

// NewMerger checks that every projected pair has the same kind and builds
// the merged schema. Byte strings of different widths are compatible; the
// merged field takes the wider one.
func NewMerger(name string, a, b *Schema, proj []Projection) (*Merger, error) {
	fields := make([]Field, 0, len(proj))
	for _, p := range proj {
		fa, ok := a.Field(p.From[0])
		if !ok {
			return nil, errs.NewFieldNotFoundErr().WithMsg("%s.%s", a.name, p.From[0])
		}
		fb, ok := b.Field(p.From[1])
		if !ok {
			return nil, errs.NewFieldNotFoundErr().WithMsg("%s.%s", b.name, p.From[1])
		}
		if fa.Kind != fb.Kind {
			e := errs.NewSchemaMismatchErr().WithMsg("%s: %s vs %s", p.As, fa, fb)
			logs.Error(
				e.Error(),
				zap.String(consts.LogFieldParams, p.As),
				zap.String(consts.LogFieldValue, fmt.Sprintf("%s/%s", fa.Kind, fb.Kind)),
			)
			return nil, e
		}
		width := fa.Width
		if fb.Width > width {
			width = fb.Width
		}
		fields = append(fields, Field{Name: p.As, Kind: fa.Kind, Width: width})
	}

	merged, err := New(name, fields...)
	if err != nil {
		return nil, err
	}
	return &Merger{
		sources: [2]*Schema{a, b},
		proj:    append([]Projection(nil), proj...),
		schema:  merged,
	}, nil
}

func (m *Merger) Schema() *Schema {
	return m.schema
}

// Project copies the projected fields of r, a record of either source
// schema, into a record of the merged schema.
func (m *Merger) Project(r *Record) (*Record, error) {
	side := -1
	for i, s := range m.sources {
		if r.schema == s {
			side = i
			break
		}
	}
	if side < 0 {
		e := errs.NewSchemaMismatchErr().WithMsg("record of %s is not a source of %s", r.schema.name, m.schema.name)
		logs.Error(e.Error(), zap.String(consts.LogFieldParams, "record.schema"), zap.String(consts.LogFieldValue, r.schema.name))
		return nil, e
	}

	out := NewRecord(m.schema)
	for i, p := range m.proj {
		j := r.schema.index[p.From[side]]
		v := r.values[j]
		if raw, ok := v.([]byte); ok {
			padded := make([]byte, m.schema.fields[i].Width)
			copy(padded, raw)
			v = padded
		}
		out.values[i] = v
	}
	return out, nil
}
