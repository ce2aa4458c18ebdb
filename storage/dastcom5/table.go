package dastcom5

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/errs"
	"github.com/Trinoooo/dastcom/storage/dastcom5/logs"
	"github.com/Trinoooo/dastcom/storage/dastcom5/schema"
	"go.uber.org/zap"
)

type ColumnType int

const (
	ColumnInt    ColumnType = iota + 1 // int64 values
	ColumnFloat                        // float64 values
	ColumnString                       // string values
	ColumnTime                         // Epoch values
)

func (t ColumnType) String() string {
	switch t {
	case ColumnInt:
		return "int"
	case ColumnFloat:
		return "float"
	case ColumnString:
		return "string"
	case ColumnTime:
		return "time"
	}
	return "invalid"
}

type Column struct {
	Name   string
	Type   ColumnType
	Unit   string
	Values []any
}

// Table is a set of equally long named columns.
type Table struct {
	Columns []*Column
}

type TableOptions struct {
	WithUnits   bool   // attach a unit to every column that has one
	EpochAsTime bool   // turn Julian date columns into Epoch values
	TimeScale   string // scale of those epochs, DefaultTimeScale when empty
}

// fieldUnits maps record fields to the units they are stored in.
var fieldUnits = map[string]string{
	"EPOCH":       "d",
	"MA":          "deg",
	"W":           "deg",
	"OM":          "deg",
	"IN":          "deg",
	"A":           "au",
	"QR":          "au",
	"TP":          "d",
	"SOLDAT":      "d",
	"H":           "mag",
	"M1 (MT)":     "mag",
	"M2 (MN)":     "mag",
	"PHCOF (MNP)": "mag/deg",
	"A1":          "au/d^2",
	"A2":          "au/d^2",
	"A3":          "au/d^2",
	"DT":          "d",
	"R0":          "au",
	"ALF":         "deg",
	"DEL":         "deg",
	"SPHLM3":      "au",
	"SPHLM5":      "au",
	"RP":          "h",
	"GM":          "km^3/s^2",
	"RAD":         "km",
	"EXTNT1":      "km",
	"EXTNT2":      "km",
	"EXTNT3":      "km",
	"MOID":        "au",
	"RHO":         "g/cm^3",
	"AMRAT":       "m^2/kg",
	"RMSW":        "arcsec",
	"RMSU":        "arcsec",
	"RMSN":        "arcsec",
	"RMSH":        "mag",
	"RMSMT":       "mag",
	"RMSMN":       "mag",
}

// julianFields hold Julian dates.
var julianFields = map[string]bool{
	"EPOCH":  true,
	"TP":     true,
	"SOLDAT": true,
}

// Unit returns the unit a record field is stored in, empty when it is
// dimensionless or unknown.
func Unit(field string) string {
	return fieldUnits[field]
}

// RecordsTable lays records of one schema out as columns.
func RecordsTable(records []*schema.Record, opts TableOptions) (*Table, error) {
	t := &Table{}
	if len(records) == 0 {
		return t, nil
	}
	scale := opts.TimeScale
	if scale == "" {
		scale = DefaultTimeScale
	}

	sc := records[0].Schema()
	for _, rec := range records {
		if rec.Schema() != sc {
			e := errs.NewSchemaMismatchErr().WithMsg("%s record in a %s table", rec.Schema().Name(), sc.Name())
			logs.Error(e.Error(), zap.String(consts.LogFieldParams, "records"), zap.String(consts.LogFieldValue, rec.Schema().Name()))
			return nil, e
		}
	}

	for i, f := range sc.Fields() {
		col := &Column{Name: f.Name, Values: make([]any, 0, len(records))}
		switch {
		case opts.EpochAsTime && julianFields[f.Name]:
			col.Type = ColumnTime
		case f.Kind.IsInt():
			col.Type = ColumnInt
		case f.Kind.IsFloat():
			col.Type = ColumnFloat
		default:
			col.Type = ColumnString
		}
		if opts.WithUnits && col.Type != ColumnTime {
			col.Unit = fieldUnits[f.Name]
		}

		for _, rec := range records {
			col.Values = append(col.Values, cell(col.Type, rec.ValueAt(i), scale))
		}
		t.Columns = append(t.Columns, col)
	}
	return t, nil
}

func cell(typ ColumnType, v any, scale string) any {
	switch typ {
	case ColumnInt:
		n, _ := toInt64(v)
		return n
	case ColumnFloat:
		return toFloat64(v)
	case ColumnTime:
		return Epoch{JD: toFloat64(v), Scale: scale}
	}
	return v
}

func toInt64(v any) (int64, bool) {
	switch x := v.(type) {
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

func toFloat64(v any) float64 {
	switch x := v.(type) {
	case float32:
		return float64(x)
	case float64:
		return x
	}
	n, _ := toInt64(v)
	return float64(n)
}

// OrbitTable lays orbits out with angles in degrees.
func OrbitTable(orbits []*Orbit) *Table {
	t := &Table{Columns: []*Column{
		{Name: "record", Type: ColumnInt},
		{Name: "a", Type: ColumnFloat, Unit: "au"},
		{Name: "ecc", Type: ColumnFloat},
		{Name: "inc", Type: ColumnFloat, Unit: "deg"},
		{Name: "raan", Type: ColumnFloat, Unit: "deg"},
		{Name: "argp", Type: ColumnFloat, Unit: "deg"},
		{Name: "m", Type: ColumnFloat, Unit: "deg"},
		{Name: "EPOCH", Type: ColumnTime},
	}}
	for _, o := range orbits {
		row := []any{o.Record, o.A, o.Ecc, o.Inc.Deg(), o.RAAN.Deg(), o.ArgP.Deg(), o.M.Deg(), o.Epoch}
		for i, v := range row {
			t.Columns[i].Values = append(t.Columns[i].Values, v)
		}
	}
	return t
}

// Len is the number of rows.
func (t *Table) Len() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

func (t *Table) Row(i int) []any {
	row := make([]any, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = c.Values[i]
	}
	return row
}

// Append adds the rows of o below those of t. Both tables need the same
// column names in the same order and matching column types. An empty t
// takes the columns of o.
func (t *Table) Append(o *Table) error {
	if len(t.Columns) == 0 {
		for _, c := range o.Columns {
			t.Columns = append(t.Columns, &Column{
				Name:   c.Name,
				Type:   c.Type,
				Unit:   c.Unit,
				Values: append([]any(nil), c.Values...),
			})
		}
		return nil
	}
	if len(o.Columns) == 0 {
		return nil
	}

	if len(t.Columns) != len(o.Columns) {
		return tableMismatch("%d columns vs %d", len(t.Columns), len(o.Columns))
	}
	for i, c := range t.Columns {
		oc := o.Columns[i]
		if c.Name != oc.Name {
			return tableMismatch("column %d is %s vs %s", i, c.Name, oc.Name)
		}
		if c.Type != oc.Type {
			return tableMismatch("%s is %s vs %s", c.Name, c.Type, oc.Type)
		}
	}
	for i, c := range t.Columns {
		c.Values = append(c.Values, o.Columns[i].Values...)
	}
	return nil
}

func tableMismatch(format string, args ...any) error {
	e := errs.NewSchemaMismatchErr().WithMsg(format, args...)
	logs.Error(e.Error(), zap.String(consts.LogFieldParams, "table"), zap.Any(consts.LogFieldValue, args))
	return e
}

// WriteCSV writes a header row followed by one row per table row. Units,
// when present, are appended to the header as "name [unit]".
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Name
		if c.Unit != "" {
			header[i] = fmt.Sprintf("%s [%s]", c.Name, c.Unit)
		}
	}
	if err := cw.Write(header); err != nil {
		return errs.NewWriteFileErr().WithErr(err)
	}

	line := make([]string, len(t.Columns))
	for i, n := 0, t.Len(); i < n; i++ {
		for j, c := range t.Columns {
			line[j] = formatCell(c.Values[i])
		}
		if err := cw.Write(line); err != nil {
			return errs.NewWriteFileErr().WithErr(err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errs.NewWriteFileErr().WithErr(err)
	}
	return nil
}

func formatCell(v any) string {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case string:
		return x
	case Epoch:
		return x.String()
	}
	return fmt.Sprint(v)
}
