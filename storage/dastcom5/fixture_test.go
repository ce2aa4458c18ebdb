package dastcom5

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/storage/dastcom5/schema"
	"github.com/stretchr/testify/require"
)

// The fixture database holds three numbered asteroids (1..3), two
// unnumbered asteroids (900001, 900002) and two comets (900003, 900004).
const (
	fixtureEndPt1 = 3
	fixtureEndPt2 = 900002
	fixtureBias0  = -1     // record 1 in slot 1
	fixtureBias1  = 899996 // record 900001 in slot 4
	fixtureBias2  = 900001 // record 900003 in slot 1
)

type body struct {
	record int64
	name   string
	desig  string
}

var (
	fixtureAsteroids = []body{
		{1, "Ceres", "A801 AA"},
		{2, "Pallas", "A802 FA"},
		{3, "Eros", "A898 PA"},
		{900001, "Aeros", "2001 AE"},
		{900002, "Erosion", "2002 ER"},
	}
	fixtureComets = []body{
		{900003, "1P/Halley", "1P"},
		{900004, "1P/Halley", "1P"},
	}
)

type fixture struct {
	dir     string
	ast     *Header
	com     *Header
	records map[int64]*schema.Record
}

func fixtureHeaders() (*Header, *Header) {
	ast := &Header{
		Kind:      Asteroid,
		Bias:      fixtureBias1,
		Bias0:     fixtureBias0,
		BeginP:    [3]int64{1, 900001, 0},
		EndPt:     [3]int64{fixtureEndPt1, fixtureEndPt2, 0},
		CalDate:   "2024-01-01_00:00:00",
		JDDate:    2460310.5,
		FileType:  "F",
		ByteOrder: 4321,
	}
	com := &Header{
		Kind:      Comet,
		Bias:      fixtureBias2,
		BeginP:    [3]int64{900003, 0, 0},
		EndPt:     [3]int64{900004, 0, 0},
		CalDate:   "2024-01-01_00:00:00",
		JDDate:    2460310.5,
		FileType:  "F",
		ByteOrder: 4321,
	}
	return ast, com
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fx := &fixture{dir: t.TempDir(), records: map[int64]*schema.Record{}}
	fx.ast, fx.com = fixtureHeaders()

	fx.writeDat(t, fx.ast, fixtureAsteroids)
	fx.writeDat(t, fx.com, fixtureComets)

	var idx strings.Builder
	for _, b := range append(append([]body{}, fixtureAsteroids...), fixtureComets...) {
		fmt.Fprintf(&idx, "%6d %s %s %d\n", b.record, b.name, b.desig, 2000000+b.record)
	}
	fx.writeFile(t, consts.IndexFileName, []byte(idx.String()))
	return fx
}

func fixtureRecord(t *testing.T, kind BodyKind, b body) *schema.Record {
	t.Helper()
	rec := schema.NewRecord(kind.recordSchema())
	nameField := "ASTNAM"
	if kind == Comet {
		nameField = "COMNAM"
	}
	values := map[string]any{
		"NO":      b.record,
		"NOBS":    100 + int(b.record%1000),
		"EPOCH":   2459000.5,
		"MA":      40.0,
		"W":       30.0,
		"OM":      20.0,
		"IN":      10.0,
		"EC":      0.1,
		"A":       1.5 + float64(b.record%10),
		"QR":      1.35,
		"TP":      2458900.5,
		"H":       float32(15.5),
		"MOID":    float32(0.25),
		"DESIG":   b.desig,
		"IREF":    "JPL 1",
		nameField: b.name,
	}
	for name, v := range values {
		require.NoError(t, rec.Set(name, v), name)
	}
	return rec
}

// writeDat lays out the header slot followed by the bodies in slot order.
func (fx *fixture) writeDat(t *testing.T, h *Header, bodies []body) {
	t.Helper()
	head, err := h.Encode()
	require.NoError(t, err)
	stride := int(h.Kind.Stride())
	data := make([]byte, stride, stride*(len(bodies)+1))
	copy(data, head)

	for _, b := range bodies {
		rec := fixtureRecord(t, h.Kind, b)
		fx.records[b.record] = rec
		data = append(data, rec.Encode()...)
	}
	fx.writeFile(t, h.Kind.fileName(), data)
}

func (fx *fixture) writeFile(t *testing.T, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(fx.dir, name), data, 0660))
}

func (fx *fixture) path(name string) string {
	return filepath.Join(fx.dir, name)
}

func (fx *fixture) open(t *testing.T, opts *Options) *Store {
	t.Helper()
	s, err := Open(fx.dir, opts)
	require.NoError(t, err)
	return s
}
