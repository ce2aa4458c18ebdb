package dastcom5

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Trinoooo/dastcom/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrbitFromRecord(t *testing.T) {
	fx := newFixture(t)
	s := fx.open(t, nil)

	o, err := s.OrbitFromRecord(3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), o.Record)
	assert.InDelta(t, 4.5, o.A, 1e-12)
	assert.InDelta(t, 0.1, o.Ecc, 1e-12)
	assert.InDelta(t, 10, o.Inc.Deg(), 1e-9)
	assert.InDelta(t, 20, o.RAAN.Deg(), 1e-9)
	assert.InDelta(t, 30, o.ArgP.Deg(), 1e-9)
	assert.InDelta(t, 40, o.M.Deg(), 1e-9)
	assert.Equal(t, Epoch{JD: 2459000.5, Scale: DefaultTimeScale}, o.Epoch)
	assert.WithinDuration(t, time.Date(2020, time.May, 31, 0, 0, 0, 0, time.UTC), o.Epoch.Time(), time.Millisecond)
}

func TestOrbitFromName(t *testing.T) {
	fx := newFixture(t)
	s := fx.open(t, NewOptions().SetTimeScale("TT"))

	o, err := s.OrbitFromName("Eros")
	require.NoError(t, err)
	assert.Equal(t, int64(3), o.Record)
	assert.Equal(t, "TT", o.Epoch.Scale)

	_, err = s.OrbitFromName("Halley")
	assert.Equal(t, int64(errs.AmbiguousNameErrCode), errs.GetCode(err))
	_, err = s.OrbitFromName("Vesta")
	assert.Equal(t, int64(errs.NotFoundErrCode), errs.GetCode(err))

	orbits, err := s.OrbitsFromName("Halley")
	require.NoError(t, err)
	require.Len(t, orbits, 2)
	assert.Equal(t, int64(900003), orbits[0].Record)
	assert.Equal(t, int64(900004), orbits[1].Record)
}

func TestRecordsTable(t *testing.T) {
	fx := newFixture(t)
	s := fx.open(t, nil)
	asteroids, err := s.AsteroidDB()
	require.NoError(t, err)

	plain, err := RecordsTable(asteroids, TableOptions{})
	require.NoError(t, err)
	assert.Equal(t, len(asteroids), plain.Len())
	a, ok := plain.Column("A")
	require.True(t, ok)
	assert.Equal(t, ColumnFloat, a.Type)
	assert.Empty(t, a.Unit)
	no, _ := plain.Column("NO")
	assert.Equal(t, ColumnInt, no.Type)
	assert.Equal(t, int64(900001), no.Values[3])
	name, _ := plain.Column("ASTNAM")
	assert.Equal(t, ColumnString, name.Type)
	assert.Equal(t, "Ceres", name.Values[0])

	rich, err := RecordsTable(asteroids, TableOptions{WithUnits: true, EpochAsTime: true})
	require.NoError(t, err)
	a, _ = rich.Column("A")
	assert.Equal(t, "au", a.Unit)
	in, _ := rich.Column("IN")
	assert.Equal(t, "deg", in.Unit)
	epoch, _ := rich.Column("EPOCH")
	assert.Equal(t, ColumnTime, epoch.Type)
	assert.Equal(t, Epoch{JD: 2459000.5, Scale: DefaultTimeScale}, epoch.Values[0])
	assert.Equal(t, len(rich.Columns), len(rich.Row(0)))
}

func TestTableAppend(t *testing.T) {
	fx := newFixture(t)
	s := fx.open(t, nil)
	asteroids, err := s.AsteroidDB()
	require.NoError(t, err)
	comets, err := s.CometDB()
	require.NoError(t, err)

	at, err := RecordsTable(asteroids, TableOptions{})
	require.NoError(t, err)
	ct, err := RecordsTable(comets, TableOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(errs.SchemaMismatchErrCode), errs.GetCode(at.Append(ct)))

	_, err = RecordsTable(append(asteroids, comets...), TableOptions{})
	assert.Equal(t, int64(errs.SchemaMismatchErrCode), errs.GetCode(err))

	plain, err := RecordsTable(comets, TableOptions{})
	require.NoError(t, err)
	timed, err := RecordsTable(comets, TableOptions{EpochAsTime: true})
	require.NoError(t, err)
	assert.Equal(t, int64(errs.SchemaMismatchErrCode), errs.GetCode(plain.Append(timed)))

	empty := &Table{}
	require.NoError(t, empty.Append(ct))
	require.NoError(t, empty.Append(ct))
	assert.Equal(t, 2*len(comets), empty.Len())
	assert.Equal(t, len(comets), ct.Len())
}

func TestOrbitTableCSV(t *testing.T) {
	fx := newFixture(t)
	s := fx.open(t, nil)
	orbits, err := s.OrbitsFromName("Halley")
	require.NoError(t, err)

	tbl := OrbitTable(orbits)
	assert.Equal(t, 2, tbl.Len())

	var buf bytes.Buffer
	require.NoError(t, tbl.WriteCSV(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "record,a [au],ecc,inc [deg],raan [deg],argp [deg],m [deg],EPOCH", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "900003,4.5,0.1,"), lines[1])
	assert.True(t, strings.HasSuffix(lines[1], ",2020-05-31T00:00:00.000 TDB"), lines[1])
}
