package dastcom5

import (
	"fmt"
	"time"

	"github.com/Trinoooo/dastcom/storage/dastcom5/schema"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/unit"
)

// DefaultTimeScale is the scale DASTCOM5 epochs are given in.
const DefaultTimeScale = "TDB"

// Epoch is a Julian date tagged with its time scale.
type Epoch struct {
	JD    float64
	Scale string
}

// Time converts the Julian date to calendar time. The scale is only a
// label; no conversion between scales is applied.
func (e Epoch) Time() time.Time {
	return julian.JDToTime(e.JD)
}

func (e Epoch) String() string {
	return fmt.Sprintf("%s %s", e.Time().Format("2006-01-02T15:04:05.000"), e.Scale)
}

// Orbit holds the osculating elements of one record.
type Orbit struct {
	Record int64
	A      float64 // semi-major axis, au
	Ecc    float64
	Inc    unit.Angle
	RAAN   unit.Angle
	ArgP   unit.Angle
	M      unit.Angle
	Epoch  Epoch
}

// OrbitOf reads the orbital elements out of a decoded record of either
// file.
func OrbitOf(r int64, rec *schema.Record, scale string) (*Orbit, error) {
	o := &Orbit{Record: r}
	floats := []struct {
		name string
		dst  *float64
	}{
		{"A", &o.A},
		{"EC", &o.Ecc},
		{"EPOCH", &o.Epoch.JD},
	}
	for _, f := range floats {
		v, err := rec.Float(f.name)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}

	angles := []struct {
		name string
		dst  *unit.Angle
	}{
		{"IN", &o.Inc},
		{"OM", &o.RAAN},
		{"W", &o.ArgP},
		{"MA", &o.M},
	}
	for _, a := range angles {
		deg, err := rec.Float(a.name)
		if err != nil {
			return nil, err
		}
		*a.dst = unit.AngleFromDeg(deg)
	}

	o.Epoch.Scale = scale
	return o, nil
}

// OrbitFromRecord reads record r and extracts its orbit.
func (s *Store) OrbitFromRecord(r int64) (*Orbit, error) {
	rec, err := s.ReadRecord(r)
	if err != nil {
		return nil, err
	}
	return OrbitOf(r, rec, s.opts.timeScale)
}

// OrbitsFromName returns one orbit per index line naming the body.
func (s *Store) OrbitsFromName(name string) ([]*Orbit, error) {
	records, err := s.RecordsFromName(name)
	if err != nil {
		return nil, err
	}
	orbits := make([]*Orbit, 0, len(records))
	for _, r := range records {
		o, err := s.OrbitFromRecord(r)
		if err != nil {
			return nil, err
		}
		orbits = append(orbits, o)
	}
	return orbits, nil
}

// OrbitFromName returns the orbit of the single body the name matches.
func (s *Store) OrbitFromName(name string) (*Orbit, error) {
	r, err := s.RecordFromName(name)
	if err != nil {
		return nil, err
	}
	return s.OrbitFromRecord(r)
}
