package dastcom5

import (
	"bufio"
	"io"

	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/errs"
	"github.com/Trinoooo/dastcom/storage/dastcom5/logs"
	"github.com/Trinoooo/dastcom/storage/dastcom5/schema"
	"go.uber.org/zap"
)

const scanBufferSize = 256 * consts.KB

// EntireMerger projects asteroid and comet records onto their common
// fields.
var EntireMerger = mustMerger(schema.NewMerger("entire", schema.AsteroidSchema, schema.CometSchema, schema.EntireProjection))

func mustMerger(m *schema.Merger, err error) *schema.Merger {
	if err != nil {
		panic(err)
	}
	return m
}

// Scan decodes every record of one file in file order and passes it to fn.
// A non nil error from fn stops the scan and is returned as is.
func (s *Store) Scan(kind BodyKind, fn func(*schema.Record) error) error {
	s.metrics.lookup(opScan)
	stopped := false
	err := s.scan(kind, func(rec *schema.Record) error {
		if err := fn(rec); err != nil {
			stopped = true
			return err
		}
		return nil
	})
	if err != nil && !stopped {
		s.metrics.fail(err)
	}
	return err
}

func (s *Store) scan(kind BodyKind, fn func(*schema.Record) error) error {
	path := s.path(kind)
	f, err := openDataFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		e := errs.NewFileStatErr().WithErr(err)
		logs.Error(e.Error(), zap.String(consts.LogFieldPath, path))
		return e
	}

	stride := kind.Stride()
	size := info.Size()
	if size < stride || (size-stride)%stride != 0 {
		e := errs.NewTruncatedRecordErr().WithMsg("%s file of %d bytes is not a whole number of %d byte records", kind, size, stride)
		logs.Error(e.Error(), zap.String(consts.LogFieldPath, path), zap.Int64(consts.LogFieldValue, size))
		return e
	}

	if _, err := f.Seek(stride, io.SeekStart); err != nil {
		e := errs.NewSeekFileErr().WithErr(err)
		logs.Error(e.Error(), zap.String(consts.LogFieldPath, path))
		return e
	}

	rs := kind.recordSchema()
	reader := bufio.NewReaderSize(f, scanBufferSize)
	buf := make([]byte, stride)
	count := (size - stride) / stride
	for i := int64(0); i < count; i++ {
		if _, err := io.ReadFull(reader, buf); err != nil {
			e := errs.NewReadFileErr().WithErr(err)
			logs.Error(e.Error(), zap.String(consts.LogFieldPath, path), zap.Int64(consts.LogFieldValue, i))
			return e
		}
		s.metrics.read(len(buf))
		rec, err := schema.Decode(rs, buf)
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) collect(kind BodyKind) ([]*schema.Record, error) {
	var records []*schema.Record
	err := s.Scan(kind, func(rec *schema.Record) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// AsteroidDB returns every record of the asteroid file.
func (s *Store) AsteroidDB() ([]*schema.Record, error) {
	return s.collect(Asteroid)
}

// CometDB returns every record of the comet file.
func (s *Store) CometDB() ([]*schema.Record, error) {
	return s.collect(Comet)
}

// EntireDB returns asteroids followed by comets, each reduced to the fields
// of EntireMerger.
func (s *Store) EntireDB() ([]*schema.Record, error) {
	var merged []*schema.Record
	project := func(rec *schema.Record) error {
		m, err := EntireMerger.Project(rec)
		if err != nil {
			return err
		}
		merged = append(merged, m)
		return nil
	}
	for _, kind := range []BodyKind{Asteroid, Comet} {
		if err := s.Scan(kind, project); err != nil {
			return nil, err
		}
	}
	return merged, nil
}
