package dastcom5

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/errs"
	"github.com/Trinoooo/dastcom/storage/dastcom5/logs"
	"github.com/Trinoooo/dastcom/storage/dastcom5/schema"
	"github.com/Trinoooo/dastcom/utils"
	"go.uber.org/zap"
)

// Store reads records out of one DASTCOM5 database directory. It holds no
// open files: every call opens, reads and closes what it needs.
type Store struct {
	dir     string
	opts    *Options
	metrics *MetricsHelper
	headers *utils.Lru[string, cachedHeader]
}

// cachedHeader is valid while the file keeps its size and modification time.
// Callers only ever see copies of header.
type cachedHeader struct {
	size    int64
	modTime time.Time
	header  *Header
}

// Open binds a store to dir, the directory holding dast5_le.dat,
// dcom5_le.dat and dastcom.idx.
func Open(dir string, opts *Options) (*Store, error) {
	if opts == nil {
		opts = NewOptions()
	}

	err := opts.check()
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		e := errs.NewNotFoundErr().WithMsg("database directory %s, fetch the DASTCOM5 archive first", dir)
		if err != nil {
			e = e.WithErr(err)
		}
		logs.Error(e.Error(), zap.String(consts.LogFieldPath, dir))
		return nil, e
	}

	return &Store{
		dir:     dir,
		opts:    opts,
		metrics: opts.metrics,
		headers: utils.NewLRU[string, cachedHeader](opts.headerCacheSize),
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) HeaderCacheSize() int {
	return s.opts.headerCacheSize
}

func (s *Store) path(kind BodyKind) string {
	return filepath.Join(s.dir, kind.fileName())
}

func (s *Store) indexPath() string {
	return filepath.Join(s.dir, consts.IndexFileName)
}

// Headers reads the asteroid and comet file headers.
func (s *Store) Headers() (ast, com *Header, err error) {
	ast, err = s.header(Asteroid)
	if err != nil {
		return nil, nil, err
	}
	com, err = s.header(Comet)
	if err != nil {
		return nil, nil, err
	}
	return ast, com, nil
}

func (s *Store) header(kind BodyKind) (*Header, error) {
	s.metrics.lookup(opHeader)
	path := s.path(kind)
	info, err := os.Stat(path)
	if err != nil {
		// let ReadHeader classify the failure
		h, err := ReadHeader(path, kind)
		return h, s.metrics.fail(err)
	}

	if cached, ok := s.headers.Read(path); ok {
		if cached.size == info.Size() && cached.modTime.Equal(info.ModTime()) {
			s.metrics.cacheHit()
			h := *cached.header
			return &h, nil
		}
		s.headers.Remove(path)
	}

	h, err := ReadHeader(path, kind)
	if err != nil {
		return nil, s.metrics.fail(err)
	}
	s.metrics.read(kind.headerSchema().Size())
	kept := *h
	s.headers.Write(path, cachedHeader{size: info.Size(), modTime: info.ModTime(), header: &kept})
	return h, nil
}

// Resolver builds the record resolver from the current headers.
func (s *Store) Resolver() (*Resolver, error) {
	ast, com, err := s.Headers()
	if err != nil {
		return nil, err
	}
	return NewResolver(ast, com)
}

// Locate resolves record r with the current headers. The file size check
// happens when the record is read.
func (s *Store) Locate(r int64) (Location, error) {
	rs, err := s.Resolver()
	if err != nil {
		return Location{}, err
	}
	loc, err := rs.Resolve(r)
	if err != nil {
		return Location{}, s.metrics.fail(err)
	}
	return loc, nil
}

// ReadRecord decodes record r from whichever file the resolver picks.
func (s *Store) ReadRecord(r int64) (*schema.Record, error) {
	s.metrics.lookup(opRecord)
	loc, err := s.Locate(r)
	if err != nil {
		return nil, err
	}
	rec, err := s.readAt(loc)
	if err != nil {
		return nil, s.metrics.fail(err)
	}
	return rec, nil
}

func (s *Store) readAt(loc Location) (*schema.Record, error) {
	path := s.path(loc.Kind)
	f, err := openDataFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		e := errs.NewFileStatErr().WithErr(err)
		logs.Error(e.Error(), zap.String(consts.LogFieldPath, path))
		return nil, e
	}
	if loc.End() > info.Size() {
		e := errs.NewRecordOutOfRangeErr().WithMsg("%d: %s record ends at %d, file has %d bytes", loc.Record, loc.Branch, loc.End(), info.Size())
		logs.Error(e.Error(), zap.String(consts.LogFieldPath, path), zap.Int64(consts.LogFieldRecord, loc.Record))
		return nil, e
	}

	buf := make([]byte, loc.Kind.Stride())
	n, err := f.ReadAt(buf, loc.Offset)
	if err != nil && !(errors.Is(err, io.EOF) && n == len(buf)) {
		e := errs.NewReadFileErr().WithErr(err)
		logs.Error(e.Error(), zap.String(consts.LogFieldPath, path), zap.Int64(consts.LogFieldRecord, loc.Record))
		return nil, e
	}
	s.metrics.read(n)
	return schema.Decode(loc.Kind.recordSchema(), buf)
}

// LinesFromName returns the raw index lines naming the body.
func (s *Store) LinesFromName(name string) ([]string, error) {
	entries, err := s.search(name)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Line
	}
	return lines, nil
}

// RecordsFromName returns the record numbers of every index line naming
// the body, in index order.
func (s *Store) RecordsFromName(name string) ([]int64, error) {
	entries, err := s.search(name)
	if err != nil {
		return nil, err
	}
	records := make([]int64, len(entries))
	for i, e := range entries {
		records[i] = e.Record
	}
	return records, nil
}

// RecordFromName expects exactly one match.
func (s *Store) RecordFromName(name string) (int64, error) {
	records, err := s.RecordsFromName(name)
	if err != nil {
		return 0, err
	}
	switch len(records) {
	case 0:
		e := errs.NewNotFoundErr().WithMsg("no body named %q", name)
		logs.Warn(e.Error(), zap.String(consts.LogFieldParams, "name"), zap.String(consts.LogFieldValue, name))
		return 0, s.metrics.fail(e)
	case 1:
		return records[0], nil
	}
	e := errs.NewAmbiguousNameErr().WithMsg("%q matches records %v", name, records)
	logs.Warn(e.Error(), zap.String(consts.LogFieldParams, "name"), zap.Int64s(consts.LogFieldValue, records))
	return 0, s.metrics.fail(e)
}

func (s *Store) search(name string) ([]Entry, error) {
	s.metrics.lookup(opSearch)
	entries, err := SearchIndex(s.indexPath(), name)
	if err != nil {
		return nil, s.metrics.fail(err)
	}
	return entries, nil
}
