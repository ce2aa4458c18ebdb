package dastcom5

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/errs"
	"github.com/Trinoooo/dastcom/storage/dastcom5/logs"
	"github.com/Trinoooo/dastcom/storage/dastcom5/schema"
	"go.uber.org/zap"
)

// Header is the decoded first slot of a DASTCOM5 binary file.
//
// For the asteroid file Bias is IBIAS1 (unnumbered asteroids) and Bias0 is
// IBIAS0 (numbered asteroids). For the comet file Bias is IBIAS2 and Bias0
// is unused.
type Header struct {
	Kind      BodyKind
	Bias      int64
	Bias0     int64
	BeginP    [3]int64
	EndPt     [3]int64
	CalDate   string
	JDDate    float64
	FileType  string
	ByteOrder int16
}

var (
	beginFields = [3]string{"BEGINP1", "BEGINP2", "BEGINP3"}
	endFields   = [3]string{"ENDPT1", "ENDPT2", "ENDPT3"}
)

// ReadHeader reads the header of the file at path. The file is opened and
// closed within the call.
func ReadHeader(path string, kind BodyKind) (*Header, error) {
	f, err := openDataFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hs := kind.headerSchema()
	buf := make([]byte, hs.Size())
	if n, err := io.ReadFull(f, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			e := errs.NewTruncatedRecordErr().WithMsg("%s header needs %d bytes, file has %d", kind, hs.Size(), n)
			logs.Error(e.Error(), zap.String(consts.LogFieldPath, path), zap.Int(consts.LogFieldValue, n))
			return nil, e
		}
		e := errs.NewReadFileErr().WithErr(err)
		logs.Error(e.Error(), zap.String(consts.LogFieldPath, path))
		return nil, e
	}

	rec, err := schema.Decode(hs, buf)
	if err != nil {
		return nil, err
	}
	h, err := headerFromRecord(kind, rec)
	if err != nil {
		logs.Error(err.Error(), zap.String(consts.LogFieldPath, path))
		return nil, err
	}
	return h, nil
}

func headerFromRecord(kind BodyKind, rec *schema.Record) (*Header, error) {
	h := &Header{Kind: kind}
	var err error
	if kind == Comet {
		h.Bias, err = rec.Int("IBIAS2")
	} else {
		h.Bias, err = rec.Int("IBIAS1")
		if err == nil {
			h.Bias0, err = rec.Int("IBIAS0")
		}
	}
	if err != nil {
		return nil, err
	}

	for i := range beginFields {
		if h.BeginP[i], err = boundary(rec, beginFields[i]); err != nil {
			return nil, err
		}
		if h.EndPt[i], err = boundary(rec, endFields[i]); err != nil {
			return nil, err
		}
	}
	if kind == Asteroid && h.EndPt[0] > h.EndPt[1] {
		return nil, errs.NewCorruptHeaderErr().WithMsg("ENDPT1 %d > ENDPT2 %d", h.EndPt[0], h.EndPt[1])
	}

	if h.CalDate, err = rec.Text("CALDATE"); err != nil {
		return nil, err
	}
	if h.JDDate, err = rec.Float("JDDATE"); err != nil {
		return nil, err
	}
	if h.FileType, err = rec.Text("FTYP"); err != nil {
		return nil, err
	}
	byteOrderField := "BYTE2A"
	if kind == Comet {
		byteOrderField = "BYTE2C"
	}
	bo, err := rec.Int(byteOrderField)
	if err != nil {
		return nil, err
	}
	h.ByteOrder = int16(bo)
	return h, nil
}

// boundary parses an 8 byte ASCII record number; blank means 0.
func boundary(rec *schema.Record, name string) (int64, error) {
	s, err := rec.Text(name)
	if err != nil {
		return 0, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.NewCorruptHeaderErr().WithMsg("%s=%q", name, s).WithErr(err)
	}
	return n, nil
}

// Encode lays the header out as the first slot of its file.
func (h *Header) Encode() ([]byte, error) {
	rec := schema.NewRecord(h.Kind.headerSchema())
	values := map[string]any{
		"CALDATE": h.CalDate,
		"JDDATE":  h.JDDate,
		"FTYP":    h.FileType,
	}
	if h.Kind == Comet {
		values["IBIAS2"] = h.Bias
		values["BYTE2C"] = h.ByteOrder
	} else {
		values["IBIAS1"] = h.Bias
		values["IBIAS0"] = h.Bias0
		values["BYTE2A"] = h.ByteOrder
	}
	for i := range beginFields {
		values[beginFields[i]] = fmt.Sprintf("%8d", h.BeginP[i])
		values[endFields[i]] = fmt.Sprintf("%8d", h.EndPt[i])
	}
	for name, v := range values {
		if err := rec.Set(name, v); err != nil {
			return nil, err
		}
	}
	return rec.Encode(), nil
}

func openDataFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, nil
	}
	var e *errs.SbErr
	switch {
	case errors.Is(err, os.ErrNotExist):
		e = errs.NewNotFoundErr().WithMsg("%s, fetch the DASTCOM5 archive first", path)
	case errors.Is(err, os.ErrPermission):
		e = errs.NewFileNoPermissionErr().WithErr(err)
	default:
		e = errs.NewOpenFileErr().WithErr(err)
	}
	logs.Error(e.Error(), zap.String(consts.LogFieldPath, path))
	return nil, e
}
