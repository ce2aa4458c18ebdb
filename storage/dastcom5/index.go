package dastcom5

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/errs"
	"github.com/Trinoooo/dastcom/storage/dastcom5/logs"
	"go.uber.org/zap"
)

// recordNoWidth is the width of the right justified record number column.
const recordNoWidth = 6

// index lines carry every known designation of a body and can be long.
const maxIndexLine = 1 * consts.MB

// Entry is one line of dastcom.idx matching a search.
type Entry struct {
	Record int64
	Line   string
}

// SearchIndex scans the index file at path and returns every line containing
// name as a whole word, ignoring case, in file order.
func SearchIndex(path, name string) ([]Entry, error) {
	if strings.TrimSpace(name) == "" {
		e := errs.NewInvalidParamErr().WithMsg("empty search name")
		logs.Error(e.Error(), zap.String(consts.LogFieldParams, "name"), zap.String(consts.LogFieldValue, name))
		return nil, e
	}
	pattern, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
	if err != nil {
		e := errs.NewInvalidParamErr().WithErr(err)
		logs.Error(e.Error(), zap.String(consts.LogFieldParams, "name"), zap.String(consts.LogFieldValue, name))
		return nil, e
	}

	f, err := openDataFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*consts.KB), maxIndexLine)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if !pattern.MatchString(line) {
			continue
		}
		record, err := parseRecordNo(line)
		if err != nil {
			logs.Error(err.Error(),
				zap.String(consts.LogFieldPath, path),
				zap.Int(consts.LogFieldParams, lineNo),
				zap.String(consts.LogFieldValue, line),
			)
			return nil, err
		}
		entries = append(entries, Entry{Record: record, Line: line})
	}
	if err := scanner.Err(); err != nil {
		e := errs.NewReadFileErr().WithErr(err)
		logs.Error(e.Error(), zap.String(consts.LogFieldPath, path))
		return nil, e
	}
	return entries, nil
}

func parseRecordNo(line string) (int64, error) {
	if len(line) < recordNoWidth {
		return 0, errs.NewCorruptIndexErr().WithMsg("line shorter than the record column: %q", line)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(line[:recordNoWidth]), 10, 64)
	if err != nil {
		return 0, errs.NewCorruptIndexErr().WithMsg("record column %q", line[:recordNoWidth]).WithErr(err)
	}
	return n, nil
}
