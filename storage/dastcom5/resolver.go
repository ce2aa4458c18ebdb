package dastcom5

import (
	"math"

	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/errs"
	"github.com/Trinoooo/dastcom/storage/dastcom5/logs"
	"go.uber.org/zap"
)

// Branch tells which resolver rule matched a record number.
type Branch int

const (
	BranchNumbered Branch = iota + 1
	BranchUnnumbered
	BranchComet
)

func (b Branch) String() string {
	switch b {
	case BranchNumbered:
		return "numbered asteroid"
	case BranchUnnumbered:
		return "unnumbered asteroid"
	case BranchComet:
		return "comet"
	}
	return "unknown"
}

// Location is where a record number lives.
type Location struct {
	Record int64
	Branch Branch
	Kind   BodyKind
	Bias   int64
	Offset int64
}

// End is the offset just past the record.
func (l Location) End() int64 {
	return l.Offset + l.Kind.Stride()
}

type rule struct {
	upper  int64
	bias   int64
	branch Branch
	kind   BodyKind
}

// Resolver maps record numbers to file offsets with the rules encoded in
// the two file headers. The first rule whose upper bound is not below the
// record number wins.
type Resolver struct {
	rules []rule
}

func NewResolver(ast, com *Header) (*Resolver, error) {
	if ast == nil || com == nil || ast.Kind != Asteroid || com.Kind != Comet {
		e := errs.NewInvalidParamErr().WithMsg("resolver needs an asteroid and a comet header")
		logs.Error(e.Error(), zap.String(consts.LogFieldParams, "ast, com"), zap.Any(consts.LogFieldValue, []*Header{ast, com}))
		return nil, e
	}
	return &Resolver{rules: []rule{
		{upper: ast.EndPt[0], bias: ast.Bias0, branch: BranchNumbered, kind: Asteroid},
		{upper: ast.EndPt[1], bias: ast.Bias, branch: BranchUnnumbered, kind: Asteroid},
		{upper: math.MaxInt64, bias: com.Bias, branch: BranchComet, kind: Comet},
	}}, nil
}

// Resolve computes the location of record r. It does not look at the files;
// the caller still checks Location.End against the file size.
func (rs *Resolver) Resolve(r int64) (Location, error) {
	if r < 1 {
		return Location{}, outOfRange(r, "record numbers start at 1")
	}
	for _, ru := range rs.rules {
		if r > ru.upper {
			continue
		}
		stride := ru.kind.Stride()
		slot, ok := slotOf(r, ru.bias)
		if !ok || slot >= math.MaxInt64/stride {
			return Location{}, outOfRange(r, "%s offset overflows with bias %d", ru.branch, ru.bias)
		}
		// slot 0 holds the header
		if slot < 1 {
			return Location{}, outOfRange(r, "%s slot %d falls in or before the header slot", ru.branch, slot)
		}
		return Location{
			Record: r,
			Branch: ru.branch,
			Kind:   ru.kind,
			Bias:   ru.bias,
			Offset: stride * slot,
		}, nil
	}
	return Location{}, outOfRange(r, "no rule matches")
}

// slotOf returns r - bias - 1, reporting false when it does not fit in an
// int64. r is at least 1.
func slotOf(r, bias int64) (int64, bool) {
	if bias < 0 && r-1 > math.MaxInt64+bias {
		return 0, false
	}
	if bias > 0 && r-1 < math.MinInt64+bias {
		return 0, false
	}
	return r - 1 - bias, true
}

func outOfRange(r int64, format string, args ...any) error {
	e := errs.NewRecordOutOfRangeErr().WithMsg("%d", r).WithMsg(format, args...)
	logs.Error(e.Error(), zap.String(consts.LogFieldParams, consts.LogFieldRecord), zap.Int64(consts.LogFieldValue, r))
	return e
}
