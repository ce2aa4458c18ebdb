package dastcom5

import (
	"math"
	"os"
	"testing"
	"time"

	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/errs"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFailed(t *testing.T) {
	_, err := Open(t.TempDir()+"/absent", nil)
	assert.Equal(t, int64(errs.NotFoundErrCode), errs.GetCode(err))

	_, err = Open(t.TempDir(), NewOptions().SetHeaderCacheSize(-1))
	assert.Equal(t, int64(errs.InvalidParamErrCode), errs.GetCode(err))

	_, err = Open(t.TempDir(), NewOptions().SetTimeScale(""))
	assert.Equal(t, int64(errs.InvalidParamErrCode), errs.GetCode(err))
}

func TestNewOptionsCopiesDefaults(t *testing.T) {
	NewOptions().SetHeaderCacheSize(100)
	assert.Equal(t, defaultHeaderCacheSize, NewOptions().headerCacheSize)
}

func TestReadRecord(t *testing.T) {
	fx := newFixture(t)
	for _, size := range []int{0, defaultHeaderCacheSize} {
		s := fx.open(t, NewOptions().SetHeaderCacheSize(size))
		for r, want := range fx.records {
			rec, err := s.ReadRecord(r)
			require.NoError(t, err, r)
			no, err := rec.Int("NO")
			require.NoError(t, err)
			assert.Equal(t, r, no)
			assert.Equal(t, want.Encode(), rec.Encode(), r)
		}
	}
}

func TestReadRecordFailed(t *testing.T) {
	fx := newFixture(t)
	s := fx.open(t, nil)

	// 900005 resolves into the comet file but past its end
	// 900003 + 1<<60 would wrap the comet offset back onto slot 1
	for _, r := range []int64{0, -1, fixtureEndPt1 + 1, 900005, 999999, 900003 + 1<<60, math.MaxInt64} {
		_, err := s.ReadRecord(r)
		assert.Equal(t, int64(errs.RecordOutOfRangeErrCode), errs.GetCode(err), r)
	}

	require.NoError(t, os.Remove(fx.path(consts.CometFileName)))
	_, err := s.ReadRecord(1)
	assert.Equal(t, int64(errs.NotFoundErrCode), errs.GetCode(err))
}

func TestHeaders(t *testing.T) {
	fx := newFixture(t)
	s := fx.open(t, nil)

	ast, com, err := s.Headers()
	require.NoError(t, err)
	assert.Equal(t, fx.ast, ast)
	assert.Equal(t, fx.com, com)
}

func TestHeaderCacheRevalidates(t *testing.T) {
	fx := newFixture(t)
	m := NewMetricsHelper()
	s := fx.open(t, NewOptions().SetMetrics(m))

	_, _, err := s.Headers()
	require.NoError(t, err)
	_, _, err = s.Headers()
	require.NoError(t, err)
	assert.Equal(t, float64(2), testutil.ToFloat64(m.HeaderCacheHits))

	// same size, new content and modification time
	h := *fx.com
	h.Bias = 900002
	b, err := h.Encode()
	require.NoError(t, err)
	f, err := os.OpenFile(fx.path(consts.CometFileName), os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.WriteAt(b, 0)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(fx.path(consts.CometFileName), later, later))

	_, com, err := s.Headers()
	require.NoError(t, err)
	assert.Equal(t, int64(900002), com.Bias)
	assert.Equal(t, float64(3), testutil.ToFloat64(m.HeaderCacheHits))
}

func TestHeaderCacheReturnsCopies(t *testing.T) {
	fx := newFixture(t)
	s := fx.open(t, nil)

	ast, _, err := s.Headers()
	require.NoError(t, err)
	ast.EndPt[0] = 0
	ast.Bias0 = 42

	ast, _, err = s.Headers()
	require.NoError(t, err)
	assert.Equal(t, fx.ast, ast)
	ast.Bias = 7

	again, _, err := s.Headers()
	require.NoError(t, err)
	assert.Equal(t, fx.ast, again)

	r, err := s.ReadRecord(900001)
	require.NoError(t, err)
	no, err := r.Int("NO")
	require.NoError(t, err)
	assert.Equal(t, int64(900001), no)
}

func TestRecordsFromName(t *testing.T) {
	fx := newFixture(t)
	s := fx.open(t, nil)

	records, err := s.RecordsFromName("Halley")
	require.NoError(t, err)
	assert.Equal(t, []int64{900003, 900004}, records)

	lines, err := s.LinesFromName("eros")
	require.NoError(t, err)
	assert.Equal(t, []string{"     3 Eros A898 PA 2000003"}, lines)

	records, err = s.RecordsFromName("Vesta")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRecordFromName(t *testing.T) {
	fx := newFixture(t)
	m := NewMetricsHelper()
	s := fx.open(t, NewOptions().SetMetrics(m))

	r, err := s.RecordFromName("Pallas")
	require.NoError(t, err)
	assert.Equal(t, int64(2), r)

	_, err = s.RecordFromName("Halley")
	assert.Equal(t, int64(errs.AmbiguousNameErrCode), errs.GetCode(err))

	_, err = s.RecordFromName("Vesta")
	assert.Equal(t, int64(errs.NotFoundErrCode), errs.GetCode(err))

	assert.Equal(t, float64(3), testutil.ToFloat64(m.LookupCounter.WithLabelValues(opSearch)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FailureCounter.WithLabelValues("200003")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.FailureCounter.WithLabelValues("100021")))
}

func TestMetricsCountReads(t *testing.T) {
	fx := newFixture(t)
	m := NewMetricsHelper()
	s := fx.open(t, NewOptions().SetMetrics(m).SetHeaderCacheSize(0))

	_, err := s.ReadRecord(900003)
	require.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LookupCounter.WithLabelValues(opRecord)))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.LookupCounter.WithLabelValues(opHeader)))
	want := 86 + 82 + 976
	assert.Equal(t, float64(want), testutil.ToFloat64(m.BytesReadCounter))
}
