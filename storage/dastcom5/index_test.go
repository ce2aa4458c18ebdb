package dastcom5

import (
	"testing"

	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchIndex(t *testing.T) {
	fx := newFixture(t)
	path := fx.path(consts.IndexFileName)

	testCases := []struct {
		name    string
		records []int64
	}{
		{"Eros", []int64{3}},
		{"eros", []int64{3}},
		{"EROSION", []int64{900002}},
		{"Aeros", []int64{900001}},
		{"halley", []int64{900003, 900004}},
		{"1P", []int64{900003, 900004}},
		{"1P/Halley", []int64{900003, 900004}},
		{"A801 AA", []int64{1}},
		{"Vesta", nil},
		{"Er", nil},
	}
	for _, tc := range testCases {
		entries, err := SearchIndex(path, tc.name)
		require.NoError(t, err, tc.name)
		var got []int64
		for _, e := range entries {
			got = append(got, e.Record)
		}
		assert.Equal(t, tc.records, got, tc.name)
	}
}

func TestSearchIndexIdempotent(t *testing.T) {
	fx := newFixture(t)
	path := fx.path(consts.IndexFileName)

	first, err := SearchIndex(path, "halley")
	require.NoError(t, err)
	second, err := SearchIndex(path, "halley")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	require.Len(t, first, 2)
	assert.Equal(t, "900003 1P/Halley 1P 2900003", first[0].Line)
}

func TestSearchIndexMetaCharacters(t *testing.T) {
	fx := newFixture(t)
	fx.writeFile(t, consts.IndexFileName, []byte("     7 (7) Iris\n     8 Flora\n"))

	entries, err := SearchIndex(fx.path(consts.IndexFileName), "(7)")
	require.NoError(t, err)
	// \b needs a word character next to it, so a name starting with a
	// parenthesis only matches after one.
	assert.Empty(t, entries)

	entries, err = SearchIndex(fx.path(consts.IndexFileName), "7")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(7), entries[0].Record)

	_, err = SearchIndex(fx.path(consts.IndexFileName), ".*")
	require.NoError(t, err)
}

func TestSearchIndexFailed(t *testing.T) {
	fx := newFixture(t)
	path := fx.path(consts.IndexFileName)

	_, err := SearchIndex(path, "")
	assert.Equal(t, int64(errs.InvalidParamErrCode), errs.GetCode(err))
	_, err = SearchIndex(path, "   ")
	assert.Equal(t, int64(errs.InvalidParamErrCode), errs.GetCode(err))

	_, err = SearchIndex(fx.path("missing.idx"), "Eros")
	assert.Equal(t, int64(errs.NotFoundErrCode), errs.GetCode(err))

	fx.writeFile(t, consts.IndexFileName, []byte("     1 Ceres\n  abc Eros\n"))
	entries, err := SearchIndex(path, "Ceres")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	_, err = SearchIndex(path, "Eros")
	assert.Equal(t, int64(errs.CorruptIndexErrCode), errs.GetCode(err))

	fx.writeFile(t, consts.IndexFileName, []byte("Eros\n"))
	_, err = SearchIndex(path, "Eros")
	assert.Equal(t, int64(errs.CorruptIndexErrCode), errs.GetCode(err))
}
