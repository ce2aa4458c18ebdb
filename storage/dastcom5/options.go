package dastcom5

import (
	"github.com/Trinoooo/dastcom/consts"
	"github.com/Trinoooo/dastcom/errs"
	"github.com/Trinoooo/dastcom/storage/dastcom5/logs"
	"go.uber.org/zap"
)

const defaultHeaderCacheSize = 2

var DefaultOptions = Options{
	headerCacheSize: defaultHeaderCacheSize,
	timeScale:       DefaultTimeScale,
}

// Options store options
type Options struct {
	headerCacheSize int            // number of parsed headers kept in memory, 0 disables
	metrics         *MetricsHelper // optional, counters are skipped when nil
	timeScale       string         // time scale attached to epochs of orbits
}

// NewOptions returns a copy of DefaultOptions.
func NewOptions() *Options {
	opts := DefaultOptions
	return &opts
}

func (opts *Options) SetHeaderCacheSize(size int) *Options {
	opts.headerCacheSize = size
	return opts
}

func (opts *Options) SetMetrics(m *MetricsHelper) *Options {
	opts.metrics = m
	return opts
}

func (opts *Options) SetTimeScale(scale string) *Options {
	opts.timeScale = scale
	return opts
}

func (opts *Options) check() error {
	if opts.headerCacheSize < 0 {
		e := errs.NewInvalidParamErr().WithMsg("negative header cache size")
		logs.Error(e.Error(), zap.String(consts.LogFieldParams, "headerCacheSize"), zap.Int(consts.LogFieldValue, opts.headerCacheSize))
		return e
	}

	if opts.timeScale == "" {
		e := errs.NewInvalidParamErr().WithMsg("empty time scale")
		logs.Error(e.Error(), zap.String(consts.LogFieldParams, "timeScale"), zap.String(consts.LogFieldValue, opts.timeScale))
		return e
	}

	return nil
}
