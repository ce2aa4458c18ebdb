package dastcom5

import (
	"github.com/Trinoooo/dastcom/errs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"
	"strconv"
)

const metricsJob = "dastcom"

// lookup operations counted by LookupCounter
const (
	opHeader = "header"
	opRecord = "record"
	opSearch = "search"
	opScan   = "scan"
)

type MetricsHelper struct {
	LookupCounter    *prometheus.CounterVec // lookups per operation
	BytesReadCounter prometheus.Counter     // record and header bytes read from disk
	FailureCounter   *prometheus.CounterVec // failed operations per error code
	HeaderCacheHits  prometheus.Counter

	registry *prometheus.Registry
}

func NewMetricsHelper() *MetricsHelper {
	m := &MetricsHelper{
		LookupCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dastcom_lookup_counter",
		}, []string{"op"}),
		BytesReadCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dastcom_bytes_read_counter",
		}),
		FailureCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dastcom_failure_counter",
		}, []string{"code"}),
		HeaderCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dastcom_header_cache_hit_counter",
		}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(
		m.LookupCounter,
		m.BytesReadCounter,
		m.FailureCounter,
		m.HeaderCacheHits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *MetricsHelper) Registry() *prometheus.Registry {
	return m.registry
}

// Push sends the current values to a Pushgateway once.
func (m *MetricsHelper) Push(url string) error {
	if err := push.New(url, metricsJob).Gatherer(m.registry).Add(); err != nil {
		return errs.NewUnknownErr().WithMsg("push metrics to %s", url).WithErr(err)
	}
	return nil
}

// The helpers below accept a nil receiver so a store without metrics needs no checks.

func (m *MetricsHelper) lookup(op string) {
	if m == nil {
		return
	}
	m.LookupCounter.WithLabelValues(op).Inc()
}

func (m *MetricsHelper) read(n int) {
	if m == nil {
		return
	}
	m.BytesReadCounter.Add(float64(n))
}

func (m *MetricsHelper) cacheHit() {
	if m == nil {
		return
	}
	m.HeaderCacheHits.Inc()
}

// fail counts err and hands it back.
func (m *MetricsHelper) fail(err error) error {
	if m == nil || err == nil {
		return err
	}
	m.FailureCounter.WithLabelValues(strconv.FormatInt(errs.GetCode(err), 10)).Inc()
	return err
}
