package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type (
	Collector        = prometheus.Collector
	Counter          = prometheus.Counter
	CounterOpts      = prometheus.CounterOpts
	CounterVec       = prometheus.CounterVec
	Gauge            = prometheus.Gauge
	GaugeOpts        = prometheus.GaugeOpts
	Histogram        = prometheus.Histogram
	HistogramOpts    = prometheus.HistogramOpts
	HistogramVec     = prometheus.HistogramVec
	Labels           = prometheus.Labels
	Registerer       = prometheus.Registerer
	Gatherer         = prometheus.Gatherer
	RegisterGatherer interface {
		Registerer
		Gatherer
	}
)

var (
	NewCounter      = prometheus.NewCounter
	NewCounterVec   = prometheus.NewCounterVec
	NewGauge        = prometheus.NewGauge
	NewHistogram    = prometheus.NewHistogram
	NewHistogramVec = prometheus.NewHistogramVec
	NewRegistry     = prometheus.NewRegistry

	Default RegisterGatherer = prometheus.NewRegistry()
)

func MustRegister(cs ...Collector) { Default.MustRegister(cs...) }
