package metrics

import (
	"fmt"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	reg             *prom.Registry
	extractDuration *prom.HistogramVec
	filesIndexed    prom.Counter
	statesIndexed   prom.Counter
	runDuration     prom.Gauge
	runOutcome      *prom.CounterVec
	revisionPresent prom.Gauge
	lastRun         prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.once.Do(func() {
		pr.extractDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "iconcache",
			Name:      "extract_duration_seconds",
			Help:      "Duration of individual DMI metadata extractions",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"result"})
		pr.filesIndexed = prom.NewCounter(prom.CounterOpts{
			Namespace: "iconcache",
			Name:      "files_indexed_total",
			Help:      "DMI files written to the cache",
		})
		pr.statesIndexed = prom.NewCounter(prom.CounterOpts{
			Namespace: "iconcache",
			Name:      "states_indexed_total",
			Help:      "Unique icon states written to the cache",
		})
		pr.runDuration = prom.NewGauge(prom.GaugeOpts{
			Namespace: "iconcache",
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run",
		})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "iconcache",
			Name:      "run_outcomes_total",
			Help:      "Run outcomes by final status",
		}, []string{"outcome"})
		pr.revisionPresent = prom.NewGauge(prom.GaugeOpts{
			Namespace: "iconcache",
			Name:      "revision_present",
			Help:      "1 when the cache carries a VCS revision",
		})
		pr.lastRun = prom.NewGauge(prom.GaugeOpts{
			Namespace: "iconcache",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		})
		reg.MustRegister(pr.extractDuration, pr.filesIndexed, pr.statesIndexed, pr.runDuration, pr.runOutcome, pr.revisionPresent, pr.lastRun)
	})
	return pr
}

// Registry returns the registry the metrics are registered with.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.reg }

func (p *PrometheusRecorder) ObserveExtractDuration(d time.Duration, result ResultLabel) {
	if p == nil || p.extractDuration == nil {
		return
	}
	p.extractDuration.WithLabelValues(string(result)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddIndexed(files, states int) {
	if p == nil || p.filesIndexed == nil {
		return
	}
	p.filesIndexed.Add(float64(files))
	p.statesIndexed.Add(float64(states))
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Set(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome OutcomeLabel) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
	p.lastRun.SetToCurrentTime()
}

func (p *PrometheusRecorder) SetRevisionPresent(present bool) {
	if p == nil || p.revisionPresent == nil {
		return
	}
	v := 0.0
	if present {
		v = 1
	}
	p.revisionPresent.Set(v)
}

// WriteTextfile writes the registry in the text exposition format, replacing
// path atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
