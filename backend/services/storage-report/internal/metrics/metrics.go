package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "storage_report"

// Run is what one report run produced.
type Run struct {
	Rows             int
	Customers        int
	CustomersSkipped int
	Unresolved       int
	Duration         time.Duration
}

// Recorder holds the batch-job metrics of a single run in its own registry.
type Recorder struct {
	registry    *prometheus.Registry
	rows        prometheus.Gauge
	customers   prometheus.Gauge
	skipped     prometheus.Gauge
	unresolved  prometheus.Gauge
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
	rpcRequests *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec
}

// NewRecorder registers the report metrics.
func NewRecorder() *Recorder {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help})
	}

	r := &Recorder{
		registry:    prometheus.NewRegistry(),
		rows:        gauge("rows", "Rows written to the last report."),
		customers:   gauge("customers", "Customers enumerated by the last run."),
		skipped:     gauge("customers_skipped", "Customers skipped because they had no accounts."),
		unresolved:  gauge("accounts_unresolved", "Accounts whose storage could not be resolved."),
		duration:    gauge("duration_seconds", "Wall time of the last run."),
		lastSuccess: gauge("last_success_timestamp_seconds", "Unix time of the last successful run."),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "JSON-RPC HTTP requests by status code.",
		}, []string{"code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_request_duration_seconds",
			Help:      "JSON-RPC HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"code"}),
	}

	r.registry.MustRegister(r.rows, r.customers, r.skipped, r.unresolved, r.duration, r.lastSuccess, r.rpcRequests, r.rpcDuration)
	return r
}

// InstrumentRoundTripper counts and times requests passing through next.
func (r *Recorder) InstrumentRoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(r.rpcRequests,
		promhttp.InstrumentRoundTripperDuration(r.rpcDuration, next))
}

// ObserveRun records the outcome of a successful run.
func (r *Recorder) ObserveRun(run Run) {
	r.rows.Set(float64(run.Rows))
	r.customers.Set(float64(run.Customers))
	r.skipped.Set(float64(run.CustomersSkipped))
	r.unresolved.Set(float64(run.Unresolved))
	r.duration.Set(run.Duration.Seconds())
	r.lastSuccess.SetToCurrentTime()
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Push sends the registry to a Pushgateway under job, grouped by partner.
func (r *Recorder) Push(ctx context.Context, url, job, partner string) error {
	pusher := push.New(url, job).Gatherer(r.registry)
	if partner != "" {
		pusher = pusher.Grouping("partner", partner)
	}
	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("metrics: push to %s: %w", url, err)
	}
	return nil
}
