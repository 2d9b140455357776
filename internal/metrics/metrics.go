// Package metrics exports Prometheus counters and histograms for file operations
// and advisory locks. A Metrics value is a fileops.Observer.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fsops/pkg/fileops"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Label constants for metrics.
const (
	LabelOp      = "op"
	LabelPolicy  = "policy"
	LabelOutcome = "outcome"
	LabelAction  = "action"
	LabelStatus  = "status"
)

// Outcome label values. Performed and skipped come from fileops.Outcome; errors are
// labelled with fileops.KindName.
const (
	OutcomeError = "error"
	StatusOK     = "ok"
)

// Metrics provides Prometheus metrics for move, copy and lock calls.
type Metrics struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	lockTotal         *prometheus.CounterVec
}

var _ fileops.Observer = (*Metrics)(nil)

// NewMetrics creates and registers the metrics.
// If registry is nil, metrics will be created but not registered (useful for testing).
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		operationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fsops",
				Name:      "operations_total",
				Help:      "Total number of move and copy requests by policy and outcome",
			},
			[]string{LabelOp, LabelPolicy, LabelOutcome},
		),

		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "fsops",
				Name:      "operation_duration_seconds",
				Help:      "Time spent resolving and performing a move or copy",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30},
			},
			[]string{LabelOp},
		),

		lockTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fsops",
				Name:      "lock_total",
				Help:      "Total number of lock and unlock calls",
			},
			[]string{LabelAction, LabelStatus},
		),
	}

	if registry != nil {
		registry.MustRegister(
			m.operationsTotal,
			m.operationDuration,
			m.lockTotal,
		)
	}

	return m
}

// ObserveOperation records one move or copy.
func (m *Metrics) ObserveOperation(op fileops.Operation, policy fileops.ConflictPolicy, result fileops.OperationResult, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.operationsTotal.WithLabelValues(op.String(), policy.String(), outcomeLabel(result, err)).Inc()
	m.operationDuration.WithLabelValues(op.String()).Observe(elapsed.Seconds())
}

// ObserveLock records one lock or unlock call.
func (m *Metrics) ObserveLock(action string, err error) {
	if m == nil {
		return
	}
	m.lockTotal.WithLabelValues(action, statusLabel(err)).Inc()
}

func outcomeLabel(result fileops.OperationResult, err error) string {
	if err != nil {
		return statusLabel(err)
	}
	return result.Outcome.String()
}

func statusLabel(err error) string {
	if err == nil {
		return StatusOK
	}
	return fileops.KindName(err)
}

// Handler serves the gathered metrics in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, gatherer prometheus.Gatherer) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
