// Package metrics exposes the business counters of the leave management.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"urlaubsverwaltung/internal/event"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

// Metrics counts published domain events and scheduler job runs.
type Metrics struct {
	events      *prometheus.CounterVec
	jobRuns     *prometheus.CounterVec
	jobItems    *prometheus.CounterVec
	jobDuration *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "domain_events_published_total",
				Help: "Domain events by type, e.g. application and sick note transitions.",
			},
			[]string{"type", "result"},
		),
		jobRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scheduler_job_runs_total",
				Help: "Runs of the background jobs.",
			},
			[]string{"job", "result"},
		),
		jobItems: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scheduler_job_items_total",
				Help: "Items handled by the background jobs, e.g. reminded applications.",
			},
			[]string{"job"},
		),
		jobDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scheduler_job_duration_seconds",
				Help:    "Duration of the background jobs.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"job"},
		),
	}

	for _, c := range []prometheus.Collector{m.events, m.jobRuns, m.jobItems, m.jobDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveJob records one run of a background job.
func (m *Metrics) ObserveJob(job string, items int, err error, d time.Duration) {
	result := resultOK
	if err != nil {
		result = resultError
	}
	m.jobRuns.WithLabelValues(job, result).Inc()
	m.jobItems.WithLabelValues(job).Add(float64(items))
	m.jobDuration.WithLabelValues(job).Observe(d.Seconds())
}

// Publisher wraps next and counts every event it publishes.
func (m *Metrics) Publisher(next event.Publisher) event.Publisher {
	return &countingPublisher{next: next, events: m.events}
}

type countingPublisher struct {
	next   event.Publisher
	events *prometheus.CounterVec
}

func (p *countingPublisher) Publish(ctx context.Context, e event.Event) error {
	err := p.next.Publish(ctx, e)
	result := resultOK
	if err != nil {
		result = resultError
	}
	p.events.WithLabelValues(string(e.Type), result).Inc()
	return err
}
