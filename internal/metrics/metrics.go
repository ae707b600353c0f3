package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"walink/internal/models"
)

var linkStatsDesc = prometheus.NewDesc(
	"walink_link_outcomes_stored_total",
	"Stored link generation count by country and outcome",
	[]string{"country", "outcome"},
	nil,
)

// StatsStore is the persistent side of outcome counting.
type StatsStore interface {
	IncrementLinkStat(ctx context.Context, countryCode, outcome string) error
	GetAllLinkStats(ctx context.Context) ([]models.LinkStat, error)
}

// LinkStatsCollector is a custom Prometheus collector that reads stored
// outcome counts on each scrape.
type LinkStatsCollector struct {
	store StatsStore
}

// Describe sends the metric descriptor to the channel.
func (c *LinkStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- linkStatsDesc
}

// Collect queries the store and emits every row as a counter.
func (c *LinkStatsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := c.store.GetAllLinkStats(ctx)
	if err != nil {
		slog.Error("failed to collect link stats", "error", err)
		return
	}
	for _, s := range stats {
		ch <- prometheus.MustNewConstMetric(
			linkStatsDesc,
			prometheus.CounterValue,
			float64(s.Count),
			s.CountryCode,
			s.Outcome,
		)
	}
}

// queueSize is how many outcomes may wait for the store before new ones are
// dropped.
const queueSize = 256

type pendingOutcome struct {
	country string
	outcome string
}

// Recorder counts generation outcomes in-process and, when a store is
// configured, persists them from a single background worker. Close drains the
// worker. A nil *Recorder is a no-op.
type Recorder struct {
	store    StatsStore
	outcomes *prometheus.CounterVec
	dropped  prometheus.Counter
	upstream *prometheus.GaugeVec

	mu     sync.RWMutex
	closed bool
	queue  chan pendingOutcome
	done   chan struct{}
}

// New registers the metrics on reg (the default registerer when nil).
// store may be nil, in which case nothing is persisted and no worker runs.
func New(reg prometheus.Registerer, store StatsStore) *Recorder {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{
		store: store,
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "walink",
			Name:      "link_outcomes_total",
			Help:      "Link generation outcomes since start, by country",
		}, []string{"country", "outcome"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "walink",
			Name:      "link_outcomes_dropped_total",
			Help:      "Outcomes not persisted because the store fell behind",
		}),
		upstream: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "walink",
			Name:      "upstream_up",
			Help:      "Whether an external service answered the last probe (1) or not (0)",
		}, []string{"service"}),
	}
	reg.MustRegister(r.outcomes, r.dropped, r.upstream)
	if store != nil {
		reg.MustRegister(&LinkStatsCollector{store: store})
		r.queue = make(chan pendingOutcome, queueSize)
		r.done = make(chan struct{})
		go r.persist()
	}
	return r
}

// RecordOutcome counts one outcome for a country. It never blocks: when the
// store is behind by queueSize outcomes the persisted count skips this one.
func (r *Recorder) RecordOutcome(countryCode, outcome string) {
	if r == nil {
		return
	}
	r.outcomes.WithLabelValues(countryCode, outcome).Inc()

	if r.queue == nil {
		return
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return
	}
	select {
	case r.queue <- pendingOutcome{country: countryCode, outcome: outcome}:
	default:
		r.dropped.Inc()
		slog.Warn("outcome queue full, not persisting", "country", countryCode, "outcome", outcome)
	}
}

// Close stops accepting outcomes for the store and waits until the queued
// ones are written. It is safe to call more than once.
func (r *Recorder) Close() {
	if r == nil || r.queue == nil {
		return
	}
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.mu.Unlock()
	<-r.done
}

func (r *Recorder) persist() {
	defer close(r.done)
	for o := range r.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := r.store.IncrementLinkStat(ctx, o.country, o.outcome)
		cancel()
		if err != nil {
			slog.Error("failed to record link outcome", "country", o.country, "outcome", o.outcome, "error", err)
		}
	}
}

// SetUpstream records the last probe result for an external service.
func (r *Recorder) SetUpstream(service string, up bool) {
	if r == nil {
		return
	}
	v := 0.0
	if up {
		v = 1
	}
	r.upstream.WithLabelValues(service).Set(v)
}
