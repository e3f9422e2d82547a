// SPDX-License-Identifier: MIT

package stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/epiroute/assort"
	"github.com/katalvlaran/epiroute/migration"
	"github.com/katalvlaran/epiroute/population"
)

const namespace = "epiroute"

// Selection outcomes.
const (
	OutcomeFound   = "found"
	OutcomeNoMatch = "no_match"
)

// WaitBuckets are the histogram buckets of migration waiting times, in days.
var WaitBuckets = []float64{1, 7, 14, 30, 90, 180, 365, 730, 1825}

// Recorder implements assort.Observer and migration.Observer.
type Recorder struct {
	selections *prometheus.CounterVec
	dropped    *prometheus.CounterVec
	decisions  *prometheus.CounterVec
	wait       prometheus.Histogram
}

var (
	_ assort.Observer    = (*Recorder)(nil)
	_ migration.Observer = (*Recorder)(nil)
)

// NewRecorder creates the collectors and registers them on reg. A nil reg
// leaves them unregistered. Registering twice on the same reg panics.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		selections: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partner_selections_total",
			Help:      "Partner selections over non-empty pools by relationship, group in effect and outcome.",
		}, []string{"relationship", "group", "outcome"}),
		dropped: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "partner_pool_dropped_total",
			Help:      "Candidates ignored because the score buffer was full.",
		}, []string{"relationship"}),
		decisions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "migration_decisions_total",
			Help:      "Migration decisions that move a traveler, by migration type.",
		}, []string{"type"}),
		wait: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "migration_wait_days",
			Help:      "Days until the decided trip starts.",
			Buckets:   WaitBuckets,
		}),
	}
}

// ObserveSelection counts one SelectPartner call over a non-empty pool,
// NO_GROUP pass-throughs included.
func (r *Recorder) ObserveSelection(rel population.RelationshipType, group assort.Group, found bool) {
	outcome := OutcomeNoMatch
	if found {
		outcome = OutcomeFound
	}
	r.selections.WithLabelValues(rel.String(), group.String(), outcome).Inc()
}

// ObservePoolOverflow adds dropped candidates of rel.
func (r *Recorder) ObservePoolOverflow(rel population.RelationshipType, dropped int) {
	if dropped <= 0 {
		return
	}
	r.dropped.WithLabelValues(rel.String()).Add(float64(dropped))
}

// ObserveMigration counts step and records its waiting time.
func (r *Recorder) ObserveMigration(step migration.Step) {
	r.decisions.WithLabelValues(step.Type.String()).Inc()
	r.wait.Observe(step.Time)
}
