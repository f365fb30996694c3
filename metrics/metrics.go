// Package metrics exposes training and evaluation counters through Prometheus.
//
// All methods are safe to call on a nil *Metrics, in which case nothing is recorded.
// This lets the learner and evaluator run without a registry in tests and library use.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zeu5/bankers-rl/core"
)

const namespace = "bankers"

type Metrics struct {
	episodes          *prometheus.CounterVec
	episodeSteps      prometheus.Histogram
	trainings         *prometheus.CounterVec
	trainingEpisodes  prometheus.Histogram
	trainingDuration  prometheus.Histogram
	evaluations       *prometheus.CounterVec
	policySources     *prometheus.CounterVec
	comparisonElapsed *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		episodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "training_episodes_total",
			Help:      "Training episodes by outcome.",
		}, []string{"outcome"}),
		episodeSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "training_episode_steps",
			Help:      "Steps taken per training episode.",
			Buckets:   prometheus.LinearBuckets(1, 2, 10),
		}),
		trainings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trainings_total",
			Help:      "Completed training runs by whether early stopping fired.",
		}, []string{"converged"}),
		trainingEpisodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "training_run_episodes",
			Help:      "Episodes used per training run.",
			Buckets:   prometheus.ExponentialBuckets(5, 2, 10),
		}),
		trainingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "training_duration_seconds",
			Help:      "Wall time per training run.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Evaluation runs by policy and status.",
		}, []string{"policy", "status"}),
		policySources: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offline_policy_source_total",
			Help:      "How the offline policy was obtained.",
		}, []string{"source"}),
		comparisonElapsed: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "comparison_elapsed_seconds",
			Help:      "Wall time of each side of an arena comparison.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 12),
		}, []string{"policy"}),
	}
	reg.MustRegister(
		m.episodes,
		m.episodeSteps,
		m.trainings,
		m.trainingEpisodes,
		m.trainingDuration,
		m.evaluations,
		m.policySources,
		m.comparisonElapsed,
	)
	return m
}

func (m *Metrics) ObserveEpisode(success bool, steps int) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.episodes.WithLabelValues(outcome).Inc()
	m.episodeSteps.Observe(float64(steps))
}

func (m *Metrics) ObserveTraining(episodes int, converged bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	label := "false"
	if converged {
		label = "true"
	}
	m.trainings.WithLabelValues(label).Inc()
	m.trainingEpisodes.Observe(float64(episodes))
	m.trainingDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveEvaluation(policy string, status core.Status) {
	if m == nil {
		return
	}
	if policy == "" {
		policy = "unnamed"
	}
	m.evaluations.WithLabelValues(policy, status.String()).Inc()
}

// ObservePolicySource records whether the offline table was loaded or trained.
func (m *Metrics) ObservePolicySource(source string) {
	if m == nil {
		return
	}
	m.policySources.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveComparison(policy string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.comparisonElapsed.WithLabelValues(policy).Observe(elapsed.Seconds())
}
