package policies

import (
	"log/slog"

	"github.com/zeu5/bankers-rl/core"
	"github.com/zeu5/bankers-rl/metrics"
	"github.com/zeu5/bankers-rl/util"
)

type options struct {
	logger   *slog.Logger
	metrics  *metrics.Metrics
	progress func(EpisodeResult)
	stopping StoppingRule
	policy   core.Policy
	name     string
}

// Option configures a Learner or an Evaluator. Options that do not apply to the
// component are ignored.
type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithProgress is called by the Learner after every episode.
func WithProgress(f func(EpisodeResult)) Option {
	return func(o *options) {
		o.progress = f
	}
}

// WithStoppingRule replaces the success streak rule built from the config.
func WithStoppingRule(rule StoppingRule) Option {
	return func(o *options) {
		o.stopping = rule
	}
}

// WithPolicy replaces the exploration policy built from the config.
func WithPolicy(p core.Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithName labels the metrics and log lines of an Evaluator.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = util.DiscardLogger()
	}
	return o
}
