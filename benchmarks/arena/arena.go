package arena

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	erand "golang.org/x/exp/rand"

	"github.com/zeu5/bankers-rl/core"
	"github.com/zeu5/bankers-rl/metrics"
	"github.com/zeu5/bankers-rl/policies"
	"github.com/zeu5/bankers-rl/store"
	"github.com/zeu5/bankers-rl/util"
)

const (
	SourceStore   = "store"
	SourceTrained = "trained"
)

// Arena compares a stored offline policy with one trained on the spot.
type Arena struct {
	config  Config
	store   store.PolicyStore
	offline *policies.QTable
	source  string

	mu    sync.Mutex
	seeds *erand.Rand

	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Arena)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Arena) {
		a.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Arena) {
		a.metrics = m
	}
}

// New loads the offline table from st. When the store has none, cannot be read or
// holds a table of the wrong width, a default table is trained on random instances and
// saved back. A failed save is logged and otherwise ignored.
func New(ctx context.Context, config Config, st store.PolicyStore, opts ...Option) (*Arena, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	a := &Arena{
		config: config,
		store:  st,
		seeds:  erand.New(util.NewSource(config.Seed)),
		logger: util.DiscardLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}

	table, err := st.Load(ctx)
	switch {
	case err == nil && table.Actions() == config.Processes:
		a.offline = table
		a.source = SourceStore
		a.logger.Info("loaded offline policy", "states", table.Size())
	case err == nil:
		a.logger.Warn("stored policy has the wrong width, retraining",
			"stored", table.Actions(), "processes", config.Processes)
	case errors.Is(err, store.ErrNotFound):
		a.logger.Info("no stored policy, training offline policy")
	default:
		a.logger.Warn("could not load stored policy, retraining", "error", err)
	}

	if a.offline == nil {
		table, err := a.trainOffline(ctx)
		if err != nil {
			return nil, err
		}
		a.offline = table
		a.source = SourceTrained
		if err := st.Save(ctx, table); err != nil {
			a.logger.Warn("could not save offline policy", "error", err)
		} else {
			a.logger.Info("saved offline policy", "states", table.Size())
		}
	}
	a.metrics.ObservePolicySource(a.source)
	return a, nil
}

// Source tells whether the offline table came from the store or was trained.
func (a *Arena) Source() string {
	return a.source
}

func (a *Arena) Offline() *policies.QTable {
	return a.offline
}

func (a *Arena) Config() Config {
	return a.config
}

func (a *Arena) trainOffline(ctx context.Context) (*policies.QTable, error) {
	seed := a.nextSeed()
	problems := erand.New(erand.NewSource(seed))
	learner, err := policies.NewLearner(
		a.config.offlineLearnerConfig(),
		erand.NewSource(seed+1),
		policies.WithLogger(a.logger),
	)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	table := policies.NewQTable(a.config.Processes)
	successes := 0
	for i := 0; i < a.config.Offline.Instances; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("offline training interrupted: %w", err)
		}
		p := core.RandomProblem(problems, a.config.Processes, a.config.Resources)
		result := learner.RunEpisode(core.NewEnvironment(p), table, 1)
		if policies.TerminalSuccess(result) {
			successes++
		}
	}
	a.logger.Info("offline policy trained",
		"instances", a.config.Offline.Instances,
		"successes", successes,
		"states", table.Size(),
		"elapsed", time.Since(start),
	)
	return table, nil
}

func (a *Arena) nextSeed() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	seed := a.seeds.Uint64()
	if seed == 0 {
		seed = 1
	}
	return seed
}

// Compare runs both policies on p with a seed drawn from the arena's own source.
func (a *Arena) Compare(ctx context.Context, p *core.Problem, opts ...policies.Option) (*Comparison, error) {
	return a.CompareWithSeed(ctx, p, a.nextSeed(), opts...)
}

// CompareWithSeed evaluates the offline table and a freshly trained online table on p.
// Options are passed to the online learner. Safe for concurrent use.
func (a *Arena) CompareWithSeed(ctx context.Context, p *core.Problem, seed uint64, opts ...policies.Option) (*Comparison, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.NumProcesses() != a.config.Processes {
		return nil, fmt.Errorf("%w: arena expects %d processes, got %d", core.ErrDimensionMismatch, a.config.Processes, p.NumProcesses())
	}
	cmp := &Comparison{
		ID:          uuid.New(),
		Seed:        seed,
		ProblemHash: util.JsonHash(p),
		Problem:     p.Copy(),
	}

	start := time.Now()
	offline := policies.NewEvaluator(
		erand.NewSource(seed),
		policies.WithName(OfflinePolicy),
		policies.WithLogger(a.logger),
		policies.WithMetrics(a.metrics),
	)
	eval := offline.Evaluate(core.NewEnvironment(p), a.offline, a.config.MaxSteps)
	cmp.Offline = newResult(OfflinePolicy, eval, time.Since(start))
	a.metrics.ObserveComparison(OfflinePolicy, cmp.Offline.Elapsed)

	start = time.Now()
	learnerOpts := append([]policies.Option{
		policies.WithLogger(a.logger),
		policies.WithMetrics(a.metrics),
	}, opts...)
	learner, err := policies.NewLearner(a.config.Learner, erand.NewSource(seed+1), learnerOpts...)
	if err != nil {
		return nil, err
	}
	training, err := learner.Train(ctx, core.NewEnvironment(p))
	if err != nil {
		return nil, err
	}
	online := policies.NewEvaluator(
		erand.NewSource(seed+2),
		policies.WithName(OnlinePolicy),
		policies.WithLogger(a.logger),
		policies.WithMetrics(a.metrics),
	)
	eval = online.Evaluate(core.NewEnvironment(p), training.Table, a.config.MaxSteps)
	cmp.Online = newResult(OnlinePolicy, eval, time.Since(start))
	cmp.Online.Episodes = training.Episodes
	cmp.Online.Converged = training.Converged
	a.metrics.ObserveComparison(OnlinePolicy, cmp.Online.Elapsed)

	a.logger.Info("comparison finished",
		"id", cmp.ID,
		"seed", seed,
		"offline", cmp.Offline.Status,
		"online", cmp.Online.Status,
		"episodes", training.Episodes,
	)
	return cmp, nil
}
