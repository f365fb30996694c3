package analysis

import (
	"path"

	"gonum.org/v1/gonum/stat"

	"github.com/zeu5/bankers-rl/core"
	"github.com/zeu5/bankers-rl/util"
)

// OutcomeSummary aggregates the runs of one experiment.
type OutcomeSummary struct {
	Runs          int            `json:"runs"`
	Successes     int            `json:"successes"`
	SuccessRate   float64        `json:"success_rate"`
	Statuses      map[string]int `json:"statuses"`
	MeanEpisodes  float64        `json:"mean_episodes"`
	StdEpisodes   float64        `json:"std_episodes"`
	MeanElapsedMs float64        `json:"mean_elapsed_ms"`
	StdElapsedMs  float64        `json:"std_elapsed_ms"`
	MeanSteps     float64        `json:"mean_steps"`
}

type outcomeDataset struct {
	Seeds     []uint64  `json:"seeds"`
	Success   []bool    `json:"success"`
	Statuses  []string  `json:"statuses"`
	Episodes  []float64 `json:"episodes"`
	ElapsedMs []float64 `json:"elapsed_ms"`
	Steps     []float64 `json:"steps"`

	Summary OutcomeSummary `json:"summary"`
}

func (o *outcomeDataset) summarize() OutcomeSummary {
	s := OutcomeSummary{
		Runs:     len(o.Success),
		Statuses: make(map[string]int),
	}
	for i, ok := range o.Success {
		if ok {
			s.Successes++
		}
		s.Statuses[o.Statuses[i]]++
	}
	if s.Runs == 0 {
		return s
	}
	s.SuccessRate = float64(s.Successes) / float64(s.Runs)
	s.MeanEpisodes, s.StdEpisodes = meanStdDev(o.Episodes)
	s.MeanElapsedMs, s.StdElapsedMs = meanStdDev(o.ElapsedMs)
	s.MeanSteps = stat.Mean(o.Steps, nil)
	return s
}

func meanStdDev(x []float64) (float64, float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}

// OutcomeAnalyzer records status, sequence length, training episodes and wall time
// of every run.
type OutcomeAnalyzer struct {
	dataset *outcomeDataset
}

var _ core.Analyzer = &OutcomeAnalyzer{}

func NewOutcomeAnalyzer() *OutcomeAnalyzer {
	a := &OutcomeAnalyzer{}
	a.Reset()
	return a
}

func (a *OutcomeAnalyzer) Reset() {
	a.dataset = &outcomeDataset{
		Seeds:     make([]uint64, 0),
		Success:   make([]bool, 0),
		Statuses:  make([]string, 0),
		Episodes:  make([]float64, 0),
		ElapsedMs: make([]float64, 0),
		Steps:     make([]float64, 0),
	}
}

func (a *OutcomeAnalyzer) Analyze(run *core.Run) {
	d := a.dataset
	d.Seeds = append(d.Seeds, run.Seed)
	d.Success = append(d.Success, run.Evaluation.Success)
	d.Statuses = append(d.Statuses, run.Evaluation.Status.String())
	d.Episodes = append(d.Episodes, float64(run.Episodes))
	d.ElapsedMs = append(d.ElapsedMs, float64(run.Elapsed.Microseconds())/1000)
	d.Steps = append(d.Steps, float64(len(run.Evaluation.Sequence)))
}

// DataSet returns a copy of the raw series together with their summary.
func (a *OutcomeAnalyzer) DataSet() core.DataSet {
	d := a.dataset
	out := &outcomeDataset{
		Seeds:     append([]uint64(nil), d.Seeds...),
		Success:   append([]bool(nil), d.Success...),
		Statuses:  append([]string(nil), d.Statuses...),
		Episodes:  util.CopyFloatSlice(d.Episodes),
		ElapsedMs: util.CopyFloatSlice(d.ElapsedMs),
		Steps:     util.CopyFloatSlice(d.Steps),
	}
	out.Summary = out.summarize()
	return out
}

// Summary extracts the summary from a data set produced by OutcomeAnalyzer.
func Summary(ds core.DataSet) (OutcomeSummary, bool) {
	d, ok := ds.(*outcomeDataset)
	if !ok || d == nil {
		return OutcomeSummary{}, false
	}
	return d.Summary, true
}

type OutcomeAnalyzerConstructor struct{}

var _ core.AnalyzerConstructor = &OutcomeAnalyzerConstructor{}

func NewOutcomeAnalyzerConstructor() *OutcomeAnalyzerConstructor {
	return &OutcomeAnalyzerConstructor{}
}

func (c *OutcomeAnalyzerConstructor) NewAnalyzer(_ string) core.Analyzer {
	return NewOutcomeAnalyzer()
}

// OutcomeComparator saves the data sets of all experiments to outcomes.json.
type OutcomeComparator struct {
	savePath string
}

var _ core.Comparator = &OutcomeComparator{}

func NewOutcomeComparator(savePath string) *OutcomeComparator {
	return &OutcomeComparator{
		savePath: path.Join(savePath, "outcomes.json"),
	}
}

func (c *OutcomeComparator) Compare(experimentNames []string, datasets []core.DataSet) {
	out := make(map[string]*outcomeDataset)
	for i, name := range experimentNames {
		if d, ok := datasets[i].(*outcomeDataset); ok {
			out[name] = d
		}
	}
	util.SaveJson(c.savePath, out)
}
