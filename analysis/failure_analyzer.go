package analysis

import (
	"bytes"
	"fmt"
	"os"
	"path"

	"github.com/zeu5/bankers-rl/core"
)

// FailureAnalyzer writes the trace of every unsuccessful run to its own file under
// <savePath>/failures.
type FailureAnalyzer struct {
	savePath string
	exp      string
}

var _ core.Analyzer = &FailureAnalyzer{}

func NewFailureAnalyzer(savePath, exp string) *FailureAnalyzer {
	if _, err := os.Stat(path.Join(savePath, "failures")); os.IsNotExist(err) {
		os.MkdirAll(path.Join(savePath, "failures"), 0755)
	}
	return &FailureAnalyzer{
		savePath: path.Join(savePath, "failures"),
		exp:      exp,
	}
}

func (a *FailureAnalyzer) Analyze(run *core.Run) {
	if run.Evaluation.Success {
		return
	}
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "Experiment: %s\nSeed: %d\nStatus: %s\nSequence: %v\n", a.exp, run.Seed, run.Evaluation.Status, run.Evaluation.Sequence)
	if run.Problem != nil {
		fmt.Fprintf(buf, "Allocation: %v\nMaxDemand: %v\nAvailable: %v\n", run.Problem.Allocation, run.Problem.MaxDemand, run.Problem.Available)
	}
	if run.Evaluation.Trace != nil {
		buf.WriteString("\n")
		buf.WriteString(run.Evaluation.Trace.String())
	}

	fileName := fmt.Sprintf("%s_%s_%d.txt", a.exp, run.Evaluation.Status, run.Seed)
	os.WriteFile(path.Join(a.savePath, fileName), buf.Bytes(), 0644)
}

func (*FailureAnalyzer) DataSet() core.DataSet {
	return nil
}

func (*FailureAnalyzer) Reset() {}

type FailureAnalyzerConstructor struct {
	SavePath string
}

var _ core.AnalyzerConstructor = &FailureAnalyzerConstructor{}

func NewFailureAnalyzerConstructor(savePath string) *FailureAnalyzerConstructor {
	return &FailureAnalyzerConstructor{
		SavePath: savePath,
	}
}

func (c *FailureAnalyzerConstructor) NewAnalyzer(exp string) core.Analyzer {
	return NewFailureAnalyzer(c.SavePath, exp)
}
