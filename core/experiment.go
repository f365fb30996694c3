package core

import "time"

// Run is one evaluated policy: which experiment produced it, the seed it ran with and
// how it ended.
type Run struct {
	Experiment string
	Seed       uint64
	Episodes   int
	Elapsed    time.Duration
	Problem    *Problem
	Evaluation *Evaluation
}

type DataSet interface{}

type Analyzer interface {
	Analyze(*Run)
	DataSet() DataSet
	Reset()
}

type AnalyzerConstructor interface {
	// NewAnalyzer creates an analyzer for the named experiment
	NewAnalyzer(string) Analyzer
}

type Comparator interface {
	Compare([]string, []DataSet)
}

// Comparison groups runs by experiment, feeds each group through fresh analyzers and
// hands the resulting data sets to the comparators.
type Comparison struct {
	Analyzers   map[string]AnalyzerConstructor
	Comparators map[string]Comparator
}

func NewComparison() *Comparison {
	return &Comparison{
		Analyzers:   make(map[string]AnalyzerConstructor),
		Comparators: make(map[string]Comparator),
	}
}

func (c *Comparison) AddAnalysis(name string, a AnalyzerConstructor, cmp Comparator) {
	c.Analyzers[name] = a
	c.Comparators[name] = cmp
}
