package core

import "sort"

// Analyze runs every analysis over the given runs. Experiments are visited in name
// order and runs keep their relative order within an experiment.
func (c *Comparison) Analyze(runs []*Run) map[string]map[string]DataSet {
	byExperiment := make(map[string][]*Run)
	for _, r := range runs {
		byExperiment[r.Experiment] = append(byExperiment[r.Experiment], r)
	}
	experimentNames := make([]string, 0, len(byExperiment))
	for name := range byExperiment {
		experimentNames = append(experimentNames, name)
	}
	sort.Strings(experimentNames)

	// analysis name -> experiment name -> data set
	results := make(map[string]map[string]DataSet)
	for name, aC := range c.Analyzers {
		results[name] = make(map[string]DataSet)
		for _, exp := range experimentNames {
			a := aC.NewAnalyzer(exp)
			a.Reset()
			for _, r := range byExperiment[exp] {
				a.Analyze(r)
			}
			results[name][exp] = a.DataSet()
		}
	}

	for name, cmp := range c.Comparators {
		datasets := make([]DataSet, len(experimentNames))
		for i, exp := range experimentNames {
			datasets[i] = results[name][exp]
		}
		cmp.Compare(experimentNames, datasets)
	}
	return results
}
