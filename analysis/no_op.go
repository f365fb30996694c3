package analysis

import "github.com/zeu5/bankers-rl/core"

// NoOpComparator is paired with analyzers that only have side effects.
type NoOpComparator struct {
}

var _ core.Comparator = &NoOpComparator{}

func NewNoOpComparator() *NoOpComparator {
	return &NoOpComparator{}
}

func (n *NoOpComparator) Compare(_ []string, _ []core.DataSet) {
}
