package core

// SafeSequence runs the classical Banker's safety algorithm. It returns a completion
// order when the problem is in a safe state; ok is false otherwise. Among the runnable
// processes the lowest index is always picked first.
func SafeSequence(p *Problem) (seq []Action, ok bool) {
	n, m := p.NumProcesses(), p.NumResources()
	work := make([]int, m)
	copy(work, p.Available)
	finished := make([]bool, n)
	seq = make([]Action, 0, n)

	for len(seq) < n {
		progressed := false
		for i := 0; i < n; i++ {
			if finished[i] || !fits(p.Need(i), work) {
				continue
			}
			for j := 0; j < m; j++ {
				work[j] += p.Allocation[i][j]
			}
			finished[i] = true
			seq = append(seq, Action(i))
			progressed = true
		}
		if !progressed {
			return seq, false
		}
	}
	return seq, true
}

// IsSafeOrder reports whether running the processes in the given order never
// requests more than is available and finishes every process exactly once.
func IsSafeOrder(p *Problem, order []Action) bool {
	n, m := p.NumProcesses(), p.NumResources()
	if len(order) != n {
		return false
	}
	work := make([]int, m)
	copy(work, p.Available)
	seen := make([]bool, n)
	for _, a := range order {
		i := int(a)
		if i < 0 || i >= n || seen[i] || !fits(p.Need(i), work) {
			return false
		}
		for j := 0; j < m; j++ {
			work[j] += p.Allocation[i][j]
		}
		seen[i] = true
	}
	return true
}

func fits(need, work []int) bool {
	for j := range need {
		if need[j] > work[j] {
			return false
		}
	}
	return true
}
