package policies

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/zeu5/bankers-rl/core"
	"github.com/zeu5/bankers-rl/util"
)

var ErrEmptyTable = errors.New("value table file is empty")

// QTable maps a state to one value per process. States that were never updated read
// as all zeros and are not stored.
type QTable struct {
	actions int
	table   map[core.State][]float64
}

func NewQTable(actions int) *QTable {
	return &QTable{
		actions: actions,
		table:   make(map[core.State][]float64),
	}
}

// Actions is the width of every row, the number of processes.
func (q *QTable) Actions() int {
	return q.actions
}

func (q *QTable) Get(state core.State, action core.Action) float64 {
	row, ok := q.table[state]
	if !ok {
		return 0
	}
	return row[action]
}

func (q *QTable) Set(state core.State, action core.Action, val float64) {
	row, ok := q.table[state]
	if !ok {
		row = make([]float64, q.actions)
		q.table[state] = row
	}
	row[action] = val
}

// Values returns a copy of the row for state and whether the state was seen.
func (q *QTable) Values(state core.State) ([]float64, bool) {
	row, ok := q.table[state]
	if !ok {
		return nil, false
	}
	return util.CopyFloatSlice(row), true
}

// Row is like Values but returns a zero row for unseen states.
func (q *QTable) Row(state core.State) []float64 {
	if row, ok := q.Values(state); ok {
		return row
	}
	return make([]float64, q.actions)
}

// Max returns the largest value for state, 0 when the state was never seen.
func (q *QTable) Max(state core.State) float64 {
	row, ok := q.table[state]
	if !ok {
		return 0
	}
	return floats.Max(row)
}

// Argmax returns the first action with the largest value. ok is false when the state
// was never seen.
func (q *QTable) Argmax(state core.State) (core.Action, bool) {
	row, ok := q.table[state]
	if !ok {
		return 0, false
	}
	return core.Action(floats.MaxIdx(row)), true
}

func (q *QTable) HasState(state core.State) bool {
	_, ok := q.table[state]
	return ok
}

func (q *QTable) Size() int {
	return len(q.table)
}

// States returns the seen states ordered by their text encoding.
func (q *QTable) States() []core.State {
	states := make([]core.State, 0, len(q.table))
	for s := range q.table {
		states = append(states, s)
	}
	sort.Slice(states, func(i, j int) bool {
		return states[i].Hash() < states[j].Hash()
	})
	return states
}

func (q *QTable) Copy() *QTable {
	out := NewQTable(q.actions)
	for s, row := range q.table {
		out.table[s] = util.CopyFloatSlice(row)
	}
	return out
}

type qTableHeader struct {
	Actions int `json:"actions"`
}

type qTableLine struct {
	State   core.State `json:"state"`
	Entries []float64  `json:"entries"`
}

// Write encodes the table as JSON lines: a header carrying the width, then one line
// per state.
func (q *QTable) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	if err := enc.Encode(qTableHeader{Actions: q.actions}); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	for _, s := range q.States() {
		if err := enc.Encode(qTableLine{State: s, Entries: q.table[s]}); err != nil {
			return fmt.Errorf("error writing state %s: %w", s, err)
		}
	}
	return bw.Flush()
}

// ReadQTable decodes the output of QTable.Write. Every state line must agree with the
// width given by the header. A table without rows reads back empty with its width.
func ReadQTable(r io.Reader) (*QTable, error) {
	var q *QTable
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		if q == nil {
			var header qTableHeader
			if err := json.Unmarshal(scanner.Bytes(), &header); err != nil {
				return nil, fmt.Errorf("error reading header on line %d: %w", line, err)
			}
			if header.Actions <= 0 || header.Actions > core.MaxProcesses {
				return nil, fmt.Errorf("error reading header on line %d: invalid width %d", line, header.Actions)
			}
			q = NewQTable(header.Actions)
			continue
		}
		var in qTableLine
		if err := json.Unmarshal(scanner.Bytes(), &in); err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", line, err)
		}
		if in.State.Len() != q.actions || len(in.Entries) != q.actions {
			return nil, fmt.Errorf("error reading line %d: expected %d actions, got state %s with %d entries", line, q.actions, in.State, len(in.Entries))
		}
		q.table[in.State] = in.Entries
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading table: %w", err)
	}
	if q == nil {
		return nil, ErrEmptyTable
	}
	return q, nil
}
