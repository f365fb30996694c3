package util

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gosuri/uilive"
)

// TerminalPrinter redraws one line per output at a fixed frequency. Used to show the
// progress of concurrently training learners.
type TerminalPrinter struct {
	outputs   []*ParallelOutput
	frequency time.Duration
	doneCh    chan struct{}
	exitCh    chan struct{}
	started   bool
	stopOnce  sync.Once

	writer  *uilive.Writer
	writers []io.Writer
}

func NewTerminalPrinter(out io.Writer, frequency time.Duration) *TerminalPrinter {
	writer := uilive.New()
	writer.Out = out
	return &TerminalPrinter{
		outputs:   make([]*ParallelOutput, 0),
		frequency: frequency,
		doneCh:    make(chan struct{}),
		exitCh:    make(chan struct{}),

		writer:  writer,
		writers: make([]io.Writer, 0),
	}
}

// NewOutput registers a line. Must be called before Start.
func (t *TerminalPrinter) NewOutput(label string) *ParallelOutput {
	out := NewParallelOutput(label)
	t.outputs = append(t.outputs, out)
	if len(t.outputs) > 1 {
		t.writers = append(t.writers, t.writer.Newline())
	} else {
		t.writers = append(t.writers, t.writer)
	}
	return out
}

func (t *TerminalPrinter) Start(ctx context.Context) {
	t.started = true
	go func() {
		defer close(t.exitCh)
		ticker := time.NewTicker(t.frequency)
		defer ticker.Stop()
		for {
			select {
			case <-t.doneCh:
				t.print()
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				t.print()
			}
		}
	}()
}

// Stop prints the outputs one last time and returns once the printer has exited.
func (t *TerminalPrinter) Stop() {
	t.stopOnce.Do(func() {
		close(t.doneCh)
	})
	if t.started {
		<-t.exitCh
	}
}

func (t *TerminalPrinter) print() {
	for i, output := range t.outputs {
		fmt.Fprintln(t.writers[i], output.Get())
	}
	t.writer.Flush()
}

// ParallelOutput holds the latest line of one worker
type ParallelOutput struct {
	mu        *sync.Mutex
	label     string
	printable string
}

func NewParallelOutput(label string) *ParallelOutput {
	return &ParallelOutput{
		mu:    new(sync.Mutex),
		label: label,
	}
}

// Setf replaces the line (blocking)
func (p *ParallelOutput) Setf(format string, args ...interface{}) {
	s := fmt.Sprintf(format, args...)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.printable = s
}

// TrySetf replaces the line unless a reader holds it (non-blocking)
func (p *ParallelOutput) TrySetf(format string, args ...interface{}) bool {
	if !p.mu.TryLock() {
		return false
	}
	defer p.mu.Unlock()
	p.printable = fmt.Sprintf(format, args...)
	return true
}

func (p *ParallelOutput) Get() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.label == "" {
		return p.printable
	}
	return p.label + ": " + p.printable
}
