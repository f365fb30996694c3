package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/zeu5/bankers-rl/core"
	"github.com/zeu5/bankers-rl/metrics"
	"github.com/zeu5/bankers-rl/util"
)

// interruptContext is cancelled on the first interrupt. The returned function must be
// called once the command is done.
func interruptContext() (context.Context, func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt) // channel for interrupts from os

	doneCh := make(chan struct{}) // channel for done signal from application

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-sigCh:
		case <-doneCh:
		}
		cancel()
	}()
	return ctx, func() {
		signal.Stop(sigCh)
		close(doneCh)
	}
}

func newLogger() (*slog.Logger, error) {
	return util.NewLogger(os.Stderr, flags.LogLevel, flags.LogFormat)
}

// runMetrics collects the metrics of a single command invocation.
type runMetrics struct {
	registry *prometheus.Registry
	*metrics.Metrics
}

func newRunMetrics() *runMetrics {
	reg := prometheus.NewRegistry()
	return &runMetrics{
		registry: reg,
		Metrics:  metrics.New(reg),
	}
}

// flush writes the collected metrics in the text exposition format when --metrics-out
// is set.
func (r *runMetrics) flush() error {
	if flags.MetricsOut == "" {
		return nil
	}
	return prometheus.WriteToTextfile(flags.MetricsOut, r.registry)
}

func formatSequence(seq []core.Action) string {
	if len(seq) == 0 {
		return "-"
	}
	parts := make([]string, len(seq))
	for i, a := range seq {
		parts[i] = a.String()
	}
	return strings.Join(parts, " -> ")
}

func printEvaluation(w io.Writer, label string, eval *core.Evaluation) {
	fmt.Fprintf(w, "%s: %s\n", label, eval.Status)
	fmt.Fprintf(w, "  sequence: %s\n", formatSequence(eval.Sequence))
}
