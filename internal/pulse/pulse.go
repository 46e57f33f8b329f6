// Package pulse implements the briefing pipeline: collectors fan out to the
// external services, the aggregator merges their events, and the summarizer
// turns the corpus into an executive briefing. Runs are stateless; nothing
// is persisted between invocations.
package pulse

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pulsedesk/pulse/internal/llm"
	"github.com/pulsedesk/pulse/internal/metrics"
	"github.com/pulsedesk/pulse/internal/pulse/aggregate"
	"github.com/pulsedesk/pulse/internal/pulse/collector"
	"github.com/pulsedesk/pulse/internal/pulse/model"
	"github.com/pulsedesk/pulse/internal/pulse/summary"
)

// Pulse sequences the pipeline. The output schema is invariant: every path,
// including internal failure, yields a well-formed PulseSummary.
type Pulse struct {
	collectors []collector.Collector
	llm        llm.Client
	summarizer *summary.Summarizer
	timeout    time.Duration
}

// New wires the pipeline. A nil llm client marks the generative service as
// unconfigured; Brief then fails fast without invoking any collector.
func New(collectors []collector.Collector, client llm.Client, timeout time.Duration) *Pulse {
	return &Pulse{
		collectors: collectors,
		llm:        client,
		summarizer: summary.NewSummarizer(client),
		timeout:    timeout,
	}
}

// Brief runs the full pipeline once. The returned error is non-nil only for
// the catch-all unexpected-failure path; the summary is valid either way.
func (p *Pulse) Brief(ctx context.Context) (out model.PulseSummary, err error) {
	runID := uuid.NewString()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("briefing run failed unexpectedly", "run_id", runID, "panic", r)
			metrics.BriefTotal.WithLabelValues("panic").Inc()
			out = model.EmptySummary("Briefing failed due to an internal error")
			out.Error = fmt.Sprintf("internal error: %v", r)
			err = fmt.Errorf("briefing run panicked: %v", r)
		}
	}()

	if p.llm == nil {
		slog.Warn("briefing skipped: generative service credential missing", "run_id", runID)
		metrics.BriefTotal.WithLabelValues("unconfigured").Inc()
		out = model.EmptySummary("Briefing unavailable: the generative service is not configured")
		out.Error = "generative service credential missing"
		return out, nil
	}

	events := aggregate.Run(ctx, p.collectors, p.timeout)
	slog.Info("aggregation complete", "run_id", runID, "events", len(events))

	if len(events) == 0 {
		metrics.BriefTotal.WithLabelValues("empty").Inc()
		return model.EmptySummary(summary.ZeroActivitySummary), nil
	}

	out = p.summarizer.Summarize(ctx, events)
	outcome := "ok"
	if out.Error != "" {
		outcome = "degraded"
	}
	metrics.BriefTotal.WithLabelValues(outcome).Inc()
	slog.Info("briefing complete", "run_id", runID, "outcome", outcome, "events", out.TotalEvents)
	return out, nil
}

// Collect runs a single collector by source tag, honoring the pipeline's
// per-collector timeout. The second return is false for an unknown source.
func (p *Pulse) Collect(ctx context.Context, src model.Source) (collector.FetchResult, bool) {
	for _, c := range p.collectors {
		if c.Source() == src {
			cctx, cancel := context.WithTimeout(ctx, p.timeout)
			defer cancel()
			return c.Fetch(cctx), true
		}
	}
	return collector.FetchResult{}, false
}
