package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/pulsedesk/pulse/internal/metrics"
	"github.com/pulsedesk/pulse/internal/pulse/collector"
	"github.com/pulsedesk/pulse/internal/pulse/model"
)

// Run fans out to every collector concurrently, waits for all to settle,
// then merges and sorts their events most-recent-first. Each call is
// bounded by timeout; a timeout, an error, or even a collector that panics
// despite the contract degrades that single source and never the run. Zero
// merged events is a valid outcome, not an error.
func Run(ctx context.Context, collectors []collector.Collector, timeout time.Duration) []model.PulseEvent {
	results := make([]collector.FetchResult, len(collectors))

	var wg sync.WaitGroup
	wg.Add(len(collectors))
	for i, c := range collectors {
		i, c := i, c
		go func() {
			defer wg.Done()
			results[i] = fetchOne(ctx, c, timeout)
		}()
	}
	wg.Wait()

	merged := []model.PulseEvent{}
	for _, res := range results {
		if res.Err != "" {
			slog.Warn("collector degraded", "source", res.Source, "error", res.Err)
		}
		merged = append(merged, res.Events...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	return merged
}

func fetchOne(ctx context.Context, c collector.Collector, timeout time.Duration) (res collector.FetchResult) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		// Collectors must not panic, but a misbehaving one is still
		// isolated here rather than taking down the whole run.
		if r := recover(); r != nil {
			res = collector.FetchResult{
				Source: c.Source(),
				Events: []model.PulseEvent{},
				Err:    fmt.Sprintf("collector panic: %v", r),
			}
		}
		status := "ok"
		if res.Err != "" {
			status = "error"
		}
		metrics.FetchTotal.WithLabelValues(string(c.Source()), status).Inc()
		metrics.FetchDuration.WithLabelValues(string(c.Source())).Observe(time.Since(start).Seconds())
	}()

	return c.Fetch(cctx)
}
