package aggregate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsedesk/pulse/internal/pulse/collector"
	"github.com/pulsedesk/pulse/internal/pulse/model"
)

// fakeCollector settles with canned events, fails, hangs or panics on demand.
type fakeCollector struct {
	source model.Source
	events []model.PulseEvent
	err    string
	hang   bool
	panics bool
}

func (f *fakeCollector) Source() model.Source { return f.source }

func (f *fakeCollector) Fetch(ctx context.Context) collector.FetchResult {
	if f.panics {
		panic("collector misbehaved")
	}
	if f.hang {
		<-ctx.Done()
		return collector.FetchResult{Source: f.source, Events: []model.PulseEvent{}, Err: ctx.Err().Error()}
	}
	return collector.FetchResult{Source: f.source, Events: f.events, Err: f.err}
}

func event(src model.Source, ts time.Time, text string) model.PulseEvent {
	return model.PulseEvent{
		Source:    src,
		Timestamp: ts,
		Data:      model.NewMessage("general", text, "u1"),
	}
}

func TestRun_OrdersByTimestampDescending(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	cs := []collector.Collector{
		&fakeCollector{source: model.SourceSlack, events: []model.PulseEvent{
			event(model.SourceSlack, base.Add(-2*time.Hour), "old"),
			event(model.SourceSlack, base, "newest"),
		}},
		&fakeCollector{source: model.SourceGitHub, events: []model.PulseEvent{
			event(model.SourceGitHub, base.Add(-1*time.Hour), "middle"),
		}},
	}

	merged := Run(context.Background(), cs, time.Second)

	require.Len(t, merged, 3)
	for i := 1; i < len(merged); i++ {
		assert.False(t, merged[i].Timestamp.After(merged[i-1].Timestamp),
			"events must be non-increasing in timestamp")
	}
	assert.Equal(t, base, merged[0].Timestamp)
}

func TestRun_IsolatesFailingCollectors(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	good := event(model.SourceGitHub, base, "survives")

	cs := []collector.Collector{
		&fakeCollector{source: model.SourceGitHub, events: []model.PulseEvent{good}},
		&fakeCollector{source: model.SourceSlack, err: "token revoked", events: []model.PulseEvent{}},
		&fakeCollector{source: model.SourceStripe, panics: true},
	}

	merged := Run(context.Background(), cs, time.Second)

	require.Len(t, merged, 1)
	assert.Equal(t, model.SourceGitHub, merged[0].Source)
}

func TestRun_TimeoutTreatedAsFailure(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	cs := []collector.Collector{
		&fakeCollector{source: model.SourceVercel, hang: true},
		&fakeCollector{source: model.SourceGitHub, events: []model.PulseEvent{
			event(model.SourceGitHub, base, "fast"),
		}},
	}

	start := time.Now()
	merged := Run(context.Background(), cs, 50*time.Millisecond)

	assert.Less(t, time.Since(start), 5*time.Second)
	require.Len(t, merged, 1)
	assert.Equal(t, model.SourceGitHub, merged[0].Source)
}

func TestRun_AllEmptyIsNotAnError(t *testing.T) {
	cs := []collector.Collector{
		&fakeCollector{source: model.SourceGitHub, err: "no credentials", events: []model.PulseEvent{}},
		&fakeCollector{source: model.SourceSlack, events: []model.PulseEvent{}},
	}

	merged := Run(context.Background(), cs, time.Second)

	assert.NotNil(t, merged)
	assert.Empty(t, merged)
}
