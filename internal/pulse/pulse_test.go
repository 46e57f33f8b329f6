package pulse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsedesk/pulse/internal/pulse/collector"
	"github.com/pulsedesk/pulse/internal/pulse/model"
	"github.com/pulsedesk/pulse/internal/pulse/summary"
)

type countingCollector struct {
	source model.Source
	events []model.PulseEvent
	calls  int
	panics bool
}

func (c *countingCollector) Source() model.Source { return c.source }

func (c *countingCollector) Fetch(ctx context.Context) collector.FetchResult {
	c.calls++
	if c.panics {
		panic("boom")
	}
	return collector.FetchResult{Source: c.source, Events: c.events}
}

func TestBrief_CredentialGate(t *testing.T) {
	col := &countingCollector{source: model.SourceGitHub}
	p := New([]collector.Collector{col}, nil, time.Second)

	out, err := p.Brief(context.Background())

	require.NoError(t, err, "misconfiguration is a handled outcome, not a failure")
	assert.NotEmpty(t, out.Error)
	assert.Equal(t, 0, col.calls, "no collector may run without a generative credential")
	assert.Equal(t, 0, out.TotalEvents)
	assert.Empty(t, out.Priorities)
	assert.False(t, out.LastUpdated.IsZero())
}

func TestBrief_ZeroActivitySkipsLLM(t *testing.T) {
	col := &countingCollector{source: model.SourceGitHub, events: []model.PulseEvent{}}
	mock := &summary.MockLLMClient{Response: `{"summary":"unused"}`}
	p := New([]collector.Collector{col}, mock, time.Second)

	out, err := p.Brief(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, col.calls)
	assert.Equal(t, 0, mock.Calls, "zero activity must not invoke the generative service")
	assert.Equal(t, summary.ZeroActivitySummary, out.Summary)
	assert.Equal(t, 0, out.TotalEvents)
}

func TestBrief_FullRun(t *testing.T) {
	ev := model.PulseEvent{
		Source:    model.SourceGitHub,
		Timestamp: time.Now(),
		Project:   "beam",
		Data:      model.NewCommit("beam/api", "add webhooks", "kim"),
	}
	col := &countingCollector{source: model.SourceGitHub, events: []model.PulseEvent{ev}}
	mock := &summary.MockLLMClient{Response: `{"summary":"One commit on Beam.","priorities":["review webhooks"]}`}
	p := New([]collector.Collector{col}, mock, time.Second)

	out, err := p.Brief(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, mock.Calls)
	assert.Equal(t, "One commit on Beam.", out.Summary)
	assert.Equal(t, 1, out.TotalEvents)
	assert.Empty(t, out.Error)
}

func TestBrief_PanickingCollectorIsIsolated(t *testing.T) {
	col := &countingCollector{source: model.SourceGitHub, panics: true}
	mock := &summary.MockLLMClient{Response: `{"summary":"ok"}`}
	p := New([]collector.Collector{col}, mock, time.Second)

	out, err := p.Brief(context.Background())

	require.NoError(t, err)
	assert.Equal(t, summary.ZeroActivitySummary, out.Summary)
	assert.Equal(t, 0, mock.Calls)
}

func TestBrief_UnexpectedPanicBecomesDegradedSummary(t *testing.T) {
	ev := model.PulseEvent{
		Source:    model.SourceGitHub,
		Timestamp: time.Now(),
		Data:      model.NewCommit("r", "m", "a"),
	}
	col := &countingCollector{source: model.SourceGitHub, events: []model.PulseEvent{ev}}
	// A nil summarizer forces a panic past the aggregator boundary; the
	// orchestrator must still answer with the standard shape.
	p := &Pulse{
		collectors: []collector.Collector{col},
		llm:        &summary.MockLLMClient{Response: "ok"},
		summarizer: nil,
		timeout:    time.Second,
	}

	out, err := p.Brief(context.Background())

	require.Error(t, err)
	assert.NotEmpty(t, out.Error)
	assert.Empty(t, out.Priorities)
	assert.False(t, out.LastUpdated.IsZero())
}

func TestCollect_KnownAndUnknownSource(t *testing.T) {
	col := &countingCollector{source: model.SourceSlack}
	p := New([]collector.Collector{col}, nil, time.Second)

	_, ok := p.Collect(context.Background(), model.SourceSlack)
	assert.True(t, ok)
	assert.Equal(t, 1, col.calls)

	_, ok = p.Collect(context.Background(), model.Source("nope"))
	assert.False(t, ok)
}
