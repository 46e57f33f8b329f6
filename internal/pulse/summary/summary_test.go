package summary

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsedesk/pulse/internal/pulse/model"
)

func sampleEvents() []model.PulseEvent {
	base := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	return []model.PulseEvent{
		{
			Source:    model.SourceGitHub,
			Timestamp: base,
			Project:   "beam",
			Data:      model.NewCommit("beam/api", "fix rate limiter", "dana"),
		},
		{
			Source:    model.SourceStripe,
			Timestamp: base.Add(-time.Hour),
			Project:   "finance",
			Data:      model.NewPayout(125000, "usd", "paid"),
		},
	}
}

func TestSummarize_EmptyShortCircuits(t *testing.T) {
	mock := &MockLLMClient{Response: `{"summary":"should not be used"}`}
	s := NewSummarizer(mock)

	out := s.Summarize(context.Background(), nil)

	assert.Equal(t, 0, mock.Calls, "generative service must not be called for an empty corpus")
	assert.Equal(t, ZeroActivitySummary, out.Summary)
	assert.Equal(t, 0, out.TotalEvents)
	assert.Empty(t, out.Priorities)
	assert.Empty(t, out.Risks)
	assert.Empty(t, out.Finance)
	assert.Empty(t, out.Meetings)
	assert.Empty(t, out.Actions)
	assert.Empty(t, out.ByProject)
	assert.False(t, out.LastUpdated.IsZero())
}

func TestSummarize_ValidReply(t *testing.T) {
	mock := &MockLLMClient{Response: `{
		"summary": "Steady progress on Beam; payout cleared.",
		"priorities": ["Ship beam rate limiter fix"],
		"risks": [],
		"finance": ["$1,250 payout completed"],
		"meetings": [],
		"actions": [{"action": "review PR", "owner": "dana", "priority": "high", "timeline": "today"}],
		"byProject": [{"name": "beam", "highlights": ["rate limiter fix"], "nextAction": "deploy", "priority": "high"}],
		"totalEvents": 999
	}`}
	s := NewSummarizer(mock)

	events := sampleEvents()
	out := s.Summarize(context.Background(), events)

	assert.Equal(t, 1, mock.Calls)
	assert.Equal(t, "Steady progress on Beam; payout cleared.", out.Summary)
	require.Len(t, out.Actions, 1)
	assert.Equal(t, "dana", out.Actions[0].Owner)
	require.Len(t, out.ByProject, 1)
	assert.Equal(t, "beam", out.ByProject[0].Name)
	// Counts come from the real corpus, never from the model.
	assert.Equal(t, len(events), out.TotalEvents)
	assert.False(t, out.LastUpdated.IsZero())
}

func TestSummarize_MalformedReplyFallsBack(t *testing.T) {
	raw := "Here is your briefing: everything looks fine today."
	mock := &MockLLMClient{Response: raw}
	s := NewSummarizer(mock)

	events := sampleEvents()
	out := s.Summarize(context.Background(), events)

	assert.Equal(t, raw, out.Summary)
	assert.Empty(t, out.Priorities)
	assert.Empty(t, out.Actions)
	assert.Empty(t, out.ByProject)
	assert.Equal(t, len(events), out.TotalEvents)
	assert.False(t, out.LastUpdated.IsZero())
	assert.Empty(t, out.Error, "a malformed reply is degraded output, not an error")
}

func TestSummarize_GenerateErrorIsDegradedNotFatal(t *testing.T) {
	mock := &MockLLMClient{Err: errors.New("upstream 503")}
	s := NewSummarizer(mock)

	events := sampleEvents()
	out := s.Summarize(context.Background(), events)

	assert.Contains(t, out.Error, "upstream 503")
	assert.Equal(t, len(events), out.TotalEvents)
	assert.Empty(t, out.Priorities)
}

func TestSerializeCorpus_OrderAndShape(t *testing.T) {
	events := sampleEvents()
	corpus := serializeCorpus(events)

	lines := strings.Split(corpus, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "[GITHUB] "))
	assert.True(t, strings.HasPrefix(lines[1], "[STRIPE] "))
	assert.Contains(t, lines[0], `"type":"commit"`)
	assert.Contains(t, lines[1], `"type":"payout"`)
}

func TestSummarize_PromptCarriesCorpusAndSchema(t *testing.T) {
	mock := &MockLLMClient{Response: `{"summary":"ok"}`}
	s := NewSummarizer(mock)

	s.Summarize(context.Background(), sampleEvents())

	assert.Contains(t, mock.LastPrompt, "fix rate limiter")
	assert.Contains(t, mock.LastPrompt, `"byProject"`)
	assert.Contains(t, mock.LastPrompt, "JSON only")
}
