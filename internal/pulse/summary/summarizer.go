package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pulsedesk/pulse/internal/llm"
	"github.com/pulsedesk/pulse/internal/pulse/common"
	"github.com/pulsedesk/pulse/internal/pulse/model"
)

// ZeroActivitySummary is the fixed text returned when there is nothing to
// summarize.
const ZeroActivitySummary = "No recent activity detected"

const briefingPrompt = `You are an executive assistant producing a daily operations briefing. Below is a list of recent events collected from source control, messaging, calendars, mail, payments and deployments. Each line is one event: [SOURCE] time: payload.

%s

Synthesize these events into a briefing. Group related work under the project labels that appear in the payloads where possible.

Output as JSON only, no other text:
{
  "summary": "2-3 sentence synthesis of the overall state of play",
  "priorities": ["up to 5 items needing attention first"],
  "risks": ["things that look off: failed deployments, stalled work, unanswered threads"],
  "finance": ["notable payments, payouts, invoices"],
  "meetings": ["upcoming meetings worth preparing for"],
  "actions": [{"action": "concrete next step", "owner": "who", "priority": "high|medium|low", "timeline": "when"}],
  "byProject": [{"name": "project label", "highlights": ["what happened"], "nextAction": "suggested next step", "priority": "high|medium|low"}]
}`

// Summarizer turns a merged event corpus into a structured briefing via one
// generative-text call. Malformed replies degrade to a plain-text summary;
// they never surface as a hard failure.
type Summarizer struct {
	LLM llm.Client
}

func NewSummarizer(client llm.Client) *Summarizer {
	return &Summarizer{LLM: client}
}

func (s *Summarizer) Summarize(ctx context.Context, events []model.PulseEvent) model.PulseSummary {
	if len(events) == 0 {
		return model.EmptySummary(ZeroActivitySummary)
	}

	prompt := fmt.Sprintf(briefingPrompt, serializeCorpus(events))

	reply, err := s.LLM.Generate(ctx, prompt)
	if err != nil {
		out := model.EmptySummary("Unable to generate briefing")
		out.Error = fmt.Sprintf("summary generation failed: %v", err)
		out.TotalEvents = len(events)
		return out
	}

	parsed, err := common.ParseJSON[model.PulseSummary](reply)
	if err != nil {
		// The raw reply is still better than nothing; hand it back as
		// the summary with empty structured fields.
		slog.Warn("briefing reply was not valid JSON, falling back to raw text", "error", err)
		out := model.EmptySummary(strings.TrimSpace(reply))
		out.TotalEvents = len(events)
		return out
	}

	// Never trust counts or timestamps from the model.
	parsed.Normalize()
	parsed.Error = ""
	parsed.TotalEvents = len(events)
	parsed.LastUpdated = time.Now()
	return parsed
}

// serializeCorpus renders events one per line, preserving the aggregator's
// most-recent-first order.
func serializeCorpus(events []model.PulseEvent) string {
	var b strings.Builder
	for i, e := range events {
		if i > 0 {
			b.WriteByte('\n')
		}
		data, err := json.Marshal(e.Data)
		if err != nil {
			data = []byte("{}")
		}
		fmt.Fprintf(&b, "[%s] %s: %s",
			strings.ToUpper(string(e.Source)),
			e.Timestamp.Format(time.RFC1123),
			data)
	}
	return b.String()
}
