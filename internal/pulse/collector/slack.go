package collector

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pulsedesk/pulse/internal/config"
	"github.com/pulsedesk/pulse/internal/pulse/classify"
	"github.com/pulsedesk/pulse/internal/pulse/model"
)

const slackMessageCap = 20

// Slack collects recent messages from the configured channels.
type Slack struct {
	cfg        config.SlackConfig
	classifier *classify.Classifier
	httpClient *http.Client
	baseURL    string
}

func NewSlack(cfg config.SlackConfig, cls *classify.Classifier) *Slack {
	return &Slack{
		cfg:        cfg,
		classifier: cls,
		httpClient: newHTTPClient(),
		baseURL:    "https://slack.com/api",
	}
}

func (s *Slack) Source() model.Source { return model.SourceSlack }

type slackHistory struct {
	OK       bool   `json:"ok"`
	Error    string `json:"error"`
	Messages []struct {
		Text string `json:"text"`
		User string `json:"user"`
		Ts   string `json:"ts"`
	} `json:"messages"`
}

func (s *Slack) Fetch(ctx context.Context) FetchResult {
	if s.cfg.Token == "" {
		return fail(s.Source(), "slack token not configured")
	}
	if len(s.cfg.Channels) == 0 {
		return fail(s.Source(), "no slack channels configured")
	}

	header := http.Header{"Authorization": {"Bearer " + s.cfg.Token}}
	events := []model.PulseEvent{}
	var errs []string

	for _, channel := range s.cfg.Channels {
		if len(events) >= slackMessageCap {
			break
		}
		url := fmt.Sprintf("%s/conversations.history?channel=%s&limit=%d",
			s.baseURL, channel, slackMessageCap)

		var hist slackHistory
		if err := getJSON(ctx, s.httpClient, url, header, &hist); err != nil {
			errs = append(errs, fmt.Sprintf("channel %s: %v", channel, err))
			continue
		}
		if !hist.OK {
			errs = append(errs, fmt.Sprintf("channel %s: %s", channel, hist.Error))
			continue
		}

		for _, msg := range hist.Messages {
			if len(events) >= slackMessageCap {
				break
			}
			if msg.Text == "" {
				continue
			}
			events = append(events, model.PulseEvent{
				Source:    s.Source(),
				Timestamp: timestampOr(parseSlackTS(msg.Ts)),
				Project:   s.classifier.Classify(msg.Text),
				Data:      model.NewMessage(channel, msg.Text, msg.User),
			})
		}
	}

	res := FetchResult{Source: s.Source(), Events: events}
	if len(errs) > 0 {
		res.Err = "slack fetch: " + strings.Join(errs, "; ")
	}
	return res
}

// parseSlackTS turns Slack's "1712345678.000200" message timestamp into a
// time.Time. Returns the zero time on malformed input.
func parseSlackTS(ts string) time.Time {
	sec, frac, _ := strings.Cut(ts, ".")
	secs, err := strconv.ParseInt(sec, 10, 64)
	if err != nil {
		return time.Time{}
	}
	var micros int64
	if frac != "" {
		micros, _ = strconv.ParseInt(frac, 10, 64)
	}
	return time.Unix(secs, micros*1000)
}
