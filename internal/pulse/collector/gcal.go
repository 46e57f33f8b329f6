package collector

import (
	"context"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/pulsedesk/pulse/internal/config"
	"github.com/pulsedesk/pulse/internal/pulse/classify"
	"github.com/pulsedesk/pulse/internal/pulse/model"
)

const calendarEntryCap = 10

// Calendar collects upcoming entries from one Google Calendar account. Two
// instances run in the pipeline, one per configured account.
type Calendar struct {
	source     model.Source
	account    config.GoogleAccount
	classifier *classify.Classifier
}

func NewCalendar(source model.Source, account config.GoogleAccount, cls *classify.Classifier) *Calendar {
	return &Calendar{source: source, account: account, classifier: cls}
}

func (c *Calendar) Source() model.Source { return c.source }

func (c *Calendar) Fetch(ctx context.Context) FetchResult {
	if !c.account.Configured() {
		return fail(c.source, "google calendar credentials not configured")
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(googleHTTPClient(ctx, c.account)))
	if err != nil {
		return fail(c.source, "calendar service: %v", err)
	}

	calID := c.account.CalendarID
	if calID == "" {
		calID = "primary"
	}

	now := time.Now()
	list, err := svc.Events.List(calID).
		Context(ctx).
		TimeMin(now.Format(time.RFC3339)).
		TimeMax(now.AddDate(0, 0, 7).Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(calendarEntryCap).
		Do()
	if err != nil {
		return fail(c.source, "calendar fetch: %v", err)
	}

	events := []model.PulseEvent{}
	for _, item := range list.Items {
		start, ts := calendarStart(item.Start)
		events = append(events, model.PulseEvent{
			Source:    c.source,
			Timestamp: timestampOr(ts),
			Project:   c.classifier.Classify(item.Summary),
			Data:      model.NewCalendarEntry(item.Summary, start, len(item.Attendees)),
		})
	}

	return FetchResult{Source: c.source, Events: events}
}

// calendarStart extracts the start of an entry, handling both timed and
// all-day forms. The returned string is what the summarizer serializes.
func calendarStart(start *calendar.EventDateTime) (string, time.Time) {
	if start == nil {
		return "", time.Time{}
	}
	if start.DateTime != "" {
		ts, _ := time.Parse(time.RFC3339, start.DateTime)
		return start.DateTime, ts
	}
	ts, _ := time.Parse("2006-01-02", start.Date)
	return start.Date, ts
}
