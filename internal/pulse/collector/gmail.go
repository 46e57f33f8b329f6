package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/pulsedesk/pulse/internal/config"
	"github.com/pulsedesk/pulse/internal/pulse/classify"
	"github.com/pulsedesk/pulse/internal/pulse/model"
)

const mailMessageCap = 15

// Mail collects recent inbox messages from one Gmail account. Two instances
// run in the pipeline, one per configured account.
type Mail struct {
	source     model.Source
	account    config.GoogleAccount
	classifier *classify.Classifier
}

func NewMail(source model.Source, account config.GoogleAccount, cls *classify.Classifier) *Mail {
	return &Mail{source: source, account: account, classifier: cls}
}

func (m *Mail) Source() model.Source { return m.source }

func (m *Mail) Fetch(ctx context.Context) FetchResult {
	if !m.account.Configured() {
		return fail(m.source, "gmail credentials not configured")
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(googleHTTPClient(ctx, m.account)))
	if err != nil {
		return fail(m.source, "gmail service: %v", err)
	}

	list, err := svc.Users.Messages.List("me").
		Context(ctx).
		LabelIds("INBOX").
		MaxResults(mailMessageCap).
		Do()
	if err != nil {
		return fail(m.source, "gmail fetch: %v", err)
	}

	events := []model.PulseEvent{}
	var errs []string
	for _, ref := range list.Messages {
		msg, err := svc.Users.Messages.Get("me", ref.Id).
			Context(ctx).
			Format("metadata").
			MetadataHeaders("Subject", "From").
			Do()
		if err != nil {
			errs = append(errs, fmt.Sprintf("message %s: %v", ref.Id, err))
			continue
		}

		subject, from := mailHeaders(msg)
		var received time.Time
		if msg.InternalDate > 0 {
			received = time.UnixMilli(msg.InternalDate)
		}
		events = append(events, model.PulseEvent{
			Source:    m.source,
			Timestamp: timestampOr(received),
			Project:   m.classifier.Classify(subject + " " + msg.Snippet),
			Data:      model.NewEmail(subject, from, msg.Snippet),
		})
	}

	res := FetchResult{Source: m.source, Events: events}
	if len(errs) > 0 {
		res.Err = "gmail fetch: " + strings.Join(errs, "; ")
	}
	return res
}

func mailHeaders(msg *gmail.Message) (subject, from string) {
	if msg.Payload == nil {
		return "", ""
	}
	for _, h := range msg.Payload.Headers {
		switch h.Name {
		case "Subject":
			subject = h.Value
		case "From":
			from = h.Value
		}
	}
	return subject, from
}
