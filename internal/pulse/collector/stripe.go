package collector

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pulsedesk/pulse/internal/config"
	"github.com/pulsedesk/pulse/internal/pulse/classify"
	"github.com/pulsedesk/pulse/internal/pulse/model"
)

const (
	stripeChargeCap = 20
	stripePayoutCap = 10
)

// Stripe collects recent charges and payouts. It prepends transaction-type
// rules to the shared classifier so payment activity lands under "finance"
// before the generic keyword groups run.
type Stripe struct {
	cfg        config.StripeConfig
	classifier *classify.Classifier
	httpClient *http.Client
	baseURL    string
}

func NewStripe(cfg config.StripeConfig, cls *classify.Classifier) *Stripe {
	return &Stripe{
		cfg: cfg,
		classifier: cls.With(
			classify.Rule{Pattern: "payout", Label: "finance"},
			classify.Rule{Pattern: "refund", Label: "finance"},
			classify.Rule{Pattern: "subscription", Label: "finance"},
		),
		httpClient: newHTTPClient(),
		baseURL:    "https://api.stripe.com",
	}
}

func (s *Stripe) Source() model.Source { return model.SourceStripe }

type stripeList[T any] struct {
	Data []T `json:"data"`
}

type stripeCharge struct {
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Created     int64  `json:"created"`
}

type stripePayout struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
	Created  int64  `json:"created"`
}

func (s *Stripe) Fetch(ctx context.Context) FetchResult {
	if s.cfg.APIKey == "" {
		return fail(s.Source(), "stripe api key not configured")
	}

	header := http.Header{"Authorization": {"Bearer " + s.cfg.APIKey}}
	events := []model.PulseEvent{}
	var errs []string

	var charges stripeList[stripeCharge]
	url := fmt.Sprintf("%s/v1/charges?limit=%d", s.baseURL, stripeChargeCap)
	if err := getJSON(ctx, s.httpClient, url, header, &charges); err != nil {
		errs = append(errs, fmt.Sprintf("charges: %v", err))
	} else {
		for _, c := range charges.Data {
			events = append(events, model.PulseEvent{
				Source:    s.Source(),
				Timestamp: timestampOr(unixOrZero(c.Created)),
				Project:   s.classifier.Classify(c.Description),
				Data:      model.NewTransaction(c.Amount, c.Currency, c.Description, c.Status),
			})
		}
	}

	var payouts stripeList[stripePayout]
	url = fmt.Sprintf("%s/v1/payouts?limit=%d", s.baseURL, stripePayoutCap)
	if err := getJSON(ctx, s.httpClient, url, header, &payouts); err != nil {
		errs = append(errs, fmt.Sprintf("payouts: %v", err))
	} else {
		for _, p := range payouts.Data {
			events = append(events, model.PulseEvent{
				Source:    s.Source(),
				Timestamp: timestampOr(unixOrZero(p.Created)),
				Project:   s.classifier.Classify("payout " + p.Status),
				Data:      model.NewPayout(p.Amount, p.Currency, p.Status),
			})
		}
	}

	res := FetchResult{Source: s.Source(), Events: events}
	if len(errs) > 0 {
		res.Err = "stripe fetch: " + strings.Join(errs, "; ")
	}
	return res
}

func unixOrZero(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
