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

const vercelDeploymentCap = 15

// Vercel collects recent deployments.
type Vercel struct {
	cfg        config.VercelConfig
	classifier *classify.Classifier
	httpClient *http.Client
	baseURL    string
}

func NewVercel(cfg config.VercelConfig, cls *classify.Classifier) *Vercel {
	return &Vercel{
		cfg:        cfg,
		classifier: cls,
		httpClient: newHTTPClient(),
		baseURL:    "https://api.vercel.com",
	}
}

func (v *Vercel) Source() model.Source { return model.SourceVercel }

type vercelDeployments struct {
	Deployments []struct {
		Name    string `json:"name"`
		URL     string `json:"url"`
		State   string `json:"state"`
		Created int64  `json:"created"` // unix millis
		Creator struct {
			Username string `json:"username"`
		} `json:"creator"`
		Meta struct {
			GithubCommitMessage string `json:"githubCommitMessage"`
		} `json:"meta"`
	} `json:"deployments"`
}

func (v *Vercel) Fetch(ctx context.Context) FetchResult {
	if v.cfg.Token == "" {
		return fail(v.Source(), "vercel token not configured")
	}

	url := fmt.Sprintf("%s/v6/deployments?limit=%d", v.baseURL, vercelDeploymentCap)
	if v.cfg.TeamID != "" {
		url += "&teamId=" + v.cfg.TeamID
	}
	header := http.Header{"Authorization": {"Bearer " + v.cfg.Token}}

	var raw vercelDeployments
	if err := getJSON(ctx, v.httpClient, url, header, &raw); err != nil {
		return fail(v.Source(), "vercel fetch: %v", err)
	}

	events := []model.PulseEvent{}
	for _, d := range raw.Deployments {
		var created time.Time
		if d.Created > 0 {
			created = time.UnixMilli(d.Created)
		}
		text := strings.TrimSpace(d.Name + " " + d.Meta.GithubCommitMessage)
		events = append(events, model.PulseEvent{
			Source:    v.Source(),
			Timestamp: timestampOr(created),
			Project:   v.classifier.Classify(text),
			Data:      model.NewDeployment(d.Name, d.State, d.URL, d.Creator.Username),
		})
	}

	return FetchResult{Source: v.Source(), Events: events}
}
