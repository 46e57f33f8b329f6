package collector

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pulsedesk/pulse/internal/config"
	"github.com/pulsedesk/pulse/internal/pulse/classify"
	"github.com/pulsedesk/pulse/internal/pulse/model"
)

const (
	githubCommitCap = 30
	githubRepoCap   = 10
)

// GitHub collects recent repository activity: pushed commits plus coarse
// repo-level updates (creates, releases, pull requests).
type GitHub struct {
	cfg        config.GitHubConfig
	classifier *classify.Classifier
	httpClient *http.Client
	baseURL    string
}

func NewGitHub(cfg config.GitHubConfig, cls *classify.Classifier) *GitHub {
	return &GitHub{
		cfg:        cfg,
		classifier: cls,
		httpClient: newHTTPClient(),
		baseURL:    "https://api.github.com",
	}
}

func (g *GitHub) Source() model.Source { return model.SourceGitHub }

type ghEvent struct {
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Repo      struct {
		Name string `json:"name"`
	} `json:"repo"`
	Payload struct {
		Action  string `json:"action"`
		RefType string `json:"ref_type"`
		Commits []struct {
			Message string `json:"message"`
			Author  struct {
				Name string `json:"name"`
			} `json:"author"`
		} `json:"commits"`
	} `json:"payload"`
}

func (g *GitHub) Fetch(ctx context.Context) FetchResult {
	if g.cfg.Token == "" || g.cfg.User == "" {
		return fail(g.Source(), "github credentials not configured")
	}

	url := fmt.Sprintf("%s/users/%s/events?per_page=30", g.baseURL, g.cfg.User)
	header := http.Header{
		"Authorization": {"Bearer " + g.cfg.Token},
		"Accept":        {"application/vnd.github+json"},
	}

	var raw []ghEvent
	if err := getJSON(ctx, g.httpClient, url, header, &raw); err != nil {
		return fail(g.Source(), "github fetch: %v", err)
	}

	events := []model.PulseEvent{}
	commits, repos := 0, 0
	for _, ev := range raw {
		ts := timestampOr(ev.CreatedAt)
		switch ev.Type {
		case "PushEvent":
			for _, c := range ev.Payload.Commits {
				if commits >= githubCommitCap {
					break
				}
				events = append(events, model.PulseEvent{
					Source:    g.Source(),
					Timestamp: ts,
					Project:   g.classifier.Classify(c.Message),
					Data:      model.NewCommit(ev.Repo.Name, c.Message, c.Author.Name),
				})
				commits++
			}
		case "CreateEvent", "ReleaseEvent", "PullRequestEvent":
			if repos >= githubRepoCap {
				continue
			}
			action := ev.Payload.Action
			if action == "" {
				action = ev.Type
			}
			events = append(events, model.PulseEvent{
				Source:    g.Source(),
				Timestamp: ts,
				Project:   g.classifier.Classify(ev.Repo.Name),
				Data:      model.NewRepoUpdate(ev.Repo.Name, action),
			})
			repos++
		}
	}

	return FetchResult{Source: g.Source(), Events: events}
}
