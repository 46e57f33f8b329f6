package model

import "time"

// Action is one concrete follow-up extracted from the event corpus.
type Action struct {
	Action   string `json:"action"`
	Owner    string `json:"owner,omitempty"`
	Priority string `json:"priority,omitempty"` // high | medium | low
	Timeline string `json:"timeline,omitempty"`
}

// ProjectReport groups highlights for one classified project.
type ProjectReport struct {
	Name       string   `json:"name"`
	Highlights []string `json:"highlights"`
	NextAction string   `json:"nextAction,omitempty"`
	Priority   string   `json:"priority,omitempty"` // high | medium | low
}

// PulseSummary is the terminal briefing artifact. TotalEvents and LastUpdated
// are always set by the pipeline, never taken from the generative service.
// The shape is identical for healthy, degraded and failed runs; failure shows
// up only as emptier lists and a non-empty Error.
type PulseSummary struct {
	Summary     string          `json:"summary"`
	Priorities  []string        `json:"priorities"`
	Risks       []string        `json:"risks"`
	Finance     []string        `json:"finance"`
	Meetings    []string        `json:"meetings"`
	Actions     []Action        `json:"actions"`
	ByProject   []ProjectReport `json:"byProject"`
	TotalEvents int             `json:"totalEvents"`
	LastUpdated time.Time       `json:"lastUpdated"`
	Error       string          `json:"error,omitempty"`
}

// EmptySummary returns a summary with every list field non-nil so the JSON
// encoding is [] rather than null.
func EmptySummary(text string) PulseSummary {
	return PulseSummary{
		Summary:     text,
		Priorities:  []string{},
		Risks:       []string{},
		Finance:     []string{},
		Meetings:    []string{},
		Actions:     []Action{},
		ByProject:   []ProjectReport{},
		LastUpdated: time.Now(),
	}
}

// Normalize replaces nil list fields with empty slices.
func (s *PulseSummary) Normalize() {
	if s.Priorities == nil {
		s.Priorities = []string{}
	}
	if s.Risks == nil {
		s.Risks = []string{}
	}
	if s.Finance == nil {
		s.Finance = []string{}
	}
	if s.Meetings == nil {
		s.Meetings = []string{}
	}
	if s.Actions == nil {
		s.Actions = []Action{}
	}
	if s.ByProject == nil {
		s.ByProject = []ProjectReport{}
	}
}
