package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pulsedesk/pulse/internal/pulse/model"
)

// FetchResult is what a collector hands the aggregator. All failure (missing
// credentials, network errors, non-2xx responses) is captured in Err with
// Events left empty; a collector never returns a Go error and never panics
// by contract.
type FetchResult struct {
	Source model.Source       `json:"source"`
	Events []model.PulseEvent `json:"events"`
	// Err is non-empty when the fetch degraded. Events may still hold a
	// partial result (one of two endpoints succeeded).
	Err string `json:"error,omitempty"`
}

// Collector fetches a bounded recent window from one external service and
// maps it into pre-classified canonical events.
type Collector interface {
	Source() model.Source
	Fetch(ctx context.Context) FetchResult
}

func fail(src model.Source, format string, args ...any) FetchResult {
	return FetchResult{Source: src, Events: []model.PulseEvent{}, Err: fmt.Sprintf(format, args...)}
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// getJSON performs an authenticated GET and decodes the JSON body into v.
func getJSON(ctx context.Context, client *http.Client, url string, header http.Header, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	for k, vals := range header {
		for _, val := range vals {
			req.Header.Add(k, val)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// timestampOr interprets a possibly-zero time, defaulting to now. A missing
// source timestamp never drops the field.
func timestampOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
