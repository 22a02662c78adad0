// Package stats talks to the external hit counter that tracks event views.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"eventhub-backend/internal/domain"
	"eventhub-backend/internal/logger"

	"github.com/sendgrid/rest"
)

const timeLayout = "2006-01-02 15:04:05"

// Client records hits and reports per-URI view counts.
type Client interface {
	RecordHit(ctx context.Context, hit domain.Hit) error
	// GetViews returns unique-IP hit counts keyed by URI; URIs without hits are absent.
	GetViews(ctx context.Context, uris []string) (map[string]int64, error)
}

type client struct {
	baseURL string
	rest    *rest.Client
	now     func() time.Time
}

func NewClient(baseURL string, timeout time.Duration) Client {
	return &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		rest:    &rest.Client{HTTPClient: &http.Client{Timeout: timeout}},
		now:     time.Now,
	}
}

type hitBody struct {
	App       string `json:"app"`
	URI       string `json:"uri"`
	IP        string `json:"ip"`
	Timestamp string `json:"timestamp"`
}

type viewStats struct {
	App  string `json:"app"`
	URI  string `json:"uri"`
	Hits int64  `json:"hits"`
}

func (c *client) RecordHit(ctx context.Context, hit domain.Hit) error {
	logger.ExternalServiceCall("stats", "RecordHit", "uri", hit.URI, "ip", hit.IP)

	body, err := json.Marshal(hitBody{
		App:       hit.App,
		URI:       hit.URI,
		IP:        hit.IP,
		Timestamp: hit.Timestamp.Format(timeLayout),
	})
	if err != nil {
		return err
	}

	resp, err := c.rest.SendWithContext(ctx, rest.Request{
		Method:  rest.Post,
		BaseURL: c.baseURL + "/hit",
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    body,
	})
	if err == nil && resp.StatusCode >= 300 {
		err = fmt.Errorf("stats service returned status %d: %s", resp.StatusCode, resp.Body)
	}
	logger.ExternalServiceResult("stats", "RecordHit", err)
	return err
}

func (c *client) GetViews(ctx context.Context, uris []string) (map[string]int64, error) {
	views := make(map[string]int64, len(uris))
	if len(uris) == 0 {
		return views, nil
	}
	logger.ExternalServiceCall("stats", "GetViews", "uris", len(uris))

	resp, err := c.rest.SendWithContext(ctx, rest.Request{
		Method:  rest.Get,
		BaseURL: c.baseURL + "/stats",
		QueryParams: map[string]string{
			"start":  time.Unix(0, 0).UTC().Format(timeLayout),
			"end":    c.now().UTC().Format(timeLayout),
			"uris":   strings.Join(uris, ","),
			"unique": "true",
		},
	})
	if err == nil && resp.StatusCode >= 300 {
		err = fmt.Errorf("stats service returned status %d: %s", resp.StatusCode, resp.Body)
	}
	if err != nil {
		logger.ExternalServiceResult("stats", "GetViews", err)
		return nil, err
	}

	var out []viewStats
	if err := json.Unmarshal([]byte(resp.Body), &out); err != nil {
		logger.ExternalServiceResult("stats", "GetViews", err)
		return nil, fmt.Errorf("decode stats response: %w", err)
	}
	for _, s := range out {
		views[s.URI] += s.Hits
	}
	logger.ExternalServiceResult("stats", "GetViews", nil, "returned", len(out))
	return views, nil
}

// EventURI is the resource key hits are recorded under for one event.
func EventURI(eventID int64) string {
	return fmt.Sprintf("/events/%d", eventID)
}
