package toggl

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"toggl-reports/internal/domain"
)

// Client implements ports.TogglClient against the Toggl HTTP APIs: the
// Reports API v3 for a period's entries and the Track API v9 for projects.
type Client struct {
	baseURL   string
	apiToken  string
	http      *http.Client
	workspace int64
	log       *slog.Logger
}

func NewClient(baseURL, apiToken string, workspaceID int64, log *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://api.track.toggl.com"
	}
	return &Client{
		baseURL:   baseURL,
		apiToken:  apiToken,
		workspace: workspaceID,
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// FetchEntries fetches the period's entries.
// Reports v3: POST /reports/api/v3/workspace/{wid}/search/time_entries with
// inclusive start/end dates in the body. The response groups spans under
// (project, description) rows; they are flattened here. Entries starting
// outside the period are dropped, since the engine expects the fetch
// boundary to enforce period membership.
func (c *Client) FetchEntries(ctx context.Context, period domain.Period) ([]domain.TimeEntry, error) {
	if c.apiToken == "" {
		return nil, errors.New("missing api token")
	}
	if c.workspace == 0 {
		return nil, errors.New("missing workspace id")
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	u.Path = fmt.Sprintf("/reports/api/v3/workspace/%d/search/time_entries", c.workspace)

	body, err := json.Marshal(searchRequest{
		StartDate: period.Start.Format("2006-01-02"),
		EndDate:   period.LastDay().Format("2006-01-02"),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.authorize(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("toggl: unexpected status %d: %s", resp.StatusCode, string(b))
	}

	dec := json.NewDecoder(resp.Body)
	var raw []rawSearchRow
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	out := make([]domain.TimeEntry, 0, len(raw))
	dropped := 0
	for _, row := range raw {
		var projectPtr *int64
		if row.ProjectID != nil {
			p := *row.ProjectID
			projectPtr = &p
		}
		for _, span := range row.TimeEntries {
			if !period.Contains(span.Start) {
				dropped++
				continue
			}
			out = append(out, domain.TimeEntry{
				Description: row.Description,
				ProjectID:   projectPtr,
				Start:       span.Start,
				Stop:        span.Stop,
			})
		}
	}
	if dropped > 0 {
		c.log.Warn("dropped entries starting outside the period",
			slog.Int("count", dropped),
			slog.String("period", period.String()),
		)
	}
	return out, nil
}

// ListProjects fetches the workspace's projects.
// Track v9: GET /api/v9/workspaces/{wid}/projects
func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	if c.apiToken == "" {
		return nil, errors.New("missing api token")
	}
	if c.workspace == 0 {
		return nil, errors.New("missing workspace id")
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	u.Path = fmt.Sprintf("/api/v9/workspaces/%d/projects", c.workspace)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("toggl: unexpected status %d: %s", resp.StatusCode, string(b))
	}

	dec := json.NewDecoder(resp.Body)
	var raw []rawProject
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	out := make([]domain.Project, 0, len(raw))
	for _, p := range raw {
		out = append(out, domain.Project{
			ID:          p.ID,
			WorkspaceID: p.WorkspaceID,
			Name:        p.Name,
			Active:      p.Active,
		})
	}
	return out, nil
}

// authorize sets Basic auth in Toggl's token:api_token form.
func (c *Client) authorize(req *http.Request) {
	auth := base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("%s:%s", c.apiToken, "api_token")))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Accept", "application/json")
}

// searchRequest is the Reports API body. Both dates are inclusive.
type searchRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// rawSearchRow mirrors one Reports API v3 search result: spans sharing a
// project and description. Seconds is on the wire but durations are always
// derived from start/stop.
type rawSearchRow struct {
	ProjectID   *int64    `json:"project_id"`
	Description string    `json:"description"`
	TimeEntries []rawSpan `json:"time_entries"`
}

type rawSpan struct {
	Start   time.Time `json:"start"`
	Stop    time.Time `json:"stop"`
	Seconds int64     `json:"seconds"`
}

type rawProject struct {
	ID          int64  `json:"id"`
	WorkspaceID int64  `json:"workspace_id"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
}
