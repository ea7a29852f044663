package toggl

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toggl-reports/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func june2023(t *testing.T) domain.Period {
	t.Helper()
	p, err := domain.NewPeriod(2023, 6, time.UTC)
	require.NoError(t, err)
	return p
}

const searchFixture = `[
  {"project_id": 7, "description": "Dev work", "time_entries": [
    {"start": "2023-06-05T09:00:00Z", "stop": "2023-06-05T10:30:00Z", "seconds": 5400},
    {"start": "2023-06-06T14:00:00Z", "stop": "2023-06-06T15:00:00Z", "seconds": 3600}
  ]},
  {"project_id": null, "description": "Meeting", "time_entries": [
    {"start": "2023-05-31T23:00:00Z", "stop": "2023-06-01T00:30:00Z", "seconds": 5400},
    {"start": "2023-06-07T11:00:00Z", "stop": "2023-06-07T12:00:00Z", "seconds": 3600}
  ]}
]`

func TestFetchEntries_FlattensAndFilters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/reports/api/v3/workspace/123/search/time_entries", r.URL.Path)

		wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("token123:api_token"))
		assert.Equal(t, wantAuth, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "2023-06-01", body.StartDate)
		assert.Equal(t, "2023-06-30", body.EndDate, "end date is the inclusive last day")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchFixture))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token123", 123, discardLogger())

	entries, err := c.FetchEntries(context.Background(), june2023(t))

	require.NoError(t, err)
	require.Len(t, entries, 3, "the span starting before the period is dropped")

	assert.Equal(t, "Dev work", entries[0].Description)
	require.NotNil(t, entries[0].ProjectID)
	assert.Equal(t, int64(7), *entries[0].ProjectID)
	assert.Equal(t, time.Date(2023, time.June, 5, 9, 0, 0, 0, time.UTC), entries[0].Start)
	assert.Equal(t, 90*time.Minute, entries[0].Duration())

	assert.Equal(t, "Meeting", entries[2].Description)
	assert.Nil(t, entries[2].ProjectID)
}

func TestFetchEntries_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Incorrect username and/or password", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token123", 123, discardLogger())

	_, err := c.FetchEntries(context.Background(), june2023(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 403")
}

func TestFetchEntries_RequiresCredentials(t *testing.T) {
	c := NewClient("", "", 123, discardLogger())
	_, err := c.FetchEntries(context.Background(), june2023(t))
	require.EqualError(t, err, "missing api token")

	c = NewClient("", "token123", 0, discardLogger())
	_, err = c.FetchEntries(context.Background(), june2023(t))
	require.EqualError(t, err, "missing workspace id")
}

func TestListProjects_MapsProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v9/workspaces/123/projects", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": 7, "workspace_id": 123, "name": "Backend", "active": true},
			{"id": 8, "workspace_id": 123, "name": "Research", "active": false}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "token123", 123, discardLogger())

	projects, err := c.ListProjects(context.Background())

	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, domain.Project{ID: 7, WorkspaceID: 123, Name: "Backend", Active: true}, projects[0])
	assert.Equal(t, "Research", projects[1].Name)
}
