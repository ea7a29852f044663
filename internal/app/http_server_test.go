package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toggl-reports/internal/adapter/store"
	"toggl-reports/internal/domain"
	"toggl-reports/internal/render"
	"toggl-reports/internal/usecase"
)

type fakeToggl struct {
	entries []domain.TimeEntry
}

func (f *fakeToggl) FetchEntries(context.Context, domain.Period) ([]domain.TimeEntry, error) {
	return f.entries, nil
}

func (f *fakeToggl) ListProjects(context.Context) ([]domain.Project, error) {
	return nil, nil
}

func testApp(t *testing.T) *App {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &App{
		log: log,
		loc: time.UTC,
		uc: &usecase.ReportUseCase{
			Log:      log,
			Toggl:    &fakeToggl{},
			Renderer: render.NewRenderer("ACME", "jdoe"),
			Store:    store.New(t.TempDir(), "ACME", "jdoe", log),
		},
	}
}

func TestHTTPServer_Healthz(t *testing.T) {
	srv := testApp(t).HTTPServer(":0")

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestHTTPServer_GenerateOK(t *testing.T) {
	srv := testApp(t).HTTPServer(":0")

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/generate?month=6&year=2023", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "2023-06", body["period"])
	assert.EqualValues(t, 0, body["entries"])
	assert.EqualValues(t, 0, body["warnings"])
	assert.Len(t, body["artifacts"], 3)
}

func TestHTTPServer_GenerateBadPeriod(t *testing.T) {
	srv := testApp(t).HTTPServer(":0")

	cases := []struct {
		name  string
		query string
	}{
		{name: "month without year", query: "?month=6"},
		{name: "unparsable month", query: "?month=abc&year=2023"},
		{name: "month out of range", query: "?month=13&year=2023"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/generate"+tc.query, nil))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "error", body["status"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHTTPServer_GenerateMethodNotAllowed(t *testing.T) {
	srv := testApp(t).HTTPServer(":0")

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/generate", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestResolvePeriod(t *testing.T) {
	now := time.Date(2023, time.July, 10, 12, 0, 0, 0, time.UTC)

	t.Run("defaults to previous month", func(t *testing.T) {
		p, err := resolvePeriod("", "", now, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, 2023, p.Year)
		assert.Equal(t, time.June, p.Month)
	})

	t.Run("explicit month and year", func(t *testing.T) {
		p, err := resolvePeriod("2", "2024", now, time.UTC)
		require.NoError(t, err)
		assert.Equal(t, 2024, p.Year)
		assert.Equal(t, time.February, p.Month)
	})

	t.Run("year without month", func(t *testing.T) {
		_, err := resolvePeriod("", "2024", now, time.UTC)
		assert.ErrorContains(t, err, "given together")
	})

	t.Run("out of range month", func(t *testing.T) {
		_, err := resolvePeriod("0", "2024", now, time.UTC)
		assert.ErrorIs(t, err, domain.ErrInvalidMonth)
	})
}
