package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"toggl-reports/internal/domain"
)

// HTTPServer returns a configured http.Server that exposes endpoints to
// trigger report runs. Call ListenAndServe on the returned server in a
// goroutine and Shutdown it on exit.
func (a *App) HTTPServer(addr string) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// /generate?month=6&year=2023
	// month/year must be given together; with neither, the previous
	// calendar month is reported.
	mux.HandleFunc("/generate", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		q := r.URL.Query()
		period, err := resolvePeriod(q.Get("month"), q.Get("year"), time.Now(), a.loc)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"status": "error",
				"error":  err.Error(),
			})
			return
		}

		// Optional timeout override: ?timeout=5m
		ctx := r.Context()
		if tStr := q.Get("timeout"); tStr != "" {
			if d, err := time.ParseDuration(tStr); err == nil && d > 0 {
				var cancel func()
				ctx, cancel = context.WithTimeout(ctx, d)
				defer cancel()
			}
		}

		res, err := a.GenerateOnce(ctx, period)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"status": "error",
				"error":  err.Error(),
				"period": period.String(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":    "ok",
			"period":    period.String(),
			"entries":   res.EntryCount,
			"warnings":  res.Findings.Count(),
			"artifacts": res.Artifacts,
		})
	})

	srv := &http.Server{Addr: addr, Handler: loggingMiddleware(a.log, mux)}
	a.log.Info("http trigger server configured", slog.String("addr", addr))
	return srv
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// loggingMiddleware provides basic request logging.
func loggingMiddleware(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
			slog.Duration("dur", time.Since(start)),
		)
	})
}

// resolvePeriod turns month/year query values into a reporting period.
// Empty values mean the month before now in loc.
func resolvePeriod(monthStr, yearStr string, now time.Time, loc *time.Location) (domain.Period, error) {
	if monthStr == "" && yearStr == "" {
		return domain.PreviousMonth(now, loc), nil
	}
	if monthStr == "" || yearStr == "" {
		return domain.Period{}, errors.New("month and year must be given together")
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return domain.Period{}, fmt.Errorf("invalid month %q", monthStr)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return domain.Period{}, fmt.Errorf("invalid year %q", yearStr)
	}
	return domain.NewPeriod(year, month, loc)
}
