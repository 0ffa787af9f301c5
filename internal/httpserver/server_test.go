package httpserver_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/skillcoder/platform-restarter/internal/httpserver"
	"github.com/skillcoder/platform-restarter/internal/infra/appstate"
	"github.com/skillcoder/platform-restarter/internal/infra/pinger"
	"github.com/skillcoder/platform-restarter/internal/logic/restarter"
)

func newAppState() *appstate.AppState {
	logger := slog.Default()
	pingerSvc := pinger.New(logger, clocktesting.NewFakeClock(time.Now()), time.Minute, 0)

	return appstate.New(logger, time.Now(), make(chan os.Signal, 1), pingerSvc)
}

func TestServer_Name(t *testing.T) {
	t.Parallel()

	srv := httpserver.New(slog.Default(), newAppState(), "")
	require.Equal(t, "http-server", srv.Name())

	metricsSrv := httpserver.NewMetricsServer(slog.Default(), "")
	require.Equal(t, "metrics-server", metricsSrv.Name())
}

func TestServer_Ping(t *testing.T) {
	t.Parallel()

	t.Run("before ready returns error", func(t *testing.T) {
		t.Parallel()

		srv := httpserver.New(slog.Default(), newAppState(), "")
		require.ErrorIs(t, srv.Ping(t.Context()), httpserver.ErrNotReady)
	})

	t.Run("after ready returns nil", func(t *testing.T) {
		t.Parallel()

		srv := httpserver.New(slog.Default(), newAppState(), "0")

		ctx, cancel := context.WithTimeout(t.Context(), 2*time.Second)
		defer cancel()

		require.NoError(t, srv.Start(ctx))

		select {
		case <-srv.Ready():
		case <-time.After(time.Second):
			t.Fatal("server did not become ready")
		}

		require.NoError(t, srv.Ping(t.Context()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer shutdownCancel()

		require.NoError(t, srv.Shutdown(shutdownCtx))
		// second shutdown is a no-op
		require.NoError(t, srv.Shutdown(shutdownCtx))
	})

	t.Run("metrics server", func(t *testing.T) {
		t.Parallel()

		srv := httpserver.NewMetricsServer(slog.Default(), "0")
		require.ErrorIs(t, srv.Ping(t.Context()), httpserver.ErrNotReady)

		require.NoError(t, srv.Start(t.Context()))
		<-srv.Ready()
		require.NoError(t, srv.Ping(t.Context()))

		require.NoError(t, srv.Shutdown(context.Background()))
	})
}

func TestServer_HealthEndpoints(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	appState := newAppState()
	handler := httpserver.New(slog.Default(), appState, "").Handler()

	get := func(path string) int {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		return rec.Code
	}

	require.Equal(t, http.StatusServiceUnavailable, get("/-/healthz"))
	require.Equal(t, http.StatusServiceUnavailable, get("/-/readyz"))

	require.NoError(t, appState.SetStarting(ctx))
	require.Equal(t, http.StatusServiceUnavailable, get("/-/readyz"))

	require.NoError(t, appState.SetRunning(ctx))
	require.Equal(t, http.StatusOK, get("/-/healthz"))
	require.Equal(t, http.StatusOK, get("/-/readyz"))

	require.NoError(t, appState.SetTerminating(ctx))
	require.Equal(t, http.StatusServiceUnavailable, get("/-/healthz"))
	require.Equal(t, http.StatusServiceUnavailable, get("/-/readyz"))

	require.Equal(t, http.StatusMethodNotAllowed, func() int {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/-/healthz", nil))

		return rec.Code
	}())
}

func TestServer_Status(t *testing.T) {
	t.Parallel()

	ctx := t.Context()
	appState := newAppState()
	require.NoError(t, appState.SetStarting(ctx))
	require.NoError(t, appState.SetRunning(ctx))

	appState.StateChanged(ctx, "5f0c9a1e-run", restarter.State{Stage: restarter.StageInit})
	appState.StateChanged(ctx, "5f0c9a1e-run", restarter.State{Stage: restarter.StageSettle})

	handler := httpserver.New(slog.Default(), appState, "").Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/-/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		State string `json:"state"`
		Run   struct {
			Active bool   `json:"active"`
			RunID  string `json:"runId"`
			Stage  string `json:"stage"`
		} `json:"run"`
	}

	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "running", body.State)
	require.True(t, body.Run.Active)
	require.Equal(t, "5f0c9a1e-run", body.Run.RunID)
	require.Equal(t, "Settle", body.Run.Stage)
}
