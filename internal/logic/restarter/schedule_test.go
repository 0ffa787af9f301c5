package restarter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/platform-restarter/internal/logic/restarter"
)

// hourlyScheduler fires one hour after the given time.
type hourlyScheduler struct {
	err error
}

func (s hourlyScheduler) NextAfter(_, _ string, after time.Time) (time.Time, error) {
	if s.err != nil {
		return time.Time{}, s.err
	}

	return after.Add(time.Hour), nil
}

func TestService_StartSchedule(t *testing.T) {
	t.Parallel()

	t.Run("malformed schedule fails fast", func(t *testing.T) {
		t.Parallel()

		h := newHarness(newScenarioTopology(), defaultConfig())

		err := h.svc.StartSchedule(t.Context(), hourlyScheduler{err: errors.New("bad spec")}, "x", "")
		require.Error(t, err)
		require.NoError(t, h.svc.Shutdown(t.Context()))
	})

	t.Run("runs at each occurrence until cancelled", func(t *testing.T) {
		t.Parallel()

		h := newHarness(newScenarioTopology(), defaultConfig())
		h.cluster.readyAfter[refX] = 0

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		require.NoError(t, h.svc.StartSchedule(ctx, hourlyScheduler{}, "0 * * * *", ""))

		select {
		case <-h.svc.Ready():
		case <-time.After(2 * time.Second):
			t.Fatal("schedule loop did not start")
		}

		require.Eventually(t, h.clock.HasWaiters, 2*time.Second, time.Millisecond)
		require.Equal(t, 0, h.cluster.pings)

		h.clock.Step(time.Hour)

		select {
		case report := <-h.progress.complete:
			require.True(t, report.AllSucceeded())
		case <-time.After(2 * time.Second):
			t.Fatal("scheduled run did not complete")
		}

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer shutdownCancel()

		require.NoError(t, h.svc.Shutdown(shutdownCtx))
	})
}

func TestService_Name(t *testing.T) {
	t.Parallel()

	h := newHarness(newScenarioTopology(), restarter.Config{})
	require.Equal(t, "platform-restarter", h.svc.Name())
}
