package shutdown_test

import (
	"context"
	"log/slog"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skillcoder/platform-restarter/internal/infra/shutdown"
	"github.com/skillcoder/platform-restarter/internal/infra/shutdown/mocks"
)

type signalSource chan os.Signal

func (s signalSource) Quit() <-chan os.Signal {
	return s
}

func TestHandler_HandleSignals(t *testing.T) {
	t.Parallel()

	logger := slog.Default()

	t.Run("signal cancels context", func(t *testing.T) {
		t.Parallel()

		signals := make(signalSource, 1)
		signals <- syscall.SIGTERM

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		shutdown.New(logger, signals).HandleSignals(ctx, cancel)

		require.ErrorIs(t, ctx.Err(), context.Canceled)
	})

	t.Run("context done returns without signal", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		done := make(chan struct{})

		go func() {
			shutdown.New(logger, make(signalSource)).HandleSignals(ctx, func() {})
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("signal handler did not return")
		}
	})
}

func TestGracefulShutdown(t *testing.T) {
	t.Parallel()

	logger := slog.Default()

	t.Run("empty list returns nil", func(t *testing.T) {
		t.Parallel()

		err := shutdown.GracefulShutdown(t.Context(), logger, nil)
		require.NoError(t, err)
	})

	t.Run("one shutdowner success returns nil", func(t *testing.T) {
		t.Parallel()

		m := mocks.NewMockShutdowner(t)
		m.EXPECT().Name().Return("test").Once()
		m.EXPECT().Shutdown(mock.Anything).Return(nil).Once()

		err := shutdown.GracefulShutdown(t.Context(), logger, []shutdown.Shutdowner{m})
		require.NoError(t, err)
	})

	t.Run("one shutdowner error returns error", func(t *testing.T) {
		t.Parallel()

		m := mocks.NewMockShutdowner(t)
		m.EXPECT().Name().Return("test").Once()
		m.EXPECT().Shutdown(mock.Anything).Return(context.DeadlineExceeded).Once()

		err := shutdown.GracefulShutdown(t.Context(), logger, []shutdown.Shutdowner{m})
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("multiple shutdowners called in reverse order", func(t *testing.T) {
		t.Parallel()

		var order []string

		first := mocks.NewMockShutdowner(t)
		first.EXPECT().Name().Return("first").Once()
		first.EXPECT().Shutdown(mock.Anything).Run(func(context.Context) {
			order = append(order, "first")
		}).Return(nil).Once()

		second := mocks.NewMockShutdowner(t)
		second.EXPECT().Name().Return("second").Once()
		second.EXPECT().Shutdown(mock.Anything).Run(func(context.Context) {
			order = append(order, "second")
		}).Return(nil).Once()

		err := shutdown.GracefulShutdown(t.Context(), logger, []shutdown.Shutdowner{first, second})
		require.NoError(t, err)
		require.Equal(t, []string{"second", "first"}, order)
	})

	t.Run("cancelled origin context still shuts down", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		m := mocks.NewMockShutdowner(t)
		m.EXPECT().Name().Return("test").Once()
		m.EXPECT().Shutdown(mock.Anything).RunAndReturn(func(ctx context.Context) error {
			return ctx.Err()
		}).Once()

		require.NoError(t, shutdown.GracefulShutdown(ctx, logger, []shutdown.Shutdowner{m}))
	})
}
