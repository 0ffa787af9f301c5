package shutdown

import (
	"context"
	"os"
)

// Shutdowner is a component stopped by GracefulShutdown.
type Shutdowner interface {
	Name() string
	Shutdown(ctx context.Context) error
}

// quiter exposes the termination signal channel created by Notify.
type quiter interface {
	Quit() <-chan os.Signal
}
