package pinger

import "context"

// Pinger is a dependency checked periodically between restarts.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}
