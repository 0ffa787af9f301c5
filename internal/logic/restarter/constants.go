package restarter

const (
	StatusLineComplete     = "restart complete"
	StatusLineGateTimedOut = "warning: critical resource not ready within timeout"

	serviceName = "platform-restarter"
)
