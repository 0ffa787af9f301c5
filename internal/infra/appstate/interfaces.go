package appstate

import (
	"github.com/skillcoder/platform-restarter/internal/infra/pinger"
)

// pingerServer is an internal interface for pinger management
type pingerServer interface {
	Register(pinger pinger.Pinger) error
	GetAllStats() map[string]pinger.Statistics
	Healthy() bool
}
