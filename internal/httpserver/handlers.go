package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/skillcoder/platform-restarter/internal/infra/appstate"
	"github.com/skillcoder/platform-restarter/internal/infra/pinger"
)

type statusResponse struct {
	State     string                       `json:"state"`
	Uptime    string                       `json:"uptime"`
	StartTime time.Time                    `json:"startTime"`
	UptimeSec float64                      `json:"uptimeSeconds"`
	Run       appstate.RunStatus           `json:"run"`
	Pingers   map[string]pinger.Statistics `json:"pingers,omitempty"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	if !s.appState.IsHealthy() {
		w.WriteHeader(http.StatusServiceUnavailable)

		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleReadyz(w http.ResponseWriter, _ *http.Request) {
	if !s.appState.IsReady() {
		w.WriteHeader(http.StatusServiceUnavailable)

		return
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uptime := s.appState.GetUptime()

	response := statusResponse{
		State:     string(s.appState.GetState()),
		Uptime:    uptime.String(),
		StartTime: s.appState.GetStartTime(),
		UptimeSec: uptime.Seconds(),
		Run:       s.appState.GetRunStatus(),
		Pingers:   s.appState.GetAllStats(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.ErrorContext(ctx, "failed to encode status response",
			"reason", err,
		)
	}
}
