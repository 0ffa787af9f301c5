package pinger

import "time"

// Statistics is a snapshot of one pinger's results.
type Statistics struct {
	Healthy             bool          `json:"healthy"`
	LastRun             time.Time     `json:"lastRun"`
	LastLatency         time.Duration `json:"lastLatency"`
	LastError           string        `json:"lastError,omitempty"`
	Successes           int           `json:"successes"`
	Failures            int           `json:"failures"`
	ConsecutiveFailures int           `json:"consecutiveFailures"`
}

func (s *Statistics) record(at time.Time, latency time.Duration, err error, failureThreshold int) {
	s.LastRun = at
	s.LastLatency = latency

	if err != nil {
		s.Failures++
		s.ConsecutiveFailures++
		s.LastError = err.Error()
	} else {
		s.Successes++
		s.ConsecutiveFailures = 0
		s.LastError = ""
	}

	s.Healthy = s.ConsecutiveFailures < failureThreshold
}
