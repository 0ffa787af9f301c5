package config

import "time"

// Env key constants. All restarter configuration env vars use RESTARTER_ prefix;
// duration values support explicit units (e.g. 5m, 40s, 2h).

// Path to kubeconfig file. If unset, KUBECONFIG is used as fallback.
const envKeyKubeConfig = "RESTARTER_KUBECONFIG"

// Kubernetes API server URL. If unset, KUBERNETES_MASTER is used as fallback.
const envKeyKubeMaster = "RESTARTER_KUBE_MASTER"

// Log level: debug, info, warn, error.
const envKeyLogLevel = "RESTARTER_LOG_LEVEL"

// Log format: json or text.
const envKeyLogFormat = "RESTARTER_LOG_FORMAT"

// Port for health/readiness/status HTTP server. Empty disables it for a single run.
const (
	envKeyHTTPPort          = "RESTARTER_HTTP_PORT"
	DefaultScheduleHTTPPort = "8080"
)

// Port for Prometheus metrics (GET /metrics). Empty disables it.
const envKeyMetricsPort = "RESTARTER_METRICS_PORT"

// Path to the YAML topology declaration. Empty uses the embedded platform topology.
const envKeyTopologyFile = "RESTARTER_TOPOLOGY_FILE"

// Wait after all tiers are scaled down. Units: s, m, h (e.g. 30s).
const envKeySettleInterval = "RESTARTER_SETTLE_INTERVAL"

// Wait after the critical gate resolved. Units: s, m, h (e.g. 10s).
const envKeyFinalSettleInterval = "RESTARTER_FINAL_SETTLE_INTERVAL"

// Critical gate timeout; unset keeps the topology value. Units: s, m, h (e.g. 5m).
const (
	envKeyGateTimeout = "RESTARTER_GATE_TIMEOUT"
	envMinGateTimeout = time.Second
)

// Critical gate poll interval; unset keeps the topology value. Units: ms, s (e.g. 5s).
const (
	envKeyGatePollInterval = "RESTARTER_GATE_POLL_INTERVAL"
	envMinGatePollInterval = 100 * time.Millisecond
)

// Upper bound of a single cluster call. Units: s, m (e.g. 30s).
const (
	envKeyCommandTimeout = "RESTARTER_COMMAND_TIMEOUT"
	envMinCommandTimeout = time.Second
)

// Concurrent scale commands per tier; 0 is unlimited.
const envKeyMaxParallel = "RESTARTER_MAX_PARALLEL"

// Tier order of the scale-up pass: declared or reversed.
const envKeyRestoreOrder = "RESTARTER_RESTORE_ORDER"

// Log and report every action without changing any workload.
const envKeyDryRun = "RESTARTER_DRY_RUN"

// Cron expression; when set the process stays up and restarts at every occurrence.
const envKeySchedule = "RESTARTER_SCHEDULE"

// IANA timezone of the schedule (e.g. Europe/Berlin). Empty is UTC.
const envKeyScheduleTZ = "RESTARTER_SCHEDULE_TZ"

// Standard k8s env keys used as fallback when RESTARTER_* are unset.
const (
	envKeyKubeConfigFallback = "KUBECONFIG"
	envKeyKubeMasterFallback = "KUBERNETES_MASTER"
)
