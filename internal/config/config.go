package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/skillcoder/platform-restarter/internal/logic/restarter"
)

var ErrInvalidValue = errors.New("invalid config value")

type Config struct {
	KubeConfig   string
	KubeMaster   string
	LogLevel     string
	LogFormat    string
	HTTPPort     string
	MetricsPort  string
	TopologyFile string

	SettleInterval      time.Duration
	FinalSettleInterval time.Duration
	// GateTimeout and GatePollInterval override the topology when non-zero.
	GateTimeout      time.Duration
	GatePollInterval time.Duration
	CommandTimeout   time.Duration
	MaxParallel      int
	RestoreOrder     restarter.Order
	DryRun           bool

	Schedule   string
	ScheduleTZ string
}

func Load() (*Config, error) {
	cfg := &Config{
		KubeConfig:   getEnvWithFallback(envKeyKubeConfig, envKeyKubeConfigFallback),
		KubeMaster:   getEnvWithFallback(envKeyKubeMaster, envKeyKubeMasterFallback),
		LogLevel:     getEnvOrDefault(envKeyLogLevel, "info"),
		LogFormat:    getEnvOrDefault(envKeyLogFormat, "json"),
		HTTPPort:     os.Getenv(envKeyHTTPPort),
		MetricsPort:  os.Getenv(envKeyMetricsPort),
		TopologyFile: os.Getenv(envKeyTopologyFile),
		Schedule:     os.Getenv(envKeySchedule),
		ScheduleTZ:   os.Getenv(envKeyScheduleTZ),
	}

	var err error

	cfg.SettleInterval, err = parseDuration(envKeySettleInterval, "30s", 0)
	if err != nil {
		return nil, err
	}

	cfg.FinalSettleInterval, err = parseDuration(envKeyFinalSettleInterval, "10s", 0)
	if err != nil {
		return nil, err
	}

	cfg.GateTimeout, err = parseOptionalDuration(envKeyGateTimeout, envMinGateTimeout)
	if err != nil {
		return nil, err
	}

	cfg.GatePollInterval, err = parseOptionalDuration(envKeyGatePollInterval, envMinGatePollInterval)
	if err != nil {
		return nil, err
	}

	cfg.CommandTimeout, err = parseDuration(envKeyCommandTimeout, "30s", envMinCommandTimeout)
	if err != nil {
		return nil, err
	}

	cfg.MaxParallel, err = parseNonNegativeInt(envKeyMaxParallel, "0")
	if err != nil {
		return nil, err
	}

	cfg.RestoreOrder, err = restarter.ParseOrder(getEnvOrDefault(envKeyRestoreOrder, string(restarter.OrderDeclared)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidValue, envKeyRestoreOrder, err)
	}

	cfg.DryRun, err = parseBool(envKeyDryRun)
	if err != nil {
		return nil, err
	}

	if cfg.ScheduleTZ != "" {
		if _, err := time.LoadLocation(cfg.ScheduleTZ); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidValue, envKeyScheduleTZ, err)
		}
	}

	if cfg.Scheduled() && cfg.HTTPPort == "" {
		cfg.HTTPPort = DefaultScheduleHTTPPort
	}

	return cfg, nil
}

// Scheduled reports whether the process runs restarts on a cron schedule.
func (c *Config) Scheduled() bool {
	return c.Schedule != ""
}

func parseDuration(key, defaultValue string, minValue time.Duration) (time.Duration, error) {
	raw := getEnvOrDefault(key, defaultValue)

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: parse %s: %w", ErrInvalidValue, key, err)
	}

	if d < minValue || d < 0 {
		return 0, fmt.Errorf("%w: %s must be at least %s, got %s", ErrInvalidValue, key, minValue, d)
	}

	return d, nil
}

func parseOptionalDuration(key string, minValue time.Duration) (time.Duration, error) {
	if os.Getenv(key) == "" {
		return 0, nil
	}

	return parseDuration(key, "", minValue)
}

func parseNonNegativeInt(key, defaultValue string) (int, error) {
	n, err := strconv.Atoi(getEnvOrDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("%w: parse %s: %w", ErrInvalidValue, key, err)
	}

	if n < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidValue, key, n)
	}

	return n, nil
}

func parseBool(key string) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: parse %s: %w", ErrInvalidValue, key, err)
	}

	return b, nil
}

func getEnvWithFallback(key, fallbackKey string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return os.Getenv(fallbackKey)
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}
