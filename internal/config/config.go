package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Default configuration values.
const (
	defaultListenAddr       = ":65000"
	defaultSocketPath       = "/var/run/peerd.sock"
	defaultHealthAddr       = ":8080"
	defaultLogLevel         = "info"
	defaultConcurrency      = 4
	defaultStopTimeoutSec   = 10
	defaultSchedulerRetries = 3
)

// Config contains the agent daemon configuration.
type Config struct {
	// gRPC transports
	ListenAddr string // network listener for inter-peer traffic
	SocketPath string // unix domain socket for same-host control

	// Data path where piece content and metadata are stored
	DataPath string

	// SchedulerAddr is the gRPC address of the central scheduler
	SchedulerAddr string

	// Health server
	HealthAddr string // HTTP health endpoint address (e.g., ":8080")

	LogLevel string

	// Download engine
	DownloadConcurrency int   // concurrent piece fetch batches per download
	DownloadRateLimit   int64 // max bytes/sec pulled from a parent (0 = unlimited)

	// Shutdown
	StopTimeout time.Duration // graceful drain budget per transport
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return errors.New("data path is required")
	}
	if c.ListenAddr == "" {
		return errors.New("listen address is required")
	}
	if c.SocketPath == "" {
		return errors.New("socket path is required")
	}
	if c.SchedulerAddr == "" {
		return errors.New("scheduler address is required")
	}
	if c.DownloadConcurrency <= 0 {
		return errors.New("download concurrency must be positive")
	}
	if c.DownloadRateLimit < 0 {
		return errors.New("download rate limit cannot be negative")
	}
	if c.StopTimeout < 0 {
		return errors.New("stop timeout cannot be negative")
	}
	return nil
}

// SetupFlags sets up flags for the daemon command.
func SetupFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.String("listen", defaultListenAddr, "gRPC listen address for inter-peer traffic")
	flags.String("socket", defaultSocketPath, "Unix domain socket path for same-host control")
	flags.String("data", "", "Data directory path where piece content is stored")
	flags.String("scheduler-addr", "", "Scheduler gRPC address (e.g., scheduler:8002)")
	flags.String("health-addr", defaultHealthAddr, "HTTP health endpoint address (empty to disable)")
	flags.String("log-level", defaultLogLevel, "Log level (debug, info, warn, error)")
	flags.Int("download-concurrency", defaultConcurrency, "Concurrent piece fetch batches per download")
	flags.Int64("download-rate-limit", 0, "Max bytes/sec pulled from a parent peer (0 = unlimited)")
	flags.Int("stop-timeout", defaultStopTimeoutSec, "Graceful drain budget per transport in seconds")
}

// BindFlags binds daemon command flags to viper.
func BindFlags(cmd *cobra.Command, v *viper.Viper) error {
	v.SetEnvPrefix("PEERD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flags := []string{
		"listen", "socket", "data", "scheduler-addr",
		"health-addr", "log-level",
		"download-concurrency", "download-rate-limit", "stop-timeout",
	}

	for _, flag := range flags {
		if err := v.BindPFlag(flag, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}

	return nil
}

// Load loads the daemon configuration from viper.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		ListenAddr:          v.GetString("listen"),
		SocketPath:          v.GetString("socket"),
		DataPath:            v.GetString("data"),
		SchedulerAddr:       v.GetString("scheduler-addr"),
		HealthAddr:          v.GetString("health-addr"),
		LogLevel:            v.GetString("log-level"),
		DownloadConcurrency: v.GetInt("download-concurrency"),
		DownloadRateLimit:   v.GetInt64("download-rate-limit"),
		StopTimeout:         time.Duration(v.GetInt("stop-timeout")) * time.Second,
	}

	// Support conventional env vars as fallbacks
	if cfg.ListenAddr == defaultListenAddr {
		cfg.ListenAddr = getEnvWithFallbacks(cfg.ListenAddr, "GRPC_PORT", "PORT")
	}
	if cfg.HealthAddr == defaultHealthAddr {
		cfg.HealthAddr = getEnvWithFallbacks(cfg.HealthAddr, "HTTP_PORT", "HEALTH_PORT")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvWithFallbacks returns the first non-empty env var value, or the default.
// For port-only values (e.g., "8080"), it prepends ":" to make a valid address.
func getEnvWithFallbacks(defaultVal string, envVars ...string) string {
	for _, env := range envVars {
		if val := os.Getenv(env); val != "" {
			// If it's just a port number, prepend ":"
			if !strings.Contains(val, ":") {
				val = ":" + val
			}
			return val
		}
	}
	return defaultVal
}
