package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultIOSFeedURL     = "https://interview-marketing-eng-dev.s3.eu-west-1.amazonaws.com/ios.top100.json"
	defaultAndroidFeedURL = "https://interview-marketing-eng-dev.s3.eu-west-1.amazonaws.com/android.top100.json"
)

type Config struct {
	Environment   string
	Server        ServerConfig
	Database      DatabaseConfig
	Feeds         FeedsConfig
	Populate      PopulateConfig
	Logging       LoggingConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Driver    string
	Path      string
	DSN       string
	LogTiming bool
}

type FeedsConfig struct {
	IOSURL     string
	AndroidURL string
	TimeoutMS  int
	Attempts   int
	BackoffMS  int
}

type PopulateConfig struct {
	TopN int
}

type LoggingConfig struct {
	Level string
	File  string
}

type ObservabilityConfig struct {
	Enabled           bool
	OTLPEndpoint      string
	OTLPTraceHeaders  map[string]string
	OTLPMetricHeaders map[string]string
	ServiceName       string
	ServiceVer        string
	SamplingRatio     float64
	MetricsConsole    bool
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("games_env", "")
	v.SetDefault("app_env", "")
	v.SetDefault("go_env", "")
	v.SetDefault("games_port", 3000)
	v.SetDefault("games_db_driver", "sqlite")
	v.SetDefault("games_db_path", "data/games")
	v.SetDefault("games_db_dsn", "")
	v.SetDefault("games_db_timing", false)
	v.SetDefault("games_ios_feed_url", defaultIOSFeedURL)
	v.SetDefault("games_android_feed_url", defaultAndroidFeedURL)
	v.SetDefault("games_feed_timeout_ms", 5000)
	v.SetDefault("games_feed_attempts", 3)
	v.SetDefault("games_feed_backoff_ms", 500)
	v.SetDefault("games_populate_top_n", 100)
	v.SetDefault("games_log_level", "info")
	v.SetDefault("games_log_file", "")
	v.SetDefault("games_otel_enabled", false)
	v.SetDefault("otel_exporter_otlp_endpoint", "")
	v.SetDefault("otel_exporter_otlp_headers", "")
	v.SetDefault("otel_exporter_otlp_traces_headers", "")
	v.SetDefault("otel_exporter_otlp_metrics_headers", "")
	v.SetDefault("otel_service_name", "")
	v.SetDefault("games_service_name", "gamecatalog")
	v.SetDefault("games_version", "dev")
	v.SetDefault("otel_service_version", "")
	v.SetDefault("games_otel_sampling_ratio", 1.0)
	v.SetDefault("games_otel_metrics_console", false)

	env := resolveEnvironment(v)
	port := v.GetInt("games_port")
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid GAMES_PORT: %d", port)
	}

	driver := strings.ToLower(strings.TrimSpace(v.GetString("games_db_driver")))
	switch driver {
	case "", "sqlite":
		driver = "sqlite"
	case "postgres", "postgresql", "pgx":
		driver = "postgres"
	default:
		return Config{}, fmt.Errorf("invalid GAMES_DB_DRIVER: %q", driver)
	}
	dsn := strings.TrimSpace(v.GetString("games_db_dsn"))
	if driver == "postgres" && dsn == "" {
		return Config{}, fmt.Errorf("GAMES_DB_DSN is required for the postgres driver")
	}

	samplingRatio := clampFloat(v.GetFloat64("games_otel_sampling_ratio"), 0, 1)

	timeoutMS := v.GetInt("games_feed_timeout_ms")
	if timeoutMS <= 0 {
		timeoutMS = 5000
	}
	if timeoutMS > 60000 {
		timeoutMS = 60000
	}

	attempts := v.GetInt("games_feed_attempts")
	if attempts <= 0 {
		attempts = 3
	}
	if attempts > 10 {
		attempts = 10
	}

	backoffMS := v.GetInt("games_feed_backoff_ms")
	if backoffMS <= 0 {
		backoffMS = 500
	}
	if backoffMS > 10000 {
		backoffMS = 10000
	}

	topN := v.GetInt("games_populate_top_n")
	if topN <= 0 {
		topN = 100
	}
	if topN > 1000 {
		topN = 1000
	}

	serviceName := strings.TrimSpace(v.GetString("otel_service_name"))
	if serviceName == "" {
		serviceName = strings.TrimSpace(v.GetString("games_service_name"))
	}
	if serviceName == "" {
		serviceName = "gamecatalog"
	}

	serviceVersion := strings.TrimSpace(v.GetString("games_version"))
	if serviceVersion == "" {
		serviceVersion = strings.TrimSpace(v.GetString("otel_service_version"))
	}
	if serviceVersion == "" {
		serviceVersion = "dev"
	}

	otlpEndpoint := strings.TrimSpace(v.GetString("otel_exporter_otlp_endpoint"))
	otlpCommonHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_headers"))
	otlpTraceHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_traces_headers"))
	otlpMetricHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_metrics_headers"))
	metricsConsole := v.GetBool("games_otel_metrics_console")
	otelEnabled := v.GetBool("games_otel_enabled") || otlpEndpoint != "" || metricsConsole

	cfg := Config{
		Environment: env,
		Server:      ServerConfig{Port: port},
		Database: DatabaseConfig{
			Driver:    driver,
			Path:      strings.TrimSpace(v.GetString("games_db_path")),
			DSN:       dsn,
			LogTiming: v.GetBool("games_db_timing"),
		},
		Feeds: FeedsConfig{
			IOSURL:     strings.TrimSpace(v.GetString("games_ios_feed_url")),
			AndroidURL: strings.TrimSpace(v.GetString("games_android_feed_url")),
			TimeoutMS:  timeoutMS,
			Attempts:   attempts,
			BackoffMS:  backoffMS,
		},
		Populate: PopulateConfig{TopN: topN},
		Logging: LoggingConfig{
			Level: strings.TrimSpace(v.GetString("games_log_level")),
			File:  strings.TrimSpace(v.GetString("games_log_file")),
		},
		Observability: ObservabilityConfig{
			Enabled:           otelEnabled,
			OTLPEndpoint:      otlpEndpoint,
			OTLPTraceHeaders:  mergeHeaderMaps(otlpCommonHeaders, otlpTraceHeaders),
			OTLPMetricHeaders: mergeHeaderMaps(otlpCommonHeaders, otlpMetricHeaders),
			ServiceName:       serviceName,
			ServiceVer:        serviceVersion,
			SamplingRatio:     samplingRatio,
			MetricsConsole:    metricsConsole,
		},
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/games"
	}
	if cfg.Feeds.IOSURL == "" {
		cfg.Feeds.IOSURL = defaultIOSFeedURL
	}
	if cfg.Feeds.AndroidURL == "" {
		cfg.Feeds.AndroidURL = defaultAndroidFeedURL
	}

	return cfg, nil
}

func parseOTLPHeaders(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mergeHeaderMaps(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

func clampFloat(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func (c Config) IsLocalDevelopment() bool {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "", "local", "dev", "development", "test":
		return true
	default:
		return false
	}
}

// FeedTimeout is the per-attempt fetch deadline.
func (c Config) FeedTimeout() time.Duration {
	return time.Duration(c.Feeds.TimeoutMS) * time.Millisecond
}

// FeedBackoff is the wait before the first retry.
func (c Config) FeedBackoff() time.Duration {
	return time.Duration(c.Feeds.BackoffMS) * time.Millisecond
}

func resolveEnvironment(v *viper.Viper) string {
	for _, key := range []string{"games_env", "app_env", "go_env"} {
		value := strings.TrimSpace(v.GetString(key))
		if value != "" {
			return strings.ToLower(value)
		}
	}
	return ""
}
