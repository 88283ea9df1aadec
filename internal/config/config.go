package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"go.uber.org/zap/zapcore"
)

const (
	SOURCE_MODE_SIMULATED = "simulated"
	SOURCE_MODE_REMOTE    = "remote"
)

type Config struct {
	LogLevel zapcore.Level
	Source   SourceConfig  `mapstructure:"source"`
	Monitor  MonitorConfig `mapstructure:"monitor"`
	MQTT     MQTTConfig    `mapstructure:"mqtt"`
	Port     uint          `mapstructure:"port"`
	HttpLog  bool          `mapstructure:"http_log"`
}

type SourceConfig struct {
	Mode          string `mapstructure:"mode"`
	Endpoint      string `mapstructure:"endpoint"`
	TimeoutMillis uint32 `mapstructure:"timeout_millis"`
}

type MonitorConfig struct {
	PollIntervalMillis uint32  `mapstructure:"poll_interval_millis"`
	ErrorBackoffMillis uint32  `mapstructure:"error_backoff_millis"`
	HistorySize        uint    `mapstructure:"history_size"`
	TariffRate         float64 `mapstructure:"tariff_rate"`
	VoltageStableMin   float64 `mapstructure:"voltage_stable_min"`
	VoltageStableMax   float64 `mapstructure:"voltage_stable_max"`
	CurrentOverload    float64 `mapstructure:"current_overload"`
}

type MQTTConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	Host              string
	Port              int
	Username          string
	Password          string
	BaseTopic         string `mapstructure:"base_topic"`
	HADiscoveryEnable bool   `mapstructure:"ha_discovery_enable"`
	HADiscoveryTopic  string `mapstructure:"ha_discovery_topic"`
}

func CheckMQTTTopic(baseTopic string) (string, error) {
	// check and fix base topic
	lowerBaseTopic := strings.ToLower(baseTopic)
	baseTopicRegexp := regexp.MustCompile("^[a-z0-9_]+$")
	matches := baseTopicRegexp.FindAllStringSubmatch(lowerBaseTopic, 1)
	if len(matches) <= 0 {
		return "", errors.New("invalid topic. can only contain letters, numbers and underscores")
	}
	return lowerBaseTopic, nil
}

// CheckSourceConfig validates the source section eagerly so a bad endpoint is
// a boot failure, never a polling-time surprise.
func CheckSourceConfig(cfg SourceConfig) error {
	switch cfg.Mode {
	case SOURCE_MODE_SIMULATED:
	case SOURCE_MODE_REMOTE:
		if cfg.Endpoint == "" {
			return errors.New("config param source.endpoint is required when source.mode = remote")
		}
		u, err := url.Parse(cfg.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config param source.endpoint is not a valid http(s) URL: %s", cfg.Endpoint)
		}
	default:
		return fmt.Errorf("config param source.mode must be %q or %q", SOURCE_MODE_SIMULATED, SOURCE_MODE_REMOTE)
	}
	if cfg.TimeoutMillis == 0 {
		return errors.New("config param source.timeout_millis should be > 0")
	}
	return nil
}

// CheckMQTTConfig only applies when the MQTT bridge is enabled; a disabled
// bridge needs no broker at all.
func CheckMQTTConfig(cfg MQTTConfig) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Host == "" {
		return errors.New("config param mqtt.host is required when mqtt.enabled = true")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return errors.New("config param mqtt.port should be within 1..65535")
	}
	return nil
}

func CheckMonitorConfig(cfg MonitorConfig) error {
	if cfg.PollIntervalMillis < 100 || cfg.PollIntervalMillis > 5000 {
		return errors.New("config param monitor.poll_interval_millis should be within 100..5000")
	}
	if cfg.ErrorBackoffMillis == 0 {
		return errors.New("config param monitor.error_backoff_millis should be > 0")
	}
	if cfg.HistorySize == 0 {
		return errors.New("config param monitor.history_size should be > 0")
	}
	if cfg.TariffRate <= 0 {
		return errors.New("config param monitor.tariff_rate should be > 0")
	}
	if cfg.VoltageStableMin >= cfg.VoltageStableMax {
		return errors.New("config param monitor.voltage_stable_min must be < monitor.voltage_stable_max")
	}
	if cfg.CurrentOverload <= 0 {
		return errors.New("config param monitor.current_overload should be > 0")
	}
	return nil
}
