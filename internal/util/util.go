package util

import (
	"energyhud/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		Source: config.SourceConfig{
			Mode:          config.SOURCE_MODE_SIMULATED,
			TimeoutMillis: 2000,
		},
		Monitor: config.MonitorConfig{
			PollIntervalMillis: 100,
			ErrorBackoffMillis: 300,
			HistorySize:        50,
			TariffRate:         7.50,
			VoltageStableMin:   200,
			VoltageStableMax:   250,
			CurrentOverload:    15,
		},
		MQTT: config.MQTTConfig{
			Host:      "localhost",
			Port:      1883,
			BaseTopic: "energyhud",
		},
		Port: 8080,
	}
}
