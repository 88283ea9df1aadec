package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckMQTTConfigDisabledNeedsNoBroker(t *testing.T) {

	assert.NoError(t, CheckMQTTConfig(MQTTConfig{Enabled: false}))
}

func TestCheckMQTTConfigEnabledRequiresHost(t *testing.T) {

	err := CheckMQTTConfig(MQTTConfig{Enabled: true, Port: 1883})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mqtt.host")
}

func TestCheckMQTTConfigEnabledRequiresValidPort(t *testing.T) {

	assert.Error(t, CheckMQTTConfig(MQTTConfig{Enabled: true, Host: "localhost", Port: 0}))
	assert.Error(t, CheckMQTTConfig(MQTTConfig{Enabled: true, Host: "localhost", Port: 70000}))
	assert.NoError(t, CheckMQTTConfig(MQTTConfig{Enabled: true, Host: "localhost", Port: 1883}))
}

func TestCheckSourceConfigRemoteRequiresEndpoint(t *testing.T) {

	err := CheckSourceConfig(SourceConfig{Mode: SOURCE_MODE_REMOTE, TimeoutMillis: 2000})
	assert.Error(t, err)

	err = CheckSourceConfig(SourceConfig{Mode: SOURCE_MODE_REMOTE, Endpoint: "not a url", TimeoutMillis: 2000})
	assert.Error(t, err)

	err = CheckSourceConfig(SourceConfig{Mode: SOURCE_MODE_REMOTE, Endpoint: "http://meter.local/data", TimeoutMillis: 2000})
	assert.NoError(t, err)
}

func TestCheckMonitorConfigBounds(t *testing.T) {

	valid := MonitorConfig{
		PollIntervalMillis: 1000,
		ErrorBackoffMillis: 3000,
		HistorySize:        50,
		TariffRate:         7.50,
		VoltageStableMin:   200,
		VoltageStableMax:   250,
		CurrentOverload:    15,
	}
	assert.NoError(t, CheckMonitorConfig(valid))

	tooFast := valid
	tooFast.PollIntervalMillis = 50
	assert.Error(t, CheckMonitorConfig(tooFast))

	badWindow := valid
	badWindow.VoltageStableMin = 250
	badWindow.VoltageStableMax = 200
	assert.Error(t, CheckMonitorConfig(badWindow))
}
