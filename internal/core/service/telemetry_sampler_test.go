package service

import (
	"testing"

	"energyhud/internal/config"
	"energyhud/internal/core/domain"
	"energyhud/pkg/powermeter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testMonitorConfig() config.MonitorConfig {
	return config.MonitorConfig{
		PollIntervalMillis: 1000,
		ErrorBackoffMillis: 3000,
		HistorySize:        50,
		TariffRate:         7.50,
		VoltageStableMin:   200,
		VoltageStableMax:   250,
		CurrentOverload:    15,
	}
}

func newTestSampler(t *testing.T) *TelemetrySampler {
	t.Helper()
	return NewTelemetrySampler(testMonitorConfig(), zap.NewNop())
}

func simReading(power float64) *powermeter.RawReading {
	return &powermeter.RawReading{
		VoltageVolt: 230,
		CurrentAmp:  5,
		PowerWatt:   power,
		Frequency:   50.02,
		PowerFactor: 0.92,
		Status:      powermeter.SourceStatusSimulated,
	}
}

func meterReading(energyKWh float64) *powermeter.RawReading {
	return &powermeter.RawReading{
		VoltageVolt: 230,
		CurrentAmp:  5,
		PowerWatt:   1058,
		EnergyKWh:   energyKWh,
		Frequency:   50,
		PowerFactor: 0.9,
		Status:      powermeter.SourceStatusOnline,
		MeterEnergy: true,
	}
}

func TestSimulatedAccumulationIsAdditive(t *testing.T) {

	sampler := newTestSampler(t)

	powers := []float64{900, 1000, 1100, 0, 450.5}
	var want float64
	for _, p := range powers {
		sampler.Ingest(simReading(p), 1.0)
		want += (p / 1000) * (1.0 / 3600)
		assert.InDelta(t, want, sampler.EnergyKWh(), 1e-12)
	}
}

func TestSimulatedAccumulationNeverDecreases(t *testing.T) {

	sampler := newTestSampler(t)

	prev := sampler.EnergyKWh()
	for _, p := range []float64{1200, 0, 5, 8000, 0.01} {
		sampler.Ingest(simReading(p), 0.5)
		assert.GreaterOrEqual(t, sampler.EnergyKWh(), prev)
		prev = sampler.EnergyKWh()
	}
}

func TestScenarioThreeIngests(t *testing.T) {

	// 900 W + 1000 W + 1100 W, each over 1 s, at 7.50/kWh
	sampler := newTestSampler(t)

	var metrics domain.DerivedMetrics
	for _, p := range []float64{900, 1000, 1100} {
		metrics = sampler.Ingest(simReading(p), 1.0)
	}

	wantEnergy := (900.0 + 1000.0 + 1100.0) / 1000 / 3600
	assert.InDelta(t, wantEnergy, metrics.EnergyKWh, 1e-12)
	assert.InDelta(t, wantEnergy*7.50, metrics.Cost, 1e-12)
	assert.InDelta(t, 0.000833, metrics.EnergyKWh, 1e-5)
}

func TestMeterEnergyOverwrites(t *testing.T) {

	sampler := newTestSampler(t)

	// local accumulation first, then the meter takes over
	sampler.Ingest(simReading(5000), 60)
	require.Positive(t, sampler.EnergyKWh())

	metrics := sampler.Ingest(meterReading(120.5), 1.0)
	assert.Equal(t, 120.5, metrics.EnergyKWh)
	assert.Equal(t, 120.5, sampler.EnergyKWh())
}

func TestMeterEnergyDecreaseIsPassedThrough(t *testing.T) {

	// a device counter reset is not clamped
	sampler := newTestSampler(t)

	sampler.Ingest(meterReading(120.5), 1.0)
	metrics := sampler.Ingest(meterReading(118.0), 1.0)

	assert.Equal(t, 118.0, metrics.EnergyKWh)
	assert.Equal(t, 118.0*7.50, metrics.Cost)
}

func TestCostIsExactProduct(t *testing.T) {

	for _, rate := range []float64{0.01, 1, 7.50, 42.125} {
		cfg := testMonitorConfig()
		cfg.TariffRate = rate
		sampler := NewTelemetrySampler(cfg, zap.NewNop())

		metrics := sampler.Ingest(meterReading(33.375), 1.0)
		assert.Equal(t, 33.375*rate, metrics.Cost)
	}
}

func TestHistoryCapFIFO(t *testing.T) {

	require := require.New(t)

	sampler := newTestSampler(t)

	for i := 1; i <= 51; i++ {
		sampler.Ingest(simReading(float64(i)), 1.0)
	}

	history := sampler.History()
	require.Len(history, 50)
	// the 1st insert was evicted; the 2nd is now the oldest
	assert.Equal(t, 2.0, history[0].PowerWatt)
	assert.Equal(t, 51.0, history[49].PowerWatt)
	for i := 1; i < len(history); i++ {
		assert.Equal(t, history[i-1].PowerWatt+1, history[i].PowerWatt, "insertion order preserved")
	}
}

func TestHistoryIsACopy(t *testing.T) {

	sampler := newTestSampler(t)
	sampler.Ingest(simReading(100), 1.0)

	history := sampler.History()
	history[0].PowerWatt = -1

	assert.Equal(t, 100.0, sampler.History()[0].PowerWatt)
}

func TestVoltageStatusBoundaries(t *testing.T) {

	sampler := newTestSampler(t)

	cases := []struct {
		voltage float64
		want    string
	}{
		{200.0, domain.VOLTAGE_STATUS_WARN},
		{200.0001, domain.VOLTAGE_STATUS_STABLE},
		{230.0, domain.VOLTAGE_STATUS_STABLE},
		{249.9999, domain.VOLTAGE_STATUS_STABLE},
		{250.0, domain.VOLTAGE_STATUS_WARN},
		{180.0, domain.VOLTAGE_STATUS_WARN},
	}
	for _, c := range cases {
		reading := simReading(1000)
		reading.VoltageVolt = c.voltage
		metrics := sampler.Ingest(reading, 1.0)
		assert.Equal(t, c.want, metrics.VoltageStatus, "voltage %f", c.voltage)
	}
}

func TestLoadStatusFlipsWithoutHysteresis(t *testing.T) {

	sampler := newTestSampler(t)

	reading := simReading(1000)
	reading.CurrentAmp = 14.999
	assert.Equal(t, domain.LOAD_STATUS_NOMINAL, sampler.Ingest(reading, 1.0).LoadStatus)

	reading.CurrentAmp = 15.0
	assert.Equal(t, domain.LOAD_STATUS_OVERLOAD, sampler.Ingest(reading, 1.0).LoadStatus)

	// a single in-band sample clears the label immediately
	reading.CurrentAmp = 3.0
	assert.Equal(t, domain.LOAD_STATUS_NOMINAL, sampler.Ingest(reading, 1.0).LoadStatus)
}

func TestSetTariffRateAppliesToNextIngest(t *testing.T) {

	sampler := newTestSampler(t)

	first := sampler.Ingest(meterReading(10), 1.0)
	assert.Equal(t, 10*7.50, first.Cost)

	sampler.SetTariffRate(9.25)
	second := sampler.Ingest(meterReading(10), 1.0)
	assert.Equal(t, 10*9.25, second.Cost)

	// invalid rates are ignored
	sampler.SetTariffRate(0)
	sampler.SetTariffRate(-4)
	assert.Equal(t, 9.25, sampler.TariffRate())
}
