package powermeter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSimulatedReadBounds(t *testing.T) {

	require := require.New(t)

	source := CreateSimulatedSource(zap.NewNop())

	for i := 0; i < 1000; i++ {
		reading, err := source.Read()
		require.NoError(err)
		require.NotNil(reading)

		assert.GreaterOrEqual(t, reading.VoltageVolt, simVoltageFloor)
		assert.GreaterOrEqual(t, reading.CurrentAmp, simCurrentFloor)
		assert.InDelta(t, reading.VoltageVolt*reading.CurrentAmp*simPowerFactor, reading.PowerWatt, 1e-9)
		assert.Positive(t, reading.PowerWatt)
		assert.Equal(t, SourceStatusSimulated, reading.Status)
		assert.False(t, reading.MeterEnergy)
	}
}

func TestSimulatedReadDiagnostics(t *testing.T) {

	source := CreateSimulatedSource(zap.NewNop())

	reading, err := source.Read()
	require.NoError(t, err)

	assert.Equal(t, simGridFrequency, reading.Frequency)
	assert.Equal(t, simPowerFactor, reading.PowerFactor)
	assert.Zero(t, reading.EnergyKWh)
}
