package powermeter

import (
	"math/rand/v2"

	"go.uber.org/zap"
)

// Simulation model constants: a noisy grid around nominal EU mains values.
const (
	simVoltageMean   = 230.0
	simVoltageSigma  = 5.0
	simVoltageFloor  = 180.0
	simCurrentMean   = 5.0
	simCurrentSigma  = 2.0
	simCurrentFloor  = 0.1
	simPowerFactor   = 0.92
	simGridFrequency = 50.02
)

type SimulatedSource struct {
	logger *zap.Logger
}

// CreateSimulatedSource builds a source that generates gaussian-distributed
// readings. It never fails and each call is independent.
func CreateSimulatedSource(logger *zap.Logger) SampleSource {
	return &SimulatedSource{
		logger: logger.With(zap.String("target", "simulated")),
	}
}

func (s *SimulatedSource) Read() (*RawReading, error) {
	voltage := simVoltageMean + rand.NormFloat64()*simVoltageSigma
	current := simCurrentMean + rand.NormFloat64()*simCurrentSigma
	voltage = max(simVoltageFloor, voltage)
	current = max(simCurrentFloor, current)
	power := voltage * current * simPowerFactor

	reading := &RawReading{
		VoltageVolt: voltage,
		CurrentAmp:  current,
		PowerWatt:   power,
		Frequency:   simGridFrequency,
		PowerFactor: simPowerFactor,
		Status:      SourceStatusSimulated,
	}
	s.logger.Debug("simulated read", zap.Float64("voltage", voltage),
		zap.Float64("current", current), zap.Float64("power", power))
	return reading, nil
}
