package service

import (
	"time"

	"energyhud/internal/config"
	"energyhud/internal/core/domain"
	"energyhud/pkg/powermeter"

	"go.uber.org/zap"
)

// TelemetrySampler owns the accumulated energy state and the rolling power
// history. It is mutated only by the monitor actor's single message loop, so
// it carries no locking.
type TelemetrySampler struct {
	tariffRate       float64
	voltageStableMin float64
	voltageStableMax float64
	currentOverload  float64
	historySize      int

	energyKWh float64
	history   []domain.PowerSample

	logger *zap.Logger
}

func NewTelemetrySampler(cfg config.MonitorConfig, logger *zap.Logger) *TelemetrySampler {
	return &TelemetrySampler{
		tariffRate:       cfg.TariffRate,
		voltageStableMin: cfg.VoltageStableMin,
		voltageStableMax: cfg.VoltageStableMax,
		currentOverload:  cfg.CurrentOverload,
		historySize:      int(cfg.HistorySize),
		history:          make([]domain.PowerSample, 0, cfg.HistorySize),
		logger:           logger,
	}
}

// Ingest turns one raw reading into a derived snapshot and mutates the
// accumulated state. A meter-reported energy value overwrites local state
// (the meter is ground truth, even if its counter went backwards); otherwise
// the sample's power is integrated rectangularly over elapsedSeconds. The
// rectangular rule holds the instantaneous power constant for the whole
// interval, so accumulated energy drifts from a real meter in proportion to
// the sampling interval.
//
// Failed reads must never reach Ingest; the caller intercepts them so the
// accumulated state stays untouched.
func (s *TelemetrySampler) Ingest(reading *powermeter.RawReading, elapsedSeconds float64) domain.DerivedMetrics {
	if reading.MeterEnergy {
		s.energyKWh = reading.EnergyKWh
	} else {
		s.energyKWh += (reading.PowerWatt / 1000) * (elapsedSeconds / 3600)
	}

	now := time.Now()
	s.history = append(s.history, domain.PowerSample{
		Time:      now,
		PowerWatt: reading.PowerWatt,
	})
	for len(s.history) > s.historySize {
		s.history = s.history[1:]
	}

	metrics := domain.DerivedMetrics{
		VoltageVolt:   reading.VoltageVolt,
		CurrentAmp:    reading.CurrentAmp,
		PowerWatt:     reading.PowerWatt,
		EnergyKWh:     s.energyKWh,
		Cost:          s.energyKWh * s.tariffRate,
		TariffRate:    s.tariffRate,
		Frequency:     reading.Frequency,
		PowerFactor:   reading.PowerFactor,
		VoltageStatus: s.voltageStatus(reading.VoltageVolt),
		LoadStatus:    s.loadStatus(reading.CurrentAmp),
		SourceStatus:  string(reading.Status),
		SampledAt:     now,
	}
	s.logger.Debug("ingest",
		zap.Float64("power", metrics.PowerWatt),
		zap.Float64("energy_kwh", metrics.EnergyKWh),
		zap.Float64("cost", metrics.Cost))
	return metrics
}

// History returns a copy of the rolling history, oldest first.
func (s *TelemetrySampler) History() []domain.PowerSample {
	out := make([]domain.PowerSample, len(s.history))
	copy(out, s.history)
	return out
}

func (s *TelemetrySampler) EnergyKWh() float64 {
	return s.energyKWh
}

func (s *TelemetrySampler) TariffRate() float64 {
	return s.tariffRate
}

// SetTariffRate applies from the next ingest on. Rates <= 0 are ignored.
func (s *TelemetrySampler) SetTariffRate(rate float64) {
	if rate > 0 {
		s.tariffRate = rate
	}
}

// Exclusive at both ends: exactly 200 V or 250 V is already a WARN.
func (s *TelemetrySampler) voltageStatus(voltage float64) string {
	if voltage > s.voltageStableMin && voltage < s.voltageStableMax {
		return domain.VOLTAGE_STATUS_STABLE
	}
	return domain.VOLTAGE_STATUS_WARN
}

func (s *TelemetrySampler) loadStatus(current float64) string {
	if current < s.currentOverload {
		return domain.LOAD_STATUS_NOMINAL
	}
	return domain.LOAD_STATUS_OVERLOAD
}
