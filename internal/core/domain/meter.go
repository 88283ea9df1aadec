package domain

import "time"

// Status labels derived from the current reading. Pure threshold checks, no
// hysteresis: a single out-of-band sample flips the label, a single in-band
// sample clears it.
const (
	VOLTAGE_STATUS_STABLE = "STABLE"
	VOLTAGE_STATUS_WARN   = "WARN"
	LOAD_STATUS_NOMINAL   = "NOMINAL"
	LOAD_STATUS_OVERLOAD  = "OVERLOAD"
)

// PowerSample is one point of the rolling power history.
type PowerSample struct {
	Time      time.Time `json:"time"`
	PowerWatt float64   `json:"power"`
}

// DerivedMetrics is the per-cycle snapshot handed to renderers. It is
// recomputed on every ingest and never stored beyond the latest one.
type DerivedMetrics struct {
	VoltageVolt   float64   `json:"voltage"`
	CurrentAmp    float64   `json:"current"`
	PowerWatt     float64   `json:"power"`
	EnergyKWh     float64   `json:"energy"`
	Cost          float64   `json:"cost"`
	TariffRate    float64   `json:"tariff_rate"`
	Frequency     float64   `json:"frequency"`
	PowerFactor   float64   `json:"power_factor"`
	VoltageStatus string    `json:"voltage_status"`
	LoadStatus    string    `json:"load_status"`
	SourceStatus  string    `json:"source_status"`
	SampledAt     time.Time `json:"sampled_at"`
}
