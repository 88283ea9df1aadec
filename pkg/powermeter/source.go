package powermeter

// SourceStatus identifies where a reading came from.
type SourceStatus string

const (
	SourceStatusSimulated SourceStatus = "SIMULATED"
	SourceStatusOnline    SourceStatus = "ONLINE"
)

// Defaults substituted for fields a remote meter omits from its payload.
const (
	DefaultVoltage     = 0
	DefaultCurrent     = 0
	DefaultPower       = 0
	DefaultEnergy      = 0
	DefaultFrequency   = 50.0
	DefaultPowerFactor = 0.9
)

// RawReading is one instantaneous measurement produced by a SampleSource.
// It is produced fresh on every poll and never retained.
type RawReading struct {
	VoltageVolt float64
	CurrentAmp  float64
	PowerWatt   float64
	EnergyKWh   float64
	Frequency   float64
	PowerFactor float64
	Status      SourceStatus
	MeterEnergy bool // EnergyKWh is an authoritative meter counter
}

// SampleSource produces one raw reading per call. A call blocks until the
// reading is available or the source's own timeout expires.
type SampleSource interface {
	Read() (*RawReading, error)
}
