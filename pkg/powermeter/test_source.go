package powermeter

import "errors"

// Test doubles used by actor and server tests.

func CreateTestSampleSource() SampleSource {
	return &TestSampleSource{}
}

type TestSampleSource struct {
	Reads int
}

func (s *TestSampleSource) Read() (*RawReading, error) {
	s.Reads++
	return &RawReading{
		VoltageVolt: 231.5,
		CurrentAmp:  4.82,
		PowerWatt:   1026.71,
		Frequency:   50.02,
		PowerFactor: 0.92,
		Status:      SourceStatusSimulated,
	}, nil
}

type FailingSampleSource struct {
	Reads int
}

func (s *FailingSampleSource) Read() (*RawReading, error) {
	s.Reads++
	return nil, errors.New("device unreachable")
}
