package powermeter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// remotePayload is the wire format of the device endpoint. Every field is
// optional; absent fields take the documented defaults.
type remotePayload struct {
	Voltage   *float64 `json:"voltage"`
	Current   *float64 `json:"current"`
	Power     *float64 `json:"power"`
	Energy    *float64 `json:"energy"`
	Frequency *float64 `json:"frequency"`
	PF        *float64 `json:"pf"`
}

type RemoteSource struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// CreateRemoteSource builds a source that issues one HTTP GET per Read against
// the device endpoint. The timeout bounds the whole request.
func CreateRemoteSource(endpoint string, timeout time.Duration, logger *zap.Logger) SampleSource {
	return &RemoteSource{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With(zap.String("target", "remote"), zap.String("endpoint", endpoint)),
	}
}

func (s *RemoteSource) Read() (*RawReading, error) {
	resp, err := s.client.Get(s.endpoint)
	if err != nil {
		s.logger.Debug("remote read failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		s.logger.Debug("remote read bad status", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("device endpoint returned status %d", resp.StatusCode)
	}

	var payload remotePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		s.logger.Debug("remote read malformed payload", zap.Error(err))
		return nil, fmt.Errorf("malformed device payload: %w", err)
	}

	reading := &RawReading{
		VoltageVolt: valueOr(payload.Voltage, DefaultVoltage),
		CurrentAmp:  valueOr(payload.Current, DefaultCurrent),
		PowerWatt:   valueOr(payload.Power, DefaultPower),
		EnergyKWh:   valueOr(payload.Energy, DefaultEnergy),
		Frequency:   valueOr(payload.Frequency, DefaultFrequency),
		PowerFactor: valueOr(payload.PF, DefaultPowerFactor),
		Status:      SourceStatusOnline,
		MeterEnergy: true,
	}
	return reading, nil
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
