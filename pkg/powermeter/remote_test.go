package powermeter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRemoteReadFullPayload(t *testing.T) {

	require := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"voltage": 229.8, "current": 4.5, "power": 951.2, "energy": 120.5, "frequency": 49.98, "pf": 0.95}`))
	}))
	defer srv.Close()

	source := CreateRemoteSource(srv.URL, 2*time.Second, zap.NewNop())
	reading, err := source.Read()
	require.NoError(err)
	require.NotNil(reading)

	assert.Equal(t, 229.8, reading.VoltageVolt)
	assert.Equal(t, 4.5, reading.CurrentAmp)
	assert.Equal(t, 951.2, reading.PowerWatt)
	assert.Equal(t, 120.5, reading.EnergyKWh)
	assert.Equal(t, 49.98, reading.Frequency)
	assert.Equal(t, 0.95, reading.PowerFactor)
	assert.Equal(t, SourceStatusOnline, reading.Status)
	assert.True(t, reading.MeterEnergy)
}

func TestRemoteReadMissingFieldsDefaults(t *testing.T) {

	require := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"voltage": 230.1}`))
	}))
	defer srv.Close()

	source := CreateRemoteSource(srv.URL, 2*time.Second, zap.NewNop())
	reading, err := source.Read()
	require.NoError(err)

	assert.Equal(t, 230.1, reading.VoltageVolt)
	assert.Equal(t, 0.0, reading.CurrentAmp)
	assert.Equal(t, 0.0, reading.PowerWatt)
	assert.Equal(t, 0.0, reading.EnergyKWh)
	assert.Equal(t, 50.0, reading.Frequency)
	assert.Equal(t, 0.9, reading.PowerFactor)
}

func TestRemoteReadNon200(t *testing.T) {

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	source := CreateRemoteSource(srv.URL, 2*time.Second, zap.NewNop())
	reading, err := source.Read()
	assert.Error(t, err)
	assert.Nil(t, reading)
}

func TestRemoteReadMalformedPayload(t *testing.T) {

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"voltage": `))
	}))
	defer srv.Close()

	source := CreateRemoteSource(srv.URL, 2*time.Second, zap.NewNop())
	reading, err := source.Read()
	assert.Error(t, err)
	assert.Nil(t, reading)
}

func TestRemoteReadConnectionRefused(t *testing.T) {

	// grab a port that refuses connections
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	source := CreateRemoteSource(url, 500*time.Millisecond, zap.NewNop())
	reading, err := source.Read()
	assert.Error(t, err)
	assert.Nil(t, reading)
}
