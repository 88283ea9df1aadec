package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	coreactor "energyhud/internal/core/actor"
	"energyhud/internal/core/domain"
	"energyhud/internal/util"
	"energyhud/internal/util/actorutil"
	"energyhud/pkg/powermeter"

	adactor "energyhud/internal/adapter/actor"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startTestServer(t *testing.T) (*httptest.Server, func()) {
	t.Helper()

	cfg := util.LoadTestConfig()
	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	props := actor.PropsFromProducer(func() actor.Actor {
		return coreactor.NewMasterOfPuppetsActor(cfg, func() *adactor.SourceActor {
			return adactor.NewSourceActor(powermeter.CreateTestSampleSource(), 2*time.Second, logger)
		}, func(es *eventstream.EventStream) *adactor.MQTTActor {
			return adactor.NewTestMQTTActor(&cfg, es, logger)
		}, logger)
	})
	masterPID, err := as.Root.SpawnNamed(props, domain.ACTOR_ID_MASTER)
	require.NoError(t, err)

	// let a few poll cycles run before serving requests
	time.Sleep(1 * time.Second)

	httpServer := NewServer(cfg, as.Root, masterPID)
	ts := httptest.NewServer(httpServer.Handler)

	return ts, func() {
		ts.Close()
		as.Root.Stop(masterPID)
		as.Shutdown()
	}
}

func TestHealthCheckRoute(t *testing.T) {

	ts, stop := startTestServer(t)
	defer stop()

	resp, err := http.Get(ts.URL + "/healthcheck")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "health_check: OK", string(body))
}

func TestMetricsRoute(t *testing.T) {

	ts, stop := startTestServer(t)
	defer stop()

	resp, err := http.Get(ts.URL + "/api/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload metricsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))

	assert.True(t, payload.Connected)
	require.NotNil(t, payload.Metrics)
	assert.InDelta(t, 231.5, payload.Metrics.VoltageVolt, 0.001)
	assert.Equal(t, domain.VOLTAGE_STATUS_STABLE, payload.Metrics.VoltageStatus)
	assert.Greater(t, payload.Metrics.EnergyKWh, 0.0)
}

func TestHistoryRoute(t *testing.T) {

	ts, stop := startTestServer(t)
	defer stop()

	resp, err := http.Get(ts.URL + "/api/history")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var samples []domain.PowerSample
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&samples))

	assert.NotEmpty(t, samples)
	assert.InDelta(t, 1026.71, samples[0].PowerWatt, 0.001)
}

func TestTariffRoute(t *testing.T) {

	ts, stop := startTestServer(t)
	defer stop()

	body, _ := json.Marshal(tariffRequest{Rate: 10.5})
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/tariff", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var payload tariffResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.InDelta(t, 10.5, payload.Rate, 0.001)
}

func TestTariffRouteRejectsNonPositive(t *testing.T) {

	ts, stop := startTestServer(t)
	defer stop()

	body, _ := json.Marshal(tariffRequest{Rate: 0})
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/tariff", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDashboardRoute(t *testing.T) {

	ts, stop := startTestServer(t)
	defer stop()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "EnergyHUD")
	assert.Contains(t, string(body), "/api/metrics")
	assert.Contains(t, string(body), "voltage_gauge")
	assert.Contains(t, string(body), "current_gauge")
}
