package actor

import (
	"fmt"
	"testing"
	"time"

	adactor "energyhud/internal/adapter/actor"
	"energyhud/internal/core/domain"
	"energyhud/internal/util"
	"energyhud/pkg/powermeter"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMasterActor(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMasterOfPuppetsActor(cfg, func() *adactor.SourceActor {
			return adactor.NewSourceActor(powermeter.CreateTestSampleSource(), 2*time.Second, logger)
		}, func(es *eventstream.EventStream) *adactor.MQTTActor {
			return adactor.NewTestMQTTActor(&cfg, es, logger)
		}, logger)
	})
	pid, err := context.SpawnNamed(props, "master")
	if err != nil {
		t.Error(err)
		return
	}

	time.Sleep(2 * time.Second)

	res, err := context.RequestFuture(pid, domain.ActorHealthRequest{}, 10*time.Second).Result()
	if err != nil {
		t.Error(err)
		//return
	}
	healthResp, ok := res.(domain.ActorHealthResponse)
	assert.True(t, ok)
	fmt.Printf("Health response: %+v\n", healthResp)
	assert.NotNil(t, healthResp)

	assert.True(t, healthResp.Healthy, "healthy is true")

	context.Stop(pid)

	as.Shutdown()
}

func TestMasterActorForwardsMetricsAndTariff(t *testing.T) {

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMasterOfPuppetsActor(cfg, func() *adactor.SourceActor {
			return adactor.NewSourceActor(powermeter.CreateTestSampleSource(), 2*time.Second, logger)
		}, func(es *eventstream.EventStream) *adactor.MQTTActor {
			return adactor.NewTestMQTTActor(&cfg, es, logger)
		}, logger)
	})
	pid, err := context.SpawnNamed(props, "master")
	if err != nil {
		t.Error(err)
		return
	}

	// let a few poll cycles run
	time.Sleep(1 * time.Second)

	res, err := context.RequestFuture(pid, domain.GetMetricsRequest{}, 5*time.Second).Result()
	assert.NoError(t, err)
	metricsResp, ok := res.(domain.GetMetricsResponse)
	assert.True(t, ok)
	assert.True(t, metricsResp.Connected)
	assert.NotNil(t, metricsResp.Metrics)
	assert.NotEmpty(t, metricsResp.History)
	assert.InDelta(t, 231.5, metricsResp.Metrics.VoltageVolt, 0.001)

	res, err = context.RequestFuture(pid, domain.SetTariffRateRequest{Rate: 9.25}, 5*time.Second).Result()
	assert.NoError(t, err)
	tariffResp, ok := res.(domain.SetTariffRateResponse)
	assert.True(t, ok)
	assert.InDelta(t, 9.25, tariffResp.Rate, 0.001)

	context.Stop(pid)

	as.Shutdown()
}
