package actor

import (
	"testing"
	"time"

	"energyhud/internal/core/domain"
	"energyhud/internal/util/actorutil"
	"energyhud/pkg/powermeter"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetSampleSourceActor(t *testing.T) {

	assert := assert.New(t)

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewSourceActor(powermeter.CreateTestSampleSource(), 2*time.Second, logger)
	})
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.GetSampleRequest{}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetSampleResponse)

	assert.False(resp.HasResponseError(), "no response error")
	assert.NotNil(resp.Reading, "reading present")
	assert.Equal(231.5, resp.Reading.VoltageVolt, "voltage value")
	assert.Equal(4.82, resp.Reading.CurrentAmp, "current value")
	assert.Equal(1026.71, resp.Reading.PowerWatt, "power value")
	assert.Equal(powermeter.SourceStatusSimulated, resp.Reading.Status, "source status")

	context.Stop(pid)

	as.Shutdown()
}

func TestGetSampleSourceActorError(t *testing.T) {

	assert := assert.New(t)

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewSourceActor(&powermeter.FailingSampleSource{}, 2*time.Second, logger)
	})
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.GetSampleRequest{}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetSampleResponse)

	assert.True(resp.HasResponseError(), "response error set")
	assert.Nil(resp.Reading, "no reading")

	context.Stop(pid)

	as.Shutdown()
}

func TestSourceActorHealth(t *testing.T) {

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor {
		return NewSourceActor(powermeter.CreateTestSampleSource(), 2*time.Second, logger)
	})
	pid := context.Spawn(props)

	result, err := context.RequestFuture(pid, domain.ActorHealthRequest{}, 5*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp, ok := result.(domain.ActorHealthResponse)
	assert.True(t, ok)
	assert.True(t, resp.Healthy)
	assert.Equal(t, domain.ACTOR_ID_SOURCE, resp.Id)

	context.Stop(pid)

	as.Shutdown()
}
