package actor

import (
	"fmt"
	"time"

	"energyhud/internal/config"
	"energyhud/internal/core/domain"
	"energyhud/internal/core/events"
	"energyhud/internal/core/service"
	. "energyhud/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/asynkron/protoactor-go/scheduler"
	"go.uber.org/zap"
)

const (
	MONITOR_STATE_POLLING = "polling"
	MONITOR_STATE_BACKOFF = "backoff"
)

// MonitorActor runs the poll loop: one sample request per cycle, ingested
// into the sampler on success, and the next cycle scheduled only after the
// current one resolves. A failed cycle flips the loop into backoff cadence
// until a read succeeds again.
type MonitorActor struct {
	behavior  actor.Behavior
	stash     *Stash
	scheduler *scheduler.TimerScheduler

	sourceActor *actor.PID
	config      *config.Config
	eventStream *eventstream.EventStream
	sampler     *service.TelemetrySampler

	connected     bool
	stateReported bool
	backingOff    bool
	lastMetrics   *domain.DerivedMetrics

	logger *zap.Logger
}

type monitorTick struct {
}

func NewMonitorActor(config *config.Config, sourceActor *actor.PID, eventStream *eventstream.EventStream, logger *zap.Logger) *MonitorActor {
	act := &MonitorActor{
		config:      config,
		sourceActor: sourceActor,
		behavior:    actor.NewBehavior(),
		stash:       &Stash{},
		logger:      ActorLogger(domain.ACTOR_ID_MONITOR, logger),
		eventStream: eventStream,
		sampler:     service.NewTelemetrySampler(config.Monitor, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *MonitorActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *MonitorActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("monitor@starting started")

		state.scheduler = scheduler.NewTimerScheduler(ctx)
		ctx.Send(ctx.Self(), monitorTick{})

		// seed the retained tariff state so HA shows the configured rate
		// before anyone changes it
		state.eventStream.Publish(events.TariffRateUpdateEvent(state.sampler.TariffRate()))

		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
	default:
		state.logger.Debug("monitor@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MonitorActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("monitor@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_MONITOR,
			Healthy: true,
			State:   state.loopState(),
		})
	case monitorTick:
		state.logger.Debug("monitor@default tick")
		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.sourceActor, domain.GetSampleRequest{}, state.sampleTimeout()), func(err error) any {
			return domain.GetSampleResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})
		state.behavior.BecomeStacked(state.WaitingSampleReceive)
	case domain.GetMetricsRequest:
		state.logger.Debug("monitor@default: GetMetricsRequest")
		ForRequest(msg).Respond(ctx, domain.GetMetricsResponse{
			Metrics:   state.lastMetrics,
			History:   state.sampler.History(),
			Connected: state.connected,
		})
	case domain.SetTariffRateRequest:
		state.logger.Info("monitor@default: SetTariffRateRequest", zap.Float64("rate", msg.Rate))
		state.sampler.SetTariffRate(msg.Rate)
		state.eventStream.Publish(events.TariffRateUpdateEvent(state.sampler.TariffRate()))
		ForRequest(msg).Respond(ctx, domain.SetTariffRateResponse{
			Rate: state.sampler.TariffRate(),
		})
	default:
		state.logger.Debug("monitor@default: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

// WaitingSampleReceive holds the loop while one sample request is in flight.
// Snapshot and tariff requests are stashed, never dropped.
func (state *MonitorActor) WaitingSampleReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetSampleResponse:
		if msg.HasResponseError() || msg.Reading == nil {
			state.logger.Error("monitor@waiting GetSampleResponse error", zap.Error(msg.GetResponseError()))
			state.sampleFailed(ctx)
		} else {
			state.logger.Debug("monitor@waiting GetSampleResponse",
				zap.Float64("power", msg.Reading.PowerWatt))
			state.sampleSucceeded(ctx, msg)
		}
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("monitor@waiting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *MonitorActor) sampleSucceeded(ctx actor.Context, msg domain.GetSampleResponse) {
	// elapsed time is the configured interval, not wall clock, so energy
	// accumulation stays deterministic under scheduling jitter
	elapsed := float64(state.config.Monitor.PollIntervalMillis) / 1000
	metrics := state.sampler.Ingest(msg.Reading, elapsed)
	state.lastMetrics = &metrics

	if !state.connected || !state.stateReported {
		state.eventStream.Publish(events.ConnectionStateUpdateEvent(true))
	}
	state.connected = true
	state.stateReported = true
	state.backingOff = false

	for _, ev := range events.DerivedMetricsToUpdateEvents(&metrics) {
		state.eventStream.Publish(ev)
	}

	state.scheduler.RequestOnce(time.Duration(state.config.Monitor.PollIntervalMillis)*time.Millisecond, ctx.Self(), monitorTick{})
}

// sampleFailed also covers the never-connected case: the first failed cycle
// must push the offline state so the availability topic never stays at the
// broker-connect "online" while the source is unreachable.
func (state *MonitorActor) sampleFailed(ctx actor.Context) {
	if state.connected || !state.stateReported {
		state.eventStream.Publish(events.ConnectionStateUpdateEvent(false))
	}
	state.connected = false
	state.stateReported = true
	state.backingOff = true

	state.scheduler.RequestOnce(time.Duration(state.config.Monitor.ErrorBackoffMillis)*time.Millisecond, ctx.Self(), monitorTick{})
}

// sampleTimeout leaves the source actor room to time out its own read before
// the request future gives up.
func (state *MonitorActor) sampleTimeout() time.Duration {
	return time.Duration(state.config.Source.TimeoutMillis)*time.Millisecond + 500*time.Millisecond
}

func (state *MonitorActor) loopState() string {
	if state.backingOff {
		return MONITOR_STATE_BACKOFF
	}
	return MONITOR_STATE_POLLING
}
