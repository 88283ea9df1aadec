package actor

import (
	"fmt"
	"time"

	"energyhud/internal/core/domain"
	"energyhud/internal/util/actorutil"
	"energyhud/pkg/powermeter"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/reugn/go-quartz/logger"
	"go.uber.org/zap"
)

// SourceActor serializes access to the blocking sample source. One read runs
// at a time; requests arriving mid-read are stashed.
type SourceActor struct {
	behavior    actor.Behavior
	stash       *actorutil.Stash
	source      powermeter.SampleSource
	readTimeout time.Duration
	logger      *zap.Logger
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewSourceActor(source powermeter.SampleSource, readTimeout time.Duration, log *zap.Logger) *SourceActor {
	act := &SourceActor{
		source:      source,
		readTimeout: readTimeout,
		behavior:    actor.NewBehavior(),
		stash:       &actorutil.Stash{},
		logger:      actorutil.ActorLogger(domain.ACTOR_ID_SOURCE, log),
	}
	act.behavior.Become(act.DefaultReceive)
	return act
}

func (state *SourceActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *SourceActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("source@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_SOURCE,
			Healthy: true,
			State:   "idle",
		})
	case domain.GetSampleRequest:
		state.logger.Debug("source@default: GetSampleRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.getSample),
			mapTaskResult[domain.GetSampleResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetSampleResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(state.readTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingRead)
	default:
		state.logger.Debug("source@default: unhandled", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *SourceActor) WaitingRead(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("source@waiting backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		ctx.Send(msg.replyTo, msg.message)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("source@waiting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *SourceActor) getSample() (*domain.GetSampleResponse, error) {
	reading, err := state.source.Read()
	if err != nil {
		logger.Error(err)
		return nil, err
	}
	return &domain.GetSampleResponse{
		Reading: reading,
	}, nil
}

func mapTaskResult[T any](replyTo *actor.PID) func(*T) *backgroundTaskResult {
	return func(a *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *a,
			replyTo: replyTo,
		}
	}
}
