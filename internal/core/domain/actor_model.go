package domain

import "energyhud/pkg/powermeter"

const (
	ACTOR_ID_MASTER       = "master"
	ACTOR_ID_SOURCE       = "source"
	ACTOR_ID_MONITOR      = "monitor"
	ACTOR_ID_MQTT         = "mqtt"
	ACTOR_ID_HA_DISCOVERY = "hadiscovery"
)

// GetSampleRequest asks the source actor for one raw reading.
type GetSampleRequest struct {
	ActorRequestMixIn
}

type GetSampleResponse struct {
	ActorResponseMixIn
	Reading *powermeter.RawReading
}

// GetMetricsRequest asks the monitor actor for the latest derived metrics and
// a copy of the rolling history. Metrics is nil before the first successful
// poll cycle.
type GetMetricsRequest struct {
	ActorRequestMixIn
}

type GetMetricsResponse struct {
	ActorResponseMixIn
	Metrics   *DerivedMetrics
	History   []PowerSample
	Connected bool
}

// SetTariffRateRequest changes the tariff applied to cost derivation from the
// next ingest on.
type SetTariffRateRequest struct {
	ActorRequestMixIn
	Rate float64
}

type SetTariffRateResponse struct {
	ActorResponseMixIn
	Rate float64
}

type PublishMessageRequest struct {
	ActorRequestMixIn
	Topic   string
	Payload string
	Retain  bool
}

type PublishMessageResponse struct {
	ActorResponseMixIn
}

type PublishSensorUpdateRequest struct {
	ActorRequestMixIn
	Retain bool
	Event  SensorUpdateEvent
}

type PublishSensorUpdateResponse struct {
	ActorResponseMixIn
}

type PublishDiscoveryRequest struct {
	ActorRequestMixIn
	Sensors      []GenericSensor
	InputNumbers []GenericInputNumber
}

type PublishDiscoveryResponse struct {
	ActorResponseMixIn
}

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
	State   string
}
