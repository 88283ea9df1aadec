package events

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"

	. "energyhud/internal/core/domain"

	"github.com/carlmjohnson/versioninfo"
)

// DerivedMetricsToUpdateEvents flattens one derived snapshot into per-sensor
// update events for the event stream.
func DerivedMetricsToUpdateEvents(m *DerivedMetrics) []any {
	var events []any

	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_GRID_VOLTAGE,
		},
		Value:    m.VoltageVolt,
		Decimals: 1,
	})
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_CURRENT_DRAW,
		},
		Value:    m.CurrentAmp,
		Decimals: 2,
	})
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_ACTIVE_POWER,
		},
		Value:    m.PowerWatt,
		Decimals: 0,
	})
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_ACCUMULATED_ENERGY,
		},
		Value:    m.EnergyKWh,
		Decimals: 6,
	})
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_ESTIMATED_COST,
		},
		Value:    m.Cost,
		Decimals: 2,
	})
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_GRID_FREQUENCY,
		},
		Value:    m.Frequency,
		Decimals: 2,
	})
	events = append(events, FloatSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_POWER_FACTOR,
		},
		Value:    m.PowerFactor,
		Decimals: 2,
	})
	events = append(events, TextSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_VOLTAGE_STATUS,
		},
		Value: m.VoltageStatus,
	})
	events = append(events, TextSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_LOAD_STATUS,
		},
		Value: m.LoadStatus,
	})

	return events
}

func TariffRateUpdateEvent(rate float64) InputNumberSensorUpdateEvent {
	return InputNumberSensorUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: INPUT_NUMBER_ID_TARIFF_RATE,
		},
		Value:    rate,
		Decimals: 2,
	}
}

func ConnectionStateUpdateEvent(connected bool) BridgeStateUpdateEvent {
	return BridgeStateUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: SENSOR_ID_BRIDGE_STATE,
		},
		Value: connected,
	}
}

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("energyhud_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "EnergyHUD",
		Model:        "Energy Monitor Bridge",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("EnergyHUD %s", md5HashShort(baseTopic)),
	}
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {

	var sensors []GenericSensor

	// Source connection state
	sensors = append(sensors, GenericSensor{
		Device:         bridgeDevice,
		Id:             SENSOR_ID_BRIDGE_STATE,
		SensorType:     "binary_sensor",
		Name:           "Connection state",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
	})

	return sensors
}

// MeterSensors describes the HA discovery surface of the monitored meter.
func MeterSensors(device Device) []GenericSensor {

	var sensors []GenericSensor

	sensors = append(sensors, GenericSensor{
		Device:            device,
		Id:                SENSOR_ID_GRID_VOLTAGE,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Grid voltage",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_VOLTAGE,
		UnitOfMeasurement: "V",
		UniqueId:          uniqueId(device.Id, SENSOR_ID_GRID_VOLTAGE),
	})
	sensors = append(sensors, GenericSensor{
		Device:            device,
		Id:                SENSOR_ID_CURRENT_DRAW,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Current draw",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_CURRENT,
		UnitOfMeasurement: "A",
		UniqueId:          uniqueId(device.Id, SENSOR_ID_CURRENT_DRAW),
	})
	sensors = append(sensors, GenericSensor{
		Device:            device,
		Id:                SENSOR_ID_ACTIVE_POWER,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Active power",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_POWER,
		UnitOfMeasurement: "W",
		UniqueId:          uniqueId(device.Id, SENSOR_ID_ACTIVE_POWER),
	})
	sensors = append(sensors, GenericSensor{
		Device:            device,
		Id:                SENSOR_ID_ACCUMULATED_ENERGY,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Accumulated energy",
		StateClass:        STATE_CLASS_TOTAL_INCREASING,
		DeviceClass:       DEVICE_CLASS_ENERGY,
		UnitOfMeasurement: "kWh",
		UniqueId:          uniqueId(device.Id, SENSOR_ID_ACCUMULATED_ENERGY),
	})
	sensors = append(sensors, GenericSensor{
		Device:            device,
		Id:                SENSOR_ID_ESTIMATED_COST,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Estimated cost",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_MONETARY,
		UniqueId:          uniqueId(device.Id, SENSOR_ID_ESTIMATED_COST),
	})
	sensors = append(sensors, GenericSensor{
		Device:            device,
		Id:                SENSOR_ID_GRID_FREQUENCY,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Grid frequency",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_FREQUENCY,
		UnitOfMeasurement: "Hz",
		EntityCategory:    ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:          uniqueId(device.Id, SENSOR_ID_GRID_FREQUENCY),
	})
	sensors = append(sensors, GenericSensor{
		Device:         device,
		Id:             SENSOR_ID_POWER_FACTOR,
		SensorType:     SENSOR_TYPE_SENSOR,
		Name:           "Power factor",
		StateClass:     STATE_CLASS_MEASUREMENT,
		DeviceClass:    DEVICE_CLASS_POWER_FACTOR,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(device.Id, SENSOR_ID_POWER_FACTOR),
	})
	sensors = append(sensors, GenericSensor{
		Device:         device,
		Id:             SENSOR_ID_VOLTAGE_STATUS,
		SensorType:     SENSOR_TYPE_SENSOR,
		Name:           "Voltage monitor",
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(device.Id, SENSOR_ID_VOLTAGE_STATUS),
	})
	sensors = append(sensors, GenericSensor{
		Device:         device,
		Id:             SENSOR_ID_LOAD_STATUS,
		SensorType:     SENSOR_TYPE_SENSOR,
		Name:           "Load monitor",
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(device.Id, SENSOR_ID_LOAD_STATUS),
	})

	return sensors
}

func TariffInputNumber(device Device, initialRate float64) GenericInputNumber {
	return GenericInputNumber{
		Device:       device,
		Id:           INPUT_NUMBER_ID_TARIFF_RATE,
		Name:         "Tariff rate",
		UniqueId:     uniqueId(device.Id, INPUT_NUMBER_ID_TARIFF_RATE),
		Min:          0.01,
		Max:          1000,
		Step:         0.25,
		Mode:         INPUT_NUMBER_MODE_BOX,
		InitialValue: initialRate,
	}
}

func uniqueId(deviceId, sensorId string) string {
	return fmt.Sprintf("%s_%s", deviceId, sensorId)
}

func md5HashShort(s string) string {
	hash := md5.Sum([]byte(s))
	return hex.EncodeToString(hash[:])[:8]
}
