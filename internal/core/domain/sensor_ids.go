package domain

const (
	SENSOR_ID_BRIDGE_STATE       = "bridge"
	SENSOR_ID_GRID_VOLTAGE       = "grid_voltage"
	SENSOR_ID_CURRENT_DRAW       = "current_draw"
	SENSOR_ID_ACTIVE_POWER       = "active_power"
	SENSOR_ID_ACCUMULATED_ENERGY = "accumulated_energy"
	SENSOR_ID_ESTIMATED_COST     = "estimated_cost"
	SENSOR_ID_GRID_FREQUENCY     = "grid_frequency"
	SENSOR_ID_POWER_FACTOR       = "power_factor"
	SENSOR_ID_VOLTAGE_STATUS     = "voltage_status"
	SENSOR_ID_LOAD_STATUS        = "load_status"
	INPUT_NUMBER_ID_TARIFF_RATE  = "tariff_rate"
	STATE_CLASS_MEASUREMENT      = "measurement"
	STATE_CLASS_TOTAL_INCREASING = "total_increasing"
	DEVICE_CLASS_CONNECTIVITY    = "connectivity"
	DEVICE_CLASS_CURRENT         = "current"
	DEVICE_CLASS_ENERGY          = "energy"
	DEVICE_CLASS_FREQUENCY       = "frequency"
	DEVICE_CLASS_MONETARY        = "monetary"
	DEVICE_CLASS_POWER           = "power"
	DEVICE_CLASS_POWER_FACTOR    = "power_factor"
	DEVICE_CLASS_VOLTAGE         = "voltage"
	ENTITY_CLASS_DIAGNOSTIC      = "diagnostic"
	ENTITY_CLASS_CONFIG          = "config"
	SENSOR_TYPE_SENSOR           = "sensor"
	INPUT_NUMBER_MODE_BOX        = "box"
)
