package client

import "github.com/google/uuid"

// Measurement is one timestamped telemetry record for a device. The server
// owns the shape of Data (voltage, frequency and so on); the client passes it
// through without validation.
type Measurement struct {
	Timestamp string         `json:"timestamp" example:"2026-02-07T10:15:00Z"`
	UUID      string         `json:"uuid,omitempty" example:"67890684-3b14-42cf-b785-df28ce570400"`
	Data      map[string]any `json:"data,omitempty"`
}

// DeviceList is the raw body of GET /devices.
type DeviceList struct {
	Count       int         `json:"count" example:"3"`
	DeviceUUIDs []uuid.UUID `json:"device_uuids"`
}

// server envelopes - the payload sits under a named key
type lastStateEnvelope struct {
	LatestMeasurement Measurement `json:"latest_measurement"`
}

type historicalEnvelope struct {
	Measurements []Measurement `json:"measurements"`
}
