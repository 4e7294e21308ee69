package mockapi

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// measurement mirrors the telemetry record shape served by the real backend.
type measurement struct {
	Timestamp string         `json:"timestamp"`
	UUID      string         `json:"uuid"`
	Data      map[string]any `json:"data"`
}

// fixed UUIDs so the mock is scriptable from the CLI and from tests
var seedDeviceUUIDs = []uuid.UUID{
	uuid.MustParse("0a1f7d62-9c4e-4b8a-8a31-acde52c81901"),
	uuid.MustParse("5b2c8e73-1d5f-4c9b-9b42-bdef63d92a12"),
	uuid.MustParse("6c3d9f84-2e60-4dac-ac53-cef074ea3b23"),
}

const seedSeriesLength = 500

// seedDevices populates one measurement series per device, newest first, one
// sample per minute ending at end. Values follow a smooth curve around
// nominal grid figures so plots look plausible.
func (s *Server) seedDevices(end time.Time) {
	for i, deviceUUID := range seedDeviceUUIDs {
		series := make([]measurement, 0, seedSeriesLength)
		for n := 0; n < seedSeriesLength; n++ {
			ts := end.Add(-time.Duration(n) * time.Minute)
			phase := float64(n+i*17) / 40.0
			series = append(series, measurement{
				Timestamp: ts.Format(time.RFC3339),
				UUID:      deviceUUID.String(),
				Data: map[string]any{
					"voltage":   round2(230.0 + 4.0*math.Sin(phase)),
					"frequency": round2(50.0 + 0.05*math.Cos(phase)),
					"power_kw":  round2(12.0 + 3.0*math.Sin(phase/2)),
				},
			})
		}

		s.deviceUUIDs = append(s.deviceUUIDs, deviceUUID)
		s.series[deviceUUID] = series
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
