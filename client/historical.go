package client

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Limits on the number of historical records per request.
const (
	DefaultHistoricalLimit = 100
	MaxHistoricalLimit     = 5000
)

// HistoricalQuery bounds a historical data request. The zero value asks for
// the DefaultHistoricalLimit most recent records.
type HistoricalQuery struct {
	// Limit is the maximum number of records to return (1-5000). Zero means
	// DefaultHistoricalLimit.
	Limit int
	// Start is the inclusive lower time bound. The zero time leaves the range
	// unbounded below.
	Start time.Time
	// End is the inclusive upper time bound. The zero time leaves the range
	// unbounded above.
	End time.Time
}

// GetHistoricalData retrieves historical measurements for a device, most
// recent first, for time-series analysis. Time bounds are sent as RFC 3339
// timestamps. An out-of-range limit is rejected locally without a round trip.
func (c *Client) GetHistoricalData(deviceUUID uuid.UUID, query HistoricalQuery) ([]Measurement, error) {
	limit := query.Limit
	if limit == 0 {
		limit = DefaultHistoricalLimit
	}
	if limit < 1 || limit > MaxHistoricalLimit {
		return nil, &APIError{
			Message: fmt.Sprintf("limit must be between 1 and %d", MaxHistoricalLimit),
			Payload: map[string]any{"limit": limit},
		}
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	if !query.Start.IsZero() {
		params.Set("start", query.Start.Format(time.RFC3339Nano))
	}
	if !query.End.IsZero() {
		params.Set("end", query.End.Format(time.RFC3339Nano))
	}

	endpoint := fmt.Sprintf("/devices/%s/historical", deviceUUID)

	var envelope historicalEnvelope
	if err := c.do(http.MethodGet, endpoint, params, &envelope); err != nil {
		return nil, err
	}

	if envelope.Measurements == nil {
		return []Measurement{}, nil
	}
	return envelope.Measurements, nil
}
