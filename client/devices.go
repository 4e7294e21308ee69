package client

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// GetDevices retrieves the device UUIDs registered with the API.
func (c *Client) GetDevices() (DeviceList, error) {
	var list DeviceList
	if err := c.do(http.MethodGet, "/devices", nil, &list); err != nil {
		return DeviceList{}, err
	}
	return list, nil
}

// GetLastState retrieves the latest measurement recorded for a device.
// When the server has no measurement for the device the zero Measurement is
// returned without error.
func (c *Client) GetLastState(deviceUUID uuid.UUID) (Measurement, error) {
	endpoint := fmt.Sprintf("/devices/%s/last-state", deviceUUID)

	var envelope lastStateEnvelope
	if err := c.do(http.MethodGet, endpoint, nil, &envelope); err != nil {
		return Measurement{}, err
	}
	return envelope.LatestMeasurement, nil
}
