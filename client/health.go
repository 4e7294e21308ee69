package client

import "net/http"

// CheckHealth verifies that the API and its database are responsive. Any
// failure (timeout, connection refused, HTTP error, undecodable body) is
// reported as false rather than an error, so callers can gate a control loop
// on the result before starting it.
func (c *Client) CheckHealth() bool {
	var body map[string]any
	if err := c.do(http.MethodGet, "/test-db", nil, &body); err != nil {
		return false
	}

	_, ok := body["database_version"]
	return ok
}
