package mockapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := NewServer(slog.New(slog.NewTextHandler(io.Discard, nil)))
	server := httptest.NewServer(s.Router())
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, url string) (int, map[string]any) {
	t.Helper()

	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("GET %s: decoding body: %v", url, err)
	}
	return res.StatusCode, body
}

func TestHandleGetDevices(t *testing.T) {
	server := newTestServer(t)

	status, body := get(t, server.URL+"/devices")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	uuids, ok := body["device_uuids"].([]any)
	if !ok {
		t.Fatalf("device_uuids missing from body: %v", body)
	}
	if count := body["count"].(float64); int(count) != len(uuids) {
		t.Errorf("count = %v, want %d", count, len(uuids))
	}
	if len(uuids) == 0 {
		t.Error("mock backend seeded no devices")
	}
}

func TestHandleGetLastState(t *testing.T) {
	server := newTestServer(t)

	deviceUUID := seedDeviceUUIDs[0].String()
	status, body := get(t, server.URL+"/devices/"+deviceUUID+"/last-state")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	m, ok := body["latest_measurement"].(map[string]any)
	if !ok {
		t.Fatalf("latest_measurement missing from body: %v", body)
	}
	if m["uuid"] != deviceUUID {
		t.Errorf("uuid = %v, want %s", m["uuid"], deviceUUID)
	}
	data, ok := m["data"].(map[string]any)
	if !ok {
		t.Fatalf("data payload missing: %v", m)
	}
	for _, key := range []string{"voltage", "frequency", "power_kw"} {
		if _, ok := data[key]; !ok {
			t.Errorf("data missing %q: %v", key, data)
		}
	}
}

func TestHandleGetLastStateErrors(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{
			name:       "unknown device",
			path:       "/devices/00000000-0000-0000-0000-000000000000/last-state",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "invalid uuid",
			path:       "/devices/not-a-uuid/last-state",
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, server.URL+tt.path)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if _, ok := body["detail"]; !ok {
				t.Errorf("error body missing detail: %v", body)
			}
		})
	}
}

func TestHandleGetHistoricalLimit(t *testing.T) {
	server := newTestServer(t)
	base := server.URL + "/devices/" + seedDeviceUUIDs[0].String() + "/historical"

	status, body := get(t, base+"?limit=5")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	measurements, ok := body["measurements"].([]any)
	if !ok {
		t.Fatalf("measurements missing from body: %v", body)
	}
	if len(measurements) != 5 {
		t.Errorf("len(measurements) = %d, want 5", len(measurements))
	}

	status, _ = get(t, base+"?limit=5001")
	if status != http.StatusUnprocessableEntity {
		t.Errorf("status for limit=5001 = %d, want 422", status)
	}

	status, _ = get(t, base+"?start=yesterday")
	if status != http.StatusUnprocessableEntity {
		t.Errorf("status for malformed start = %d, want 422", status)
	}
}

func TestHandleTestDB(t *testing.T) {
	server := newTestServer(t)

	status, body := get(t, server.URL+"/test-db")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if _, ok := body["database_version"]; !ok {
		t.Errorf("body missing database_version: %v", body)
	}
}
