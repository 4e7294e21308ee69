package client

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestGetLastState(t *testing.T) {
	deviceUUID := uuid.MustParse("67890684-3b14-42cf-b785-df28ce570400")

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprintf(w, `{"latest_measurement":{"timestamp":"2026-02-07T10:15:00Z","uuid":"%s","data":{"voltage":231.4}}}`, deviceUUID)
	}))
	defer server.Close()

	c := New(server.URL, WithLogger(testLogger()))

	m, err := c.GetLastState(deviceUUID)
	if err != nil {
		t.Fatalf("GetLastState() error = %v", err)
	}

	wantPath := "/devices/" + deviceUUID.String() + "/last-state"
	if gotPath != wantPath {
		t.Errorf("request path = %q, want %q", gotPath, wantPath)
	}
	if m.Timestamp != "2026-02-07T10:15:00Z" {
		t.Errorf("Timestamp = %q, want 2026-02-07T10:15:00Z", m.Timestamp)
	}
	if m.UUID != deviceUUID.String() {
		t.Errorf("UUID = %q, want %q", m.UUID, deviceUUID)
	}
	if got := m.Data["voltage"]; got != 231.4 {
		t.Errorf("Data[voltage] = %v, want 231.4", got)
	}
}

func TestGetLastStateMissingEnvelopeKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := New(server.URL, WithLogger(testLogger()))

	m, err := c.GetLastState(uuid.New())
	if err != nil {
		t.Fatalf("GetLastState() error = %v, want nil for missing envelope key", err)
	}
	if !reflect.DeepEqual(m, Measurement{}) {
		t.Errorf("GetLastState() = %+v, want zero Measurement", m)
	}
}

func TestGetDevices(t *testing.T) {
	uuids := []uuid.UUID{
		uuid.MustParse("0a1f7d62-9c4e-4b8a-8a31-acde52c81901"),
		uuid.MustParse("5b2c8e73-1d5f-4c9b-9b42-bdef63d92a12"),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/devices" {
			t.Errorf("request path = %q, want /devices", r.URL.Path)
		}
		fmt.Fprintf(w, `{"count":2,"device_uuids":["%s","%s"]}`, uuids[0], uuids[1])
	}))
	defer server.Close()

	c := New(server.URL, WithLogger(testLogger()))

	devices, err := c.GetDevices()
	if err != nil {
		t.Fatalf("GetDevices() error = %v", err)
	}
	if devices.Count != 2 {
		t.Errorf("Count = %d, want 2", devices.Count)
	}
	if !reflect.DeepEqual(devices.DeviceUUIDs, uuids) {
		t.Errorf("DeviceUUIDs = %v, want %v", devices.DeviceUUIDs, uuids)
	}
}
