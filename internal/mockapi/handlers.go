package mockapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type deviceListResponse struct {
	Count       int         `json:"count"`
	DeviceUUIDs []uuid.UUID `json:"device_uuids"`
}

type lastStateResponse struct {
	LatestMeasurement measurement `json:"latest_measurement"`
}

type historicalResponse struct {
	Measurements []measurement `json:"measurements"`
}

func (s *Server) handleGetDevices(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, deviceListResponse{
		Count:       len(s.deviceUUIDs),
		DeviceUUIDs: s.deviceUUIDs,
	})
}

func (s *Server) handleGetLastState(w http.ResponseWriter, r *http.Request) {
	deviceUUID, err := uuid.Parse(chi.URLParam(r, "deviceUUID"))
	if err != nil {
		s.respondWithError(w, http.StatusUnprocessableEntity, "invalid device uuid")
		return
	}

	series, ok := s.series[deviceUUID]
	if !ok {
		s.respondWithError(w, http.StatusNotFound, "device not found")
		return
	}

	s.respondWithJSON(w, http.StatusOK, lastStateResponse{LatestMeasurement: series[0]})
}

func (s *Server) handleGetHistorical(w http.ResponseWriter, r *http.Request) {
	deviceUUID, err := uuid.Parse(chi.URLParam(r, "deviceUUID"))
	if err != nil {
		s.respondWithError(w, http.StatusUnprocessableEntity, "invalid device uuid")
		return
	}

	series, ok := s.series[deviceUUID]
	if !ok {
		s.respondWithError(w, http.StatusNotFound, "device not found")
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 5000 {
			s.respondWithError(w, http.StatusUnprocessableEntity, "limit must be between 1 and 5000")
			return
		}
	}

	var start, end time.Time
	if raw := r.URL.Query().Get("start"); raw != "" {
		if start, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			s.respondWithError(w, http.StatusUnprocessableEntity, "start must be an RFC 3339 timestamp")
			return
		}
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		if end, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			s.respondWithError(w, http.StatusUnprocessableEntity, "end must be an RFC 3339 timestamp")
			return
		}
	}

	// series is newest first; both bounds are inclusive
	matched := make([]measurement, 0, limit)
	for _, m := range series {
		ts, err := time.Parse(time.RFC3339, m.Timestamp)
		if err != nil {
			continue
		}
		if !start.IsZero() && ts.Before(start) {
			continue
		}
		if !end.IsZero() && ts.After(end) {
			continue
		}
		matched = append(matched, m)
		if len(matched) == limit {
			break
		}
	}

	s.respondWithJSON(w, http.StatusOK, historicalResponse{Measurements: matched})
}

func (s *Server) handleTestDB(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, http.StatusOK, map[string]string{"database_version": databaseVersion})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, status int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("error marshaling response", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func (s *Server) respondWithError(w http.ResponseWriter, status int, detail string) {
	s.respondWithJSON(w, status, map[string]string{"detail": detail})
}
