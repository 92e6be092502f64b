package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"flotavista-backend/internal/models"
)

// TrackerClient talks to the external GPS tracking platform that knows
// whether each vehicle's device is currently reporting. It implements
// livestatus.Provider.
type TrackerClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// trackerStatusRequest is the payload for the batch status endpoint
type trackerStatusRequest struct {
	VehicleNumbers []int `json:"vehicle_numbers"`
}

// trackerDeviceStatus is one device entry in the tracker's response
type trackerDeviceStatus struct {
	VehicleNumber int    `json:"vehicle_number"`
	IsOnline      *bool  `json:"is_online"`
	LastReportMs  int64  `json:"last_report_ms"`
	Error         string `json:"error,omitempty"`
}

type trackerStatusResponse struct {
	Devices []trackerDeviceStatus `json:"devices"`
}

// NewTrackerClient reads TRACKER_API_URL / TRACKER_API_KEY from the
// environment. With no URL configured every fetch fails and the dashboard
// degrades to all-unknown, which is the intended behavior.
func NewTrackerClient() *TrackerClient {
	baseURL := os.Getenv("TRACKER_API_URL")
	if baseURL == "" {
		log.Printf("⚠️  TRACKER_API_URL not set - live vehicle status disabled")
	}
	return &TrackerClient{
		baseURL: baseURL,
		apiKey:  os.Getenv("TRACKER_API_KEY"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchStatuses asks the tracker for the live status of the given vehicles.
// Devices the tracker reports an error for come back as unknown with the
// error attached; vehicles the tracker does not know are simply absent.
func (c *TrackerClient) FetchStatuses(ctx context.Context, vehicleNumbers []int) (map[int]models.VehicleOnlineStatus, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("tracker API not configured")
	}
	if len(vehicleNumbers) == 0 {
		return map[int]models.VehicleOnlineStatus{}, nil
	}

	body, err := json.Marshal(trackerStatusRequest{VehicleNumbers: vehicleNumbers})
	if err != nil {
		return nil, fmt.Errorf("failed to encode tracker request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/devices/status", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build tracker request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tracker request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tracker API returned status %d", resp.StatusCode)
	}

	var parsed trackerStatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode tracker response: %w", err)
	}

	statuses := make(map[int]models.VehicleOnlineStatus, len(parsed.Devices))
	for _, d := range parsed.Devices {
		st := models.VehicleOnlineStatus{
			VehicleNumber: d.VehicleNumber,
			IsOnline:      d.IsOnline,
			Timestamp:     d.LastReportMs,
			Error:         d.Error,
		}
		if d.Error != "" {
			// A per-device tracker error means unknown, not offline
			st.IsOnline = nil
		}
		statuses[d.VehicleNumber] = st
	}
	return statuses, nil
}
