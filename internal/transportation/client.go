package transportation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var ErrRequestFailed = errors.New("transportation api request failed")

// Client talks to the external transportation/logistics API: daily manifests,
// dispatch assignment, flight info, and airside parking/dock reservation.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetManifests(ctx context.Context) ([]Manifest, error) {
	var out manifestsResponse
	if err := c.get(ctx, "/mock/logistics/get_manifests", nil, &out); err != nil {
		return nil, err
	}
	return out.Manifests, nil
}

func (c *Client) AssignTasks(ctx context.Context, manifests []Manifest) ([]Assignment, error) {
	manifestsJSON, err := json.Marshal(manifests)
	if err != nil {
		return nil, fmt.Errorf("marshal manifests: %w", err)
	}

	params := url.Values{}
	params.Set("manifests_json", string(manifestsJSON))

	var out assignmentsResponse
	if err := c.get(ctx, "/mock/dispatch/assign_tasks", params, &out); err != nil {
		return nil, err
	}
	return out.Assignments, nil
}

func (c *Client) FetchFlightInfo(ctx context.Context, flightNumber string) (*FlightInfo, error) {
	params := url.Values{}
	params.Set("flight_number", flightNumber)

	var out FlightInfo
	if err := c.get(ctx, "/mock/air/flightinfo", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ReserveParking(ctx context.Context) (*ParkingReservation, error) {
	var out ParkingReservation
	if err := c.get(ctx, "/mock/air/reserveparking", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ReserveDock(ctx context.Context, terminal string) (*DockReservation, error) {
	params := url.Values{}
	params.Set("terminal", terminal)

	var out DockReservation
	if err := c.get(ctx, "/mock/air/reservedock", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("x-token", c.Token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrRequestFailed, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	return nil
}
