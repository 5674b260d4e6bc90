package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"attendsheet/internal/attendance"
)

// ErrNotFound is returned when the service reports 404 for an id.
var ErrNotFound = errors.New("record not found")

// Client calls the attendance records API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a client for the given server base URL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ListRecords fetches every record in the given sort order.
func (c *Client) ListRecords(ctx context.Context, order attendance.SortOrder) ([]attendance.Record, error) {
	url := c.BaseURL + "/api/records?sort=" + string(order)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	var records []attendance.Record
	if err := c.do(req, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateRecord inserts a new record and returns the assigned id and creation
// timestamp.
func (c *Client) CreateRecord(ctx context.Context, f attendance.Fields) (id, createdAt int64, err error) {
	req, err := c.jsonRequest(ctx, http.MethodPost, "/api/records", f)
	if err != nil {
		return 0, 0, err
	}

	var out struct {
		ID        int64 `json:"id"`
		CreatedAt int64 `json:"createdAt"`
	}
	if err := c.do(req, &out); err != nil {
		return 0, 0, err
	}
	return out.ID, out.CreatedAt, nil
}

// UpdateRecord overwrites the full record addressed by id. ErrNotFound when no
// such record exists.
func (c *Client) UpdateRecord(ctx context.Context, id int64, f attendance.Fields) error {
	req, err := c.jsonRequest(ctx, http.MethodPut, fmt.Sprintf("/api/records/%d", id), f)
	if err != nil {
		return err
	}

	var out struct {
		Changes int64 `json:"changes"`
	}
	return c.do(req, &out)
}

// DeleteRecord removes the record addressed by id. ErrNotFound when no such
// record exists.
func (c *Client) DeleteRecord(ctx context.Context, id int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.BaseURL+fmt.Sprintf("/api/records/%d", id), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// Health checks service availability.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/health", nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) jsonRequest(ctx context.Context, method, path string, payload any) (*http.Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do executes the request, maps 404 to ErrNotFound and any other non-2xx to an
// error carrying the server's message, and decodes a successful body into out
// when out is non-nil.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("attendance service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 300 {
		var envelope struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(data, &envelope) == nil && envelope.Error != "" {
			return fmt.Errorf("attendance service error %s: %s", resp.Status, envelope.Error)
		}
		return fmt.Errorf("attendance service error %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
