package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	tasksv1 "github.com/dmehra2102/TaskList/api/v1"
)

// Params are the listing parameters the client sends. Zero values are omitted.
type Params struct {
	Limit  int
	Page   int
	Status string
	Search string
}

func (p Params) values() url.Values {
	v := url.Values{}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Status != "" {
		v.Set("status", p.Status)
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	return v
}

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	Fields     []tasksv1.FieldError
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// NetworkError is a transport failure where no response was received.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: unable to reach server"
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient targets baseURL, e.g. "http://localhost:3000". A nil httpClient
// gets a client with a 15 second timeout.
func NewAPIClient(baseURL string, httpClient *http.Client) *APIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *APIClient) ListTasks(ctx context.Context, p Params) (*tasksv1.ListTasksResponse, error) {
	endpoint := c.baseURL + tasksv1.ListPath
	if q := p.values().Encode(); q != "" {
		endpoint += "?" + q
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
		}
		var errBody tasksv1.ErrorResponse
		if json.Unmarshal(body, &errBody) == nil && errBody.Error != "" {
			apiErr.Message = errBody.Error
			apiErr.Fields = errBody.Fields
		}
		return nil, apiErr
	}

	var out tasksv1.ListTasksResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if out.Items == nil {
		out.Items = []tasksv1.Task{}
	}
	return &out, nil
}

// errorMessage turns a fetch failure into the text shown to the user.
func errorMessage(err error) string {
	var apiErr *APIError
	var netErr *NetworkError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Error()
	case errors.As(err, &netErr):
		return netErr.Error()
	default:
		return "Failed to fetch tasks"
	}
}
