package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAPIClientListTasks(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"id":"1","title":"Write docs","status":"todo","priority":2,"createdAt":"2026-01-01T00:00:00Z"}],` +
			`"pagination":{"currentPage":1,"totalPages":1,"totalItems":1,"hasNextPage":false,"hasPrevPage":false}}`))
	}))
	defer srv.Close()

	c := NewAPIClient(srv.URL+"/", nil)
	resp, err := c.ListTasks(context.Background(), Params{Limit: 5, Status: "todo", Search: "docs"})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}

	if gotQuery != "limit=5&search=docs&status=todo" {
		t.Errorf("query = %q", gotQuery)
	}
	if len(resp.Items) != 1 || resp.Items[0].Title != "Write docs" || resp.Items[0].Priority != 2 {
		t.Errorf("unexpected items: %+v", resp.Items)
	}
	if resp.Pagination.TotalItems != 1 {
		t.Errorf("unexpected pagination: %+v", resp.Pagination)
	}
}

func TestAPIClientNullItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":null,"pagination":{"currentPage":1}}`))
	}))
	defer srv.Close()

	resp, err := NewAPIClient(srv.URL, nil).ListTasks(context.Background(), Params{})
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if resp.Items == nil {
		t.Errorf("expected empty, non-nil items")
	}
}

func TestAPIClientErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "validation failure",
			status:     http.StatusBadRequest,
			body:       `{"error":"invalid query parameters","fields":[{"field":"limit","message":"Limit must be an integer between 1 and 50"}]}`,
			wantStatus: 400,
			wantMsg:    "invalid query parameters (limit: Limit must be an integer between 1 and 50)",
		},
		{
			name:       "store unavailable",
			status:     http.StatusServiceUnavailable,
			body:       `{"error":"service unavailable"}`,
			wantStatus: 503,
			wantMsg:    "service unavailable",
		},
		{
			name:       "non json body",
			status:     http.StatusBadGateway,
			body:       `<html>bad gateway</html>`,
			wantStatus: 502,
			wantMsg:    "Bad Gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewAPIClient(srv.URL, nil).ListTasks(context.Background(), Params{})
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *APIError, got %v", err)
			}
			if apiErr.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.wantStatus)
			}
			if apiErr.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", apiErr.Error(), tt.wantMsg)
			}
			if errorMessage(err) != tt.wantMsg {
				t.Errorf("errorMessage = %q", errorMessage(err))
			}
		})
	}
}

func TestAPIClientNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := NewAPIClient(addr, nil).ListTasks(context.Background(), Params{})
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected *NetworkError, got %v", err)
	}
	if errorMessage(err) != "network error: unable to reach server" {
		t.Errorf("errorMessage = %q", errorMessage(err))
	}
}

func TestAPIClientCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAPIClient(srv.URL, nil).ListTasks(ctx, Params{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestErrorMessageFallback(t *testing.T) {
	if got := errorMessage(errors.New("failed to decode response: EOF")); got != "Failed to fetch tasks" {
		t.Errorf("errorMessage = %q", got)
	}
}
