// Package tasksv1 defines the JSON wire format of the task listing API.
package tasksv1

import (
	"time"

	"github.com/dmehra2102/TaskList/internal/domain"
)

// ListPath is the collection endpoint.
const ListPath = "/api/tasks"

type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Priority  int       `json:"priority"`
	CreatedAt time.Time `json:"createdAt"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

type ListTasksResponse struct {
	Items      []Task     `json:"items"`
	Pagination Pagination `json:"pagination"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

func NewListTasksResponse(result *domain.ListResult) ListTasksResponse {
	items := make([]Task, len(result.Items))
	for i, t := range result.Items {
		items[i] = Task{
			ID:        t.ID,
			Title:     t.Title,
			Status:    t.Status.String(),
			Priority:  t.Priority,
			CreatedAt: t.CreatedAt.UTC(),
		}
	}

	p := result.Pagination
	return ListTasksResponse{
		Items: items,
		Pagination: Pagination{
			CurrentPage: p.CurrentPage,
			TotalPages:  p.TotalPages,
			TotalItems:  p.TotalItems,
			HasNextPage: p.HasNextPage,
			HasPrevPage: p.HasPrevPage,
		},
	}
}

func NewValidationErrorResponse(err *domain.ValidationError) ErrorResponse {
	fields := make([]FieldError, len(err.Fields))
	for i, f := range err.Fields {
		fields[i] = FieldError{Field: f.Field, Message: f.Message}
	}
	return ErrorResponse{
		Error:  "invalid query parameters",
		Fields: fields,
	}
}
