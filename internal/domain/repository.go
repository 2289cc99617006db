package domain

import "context"

// TaskFilter narrows a listing. Zero-value fields mean "no filter" for that dimension.
type TaskFilter struct {
	Status *TaskStatus
	Search string
}

type SortOrder int

const (
	// SortCreatedAtDesc orders newest first, ties broken by id descending.
	SortCreatedAtDesc SortOrder = iota
)

// FindOptions selects the window of a filtered listing.
type FindOptions struct {
	Sort   SortOrder
	Offset int
	Limit  int
}

// TaskStore defines the read contract the listing engine depends on
type TaskStore interface {
	// Find returns up to opts.Limit tasks matching filter, starting at opts.Offset
	Find(ctx context.Context, filter TaskFilter, opts FindOptions) ([]*Task, error)

	// Count returns the number of tasks matching filter
	Count(ctx context.Context, filter TaskFilter) (int64, error)
}

// TaskWriter is implemented by stores that can be seeded.
type TaskWriter interface {
	Insert(ctx context.Context, task *Task) error
}
