// Package memory provides an in-process TaskStore for local development and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/dmehra2102/TaskList/internal/domain"
)

type Store struct {
	mu    sync.RWMutex
	tasks []*domain.Task
}

func NewStore(tasks ...*domain.Task) *Store {
	s := &Store{}
	for _, t := range tasks {
		s.insert(t)
	}
	return s
}

func (s *Store) Insert(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insert(task)
	return nil
}

func (s *Store) insert(task *domain.Task) {
	cp := *task
	s.tasks = append(s.tasks, &cp)
	sort.SliceStable(s.tasks, func(i, j int) bool {
		return less(s.tasks[i], s.tasks[j])
	})
}

func (s *Store) Find(ctx context.Context, filter domain.TaskFilter, opts domain.FindOptions) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// A negative window is past the end rather than the first page.
	if opts.Offset < 0 || opts.Limit <= 0 {
		return []*domain.Task{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Task, 0, min(opts.Limit, len(s.tasks)))
	skipped := 0
	for _, t := range s.tasks {
		if !matches(t, filter) {
			continue
		}
		if skipped < opts.Offset {
			skipped++
			continue
		}
		if len(out) == opts.Limit {
			break
		}
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) Count(ctx context.Context, filter domain.TaskFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, t := range s.tasks {
		if matches(t, filter) {
			n++
		}
	}
	return n, nil
}

// less orders by created_at descending, then id descending.
func less(a, b *domain.Task) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func matches(t *domain.Task, f domain.TaskFilter) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Search)) {
		return false
	}
	return true
}
