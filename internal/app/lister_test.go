package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmehra2102/TaskList/internal/domain"
	"github.com/dmehra2102/TaskList/internal/infrastructure/memory"
	"go.uber.org/zap"
)

var baseTime = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func seedStore(t *testing.T, n int, status func(i int) domain.TaskStatus) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	for i := 0; i < n; i++ {
		task := &domain.Task{
			ID:        fmt.Sprintf("task-%02d", i),
			Title:     fmt.Sprintf("Task %d", i),
			Status:    status(i),
			Priority:  i % 3,
			CreatedAt: baseTime.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Insert(context.Background(), task); err != nil {
			t.Fatalf("Insert failed: %v", err)
		}
	}
	return store
}

func allStatus(s domain.TaskStatus) func(int) domain.TaskStatus {
	return func(int) domain.TaskStatus { return s }
}

func mustValidate(t *testing.T, raw RawParams) *domain.ListQuery {
	t.Helper()
	q, err := ValidateListParams(raw)
	if err != nil {
		t.Fatalf("ValidateListParams(%v) failed: %v", raw, err)
	}
	return q
}

func TestTaskLister_LastPageScenario(t *testing.T) {
	store := seedStore(t, 12, allStatus(domain.StatusDone))
	lister := NewTaskLister(store, zap.NewNop(), time.Second)

	result, err := lister.List(context.Background(), mustValidate(t, RawParams{
		"page": "2", "limit": "10", "status": "done",
	}))
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	want := domain.PaginationInfo{
		CurrentPage: 2,
		TotalPages:  2,
		TotalItems:  12,
		HasNextPage: false,
		HasPrevPage: true,
	}
	if result.Pagination != want {
		t.Errorf("Pagination = %+v, want %+v", result.Pagination, want)
	}

	// Oldest two remain for the second page.
	if result.Items[0].ID != "task-01" || result.Items[1].ID != "task-00" {
		t.Errorf("unexpected page contents: %s, %s", result.Items[0].ID, result.Items[1].ID)
	}
}

func TestTaskLister_PageSizes(t *testing.T) {
	store := seedStore(t, 23, func(i int) domain.TaskStatus { return domain.Statuses[i%3] })
	lister := NewTaskLister(store, zap.NewNop(), time.Second)

	for _, status := range []string{"", "todo", "doing", "done"} {
		for _, limit := range []int{1, 4, 10, 50} {
			total := -1
			for page := 1; ; page++ {
				raw := RawParams{"limit": fmt.Sprint(limit), "page": fmt.Sprint(page)}
				if status != "" {
					raw["status"] = status
				}
				result, err := lister.List(context.Background(), mustValidate(t, raw))
				if err != nil {
					t.Fatalf("List failed: %v", err)
				}

				p := result.Pagination
				total = int(p.TotalItems)
				if len(result.Items) > limit {
					t.Fatalf("status=%q limit=%d page=%d: %d items exceed limit", status, limit, page, len(result.Items))
				}
				if p.CurrentPage < p.TotalPages && len(result.Items) != limit {
					t.Fatalf("status=%q limit=%d page=%d: non-last page has %d items", status, limit, page, len(result.Items))
				}
				if wantPages := (total + limit - 1) / limit; p.TotalPages != wantPages {
					t.Fatalf("TotalPages = %d, want %d", p.TotalPages, wantPages)
				}
				if p.HasNextPage != (p.CurrentPage < p.TotalPages) || p.HasPrevPage != (p.CurrentPage > 1) {
					t.Fatalf("inconsistent flags: %+v", p)
				}
				if page > p.TotalPages {
					if len(result.Items) != 0 {
						t.Fatalf("page beyond end returned %d items", len(result.Items))
					}
					break
				}
			}
			if total < 0 {
				t.Fatalf("no pages fetched")
			}
		}
	}
}

func TestTaskLister_EmptyStore(t *testing.T) {
	lister := NewTaskLister(memory.NewStore(), zap.NewNop(), time.Second)

	result, err := lister.List(context.Background(), mustValidate(t, RawParams{}))
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if result.Items == nil || len(result.Items) != 0 {
		t.Errorf("expected empty non-nil items, got %v", result.Items)
	}
	if result.Pagination.TotalPages != 0 || result.Pagination.HasNextPage || result.Pagination.HasPrevPage {
		t.Errorf("unexpected pagination for empty store: %+v", result.Pagination)
	}
}

func TestTaskLister_Idempotent(t *testing.T) {
	store := seedStore(t, 15, func(i int) domain.TaskStatus { return domain.Statuses[i%3] })
	lister := NewTaskLister(store, zap.NewNop(), time.Second)
	q := mustValidate(t, RawParams{"limit": "4", "page": "2"})

	first, err := lister.List(context.Background(), q)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := lister.List(context.Background(), q)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("repeated list differs:\n%+v\n%+v", first, again)
		}
	}
}

func TestTaskLister_SkipSelector(t *testing.T) {
	store := seedStore(t, 12, allStatus(domain.StatusTodo))
	lister := NewTaskLister(store, zap.NewNop(), time.Second)

	result, err := lister.List(context.Background(), mustValidate(t, RawParams{"skip": "10", "limit": "5"}))
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(result.Items) != 2 {
		t.Errorf("expected 2 items, got %d", len(result.Items))
	}
	if result.Pagination.CurrentPage != 3 || result.Pagination.TotalPages != 3 {
		t.Errorf("unexpected pagination: %+v", result.Pagination)
	}
}

type failingStore struct {
	findCalls  atomic.Int32
	countCalls atomic.Int32
	findErr    error
	countErr   error
}

func (s *failingStore) Find(ctx context.Context, f domain.TaskFilter, o domain.FindOptions) ([]*domain.Task, error) {
	s.findCalls.Add(1)
	if s.findErr != nil {
		return nil, s.findErr
	}
	return []*domain.Task{{ID: "a", Title: "a", Status: domain.StatusTodo}}, nil
}

func (s *failingStore) Count(ctx context.Context, f domain.TaskFilter) (int64, error) {
	s.countCalls.Add(1)
	if s.countErr != nil {
		return 0, s.countErr
	}
	return 1, nil
}

func TestTaskLister_StoreFailure(t *testing.T) {
	boom := errors.New("connection refused")

	tests := []struct {
		name  string
		store *failingStore
	}{
		{"find fails", &failingStore{findErr: boom}},
		{"count fails", &failingStore{countErr: boom}},
		{"both fail", &failingStore{findErr: boom, countErr: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := NewTaskLister(tt.store, zap.NewNop(), time.Second)
			result, err := lister.List(context.Background(), mustValidate(t, RawParams{}))
			if result != nil {
				t.Errorf("expected no partial result, got %+v", result)
			}
			if !errors.Is(err, domain.ErrStoreUnavailable) {
				t.Errorf("expected ErrStoreUnavailable, got %v", err)
			}
			if !errors.Is(err, boom) {
				t.Errorf("expected cause to be preserved, got %v", err)
			}
		})
	}
}

type blockingStore struct{}

func (blockingStore) Find(ctx context.Context, f domain.TaskFilter, o domain.FindOptions) ([]*domain.Task, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (blockingStore) Count(ctx context.Context, f domain.TaskFilter) (int64, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

func TestTaskLister_Timeout(t *testing.T) {
	lister := NewTaskLister(blockingStore{}, zap.NewNop(), 20*time.Millisecond)

	start := time.Now()
	_, err := lister.List(context.Background(), mustValidate(t, RawParams{}))
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded cause, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Errorf("timeout not enforced")
	}
}

func TestTaskLister_RejectsUnvalidatedQuery(t *testing.T) {
	store := &failingStore{}
	lister := NewTaskLister(store, zap.NewNop(), time.Second)

	for _, q := range []*domain.ListQuery{nil, {Limit: 0}, {Limit: 51}} {
		if _, err := lister.List(context.Background(), q); err == nil {
			t.Errorf("expected error for %+v", q)
		}
	}
	if store.findCalls.Load() != 0 || store.countCalls.Load() != 0 {
		t.Errorf("store must not be touched for invalid queries")
	}
}

func TestTaskLister_PagePastEndOfRange(t *testing.T) {
	store := seedStore(t, 3, allStatus(domain.StatusTodo))
	lister := NewTaskLister(store, zap.NewNop(), 0)

	tests := []struct {
		name     string
		selector domain.PageSelector
		limit    int
	}{
		{"page whose offset overflows", domain.PageAt(math.MaxInt/10 + 2), 10},
		{"largest valid page", domain.PageAt(domain.MaxPage), domain.MaxLimit},
		{"largest skip", domain.SkipBy(math.MaxInt), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := lister.List(context.Background(), &domain.ListQuery{Selector: tt.selector, Limit: tt.limit})
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(result.Items) != 0 {
				t.Errorf("expected no items past the end, got %d", len(result.Items))
			}
			if result.Pagination.TotalItems != 3 || result.Pagination.HasNextPage {
				t.Errorf("unexpected pagination: %+v", result.Pagination)
			}
			if result.Pagination.CurrentPage < 1 {
				t.Errorf("CurrentPage = %d, want positive", result.Pagination.CurrentPage)
			}
		})
	}
}
