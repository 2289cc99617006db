package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmehra2102/TaskList/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errInvalidQuery = errors.New("list query must be validated before execution")

// TaskLister executes validated list queries against a TaskStore.
type TaskLister struct {
	store   domain.TaskStore
	logger  *zap.Logger
	tracer  trace.Tracer
	timeout time.Duration
}

// NewTaskLister wires the lister to an explicit store handle. A zero timeout disables
// the per-request store deadline.
func NewTaskLister(store domain.TaskStore, logger *zap.Logger, timeout time.Duration) *TaskLister {
	return &TaskLister{
		store:   store,
		logger:  logger,
		tracer:  otel.Tracer("task-lister"),
		timeout: timeout,
	}
}

// List fetches one page and the total count concurrently and shapes the result.
// Store failures are returned wrapped in domain.ErrStoreUnavailable and never as a
// partial page.
func (l *TaskLister) List(ctx context.Context, q *domain.ListQuery) (*domain.ListResult, error) {
	if q == nil || q.Limit < 1 || q.Limit > domain.MaxLimit {
		return nil, errInvalidQuery
	}

	ctx, span := l.tracer.Start(ctx, "TaskLister.List")
	defer span.End()

	offset := q.Selector.Offset(q.Limit)
	currentPage := q.Selector.CurrentPage(q.Limit)

	span.SetAttributes(
		attribute.Int("list.offset", offset),
		attribute.Int("list.limit", q.Limit),
		attribute.String("list.status", statusLabel(q.Filter)),
		attribute.Bool("list.search", q.Filter.Search != ""),
	)

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	var (
		items []*domain.Task
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = l.store.Find(gctx, q.Filter, domain.FindOptions{
			Sort:   domain.SortCreatedAtDesc,
			Offset: offset,
			Limit:  q.Limit,
		})
		observeStoreOp("find", err)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = l.store.Count(gctx, q.Filter)
		observeStoreOp("count", err)
		return err
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "store failure")
		l.logger.Error("failed to list tasks",
			zap.Error(err),
			zap.String("status", statusLabel(q.Filter)),
			zap.Int("offset", offset),
			zap.Int("limit", q.Limit),
		)
		if errors.Is(err, domain.ErrStoreUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}

	if items == nil {
		items = make([]*domain.Task, 0)
	}

	pagination := domain.NewPaginationInfo(currentPage, q.Limit, total)

	span.SetAttributes(
		attribute.Int64("list.total_items", total),
		attribute.Int("list.returned", len(items)),
	)

	return &domain.ListResult{
		Items:      items,
		Pagination: pagination,
	}, nil
}

func statusLabel(f domain.TaskFilter) string {
	if f.Status == nil {
		return "any"
	}
	return f.Status.String()
}
