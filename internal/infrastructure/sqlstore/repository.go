package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmehra2102/TaskList/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultQueryTimeout = 5 * time.Second

// Repository is a TaskStore over database/sql.
type Repository struct {
	db           *sql.DB
	dialect      Dialect
	tracer       trace.Tracer
	queryTimeout time.Duration
}

func NewRepository(db *sql.DB, dialect Dialect) *Repository {
	return &Repository{
		db:           db,
		dialect:      dialect,
		tracer:       otel.Tracer(dialect.Name + "-repository"),
		queryTimeout: defaultQueryTimeout,
	}
}

// WithQueryTimeout overrides the per-query deadline.
func (r *Repository) WithQueryTimeout(d time.Duration) *Repository {
	if d > 0 {
		r.queryTimeout = d
	}
	return r
}

func (r *Repository) Insert(ctx context.Context, task *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	ctx, span := r.tracer.Start(ctx, "repository.Insert")
	defer span.End()

	span.SetAttributes(attribute.String("task.id", task.ID))

	d := r.dialect
	query := fmt.Sprintf(`
		INSERT INTO tasks (id, title, status, priority, created_at)
		VALUES (%s, %s, %s, %s, %s)
	`, d.placeholder(1), d.placeholder(2), d.placeholder(3), d.placeholder(4), d.placeholder(5))

	_, err := r.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		string(task.Status),
		task.Priority,
		task.CreatedAt.UTC(),
	)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: failed to insert task: %w", domain.ErrStoreUnavailable, err)
	}

	return nil
}

func (r *Repository) Find(ctx context.Context, filter domain.TaskFilter, opts domain.FindOptions) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	ctx, span := r.tracer.Start(ctx, "repository.Find")
	defer span.End()

	where, args := buildWhereClause(r.dialect, filter)
	orderBy := buildOrderByClause(opts.Sort)

	query := fmt.Sprintf(`
		SELECT id, title, status, priority, created_at
		FROM tasks
		WHERE %s
		%s
		LIMIT %s OFFSET %s
	`, where, orderBy, r.dialect.placeholder(len(args)+1), r.dialect.placeholder(len(args)+2))

	args = append(args, opts.Limit, opts.Offset)

	span.SetAttributes(
		attribute.Int("offset", opts.Offset),
		attribute.Int("limit", opts.Limit),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: failed to list tasks: %w", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0, opts.Limit)
	for rows.Next() {
		task := &domain.Task{}
		var status string

		err := rows.Scan(
			&task.ID,
			&task.Title,
			&status,
			&task.Priority,
			&task.CreatedAt,
		)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("%w: failed to scan task: %w", domain.ErrStoreUnavailable, err)
		}

		task.Status = domain.TaskStatus(status)
		task.CreatedAt = task.CreatedAt.UTC()
		tasks = append(tasks, task)
	}

	if err = rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: error iterating tasks: %w", domain.ErrStoreUnavailable, err)
	}

	span.SetAttributes(attribute.Int("returned_count", len(tasks)))

	return tasks, nil
}

func (r *Repository) Count(ctx context.Context, filter domain.TaskFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()

	ctx, span := r.tracer.Start(ctx, "repository.Count")
	defer span.End()

	where, args := buildWhereClause(r.dialect, filter)
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM tasks WHERE %s", where)

	var totalCount int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("%w: failed to count tasks: %w", domain.ErrStoreUnavailable, err)
	}

	span.SetAttributes(attribute.Int64("total_count", totalCount))
	return totalCount, nil
}

// Ping reports whether the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.queryTimeout)
	defer cancel()
	return r.db.PingContext(ctx)
}

func buildWhereClause(d Dialect, filter domain.TaskFilter) (string, []any) {
	conditions := []string{"1 = 1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, "status = "+d.placeholder(len(args)))
	}

	if filter.Search != "" {
		args = append(args, containsPattern(filter.Search))
		conditions = append(conditions, d.containsClause("title", len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

// id breaks created_at ties so pages stay stable.
var orderByClauses = map[domain.SortOrder]string{
	domain.SortCreatedAtDesc: "ORDER BY created_at DESC, id DESC",
}

func buildOrderByClause(sort domain.SortOrder) string {
	if clause, ok := orderByClauses[sort]; ok {
		return clause
	}
	return orderByClauses[domain.SortCreatedAtDesc]
}
