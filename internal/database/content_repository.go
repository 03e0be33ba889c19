package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/opendev-labs/auto-notion/internal/domain"
)

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

// DefaultListLimit bounds ListByPage when no limit is given.
const DefaultListLimit = 100

type contentRow struct {
	Payload []byte `db:"payload"`
	Status  string `db:"status"`
}

// ContentRepository stores content items as JSONB documents keyed by id.
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository creates a new repository
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

const insertItemQuery = `
		INSERT INTO content_items (
			id, page_name, scheduled_date, scheduled_time, format,
			status, score, passed, payload
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

func itemArgs(item *domain.ContentItem) ([]any, error) {
	payload, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("marshal content item %s: %w", item.ID, err)
	}
	return []any{
		item.ID, item.PageName, item.ScheduledDate, item.ScheduledTime, string(item.Format),
		string(item.Status), item.ComplianceCheck.Score, item.ComplianceCheck.Passed, payload,
	}, nil
}

func insertError(item *domain.ContentItem, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: content item %s", domain.ErrAlreadyExists, item.ID)
	}
	return fmt.Errorf("insert content item %s: %w", item.ID, err)
}

// SaveItems inserts items in one transaction. A duplicate id or an already
// scheduled page slot aborts the whole batch with domain.ErrAlreadyExists.
func (r *ContentRepository) SaveItems(ctx context.Context, items []domain.ContentItem) (err error) {
	if len(items) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i := range items {
		item := &items[i]
		args, argsErr := itemArgs(item)
		if argsErr != nil {
			return argsErr
		}
		if _, execErr := tx.ExecContext(ctx, insertItemQuery, args...); execErr != nil {
			return insertError(item, execErr)
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("commit transaction: %w", commitErr)
	}
	return nil
}

// SaveNewItems inserts the items whose page slot is still free and returns
// the ones it stored. Items for occupied slots are dropped.
func (r *ContentRepository) SaveNewItems(
	ctx context.Context,
	items []domain.ContentItem,
) (stored []domain.ContentItem, err error) {
	if len(items) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := insertItemQuery + `
		ON CONFLICT (page_name, scheduled_date, scheduled_time) DO NOTHING
		RETURNING id`

	for i := range items {
		item := &items[i]
		args, argsErr := itemArgs(item)
		if argsErr != nil {
			return nil, argsErr
		}

		var id string
		scanErr := tx.QueryRowContext(ctx, query, args...).Scan(&id)
		if errors.Is(scanErr, sql.ErrNoRows) {
			continue
		}
		if scanErr != nil {
			return nil, insertError(item, scanErr)
		}
		stored = append(stored, *item)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return nil, fmt.Errorf("commit transaction: %w", commitErr)
	}
	return stored, nil
}

// GetByID retrieves a content item by ID
func (r *ContentRepository) GetByID(ctx context.Context, id string) (domain.ContentItem, error) {
	var row contentRow
	query := `SELECT payload, status FROM content_items WHERE id = $1`

	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ContentItem{}, fmt.Errorf("%w: content item %s", domain.ErrNotFound, id)
		}
		return domain.ContentItem{}, fmt.Errorf("get content item: %w", err)
	}

	return row.decode()
}

// ListByPage returns a page's items scheduled on or after fromDate
// (YYYY-MM-DD), in schedule order.
func (r *ContentRepository) ListByPage(ctx context.Context, page, fromDate string, limit int) ([]domain.ContentItem, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	var rows []contentRow
	query := `
		SELECT payload, status
		FROM content_items
		WHERE page_name = $1 AND scheduled_date >= $2
		ORDER BY scheduled_date ASC, scheduled_time ASC, id ASC
		LIMIT $3`

	if err := r.db.SelectContext(ctx, &rows, query, page, fromDate, limit); err != nil {
		return nil, fmt.Errorf("list content items: %w", err)
	}

	items := make([]domain.ContentItem, 0, len(rows))
	for _, row := range rows {
		item, err := row.decode()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// UpdateStatus moves an item from one status to another. It fails with
// domain.ErrInvalidStatus when the stored status is no longer from.
func (r *ContentRepository) UpdateStatus(ctx context.Context, id string, from, to domain.ContentStatus) error {
	query := `
		UPDATE content_items
		SET status = $3,
		    payload = jsonb_set(payload, '{status}', to_jsonb($3::text)),
		    updated_at = NOW()
		WHERE id = $1 AND status = $2`

	result, err := r.db.ExecContext(ctx, query, id, string(from), string(to))
	if err != nil {
		return fmt.Errorf("update content status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: content item %s is no longer %s", domain.ErrInvalidStatus, id, from)
	}
	return nil
}

// Ping checks database connectivity.
func (r *ContentRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (row contentRow) decode() (domain.ContentItem, error) {
	var item domain.ContentItem
	if err := json.Unmarshal(row.Payload, &item); err != nil {
		return domain.ContentItem{}, fmt.Errorf("decode content item: %w", err)
	}
	item.Status = domain.ContentStatus(row.Status)
	return item, nil
}
