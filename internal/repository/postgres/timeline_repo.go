package postgres

import (
	"context"
	"database/sql"
	"errors"

	"neurobiomark/internal/domain"
)

type timelineRepository struct {
	DB *sql.DB
}

// NewTimelineRepository returns a domain.TimelineRepository implemented with Postgres.
func NewTimelineRepository(db *sql.DB) domain.TimelineRepository {
	return &timelineRepository{DB: db}
}

func (r *timelineRepository) Create(ctx context.Context, item *domain.TimelineItem) error {
	query := `
		INSERT INTO timeline_items (title, description, date, sort_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		item.Title, item.Description, item.Date, item.Order, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
}

func (r *timelineRepository) ListAll(ctx context.Context) ([]*domain.TimelineItem, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, title, description, date, sort_order, created_at, updated_at
		FROM timeline_items
		ORDER BY date ASC, sort_order ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.TimelineItem
	for rows.Next() {
		var it domain.TimelineItem
		if err := rows.Scan(&it.ID, &it.Title, &it.Description, &it.Date, &it.Order, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *timelineRepository) Update(ctx context.Context, item *domain.TimelineItem) error {
	query := `
		UPDATE timeline_items
		SET title = $2, description = $3, date = $4, sort_order = $5, updated_at = $6
		WHERE id = $1
		RETURNING created_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		item.ID, item.Title, item.Description, item.Date, item.Order, item.UpdatedAt,
	).Scan(&item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

func (r *timelineRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM timeline_items WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
