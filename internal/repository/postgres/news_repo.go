package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"neurobiomark/internal/domain"
)

const newsColumns = `id, title, content, category, slug, date, created_at, updated_at`

type newsRepository struct {
	DB *sql.DB
}

// NewNewsRepository returns a domain.NewsRepository implemented with Postgres.
func NewNewsRepository(db *sql.DB) domain.NewsRepository {
	return &newsRepository{DB: db}
}

func (r *newsRepository) Create(ctx context.Context, item *domain.NewsItem) error {
	query := `
		INSERT INTO news (title, content, category, slug, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		item.Title, item.Content, string(item.Category), nullString(item.Slug), item.Date, item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	return slugConflict(err, item.Slug)
}

func (r *newsRepository) GetByID(ctx context.Context, id string) (*domain.NewsItem, error) {
	item, err := scanNewsItem(r.DB.QueryRowContext(ctx, `SELECT `+newsColumns+` FROM news WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *newsRepository) Count(ctx context.Context, category domain.NewsCategory) (int, error) {
	var n int
	var err error
	if category == "" {
		err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM news`).Scan(&n)
	} else {
		err = r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM news WHERE category = $1`, string(category)).Scan(&n)
	}
	return n, err
}

func (r *newsRepository) List(ctx context.Context, category domain.NewsCategory, page domain.PaginationParams) ([]*domain.NewsItem, error) {
	var rows *sql.Rows
	var err error
	if category == "" {
		rows, err = r.DB.QueryContext(ctx,
			`SELECT `+newsColumns+` FROM news ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`,
			page.PageSize, page.Offset())
	} else {
		rows, err = r.DB.QueryContext(ctx,
			`SELECT `+newsColumns+` FROM news WHERE category = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`,
			string(category), page.PageSize, page.Offset())
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.NewsItem
	for rows.Next() {
		item, err := scanNewsItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *newsRepository) Update(ctx context.Context, item *domain.NewsItem) error {
	query := `
		UPDATE news
		SET title = $2, content = $3, category = $4, slug = $5, updated_at = $6,
		    date = CASE WHEN $7::timestamptz IS NULL THEN date ELSE $7 END
		WHERE id = $1
		RETURNING date, created_at
	`
	var date sql.NullTime
	if !item.Date.IsZero() {
		date = sql.NullTime{Time: item.Date, Valid: true}
	}
	err := r.DB.QueryRowContext(ctx, query,
		item.ID, item.Title, item.Content, string(item.Category), nullString(item.Slug), item.UpdatedAt, date,
	).Scan(&item.Date, &item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return slugConflict(err, item.Slug)
}

func (r *newsRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
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

func scanNewsItem(row rowScanner) (*domain.NewsItem, error) {
	var item domain.NewsItem
	var category string
	var slug sql.NullString
	if err := row.Scan(&item.ID, &item.Title, &item.Content, &category, &slug, &item.Date, &item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, err
	}
	item.Category = domain.NewsCategory(category)
	if slug.Valid {
		item.Slug = &slug.String
	}
	return &item, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// slugConflict maps a unique violation on news.slug to ErrInvalidInput.
func slugConflict(err error, slug *string) error {
	var perr *pq.Error
	if errors.As(err, &perr) && perr.Code == "23505" && slug != nil {
		return fmt.Errorf("%w: slug already exists: %s", domain.ErrInvalidInput, *slug)
	}
	return err
}
