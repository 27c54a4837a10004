package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"neurobiomark/internal/domain"
)

const demoRequestColumns = `id, name, email, purpose, ip, status, notes, created_at`

type demoRequestRepository struct {
	DB *sql.DB
}

// NewDemoRequestRepository returns a domain.DemoRequestRepository implemented with Postgres.
func NewDemoRequestRepository(db *sql.DB) domain.DemoRequestRepository {
	return &demoRequestRepository{DB: db}
}

func (r *demoRequestRepository) Create(ctx context.Context, req *domain.DemoRequest) error {
	query := `
		INSERT INTO demo_requests (name, email, purpose, ip, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		req.Name, req.Email, req.Purpose, req.IP, string(req.Status), req.Notes, req.CreatedAt,
	).Scan(&req.ID)
}

func (r *demoRequestRepository) ExistsSince(ctx context.Context, email string, since time.Time) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM demo_requests WHERE email = $1 AND created_at >= $2)`,
		email, since,
	).Scan(&exists)
	return exists, err
}

func (r *demoRequestRepository) Count(ctx context.Context, filter domain.DemoRequestFilter) (int, error) {
	where, args := demoRequestWhere(filter)
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM demo_requests`+where, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *demoRequestRepository) List(ctx context.Context, filter domain.DemoRequestFilter, page domain.PaginationParams) ([]*domain.DemoRequest, error) {
	where, args := demoRequestWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM demo_requests%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		demoRequestColumns, where, len(args)+1, len(args)+2)
	args = append(args, page.PageSize, page.Offset())
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDemoRequests(rows)
}

func (r *demoRequestRepository) ListAll(ctx context.Context) ([]*domain.DemoRequest, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+demoRequestColumns+` FROM demo_requests ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDemoRequests(rows)
}

func (r *demoRequestRepository) Update(ctx context.Context, id string, upd domain.DemoRequestUpdate) (*domain.DemoRequest, error) {
	var status, notes sql.NullString
	if upd.Status != nil {
		status = sql.NullString{String: string(*upd.Status), Valid: true}
	}
	if upd.Notes != nil {
		notes = sql.NullString{String: *upd.Notes, Valid: true}
	}
	query := `
		UPDATE demo_requests
		SET status = COALESCE($2, status), notes = COALESCE($3, notes)
		WHERE id = $1
		RETURNING ` + demoRequestColumns
	req, err := scanDemoRequest(r.DB.QueryRowContext(ctx, query, id, status, notes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

func (r *demoRequestRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM demo_requests WHERE id = $1`, id)
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

func (r *demoRequestRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM demo_requests WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *demoRequestRepository) CountByDay(ctx context.Context) ([]*domain.DailyCount, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
		FROM demo_requests
		GROUP BY day
		ORDER BY day`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []*domain.DailyCount
	for rows.Next() {
		var c domain.DailyCount
		if err := rows.Scan(&c.Day, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// demoRequestWhere builds the WHERE clause for filter. Search matches name or email
// case-insensitively as a literal substring.
func demoRequestWhere(filter domain.DemoRequestFilter) (string, []any) {
	var conds []string
	var args []any
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", len(args), len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDemoRequest(row rowScanner) (*domain.DemoRequest, error) {
	var req domain.DemoRequest
	var status string
	if err := row.Scan(&req.ID, &req.Name, &req.Email, &req.Purpose, &req.IP, &status, &req.Notes, &req.CreatedAt); err != nil {
		return nil, err
	}
	req.Status = domain.DemoRequestStatus(status)
	return &req, nil
}

func scanDemoRequests(rows *sql.Rows) ([]*domain.DemoRequest, error) {
	var out []*domain.DemoRequest
	for rows.Next() {
		req, err := scanDemoRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
