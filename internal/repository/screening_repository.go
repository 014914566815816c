// This file contains data access for screenings.  A screening schedules
// a movie in a hall for a time window; listing queries are always
// relative to a caller-supplied "now" so that the temporal guards stay
// testable with a fixed clock.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mstepanov/cinema-booking/internal/model"
)

// ScreeningRepo manages persistence for screenings.
type ScreeningRepo struct {
	db *sql.DB
}

// NewScreeningRepo constructs a ScreeningRepo with the given DB handle.
func NewScreeningRepo(db *sql.DB) *ScreeningRepo {
	return &ScreeningRepo{db: db}
}

const screeningColumns = `id, movie_id, hall_id, starts_at, ends_at, price_cents, created_at, updated_at`

// ScreeningDetail joins a screening with its movie title and hall name
// for list responses, sparing handlers a second round of lookups.
type ScreeningDetail struct {
	ID         uint64    `json:"id"`
	MovieID    uint64    `json:"movie_id"`
	MovieTitle string    `json:"movie_title"`
	HallID     uint64    `json:"hall_id"`
	HallName   string    `json:"hall_name"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	PriceCents uint32    `json:"price_cents"`
}

// Create inserts a screening and reads the row back to populate
// DB-default timestamps.
func (r *ScreeningRepo) Create(ctx context.Context, s *model.Screening) error {
	const q = `INSERT INTO screenings (movie_id, hall_id, starts_at, ends_at, price_cents) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.MovieID, s.HallID, s.StartsAt.UTC(), s.EndsAt.UTC(), s.PriceCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT ` + screeningColumns + ` FROM screenings WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, s.ID).Scan(
		&s.ID, &s.MovieID, &s.HallID, &s.StartsAt, &s.EndsAt, &s.PriceCents, &s.CreatedAt, &s.UpdatedAt,
	)
}

// GetByID retrieves a screening by its ID.  Returns
// ErrScreeningNotFound when no row matches.
func (r *ScreeningRepo) GetByID(ctx context.Context, id uint64) (*model.Screening, error) {
	const q = `SELECT ` + screeningColumns + ` FROM screenings WHERE id = ?`
	var s model.Screening
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.MovieID, &s.HallID, &s.StartsAt, &s.EndsAt, &s.PriceCents, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScreeningNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListToday returns screenings that start today (in UTC) and have not
// started yet, soonest first.
func (r *ScreeningRepo) ListToday(ctx context.Context, now time.Time) ([]ScreeningDetail, error) {
	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	const q = `SELECT s.id, s.movie_id, m.title, s.hall_id, h.name, s.starts_at, s.ends_at, s.price_cents
	           FROM screenings s
	           JOIN movies m ON m.id = s.movie_id
	           JOIN cinema_halls h ON h.id = s.hall_id
	           WHERE s.starts_at >= ? AND s.starts_at < ?
	           ORDER BY s.starts_at ASC`
	rows, err := r.db.QueryContext(ctx, q, now, dayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectScreeningDetails(rows)
}

// ListUpcoming returns screenings with starts_at >= now ordered by
// start time ascending, optionally filtered by movie, paginated.
// Page numbers are 1-based.  The second return value is the total
// number of matching rows, for page links.
func (r *ScreeningRepo) ListUpcoming(ctx context.Context, now time.Time, movieID *uint64, page, pageSize int) ([]ScreeningDetail, int64, error) {
	if page < 1 {
		page = 1
	}
	cond := `s.starts_at >= ?`
	args := []any{now.UTC()}
	if movieID != nil {
		cond += ` AND s.movie_id = ?`
		args = append(args, *movieID)
	}

	var total int64
	countQ := `SELECT COUNT(*) FROM screenings s WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT s.id, s.movie_id, m.title, s.hall_id, h.name, s.starts_at, s.ends_at, s.price_cents
	      FROM screenings s
	      JOIN movies m ON m.id = s.movie_id
	      JOIN cinema_halls h ON h.id = s.hall_id
	      WHERE ` + cond + `
	      ORDER BY s.starts_at ASC
	      LIMIT ? OFFSET ?`
	args = append(args, pageSize, (page-1)*pageSize)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	items, err := collectScreeningDetails(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// CountOverlapping reports how many other screenings in the same hall
// overlap the [startsAt, endsAt) window.  The system does not forbid
// such overlaps; admin creation only logs them (see DESIGN.md).
func (r *ScreeningRepo) CountOverlapping(ctx context.Context, hallID uint64, startsAt, endsAt time.Time) (int64, error) {
	const q = `SELECT COUNT(*) FROM screenings
	           WHERE hall_id = ? AND starts_at < ? AND ends_at > ?`
	var n int64
	err := r.db.QueryRowContext(ctx, q, hallID, endsAt.UTC(), startsAt.UTC()).Scan(&n)
	return n, err
}

// Delete removes a screening; bookings for it cascade away.
func (r *ScreeningRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM screenings WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrScreeningNotFound
	}
	return nil
}

// DeleteAll truncates all screenings.  Used by the seed tool only.
func (r *ScreeningRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM screenings`)
	return err
}

func collectScreeningDetails(rows *sql.Rows) ([]ScreeningDetail, error) {
	result := make([]ScreeningDetail, 0)
	for rows.Next() {
		var d ScreeningDetail
		if err := rows.Scan(&d.ID, &d.MovieID, &d.MovieTitle, &d.HallID, &d.HallName, &d.StartsAt, &d.EndsAt, &d.PriceCents); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
