package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mstepanov/cinema-booking/internal/model"
)

// MovieRepo provides CRUD operations for movies.  Movies are written
// by administrators and the seed tool only; the booking path reads
// them through screenings.
type MovieRepo struct {
	db *sql.DB
}

// NewMovieRepo constructs a MovieRepo with the given DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

const movieColumns = `id, title, description, duration_min, poster_path, created_at, updated_at`

func scanMovie(row interface{ Scan(...any) error }) (*model.Movie, error) {
	var m model.Movie
	var poster sql.NullString
	if err := row.Scan(&m.ID, &m.Title, &m.Description, &m.DurationMin, &poster, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	if poster.Valid {
		p := poster.String
		m.PosterPath = &p
	}
	return &m, nil
}

// Create inserts a movie and reads the row back so DB-default
// timestamps are populated on the model.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (title, description, duration_min, poster_path) VALUES (?, ?, ?, ?)`
	var poster any
	if m.PosterPath != nil {
		poster = *m.PosterPath
	}
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Description, m.DurationMin, poster)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	const sel = `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`
	got, err := scanMovie(r.db.QueryRowContext(ctx, sel, uint64(id)))
	if err != nil {
		return err
	}
	*m = *got
	return nil
}

// GetByID retrieves a movie by its ID.  Returns ErrMovieNotFound when
// no row matches.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies WHERE id = ?`
	m, err := scanMovie(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return m, nil
}

// ListAll returns every movie ordered by title.  An empty catalog
// yields an empty slice and nil error.
func (r *MovieRepo) ListAll(ctx context.Context) ([]model.Movie, error) {
	const q = `SELECT ` + movieColumns + ` FROM movies ORDER BY title`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update overwrites title, description, duration and poster path of an
// existing movie.  Returns ErrMovieNotFound when the row is missing.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	const q = `UPDATE movies
	           SET title = ?, description = ?, duration_min = ?, poster_path = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	var poster any
	if m.PosterPath != nil {
		poster = *m.PosterPath
	}
	res, err := r.db.ExecContext(ctx, q, m.Title, m.Description, m.DurationMin, poster, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is also 0 when nothing changed; confirm existence.
		if _, err := r.GetByID(ctx, m.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a movie.  Its screenings (and their bookings) go with
// it via ON DELETE CASCADE.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM movies WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// DeleteAll truncates the movie catalog.  Used by the seed tool only.
func (r *MovieRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM movies`)
	return err
}
