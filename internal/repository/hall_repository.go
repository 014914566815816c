package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mstepanov/cinema-booking/internal/model"
)

// HallRepo provides create and lookup operations for cinema halls.
// Hall rows carry the layout (seat_rows × seats_per_row) from which the
// seat records are generated at creation time.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo {
	return &HallRepo{db: db}
}

const hallColumns = `id, name, seat_rows, seats_per_row, created_at, updated_at`

// Create inserts a hall and reads the row back to populate timestamps.
// The caller is responsible for generating the hall's seats afterwards
// (see SeatRepo.CreateBulk).
func (r *HallRepo) Create(ctx context.Context, h *model.CinemaHall) error {
	const q = `INSERT INTO cinema_halls (name, seat_rows, seats_per_row) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, h.Name, h.SeatRows, h.SeatsPerRow)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	const sel = `SELECT ` + hallColumns + ` FROM cinema_halls WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, h.ID).
		Scan(&h.ID, &h.Name, &h.SeatRows, &h.SeatsPerRow, &h.CreatedAt, &h.UpdatedAt)
}

// GetByID retrieves a hall by its ID.  Returns ErrHallNotFound when no
// row matches.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.CinemaHall, error) {
	const q = `SELECT ` + hallColumns + ` FROM cinema_halls WHERE id = ?`
	var h model.CinemaHall
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&h.ID, &h.Name, &h.SeatRows, &h.SeatsPerRow, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}

// ListAll returns every hall ordered by name.
func (r *HallRepo) ListAll(ctx context.Context) ([]model.CinemaHall, error) {
	const q = `SELECT ` + hallColumns + ` FROM cinema_halls ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]model.CinemaHall, 0)
	for rows.Next() {
		var h model.CinemaHall
		if err := rows.Scan(&h.ID, &h.Name, &h.SeatRows, &h.SeatsPerRow, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes a hall.  Seats, screenings and their bookings are
// removed by the database cascade.
func (r *HallRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM cinema_halls WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHallNotFound
	}
	return nil
}

// DeleteAll truncates all halls (and via cascade their seats and
// screenings).  Used by the seed tool only.
func (r *HallRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cinema_halls`)
	return err
}
