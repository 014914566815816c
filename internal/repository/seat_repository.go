package repository // repository defines data access for seats

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mstepanov/cinema-booking/internal/model"
)

// SeatRepo provides methods to work with seats in the database.  Seats
// are written exactly once, in bulk, when their hall is created.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// CreateBulk inserts multiple seats in a single statement.  Passing an
// empty slice has no effect and returns nil.
func (r *SeatRepo) CreateBulk(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (hall_id, row_num, number) VALUES `
	args := make([]interface{}, 0, len(seats)*3)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, s.HallID, s.Row, s.Number)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// GetByID retrieves a seat by its id.  Returns ErrSeatNotFound when no
// row matches.
func (r *SeatRepo) GetByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT id, hall_id, row_num, number FROM seats WHERE id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.HallID, &s.Row, &s.Number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByHall retrieves all seats of a hall ordered by row then number.
// The ordering is what the availability view relies on to partition the
// grid into rows.
func (r *SeatRepo) ListByHall(ctx context.Context, hallID uint64) ([]model.Seat, error) {
	const q = `SELECT id, hall_id, row_num, number
	           FROM seats
	           WHERE hall_id = ?
	           ORDER BY row_num, number`
	rows, err := r.db.QueryContext(ctx, q, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.HallID, &s.Row, &s.Number); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
