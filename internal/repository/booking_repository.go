// This file contains data access for bookings, the ledger linking a
// user, a screening and a seat.  The table carries a unique key on
// (screening_id, seat_id); that key is the actual guarantee against
// double-booking when two requests race past the application check.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/mstepanov/cinema-booking/internal/model"
)

// mysqlDuplicateEntry is the server error number MySQL reports when
// an insert violates a unique key.
const mysqlDuplicateEntry = 1062

// BookingRepo provides persistence for bookings.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

// BookingDetail joins a booking with its screening, movie, hall and
// seat for the per-user booking list.
type BookingDetail struct {
	ID         uint64    `json:"id"`
	ScreeningID uint64   `json:"screening_id"`
	MovieTitle string    `json:"movie_title"`
	HallName   string    `json:"hall_name"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	PriceCents uint32    `json:"price_cents"`
	SeatRow    uint32    `json:"seat_row"`
	SeatNumber uint32    `json:"seat_number"`
	BookedAt   time.Time `json:"booked_at"`
}

// Create inserts a booking row.  The insert itself is the atomic
// conditional step: when another request already took the same
// (screening, seat) pair the unique key rejects this insert and
// ErrSeatTaken is returned.  On success booked_at is read back from
// the database so the model reflects the stored timestamp.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, screening_id, seat_id) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, b.UserID, b.ScreeningID, b.SeatID)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return ErrSeatTaken
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	const sel = `SELECT booked_at FROM bookings WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, b.ID).Scan(&b.BookedAt)
}

// Exists reports whether a booking already exists for the given
// (screening, seat) pair.  This is the pre-flight check before insert;
// the unique key remains the source of truth under concurrency.
func (r *BookingRepo) Exists(ctx context.Context, screeningID, seatID uint64) (bool, error) {
	const q = `SELECT 1 FROM bookings WHERE screening_id = ? AND seat_id = ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, screeningID, seatID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// BookedSeatIDs returns the set of seat IDs booked for one screening.
// Bookings are screening-scoped, so the same physical seat stays
// available for other screenings in the same hall.
func (r *BookingRepo) BookedSeatIDs(ctx context.Context, screeningID uint64) (map[uint64]struct{}, error) {
	const q = `SELECT seat_id FROM bookings WHERE screening_id = ?`
	rows, err := r.db.QueryContext(ctx, q, screeningID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	booked := make(map[uint64]struct{})
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		booked[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return booked, nil
}

// GetForUser retrieves a booking scoped to its owner.  A booking that
// does not exist and one owned by another user both come back as
// ErrBookingNotFound.
func (r *BookingRepo) GetForUser(ctx context.Context, bookingID, userID uint64) (*model.Booking, error) {
	const q = `SELECT id, user_id, screening_id, seat_id, booked_at
	           FROM bookings WHERE id = ? AND user_id = ?`
	var b model.Booking
	err := r.db.QueryRowContext(ctx, q, bookingID, userID).
		Scan(&b.ID, &b.UserID, &b.ScreeningID, &b.SeatID, &b.BookedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListByUser returns the user's bookings ordered by booked_at
// descending (newest first), paginated.  Page numbers are 1-based; the
// second return value is the total row count.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64, page, pageSize int) ([]BookingDetail, int64, error) {
	if page < 1 {
		page = 1
	}
	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const q = `SELECT b.id, b.screening_id, m.title, h.name,
	                  s.starts_at, s.ends_at, s.price_cents,
	                  se.row_num, se.number, b.booked_at
	           FROM bookings b
	           JOIN screenings s ON s.id = b.screening_id
	           JOIN movies m ON m.id = s.movie_id
	           JOIN cinema_halls h ON h.id = s.hall_id
	           JOIN seats se ON se.id = b.seat_id
	           WHERE b.user_id = ?
	           ORDER BY b.booked_at DESC, b.id DESC
	           LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(
			&d.ID, &d.ScreeningID, &d.MovieTitle, &d.HallName,
			&d.StartsAt, &d.EndsAt, &d.PriceCents,
			&d.SeatRow, &d.SeatNumber, &d.BookedAt,
		); err != nil {
			return nil, 0, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

// Delete removes a booking permanently.  Ownership must have been
// verified beforehand via GetForUser.
func (r *BookingRepo) Delete(ctx context.Context, bookingID uint64) error {
	const q = `DELETE FROM bookings WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, bookingID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	return nil
}
