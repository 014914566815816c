package model

import "time"

// CinemaHall describes an auditorium with a fixed rectangular seat
// layout.  Its seats are generated once at creation time (SeatRows ×
// SeatsPerRow records) and never mutated afterwards.  Deleting a hall
// cascades to its seats and screenings.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – human readable hall name.
//  SeatRows    – number of seating rows (1–20).
//  SeatsPerRow – seats in every row (1–20).
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – timestamp of last update.
type CinemaHall struct {
	ID          uint64    // cinema_halls.id
	Name        string    // cinema_halls.name
	SeatRows    uint32    // cinema_halls.seat_rows
	SeatsPerRow uint32    // cinema_halls.seats_per_row
	CreatedAt   time.Time // cinema_halls.created_at
	UpdatedAt   time.Time // cinema_halls.updated_at
}

// TotalSeats returns the derived capacity of the hall.  It is computed
// rather than stored.
func (h CinemaHall) TotalSeats() uint32 {
	return h.SeatRows * h.SeatsPerRow
}
