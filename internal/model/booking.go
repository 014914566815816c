package model

import "time"

// Booking records that a user holds one seat for one screening.  At
// most one booking may exist per (screening, seat) pair; the database
// enforces this with a unique key.  Cancellation deletes the row, no
// soft-cancel state is retained.
//
// Fields:
//  ID          – primary key identifier.
//  UserID      – user who made the booking.
//  ScreeningID – screening the seat is booked for.
//  SeatID      – seat being booked; must belong to the screening's hall.
//  BookedAt    – set at creation, immutable.
type Booking struct {
	ID          uint64    // bookings.id
	UserID      uint64    // bookings.user_id
	ScreeningID uint64    // bookings.screening_id
	SeatID      uint64    // bookings.seat_id
	BookedAt    time.Time // bookings.booked_at
}
