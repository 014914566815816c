// Package repository defines sentinel errors shared across the data
// access layer.  Higher layers compare against these values with
// errors.Is to map storage failures onto HTTP responses without
// inspecting driver errors themselves.
package repository

import "errors"

// ErrMovieNotFound is returned when a movie lookup yields no rows.
var ErrMovieNotFound = errors.New("movie not found")

// ErrHallNotFound is returned when a hall lookup yields no rows.
var ErrHallNotFound = errors.New("hall not found")

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// ErrScreeningNotFound is returned when a screening lookup yields no rows.
var ErrScreeningNotFound = errors.New("screening not found")

// ErrBookingNotFound is returned when a booking does not exist or does
// not belong to the requesting user.  The two cases are deliberately
// indistinguishable so that foreign booking IDs cannot be probed.
var ErrBookingNotFound = errors.New("booking not found")

// ErrSeatTaken is returned when an insert trips the unique key on
// (screening_id, seat_id).  That key, not the application-level
// availability check, is what guarantees a seat is never double-booked.
var ErrSeatTaken = errors.New("seat already booked for this screening")

// ErrEmailExists is returned when registering with an email that is
// already in use.
var ErrEmailExists = errors.New("email already exists")
