package model

import "time"

// Screening schedules a movie in a hall for a time window at a fixed
// price.  Several screenings may share a hall or a movie; the system
// does not prevent overlapping slots in the same hall (see DESIGN.md).
//
// Fields:
//  ID         – primary key identifier.
//  MovieID    – movie being shown.
//  HallID     – hall where the screening takes place.
//  StartsAt   – when the screening begins (UTC).
//  EndsAt     – when it ends; always after StartsAt.
//  PriceCents – ticket price in cents, ≥ 0.
//  CreatedAt  – creation timestamp.
//  UpdatedAt  – timestamp of last update.
type Screening struct {
	ID         uint64    // screenings.id
	MovieID    uint64    // screenings.movie_id
	HallID     uint64    // screenings.hall_id
	StartsAt   time.Time // screenings.starts_at
	EndsAt     time.Time // screenings.ends_at
	PriceCents uint32    // screenings.price_cents
	CreatedAt  time.Time // screenings.created_at
	UpdatedAt  time.Time // screenings.updated_at
}
