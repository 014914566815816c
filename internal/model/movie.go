package model

import "time"

// Movie represents a film shown by the cinema.  Movies are created by
// administrators (or the seed tool) and referenced by screenings.
// Deleting a movie cascades to its screenings at the database level.
//
// Fields:
//  ID          – primary key identifier.
//  Title       – display title.
//  Description – synopsis text.
//  DurationMin – running time in minutes (positive).
//  PosterPath  – relative path of the poster image, nil when absent.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – timestamp of last update.
type Movie struct {
	ID          uint64    // movies.id
	Title       string    // movies.title
	Description string    // movies.description
	DurationMin uint32    // movies.duration_min
	PosterPath  *string   // movies.poster_path (nullable)
	CreatedAt   time.Time // movies.created_at
	UpdatedAt   time.Time // movies.updated_at
}
