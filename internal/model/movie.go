package model

import "time"

// Movie represents a film that can be scheduled as shows across
// theaters.  BasePrice is the default ticket price before a show's
// multiplier is applied.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – movie title.
//  Description     – optional synopsis.
//  DurationMinutes – running time in minutes.
//  Genre           – optional genre label.
//  Language        – optional language label.
//  BasePrice       – base ticket price before show multipliers.
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type Movie struct {
	ID              uint64    // movies.id
	Title           string    // movies.title
	Description     *string   // movies.description (nullable)
	DurationMinutes uint32    // movies.duration_minutes
	Genre           *string   // movies.genre (nullable)
	Language        *string   // movies.language (nullable)
	BasePrice       float64   // movies.base_price
	CreatedAt       time.Time // movies.created_at
	UpdatedAt       time.Time // movies.updated_at
}
