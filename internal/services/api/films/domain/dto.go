// Package domain holds DTOs for films http and service contracts
package domain

import "github.com/google/uuid"

// PersonRef is a credited person on a film payload
type PersonRef struct {
	UUID     uuid.UUID `json:"uuid" example:"9d3216d2-bb8c-47e2-9079-b67c8b8d5b12"`
	FullName string    `json:"full_name" example:"Stanley Kubrick"`
}

// GenreRef is a resolved genre on a film payload
type GenreRef struct {
	UUID uuid.UUID `json:"uuid" example:"3d8d9bf5-0d90-4353-88ba-4ccc5d2c07ff"`
	Name string    `json:"name" example:"Drama"`
}

// Film is the detail payload for a single film
type Film struct {
	UUID        uuid.UUID   `json:"uuid"`
	Title       string      `json:"title" example:"The Shining"`
	IMDBRating  *float64    `json:"imdb_rating" example:"8.4"`
	Description string      `json:"description"`
	Actors      []PersonRef `json:"actors"`
	Writers     []PersonRef `json:"writers"`
	Directors   []PersonRef `json:"directors"`
	Genre       []GenreRef  `json:"genre"`
}

// FilmSummary is the list payload for the sort and search endpoints
type FilmSummary struct {
	UUID       uuid.UUID `json:"uuid"`
	Title      string    `json:"title" example:"The Shining"`
	IMDBRating *float64  `json:"imdb_rating" example:"8.4"`
}

// SortQuery binds the film listing parameters
type SortQuery struct {
	Sort       string     `query:"sort" default:"-imdb_rating" validate:"oneof=imdb_rating -imdb_rating" example:"-imdb_rating"`
	PageSize   int        `query:"page_size" default:"50" validate:"min=1,max=100" example:"50"`
	PageNumber int        `query:"page_number" default:"1" validate:"min=1" example:"1"`
	GenreID    *uuid.UUID `query:"genre_id" validate:"omitempty"`
}

// SearchQuery binds the fuzzy title search parameters
type SearchQuery struct {
	Title      string `query:"film_title" validate:"required" example:"shining"`
	PageSize   int    `query:"page_size" default:"50" validate:"min=1,max=100" example:"50"`
	PageNumber int    `query:"page_number" default:"1" validate:"min=1" example:"1"`
}
