// Package domain holds DTOs for persons http and service contracts
package domain

import "github.com/google/uuid"

// FilmRoles lists the roles one person had on one film
type FilmRoles struct {
	UUID  uuid.UUID `json:"uuid"`
	Roles []string  `json:"roles" example:"actor,director"`
}

// Person is the person payload with per-film roles
type Person struct {
	UUID     uuid.UUID   `json:"uuid"`
	FullName string      `json:"full_name" example:"Andrei Tarkovsky"`
	Films    []FilmRoles `json:"films"`
}

// PersonFilm is one row of a person filmography
type PersonFilm struct {
	UUID       uuid.UUID `json:"uuid"`
	Title      string    `json:"title" example:"Solaris"`
	IMDBRating *float64  `json:"imdb_rating" example:"8.0"`
}

// SearchQuery binds the fuzzy name search parameters
type SearchQuery struct {
	Name       string `query:"person_name" validate:"required" example:"tarkovsky"`
	PageSize   int    `query:"page_size" default:"50" validate:"min=1,max=100" example:"50"`
	PageNumber int    `query:"page_number" default:"1" validate:"min=1" example:"1"`
}
