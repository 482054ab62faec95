// Package catalog defines the indexed document shapes shared by the sync
// pipeline and the query services: movies, genres and persons as they live
// in the search engine.
package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Role values as they appear in the source person_film_work table.
const (
	RoleActor    = "actor"
	RoleWriter   = "writer"
	RoleDirector = "director"
)

// Default index names in the search engine. The movies index name is
// configurable through ELASTIC_INDEX, the other two are fixed
const (
	MoviesIndex  = "movies"
	GenresIndex  = "genres"
	PersonsIndex = "persons"
)

// PersonRef is an {id, name} reference embedded in a movie document
type PersonRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Movie is the film document as indexed.
// List fields are always present, an empty list never serializes as null
// or a missing key. The flattened *_names lists are projections of the
// structured lists, same order and length
type Movie struct {
	ID             uuid.UUID   `json:"id"`
	IMDBRating     *float64    `json:"imdb_rating"`
	Genre          []string    `json:"genre"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Directors      []PersonRef `json:"director"`
	ActorsNames    []string    `json:"actors_names"`
	WritersNames   []string    `json:"writers_names"`
	DirectorsNames []string    `json:"directors_names"`
	Actors         []PersonRef `json:"actors"`
	Writers        []PersonRef `json:"writers"`
	Modified       time.Time   `json:"modified"`
}

// NewMovie returns a Movie with every list field initialized
func NewMovie(id uuid.UUID) Movie {
	return Movie{
		ID:             id,
		Genre:          []string{},
		Directors:      []PersonRef{},
		ActorsNames:    []string{},
		WritersNames:   []string{},
		DirectorsNames: []string{},
		Actors:         []PersonRef{},
		Writers:        []PersonRef{},
	}
}

// Genre is the genre document as indexed
type Genre struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// PersonFilmRef is one film a person worked on, with the derived role set.
// Roles only ever contain actor, writer or director and come out sorted
type PersonFilmRef struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Roles []string  `json:"roles"`
}

// Person is the person document as indexed
type Person struct {
	ID       uuid.UUID       `json:"id"`
	FullName string          `json:"full_name"`
	Films    []PersonFilmRef `json:"films"`
}

// NewPerson returns a Person with the films list initialized
func NewPerson(id uuid.UUID, fullName string) Person {
	return Person{ID: id, FullName: fullName, Films: []PersonFilmRef{}}
}
