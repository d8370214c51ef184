package data

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/hafizmfadli/go-vidly/internal/validator"
)

// Genre is a named category that movies can be tagged with.
type Genre struct {
	// Unique ID, assigned by the persistence gateway
	ID int64 `json:"id"`
	// Display name, unique among genres (case-sensitive)
	Name string `json:"name"`
}

// RecordID implements Record.
func (g *Genre) RecordID() int64 {
	return g.ID
}

// ValidateGenreName checks an already-trimmed genre name. Checks run in
// order and stop at the first failure.
func ValidateGenreName(v *validator.Validator, name string) {
	v.Check(name != "", "empty", "name must be provided")
	if !v.Valid() {
		return
	}

	v.Check(utf8.RuneCountInString(name) <= 100, "too_long", "name must not be more than 100 characters long")
}

// GenreModel wraps the persistence gateway with the genre screen's
// rules: trimmed unique names and referential integrity against movies.
type GenreModel struct {
	Store Store
	mu    *sync.Mutex
}

// Save creates a genre from rawName, or renames an existing one when
// editingID is non-zero. Leading and trailing spaces are trimmed (space
// characters only, other whitespace is kept). The trimmed name must be
// non-empty, at most 100 characters, and unique among genres under
// case-sensitive comparison; when editing, the genre being renamed is
// excluded from the uniqueness check.
func (m GenreModel) Save(rawName string, editingID int64) (*Genre, error) {
	name := strings.Trim(rawName, " ")

	v := validator.New()
	if ValidateGenreName(v, name); !v.Valid() {
		return nil, failedValidation(v)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	genres, err := m.Store.LoadGenres()
	if err != nil {
		return nil, err
	}

	// editingID is 0 when creating, and stored IDs are always positive,
	// so one comparison covers both the "any match" and the "any other
	// match" duplicate rules.
	for _, genre := range genres {
		if genre.Name == name && genre.ID != editingID {
			return nil, &ConflictError{
				Code:    "duplicate",
				Message: "a genre with this name already exists",
			}
		}
	}

	if editingID == 0 {
		genre := &Genre{
			ID:   NextID(genres),
			Name: name,
		}

		genres = append(genres, genre)
		if err := m.Store.SaveGenres(genres); err != nil {
			return nil, err
		}
		return genre, nil
	}

	for _, genre := range genres {
		if genre.ID == editingID {
			genre.Name = name
			if err := m.Store.SaveGenres(genres); err != nil {
				return nil, err
			}
			return genre, nil
		}
	}

	return nil, ErrRecordNotFound
}

// Delete removes the genre with the given ID. A genre referenced by any
// movie's genreIds cannot be deleted. Deleting an ID with no stored
// genre is a no-op.
func (m GenreModel) Delete(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	movies, err := m.Store.LoadMovies()
	if err != nil {
		return err
	}

	for _, movie := range movies {
		for _, genreID := range movie.GenreIDs {
			if genreID == id {
				return &ConflictError{
					Code:    "in_use",
					Message: "genre is referenced by at least one movie and cannot be deleted",
				}
			}
		}
	}

	genres, err := m.Store.LoadGenres()
	if err != nil {
		return err
	}

	kept := make([]*Genre, 0, len(genres))
	for _, genre := range genres {
		if genre.ID != id {
			kept = append(kept, genre)
		}
	}

	return m.Store.SaveGenres(kept)
}

// GetAll returns every stored genre in insertion order.
func (m GenreModel) GetAll() ([]*Genre, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Store.LoadGenres()
}
