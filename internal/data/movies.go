package data

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/hafizmfadli/go-vidly/internal/validator"
)

// Movie is a catalog entry: a title, a release date, a popularity
// score, genre tags and the accumulated rating votes.
type Movie struct {
	// Unique ID, assigned by the persistence gateway
	ID int64 `json:"id"`
	// Movie title, stored trimmed of leading/trailing spaces
	Title string `json:"title"`
	// Release date at day precision, between 1900-01-01 and today
	ReleaseDate ReleaseDate `json:"releaseDate"`
	// Popularity score from 0 to 100
	Popularity int32 `json:"popularity"`
	// IDs of the genres the movie is tagged with
	GenreIDs []int64 `json:"genreIds"`
	// Running total of the vote values received
	RatingSum int64 `json:"ratingSum"`
	// Number of votes received
	RatingCount int64 `json:"ratingCount"`
}

// RecordID implements Record.
func (m *Movie) RecordID() int64 {
	return m.ID
}

// MeanRating returns ratingSum/ratingCount, or 0 before the first vote.
// The mean is always derived, never stored.
func (m *Movie) MeanRating() float64 {
	if m.RatingCount == 0 {
		return 0
	}
	return float64(m.RatingSum) / float64(m.RatingCount)
}

// MovieInput carries the fields of the movie form. Popularity is a
// pointer so a missing field can be told apart from a zero score.
type MovieInput struct {
	Title       string      `json:"title"`
	ReleaseDate ReleaseDate `json:"releaseDate"`
	Popularity  *int32      `json:"popularity"`
	GenreIDs    []int64     `json:"genreIds"`
}

// ValidateMovieInput checks the movie form fields. Checks run in a
// fixed order and stop at the first failure. Presence is checked before
// length, so an empty title reports missing_fields while a title of
// only spaces reports title_length.
func ValidateMovieInput(v *validator.Validator, input *MovieInput) {
	v.Check(input.Title != "" && !input.ReleaseDate.IsZero() && input.Popularity != nil,
		"missing_fields", "title, release date and popularity must all be provided")
	if !v.Valid() {
		return
	}

	title := strings.Trim(input.Title, " ")
	length := utf8.RuneCountInString(title)
	v.Check(length > 0 && length <= 100, "title_length", "title must be between 1 and 100 characters long")
	if !v.Valid() {
		return
	}

	v.Check(!input.ReleaseDate.Before(earliestReleaseDate), "date_too_early", "release date must not be before 1 January 1900")
	if !v.Valid() {
		return
	}

	v.Check(!input.ReleaseDate.After(today()), "date_future", "release date must not be in the future")
	if !v.Valid() {
		return
	}

	v.Check(*input.Popularity >= 0 && *input.Popularity <= 100, "popularity_range", "popularity must be between 0 and 100")
	if !v.Valid() {
		return
	}

	v.Check(len(input.GenreIDs) > 0, "no_genre", "at least one genre must be selected")
}

// ValidateVote checks a rating vote value.
func ValidateVote(v *validator.Validator, value int64) {
	v.Check(value >= 1 && value <= 10, "out_of_range", "vote must be between 1 and 10")
}

// MovieModel wraps the persistence gateway with the rules of the movie
// form and the listing screen: field validation, vote accumulation and
// the edit handoff between the two screens.
type MovieModel struct {
	Store Store
	mu    *sync.Mutex
}

// Save creates a movie from input, or replaces the editable fields of
// an existing one when editingID is non-zero. An edit replaces title,
// release date, popularity and genre IDs wholesale and never touches
// the rating fields. The stored title is the trimmed title. Genre IDs
// are not checked for existence: a movie may reference genres freely,
// and the listing renders unresolved IDs as "Unknown".
func (m MovieModel) Save(input *MovieInput, editingID int64) (*Movie, error) {
	v := validator.New()
	if ValidateMovieInput(v, input); !v.Valid() {
		return nil, failedValidation(v)
	}

	title := strings.Trim(input.Title, " ")

	m.mu.Lock()
	defer m.mu.Unlock()

	movies, err := m.Store.LoadMovies()
	if err != nil {
		return nil, err
	}

	if editingID == 0 {
		movie := &Movie{
			ID:          NextID(movies),
			Title:       title,
			ReleaseDate: input.ReleaseDate,
			Popularity:  *input.Popularity,
			GenreIDs:    input.GenreIDs,
			RatingSum:   0,
			RatingCount: 0,
		}

		movies = append(movies, movie)
		if err := m.Store.SaveMovies(movies); err != nil {
			return nil, err
		}
		return movie, nil
	}

	for _, movie := range movies {
		if movie.ID == editingID {
			movie.Title = title
			movie.ReleaseDate = input.ReleaseDate
			movie.Popularity = *input.Popularity
			movie.GenreIDs = input.GenreIDs
			if err := m.Store.SaveMovies(movies); err != nil {
				return nil, err
			}
			return movie, nil
		}
	}

	return nil, ErrRecordNotFound
}

// Get returns the movie with the given ID.
func (m MovieModel) Get(id int64) (*Movie, error) {
	if id < 1 {
		return nil, ErrRecordNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	movies, err := m.Store.LoadMovies()
	if err != nil {
		return nil, err
	}

	for _, movie := range movies {
		if movie.ID == id {
			return movie, nil
		}
	}

	return nil, ErrRecordNotFound
}

// GetAll returns every stored movie in insertion order.
func (m MovieModel) GetAll() ([]*Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Store.LoadMovies()
}

// Delete removes the movie with the given ID. Removal is by ID only,
// with no integrity checks against genres; deleting an absent ID is a
// no-op.
func (m MovieModel) Delete(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	movies, err := m.Store.LoadMovies()
	if err != nil {
		return err
	}

	kept := make([]*Movie, 0, len(movies))
	for _, movie := range movies {
		if movie.ID != id {
			kept = append(kept, movie)
		}
	}

	return m.Store.SaveMovies(kept)
}

// Vote records a rating vote for a movie. Votes are integers from 1 to
// 10 and accumulate into ratingSum and ratingCount on the movie.
func (m MovieModel) Vote(id int64, value int64) (*Movie, error) {
	v := validator.New()
	if ValidateVote(v, value); !v.Valid() {
		return nil, failedValidation(v)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	movies, err := m.Store.LoadMovies()
	if err != nil {
		return nil, err
	}

	for _, movie := range movies {
		if movie.ID == id {
			movie.RatingSum += value
			movie.RatingCount++
			if err := m.Store.SaveMovies(movies); err != nil {
				return nil, err
			}
			return movie, nil
		}
	}

	return nil, ErrRecordNotFound
}

// StageEdit parks a movie ID for the movie form to pick up. This is the
// only coupling between the listing screen and the movie form: the
// listing writes the ID, the form consumes and clears it on load.
func (m MovieModel) StageEdit(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	movies, err := m.Store.LoadMovies()
	if err != nil {
		return err
	}

	for _, movie := range movies {
		if movie.ID == id {
			return m.Store.SaveStagedEditID(id)
		}
	}

	return ErrRecordNotFound
}

// TakeStagedEdit returns the movie parked by StageEdit and clears the
// slot. The read is one-shot: the slot is cleared even when the parked
// movie no longer exists.
func (m MovieModel) TakeStagedEdit() (*Movie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, err := m.Store.LoadStagedEditID()
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, ErrRecordNotFound
	}

	if err := m.Store.SaveStagedEditID(0); err != nil {
		return nil, err
	}

	movies, err := m.Store.LoadMovies()
	if err != nil {
		return nil, err
	}

	for _, movie := range movies {
		if movie.ID == id {
			return movie, nil
		}
	}

	return nil, ErrRecordNotFound
}
