package data

import (
	"strings"
	"testing"
	"time"

	"github.com/hafizmfadli/go-vidly/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int32Ptr(v int32) *int32 {
	return &v
}

// validMovieInput returns an input that passes every rule, tagged with
// the given genre IDs.
func validMovieInput(title string, genreIDs ...int64) *MovieInput {
	return &MovieInput{
		Title:       title,
		ReleaseDate: NewReleaseDate(2001, time.May, 1),
		Popularity:  int32Ptr(50),
		GenreIDs:    genreIDs,
	}
}

func TestValidateMovieInput(t *testing.T) {
	now := time.Now()
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name     string
		mutate   func(in *MovieInput)
		wantCode string
	}{
		{
			name:     "empty title is a missing field",
			mutate:   func(in *MovieInput) { in.Title = "" },
			wantCode: "missing_fields",
		},
		{
			name:     "zero release date is a missing field",
			mutate:   func(in *MovieInput) { in.ReleaseDate = ReleaseDate{} },
			wantCode: "missing_fields",
		},
		{
			name:     "nil popularity is a missing field",
			mutate:   func(in *MovieInput) { in.Popularity = nil },
			wantCode: "missing_fields",
		},
		{
			// A title of only spaces passes the presence check but
			// trims to nothing for the length check.
			name:     "blank title fails on length",
			mutate:   func(in *MovieInput) { in.Title = "   " },
			wantCode: "title_length",
		},
		{
			name:     "101 character title",
			mutate:   func(in *MovieInput) { in.Title = strings.Repeat("x", 101) },
			wantCode: "title_length",
		},
		{
			name:     "day before the floor",
			mutate:   func(in *MovieInput) { in.ReleaseDate = NewReleaseDate(1899, time.December, 31) },
			wantCode: "date_too_early",
		},
		{
			name: "tomorrow",
			mutate: func(in *MovieInput) {
				in.ReleaseDate = NewReleaseDate(tomorrow.Year(), tomorrow.Month(), tomorrow.Day())
			},
			wantCode: "date_future",
		},
		{
			name:     "popularity below zero",
			mutate:   func(in *MovieInput) { in.Popularity = int32Ptr(-1) },
			wantCode: "popularity_range",
		},
		{
			name:     "popularity above one hundred",
			mutate:   func(in *MovieInput) { in.Popularity = int32Ptr(101) },
			wantCode: "popularity_range",
		},
		{
			name:     "no genres",
			mutate:   func(in *MovieInput) { in.GenreIDs = nil },
			wantCode: "no_genre",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validMovieInput("The Matrix", 1)
			tt.mutate(input)

			v := validator.New()
			ValidateMovieInput(v, input)

			require.False(t, v.Valid())
			assert.Len(t, v.Errors, 1, "checks stop at the first failure, got %v", v.Errors)
			assert.Contains(t, v.Errors, tt.wantCode)
		})
	}
}

func TestValidateMovieInputStopsAtFirstFailure(t *testing.T) {
	// Every rule is broken at once; only the first is reported.
	input := &MovieInput{Title: "", Popularity: nil}

	v := validator.New()
	ValidateMovieInput(v, input)

	assert.Equal(t, map[string]string{
		"missing_fields": "title, release date and popularity must all be provided",
	}, v.Errors)
}

func TestValidateMovieInputBoundaries(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name   string
		mutate func(in *MovieInput)
	}{
		{
			name:   "title of exactly 100 characters",
			mutate: func(in *MovieInput) { in.Title = strings.Repeat("é", 100) },
		},
		{
			name:   "the release date floor itself",
			mutate: func(in *MovieInput) { in.ReleaseDate = NewReleaseDate(1900, time.January, 1) },
		},
		{
			name: "today",
			mutate: func(in *MovieInput) {
				in.ReleaseDate = NewReleaseDate(now.Year(), now.Month(), now.Day())
			},
		},
		{
			name:   "popularity zero",
			mutate: func(in *MovieInput) { in.Popularity = int32Ptr(0) },
		},
		{
			name:   "popularity one hundred",
			mutate: func(in *MovieInput) { in.Popularity = int32Ptr(100) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validMovieInput("The Matrix", 1)
			tt.mutate(input)

			v := validator.New()
			ValidateMovieInput(v, input)

			assert.True(t, v.Valid(), "unexpected failure: %v", v.Errors)
		})
	}
}

func TestMovieSaveCreates(t *testing.T) {
	models := newTestModels(t)

	movie, err := models.Movies.Save(validMovieInput("  The Matrix  ", 1), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), movie.ID)
	assert.Equal(t, "The Matrix", movie.Title)
	assert.Zero(t, movie.RatingSum)
	assert.Zero(t, movie.RatingCount)
	assert.Zero(t, movie.MeanRating())

	second, err := models.Movies.Save(validMovieInput("Heat", 1), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
}

func TestMovieSaveInvalidInput(t *testing.T) {
	models := newTestModels(t)

	_, err := models.Movies.Save(validMovieInput("The Matrix"), 0)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.True(t, validationErr.Has("no_genre"))

	// Nothing was stored.
	movies, err := models.Movies.GetAll()
	require.NoError(t, err)
	assert.Empty(t, movies)
}

func TestMovieSaveEdit(t *testing.T) {
	models := newTestModels(t)

	movie, err := models.Movies.Save(validMovieInput("The Matrix", 1), 0)
	require.NoError(t, err)

	_, err = models.Movies.Vote(movie.ID, 8)
	require.NoError(t, err)
	_, err = models.Movies.Vote(movie.ID, 6)
	require.NoError(t, err)

	edit := &MovieInput{
		Title:       " The Matrix Reloaded ",
		ReleaseDate: NewReleaseDate(2003, time.May, 15),
		Popularity:  int32Ptr(70),
		GenreIDs:    []int64{2, 3},
	}

	edited, err := models.Movies.Save(edit, movie.ID)
	require.NoError(t, err)

	// The editable fields are replaced wholesale.
	assert.Equal(t, movie.ID, edited.ID)
	assert.Equal(t, "The Matrix Reloaded", edited.Title)
	assert.Equal(t, "2003-05-15", edited.ReleaseDate.String())
	assert.Equal(t, int32(70), edited.Popularity)
	assert.Equal(t, []int64{2, 3}, edited.GenreIDs)

	// The vote totals survive the edit.
	assert.Equal(t, int64(14), edited.RatingSum)
	assert.Equal(t, int64(2), edited.RatingCount)
}

func TestMovieSaveEditMissing(t *testing.T) {
	models := newTestModels(t)

	_, err := models.Movies.Save(validMovieInput("The Matrix", 1), 42)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestMovieGet(t *testing.T) {
	models := newTestModels(t)

	created, err := models.Movies.Save(validMovieInput("Heat", 1), 0)
	require.NoError(t, err)

	movie, err := models.Movies.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Heat", movie.Title)

	_, err = models.Movies.Get(99)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = models.Movies.Get(0)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = models.Movies.Get(-1)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestMovieDelete(t *testing.T) {
	models := newTestModels(t)

	first, err := models.Movies.Save(validMovieInput("Heat", 1), 0)
	require.NoError(t, err)
	_, err = models.Movies.Save(validMovieInput("Ronin", 1), 0)
	require.NoError(t, err)

	require.NoError(t, models.Movies.Delete(first.ID))

	movies, err := models.Movies.GetAll()
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Ronin", movies[0].Title)

	// Deleting an ID with no stored movie is a no-op.
	assert.NoError(t, models.Movies.Delete(first.ID))
}

func TestMovieVote(t *testing.T) {
	models := newTestModels(t)

	movie, err := models.Movies.Save(validMovieInput("Heat", 1), 0)
	require.NoError(t, err)

	voted, err := models.Movies.Vote(movie.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), voted.RatingSum)
	assert.Equal(t, int64(1), voted.RatingCount)

	voted, err = models.Movies.Vote(movie.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(16), voted.RatingSum)
	assert.Equal(t, int64(2), voted.RatingCount)
	assert.Equal(t, 8.0, voted.MeanRating())
}

func TestMovieVoteValidation(t *testing.T) {
	models := newTestModels(t)

	movie, err := models.Movies.Save(validMovieInput("Heat", 1), 0)
	require.NoError(t, err)

	for _, value := range []int64{0, 11, -3} {
		_, err := models.Movies.Vote(movie.ID, value)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr, "value %d", value)
		assert.True(t, validationErr.Has("out_of_range"))
	}

	// The bounds themselves are votable.
	_, err = models.Movies.Vote(movie.ID, 1)
	assert.NoError(t, err)
	_, err = models.Movies.Vote(movie.ID, 10)
	assert.NoError(t, err)
}

func TestMovieVoteMissing(t *testing.T) {
	models := newTestModels(t)

	_, err := models.Movies.Vote(42, 5)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestStageEditAndTake(t *testing.T) {
	models := newTestModels(t)

	movie, err := models.Movies.Save(validMovieInput("Heat", 1), 0)
	require.NoError(t, err)

	require.NoError(t, models.Movies.StageEdit(movie.ID))

	staged, err := models.Movies.TakeStagedEdit()
	require.NoError(t, err)
	assert.Equal(t, movie.ID, staged.ID)

	// The read is one-shot.
	_, err = models.Movies.TakeStagedEdit()
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestStageEditMissingMovie(t *testing.T) {
	models := newTestModels(t)

	err := models.Movies.StageEdit(42)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestTakeStagedEditClearsWhenMovieGone(t *testing.T) {
	store := NewMemoryStore(testLogger())
	models := NewModels(store)

	movie, err := models.Movies.Save(validMovieInput("Heat", 1), 0)
	require.NoError(t, err)

	require.NoError(t, models.Movies.StageEdit(movie.ID))
	require.NoError(t, models.Movies.Delete(movie.ID))

	_, err = models.Movies.TakeStagedEdit()
	assert.ErrorIs(t, err, ErrRecordNotFound)

	// The slot is cleared even though the movie could not be resolved.
	id, err := store.LoadStagedEditID()
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestTakeStagedEditEmptySlot(t *testing.T) {
	models := newTestModels(t)

	_, err := models.Movies.TakeStagedEdit()
	assert.ErrorIs(t, err, ErrRecordNotFound)
}
