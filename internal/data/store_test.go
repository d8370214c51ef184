package data

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/hafizmfadli/go-vidly/internal/jsonlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *jsonlog.Logger {
	return jsonlog.NewLogger(io.Discard, jsonlog.LevelOff)
}

func TestNextID(t *testing.T) {
	assert.Equal(t, int64(1), NextID([]*Genre{}))

	genres := []*Genre{{ID: 1, Name: "Action"}, {ID: 2, Name: "Drama"}}
	assert.Equal(t, int64(3), NextID(genres))

	// Gaps left by deletions are not refilled; the next ID always
	// follows the highest one present.
	gappy := []*Genre{{ID: 1, Name: "Action"}, {ID: 7, Name: "Drama"}}
	assert.Equal(t, int64(8), NextID(gappy))

	// Removing the highest ID makes its value assignable again.
	assert.Equal(t, int64(2), NextID([]*Genre{{ID: 1, Name: "Action"}}))
}

func TestMemoryStoreEmpty(t *testing.T) {
	store := NewMemoryStore(testLogger())

	genres, err := store.LoadGenres()
	require.NoError(t, err)
	assert.Empty(t, genres)
	assert.NotNil(t, genres)

	movies, err := store.LoadMovies()
	require.NoError(t, err)
	assert.Empty(t, movies)
	assert.NotNil(t, movies)

	id, err := store.LoadStagedEditID()
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(testLogger())

	require.NoError(t, store.SaveGenres([]*Genre{{ID: 1, Name: "Action"}}))
	require.NoError(t, store.SaveMovies([]*Movie{{
		ID:          1,
		Title:       "Casablanca",
		ReleaseDate: NewReleaseDate(1942, time.November, 26),
		Popularity:  85,
		GenreIDs:    []int64{1},
	}}))

	genres, err := store.LoadGenres()
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, "Action", genres[0].Name)

	movies, err := store.LoadMovies()
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Casablanca", movies[0].Title)
	assert.Equal(t, "1942-11-26", movies[0].ReleaseDate.String())
	assert.Equal(t, []int64{1}, movies[0].GenreIDs)
}

// Saving a just-loaded collection must rewrite the exact same payload,
// so repeated load/save cycles never drift the stored bytes.
func TestMemoryStorePayloadStable(t *testing.T) {
	store := NewMemoryStore(testLogger())

	require.NoError(t, store.SaveMovies([]*Movie{{
		ID:          3,
		Title:       "Heat",
		ReleaseDate: NewReleaseDate(1995, time.December, 15),
		Popularity:  90,
		GenreIDs:    []int64{2, 5},
		RatingSum:   17,
		RatingCount: 2,
	}}))
	first := store.payloads[keyMovies]

	movies, err := store.LoadMovies()
	require.NoError(t, err)
	require.NoError(t, store.SaveMovies(movies))

	assert.Equal(t, string(first), string(store.payloads[keyMovies]))
}

func TestMemoryStorePayloadShape(t *testing.T) {
	store := NewMemoryStore(testLogger())

	require.NoError(t, store.SaveGenres([]*Genre{{ID: 1, Name: "Action"}}))
	assert.JSONEq(t, `[{"id":1,"name":"Action"}]`, string(store.payloads[keyGenres]))

	require.NoError(t, store.SaveMovies([]*Movie{{
		ID:          1,
		Title:       "Casablanca",
		ReleaseDate: NewReleaseDate(1942, time.November, 26),
		Popularity:  85,
		GenreIDs:    []int64{1},
	}}))
	assert.JSONEq(t,
		`[{"id":1,"title":"Casablanca","releaseDate":"1942-11-26","popularity":85,"genreIds":[1],"ratingSum":0,"ratingCount":0}]`,
		string(store.payloads[keyMovies]))

	require.NoError(t, store.SaveStagedEditID(1))
	assert.Equal(t, "1", string(store.payloads[keyStagedEdit]))
}

// A corrupt payload must not take the catalog down: it is logged and
// the collection loads as empty.
func TestMemoryStoreCorruptPayload(t *testing.T) {
	var logged bytes.Buffer
	store := NewMemoryStore(jsonlog.NewLogger(&logged, jsonlog.LevelError))

	store.payloads[keyGenres] = []byte(`{"this is": "not a genre array"`)
	store.payloads[keyMovies] = []byte(`42`)
	store.payloads[keyStagedEdit] = []byte(`"nope"`)

	genres, err := store.LoadGenres()
	require.NoError(t, err)
	assert.Empty(t, genres)

	movies, err := store.LoadMovies()
	require.NoError(t, err)
	assert.Empty(t, movies)

	id, err := store.LoadStagedEditID()
	require.NoError(t, err)
	assert.Zero(t, id)

	assert.Contains(t, logged.String(), "storage_key")
}

func TestMemoryStoreStagedEditID(t *testing.T) {
	store := NewMemoryStore(testLogger())

	require.NoError(t, store.SaveStagedEditID(7))

	id, err := store.LoadStagedEditID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	// Saving 0 clears the slot entirely.
	require.NoError(t, store.SaveStagedEditID(0))

	id, err = store.LoadStagedEditID()
	require.NoError(t, err)
	assert.Zero(t, id)

	_, present := store.payloads[keyStagedEdit]
	assert.False(t, present)
}
