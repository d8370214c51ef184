package data

import (
	"encoding/json"

	"github.com/hafizmfadli/go-vidly/internal/jsonlog"
)

// Storage keys for the independently persisted payloads. Each key holds
// a single serialized value: the full genre collection, the full movie
// collection, or the one-shot edit handoff slot.
const (
	keyGenres     = "genres"
	keyMovies     = "movies"
	keyStagedEdit = "staged_edit"
)

// Store is the persistence gateway for the catalog. Loads return the
// full stored collection in insertion order, or an empty collection
// when nothing usable is stored; saves replace the stored collection in
// a single write. There are no transactions across keys and no
// coordination between concurrent writers beyond that single write:
// within one process, callers serialize access (see NewModels), and the
// last writer wins across processes.
type Store interface {
	LoadGenres() ([]*Genre, error)
	SaveGenres(genres []*Genre) error

	LoadMovies() ([]*Movie, error)
	SaveMovies(movies []*Movie) error

	// LoadStagedEditID returns the movie ID parked by the listing
	// screen for the movie form, or 0 when the slot is empty.
	LoadStagedEditID() (int64, error)
	// SaveStagedEditID overwrites the handoff slot; 0 clears it.
	SaveStagedEditID(id int64) error
}

// Record is implemented by catalog entities that carry a sequential
// integer identity.
type Record interface {
	RecordID() int64
}

// NextID returns the identifier the gateway assigns to the next record
// appended to a collection: one more than the highest ID present, or 1
// for an empty collection. The result depends on nothing but the
// collection contents, so identity assignment is deterministic and
// needs no external counter.
func NextID[R Record](records []R) int64 {
	var highest int64
	for _, r := range records {
		if r.RecordID() > highest {
			highest = r.RecordID()
		}
	}
	return highest + 1
}

// The encode/decode helpers below are shared by every Store backend, so
// each backend persists byte-identical payloads: JSON arrays of flat
// records for the collections and a bare JSON number for the handoff
// slot. Saving a just-loaded collection rewrites the exact same bytes.
//
// Decoding degrades gracefully: an absent payload is an empty
// collection (first run), and a corrupt payload is logged and treated
// as empty rather than taking the catalog down.

func encodeGenres(genres []*Genre) ([]byte, error) {
	if genres == nil {
		genres = []*Genre{}
	}
	return json.Marshal(genres)
}

func decodeGenres(payload []byte, logger *jsonlog.Logger) []*Genre {
	genres := []*Genre{}
	if len(payload) == 0 {
		return genres
	}
	if err := json.Unmarshal(payload, &genres); err != nil {
		logger.PrintError(err, map[string]string{"storage_key": keyGenres})
		return []*Genre{}
	}
	if genres == nil {
		genres = []*Genre{}
	}
	return genres
}

func encodeMovies(movies []*Movie) ([]byte, error) {
	if movies == nil {
		movies = []*Movie{}
	}
	return json.Marshal(movies)
}

func decodeMovies(payload []byte, logger *jsonlog.Logger) []*Movie {
	movies := []*Movie{}
	if len(payload) == 0 {
		return movies
	}
	if err := json.Unmarshal(payload, &movies); err != nil {
		logger.PrintError(err, map[string]string{"storage_key": keyMovies})
		return []*Movie{}
	}
	if movies == nil {
		movies = []*Movie{}
	}
	return movies
}

func encodeStagedEditID(id int64) ([]byte, error) {
	return json.Marshal(id)
}

func decodeStagedEditID(payload []byte, logger *jsonlog.Logger) int64 {
	if len(payload) == 0 {
		return 0
	}
	var id int64
	if err := json.Unmarshal(payload, &id); err != nil {
		logger.PrintError(err, map[string]string{"storage_key": keyStagedEdit})
		return 0
	}
	return id
}
