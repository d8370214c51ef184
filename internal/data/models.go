package data

import "sync"

// Models is the container holding the catalog's rule engines, one per
// screen-facing entity, all sharing one persistence gateway.
type Models struct {
	Genres interface {
		Save(rawName string, editingID int64) (*Genre, error)
		Delete(id int64) error
		GetAll() ([]*Genre, error)
	}
	Movies interface {
		Save(input *MovieInput, editingID int64) (*Movie, error)
		Get(id int64) (*Movie, error)
		GetAll() ([]*Movie, error)
		Delete(id int64) error
		Vote(id int64, value int64) (*Movie, error)
		StageEdit(id int64) error
		TakeStagedEdit() (*Movie, error)
	}
}

// NewModels returns a Models backed by store. A single mutex serializes
// every read-modify-write cycle across both collections: genre deletion
// inspects movies, so one lock for the whole catalog prevents torn
// writes within the process without any lock-ordering concerns.
// Writers in other processes are not coordinated; the last writer wins.
func NewModels(store Store) Models {
	mu := &sync.Mutex{}
	return Models{
		Genres: GenreModel{Store: store, mu: mu},
		Movies: MovieModel{Store: store, mu: mu},
	}
}
