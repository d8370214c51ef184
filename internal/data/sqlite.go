package data

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hafizmfadli/go-vidly/internal/jsonlog"
)

// collectionRow is one named payload in the SQLite database.
type collectionRow struct {
	Name    string `gorm:"primaryKey"`
	Payload []byte `gorm:"not null"`
}

func (collectionRow) TableName() string {
	return "collections"
}

// SQLiteStore is a Store backed by a single local SQLite file. It suits
// single-profile installs where the catalog lives next to the binary
// and no database server is wanted.
type SQLiteStore struct {
	DB     *gorm.DB
	Logger *jsonlog.Logger
}

// NewSQLiteStore returns a SQLiteStore over db, migrating the backing
// table if it does not exist yet.
func NewSQLiteStore(db *gorm.DB, logger *jsonlog.Logger) (*SQLiteStore, error) {
	if err := db.AutoMigrate(&collectionRow{}); err != nil {
		return nil, err
	}
	return &SQLiteStore{DB: db, Logger: logger}, nil
}

// get returns the payload stored under name, or nil when the key has
// never been written.
func (s *SQLiteStore) get(name string) ([]byte, error) {
	var row collectionRow
	err := s.DB.First(&row, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return row.Payload, nil
}

// set overwrites the payload stored under name in a single upsert.
func (s *SQLiteStore) set(name string, payload []byte) error {
	row := collectionRow{Name: name, Payload: payload}
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload"}),
	}).Create(&row).Error
}

// remove deletes the row stored under name, if any.
func (s *SQLiteStore) remove(name string) error {
	return s.DB.Delete(&collectionRow{}, "name = ?", name).Error
}

func (s *SQLiteStore) LoadGenres() ([]*Genre, error) {
	payload, err := s.get(keyGenres)
	if err != nil {
		return nil, err
	}
	return decodeGenres(payload, s.Logger), nil
}

func (s *SQLiteStore) SaveGenres(genres []*Genre) error {
	payload, err := encodeGenres(genres)
	if err != nil {
		return err
	}
	return s.set(keyGenres, payload)
}

func (s *SQLiteStore) LoadMovies() ([]*Movie, error) {
	payload, err := s.get(keyMovies)
	if err != nil {
		return nil, err
	}
	return decodeMovies(payload, s.Logger), nil
}

func (s *SQLiteStore) SaveMovies(movies []*Movie) error {
	payload, err := encodeMovies(movies)
	if err != nil {
		return err
	}
	return s.set(keyMovies, payload)
}

func (s *SQLiteStore) LoadStagedEditID() (int64, error) {
	payload, err := s.get(keyStagedEdit)
	if err != nil {
		return 0, err
	}
	return decodeStagedEditID(payload, s.Logger), nil
}

func (s *SQLiteStore) SaveStagedEditID(id int64) error {
	if id == 0 {
		return s.remove(keyStagedEdit)
	}

	payload, err := encodeStagedEditID(id)
	if err != nil {
		return err
	}
	return s.set(keyStagedEdit, payload)
}
