// Package storage defines the Storage interface, the contract every
// persistence backend satisfies, and the Snapshot it moves around.
//
// Backends:
//
//   - jsonfile: one JSON document (the canonical format)
//   - csvfile:  residents.csv + apartments.csv in one directory
//   - sqlite:   a SQLite database file
//
// Each backend writes the relation by key on both sides (a resident's
// apartment number, an apartment's resident names). Rebuilding live links
// from those keys is the registry's job, done in a second pass once both
// collections are loaded.
package storage

import (
	"errors"

	"github.com/aanand-mishra/apartments-registry/internal/types"
)

// ErrNoData is returned by Load when nothing has been saved yet. Callers
// treat it as an empty registry, not a failure.
var ErrNoData = errors.New("no saved data")

// Snapshot is the serialisable state of a registry. Records are values so
// a saved snapshot never aliases live registry records.
type Snapshot struct {
	Residents  []types.Resident
	Apartments []types.Apartment
}

// Storage is the persistence contract.
type Storage interface {
	// Save replaces whatever was stored before with snap. A failed Save
	// leaves the previous contents in place.
	Save(snap Snapshot) error

	// Load returns the stored snapshot, ErrNoData if nothing was saved,
	// or an error describing why the stored data could not be read.
	// On error the returned snapshot is empty.
	Load() (Snapshot, error)

	// Location describes where the data lives, for messages and logs.
	Location() string
}
