// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// The whole registry is rewritten inside one transaction on every Save, so
// a failed Save leaves the previous snapshot intact.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aanand-mishra/apartments-registry/internal/config"
	"github.com/aanand-mishra/apartments-registry/internal/storage"
	"github.com/aanand-mishra/apartments-registry/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db   *sql.DB
	path string
}

var _ storage.Storage = (*SQLite)(nil)

// schema is idempotent, safe to run on every startup.
//
//	snapshots            one row once anything has been saved
//	apartments           position keeps insertion order
//	residents            apartment is NULL for unhoused residents
//	apartment_residents  member lists, position keeps assignment order
const schema = `
	CREATE TABLE IF NOT EXISTS snapshots (
		id       INTEGER PRIMARY KEY CHECK (id = 1),
		saved_at TEXT    NOT NULL
	);
	CREATE TABLE IF NOT EXISTS apartments (
		position         INTEGER PRIMARY KEY,
		apartment_number TEXT    NOT NULL,
		floor            INTEGER NOT NULL,
		area             REAL    NOT NULL,
		num_rooms        INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS residents (
		position  INTEGER PRIMARY KEY,
		full_name TEXT    NOT NULL,
		age       INTEGER NOT NULL,
		phone     TEXT    NOT NULL,
		apartment TEXT
	);
	CREATE TABLE IF NOT EXISTS apartment_residents (
		apartment_position INTEGER NOT NULL,
		position           INTEGER NOT NULL,
		full_name          TEXT    NOT NULL,
		PRIMARY KEY (apartment_position, position)
	);
`

// New opens the SQLite database at cfg.Storage.Path and creates the tables
// if they do not already exist.
func New(cfg *config.Config) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet; the first one happens
	// on the first query.
	db, err := sql.Open("sqlite3", cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	return &SQLite{Db: db, path: cfg.Storage.Path}, nil
}

// Location returns the database file path.
func (s *SQLite) Location() string {
	return s.path
}

// Close releases the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// Save replaces every stored row with snap inside a single transaction.
func (s *SQLite) Save(snap storage.Snapshot) error {
	tx, err := s.Db.Begin()
	if err != nil {
		return fmt.Errorf("Save: begin: %w", err)
	}
	// Rollback after a successful Commit is a no-op returning ErrTxDone.
	defer tx.Rollback()

	for _, table := range []string{"apartment_residents", "residents", "apartments", "snapshots"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("Save: clear %s: %w", table, err)
		}
	}

	if err := insertApartments(tx, snap.Apartments); err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	if err := insertResidents(tx, snap.Residents); err != nil {
		return fmt.Errorf("Save: %w", err)
	}

	if _, err := tx.Exec(
		"INSERT INTO snapshots (id, saved_at) VALUES (1, ?)",
		time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("Save: mark snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Save: commit: %w", err)
	}
	return nil
}

func insertApartments(tx *sql.Tx, apartments []types.Apartment) error {
	stmt, err := tx.Prepare(
		"INSERT INTO apartments (position, apartment_number, floor, area, num_rooms) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("insertApartments: prepare: %w", err)
	}
	defer stmt.Close()

	member, err := tx.Prepare(
		"INSERT INTO apartment_residents (apartment_position, position, full_name) VALUES (?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("insertApartments: prepare members: %w", err)
	}
	defer member.Close()

	for i, a := range apartments {
		if _, err := stmt.Exec(i, a.ApartmentNumber, a.Floor, a.Area, a.NumRooms); err != nil {
			return fmt.Errorf("insertApartments: exec %q: %w", a.ApartmentNumber, err)
		}
		for j, name := range a.Residents {
			if _, err := member.Exec(i, j, name); err != nil {
				return fmt.Errorf("insertApartments: exec member %q: %w", name, err)
			}
		}
	}
	return nil
}

func insertResidents(tx *sql.Tx, residents []types.Resident) error {
	stmt, err := tx.Prepare(
		"INSERT INTO residents (position, full_name, age, phone, apartment) VALUES (?, ?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("insertResidents: prepare: %w", err)
	}
	defer stmt.Close()

	for i, r := range residents {
		apartment := sql.NullString{String: r.Apartment, Valid: r.Apartment != ""}
		if _, err := stmt.Exec(i, r.FullName, r.Age, r.Phone, apartment); err != nil {
			return fmt.Errorf("insertResidents: exec %q: %w", r.FullName, err)
		}
	}
	return nil
}

// Load reads the stored snapshot. storage.ErrNoData is returned if Save
// has never committed.
func (s *SQLite) Load() (storage.Snapshot, error) {
	var savedAt string
	err := s.Db.QueryRow("SELECT saved_at FROM snapshots WHERE id = 1").Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Snapshot{}, fmt.Errorf("Load: %s: %w", s.path, storage.ErrNoData)
	}
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("Load: snapshot: %w", err)
	}

	apartments, err := s.apartments()
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("Load: %w", err)
	}
	residents, err := s.residents()
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("Load: %w", err)
	}
	return storage.Snapshot{Residents: residents, Apartments: apartments}, nil
}

func (s *SQLite) apartments() ([]types.Apartment, error) {
	rows, err := s.Db.Query(
		"SELECT position, apartment_number, floor, area, num_rooms FROM apartments ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("apartments: query: %w", err)
	}
	defer rows.Close()

	apartments := make([]types.Apartment, 0)
	index := make(map[int]int)
	for rows.Next() {
		var (
			position int
			a        types.Apartment
		)
		if err := rows.Scan(&position, &a.ApartmentNumber, &a.Floor, &a.Area, &a.NumRooms); err != nil {
			return nil, fmt.Errorf("apartments: scan row: %w", err)
		}
		index[position] = len(apartments)
		apartments = append(apartments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("apartments: rows iteration: %w", err)
	}

	members, err := s.Db.Query(
		"SELECT apartment_position, full_name FROM apartment_residents ORDER BY apartment_position, position",
	)
	if err != nil {
		return nil, fmt.Errorf("apartments: query members: %w", err)
	}
	defer members.Close()

	for members.Next() {
		var (
			position int
			name     string
		)
		if err := members.Scan(&position, &name); err != nil {
			return nil, fmt.Errorf("apartments: scan member: %w", err)
		}
		i, ok := index[position]
		if !ok {
			return nil, fmt.Errorf("apartments: member %q of unknown apartment position %d", name, position)
		}
		apartments[i].Residents = append(apartments[i].Residents, name)
	}
	if err := members.Err(); err != nil {
		return nil, fmt.Errorf("apartments: members iteration: %w", err)
	}
	return apartments, nil
}

func (s *SQLite) residents() ([]types.Resident, error) {
	rows, err := s.Db.Query(
		"SELECT full_name, age, phone, apartment FROM residents ORDER BY position",
	)
	if err != nil {
		return nil, fmt.Errorf("residents: query: %w", err)
	}
	defer rows.Close()

	residents := make([]types.Resident, 0)
	for rows.Next() {
		var (
			r         types.Resident
			apartment sql.NullString
		)
		if err := rows.Scan(&r.FullName, &r.Age, &r.Phone, &apartment); err != nil {
			return nil, fmt.Errorf("residents: scan row: %w", err)
		}
		r.Apartment = apartment.String
		residents = append(residents, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("residents: rows iteration: %w", err)
	}
	return residents, nil
}
