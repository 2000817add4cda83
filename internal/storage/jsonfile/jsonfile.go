// Package jsonfile stores the registry as a single JSON document:
//
//	{
//	  "residents":  [{"full_name": "...", "age": 28, "phone": "...", "apartment": "12A"}],
//	  "apartments": [{"apartment_number": "12A", "floor": 3, "area": 42.5, "num_rooms": 1,
//	                  "residents": ["..."]}]
//	}
//
// An unhoused resident has "apartment": null.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/aanand-mishra/apartments-registry/internal/config"
	"github.com/aanand-mishra/apartments-registry/internal/storage"
	"github.com/aanand-mishra/apartments-registry/internal/types"
)

type residentRecord struct {
	FullName  string  `json:"full_name"`
	Age       int     `json:"age"`
	Phone     string  `json:"phone"`
	Apartment *string `json:"apartment"`
}

type apartmentRecord struct {
	ApartmentNumber string   `json:"apartment_number"`
	Floor           int      `json:"floor"`
	Area            float64  `json:"area"`
	NumRooms        int      `json:"num_rooms"`
	Residents       []string `json:"residents"`
}

type document struct {
	Residents  []residentRecord  `json:"residents"`
	Apartments []apartmentRecord `json:"apartments"`
}

// JSONFile implements storage.Storage on one JSON file.
type JSONFile struct {
	path string
}

var _ storage.Storage = (*JSONFile)(nil)

// New returns a JSONFile writing to cfg.Storage.Path. Nothing is touched
// on disk until the first Save or Load.
func New(cfg *config.Config) *JSONFile {
	return &JSONFile{path: cfg.Storage.Path}
}

// Location returns the file path.
func (s *JSONFile) Location() string {
	return s.path
}

// Save encodes snap and atomically replaces the file.
func (s *JSONFile) Save(snap storage.Snapshot) error {
	doc := document{
		Residents:  make([]residentRecord, 0, len(snap.Residents)),
		Apartments: make([]apartmentRecord, 0, len(snap.Apartments)),
	}
	for _, r := range snap.Residents {
		rec := residentRecord{FullName: r.FullName, Age: r.Age, Phone: r.Phone}
		if r.Apartment != "" {
			number := r.Apartment
			rec.Apartment = &number
		}
		doc.Residents = append(doc.Residents, rec)
	}
	for _, a := range snap.Apartments {
		doc.Apartments = append(doc.Apartments, apartmentRecord{
			ApartmentNumber: a.ApartmentNumber,
			Floor:           a.Floor,
			Area:            a.Area,
			NumRooms:        a.NumRooms,
			Residents:       append(make([]string, 0, len(a.Residents)), a.Residents...),
		})
	}

	err := storage.WriteFileAtomic(s.path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(doc)
	})
	if err != nil {
		return fmt.Errorf("jsonfile.Save: %w", err)
	}
	return nil
}

// Load decodes the file. A missing file yields storage.ErrNoData.
func (s *JSONFile) Load() (storage.Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return storage.Snapshot{}, fmt.Errorf("jsonfile.Load: %s: %w", s.path, storage.ErrNoData)
	}
	if err != nil {
		return storage.Snapshot{}, fmt.Errorf("jsonfile.Load: read: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return storage.Snapshot{}, fmt.Errorf("jsonfile.Load: decode %s: %w", s.path, err)
	}

	snap := storage.Snapshot{
		Residents:  make([]types.Resident, 0, len(doc.Residents)),
		Apartments: make([]types.Apartment, 0, len(doc.Apartments)),
	}
	for _, rec := range doc.Residents {
		r := types.Resident{FullName: rec.FullName, Age: rec.Age, Phone: rec.Phone}
		if rec.Apartment != nil {
			r.Apartment = *rec.Apartment
		}
		snap.Residents = append(snap.Residents, r)
	}
	for _, rec := range doc.Apartments {
		snap.Apartments = append(snap.Apartments, types.Apartment{
			ApartmentNumber: rec.ApartmentNumber,
			Floor:           rec.Floor,
			Area:            rec.Area,
			NumRooms:        rec.NumRooms,
			Residents:       rec.Residents,
		})
	}
	return snap, nil
}
