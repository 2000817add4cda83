// Package csvfile stores the registry as two CSV files in one directory:
//
//	residents.csv   full_name,age,phone,apartment
//	apartments.csv  apartment_number,floor,area,num_rooms,residents
//
// The residents column of apartments.csv joins names with ", ". An empty
// apartment column means the resident is unhoused.
//
// Each file references the other's keys, so the loaded snapshot carries the
// keys only; the registry re-links them after both files are read.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/aanand-mishra/apartments-registry/internal/config"
	"github.com/aanand-mishra/apartments-registry/internal/storage"
	"github.com/aanand-mishra/apartments-registry/internal/types"
)

const (
	ResidentsFile  = "residents.csv"
	ApartmentsFile = "apartments.csv"

	nameSeparator = ", "
)

var (
	residentsHeader  = []string{"full_name", "age", "phone", "apartment"}
	apartmentsHeader = []string{"apartment_number", "floor", "area", "num_rooms", "residents"}
)

// CSVFile implements storage.Storage on a pair of CSV files.
type CSVFile struct {
	dir string
}

var _ storage.Storage = (*CSVFile)(nil)

// New returns a CSVFile keeping both files in the directory cfg.Storage.Path.
func New(cfg *config.Config) *CSVFile {
	return &CSVFile{dir: cfg.Storage.Path}
}

// Location returns the directory holding both files.
func (s *CSVFile) Location() string {
	return s.dir
}

// Save writes apartments.csv, then residents.csv. Each file is replaced
// atomically; if the second write fails the first file is already updated.
func (s *CSVFile) Save(snap storage.Snapshot) error {
	apartments := [][]string{apartmentsHeader}
	for _, a := range snap.Apartments {
		apartments = append(apartments, []string{
			a.ApartmentNumber,
			strconv.Itoa(a.Floor),
			strconv.FormatFloat(a.Area, 'f', -1, 64),
			strconv.Itoa(a.NumRooms),
			strings.Join(a.Residents, nameSeparator),
		})
	}

	residents := [][]string{residentsHeader}
	for _, r := range snap.Residents {
		residents = append(residents, []string{
			r.FullName,
			strconv.Itoa(r.Age),
			r.Phone,
			r.Apartment,
		})
	}

	if err := writeAll(filepath.Join(s.dir, ApartmentsFile), apartments); err != nil {
		return fmt.Errorf("csvfile.Save: %w", err)
	}
	if err := writeAll(filepath.Join(s.dir, ResidentsFile), residents); err != nil {
		return fmt.Errorf("csvfile.Save: %w", err)
	}
	return nil
}

// Load reads both files. storage.ErrNoData is returned only when neither
// file exists; a single missing file loads as an empty collection.
func (s *CSVFile) Load() (storage.Snapshot, error) {
	aRows, aErr := readAll(filepath.Join(s.dir, ApartmentsFile), apartmentsHeader)
	rRows, rErr := readAll(filepath.Join(s.dir, ResidentsFile), residentsHeader)

	if errors.Is(aErr, fs.ErrNotExist) && errors.Is(rErr, fs.ErrNotExist) {
		return storage.Snapshot{}, fmt.Errorf("csvfile.Load: %s: %w", s.dir, storage.ErrNoData)
	}
	for _, err := range []error{aErr, rErr} {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return storage.Snapshot{}, fmt.Errorf("csvfile.Load: %w", err)
		}
	}

	snap := storage.Snapshot{
		Residents:  make([]types.Resident, 0, len(rRows)),
		Apartments: make([]types.Apartment, 0, len(aRows)),
	}
	for i, row := range aRows {
		a, err := parseApartment(row)
		if err != nil {
			return storage.Snapshot{}, fmt.Errorf("csvfile.Load: %s line %d: %w", ApartmentsFile, i+2, err)
		}
		snap.Apartments = append(snap.Apartments, a)
	}
	for i, row := range rRows {
		r, err := parseResident(row)
		if err != nil {
			return storage.Snapshot{}, fmt.Errorf("csvfile.Load: %s line %d: %w", ResidentsFile, i+2, err)
		}
		snap.Residents = append(snap.Residents, r)
	}
	return snap, nil
}

func parseApartment(row []string) (types.Apartment, error) {
	floor, err := strconv.Atoi(row[1])
	if err != nil {
		return types.Apartment{}, fmt.Errorf("floor: %w", err)
	}
	area, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return types.Apartment{}, fmt.Errorf("area: %w", err)
	}
	rooms, err := strconv.Atoi(row[3])
	if err != nil {
		return types.Apartment{}, fmt.Errorf("num_rooms: %w", err)
	}

	a := types.Apartment{
		ApartmentNumber: row[0],
		Floor:           floor,
		Area:            area,
		NumRooms:        rooms,
	}
	if row[4] != "" {
		a.Residents = strings.Split(row[4], nameSeparator)
	}
	return a, nil
}

func parseResident(row []string) (types.Resident, error) {
	age, err := strconv.Atoi(row[1])
	if err != nil {
		return types.Resident{}, fmt.Errorf("age: %w", err)
	}
	return types.Resident{
		FullName:  row[0],
		Age:       age,
		Phone:     row[2],
		Apartment: row[3],
	}, nil
}

func writeAll(path string, rows [][]string) error {
	return storage.WriteFileAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.WriteAll(rows); err != nil {
			return fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		return nil
	})
}

// readAll returns the data rows of path after checking its header. The
// csv.Reader enforces that every row has as many fields as the header.
func readAll(path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if !slices.Equal(rows[0], header) {
		return nil, fmt.Errorf("%s: unexpected header %v", filepath.Base(path), rows[0])
	}
	return rows[1:], nil
}
