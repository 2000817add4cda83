// Package report renders residents and apartments as operator-facing text.
// Every function is pure: no mutation, no I/O.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aanand-mishra/apartments-registry/internal/types"
)

const (
	ResidentsHeader  = "Residents report:"
	ApartmentsHeader = "Apartments report:"
	ListHeader       = "Apartments:"
	NoApartments     = "No apartments found."
)

// Residents returns a header line followed by one line per resident.
func Residents(residents []*types.Resident) string {
	var b strings.Builder
	b.WriteString(ResidentsHeader + "\n")
	for _, r := range residents {
		b.WriteString(Resident(r) + "\n")
	}
	return b.String()
}

// Resident describes one resident and where they live.
func Resident(r *types.Resident) string {
	line := fmt.Sprintf("Full name: %s, Age: %d, Phone: %s", r.FullName, r.Age, r.Phone)
	if r.Housed() {
		return line + ", Lives in apartment " + r.Apartment
	}
	return line + ", Unhoused"
}

// Apartments returns a header line followed by one line per apartment,
// including who lives there.
func Apartments(apartments []*types.Apartment) string {
	var b strings.Builder
	b.WriteString(ApartmentsHeader + "\n")
	for _, a := range apartments {
		b.WriteString(Apartment(a) + "\n")
	}
	return b.String()
}

// Apartment describes one apartment and its residents.
func Apartment(a *types.Apartment) string {
	if a.Vacant() {
		return summary(a) + ", Vacant"
	}
	return summary(a) + ", Residents: " + strings.Join(a.Residents, ", ")
}

// List renders a filter result without residents. An empty result yields
// NoApartments.
func List(apartments []*types.Apartment) string {
	if len(apartments) == 0 {
		return NoApartments + "\n"
	}
	var b strings.Builder
	b.WriteString(ListHeader + "\n")
	for _, a := range apartments {
		b.WriteString(summary(a) + "\n")
	}
	return b.String()
}

func summary(a *types.Apartment) string {
	return fmt.Sprintf("Apartment number: %s, Floor: %d, Area: %s, Rooms: %d",
		a.ApartmentNumber, a.Floor, FormatArea(a.Area), a.NumRooms)
}

// FormatArea prints an area with the shortest exact representation,
// keeping one decimal place for whole numbers (50 -> "50.0").
func FormatArea(area float64) string {
	s := strconv.FormatFloat(area, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
