// Package types holds the shared records used across the application.
// Keeping them in one place prevents import cycles: the registry,
// storage backends, reports and the menu all import types without
// depending on each other.
package types

// Resident is a person kept in the registry.
//
// FullName is the lookup key. Apartment holds the ApartmentNumber of the
// apartment the resident currently lives in, or "" when unhoused. The
// relation is stored by key so a Resident never owns an Apartment.
//
// Struct tags:
//
//  1. json:"..."     used by the JSON storage backend.
//  2. validate:"..." rules checked by go-playground/validator on add and load.
type Resident struct {
	FullName  string `json:"full_name" validate:"required"`
	Age       int    `json:"age"       validate:"gte=0"`
	Phone     string `json:"phone"`
	Apartment string `json:"-"`
}

// Housed reports whether the resident is assigned to an apartment.
func (r *Resident) Housed() bool {
	return r.Apartment != ""
}

// Apartment is a dwelling kept in the registry.
//
// Residents lists the FullName of every assigned resident in
// assignment order.
type Apartment struct {
	ApartmentNumber string   `json:"apartment_number" validate:"required"`
	Floor           int      `json:"floor"`
	Area            float64  `json:"area"             validate:"gt=0"`
	NumRooms        int      `json:"num_rooms"        validate:"gte=0"`
	Residents       []string `json:"-"`
}

// Vacant reports whether nobody is assigned to the apartment.
func (a *Apartment) Vacant() bool {
	return len(a.Residents) == 0
}

// HasResident reports whether fullName is in the member list.
func (a *Apartment) HasResident(fullName string) bool {
	for _, name := range a.Residents {
		if name == fullName {
			return true
		}
	}
	return false
}
