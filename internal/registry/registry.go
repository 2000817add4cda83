package registry

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/apartments-registry/internal/storage"
	"github.com/aanand-mishra/apartments-registry/internal/types"
)

// Registry owns both collections and the handler that links them.
type Registry struct {
	Residents  *ResidentManager
	Apartments *ApartmentManager
	Handler    *Handler
}

// New returns an empty registry.
func New() *Registry {
	residents := NewResidentManager()
	apartments := NewApartmentManager()
	return &Registry{
		Residents:  residents,
		Apartments: apartments,
		Handler:    NewHandler(residents, apartments),
	}
}

// RemoveResident evacuates the first resident named fullName, if housed,
// and removes them.
func (reg *Registry) RemoveResident(fullName string) error {
	r, err := reg.Residents.Find(fullName)
	if err != nil {
		return fmt.Errorf("RemoveResident: %w", err)
	}
	if r.Housed() {
		reg.Handler.unlink(r)
	}
	if err := reg.Residents.Remove(r); err != nil {
		return fmt.Errorf("RemoveResident: %w", err)
	}
	return nil
}

// RemoveApartment removes the apartment numbered number and evacuates
// everyone assigned to it, so no resident keeps a key to a removed
// apartment.
func (reg *Registry) RemoveApartment(number string) error {
	a, err := reg.Apartments.Remove(number)
	if err != nil {
		return fmt.Errorf("RemoveApartment: %w", err)
	}
	for _, name := range a.Residents {
		if r, err := reg.Residents.Find(name); err == nil && r.Apartment == number {
			r.Apartment = ""
		}
	}
	a.Residents = nil
	return nil
}

// Snapshot copies the registry into a storage.Snapshot.
func (reg *Registry) Snapshot() storage.Snapshot {
	snap := storage.Snapshot{
		Residents:  make([]types.Resident, 0, reg.Residents.Len()),
		Apartments: make([]types.Apartment, 0, reg.Apartments.Len()),
	}
	for _, r := range reg.Residents.All() {
		snap.Residents = append(snap.Residents, *r)
	}
	for _, a := range reg.Apartments.All() {
		c := *a
		c.Residents = append([]string(nil), a.Residents...)
		snap.Apartments = append(snap.Apartments, c)
	}
	return snap
}

// Restore replaces the registry contents with snap.
//
// Records are added first with their relation keys cleared; the links are
// rebuilt in a second pass because each side refers to keys of the other.
// The apartment member lists decide link order; a resident whose own
// apartment key is not reflected in a member list is appended to it.
// Invalid, duplicate, or dangling entries are skipped and reported together
// in the returned error. The registry is usable whatever Restore returns.
func (reg *Registry) Restore(snap storage.Snapshot) error {
	residents := NewResidentManager()
	apartments := NewApartmentManager()
	var errs []error

	for _, a := range snap.Apartments {
		c := a
		c.Residents = nil
		if err := apartments.Add(&c); err != nil {
			errs = append(errs, fmt.Errorf("apartment %q: %w", a.ApartmentNumber, err))
		}
	}
	for _, r := range snap.Residents {
		c := r
		c.Apartment = ""
		if err := residents.Add(&c); err != nil {
			errs = append(errs, fmt.Errorf("resident %q: %w", r.FullName, err))
		}
	}

	// Second pass: relink by key.
	link := func(fullName, number string) {
		r, err := residents.Find(fullName)
		if err != nil {
			errs = append(errs, fmt.Errorf("link %q -> %q: %w", fullName, number, err))
			return
		}
		a, err := apartments.Find(number)
		if err != nil {
			errs = append(errs, fmt.Errorf("link %q -> %q: %w", fullName, number, err))
			return
		}
		if r.Housed() {
			if r.Apartment != number {
				errs = append(errs, fmt.Errorf("link %q -> %q: already in %q: %w",
					fullName, number, r.Apartment, ErrAlreadyAssigned))
			}
			return
		}
		a.Residents = append(a.Residents, r.FullName)
		r.Apartment = a.ApartmentNumber
	}
	for _, a := range snap.Apartments {
		for _, name := range a.Residents {
			link(name, a.ApartmentNumber)
		}
	}
	for _, r := range snap.Residents {
		if r.Apartment != "" {
			link(r.FullName, r.Apartment)
		}
	}

	reg.Residents = residents
	reg.Apartments = apartments
	reg.Handler = NewHandler(residents, apartments)

	err := errors.Join(errs...)
	if err != nil {
		slog.Warn("registry restored with skipped entries", slog.String("error", err.Error()))
	}
	slog.Info("registry restored",
		slog.Int("residents", residents.Len()),
		slog.Int("apartments", apartments.Len()))
	return err
}
