package registry

import (
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/apartments-registry/internal/types"
)

// Handler performs the operations that change a resident and an apartment
// together. Both sides of the relation are updated in the same call:
//
//	Unassigned --Assign--> Assigned --Evacuate--> Unassigned
//
// Assign and Evacuate are inverse. Evacuation removes the resident from the
// apartment's member list, and assigning a resident who lives elsewhere
// evacuates the previous apartment first, so a resident is a member of at
// most one apartment.
type Handler struct {
	residents  *ResidentManager
	apartments *ApartmentManager
}

// NewHandler returns a Handler resolving keys through the given managers.
func NewHandler(residents *ResidentManager, apartments *ApartmentManager) *Handler {
	return &Handler{residents: residents, apartments: apartments}
}

// Assign moves the resident named fullName into the apartment numbered
// number. Assigning a resident to the apartment they already live in is a
// no-op that returns ErrAlreadyAssigned.
func (h *Handler) Assign(fullName, number string) error {
	r, err := h.residents.Find(fullName)
	if err != nil {
		return fmt.Errorf("Assign: %w", err)
	}
	a, err := h.apartments.Find(number)
	if err != nil {
		return fmt.Errorf("Assign: %w", err)
	}

	if a.HasResident(r.FullName) {
		return fmt.Errorf("Assign: %q in apartment %q: %w", r.FullName, a.ApartmentNumber, ErrAlreadyAssigned)
	}

	if r.Housed() {
		prev := r.Apartment
		h.unlink(r)
		slog.Info("resident moved out before reassignment",
			slog.String("full_name", r.FullName),
			slog.String("apartment_number", prev))
	}

	a.Residents = append(a.Residents, r.FullName)
	r.Apartment = a.ApartmentNumber

	slog.Info("resident assigned",
		slog.String("full_name", r.FullName),
		slog.String("apartment_number", a.ApartmentNumber))
	return nil
}

// Evacuate unlinks the resident named fullName from their apartment and
// returns the number of the apartment they left.
func (h *Handler) Evacuate(fullName string) (string, error) {
	r, err := h.residents.Find(fullName)
	if err != nil {
		return "", fmt.Errorf("Evacuate: %w", err)
	}
	if !r.Housed() {
		return "", fmt.Errorf("Evacuate: %q: %w", r.FullName, ErrNotAssigned)
	}

	number := r.Apartment
	h.unlink(r)

	slog.Info("resident evacuated",
		slog.String("full_name", r.FullName),
		slog.String("apartment_number", number))
	return number, nil
}

// unlink clears both sides of r's relation. A dangling apartment key is
// cleared without error.
func (h *Handler) unlink(r *types.Resident) {
	if a, err := h.apartments.Find(r.Apartment); err == nil {
		a.Residents = without(a.Residents, r.FullName)
	}
	r.Apartment = ""
}

func without(names []string, name string) []string {
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
