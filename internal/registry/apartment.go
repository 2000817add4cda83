package registry

import (
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/apartments-registry/internal/types"
)

// ApartmentManager owns the ordered sequence of apartments.
type ApartmentManager struct {
	apartments []*types.Apartment
}

// NewApartmentManager returns an empty manager.
func NewApartmentManager() *ApartmentManager {
	return &ApartmentManager{}
}

// Add validates a and appends it. Duplicate apartment numbers are rejected
// with ErrDuplicate. Every successful add is logged at Info level.
func (m *ApartmentManager) Add(a *types.Apartment) error {
	if err := validate.Struct(a); err != nil {
		return err
	}
	if _, err := m.Find(a.ApartmentNumber); err == nil {
		return fmt.Errorf("apartment %q: %w", a.ApartmentNumber, ErrDuplicate)
	}

	m.apartments = append(m.apartments, a)
	slog.Info("apartment added", slog.String("apartment_number", a.ApartmentNumber))
	return nil
}

// Remove deletes the first apartment numbered number and returns it.
// Residents are not touched; use Registry.RemoveApartment to evacuate them.
func (m *ApartmentManager) Remove(number string) (*types.Apartment, error) {
	for i, a := range m.apartments {
		if a.ApartmentNumber == number {
			m.apartments = append(m.apartments[:i], m.apartments[i+1:]...)
			slog.Info("apartment removed", slog.String("apartment_number", number))
			return a, nil
		}
	}
	return nil, fmt.Errorf("apartment %q: %w", number, ErrNotFound)
}

// Find returns the first apartment numbered number.
func (m *ApartmentManager) Find(number string) (*types.Apartment, error) {
	for _, a := range m.apartments {
		if a.ApartmentNumber == number {
			return a, nil
		}
	}
	return nil, fmt.Errorf("apartment %q: %w", number, ErrNotFound)
}

// All returns the apartments in insertion order.
func (m *ApartmentManager) All() []*types.Apartment {
	return m.filter(func(*types.Apartment) bool { return true })
}

// Len returns the number of registered apartments.
func (m *ApartmentManager) Len() int {
	return len(m.apartments)
}

// ByNumRooms returns the apartments with exactly n rooms.
func (m *ApartmentManager) ByNumRooms(n int) []*types.Apartment {
	return m.filter(func(a *types.Apartment) bool { return a.NumRooms == n })
}

// ByFloor returns the apartments on floor f.
func (m *ApartmentManager) ByFloor(f int) []*types.Apartment {
	return m.filter(func(a *types.Apartment) bool { return a.Floor == f })
}

// ByArea returns the apartments whose area equals area exactly.
func (m *ApartmentManager) ByArea(area float64) []*types.Apartment {
	return m.filter(func(a *types.Apartment) bool { return a.Area == area })
}

// Vacant returns the apartments with an empty member list.
func (m *ApartmentManager) Vacant() []*types.Apartment {
	return m.filter(func(a *types.Apartment) bool { return a.Vacant() })
}

// filter preserves insertion order and never returns nil.
func (m *ApartmentManager) filter(keep func(*types.Apartment) bool) []*types.Apartment {
	out := make([]*types.Apartment, 0, len(m.apartments))
	for _, a := range m.apartments {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
