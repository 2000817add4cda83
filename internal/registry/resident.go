// Package registry owns the in-memory collections of residents and
// apartments and the operations that keep the relation between them
// consistent.
//
// A Registry is constructed once per run and passed to whoever needs it;
// there is no package-level state.
package registry

import (
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/apartments-registry/internal/types"
	"github.com/go-playground/validator/v10"
)

// validate is shared by both managers. A *validator.Validate caches struct
// metadata, so one instance is reused instead of calling validator.New()
// per record.
var validate = validator.New()

// ResidentManager owns the ordered sequence of residents.
type ResidentManager struct {
	residents []*types.Resident
}

// NewResidentManager returns an empty manager.
func NewResidentManager() *ResidentManager {
	return &ResidentManager{}
}

// Add validates r and appends it. A resident whose FullName is already
// registered is rejected with ErrDuplicate.
//
// Validation failures are returned as validator.ValidationErrors so the
// caller can format them per field.
func (m *ResidentManager) Add(r *types.Resident) error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if _, err := m.Find(r.FullName); err == nil {
		return fmt.Errorf("resident %q: %w", r.FullName, ErrDuplicate)
	}

	m.residents = append(m.residents, r)
	slog.Debug("resident added", slog.String("full_name", r.FullName))
	return nil
}

// Remove deletes r by identity. It does not touch any apartment; use
// Registry.RemoveResident to also drop the resident from its apartment.
func (m *ResidentManager) Remove(r *types.Resident) error {
	for i, cur := range m.residents {
		if cur == r {
			m.residents = append(m.residents[:i], m.residents[i+1:]...)
			slog.Debug("resident removed", slog.String("full_name", r.FullName))
			return nil
		}
	}
	return fmt.Errorf("resident %q: %w", r.FullName, ErrNotFound)
}

// Find returns the first resident whose FullName equals fullName.
func (m *ResidentManager) Find(fullName string) (*types.Resident, error) {
	for _, r := range m.residents {
		if r.FullName == fullName {
			return r, nil
		}
	}
	return nil, fmt.Errorf("resident %q: %w", fullName, ErrNotFound)
}

// All returns the residents in insertion order. The slice is a copy; the
// records are shared.
func (m *ResidentManager) All() []*types.Resident {
	out := make([]*types.Resident, len(m.residents))
	copy(out, m.residents)
	return out
}

// Len returns the number of registered residents.
func (m *ResidentManager) Len() int {
	return len(m.residents)
}
