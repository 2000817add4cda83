package menu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/apartments-registry/internal/registry"
	"github.com/aanand-mishra/apartments-registry/internal/report"
	"github.com/aanand-mishra/apartments-registry/internal/storage"
	"github.com/aanand-mishra/apartments-registry/internal/types"
	"github.com/aanand-mishra/apartments-registry/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// Residents
// ─────────────────────────────────────────────────────────────────────────────

// AddResident asks for a name, age and phone and registers the resident.
func AddResident(reg *registry.Registry) Action {
	return func(c *Console) error {
		name, err := c.Ask("Resident full name")
		if err != nil {
			return err
		}
		age, err := c.AskInt("Resident age")
		if err != nil {
			return err
		}
		phone, err := c.Ask("Resident phone")
		if err != nil {
			return err
		}

		r := &types.Resident{FullName: name, Age: age, Phone: phone}
		if err := reg.Residents.Add(r); err != nil {
			return err
		}
		c.Reply(response.OK("Resident %s added.", r.FullName))
		return nil
	}
}

// RemoveResident removes the first resident with the given name.
func RemoveResident(reg *registry.Registry) Action {
	return func(c *Console) error {
		name, err := c.Ask("Full name of the resident to remove")
		if err != nil {
			return err
		}
		if err := reg.RemoveResident(name); err != nil {
			return err
		}
		c.Reply(response.OK("Resident %s removed.", name))
		return nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Apartments
// ─────────────────────────────────────────────────────────────────────────────

// AddApartment asks for number, floor, area and rooms and registers the
// apartment.
func AddApartment(reg *registry.Registry) Action {
	return func(c *Console) error {
		number, err := c.Ask("Apartment number")
		if err != nil {
			return err
		}
		floor, err := c.AskInt("Apartment floor")
		if err != nil {
			return err
		}
		area, err := c.AskFloat("Apartment area")
		if err != nil {
			return err
		}
		rooms, err := c.AskInt("Number of rooms")
		if err != nil {
			return err
		}

		a := &types.Apartment{ApartmentNumber: number, Floor: floor, Area: area, NumRooms: rooms}
		if err := reg.Apartments.Add(a); err != nil {
			return err
		}
		c.Reply(response.OK("Apartment %s added.", a.ApartmentNumber))
		return nil
	}
}

// RemoveApartment removes an apartment by number.
func RemoveApartment(reg *registry.Registry) Action {
	return func(c *Console) error {
		number, err := c.Ask("Number of the apartment to remove")
		if err != nil {
			return err
		}
		if err := reg.RemoveApartment(number); err != nil {
			return err
		}
		c.Reply(response.OK("Apartment %s removed.", number))
		return nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Assignment
// ─────────────────────────────────────────────────────────────────────────────

// AssignResident moves a resident into an apartment.
func AssignResident(reg *registry.Registry) Action {
	return func(c *Console) error {
		name, err := c.Ask("Full name of the resident to assign")
		if err != nil {
			return err
		}
		number, err := c.Ask("Apartment number to assign to")
		if err != nil {
			return err
		}

		err = reg.Handler.Assign(name, number)
		if errors.Is(err, registry.ErrAlreadyAssigned) {
			c.Reply(response.Notice("%s already lives in apartment %s.", name, number))
			return nil
		}
		if err != nil {
			return err
		}
		c.Reply(response.OK("%s assigned to apartment %s.", name, number))
		return nil
	}
}

// EvacuateResident moves a resident out of their apartment.
func EvacuateResident(reg *registry.Registry) Action {
	return func(c *Console) error {
		name, err := c.Ask("Full name of the resident to evacuate")
		if err != nil {
			return err
		}
		number, err := reg.Handler.Evacuate(name)
		if err != nil {
			return err
		}
		c.Reply(response.OK("Resident %s evacuated from apartment %s.", name, number))
		return nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Reports and filters
// ─────────────────────────────────────────────────────────────────────────────

// GenerateReports offers the residents and apartments reports and prints
// the one picked.
func GenerateReports(reg *registry.Registry) Action {
	return func(c *Console) error {
		c.Print("Reports:\n1. Residents report\n2. Apartments report\n")
		choice, err := c.Ask("Choose a report")
		if err != nil {
			return err
		}
		switch choice {
		case "1":
			c.Print(report.Residents(reg.Residents.All()))
		case "2":
			c.Print(report.Apartments(reg.Apartments.All()))
		default:
			return fmt.Errorf("unknown report %q: %w", choice, ErrInvalidInput)
		}
		return nil
	}
}

// ByNumRooms lists apartments with the given number of rooms.
func ByNumRooms(reg *registry.Registry) Action {
	return func(c *Console) error {
		n, err := c.AskInt("Number of rooms to search for")
		if err != nil {
			return err
		}
		c.Print(report.List(reg.Apartments.ByNumRooms(n)))
		return nil
	}
}

// ByFloor lists apartments on the given floor.
func ByFloor(reg *registry.Registry) Action {
	return func(c *Console) error {
		f, err := c.AskInt("Floor to search for")
		if err != nil {
			return err
		}
		c.Print(report.List(reg.Apartments.ByFloor(f)))
		return nil
	}
}

// ByArea lists apartments with exactly the given area.
func ByArea(reg *registry.Registry) Action {
	return func(c *Console) error {
		area, err := c.AskFloat("Area to search for")
		if err != nil {
			return err
		}
		c.Print(report.List(reg.Apartments.ByArea(area)))
		return nil
	}
}

// Vacant lists apartments nobody lives in.
func Vacant(reg *registry.Registry) Action {
	return func(c *Console) error {
		c.Print(report.List(reg.Apartments.Vacant()))
		return nil
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Persistence
// ─────────────────────────────────────────────────────────────────────────────

// LoadData replaces the registry with what store holds. It works once per
// session; later attempts report that data is already loaded.
//
// A missing or unreadable store is reported and the registry keeps its
// current contents.
func LoadData(reg *registry.Registry, store storage.Storage) Action {
	loaded := false

	return func(c *Console) error {
		if loaded {
			c.Reply(response.Notice("Data is already loaded."))
			return nil
		}
		loaded = true

		snap, err := store.Load()
		if err != nil {
			slog.Warn("load failed",
				slog.String("location", store.Location()),
				slog.String("error", err.Error()))
			c.Reply(response.FromError(err))
			return nil
		}

		if err := reg.Restore(snap); err != nil {
			c.Reply(response.Notice("Some saved entries were skipped: %s", err.Error()))
		}
		c.Reply(response.OK("Data loaded from %s: %d residents, %d apartments.",
			store.Location(), reg.Residents.Len(), reg.Apartments.Len()))
		return nil
	}
}

// SaveData writes the registry to store. A failed save is reported and
// the registry is left untouched.
func SaveData(reg *registry.Registry, store storage.Storage) Action {
	return func(c *Console) error {
		if err := store.Save(reg.Snapshot()); err != nil {
			slog.Error("save failed",
				slog.String("location", store.Location()),
				slog.String("error", err.Error()))
			return err
		}
		slog.Info("data saved", slog.String("location", store.Location()))
		c.Reply(response.OK("Data saved to %s.", store.Location()))
		return nil
	}
}
