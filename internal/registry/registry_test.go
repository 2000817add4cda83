package registry_test

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/suite"

	"github.com/aanand-mishra/apartments-registry/internal/registry"
	"github.com/aanand-mishra/apartments-registry/internal/storage"
	"github.com/aanand-mishra/apartments-registry/internal/types"
)

type RegistrySuite struct {
	suite.Suite
	reg *registry.Registry
}

func (s *RegistrySuite) SetupTest() {
	s.reg = registry.New()
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) addResident(name string) *types.Resident {
	r := &types.Resident{FullName: name, Age: 30, Phone: "555-0000"}
	s.Require().NoError(s.reg.Residents.Add(r))
	return r
}

func (s *RegistrySuite) addApartment(number string, floor int, area float64, rooms int) *types.Apartment {
	a := &types.Apartment{ApartmentNumber: number, Floor: floor, Area: area, NumRooms: rooms}
	s.Require().NoError(s.reg.Apartments.Add(a))
	return a
}

// TestResidentManager verifies add/remove bookkeeping of residents.
func (s *RegistrySuite) TestResidentManager() {
	s.Run("add then remove restores prior state", func() {
		s.SetupTest()
		before := s.addResident("Alice Smith")
		r := &types.Resident{FullName: "John Doe", Age: 25, Phone: "123-45-678"}

		s.Require().NoError(s.reg.Residents.Add(r))
		s.Contains(s.reg.Residents.All(), r)

		s.Require().NoError(s.reg.Residents.Remove(r))
		s.Equal([]*types.Resident{before}, s.reg.Residents.All())
	})

	s.Run("remove of absent resident is NotFound and changes nothing", func() {
		s.SetupTest()
		s.addResident("Alice Smith")
		stranger := &types.Resident{FullName: "Alice Smith", Age: 30}

		err := s.reg.Residents.Remove(stranger)
		s.Require().ErrorIs(err, registry.ErrNotFound)
		s.Equal(1, s.reg.Residents.Len())
	})

	s.Run("rejects duplicate names", func() {
		s.SetupTest()
		s.addResident("Alice Smith")

		err := s.reg.Residents.Add(&types.Resident{FullName: "Alice Smith", Age: 40})
		s.Require().ErrorIs(err, registry.ErrDuplicate)
		s.Equal(1, s.reg.Residents.Len())
	})

	s.Run("rejects invalid records", func() {
		s.SetupTest()
		err := s.reg.Residents.Add(&types.Resident{FullName: "", Age: -1})

		var validateErrs validator.ValidationErrors
		s.Require().ErrorAs(err, &validateErrs)
		s.Len(validateErrs, 2)
		s.Zero(s.reg.Residents.Len())
	})

	s.Run("find returns NotFound for unknown name", func() {
		s.SetupTest()
		_, err := s.reg.Residents.Find("Nobody")
		s.Require().ErrorIs(err, registry.ErrNotFound)
	})
}

// TestApartmentManager verifies add/remove and the filters.
func (s *RegistrySuite) TestApartmentManager() {
	s.Run("add then remove by number", func() {
		s.SetupTest()
		a := s.addApartment("102", 2, 60.0, 3)
		s.Contains(s.reg.Apartments.All(), a)

		removed, err := s.reg.Apartments.Remove("102")
		s.Require().NoError(err)
		s.Same(a, removed)
		s.Empty(s.reg.Apartments.All())
	})

	s.Run("remove of unknown number is NotFound", func() {
		s.SetupTest()
		s.addApartment("101", 1, 50.0, 2)

		_, err := s.reg.Apartments.Remove("999")
		s.Require().ErrorIs(err, registry.ErrNotFound)
		s.Equal(1, s.reg.Apartments.Len())
	})

	s.Run("rejects duplicate numbers", func() {
		s.SetupTest()
		s.addApartment("101", 1, 50.0, 2)

		err := s.reg.Apartments.Add(&types.Apartment{ApartmentNumber: "101", Floor: 4, Area: 70, NumRooms: 3})
		s.Require().ErrorIs(err, registry.ErrDuplicate)
	})

	s.Run("rejects non-positive area", func() {
		s.SetupTest()
		err := s.reg.Apartments.Add(&types.Apartment{ApartmentNumber: "1", Area: 0})

		var validateErrs validator.ValidationErrors
		s.Require().ErrorAs(err, &validateErrs)
		s.Equal("Area", validateErrs[0].Field())
	})

	s.Run("filters match exactly and keep insertion order", func() {
		s.SetupTest()
		a1 := s.addApartment("1", 1, 40.0, 1)
		a2 := s.addApartment("2", 2, 55.5, 2)
		a3 := s.addApartment("3", 1, 55.5, 2)
		a4 := s.addApartment("4", 3, 55.4, 3)

		s.Equal([]*types.Apartment{a1, a3}, s.reg.Apartments.ByFloor(1))
		s.Equal([]*types.Apartment{a2, a3}, s.reg.Apartments.ByNumRooms(2))
		s.Equal([]*types.Apartment{a2, a3}, s.reg.Apartments.ByArea(55.5))
		s.Equal([]*types.Apartment{a4}, s.reg.Apartments.ByArea(55.4))
		s.Empty(s.reg.Apartments.ByFloor(9))
		s.NotNil(s.reg.Apartments.ByFloor(9))
	})

	s.Run("vacant lists apartments with empty member lists", func() {
		s.SetupTest()
		a1 := s.addApartment("1", 1, 40.0, 1)
		s.addApartment("2", 2, 55.5, 2)
		a3 := s.addApartment("3", 1, 55.5, 2)
		s.addResident("Jane Doe")
		s.Require().NoError(s.reg.Handler.Assign("Jane Doe", "2"))

		s.Equal([]*types.Apartment{a1, a3}, s.reg.Apartments.Vacant())
	})
}

// TestAssignment verifies the assign/evacuate state machine. Assign and
// Evacuate are inverse: both sides of the relation always agree.
func (s *RegistrySuite) TestAssignment() {
	s.Run("assign links both sides", func() {
		s.SetupTest()
		r := s.addResident("Jane Doe")
		a := s.addApartment("12A", 3, 42.5, 1)

		s.Require().NoError(s.reg.Handler.Assign("Jane Doe", "12A"))
		s.Equal("12A", r.Apartment)
		s.Equal([]string{"Jane Doe"}, a.Residents)
	})

	s.Run("second assign to the same apartment is a no-op", func() {
		s.SetupTest()
		s.addResident("Jane Doe")
		a := s.addApartment("12A", 3, 42.5, 1)
		s.Require().NoError(s.reg.Handler.Assign("Jane Doe", "12A"))

		err := s.reg.Handler.Assign("Jane Doe", "12A")
		s.Require().ErrorIs(err, registry.ErrAlreadyAssigned)
		s.Equal([]string{"Jane Doe"}, a.Residents)
	})

	s.Run("evacuate clears both sides", func() {
		s.SetupTest()
		r := s.addResident("Jane Doe")
		a := s.addApartment("12A", 3, 42.5, 1)
		s.Require().NoError(s.reg.Handler.Assign("Jane Doe", "12A"))

		number, err := s.reg.Handler.Evacuate("Jane Doe")
		s.Require().NoError(err)
		s.Equal("12A", number)
		s.False(r.Housed())
		s.Empty(a.Residents)
		s.True(a.Vacant())
	})

	s.Run("assign elsewhere moves the resident out first", func() {
		s.SetupTest()
		r := s.addResident("Jane Doe")
		s.addResident("John Roe")
		first := s.addApartment("1", 1, 30, 1)
		second := s.addApartment("2", 2, 30, 1)
		s.Require().NoError(s.reg.Handler.Assign("John Roe", "1"))
		s.Require().NoError(s.reg.Handler.Assign("Jane Doe", "1"))

		s.Require().NoError(s.reg.Handler.Assign("Jane Doe", "2"))
		s.Equal("2", r.Apartment)
		s.Equal([]string{"John Roe"}, first.Residents)
		s.Equal([]string{"Jane Doe"}, second.Residents)
	})

	s.Run("member list keeps assignment order", func() {
		s.SetupTest()
		a := s.addApartment("1", 1, 30, 1)
		for _, name := range []string{"C", "A", "B"} {
			s.addResident(name)
			s.Require().NoError(s.reg.Handler.Assign(name, "1"))
		}
		s.Equal([]string{"C", "A", "B"}, a.Residents)
	})

	s.Run("unknown keys are NotFound", func() {
		s.SetupTest()
		s.addResident("Jane Doe")
		s.addApartment("12A", 3, 42.5, 1)

		s.ErrorIs(s.reg.Handler.Assign("Nobody", "12A"), registry.ErrNotFound)
		s.ErrorIs(s.reg.Handler.Assign("Jane Doe", "99"), registry.ErrNotFound)
		_, err := s.reg.Handler.Evacuate("Nobody")
		s.ErrorIs(err, registry.ErrNotFound)
	})

	s.Run("evacuating an unhoused resident is NotAssigned", func() {
		s.SetupTest()
		s.addResident("Jane Doe")

		_, err := s.reg.Handler.Evacuate("Jane Doe")
		s.Require().ErrorIs(err, registry.ErrNotAssigned)
	})
}

// TestRemovalKeepsRelationConsistent verifies that removing either side
// never leaves a dangling key behind.
func (s *RegistrySuite) TestRemovalKeepsRelationConsistent() {
	s.Run("removing a resident drops them from their apartment", func() {
		s.SetupTest()
		s.addResident("Jane Doe")
		a := s.addApartment("12A", 3, 42.5, 1)
		s.Require().NoError(s.reg.Handler.Assign("Jane Doe", "12A"))

		s.Require().NoError(s.reg.RemoveResident("Jane Doe"))
		s.Empty(a.Residents)
		s.Zero(s.reg.Residents.Len())
	})

	s.Run("removing an apartment evacuates its residents", func() {
		s.SetupTest()
		r1 := s.addResident("Jane Doe")
		r2 := s.addResident("John Roe")
		s.addApartment("12A", 3, 42.5, 1)
		s.Require().NoError(s.reg.Handler.Assign("Jane Doe", "12A"))
		s.Require().NoError(s.reg.Handler.Assign("John Roe", "12A"))

		s.Require().NoError(s.reg.RemoveApartment("12A"))
		s.False(r1.Housed())
		s.False(r2.Housed())
	})

	s.Run("removing unknown keys is NotFound", func() {
		s.SetupTest()
		s.ErrorIs(s.reg.RemoveResident("Nobody"), registry.ErrNotFound)
		s.ErrorIs(s.reg.RemoveApartment("0"), registry.ErrNotFound)
	})
}

// TestSnapshotRestore verifies the copy-out and the re-linking pass.
func (s *RegistrySuite) TestSnapshotRestore() {
	s.Run("round trip keeps records and links", func() {
		s.SetupTest()
		s.addResident("Jane Doe")
		s.addResident("John Roe")
		s.addApartment("12A", 3, 42.5, 1)
		s.addApartment("7", 1, 80, 4)
		s.Require().NoError(s.reg.Handler.Assign("Jane Doe", "12A"))

		snap := s.reg.Snapshot()
		restored := registry.New()
		s.Require().NoError(restored.Restore(snap))

		s.Equal(snap, restored.Snapshot())
		r, err := restored.Residents.Find("Jane Doe")
		s.Require().NoError(err)
		s.Equal("12A", r.Apartment)
	})

	s.Run("snapshot does not alias live records", func() {
		s.SetupTest()
		s.addResident("Jane Doe")
		a := s.addApartment("12A", 3, 42.5, 1)
		s.Require().NoError(s.reg.Handler.Assign("Jane Doe", "12A"))

		snap := s.reg.Snapshot()
		_, err := s.reg.Handler.Evacuate("Jane Doe")
		s.Require().NoError(err)

		s.Empty(a.Residents)
		s.Equal([]string{"Jane Doe"}, snap.Apartments[0].Residents)
		s.Equal("12A", snap.Residents[0].Apartment)
	})

	s.Run("links known from one side only are restored", func() {
		s.SetupTest()
		snap := storage.Snapshot{
			Residents: []types.Resident{
				{FullName: "A", Age: 1},
				{FullName: "B", Age: 2, Apartment: "1"},
			},
			Apartments: []types.Apartment{
				{ApartmentNumber: "1", Area: 10, Residents: []string{"A"}},
			},
		}

		s.Require().NoError(s.reg.Restore(snap))
		a, err := s.reg.Apartments.Find("1")
		s.Require().NoError(err)
		s.Equal([]string{"A", "B"}, a.Residents)
	})

	s.Run("dangling and invalid entries are skipped and reported", func() {
		s.SetupTest()
		snap := storage.Snapshot{
			Residents: []types.Resident{
				{FullName: "A", Age: 1, Apartment: "missing"},
				{FullName: "A", Age: 2},
				{FullName: "", Age: 3},
			},
			Apartments: []types.Apartment{
				{ApartmentNumber: "1", Area: 10, Residents: []string{"ghost"}},
				{ApartmentNumber: "2", Area: -1},
			},
		}

		err := s.reg.Restore(snap)
		s.Require().Error(err)
		s.ErrorIs(err, registry.ErrNotFound)
		s.ErrorIs(err, registry.ErrDuplicate)
		s.Equal(1, s.reg.Residents.Len())
		s.Equal(1, s.reg.Apartments.Len())

		r, findErr := s.reg.Residents.Find("A")
		s.Require().NoError(findErr)
		s.False(r.Housed())
		a, findErr := s.reg.Apartments.Find("1")
		s.Require().NoError(findErr)
		s.True(a.Vacant())
	})

	s.Run("a resident listed by two apartments stays in the first", func() {
		s.SetupTest()
		snap := storage.Snapshot{
			Residents: []types.Resident{{FullName: "A", Age: 1}},
			Apartments: []types.Apartment{
				{ApartmentNumber: "1", Area: 10, Residents: []string{"A"}},
				{ApartmentNumber: "2", Area: 10, Residents: []string{"A"}},
			},
		}

		err := s.reg.Restore(snap)
		s.Require().ErrorIs(err, registry.ErrAlreadyAssigned)
		r, findErr := s.reg.Residents.Find("A")
		s.Require().NoError(findErr)
		s.Equal("1", r.Apartment)
	})
}

// TestScenario walks the documented example end to end.
func (s *RegistrySuite) TestScenario() {
	s.Require().NoError(s.reg.Residents.Add(&types.Resident{FullName: "Jane Doe", Age: 28, Phone: "555-0100"}))
	s.Require().NoError(s.reg.Apartments.Add(&types.Apartment{ApartmentNumber: "12A", Floor: 3, Area: 42.5, NumRooms: 1}))

	s.Require().NoError(s.reg.Handler.Assign("Jane Doe", "12A"))
	a, err := s.reg.Apartments.Find("12A")
	s.Require().NoError(err)
	s.Equal([]string{"Jane Doe"}, a.Residents)

	_, err = s.reg.Handler.Evacuate("Jane Doe")
	s.Require().NoError(err)

	r, err := s.reg.Residents.Find("Jane Doe")
	s.Require().NoError(err)
	s.False(r.Housed())
	s.Empty(a.Residents)
}
