// Package storagetest holds the behaviour every storage.Storage backend
// must share, run by each backend's own tests.
package storagetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/apartments-registry/internal/registry"
	"github.com/aanand-mishra/apartments-registry/internal/storage"
	"github.com/aanand-mishra/apartments-registry/internal/types"
)

// Fixture returns a registry with housed and unhoused residents, an
// apartment with two members, and a vacant apartment.
func Fixture(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.New()
	for _, r := range []*types.Resident{
		{FullName: "Jane Doe", Age: 28, Phone: "555-0100"},
		{FullName: "John Roe", Age: 41, Phone: "555-0199"},
		{FullName: "Іванов Іван", Age: 30, Phone: "123-45-67"},
		{FullName: "Mary \"Quoted\" Major", Age: 0, Phone: ""},
	} {
		require.NoError(t, reg.Residents.Add(r))
	}
	for _, a := range []*types.Apartment{
		{ApartmentNumber: "12A", Floor: 3, Area: 42.5, NumRooms: 1},
		{ApartmentNumber: "101", Floor: 1, Area: 50, NumRooms: 2},
		{ApartmentNumber: "B-2", Floor: -1, Area: 18.75, NumRooms: 0},
	} {
		require.NoError(t, reg.Apartments.Add(a))
	}
	require.NoError(t, reg.Handler.Assign("John Roe", "101"))
	require.NoError(t, reg.Handler.Assign("Jane Doe", "101"))
	require.NoError(t, reg.Handler.Assign("Іванов Іван", "12A"))
	return reg
}

// Run exercises newStore against the shared contract. newStore must
// return a backend over fresh, empty storage on every call.
func Run(t *testing.T, newStore func(t *testing.T) storage.Storage) {
	t.Run("load before save is ErrNoData", func(t *testing.T) {
		snap, err := newStore(t).Load()
		require.ErrorIs(t, err, storage.ErrNoData)
		assert.Empty(t, snap.Residents)
		assert.Empty(t, snap.Apartments)
	})

	t.Run("round trip keeps records and links", func(t *testing.T) {
		store := newStore(t)
		want := Fixture(t).Snapshot()

		require.NoError(t, store.Save(want))
		got, err := store.Load()
		require.NoError(t, err)

		restored := registry.New()
		require.NoError(t, restored.Restore(got))
		assert.Equal(t, want, restored.Snapshot())
	})

	t.Run("empty registry round trips", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save(registry.New().Snapshot()))

		got, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, got.Residents)
		assert.Empty(t, got.Apartments)
	})

	t.Run("save replaces previous contents", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Save(Fixture(t).Snapshot()))

		smaller := registry.New()
		require.NoError(t, smaller.Residents.Add(&types.Resident{FullName: "Solo", Age: 50}))
		require.NoError(t, store.Save(smaller.Snapshot()))

		got, err := store.Load()
		require.NoError(t, err)
		require.Len(t, got.Residents, 1)
		assert.Equal(t, "Solo", got.Residents[0].FullName)
		assert.Empty(t, got.Apartments)
	})

	t.Run("location is reported", func(t *testing.T) {
		assert.NotEmpty(t, newStore(t).Location())
	})
}
