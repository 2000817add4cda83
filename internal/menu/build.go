package menu

import (
	"github.com/aanand-mishra/apartments-registry/internal/registry"
	"github.com/aanand-mishra/apartments-registry/internal/storage"
)

// Main builds the top-level menu.
//
//	 1. Add resident              6. Evacuate resident
//	 2. Remove resident           7. Generate reports
//	 3. Add apartment             8. Load data from storage
//	 4. Remove apartment          9. Save data to storage
//	 5. Assign resident          10. Find apartments
//	 0. Exit
func Main(reg *registry.Registry, store storage.Storage) *Menu {
	return &Menu{
		Title: "Main menu",
		Items: []Item{
			{Key: "1", Title: "Add resident", Action: AddResident(reg)},
			{Key: "2", Title: "Remove resident", Action: RemoveResident(reg)},
			{Key: "3", Title: "Add apartment", Action: AddApartment(reg)},
			{Key: "4", Title: "Remove apartment", Action: RemoveApartment(reg)},
			{Key: "5", Title: "Assign resident to apartment", Action: AssignResident(reg)},
			{Key: "6", Title: "Evacuate resident", Action: EvacuateResident(reg)},
			{Key: "7", Title: "Generate reports", Action: GenerateReports(reg)},
			{Key: "8", Title: "Load data from storage", Action: LoadData(reg, store)},
			{Key: "9", Title: "Save data to storage", Action: SaveData(reg, store)},
			{Key: "10", Title: "Find apartments", Action: Filter(reg).AsAction()},
			{Key: "0", Title: "Exit"},
		},
	}
}

// Filter builds the apartment search submenu.
func Filter(reg *registry.Registry) *Menu {
	return &Menu{
		Title: "Find apartments",
		Items: []Item{
			{Key: "1", Title: "By number of rooms", Action: ByNumRooms(reg)},
			{Key: "2", Title: "By floor", Action: ByFloor(reg)},
			{Key: "3", Title: "By area", Action: ByArea(reg)},
			{Key: "4", Title: "Vacant", Action: Vacant(reg)},
			{Key: "5", Title: "Back"},
		},
	}
}
