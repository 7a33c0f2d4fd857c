package ui

import "fixdesk/internal/catalog"

// PickerOptions converts catalog entities to picker options, keeping order.
func PickerOptions(entities []catalog.Entity) []Option {
	out := make([]Option, 0, len(entities))
	for _, e := range entities {
		out = append(out, Option{ID: e.ID, Name: e.Name})
	}
	return out
}

// entityName resolves id within entities, or "" when unknown.
func entityName(entities []catalog.Entity, id string) string {
	for _, e := range entities {
		if e.ID == id {
			return e.Name
		}
	}
	return ""
}

func hasEntityID(entities []catalog.Entity, id string) bool {
	return id != "" && entityName(entities, id) != ""
}
