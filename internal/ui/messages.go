package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"fixdesk/internal/catalog"
)

// catalogLoadedMsg replaces every entity list and the service list.
type catalogLoadedMsg struct {
	entities map[catalog.Kind][]catalog.Entity
	services []catalog.Service
	err      error
}

// entityCreatedMsg reports a picker-originated create. slot names the form
// picker whose typed value should now resolve to entity.ID.
type entityCreatedMsg struct {
	kind     catalog.Kind
	entity   catalog.Entity
	entities []catalog.Entity
	slot     pickerSlot
	typed    string
	created  bool
}

// entitiesChangedMsg carries a fresh list after a rename or delete.
type entitiesChangedMsg struct {
	kind      catalog.Kind
	entities  []catalog.Entity
	removedID string
	notice    string
}

type serviceSavedMsg struct {
	service  catalog.Service
	services []catalog.Service
	entities map[catalog.Kind][]catalog.Entity
}

type serviceDeletedMsg struct {
	id       string
	name     string
	services []catalog.Service
}

// storeErrorMsg is any failed store command. op reads as "couldn't <op>".
type storeErrorMsg struct {
	op  string
	err error
}

type toastTickMsg struct{}

func scheduleToastTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return toastTickMsg{}
	})
}
