package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"fixdesk/internal/catalog"
	"fixdesk/internal/debug"
)

// storeTimeout bounds each store command.
const storeTimeout = 5 * time.Second

// loadCatalog reads every entity list and the services.
func loadCatalog(ctx context.Context, store catalog.Reader) (map[catalog.Kind][]catalog.Entity, []catalog.Service, error) {
	entities := make(map[catalog.Kind][]catalog.Entity, len(catalog.Kinds))
	for _, kind := range catalog.Kinds {
		list, err := store.List(ctx, kind)
		if err != nil {
			return nil, nil, err
		}
		entities[kind] = list
	}
	services, err := store.Services(ctx)
	if err != nil {
		return nil, nil, err
	}
	return entities, services, nil
}

func reloadCatalogCmd(store catalog.Store) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		entities, services, err := loadCatalog(ctx, store)
		return catalogLoadedMsg{entities: entities, services: services, err: err}
	}
}

func createEntityCmd(store catalog.Store, kind catalog.Kind, name string, slot pickerSlot) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		entity, created, err := catalog.EnsureEntity(ctx, store, kind, name)
		if err != nil {
			return storeErrorMsg{op: fmt.Sprintf("create %s %q", kind, name), err: err}
		}
		list, err := store.List(ctx, kind)
		if err != nil {
			return storeErrorMsg{op: "reload " + string(kind) + "s", err: err}
		}
		debug.Info("picker value created", zap.String("kind", string(kind)), zap.String("id", entity.ID), zap.Bool("new", created))
		return entityCreatedMsg{kind: kind, entity: entity, entities: list, slot: slot, typed: name, created: created}
	}
}

func renameEntityCmd(store catalog.Store, kind catalog.Kind, id, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := store.Rename(ctx, kind, id, name); err != nil {
			return storeErrorMsg{op: "rename " + string(kind), err: err}
		}
		list, err := store.List(ctx, kind)
		if err != nil {
			return storeErrorMsg{op: "reload " + string(kind) + "s", err: err}
		}
		return entitiesChangedMsg{kind: kind, entities: list, notice: fmt.Sprintf("%s renamed to %q", kind.Label(), name)}
	}
}

func deleteEntityCmd(store catalog.Store, kind catalog.Kind, id, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := store.Delete(ctx, kind, id); err != nil {
			return storeErrorMsg{op: fmt.Sprintf("delete %s %q", kind, name), err: err}
		}
		list, err := store.List(ctx, kind)
		if err != nil {
			return storeErrorMsg{op: "reload " + string(kind) + "s", err: err}
		}
		return entitiesChangedMsg{kind: kind, entities: list, removedID: id, notice: fmt.Sprintf("%s %q deleted", kind.Label(), name)}
	}
}

// saveServiceCmd resolves free-text picker values to entities (creating them
// as needed) and saves the service.
func saveServiceCmd(store catalog.Store, draft serviceDraft) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		svc := draft.service
		item := catalog.LineItem{PriceCents: draft.priceCents}
		var err error
		if item.BrandID, err = resolveEntityValue(ctx, store, catalog.KindBrand, draft.brand); err != nil {
			return storeErrorMsg{op: "save brand", err: err}
		}
		if item.WarrantyID, err = resolveEntityValue(ctx, store, catalog.KindWarranty, draft.warranty); err != nil {
			return storeErrorMsg{op: "save warranty", err: err}
		}
		svc.DeviceID = draft.device
		if item != (catalog.LineItem{}) {
			if len(svc.Items) == 0 {
				svc.Items = []catalog.LineItem{item}
			} else {
				svc.Items = append([]catalog.LineItem{item}, svc.Items[1:]...)
			}
		} else if len(svc.Items) > 0 {
			svc.Items = svc.Items[1:]
		}

		saved, err := store.SaveService(ctx, svc)
		if err != nil {
			return storeErrorMsg{op: "save service", err: err}
		}
		entities, services, err := loadCatalog(ctx, store)
		if err != nil {
			return storeErrorMsg{op: "reload catalog", err: err}
		}
		return serviceSavedMsg{service: saved, services: services, entities: entities}
	}
}

func deleteServiceCmd(store catalog.Store, id, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := store.DeleteService(ctx, id); err != nil {
			return storeErrorMsg{op: fmt.Sprintf("delete service %q", name), err: err}
		}
		services, err := store.Services(ctx)
		if err != nil {
			return storeErrorMsg{op: "reload services", err: err}
		}
		return serviceDeletedMsg{id: id, name: name, services: services}
	}
}

// resolveEntityValue maps a picker value to an entity ID. Values that are
// not IDs of kind are names; they are matched or created.
func resolveEntityValue(ctx context.Context, store catalog.Store, kind catalog.Kind, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	list, err := store.List(ctx, kind)
	if err != nil {
		return "", err
	}
	if hasEntityID(list, value) {
		return value, nil
	}
	entity, _, err := catalog.EnsureEntity(ctx, store, kind, value)
	if err != nil {
		return "", err
	}
	return entity.ID, nil
}
