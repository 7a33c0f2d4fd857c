package catalog

import (
	"context"
	"errors"
	"strings"
)

// ErrClosed is returned by stores after Close.
var ErrClosed = errors.New("catalog: store closed")

// Reader loads catalog data.
type Reader interface {
	// List returns the entities of kind in creation order.
	List(ctx context.Context, kind Kind) ([]Entity, error)
	// Services returns every service in creation order, items included.
	Services(ctx context.Context) ([]Service, error)
}

// Writer mutates catalog data. Entity names are unique per kind ignoring
// case; deleting an entity a service still references fails with in_use.
type Writer interface {
	Create(ctx context.Context, kind Kind, name string) (Entity, error)
	Rename(ctx context.Context, kind Kind, id, name string) error
	Delete(ctx context.Context, kind Kind, id string) error
	// SaveService inserts (empty ID) or replaces a service.
	SaveService(ctx context.Context, svc Service) (Service, error)
	DeleteService(ctx context.Context, id string) error
}

// Store is the full catalog backend.
type Store interface {
	Reader
	Writer
	Close() error
}

// FindByName returns the entity of kind whose name matches ignoring case.
func FindByName(ctx context.Context, r Reader, kind Kind, name string) (Entity, bool, error) {
	entities, err := r.List(ctx, kind)
	if err != nil {
		return Entity{}, false, err
	}
	for _, e := range entities {
		if equalFoldTrim(e.Name, name) {
			return e, true, nil
		}
	}
	return Entity{}, false, nil
}

// EnsureEntity returns the entity named name, creating it when missing.
func EnsureEntity(ctx context.Context, s Store, kind Kind, name string) (Entity, bool, error) {
	existing, ok, err := FindByName(ctx, s, kind, name)
	if err != nil {
		return Entity{}, false, err
	}
	if ok {
		return existing, false, nil
	}
	created, err := s.Create(ctx, kind, name)
	if err != nil {
		return Entity{}, false, err
	}
	return created, true, nil
}

// CountReferences counts the services referencing id as the given kind.
func CountReferences(services []Service, kind Kind, id string) int {
	n := 0
	for _, svc := range services {
		if svc.references(kind, id) {
			n++
		}
	}
	return n
}

func (s Service) references(kind Kind, id string) bool {
	switch kind {
	case KindDevice:
		return s.DeviceID == id
	case KindBrand:
		for _, item := range s.Items {
			if item.BrandID == id {
				return true
			}
		}
	case KindWarranty:
		for _, item := range s.Items {
			if item.WarrantyID == id {
				return true
			}
		}
	}
	return false
}

func equalFoldTrim(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
