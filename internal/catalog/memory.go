package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps the catalog in process memory. Used by tests and the
// --memory flag.
type MemoryStore struct {
	mu       sync.RWMutex
	entities map[Kind][]Entity
	services []Service
	closed   bool
	now      func() time.Time
}

// NewMemoryStore returns an empty in-memory catalog.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entities: make(map[Kind][]Entity),
		now:      time.Now,
	}
}

func (m *MemoryStore) List(_ context.Context, kind Kind) ([]Entity, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	out := make([]Entity, len(m.entities[kind]))
	copy(out, m.entities[kind])
	return out, nil
}

func (m *MemoryStore) Services(context.Context) ([]Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrClosed
	}
	out := make([]Service, len(m.services))
	for i, svc := range m.services {
		out[i] = cloneService(svc)
	}
	return out, nil
}

func (m *MemoryStore) Create(_ context.Context, kind Kind, name string) (Entity, error) {
	if err := checkKind(kind); err != nil {
		return Entity{}, err
	}
	trimmed, err := normalizeName(kind, name)
	if err != nil {
		return Entity{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return Entity{}, ErrClosed
	}
	if m.nameTaken(kind, trimmed, "") {
		return Entity{}, duplicateName(kind, trimmed)
	}
	e := Entity{ID: uuid.NewString(), Kind: kind, Name: trimmed, CreatedAt: m.now().UTC()}
	m.entities[kind] = append(m.entities[kind], e)
	return e, nil
}

func (m *MemoryStore) Rename(_ context.Context, kind Kind, id, name string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	trimmed, err := normalizeName(kind, name)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	idx := m.indexOf(kind, id)
	if idx < 0 {
		return notFound(string(kind), id)
	}
	if m.nameTaken(kind, trimmed, id) {
		return duplicateName(kind, trimmed)
	}
	m.entities[kind][idx].Name = trimmed
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, kind Kind, id string) error {
	if err := checkKind(kind); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	idx := m.indexOf(kind, id)
	if idx < 0 {
		return notFound(string(kind), id)
	}
	if n := CountReferences(m.services, kind, id); n > 0 {
		return inUse(kind, m.entities[kind][idx].Name, n)
	}
	list := m.entities[kind]
	m.entities[kind] = append(list[:idx:idx], list[idx+1:]...)
	return nil
}

func (m *MemoryStore) SaveService(_ context.Context, svc Service) (Service, error) {
	trimmed, err := normalizeName("service", svc.Name)
	if err != nil {
		return Service{}, err
	}
	svc.Name = trimmed
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return Service{}, ErrClosed
	}
	if err := m.checkRefs(svc); err != nil {
		return Service{}, err
	}
	svc = cloneService(svc)
	svc.UpdatedAt = m.now().UTC()
	if svc.ID == "" {
		svc.ID = uuid.NewString()
		m.services = append(m.services, svc)
		return cloneService(svc), nil
	}
	for i := range m.services {
		if m.services[i].ID == svc.ID {
			m.services[i] = svc
			return cloneService(svc), nil
		}
	}
	return Service{}, notFound("service", svc.ID)
}

func (m *MemoryStore) DeleteService(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	for i := range m.services {
		if m.services[i].ID == id {
			m.services = append(m.services[:i:i], m.services[i+1:]...)
			return nil
		}
	}
	return notFound("service", id)
}

// Close marks the store closed. Later calls fail with ErrClosed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MemoryStore) indexOf(kind Kind, id string) int {
	for i, e := range m.entities[kind] {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func (m *MemoryStore) nameTaken(kind Kind, name, exceptID string) bool {
	for _, e := range m.entities[kind] {
		if e.ID != exceptID && equalFoldTrim(e.Name, name) {
			return true
		}
	}
	return false
}

func (m *MemoryStore) checkRefs(svc Service) error {
	if svc.DeviceID != "" && m.indexOf(KindDevice, svc.DeviceID) < 0 {
		return notFound("device", svc.DeviceID)
	}
	for i, item := range svc.Items {
		if item.BrandID != "" && m.indexOf(KindBrand, item.BrandID) < 0 {
			return fmt.Errorf("line item %d: %w", i+1, notFound("brand", item.BrandID))
		}
		if item.WarrantyID != "" && m.indexOf(KindWarranty, item.WarrantyID) < 0 {
			return fmt.Errorf("line item %d: %w", i+1, notFound("warranty", item.WarrantyID))
		}
	}
	return nil
}

func cloneService(svc Service) Service {
	if svc.Items != nil {
		items := make([]LineItem, len(svc.Items))
		copy(items, svc.Items)
		svc.Items = items
	}
	return svc
}
