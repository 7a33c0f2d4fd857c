package catalog

import (
	"context"
	"errors"
	"sync"
)

// ErrMockNotImplemented is returned when a MockStore method has no override
// and no backing store.
var ErrMockNotImplemented = errors.New("catalog.MockStore: method not implemented")

// MockStore is a test double for Store. Each method calls its Fn override
// when set, otherwise the Backing store, otherwise returns
// ErrMockNotImplemented.
type MockStore struct {
	ListFn          func(context.Context, Kind) ([]Entity, error)
	ServicesFn      func(context.Context) ([]Service, error)
	CreateFn        func(context.Context, Kind, string) (Entity, error)
	RenameFn        func(context.Context, Kind, string, string) error
	DeleteFn        func(context.Context, Kind, string) error
	SaveServiceFn   func(context.Context, Service) (Service, error)
	DeleteServiceFn func(context.Context, string) error

	// Backing serves calls without an override.
	Backing Store

	mu                     sync.Mutex
	ListCallCount          int
	ServicesCallCount      int
	CreateCallCount        int
	RenameCallCount        int
	DeleteCallCount        int
	SaveServiceCallCount   int
	DeleteServiceCallCount int
	CloseCallCount         int
	CreateCallArgs         []EntityCallArg
	RenameCallArgs         []EntityCallArg
	DeleteCallArgs         []EntityCallArg
	SaveServiceCallArgs    []Service
	DeleteServiceCallArgs  []string
}

// EntityCallArg captures arguments passed to Create, Rename and Delete.
type EntityCallArg struct {
	Kind Kind
	ID   string
	Name string
}

// NewMockStore returns a MockStore backed by an empty MemoryStore.
func NewMockStore() *MockStore {
	return &MockStore{Backing: NewMemoryStore()}
}

func (m *MockStore) List(ctx context.Context, kind Kind) ([]Entity, error) {
	m.mu.Lock()
	m.ListCallCount++
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx, kind)
	}
	if m.Backing == nil {
		return nil, ErrMockNotImplemented
	}
	return m.Backing.List(ctx, kind)
}

func (m *MockStore) Services(ctx context.Context) ([]Service, error) {
	m.mu.Lock()
	m.ServicesCallCount++
	m.mu.Unlock()

	if m.ServicesFn != nil {
		return m.ServicesFn(ctx)
	}
	if m.Backing == nil {
		return nil, ErrMockNotImplemented
	}
	return m.Backing.Services(ctx)
}

func (m *MockStore) Create(ctx context.Context, kind Kind, name string) (Entity, error) {
	m.mu.Lock()
	m.CreateCallCount++
	m.CreateCallArgs = append(m.CreateCallArgs, EntityCallArg{Kind: kind, Name: name})
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, kind, name)
	}
	if m.Backing == nil {
		return Entity{}, ErrMockNotImplemented
	}
	return m.Backing.Create(ctx, kind, name)
}

func (m *MockStore) Rename(ctx context.Context, kind Kind, id, name string) error {
	m.mu.Lock()
	m.RenameCallCount++
	m.RenameCallArgs = append(m.RenameCallArgs, EntityCallArg{Kind: kind, ID: id, Name: name})
	m.mu.Unlock()

	if m.RenameFn != nil {
		return m.RenameFn(ctx, kind, id, name)
	}
	if m.Backing == nil {
		return ErrMockNotImplemented
	}
	return m.Backing.Rename(ctx, kind, id, name)
}

func (m *MockStore) Delete(ctx context.Context, kind Kind, id string) error {
	m.mu.Lock()
	m.DeleteCallCount++
	m.DeleteCallArgs = append(m.DeleteCallArgs, EntityCallArg{Kind: kind, ID: id})
	m.mu.Unlock()

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, kind, id)
	}
	if m.Backing == nil {
		return ErrMockNotImplemented
	}
	return m.Backing.Delete(ctx, kind, id)
}

func (m *MockStore) SaveService(ctx context.Context, svc Service) (Service, error) {
	m.mu.Lock()
	m.SaveServiceCallCount++
	m.SaveServiceCallArgs = append(m.SaveServiceCallArgs, cloneService(svc))
	m.mu.Unlock()

	if m.SaveServiceFn != nil {
		return m.SaveServiceFn(ctx, svc)
	}
	if m.Backing == nil {
		return Service{}, ErrMockNotImplemented
	}
	return m.Backing.SaveService(ctx, svc)
}

func (m *MockStore) DeleteService(ctx context.Context, id string) error {
	m.mu.Lock()
	m.DeleteServiceCallCount++
	m.DeleteServiceCallArgs = append(m.DeleteServiceCallArgs, id)
	m.mu.Unlock()

	if m.DeleteServiceFn != nil {
		return m.DeleteServiceFn(ctx, id)
	}
	if m.Backing == nil {
		return ErrMockNotImplemented
	}
	return m.Backing.DeleteService(ctx, id)
}

// Close closes the backing store if any.
func (m *MockStore) Close() error {
	m.mu.Lock()
	m.CloseCallCount++
	m.mu.Unlock()

	if m.Backing == nil {
		return nil
	}
	return m.Backing.Close()
}

var _ Store = (*MockStore)(nil)
