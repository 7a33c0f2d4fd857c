package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	apperrors "fixdesk/internal/errors"
)

// storeFactories runs every behavior test against each backend.
func storeFactories(t *testing.T) map[string]func() Store {
	t.Helper()
	return map[string]func() Store{
		"memory": func() Store { return NewMemoryStore() },
		"sqlite": func() Store {
			path := filepath.Join(t.TempDir(), "catalog.db")
			s, err := OpenSQLite(context.Background(), path)
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func mustCreate(t *testing.T, s Store, kind Kind, name string) Entity {
	t.Helper()
	e, err := s.Create(context.Background(), kind, name)
	if err != nil {
		t.Fatalf("create %s %q: %v", kind, name, err)
	}
	return e
}

func TestStoreCreateAndList(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			ctx := context.Background()
			apple := mustCreate(t, s, KindBrand, "  Apple ")
			mustCreate(t, s, KindBrand, "Samsung")
			mustCreate(t, s, KindDevice, "Phone")

			if apple.ID == "" {
				t.Fatal("expected generated ID")
			}
			if apple.Name != "Apple" {
				t.Fatalf("expected trimmed name, got %q", apple.Name)
			}
			brands, err := s.List(ctx, KindBrand)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(brands) != 2 || brands[0].Name != "Apple" || brands[1].Name != "Samsung" {
				t.Fatalf("unexpected brands in creation order: %+v", brands)
			}
			if brands[0].Kind != KindBrand {
				t.Fatalf("expected kind brand, got %q", brands[0].Kind)
			}
			devices, _ := s.List(ctx, KindDevice)
			if len(devices) != 1 {
				t.Fatalf("kinds must not mix, got %d devices", len(devices))
			}
		})
	}
}

func TestStoreCreateRejects(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			ctx := context.Background()
			mustCreate(t, s, KindBrand, "Samsung")

			tests := []struct {
				name string
				kind Kind
				in   string
				code apperrors.Code
			}{
				{"blank", KindBrand, "   ", apperrors.CodeInvalidName},
				{"duplicate ignoring case", KindBrand, "samsung", apperrors.CodeDuplicateName},
				{"unknown kind", Kind("color"), "Red", apperrors.CodeInvalidName},
			}
			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					_, err := s.Create(ctx, tt.kind, tt.in)
					if !apperrors.IsCode(err, tt.code) {
						t.Fatalf("expected %s, got %v", tt.code, err)
					}
				})
			}

			// The same name under another kind is fine.
			mustCreate(t, s, KindDevice, "Samsung")
		})
	}
}

func TestStoreRename(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			ctx := context.Background()
			apple := mustCreate(t, s, KindBrand, "Aple")
			mustCreate(t, s, KindBrand, "Samsung")

			if err := s.Rename(ctx, KindBrand, apple.ID, "Apple"); err != nil {
				t.Fatalf("rename: %v", err)
			}
			brands, _ := s.List(ctx, KindBrand)
			if brands[0].Name != "Apple" {
				t.Fatalf("expected renamed brand, got %q", brands[0].Name)
			}
			if err := s.Rename(ctx, KindBrand, apple.ID, "apple"); err != nil {
				t.Fatalf("case-only rename of itself should succeed: %v", err)
			}
			if err := s.Rename(ctx, KindBrand, apple.ID, "SAMSUNG"); !apperrors.IsCode(err, apperrors.CodeDuplicateName) {
				t.Fatalf("expected duplicate_name, got %v", err)
			}
			if err := s.Rename(ctx, KindBrand, "missing", "X"); !apperrors.IsCode(err, apperrors.CodeNotFound) {
				t.Fatalf("expected not_found, got %v", err)
			}
			if err := s.Rename(ctx, KindDevice, apple.ID, "X"); !apperrors.IsCode(err, apperrors.CodeNotFound) {
				t.Fatalf("rename under wrong kind should be not_found, got %v", err)
			}
		})
	}
}

func TestStoreServicesRoundTrip(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			ctx := context.Background()
			phone := mustCreate(t, s, KindDevice, "Phone")
			apple := mustCreate(t, s, KindBrand, "Apple")
			samsung := mustCreate(t, s, KindBrand, "Samsung")
			ninety := mustCreate(t, s, KindWarranty, "90 days")

			saved, err := s.SaveService(ctx, Service{
				Name:        " Screen replacement ",
				Description: "Replace the *whole* panel.",
				DeviceID:    phone.ID,
				Items: []LineItem{
					{BrandID: apple.ID, WarrantyID: ninety.ID, PriceCents: 12950},
					{BrandID: samsung.ID, PriceCents: 9900},
				},
			})
			if err != nil {
				t.Fatalf("save: %v", err)
			}
			if saved.ID == "" || saved.Name != "Screen replacement" {
				t.Fatalf("unexpected saved service: %+v", saved)
			}
			if saved.UpdatedAt.IsZero() {
				t.Fatal("expected UpdatedAt to be stamped")
			}

			services, err := s.Services(ctx)
			if err != nil {
				t.Fatalf("services: %v", err)
			}
			if len(services) != 1 {
				t.Fatalf("expected 1 service, got %d", len(services))
			}
			got := services[0]
			if got.DeviceID != phone.ID || got.Description != "Replace the *whole* panel." {
				t.Fatalf("unexpected service: %+v", got)
			}
			if len(got.Items) != 2 {
				t.Fatalf("expected 2 items, got %+v", got.Items)
			}
			if got.Items[0].PriceCents != 12950 || got.Items[1].WarrantyID != "" {
				t.Fatalf("items not preserved in order: %+v", got.Items)
			}

			got.Items = got.Items[:1]
			got.Name = "Screen"
			if _, err := s.SaveService(ctx, got); err != nil {
				t.Fatalf("update: %v", err)
			}
			services, _ = s.Services(ctx)
			if len(services) != 1 || services[0].Name != "Screen" || len(services[0].Items) != 1 {
				t.Fatalf("update not applied: %+v", services)
			}
		})
	}
}

func TestStoreSaveServiceRejects(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			ctx := context.Background()

			if _, err := s.SaveService(ctx, Service{Name: ""}); !apperrors.IsCode(err, apperrors.CodeInvalidName) {
				t.Fatalf("expected invalid_name, got %v", err)
			}
			if _, err := s.SaveService(ctx, Service{Name: "X", DeviceID: "nope"}); !apperrors.IsCode(err, apperrors.CodeNotFound) {
				t.Fatalf("expected not_found for device, got %v", err)
			}
			_, err := s.SaveService(ctx, Service{Name: "X", Items: []LineItem{{BrandID: "nope"}}})
			if !apperrors.IsCode(err, apperrors.CodeNotFound) {
				t.Fatalf("expected not_found for brand, got %v", err)
			}
			if _, err := s.SaveService(ctx, Service{ID: "ghost", Name: "X"}); !apperrors.IsCode(err, apperrors.CodeNotFound) {
				t.Fatalf("expected not_found for unknown service, got %v", err)
			}
			services, _ := s.Services(ctx)
			if len(services) != 0 {
				t.Fatalf("rejected saves must not persist, got %+v", services)
			}
		})
	}
}

func TestStoreDeleteInUse(t *testing.T) {
	for name, open := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := open()
			ctx := context.Background()
			phone := mustCreate(t, s, KindDevice, "Phone")
			apple := mustCreate(t, s, KindBrand, "Apple")
			unused := mustCreate(t, s, KindBrand, "Unused")

			svc, err := s.SaveService(ctx, Service{Name: "Battery", DeviceID: phone.ID, Items: []LineItem{{BrandID: apple.ID}}})
			if err != nil {
				t.Fatalf("save: %v", err)
			}

			if err := s.Delete(ctx, KindBrand, apple.ID); !apperrors.IsCode(err, apperrors.CodeInUse) {
				t.Fatalf("expected in_use for brand, got %v", err)
			}
			if err := s.Delete(ctx, KindDevice, phone.ID); !apperrors.IsCode(err, apperrors.CodeInUse) {
				t.Fatalf("expected in_use for device, got %v", err)
			}
			if err := s.Delete(ctx, KindBrand, unused.ID); err != nil {
				t.Fatalf("delete unused: %v", err)
			}
			if err := s.Delete(ctx, KindBrand, unused.ID); !apperrors.IsCode(err, apperrors.CodeNotFound) {
				t.Fatalf("expected not_found on second delete, got %v", err)
			}

			if err := s.DeleteService(ctx, svc.ID); err != nil {
				t.Fatalf("delete service: %v", err)
			}
			if err := s.DeleteService(ctx, svc.ID); !apperrors.IsCode(err, apperrors.CodeNotFound) {
				t.Fatalf("expected not_found for deleted service, got %v", err)
			}
			if err := s.Delete(ctx, KindBrand, apple.ID); err != nil {
				t.Fatalf("brand should be deletable once unreferenced: %v", err)
			}
		})
	}
}

func TestEnsureEntity(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	first, created, err := EnsureEntity(ctx, s, KindWarranty, "1 year")
	if err != nil || !created {
		t.Fatalf("expected creation, got created=%v err=%v", created, err)
	}
	again, created, err := EnsureEntity(ctx, s, KindWarranty, " 1 YEAR ")
	if err != nil || created {
		t.Fatalf("expected existing match, got created=%v err=%v", created, err)
	}
	if again.ID != first.ID {
		t.Fatalf("expected same entity, got %s vs %s", again.ID, first.ID)
	}
}

func TestMemoryStoreClosed(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Close()
	if _, err := s.List(context.Background(), KindBrand); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if _, err := s.Create(context.Background(), KindBrand, "X"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestOpenSQLiteReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	mustCreate(t, s, KindBrand, "Apple")
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s.Close() }()
	if s.Path() != path {
		t.Fatalf("expected path %q, got %q", path, s.Path())
	}
	brands, err := s.List(ctx, KindBrand)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(brands) != 1 || brands[0].Name != "Apple" {
		t.Fatalf("expected persisted brand, got %+v", brands)
	}
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "  ")
	if !apperrors.IsCode(err, apperrors.CodeConfigurationError) {
		t.Fatalf("expected configuration_error, got %v", err)
	}
}
