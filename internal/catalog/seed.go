package catalog

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"fixdesk/internal/debug"
	apperrors "fixdesk/internal/errors"
)

// SeedFile is the YAML layout accepted by Seed. Services reference devices,
// brands and warranties by name; missing names are created.
type SeedFile struct {
	Devices    []string      `yaml:"devices"`
	Brands     []string      `yaml:"brands"`
	Warranties []string      `yaml:"warranties"`
	Services   []SeedService `yaml:"services"`
}

// SeedService is one service entry in a seed file.
type SeedService struct {
	Name        string         `yaml:"name"`
	Device      string         `yaml:"device"`
	Description string         `yaml:"description"`
	Items       []SeedLineItem `yaml:"items"`
}

// SeedLineItem prices a seed service. Price accepts anything ParsePrice does.
type SeedLineItem struct {
	Brand    string `yaml:"brand"`
	Warranty string `yaml:"warranty"`
	Price    string `yaml:"price"`
}

// SeedReport summarizes what Seed changed.
type SeedReport struct {
	Created         map[Kind]int
	ServicesAdded   int
	ServicesUpdated int
}

func (r SeedReport) String() string {
	return fmt.Sprintf("%d devices, %d brands, %d warranties created; %d services added, %d updated",
		r.Created[KindDevice], r.Created[KindBrand], r.Created[KindWarranty],
		r.ServicesAdded, r.ServicesUpdated)
}

// Seed loads a YAML catalog into s. Existing entities are matched by name
// ignoring case; a service with the same name as an existing one replaces it.
func Seed(ctx context.Context, s Store, r io.Reader) (SeedReport, error) {
	report := SeedReport{Created: make(map[Kind]int)}

	var file SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return report, apperrors.New(apperrors.CodeSeedFailed, fmt.Sprintf("parse seed file: %v", err), err)
	}

	ensure := func(kind Kind, name string) (string, error) {
		if strings.TrimSpace(name) == "" {
			return "", nil
		}
		e, created, err := EnsureEntity(ctx, s, kind, name)
		if err != nil {
			return "", err
		}
		if created {
			report.Created[kind]++
		}
		return e.ID, nil
	}

	lists := []struct {
		kind  Kind
		names []string
	}{
		{KindDevice, file.Devices},
		{KindBrand, file.Brands},
		{KindWarranty, file.Warranties},
	}
	for _, l := range lists {
		for _, name := range l.names {
			if _, err := ensure(l.kind, name); err != nil {
				return report, seedErr(fmt.Sprintf("%s %q", l.kind, name), err)
			}
		}
	}

	existing, err := s.Services(ctx)
	if err != nil {
		return report, seedErr("load services", err)
	}

	for _, entry := range file.Services {
		svc := Service{Name: entry.Name, Description: entry.Description}
		if svc.DeviceID, err = ensure(KindDevice, entry.Device); err != nil {
			return report, seedErr(fmt.Sprintf("service %q device", entry.Name), err)
		}
		for i, item := range entry.Items {
			var li LineItem
			if li.BrandID, err = ensure(KindBrand, item.Brand); err != nil {
				return report, seedErr(fmt.Sprintf("service %q item %d brand", entry.Name, i+1), err)
			}
			if li.WarrantyID, err = ensure(KindWarranty, item.Warranty); err != nil {
				return report, seedErr(fmt.Sprintf("service %q item %d warranty", entry.Name, i+1), err)
			}
			if li.PriceCents, err = ParsePrice(item.Price); err != nil {
				return report, seedErr(fmt.Sprintf("service %q item %d", entry.Name, i+1), err)
			}
			svc.Items = append(svc.Items, li)
		}

		for _, prior := range existing {
			if equalFoldTrim(prior.Name, entry.Name) {
				svc.ID = prior.ID
				break
			}
		}
		saved, err := s.SaveService(ctx, svc)
		if err != nil {
			return report, seedErr(fmt.Sprintf("service %q", entry.Name), err)
		}
		if svc.ID == "" {
			report.ServicesAdded++
			existing = append(existing, saved)
		} else {
			report.ServicesUpdated++
		}
	}

	debug.Info("catalog seeded",
		zap.Int("devices", report.Created[KindDevice]),
		zap.Int("brands", report.Created[KindBrand]),
		zap.Int("warranties", report.Created[KindWarranty]),
		zap.Int("services_added", report.ServicesAdded),
		zap.Int("services_updated", report.ServicesUpdated))
	return report, nil
}

func seedErr(what string, err error) error {
	return apperrors.New(apperrors.CodeSeedFailed, fmt.Sprintf("seed %s: %v", what, err), err)
}
