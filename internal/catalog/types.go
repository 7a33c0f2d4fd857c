// Package catalog stores the repair-service catalog: the devices, brands and
// warranties that pickers offer, and the services priced against them.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "fixdesk/internal/errors"
)

// Kind names one of the named-entity tables.
type Kind string

const (
	KindDevice   Kind = "device"
	KindBrand    Kind = "brand"
	KindWarranty Kind = "warranty"
)

// Kinds lists every entity kind in display order.
var Kinds = []Kind{KindDevice, KindBrand, KindWarranty}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case KindDevice, KindBrand, KindWarranty:
		return true
	}
	return false
}

// Label is the capitalized kind, used in messages.
func (k Kind) Label() string {
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Entity is a named catalog row: a device, brand or warranty.
type Entity struct {
	ID        string
	Kind      Kind
	Name      string
	CreatedAt time.Time
}

// LineItem prices a service for one brand/warranty combination.
type LineItem struct {
	BrandID    string
	WarrantyID string
	PriceCents int64
}

// Service is a repair offering for a device.
type Service struct {
	ID          string
	Name        string
	Description string // Markdown
	DeviceID    string
	Items       []LineItem
	UpdatedAt   time.Time
}

// FormatPrice renders cents as a dollar amount, e.g. 12950 -> "$129.50".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// ParsePrice accepts "129", "129.5", "129.50" or "$129.50".
func ParsePrice(s string) (int64, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "$")
	if trimmed == "" {
		return 0, nil
	}
	whole, frac, hasFrac := strings.Cut(trimmed, ".")
	if whole == "" {
		whole = "0"
	}
	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || dollars < 0 {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	var cents int64
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("invalid price %q", s)
		}
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil || cents < 0 {
			return 0, fmt.Errorf("invalid price %q", s)
		}
	}
	return dollars*100 + cents, nil
}

// normalizeName trims the name and rejects blanks.
func normalizeName(kind Kind, name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", apperrors.New(apperrors.CodeInvalidName, fmt.Sprintf("%s name is required", kind), nil)
	}
	return trimmed, nil
}

func checkKind(kind Kind) error {
	if !kind.Valid() {
		return apperrors.New(apperrors.CodeInvalidName, fmt.Sprintf("unknown catalog kind %q", kind), nil)
	}
	return nil
}

func notFound(what, id string) error {
	return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("%s %s not found", what, id), nil)
}

func duplicateName(kind Kind, name string) error {
	return apperrors.New(apperrors.CodeDuplicateName, fmt.Sprintf("%s %q already exists", kind, name), nil)
}

func inUse(kind Kind, name string, services int) error {
	return apperrors.New(apperrors.CodeInUse, fmt.Sprintf("%s %q is used by %d service(s)", kind, name, services), nil)
}
