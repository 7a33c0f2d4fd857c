package ui

import "strings"

// Option is one selectable entry offered by the owner of a ComboBox.
type Option struct {
	ID   string
	Name string
}

// FilterOptions returns the options whose name contains query, compared
// case-insensitively. Relative order is preserved; no ranking is applied.
// An empty query yields the full set.
func FilterOptions(options []Option, query string) []Option {
	if query == "" {
		return options
	}
	needle := strings.ToLower(query)
	filtered := make([]Option, 0, len(options))
	for _, opt := range options {
		if strings.Contains(strings.ToLower(opt.Name), needle) {
			filtered = append(filtered, opt)
		}
	}
	return filtered
}

func findOptionByID(options []Option, id string) (Option, bool) {
	if id == "" {
		return Option{}, false
	}
	for _, opt := range options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

// findOptionByName matches names case-insensitively.
func findOptionByName(options []Option, name string) (Option, bool) {
	for _, opt := range options {
		if strings.EqualFold(opt.Name, name) {
			return opt, true
		}
	}
	return Option{}, false
}
