package views

import (
	"slices"
	"strings"

	"github.com/rewear-app/rewear-backend/internal/catalog"
)

// Sort orders accepted by the browse view. Anything else falls back to newest.
const (
	SortNewest       = "newest"
	SortOldest       = "oldest"
	SortPointsLow    = "points-low"
	SortPointsHigh   = "points-high"
	SortAlphabetical = "alphabetical"
)

// BrowseQuery narrows the public browse view. Search matches case-insensitive
// substrings; the facet fields match exactly.
type BrowseQuery struct {
	Search    string
	Category  string
	Size      string
	Condition string
	Sort      string
}

// Facets lists the distinct filter options present in the browsable pool.
type Facets struct {
	Categories []string `json:"categories"`
	Sizes      []string `json:"sizes"`
	Conditions []string `json:"conditions"`
}

// Browse returns the available listings matching the query, ordered by the
// requested sort. Only available listings are ever visible here, whatever the
// filters say.
func Browse(items []catalog.Item, query BrowseQuery) []catalog.Item {
	matched := make([]catalog.Item, 0, len(items))
	needle := strings.ToLower(strings.TrimSpace(query.Search))
	for _, item := range items {
		if item.Status != catalog.ItemStatusAvailable {
			continue
		}
		if query.Category != "" && item.Category != query.Category {
			continue
		}
		if query.Size != "" && item.Size != query.Size {
			continue
		}
		if query.Condition != "" && item.Condition != query.Condition {
			continue
		}
		if needle != "" && !matchesSearch(item, needle) {
			continue
		}
		matched = append(matched, item)
	}
	sortItems(matched, query.Sort)
	return matched
}

func matchesSearch(item catalog.Item, needle string) bool {
	if strings.Contains(strings.ToLower(item.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Description), needle) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// sortItems orders in place. All comparators are stable, so listings that
// compare equal keep their insertion order.
func sortItems(items []catalog.Item, order string) {
	switch order {
	case SortOldest:
		slices.SortStableFunc(items, func(a, b catalog.Item) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case SortPointsLow:
		slices.SortStableFunc(items, func(a, b catalog.Item) int {
			return a.Points - b.Points
		})
	case SortPointsHigh:
		slices.SortStableFunc(items, func(a, b catalog.Item) int {
			return b.Points - a.Points
		})
	case SortAlphabetical:
		slices.SortStableFunc(items, func(a, b catalog.Item) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		})
	default:
		slices.SortStableFunc(items, func(a, b catalog.Item) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}

// FacetOptions extracts the distinct category, size and condition values from
// the available listings, each list sorted alphabetically.
func FacetOptions(items []catalog.Item) Facets {
	categories := map[string]struct{}{}
	sizes := map[string]struct{}{}
	conditions := map[string]struct{}{}
	for _, item := range items {
		if item.Status != catalog.ItemStatusAvailable {
			continue
		}
		if item.Category != "" {
			categories[item.Category] = struct{}{}
		}
		if item.Size != "" {
			sizes[item.Size] = struct{}{}
		}
		if item.Condition != "" {
			conditions[item.Condition] = struct{}{}
		}
	}
	return Facets{
		Categories: sortedKeys(categories),
		Sizes:      sortedKeys(sizes),
		Conditions: sortedKeys(conditions),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
