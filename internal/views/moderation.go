package views

import (
	"strings"

	"github.com/rewear-app/rewear-backend/internal/catalog"
)

// ModerationQueue buckets listings by moderation outcome. The buckets mirror
// the admin UI: pending holds listings still under review, approved holds the
// browsable pool and rejected holds listings turned away by moderation.
type ModerationQueue struct {
	Pending  []catalog.Item `json:"pending"`
	Approved []catalog.Item `json:"approved"`
	Rejected []catalog.Item `json:"rejected"`
}

// ModerationStats counts listings per bucket plus overall volume.
type ModerationStats struct {
	TotalItems    int `json:"total_items"`
	Pending       int `json:"pending"`
	Approved      int `json:"approved"`
	Rejected      int `json:"rejected"`
	Swapped       int `json:"swapped"`
	TotalRequests int `json:"total_requests"`
}

// BuildModerationQueue buckets listings for the admin view, optionally
// narrowed by a case-insensitive search over title, uploader name and
// description.
func BuildModerationQueue(items []catalog.Item, search string) ModerationQueue {
	queue := ModerationQueue{
		Pending:  []catalog.Item{},
		Approved: []catalog.Item{},
		Rejected: []catalog.Item{},
	}
	needle := strings.ToLower(strings.TrimSpace(search))
	for _, item := range items {
		if needle != "" && !matchesAdminSearch(item, needle) {
			continue
		}
		switch item.Status {
		case catalog.ItemStatusUnderReview:
			queue.Pending = append(queue.Pending, item)
		case catalog.ItemStatusAvailable:
			queue.Approved = append(queue.Approved, item)
		case catalog.ItemStatusPending:
			queue.Rejected = append(queue.Rejected, item)
		}
	}
	return queue
}

func matchesAdminSearch(item catalog.Item, needle string) bool {
	return strings.Contains(strings.ToLower(item.Title), needle) ||
		strings.Contains(strings.ToLower(item.UploaderName), needle) ||
		strings.Contains(strings.ToLower(item.Description), needle)
}

// BuildModerationStats counts the full collections; search does not apply.
func BuildModerationStats(items []catalog.Item, requests []catalog.SwapRequest) ModerationStats {
	stats := ModerationStats{
		TotalItems:    len(items),
		TotalRequests: len(requests),
	}
	for _, item := range items {
		switch item.Status {
		case catalog.ItemStatusUnderReview:
			stats.Pending++
		case catalog.ItemStatusAvailable:
			stats.Approved++
		case catalog.ItemStatusPending:
			stats.Rejected++
		case catalog.ItemStatusSwapped:
			stats.Swapped++
		}
	}
	return stats
}
