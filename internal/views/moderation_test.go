package views

import (
	"testing"

	"github.com/rewear-app/rewear-backend/internal/catalog"
	"github.com/stretchr/testify/require"
)

func TestBuildModerationQueueBuckets(t *testing.T) {
	underReview := listing("1", "Waiting", 50, "2024-01-10", catalog.ItemStatusUnderReview)
	available := listing("2", "Live", 60, "2024-01-11", catalog.ItemStatusAvailable)
	rejected := listing("3", "Turned Away", 70, "2024-01-12", catalog.ItemStatusPending)
	swapped := listing("4", "Gone", 80, "2024-01-13", catalog.ItemStatusSwapped)

	queue := BuildModerationQueue([]catalog.Item{underReview, available, rejected, swapped}, "")

	require.Equal(t, []string{"1"}, ids(queue.Pending))
	require.Equal(t, []string{"2"}, ids(queue.Approved))
	require.Equal(t, []string{"3"}, ids(queue.Rejected))
}

func TestBuildModerationQueueSearch(t *testing.T) {
	byTitle := listing("1", "Vintage Denim", 50, "2024-01-10", catalog.ItemStatusUnderReview)
	byUploader := listing("2", "Plain Shirt", 60, "2024-01-11", catalog.ItemStatusUnderReview)
	byUploader.UploaderName = "Sarah Denim-Smith"
	byDescription := listing("3", "Plain Hat", 70, "2024-01-12", catalog.ItemStatusAvailable)
	byDescription.Description = "soft denim lining"
	noMatch := listing("4", "Boots", 80, "2024-01-13", catalog.ItemStatusAvailable)
	noMatch.Description = "leather"
	noMatch.UploaderName = "Emma"

	queue := BuildModerationQueue([]catalog.Item{byTitle, byUploader, byDescription, noMatch}, "DENIM")

	require.Equal(t, []string{"1", "2"}, ids(queue.Pending))
	require.Equal(t, []string{"3"}, ids(queue.Approved))
	require.Empty(t, queue.Rejected)
}

func TestBuildModerationStats(t *testing.T) {
	items := []catalog.Item{
		listing("1", "a", 10, "2024-01-10", catalog.ItemStatusUnderReview),
		listing("2", "b", 10, "2024-01-10", catalog.ItemStatusUnderReview),
		listing("3", "c", 10, "2024-01-10", catalog.ItemStatusAvailable),
		listing("4", "d", 10, "2024-01-10", catalog.ItemStatusPending),
		listing("5", "e", 10, "2024-01-10", catalog.ItemStatusSwapped),
	}
	requests := []catalog.SwapRequest{
		swapRequest("r1", "3", "u1", catalog.RequestStatusPending),
	}

	stats := BuildModerationStats(items, requests)

	require.Equal(t, ModerationStats{
		TotalItems:    5,
		Pending:       2,
		Approved:      1,
		Rejected:      1,
		Swapped:       1,
		TotalRequests: 1,
	}, stats)
}

func ids(items []catalog.Item) []string {
	out := []string{}
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
