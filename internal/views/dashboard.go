package views

import (
	"github.com/rewear-app/rewear-backend/internal/catalog"
)

// OutgoingRequest is a swap request made by the dashboard owner, joined with
// the listing it targets. Listing is nil when the listing was deleted after
// the request was made.
type OutgoingRequest struct {
	Request catalog.SwapRequest `json:"request"`
	Listing *catalog.Item       `json:"listing,omitempty"`
}

// IncomingRequest is a swap request someone else made against one of the
// dashboard owner's listings.
type IncomingRequest struct {
	Request catalog.SwapRequest `json:"request"`
	Listing catalog.Item        `json:"listing"`
}

// DashboardStats summarizes the dashboard owner's activity.
type DashboardStats struct {
	ListedItems     int `json:"listed_items"`
	PendingRequests int `json:"pending_requests"`
	Points          int `json:"points"`
}

// Dashboard is the per-user activity view.
type Dashboard struct {
	Items    []catalog.Item    `json:"items"`
	Outgoing []OutgoingRequest `json:"outgoing"`
	Incoming []IncomingRequest `json:"incoming"`
	Stats    DashboardStats    `json:"stats"`
}

// BuildDashboard derives the activity view for one user. Incoming requests
// are attributed through the listing's uploader, so a request whose listing
// was deleted cannot be attributed and is dropped from the incoming list.
func BuildDashboard(items []catalog.Item, requests []catalog.SwapRequest, userID string, points int) Dashboard {
	byID := make(map[string]catalog.Item, len(items))
	mine := []catalog.Item{}
	for _, item := range items {
		byID[item.ID] = item
		if item.UploaderID == userID {
			mine = append(mine, item)
		}
	}

	outgoing := []OutgoingRequest{}
	incoming := []IncomingRequest{}
	pending := 0
	for _, request := range requests {
		if request.RequesterID == userID {
			entry := OutgoingRequest{Request: request}
			if listing, ok := byID[request.ItemID]; ok {
				l := listing
				entry.Listing = &l
			}
			outgoing = append(outgoing, entry)
			if request.Status == catalog.RequestStatusPending {
				pending++
			}
			continue
		}
		if listing, ok := byID[request.ItemID]; ok && listing.UploaderID == userID {
			incoming = append(incoming, IncomingRequest{Request: request, Listing: listing})
		}
	}

	return Dashboard{
		Items:    mine,
		Outgoing: outgoing,
		Incoming: incoming,
		Stats: DashboardStats{
			ListedItems:     len(mine),
			PendingRequests: pending,
			Points:          points,
		},
	}
}
