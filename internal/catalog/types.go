package catalog

import (
	"fmt"
	"time"
)

// ItemStatus tracks an item through moderation and exchange.
type ItemStatus string

const (
	// ItemStatusUnderReview is the forced initial status of every listing.
	ItemStatusUnderReview ItemStatus = "under_review"
	// ItemStatusAvailable means the listing passed moderation and is browsable.
	ItemStatusAvailable ItemStatus = "available"
	// ItemStatusPending means the listing was rejected by moderation.
	ItemStatusPending ItemStatus = "pending"
	// ItemStatusSwapped means the listing was exchanged through an approved swap.
	ItemStatusSwapped ItemStatus = "swapped"
)

func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusUnderReview, ItemStatusAvailable, ItemStatusPending, ItemStatusSwapped:
		return true
	}
	return false
}

// ParseItemStatus converts the wire value into a typed status.
func ParseItemStatus(value string) (ItemStatus, error) {
	status := ItemStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("unknown item status %q", value)
	}
	return status, nil
}

// RequestStatus tracks a swap request's lifecycle.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusDeclined  RequestStatus = "declined"
	RequestStatusCompleted RequestStatus = "completed"
)

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusDeclined, RequestStatusCompleted:
		return true
	}
	return false
}

// Item is a listed clothing object. UploaderName and UploaderAvatar are
// denormalized snapshots taken at creation time; they are never resynchronized
// with later identity changes.
type Item struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Type           string     `json:"type"`
	Size           string     `json:"size"`
	Condition      string     `json:"condition"`
	Tags           []string   `json:"tags"`
	Images         []string   `json:"images"`
	UploaderID     string     `json:"uploader_id"`
	UploaderName   string     `json:"uploader_name"`
	UploaderAvatar string     `json:"uploader_avatar,omitempty"`
	Status         ItemStatus `json:"status"`
	Points         int        `json:"points"`
	CreatedAt      time.Time  `json:"created_at"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
}

// MainImage returns the first image reference, which the UI treats as primary.
func (i Item) MainImage() string {
	if len(i.Images) == 0 {
		return ""
	}
	return i.Images[0]
}

// SwapRequest is a proposal by one user to exchange for another user's item.
// RequesterName is a denormalized snapshot, like Item.UploaderName.
type SwapRequest struct {
	ID            string        `json:"id"`
	ItemID        string        `json:"item_id"`
	RequesterID   string        `json:"requester_id"`
	RequesterName string        `json:"requester_name"`
	Status        RequestStatus `json:"status"`
	Message       string        `json:"message,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
}

// NewItemInput carries the caller-supplied fields for a listing. Status is
// deliberately absent: creation always starts a listing in moderation.
type NewItemInput struct {
	Title          string
	Description    string
	Category       string
	Type           string
	Size           string
	Condition      string
	Tags           []string
	Images         []string
	UploaderID     string
	UploaderName   string
	UploaderAvatar string
	Points         int
}

// SwapApproval reports the outcome of approving a swap request. Item is nil
// when the referenced listing was deleted before approval.
type SwapApproval struct {
	Request SwapRequest `json:"request"`
	Item    *Item       `json:"item,omitempty"`
}
