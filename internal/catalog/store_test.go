package catalog

import (
	"fmt"
	"testing"
	"time"

	pkgerrors "github.com/rewear-app/rewear-backend/pkg/errors"
)

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time {
	c.current = c.current.Add(time.Second)
	return c.current
}

func newTestStore() (*Store, *fakeClock) {
	clock := &fakeClock{current: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	seq := 0
	store := NewStore(
		WithClock(clock.Now),
		WithIDFunc(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
	return store, clock
}

func newListing(title string, points int) NewItemInput {
	return NewItemInput{
		Title:        title,
		Description:  "a " + title,
		Category:     "Outerwear",
		Type:         "Jacket",
		Size:         "M",
		Condition:    "Good",
		Tags:         []string{"casual"},
		Images:       []string{"https://example.com/img.jpeg"},
		UploaderID:   "u1",
		UploaderName: "Sarah Johnson",
		Points:       points,
	}
}

func TestAddItemForcesUnderReview(t *testing.T) {
	store, _ := newTestStore()

	item := store.AddItem(newListing("Vintage Denim Jacket", 75))

	if item.Status != ItemStatusUnderReview {
		t.Fatalf("expected under_review, got %s", item.Status)
	}
	if item.ID == "" || item.CreatedAt.IsZero() {
		t.Fatalf("expected id and created_at to be assigned: %+v", item)
	}
	if item.ApprovedAt != nil {
		t.Fatalf("new listing must not carry an approval timestamp")
	}
}

func TestApproveItemStampsApproval(t *testing.T) {
	store, _ := newTestStore()
	created := store.AddItem(newListing("Vintage Denim Jacket", 75))

	approved, err := store.ApproveItem(created.ID)
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if approved.Status != ItemStatusAvailable {
		t.Fatalf("expected available, got %s", approved.Status)
	}
	if approved.ApprovedAt == nil || approved.ApprovedAt.Before(approved.CreatedAt) {
		t.Fatalf("expected approval timestamp at or after creation, got %v", approved.ApprovedAt)
	}

	// Approving again is harmless and restamps the approval time.
	again, err := store.ApproveItem(created.ID)
	if err != nil {
		t.Fatalf("repeat approve: %v", err)
	}
	if !again.ApprovedAt.After(*approved.ApprovedAt) {
		t.Fatalf("expected approval timestamp to move forward")
	}
}

func TestRejectIsTerminal(t *testing.T) {
	store, _ := newTestStore()
	created := store.AddItem(newListing("Floral Summer Dress", 60))

	rejected, err := store.RejectItem(created.ID)
	if err != nil {
		t.Fatalf("reject: %v", err)
	}
	if rejected.Status != ItemStatusPending {
		t.Fatalf("expected pending, got %s", rejected.Status)
	}

	if _, err := store.ApproveItem(created.ID); !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict approving a rejected listing, got %v", err)
	}
}

func TestUpdateItemStatusEnforcesTransitions(t *testing.T) {
	store, _ := newTestStore()
	created := store.AddItem(newListing("Leather Boots", 90))

	if _, err := store.UpdateItemStatus(created.ID, ItemStatusSwapped); !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("under_review -> swapped must be rejected, got %v", err)
	}

	if _, err := store.UpdateItemStatus(created.ID, ItemStatusAvailable); err != nil {
		t.Fatalf("approve via update: %v", err)
	}
	if _, err := store.UpdateItemStatus(created.ID, ItemStatusSwapped); err != nil {
		t.Fatalf("available -> swapped: %v", err)
	}
	if _, err := store.UpdateItemStatus(created.ID, ItemStatusAvailable); !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("swapped is terminal, got %v", err)
	}

	if _, err := store.UpdateItemStatus("missing", ItemStatusAvailable); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}
}

func TestDeleteItemRemovesExactlyOne(t *testing.T) {
	store, _ := newTestStore()
	first := store.AddItem(newListing("First", 10))
	second := store.AddItem(newListing("Second", 20))
	third := store.AddItem(newListing("Third", 30))

	if err := store.DeleteItem(second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	items := store.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(items))
	}
	if items[0].ID != first.ID || items[1].ID != third.ID {
		t.Fatalf("survivor order changed: %s, %s", items[0].ID, items[1].ID)
	}
	if items[0].Title != "First" || items[1].Title != "Third" {
		t.Fatalf("survivor fields changed")
	}

	if err := store.DeleteItem(second.ID); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestRequestSwapValidatesItem(t *testing.T) {
	store, _ := newTestStore()
	item := store.AddItem(newListing("Vintage Denim Jacket", 75))

	if _, err := store.RequestSwap("missing", "u2", "Emma Davis", ""); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for unknown item, got %v", err)
	}

	first, err := store.RequestSwap(item.ID, "u2", "Emma Davis", "interested")
	if err != nil {
		t.Fatalf("request swap: %v", err)
	}
	if first.Status != RequestStatusPending {
		t.Fatalf("expected pending request, got %s", first.Status)
	}

	// A requester may file several requests for the same listing.
	second, err := store.RequestSwap(item.ID, "u2", "Emma Davis", "still interested")
	if err != nil {
		t.Fatalf("duplicate request swap: %v", err)
	}
	if second.ID == first.ID {
		t.Fatalf("duplicate request must get its own id")
	}
	if len(store.SwapRequests()) != 2 {
		t.Fatalf("expected both requests to be kept")
	}
}

func TestApproveSwapRequestIsAtomicAndIdempotent(t *testing.T) {
	store, _ := newTestStore()
	item := store.AddItem(newListing("Vintage Denim Jacket", 75))
	if _, err := store.ApproveItem(item.ID); err != nil {
		t.Fatalf("approve item: %v", err)
	}
	request, err := store.RequestSwap(item.ID, "u2", "Emma Davis", "interested")
	if err != nil {
		t.Fatalf("request swap: %v", err)
	}

	approval, err := store.ApproveSwapRequest(request.ID)
	if err != nil {
		t.Fatalf("approve swap request: %v", err)
	}
	if approval.Request.Status != RequestStatusApproved {
		t.Fatalf("expected approved request, got %s", approval.Request.Status)
	}
	if approval.Item == nil || approval.Item.Status != ItemStatusSwapped {
		t.Fatalf("expected swapped item, got %+v", approval.Item)
	}

	// Re-approving is a no-op: both statuses stay put.
	again, err := store.ApproveSwapRequest(request.ID)
	if err != nil {
		t.Fatalf("repeat approve: %v", err)
	}
	if again.Request.Status != RequestStatusApproved || again.Item == nil || again.Item.Status != ItemStatusSwapped {
		t.Fatalf("repeat approval changed state: %+v", again)
	}

	if _, err := store.ApproveSwapRequest("missing"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for unknown request, got %v", err)
	}
}

func TestApproveSwapRequestOnDeclinedRequestFails(t *testing.T) {
	store, _ := newTestStore()
	item := store.AddItem(newListing("Floral Summer Dress", 60))
	if _, err := store.ApproveItem(item.ID); err != nil {
		t.Fatalf("approve item: %v", err)
	}
	request, _ := store.RequestSwap(item.ID, "u2", "Emma Davis", "")
	if _, err := store.DeclineSwapRequest(request.ID); err != nil {
		t.Fatalf("decline: %v", err)
	}

	if _, err := store.ApproveSwapRequest(request.ID); !pkgerrors.IsCode(err, pkgerrors.CodeStateConflict) {
		t.Fatalf("expected state conflict approving a declined request, got %v", err)
	}

	// The listing was never touched by decline or the failed approval.
	current, _ := store.Item(item.ID)
	if current.Status != ItemStatusAvailable {
		t.Fatalf("listing status changed to %s", current.Status)
	}
}

func TestApproveSwapRequestWithDeletedItem(t *testing.T) {
	store, _ := newTestStore()
	item := store.AddItem(newListing("Leather Boots", 90))
	if _, err := store.ApproveItem(item.ID); err != nil {
		t.Fatalf("approve item: %v", err)
	}
	request, _ := store.RequestSwap(item.ID, "u2", "Emma Davis", "")
	if err := store.DeleteItem(item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	approval, err := store.ApproveSwapRequest(request.ID)
	if err != nil {
		t.Fatalf("approve with dangling item: %v", err)
	}
	if approval.Request.Status != RequestStatusApproved {
		t.Fatalf("expected approved request, got %s", approval.Request.Status)
	}
	if approval.Item != nil {
		t.Fatalf("expected no item for a dangling reference")
	}
}

func TestDeclineSwapRequestLeavesItemAlone(t *testing.T) {
	store, _ := newTestStore()
	item := store.AddItem(newListing("Vintage Denim Jacket", 75))
	if _, err := store.ApproveItem(item.ID); err != nil {
		t.Fatalf("approve item: %v", err)
	}
	request, _ := store.RequestSwap(item.ID, "u2", "Emma Davis", "")

	declined, err := store.DeclineSwapRequest(request.ID)
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if declined.Status != RequestStatusDeclined {
		t.Fatalf("expected declined, got %s", declined.Status)
	}

	current, _ := store.Item(item.ID)
	if current.Status != ItemStatusAvailable {
		t.Fatalf("decline must not touch the listing, got %s", current.Status)
	}

	// Declining again is a no-op.
	if _, err := store.DeclineSwapRequest(request.ID); err != nil {
		t.Fatalf("repeat decline: %v", err)
	}
}

func TestSubscribeNotifiesOnCommit(t *testing.T) {
	store, _ := newTestStore()
	ch, cancel := store.Subscribe()
	defer cancel()

	before := store.Version()
	store.AddItem(newListing("Vintage Denim Jacket", 75))

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("expected a commit notification")
	}
	if store.Version() != before+1 {
		t.Fatalf("expected version bump, got %d -> %d", before, store.Version())
	}
}

func TestSeedDemoLoadsSampleListings(t *testing.T) {
	store, _ := newTestStore()
	store.SeedDemo()

	items := store.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 demo listings, got %d", len(items))
	}
	for _, item := range items {
		if item.Status != ItemStatusAvailable {
			t.Fatalf("demo listing %s not available", item.ID)
		}
		if item.ApprovedAt == nil {
			t.Fatalf("demo listing %s missing approval timestamp", item.ID)
		}
	}
}
