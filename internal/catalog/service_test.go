package catalog

import (
	"context"
	"testing"

	pkgerrors "github.com/rewear-app/rewear-backend/pkg/errors"
)

type stubWallet struct {
	balance   WalletBalance
	hasWallet bool
	setCalls  []int
	setErr    error
}

func (w *stubWallet) Balance(context.Context) (WalletBalance, bool) {
	return w.balance, w.hasWallet
}

func (w *stubWallet) SetBalance(_ context.Context, points int) error {
	if w.setErr != nil {
		return w.setErr
	}
	w.setCalls = append(w.setCalls, points)
	w.balance.Points = points
	return nil
}

func newTestService(t *testing.T, wallet Wallet) (Service, *Store) {
	t.Helper()
	store, _ := newTestStore()
	if wallet == nil {
		wallet = &stubWallet{}
	}
	svc, err := NewService(ServiceParams{Store: store, Wallet: wallet})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func TestNewServiceValidatesParams(t *testing.T) {
	if _, err := NewService(ServiceParams{Wallet: &stubWallet{}}); err == nil {
		t.Fatalf("expected error without a store")
	}
	if _, err := NewService(ServiceParams{Store: NewStore()}); err == nil {
		t.Fatalf("expected error without a wallet")
	}
}

func TestCreateItemStampsUploaderFromSession(t *testing.T) {
	svc, _ := newTestService(t, nil)

	input := newListing("Vintage Denim Jacket", 75)
	input.UploaderID = "spoofed"
	input.UploaderName = "Spoofed Name"

	item, err := svc.CreateItem(context.Background(), Actor{ID: "u9", Name: "Maya Chen"}, input)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if item.UploaderID != "u9" || item.UploaderName != "Maya Chen" {
		t.Fatalf("uploader must come from the session, got %s / %s", item.UploaderID, item.UploaderName)
	}
	if item.Status != ItemStatusUnderReview {
		t.Fatalf("expected under_review, got %s", item.Status)
	}
}

func TestDeleteItemRequiresOwnerOrAdmin(t *testing.T) {
	svc, store := newTestService(t, nil)
	item := store.AddItem(newListing("Leather Boots", 90))

	err := svc.DeleteItem(context.Background(), Actor{ID: "someone-else"}, item.ID)
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("expected forbidden for a stranger, got %v", err)
	}

	if err := svc.DeleteItem(context.Background(), Actor{ID: "mod", IsAdmin: true}, item.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}

	err = svc.DeleteItem(context.Background(), Actor{ID: "u1"}, item.ID)
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestResolveSwapRequestRequiresListingOwner(t *testing.T) {
	svc, store := newTestService(t, nil)
	item := store.AddItem(newListing("Vintage Denim Jacket", 75))
	if _, err := store.ApproveItem(item.ID); err != nil {
		t.Fatalf("approve item: %v", err)
	}
	request, err := svc.RequestSwap(context.Background(), Actor{ID: "u2", Name: "Emma Davis"}, item.ID, "interested")
	if err != nil {
		t.Fatalf("request swap: %v", err)
	}

	_, err = svc.ApproveSwapRequest(context.Background(), Actor{ID: "u2"}, request.ID)
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("requester must not approve their own request, got %v", err)
	}

	approval, err := svc.ApproveSwapRequest(context.Background(), Actor{ID: "u1"}, request.ID)
	if err != nil {
		t.Fatalf("owner approve: %v", err)
	}
	if approval.Request.Status != RequestStatusApproved {
		t.Fatalf("expected approved, got %s", approval.Request.Status)
	}
}

func TestResolveSwapRequestWithDeletedListingIsAdminOnly(t *testing.T) {
	svc, store := newTestService(t, nil)
	item := store.AddItem(newListing("Floral Summer Dress", 60))
	if _, err := store.ApproveItem(item.ID); err != nil {
		t.Fatalf("approve item: %v", err)
	}
	request, _ := store.RequestSwap(item.ID, "u2", "Emma Davis", "")
	if err := store.DeleteItem(item.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	_, err := svc.DeclineSwapRequest(context.Background(), Actor{ID: "u1"}, request.ID)
	if !pkgerrors.IsCode(err, pkgerrors.CodeForbidden) {
		t.Fatalf("ownership is unverifiable without the listing, got %v", err)
	}

	declined, err := svc.DeclineSwapRequest(context.Background(), Actor{ID: "mod", IsAdmin: true}, request.ID)
	if err != nil {
		t.Fatalf("admin decline: %v", err)
	}
	if declined.Status != RequestStatusDeclined {
		t.Fatalf("expected declined, got %s", declined.Status)
	}
}

func TestRedeemDeductsPointsOnly(t *testing.T) {
	wallet := &stubWallet{balance: WalletBalance{UserID: "u2", Points: 100}, hasWallet: true}
	svc, store := newTestService(t, wallet)
	item := store.AddItem(newListing("Vintage Denim Jacket", 75))
	if _, err := store.ApproveItem(item.ID); err != nil {
		t.Fatalf("approve item: %v", err)
	}

	result, err := svc.Redeem(context.Background(), Actor{ID: "u2"}, item.ID)
	if err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if result.PointsSpent != 75 || result.RemainingPoints != 25 {
		t.Fatalf("unexpected accounting: %+v", result)
	}
	if len(wallet.setCalls) != 1 || wallet.setCalls[0] != 25 {
		t.Fatalf("expected one balance write of 25, got %v", wallet.setCalls)
	}

	// Redemption never changes the listing itself.
	current, _ := store.Item(item.ID)
	if current.Status != ItemStatusAvailable {
		t.Fatalf("redeem must not touch the listing, got %s", current.Status)
	}
}

func TestRedeemRejectsInsufficientBalance(t *testing.T) {
	wallet := &stubWallet{balance: WalletBalance{UserID: "u2", Points: 50}, hasWallet: true}
	svc, store := newTestService(t, wallet)
	item := store.AddItem(newListing("Leather Boots", 90))

	_, err := svc.Redeem(context.Background(), Actor{ID: "u2"}, item.ID)
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict for insufficient points, got %v", err)
	}
	if len(wallet.setCalls) != 0 {
		t.Fatalf("balance must not be written on failure")
	}
}

func TestRedeemRequiresMatchingSession(t *testing.T) {
	wallet := &stubWallet{balance: WalletBalance{UserID: "u2", Points: 500}, hasWallet: true}
	svc, store := newTestService(t, wallet)
	item := store.AddItem(newListing("Floral Summer Dress", 60))

	_, err := svc.Redeem(context.Background(), Actor{ID: "other-user"}, item.ID)
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized for a session mismatch, got %v", err)
	}

	wallet.hasWallet = false
	_, err = svc.Redeem(context.Background(), Actor{ID: "u2"}, item.ID)
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized without a session, got %v", err)
	}
}
