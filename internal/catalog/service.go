package catalog

import (
	"context"

	pkgerrors "github.com/rewear-app/rewear-backend/pkg/errors"
)

// Actor identifies the authenticated caller of a catalog operation.
type Actor struct {
	ID      string
	Name    string
	IsAdmin bool
}

// WalletBalance is the current session's point balance.
type WalletBalance struct {
	UserID string
	Points int
}

// Wallet exposes the identity store's point balance to redemption.
type Wallet interface {
	Balance(ctx context.Context) (WalletBalance, bool)
	SetBalance(ctx context.Context, points int) error
}

// RedemptionResult reports a successful point redemption.
type RedemptionResult struct {
	Item            Item `json:"item"`
	PointsSpent     int  `json:"points_spent"`
	RemainingPoints int  `json:"remaining_points"`
}

// Service applies ownership and balance rules on top of the raw store
// mutations. Moderation endpoints are additionally gated by the admin
// middleware; the service re-checks nothing the store already enforces.
type Service interface {
	CreateItem(ctx context.Context, actor Actor, input NewItemInput) (Item, error)
	GetItem(ctx context.Context, id string) (Item, error)
	DeleteItem(ctx context.Context, actor Actor, id string) error
	ApproveItem(ctx context.Context, id string) (Item, error)
	RejectItem(ctx context.Context, id string) (Item, error)
	RequestSwap(ctx context.Context, actor Actor, itemID, message string) (SwapRequest, error)
	ApproveSwapRequest(ctx context.Context, actor Actor, requestID string) (SwapApproval, error)
	DeclineSwapRequest(ctx context.Context, actor Actor, requestID string) (SwapRequest, error)
	Redeem(ctx context.Context, actor Actor, itemID string) (RedemptionResult, error)
}

// ServiceParams bundles the dependencies required to build a catalog service.
type ServiceParams struct {
	Store  *Store
	Wallet Wallet
}

type service struct {
	store  *Store
	wallet Wallet
}

// NewService constructs a catalog service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog store is required")
	}
	if params.Wallet == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wallet is required")
	}
	return &service{store: params.Store, wallet: params.Wallet}, nil
}

func (s *service) CreateItem(_ context.Context, actor Actor, input NewItemInput) (Item, error) {
	// The uploader snapshot always comes from the session, never the payload.
	input.UploaderID = actor.ID
	input.UploaderName = actor.Name
	return s.store.AddItem(input), nil
}

func (s *service) GetItem(_ context.Context, id string) (Item, error) {
	item, ok := s.store.Item(id)
	if !ok {
		return Item{}, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	return item, nil
}

func (s *service) DeleteItem(_ context.Context, actor Actor, id string) error {
	item, ok := s.store.Item(id)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	if item.UploaderID != actor.ID && !actor.IsAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the uploader may delete a listing")
	}
	return s.store.DeleteItem(id)
}

func (s *service) ApproveItem(_ context.Context, id string) (Item, error) {
	return s.store.ApproveItem(id)
}

func (s *service) RejectItem(_ context.Context, id string) (Item, error) {
	return s.store.RejectItem(id)
}

func (s *service) RequestSwap(_ context.Context, actor Actor, itemID, message string) (SwapRequest, error) {
	return s.store.RequestSwap(itemID, actor.ID, actor.Name, message)
}

func (s *service) ApproveSwapRequest(_ context.Context, actor Actor, requestID string) (SwapApproval, error) {
	if err := s.authorizeResolution(actor, requestID); err != nil {
		return SwapApproval{}, err
	}
	return s.store.ApproveSwapRequest(requestID)
}

func (s *service) DeclineSwapRequest(_ context.Context, actor Actor, requestID string) (SwapRequest, error) {
	if err := s.authorizeResolution(actor, requestID); err != nil {
		return SwapRequest{}, err
	}
	return s.store.DeclineSwapRequest(requestID)
}

// authorizeResolution lets the listing's uploader (or an admin) resolve a
// request. When the listing is gone the request can still be cleaned up, but
// only by an admin.
func (s *service) authorizeResolution(actor Actor, requestID string) error {
	request, ok := s.store.SwapRequest(requestID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "swap request not found")
	}
	if actor.IsAdmin {
		return nil
	}
	item, ok := s.store.Item(request.ItemID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeForbidden, "listing no longer exists")
	}
	if item.UploaderID != actor.ID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the listing owner may resolve this request")
	}
	return nil
}

func (s *service) Redeem(ctx context.Context, actor Actor, itemID string) (RedemptionResult, error) {
	item, ok := s.store.Item(itemID)
	if !ok {
		return RedemptionResult{}, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
	}
	if item.Points <= 0 {
		return RedemptionResult{}, pkgerrors.New(pkgerrors.CodeValidation, "item has no point value")
	}

	balance, ok := s.wallet.Balance(ctx)
	if !ok || balance.UserID != actor.ID {
		return RedemptionResult{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "no active session")
	}
	if balance.Points < item.Points {
		return RedemptionResult{}, pkgerrors.New(pkgerrors.CodeConflict, "insufficient points").
			WithDetails(map[string]any{"required": item.Points, "available": balance.Points})
	}

	remaining := balance.Points - item.Points
	if err := s.wallet.SetBalance(ctx, remaining); err != nil {
		return RedemptionResult{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deduct points")
	}

	return RedemptionResult{
		Item:            item,
		PointsSpent:     item.Points,
		RemainingPoints: remaining,
	}, nil
}
