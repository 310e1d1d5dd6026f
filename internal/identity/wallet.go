package identity

import (
	"context"

	"github.com/rewear-app/rewear-backend/internal/catalog"
)

// Wallet exposes the active session's point balance to the catalog. It is a
// thin adapter: the identity service stays the only writer of session state.
type Wallet struct {
	svc Service
}

// NewWallet wraps the identity service as a catalog wallet.
func NewWallet(svc Service) *Wallet {
	return &Wallet{svc: svc}
}

func (w *Wallet) Balance(ctx context.Context) (catalog.WalletBalance, bool) {
	user, ok := w.svc.Current(ctx)
	if !ok {
		return catalog.WalletBalance{}, false
	}
	return catalog.WalletBalance{UserID: user.ID, Points: user.Points}, true
}

func (w *Wallet) SetBalance(ctx context.Context, points int) error {
	return w.svc.UpdatePoints(ctx, points)
}
